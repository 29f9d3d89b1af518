package pbxproj

import (
	"fmt"

	"github.com/soapywu/pbxpkg/pegparser"
)

// PackageProduct is an XCSwiftPackageProductDependency object: a product of
// a Swift package that a target links.
type PackageProduct struct {
	pegparser.ObjectWithUUID
	Name string
}

func newPackageProduct(uuid string, obj pegparser.Object) PackageProduct {
	return PackageProduct{
		ObjectWithUUID: pegparser.ObjectWithUUID{UUID: uuid, Object: obj},
		Name:           unquoted(obj.GetString("productName")),
	}
}

// PackageProducts returns every package product dependency in document order.
func (p *PbxProject) PackageProducts() []PackageProduct {
	var products []PackageProduct
	p.packageProductSection.ForeachWithFilter(func(key string, value interface{}) pegparser.IterateActionType {
		if obj, ok := value.(pegparser.Object); ok {
			products = append(products, newPackageProduct(key, obj))
		}
		return pegparser.IterateActionContinue
	}, nonCommentsFilter)
	return products
}

// PackageProductByName returns the first package product whose productName
// is name.
func (p *PbxProject) PackageProductByName(name string) (PackageProduct, error) {
	for _, product := range p.PackageProducts() {
		if product.Name == name {
			return product, nil
		}
	}
	return PackageProduct{}, fmt.Errorf("%w: %s %s", ErrObjectNotFound, XCSwiftPackageProductDependencySection, name)
}

// PackageProductBuildFile returns the first PBXBuildFile whose productRef
// points at productUUID.
func (p *PbxProject) PackageProductBuildFile(productUUID string) (pegparser.ObjectWithUUID, error) {
	var found pegparser.ObjectWithUUID
	p.pbxBuildFileSection.ForeachWithFilter(func(key string, value interface{}) pegparser.IterateActionType {
		obj, ok := value.(pegparser.Object)
		if ok && obj.GetString("productRef") == productUUID {
			found = pegparser.ObjectWithUUID{UUID: key, Object: obj}
			return pegparser.IterateActionBreak
		}
		return pegparser.IterateActionContinue
	}, nonCommentsFilter)

	if found.UUID == "" {
		return found, fmt.Errorf("%w: %s for product %s", ErrObjectNotFound, PBXBuildFileSection, productUUID)
	}
	return found, nil
}

// ClonePackageProduct copies source under newUUID with every occurrence of
// the source product name replaced by name, directly after source.
func (p *PbxProject) ClonePackageProduct(source PackageProduct, name, newUUID string) PackageProduct {
	obj := replaceInValue(source.Object.Clone(), source.Name, name).(pegparser.Object)
	comment := replaceInValue(p.packageProductSection.GetString(toCommentKey(source.UUID)), source.Name, name).(string)

	insertAfter(p.packageProductSection, source.UUID, newUUID, obj, comment)
	p.uuids.Add(newUUID)
	return newPackageProduct(newUUID, obj)
}

// AddPackageProductBuildFile creates the PBXBuildFile linking product into a
// Frameworks phase, directly after the build file source.
func (p *PbxProject) AddPackageProductBuildFile(source pegparser.ObjectWithUUID, product PackageProduct, newUUID string) pegparser.ObjectWithUUID {
	obj := pbxBuildFileObj(product)
	insertAfter(p.pbxBuildFileSection, source.UUID, newUUID, obj, pbxBuildFileComment(product))
	p.uuids.Add(newUUID)
	return pegparser.ObjectWithUUID{UUID: newUUID, Object: obj}
}

// AddToFrameworksBuildPhase appends the build file to the phase's files.
func (p *PbxProject) AddToFrameworksBuildPhase(phase pegparser.ObjectWithUUID, buildFileUUID string, product PackageProduct) {
	entry := CommentValue{Value: buildFileUUID, Comment: pbxBuildFileComment(product)}
	addToObjectList(phase.Object, "files", entry.ToObject())
}

// FirstTargetWithPackageProducts returns the first native target that has a
// packageProductDependencies list.
func (p *PbxProject) FirstTargetWithPackageProducts() (pegparser.ObjectWithUUID, error) {
	for _, target := range p.NativeTargets() {
		if _, ok := target.GetArray("packageProductDependencies"); ok {
			return target, nil
		}
	}
	return pegparser.ObjectWithUUID{}, fmt.Errorf("%w: %s packageProductDependencies", ErrObjectNotFound, PBXNativeTargetSection)
}

// AddPackageProductToTarget appends product to the target's
// packageProductDependencies. The list has to exist already.
func (p *PbxProject) AddPackageProductToTarget(target pegparser.ObjectWithUUID, product PackageProduct) error {
	if _, ok := target.GetArray("packageProductDependencies"); !ok {
		return fmt.Errorf("%w: packageProductDependencies of %s", ErrObjectNotFound, target.GetString("name"))
	}
	entry := CommentValue{Value: product.UUID, Comment: product.Name}
	addToObjectList(target.Object, "packageProductDependencies", entry.ToObject())
	return nil
}

// TargetPackageProducts lists the package products a target depends on.
func (p *PbxProject) TargetPackageProducts(target pegparser.ObjectWithUUID) []CommentValue {
	list, _ := target.GetArray("packageProductDependencies")
	deps := make([]CommentValue, 0, len(list))
	for _, item := range list {
		deps = append(deps, commentValueOf(item))
	}
	return deps
}

// PackageReferences lists the Swift packages referenced by the root project.
func (p *PbxProject) PackageReferences() []CommentValue {
	list, _ := p.getFirstProject().GetArray("packageReferences")
	refs := make([]CommentValue, 0, len(list))
	for _, item := range list {
		refs = append(refs, commentValueOf(item))
	}
	return refs
}

// insertAfter places id (and its comment) behind anchor and anchor's
// comment in section.
func insertAfter(section pegparser.Object, anchor, id string, obj pegparser.Object, comment string) {
	if section.Has(toCommentKey(anchor)) {
		anchor = toCommentKey(anchor)
	}
	section.InsertAfter(anchor, id, obj)
	if comment != "" {
		section.InsertAfter(id, toCommentKey(id), comment)
	}
}

func pbxBuildFileObj(product PackageProduct) pegparser.Object {
	obj := pegparser.NewObject()
	obj.Set("isa", PBXBuildFileSection)
	obj.SetWithComment("productRef", product.UUID, product.Name)
	return obj
}

func pbxBuildFileComment(product PackageProduct) string {
	return fmt.Sprintf("%s in Frameworks", product.Name)
}
