package cloner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/soapywu/pbxpkg/pbxproj"
	"github.com/soapywu/pbxpkg/pegparser"
)

// TreeCloner parses the document into its object graph, adds the records
// there and serializes the graph again. Lookups go by object identity, not
// by text, and a product that is already present is reported instead of
// being added a second time.
type TreeCloner struct {
	logger *zap.Logger
}

func NewTreeCloner(logger *zap.Logger) *TreeCloner {
	return &TreeCloner{logger: loggerOrNop(logger)}
}

func (c *TreeCloner) Clone(doc []byte, req Request) ([]byte, Result, error) {
	req = req.withDefaults()
	var res Result

	project := pbxproj.NewPbxProject(req.Filename)
	if err := project.ParseBytes(doc); err != nil {
		return nil, res, fmt.Errorf("failed to parse project: %w", err)
	}

	if existing, err := project.PackageProductByName(req.Target); err == nil {
		return nil, res, fmt.Errorf("%w: %s dependency %s", ErrAlreadyExists, req.Target, existing.UUID)
	}

	var err error
	res.DependencyID, res.BuildFileID, err = c.identifiers(&project, req)
	if err != nil {
		return nil, res, err
	}

	source, err := project.PackageProductByName(req.Source)
	if err != nil {
		return nil, res, &NotFoundError{What: req.Source + " dependency", Err: err}
	}
	res.SourceDependencyID = source.UUID

	sourceBuildFile, err := project.PackageProductBuildFile(source.UUID)
	if err != nil {
		return nil, res, &NotFoundError{What: req.Source + " build file", Err: err}
	}
	res.SourceBuildFileID = sourceBuildFile.UUID

	target, phase, err := c.destinations(&project, req)
	if err != nil {
		return nil, res, err
	}

	product := project.ClonePackageProduct(source, req.Target, res.DependencyID)
	project.AddPackageProductBuildFile(sourceBuildFile, product, res.BuildFileID)
	project.AddToFrameworksBuildPhase(phase, res.BuildFileID, product)
	if err := project.AddPackageProductToTarget(target, product); err != nil {
		return nil, res, &NotFoundError{What: pbxproj.PBXNativeTargetSection + " packageProductDependencies", Err: err}
	}
	c.logger.Debug("Cloned package product",
		zap.String("source", source.UUID),
		zap.String("id", res.DependencyID),
		zap.String("buildFile", res.BuildFileID),
		zap.String("phase", phase.UUID),
		zap.String("target", target.UUID))

	return pbxproj.NewPbxWriter(&project).Bytes(), res, nil
}

// identifiers picks the two new identifiers, refusing fixed ones that are
// already taken.
func (c *TreeCloner) identifiers(project *pbxproj.PbxProject, req Request) (string, string, error) {
	if req.GenerateIDs {
		return project.GenerateUuid(), project.GenerateUuid(), nil
	}
	for _, id := range []string{req.DependencyID, req.BuildFileID} {
		if project.HasUUID(id) {
			return "", "", fmt.Errorf("%w: object %s", ErrAlreadyExists, id)
		}
	}
	if req.DependencyID == req.BuildFileID {
		return "", "", fmt.Errorf("%w: dependency and build file share id %s", ErrAlreadyExists, req.DependencyID)
	}
	return req.DependencyID, req.BuildFileID, nil
}

// destinations resolves the native target and Frameworks phase that receive
// the new product. Without a target name it mirrors the text strategy: the
// first Frameworks phase and the first target carrying a product list.
func (c *TreeCloner) destinations(project *pbxproj.PbxProject, req Request) (pegparser.ObjectWithUUID, pegparser.ObjectWithUUID, error) {
	var target pegparser.ObjectWithUUID
	var err error
	if req.NativeTarget != "" {
		target, err = project.NativeTargetByName(req.NativeTarget)
		if err != nil {
			return target, pegparser.ObjectWithUUID{}, &NotFoundError{What: "native target " + req.NativeTarget, Err: err}
		}
		if _, ok := target.GetArray("packageProductDependencies"); !ok {
			return target, pegparser.ObjectWithUUID{}, &NotFoundError{What: req.NativeTarget + " packageProductDependencies"}
		}
	}

	phase, err := project.FrameworksBuildPhase(target)
	if err != nil {
		return target, phase, &NotFoundError{What: pbxproj.PBXFrameworksBuildPhaseSection, Err: err}
	}

	if req.NativeTarget == "" {
		target, err = project.FirstTargetWithPackageProducts()
		if err != nil {
			return target, phase, &NotFoundError{What: pbxproj.PBXNativeTargetSection + " packageProductDependencies", Err: err}
		}
	}
	return target, phase, nil
}
