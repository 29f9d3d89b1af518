/**
Licensed to the Apache Software Foundation (ASF) under one
or more contributor license agreements.  See the NOTICE file
distributed with this work for additional information
regarding copyright ownership.  The ASF licenses this file
to you under the Apache License, Version 2.0 (the
'License'); you may not use this file except in compliance
with the License.  You may obtain a copy of the License at
http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing,
software distributed under the License is distributed on an
'AS IS' BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
KIND, either express or implied.  See the License for the
specific language governing permissions and limitations
under the License.
*/

package pbxproj

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/soapywu/pbxpkg/pegparser"
)

const (
	PBXBuildFileSection                    = "PBXBuildFile"
	PBXFrameworksBuildPhaseSection         = "PBXFrameworksBuildPhase"
	PBXNativeTargetSection                 = "PBXNativeTarget"
	PBXProjectSection                      = "PBXProject"
	XCSwiftPackageProductDependencySection = "XCSwiftPackageProductDependency"
)

// ErrObjectNotFound is returned when a lookup finds no matching object.
var ErrObjectNotFound = errors.New("object not found")

type CommentValue struct {
	Value   string
	Comment string
}

func (c CommentValue) ToObject() pegparser.Object {
	return pegparser.NewObjectWithData([]pegparser.SliceItem{
		pegparser.NewObjectItem("value", c.Value),
		pegparser.NewObjectItem("comment", c.Comment),
	})
}

// commentValueOf reads a list item that is either a bare string or a
// {value, comment} object.
func commentValueOf(item interface{}) CommentValue {
	switch item := item.(type) {
	case string:
		return CommentValue{Value: item}
	case pegparser.Object:
		return CommentValue{Value: item.GetString("value"), Comment: item.GetString("comment")}
	}
	return CommentValue{}
}

type PbxProject struct {
	filePath                  string
	pbxContents               pegparser.Object
	topProjectSection         pegparser.Object
	pbxObjectSection          pegparser.Object
	pbxProjectSection         pegparser.Object
	pbxBuildFileSection       pegparser.Object
	pbxNativeTargetSection    pegparser.Object
	pbxFrameworksPhaseSection pegparser.Object
	packageProductSection     pegparser.Object
	uuids                     UUIDSet
}

func NewPbxProject(filename string) PbxProject {
	return PbxProject{
		filePath: filename,
		uuids:    NewUUIDSet(),
	}
}

func (p *PbxProject) FilePath() string {
	return p.filePath
}

func (p *PbxProject) Contents() pegparser.Object {
	return p.pbxContents
}

// Parse reads and parses the project file.
func (p *PbxProject) Parse() error {
	data, err := os.ReadFile(p.filePath)
	if err != nil {
		return err
	}
	return p.ParseBytes(data)
}

// ParseBytes parses an in-memory copy of the project file.
func (p *PbxProject) ParseBytes(data []byte) error {
	contents, err := pegparser.ParseReader(p.filePath, bytes.NewReader(data))
	if err != nil {
		return err
	}
	p.pbxContents = contents.(pegparser.Object)
	p.initSections()
	p.buildExistUuids()
	return nil
}

func (p *PbxProject) Dump(writer io.Writer) error {
	buffer := bytes.NewBuffer([]byte{})
	jsonEncoder := json.NewEncoder(buffer)
	jsonEncoder.SetEscapeHTML(false)
	jsonEncoder.SetIndent("", "  ")
	if err := jsonEncoder.Encode(p.Contents()); err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	_, err := writer.Write(buffer.Bytes())
	return err
}

func (p *PbxProject) initSections() {
	p.topProjectSection = p.pbxContents.GetObject("project")
	p.pbxObjectSection = p.topProjectSection.GetObject("objects")
	p.pbxProjectSection = p.pbxObjectSection.GetObject(PBXProjectSection)
	p.pbxBuildFileSection = p.section(PBXBuildFileSection)
	p.pbxNativeTargetSection = p.pbxObjectSection.GetObject(PBXNativeTargetSection)
	p.pbxFrameworksPhaseSection = p.pbxObjectSection.GetObject(PBXFrameworksBuildPhaseSection)
	p.packageProductSection = p.section(XCSwiftPackageProductDependencySection)
}

// section returns the named objects section, attaching an empty one when
// the document has none so additions land in the tree.
func (p *PbxProject) section(name string) pegparser.Object {
	if !p.pbxObjectSection.Has(name) {
		p.pbxObjectSection.Set(name, pegparser.NewObject())
	}
	return p.pbxObjectSection.GetObject(name)
}

func (p *PbxProject) buildExistUuids() {
	uuids := NewUUIDSet()
	p.pbxObjectSection.Foreach(func(_ string, v interface{}) pegparser.IterateActionType {
		fileSection, ok := v.(pegparser.Object)
		if !ok {
			return pegparser.IterateActionContinue
		}
		fileSection.ForeachWithFilter(func(key string, value interface{}) pegparser.IterateActionType {
			if IsUUID(key) {
				uuids.Add(key)
			}
			return pegparser.IterateActionContinue
		}, nonCommentsFilter)
		return pegparser.IterateActionContinue
	})

	p.uuids = uuids
}

// HasUUID reports whether id names an object of the project.
func (p *PbxProject) HasUUID(id string) bool {
	return p.uuids.Has(id)
}

// GenerateUuid returns a fresh identifier not used by any object.
func (p *PbxProject) GenerateUuid() string {
	return p.uuids.Generate()
}

func (p *PbxProject) getFirstProject() pegparser.ObjectWithUUID {
	uuid := ""
	project := pegparser.NewObject()
	p.pbxProjectSection.ForeachWithFilter(func(key string, value interface{}) pegparser.IterateActionType {
		uuid = key
		project = value.(pegparser.Object)
		return pegparser.IterateActionBreak
	}, nonCommentsFilter)

	return pegparser.ObjectWithUUID{
		UUID:   uuid,
		Object: project,
	}
}

// NativeTargets returns the native targets in document order.
func (p *PbxProject) NativeTargets() []pegparser.ObjectWithUUID {
	var targets []pegparser.ObjectWithUUID
	p.pbxNativeTargetSection.ForeachWithFilter(func(key string, value interface{}) pegparser.IterateActionType {
		if obj, ok := value.(pegparser.Object); ok {
			targets = append(targets, pegparser.ObjectWithUUID{UUID: key, Object: obj})
		}
		return pegparser.IterateActionContinue
	}, nonCommentsFilter)
	return targets
}

// NativeTargetByName finds a native target by its name attribute.
func (p *PbxProject) NativeTargetByName(name string) (pegparser.ObjectWithUUID, error) {
	for _, target := range p.NativeTargets() {
		if unquoted(target.GetString("name")) == name {
			return target, nil
		}
	}
	return pegparser.ObjectWithUUID{}, fmt.Errorf("%w: native target %s", ErrObjectNotFound, name)
}

// Find Build Phase from group/target
func (p *PbxProject) buildPhase(group string, target pegparser.Object) string {
	buildPhases, ok := target.GetArray("buildPhases")
	if !ok {
		return ""
	}

	for _, buildPhase := range buildPhases {
		phase := commentValueOf(buildPhase)
		if phase.Comment == group {
			return phase.Value
		}
	}

	return ""
}

// FrameworksBuildPhase returns the Frameworks build phase of target, or the
// first PBXFrameworksBuildPhase of the document when target has no UUID.
func (p *PbxProject) FrameworksBuildPhase(target pegparser.ObjectWithUUID) (pegparser.ObjectWithUUID, error) {
	phaseKey := ""
	if target.UUID != "" {
		phaseKey = p.buildPhase("Frameworks", target.Object)
		if phaseKey == "" {
			return pegparser.ObjectWithUUID{}, fmt.Errorf("%w: Frameworks build phase of %s", ErrObjectNotFound, target.GetString("name"))
		}
	}

	var found pegparser.ObjectWithUUID
	p.pbxFrameworksPhaseSection.ForeachWithFilter(func(key string, value interface{}) pegparser.IterateActionType {
		// select the proper buildPhase
		if phaseKey != "" && phaseKey != key {
			return pegparser.IterateActionContinue
		}
		found = pegparser.ObjectWithUUID{UUID: key, Object: value.(pegparser.Object)}
		return pegparser.IterateActionBreak
	}, nonCommentsFilter)

	if found.UUID == "" {
		return found, fmt.Errorf("%w: %s", ErrObjectNotFound, PBXFrameworksBuildPhaseSection)
	}
	return found, nil
}
