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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/soapywu/pbxpkg/pegparser"
)

const (
	INDENT = "\t"
)

type PbxWriterOption func(w *PbxWriter)

func WithOmitEmpty() PbxWriterOption {
	return func(w *PbxWriter) {
		w.omitEmptyValues = true
	}
}

// PbxWriter serializes a parsed project back into the layout Xcode writes:
// tab indentation, Begin/End section comments and one-line PBXBuildFile and
// PBXFileReference objects.
type PbxWriter struct {
	sb              strings.Builder
	omitEmptyValues bool
	contents        pegparser.Object
	indentLevel     int
}

func NewPbxWriter(project *PbxProject, options ...PbxWriterOption) *PbxWriter {
	w := &PbxWriter{
		contents: project.Contents(),
	}
	for _, option := range options {
		option(w)
	}
	return w
}

func indent(x int) string {
	if x <= 0 {
		return ""
	}
	return strings.Repeat(INDENT, x)
}

func getComment(key string, parent pegparser.Object) string {
	return parent.GetString(toCommentKey(key))
}

func (w *PbxWriter) write(format string, args ...interface{}) {
	w.sb.WriteString(indent(w.indentLevel))
	fmt.Fprintf(&w.sb, format, args...)
}

func (w *PbxWriter) writeNoIndent(format string, args ...interface{}) {
	fmt.Fprintf(&w.sb, format, args...)
}

// Bytes renders the whole document.
func (w *PbxWriter) Bytes() []byte {
	w.sb.Reset()
	w.indentLevel = 0
	w.writeHeadComment()
	w.writeProject()
	return []byte(w.sb.String())
}

// WriteTo renders the document into out.
func (w *PbxWriter) WriteTo(out io.Writer) (int64, error) {
	n, err := out.Write(w.Bytes())
	return int64(n), err
}

// Write renders the document into filePath.
func (w *PbxWriter) Write(filePath string) error {
	return os.WriteFile(filePath, w.Bytes(), 0644)
}

func (w *PbxWriter) writeHeadComment() {
	comment := w.contents.GetString("headComment")
	if comment != "" {
		w.writeNoIndent("// %s\n", comment)
	}
}

func (w *PbxWriter) writeProject() {
	proj := w.contents.GetObject("project")

	w.write("{\n")
	w.indentLevel++
	w.writeEntries(proj, true)
	w.indentLevel--
	w.write("}\n")
}

func (w *PbxWriter) writeObject(obj pegparser.Object) {
	w.writeEntries(obj, false)
}

func (w *PbxWriter) writeEntries(obj pegparser.Object, root bool) {
	obj.ForeachWithFilter(func(key string, val interface{}) pegparser.IterateActionType {
		cmt := getComment(key, obj)
		switch {
		case isArray(val):
			w.writeArray(toArray(val), key)
		case isObject(val):
			if cmt != "" {
				w.write("%s /* %s */ = {\n", key, cmt)
			} else {
				w.write("%s = {\n", key)
			}
			w.indentLevel++
			if root && key == "objects" {
				w.writeObjectsSections(toObject(val))
			} else {
				w.writeObject(toObject(val))
			}
			w.indentLevel--
			w.write("};\n")
		case isString(val):
			str := toString(val)
			if w.omitEmptyValues && str == "" {
				return pegparser.IterateActionContinue
			}
			w.writeScalar(key, str, cmt)
		case isInt(val):
			w.writeScalar(key, toIntString(val), cmt)
		}
		return pegparser.IterateActionContinue
	}, nonCommentsFilter)
}

func (w *PbxWriter) writeScalar(key, value, cmt string) {
	if cmt != "" {
		w.write("%s = %s /* %s */;\n", key, value, cmt)
	} else {
		w.write("%s = %s;\n", key, value)
	}
}

func (w *PbxWriter) writeObjectsSections(obj pegparser.Object) {
	obj.Foreach(func(key string, val interface{}) pegparser.IterateActionType {
		if isObject(val) {
			section := toObject(val)
			if section.IsEmpty() {
				return pegparser.IterateActionContinue
			}
			w.writeNoIndent("\n")
			w.writeSectionComment(key, true)
			w.writeSection(section)
			w.writeSectionComment(key, false)
		}
		return pegparser.IterateActionContinue
	})
}

func (w *PbxWriter) writeArray(arr []interface{}, name string) {
	w.write("%s = (\n", name)
	w.indentLevel++

	for _, obj := range arr {
		switch {
		case isObject(obj):
			val := toObject(obj)
			value := val.GetString("value")
			comment := val.GetString("comment")
			if value != "" && comment != "" {
				w.write("%s /* %s */,\n", value, comment)
			} else {
				w.write("{\n")
				w.indentLevel++
				w.writeObject(val)
				w.indentLevel--
				w.write("},\n")
			}
		case isString(obj):
			w.write("%s,\n", toString(obj))
		case isInt(obj):
			w.write("%s,\n", toIntString(obj))
		}
	}
	w.indentLevel--
	w.write(");\n")
}

func (w *PbxWriter) writeSectionComment(name string, begin bool) {
	if begin {
		w.writeNoIndent("/* Begin %s section */\n", name)
	} else {
		w.writeNoIndent("/* End %s section */\n", name)
	}
}

func (w *PbxWriter) writeSection(section pegparser.Object) {
	section.ForeachWithFilter(func(key string, val interface{}) pegparser.IterateActionType {
		if !isObject(val) {
			return pegparser.IterateActionContinue
		}
		cmt := getComment(key, section)
		obj := toObject(val)
		isa := obj.GetString("isa")
		if isa == PBXBuildFileSection || isa == "PBXFileReference" {
			w.writeInlineObject(key, cmt, obj)
			return pegparser.IterateActionContinue
		}

		if cmt != "" {
			w.write("%s /* %s */ = {\n", key, cmt)
		} else {
			w.write("%s = {\n", key)
		}
		w.indentLevel++
		w.writeObject(obj)
		w.indentLevel--
		w.write("};\n")
		return pegparser.IterateActionContinue
	}, nonCommentsFilter)
}

func (w *PbxWriter) writeInlineObjectHelp(output *strings.Builder, name string, desc string, ref pegparser.Object) {
	if desc != "" {
		fmt.Fprintf(output, "%s /* %s */ = {", name, desc)
	} else {
		fmt.Fprintf(output, "%s = {", name)
	}

	ref.ForeachWithFilter(func(key string, val interface{}) pegparser.IterateActionType {
		cmt := getComment(key, ref)
		switch {
		case isArray(val):
			fmt.Fprintf(output, "%s = (", key)
			for _, item := range toArray(val) {
				cv := commentValueOf(item)
				if cv.Comment != "" {
					fmt.Fprintf(output, "%s /* %s */, ", cv.Value, cv.Comment)
				} else {
					fmt.Fprintf(output, "%s, ", cv.Value)
				}
			}
			output.WriteString("); ")
		case isObject(val):
			w.writeInlineObjectHelp(output, key, cmt, toObject(val))
			output.WriteString(" ")
		case isString(val):
			value := toString(val)
			if value == "" && w.omitEmptyValues {
				return pegparser.IterateActionContinue
			}
			writeInlineScalar(output, key, value, cmt)
		case isInt(val):
			writeInlineScalar(output, key, toIntString(val), cmt)
		}
		return pegparser.IterateActionContinue
	}, nonCommentsFilter)

	output.WriteString("};")
}

func writeInlineScalar(output *strings.Builder, key, value, cmt string) {
	if cmt != "" {
		fmt.Fprintf(output, "%s = %s /* %s */; ", key, value, cmt)
	} else {
		fmt.Fprintf(output, "%s = %s; ", key, value)
	}
}

func (w *PbxWriter) writeInlineObject(name string, desc string, ref pegparser.Object) {
	var output strings.Builder
	w.writeInlineObjectHelp(&output, name, desc, ref)
	w.write("%s\n", strings.TrimSpace(output.String()))
}
