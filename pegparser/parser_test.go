package pegparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallProject = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objects = {

/* Begin PBXBuildFile section */
		AAAAAAAAAAAAAAAAAAAAAA02 /* FirebaseFirestore in Frameworks */ = {isa = PBXBuildFile; productRef = AAAAAAAAAAAAAAAAAAAAAA01 /* FirebaseFirestore */; };
/* End PBXBuildFile section */

/* Begin PBXNativeTarget section */
		AAAAAAAAAAAAAAAAAAAAAA04 /* App */ = {
			isa = PBXNativeTarget;
			name = App;
			packageProductDependencies = (
				AAAAAAAAAAAAAAAAAAAAAA01 /* FirebaseFirestore */,
			);
			productType = "com.apple.product-type.application";
		};
/* End PBXNativeTarget section */

/* Begin XCSwiftPackageProductDependency section */
		AAAAAAAAAAAAAAAAAAAAAA01 /* FirebaseFirestore */ = {
			isa = XCSwiftPackageProductDependency;
			productName = FirebaseFirestore;
		};
/* End XCSwiftPackageProductDependency section */
	};
	rootObject = AAAAAAAAAAAAAAAAAAAAAA05 /* Project object */;
}
`

func parseObject(t *testing.T, src string) Object {
	t.Helper()
	contents, err := ParseReader("project.pbxproj", strings.NewReader(src))
	require.NoError(t, err)
	return contents.(Object)
}

func TestParseReader_HeadAndRoot(t *testing.T) {
	contents := parseObject(t, smallProject)

	assert.Equal(t, "!$*UTF8*$!", contents.GetString("headComment"))
	project := contents.GetObject("project")
	assert.Equal(t, "1", project.GetString("archiveVersion"))
	assert.True(t, project.GetObject("classes").IsEmpty())
	assert.Equal(t, "AAAAAAAAAAAAAAAAAAAAAA05", project.GetString("rootObject"))
	assert.Equal(t, "Project object", project.GetComment("rootObject"))
}

func TestParseReader_ObjectsGroupedByIsa(t *testing.T) {
	objects := parseObject(t, smallProject).GetObject("project").GetObject("objects")

	var sections []string
	objects.Foreach(func(key string, _ interface{}) IterateActionType {
		sections = append(sections, key)
		return IterateActionContinue
	})
	assert.Equal(t, []string{"PBXBuildFile", "PBXNativeTarget", "XCSwiftPackageProductDependency"}, sections)

	buildFiles := objects.GetObject("PBXBuildFile")
	buildFile := buildFiles.GetObject("AAAAAAAAAAAAAAAAAAAAAA02")
	assert.Equal(t, "FirebaseFirestore in Frameworks", buildFiles.GetComment("AAAAAAAAAAAAAAAAAAAAAA02"))
	assert.Equal(t, "PBXBuildFile", buildFile.GetString("isa"))
	assert.Equal(t, "AAAAAAAAAAAAAAAAAAAAAA01", buildFile.GetString("productRef"))
	assert.Equal(t, "FirebaseFirestore", buildFile.GetComment("productRef"))
}

func TestParseReader_ListsAndQuotedStrings(t *testing.T) {
	target := parseObject(t, smallProject).
		GetObject("project").
		GetObject("objects").
		GetObject("PBXNativeTarget").
		GetObject("AAAAAAAAAAAAAAAAAAAAAA04")

	deps, ok := target.GetArray("packageProductDependencies")
	require.True(t, ok)
	require.Len(t, deps, 1)
	dep := deps[0].(Object)
	assert.Equal(t, "AAAAAAAAAAAAAAAAAAAAAA01", dep.GetString("value"))
	assert.Equal(t, "FirebaseFirestore", dep.GetString("comment"))

	// quotes are kept so the writer can put the value back verbatim
	assert.Equal(t, `"com.apple.product-type.application"`, target.GetString("productType"))
}

func TestParseReader_PlainListItems(t *testing.T) {
	contents := parseObject(t, `{ knownRegions = (en, Base, "zh-Hans"); empty = (); }`)
	project := contents.GetObject("project")

	regions, ok := project.GetArray("knownRegions")
	require.True(t, ok)
	assert.Equal(t, []interface{}{"en", "Base", `"zh-Hans"`}, regions)

	empty, ok := project.GetArray("empty")
	require.True(t, ok)
	assert.Empty(t, empty)
}

func TestParseReader_EscapedQuotes(t *testing.T) {
	contents := parseObject(t, `{ shellScript = "echo \"hi; there\"\n"; }`)
	assert.Equal(t, `"echo \"hi; there\"\n"`, contents.GetObject("project").GetString("shellScript"))
}

func TestParseReader_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{name: "no root", src: "// !$*UTF8*$!\n", line: 2},
		{name: "missing semicolon", src: "{\n\ta = b\n}", line: 3},
		{name: "unterminated list", src: "{\n\ta = (x,\n", line: 3},
		{name: "object without isa", src: "{\n\tobjects = {\n\t\tAAAAAAAAAAAAAAAAAAAAAA01 = {name = x;};\n\t};\n}", line: 3},
		{name: "trailing garbage", src: "{ a = b; } }", line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReader("bad.pbxproj", strings.NewReader(tt.src))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "bad.pbxproj", perr.Filename)
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}
