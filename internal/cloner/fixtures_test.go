package cloner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const minimalProject = `// !$*UTF8*$!
{
	objects = {

/* Begin PBXBuildFile section */
		AAAAAAAAAAAAAAAAAAAAAA02 /* FirebaseFirestore in Frameworks */ = {isa = PBXBuildFile; productRef = AAAAAAAAAAAAAAAAAAAAAA01 /* FirebaseFirestore */; };
/* End PBXBuildFile section */

/* Begin PBXFrameworksBuildPhase section */
		AAAAAAAAAAAAAAAAAAAAAA03 /* Frameworks */ = {
			isa = PBXFrameworksBuildPhase;
			files = ( );
		};
/* End PBXFrameworksBuildPhase section */

/* Begin PBXNativeTarget section */
		AAAAAAAAAAAAAAAAAAAAAA04 /* App */ = {
			isa = PBXNativeTarget;
			name = App;
			packageProductDependencies = ( );
		};
/* End PBXNativeTarget section */

/* Begin XCSwiftPackageProductDependency section */
		AAAAAAAAAAAAAAAAAAAAAA01 /* FirebaseFirestore */ = {
			isa = XCSwiftPackageProductDependency;
			productName = FirebaseFirestore;
		};
/* End XCSwiftPackageProductDependency section */
	};
}
`

const twoTargetProject = `// !$*UTF8*$!
{
	objects = {

/* Begin PBXBuildFile section */
		AAAAAAAAAAAAAAAAAAAAAA02 /* FirebaseFirestore in Frameworks */ = {isa = PBXBuildFile; productRef = AAAAAAAAAAAAAAAAAAAAAA01 /* FirebaseFirestore */; };
/* End PBXBuildFile section */

/* Begin PBXFrameworksBuildPhase section */
		AAAAAAAAAAAAAAAAAAAAAA03 /* Frameworks */ = {
			isa = PBXFrameworksBuildPhase;
			files = (
				AAAAAAAAAAAAAAAAAAAAAA02 /* FirebaseFirestore in Frameworks */,
			);
		};
		AAAAAAAAAAAAAAAAAAAAAA13 /* Frameworks */ = {
			isa = PBXFrameworksBuildPhase;
			files = (
			);
		};
/* End PBXFrameworksBuildPhase section */

/* Begin PBXNativeTarget section */
		AAAAAAAAAAAAAAAAAAAAAA04 /* App */ = {
			isa = PBXNativeTarget;
			buildPhases = (
				AAAAAAAAAAAAAAAAAAAAAA03 /* Frameworks */,
			);
			name = App;
			packageProductDependencies = (
				AAAAAAAAAAAAAAAAAAAAAA01 /* FirebaseFirestore */,
			);
		};
		AAAAAAAAAAAAAAAAAAAAAA14 /* Widget */ = {
			isa = PBXNativeTarget;
			buildPhases = (
				AAAAAAAAAAAAAAAAAAAAAA13 /* Frameworks */,
			);
			name = Widget;
			packageProductDependencies = (
			);
		};
/* End PBXNativeTarget section */

/* Begin XCSwiftPackageProductDependency section */
		AAAAAAAAAAAAAAAAAAAAAA01 /* FirebaseFirestore */ = {
			isa = XCSwiftPackageProductDependency;
			productName = FirebaseFirestore;
		};
/* End XCSwiftPackageProductDependency section */
	};
}
`

func readFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "project.pbxproj"))
	require.NoError(t, err)
	return data
}

func writeTemp(t *testing.T, contents string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.pbxproj")
	require.NoError(t, os.WriteFile(path, []byte(contents), perm))
	return path
}

// block returns the lines of doc from the one containing start up to and
// including the next line equal to end.
func block(t *testing.T, doc, start, end string) string {
	t.Helper()
	i := strings.Index(doc, start)
	require.GreaterOrEqual(t, i, 0, "missing %q", start)
	j := strings.Index(doc[i:], end)
	require.GreaterOrEqual(t, j, 0, "missing %q after %q", end, start)
	return doc[i : i+j+len(end)]
}
