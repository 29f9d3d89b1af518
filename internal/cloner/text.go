package cloner

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/soapywu/pbxpkg/pbxproj"
)

const listEntryIndent = "\t\t\t\t"

var (
	frameworksFilesRegex  = regexp.MustCompile(`(isa = PBXFrameworksBuildPhase;[\s\S]+?files = \()([\s\S]+?)(\);)`)
	targetPackageDepRegex = regexp.MustCompile(`(isa = PBXNativeTarget;[\s\S]+?packageProductDependencies = \()([\s\S]+?)(\);)`)
)

// TextCloner edits the document as text. Every pattern is matched once,
// against its first occurrence, so in a project with several targets the
// list edits land in whichever Frameworks phase and native target come
// first. Running it twice adds the product twice.
type TextCloner struct {
	logger *zap.Logger
}

func NewTextCloner(logger *zap.Logger) *TextCloner {
	return &TextCloner{logger: loggerOrNop(logger)}
}

func (c *TextCloner) Clone(doc []byte, req Request) ([]byte, Result, error) {
	req = req.withDefaults()
	content := string(doc)

	res := Result{DependencyID: req.DependencyID, BuildFileID: req.BuildFileID}
	if req.GenerateIDs {
		existing := pbxproj.ScanUUIDs(content)
		res.DependencyID = existing.Generate()
		res.BuildFileID = existing.Generate()
	}
	src := regexp.QuoteMeta(req.Source)

	depRegex := regexp.MustCompile(`(\s+)([A-F0-9]+) /\* ` + src + ` \*/ = \{(\s+isa = XCSwiftPackageProductDependency;[\s\S]+?productName = ` + src + `;[\s\S]+?\};)`)
	m := depRegex.FindStringSubmatchIndex(content)
	if m == nil {
		return nil, res, &NotFoundError{What: req.Source + " dependency"}
	}
	res.SourceDependencyID = content[m[4]:m[5]]
	body := strings.ReplaceAll(content[m[6]:m[7]], req.Source, req.Target)
	depEntry := fmt.Sprintf("\n%s%s /* %s */ = {%s", lastLine(content[m[2]:m[3]]), res.DependencyID, req.Target, body)
	content = content[:m[1]] + depEntry + content[m[1]:]
	c.logger.Debug("Cloned package product dependency",
		zap.String("source", res.SourceDependencyID),
		zap.String("id", res.DependencyID))

	buildRegex := regexp.MustCompile(`(\s+)([A-F0-9]+) /\* ` + src + ` in Frameworks \*/ = \{isa = PBXBuildFile; productRef = ([A-F0-9]+) /\* ` + src + ` \*/; \};`)
	m = buildRegex.FindStringSubmatchIndex(content)
	if m == nil {
		return nil, res, &NotFoundError{What: req.Source + " build file"}
	}
	res.SourceBuildFileID = content[m[4]:m[5]]
	buildEntry := fmt.Sprintf("\n%s%s /* %s in Frameworks */ = {isa = PBXBuildFile; productRef = %s /* %s */; };",
		lastLine(content[m[2]:m[3]]), res.BuildFileID, req.Target, res.DependencyID, req.Target)
	content = content[:m[1]] + buildEntry + content[m[1]:]
	c.logger.Debug("Added build file",
		zap.String("source", res.SourceBuildFileID),
		zap.String("id", res.BuildFileID))

	var ok bool
	content, ok = appendToList(content, frameworksFilesRegex,
		fmt.Sprintf("%s /* %s in Frameworks */,", res.BuildFileID, req.Target))
	if !ok {
		return nil, res, &NotFoundError{What: pbxproj.PBXFrameworksBuildPhaseSection}
	}
	c.logger.Debug("Linked build file in Frameworks phase", zap.String("id", res.BuildFileID))

	content, ok = appendToList(content, targetPackageDepRegex,
		fmt.Sprintf("%s /* %s */,", res.DependencyID, req.Target))
	if !ok {
		return nil, res, &NotFoundError{What: pbxproj.PBXNativeTargetSection + " packageProductDependencies"}
	}
	c.logger.Debug("Added product to native target", zap.String("id", res.DependencyID))

	return []byte(content), res, nil
}

// appendToList adds entry as the last line of the first list matched by re.
// The match's second group is the list body; the entry goes in front of the
// whitespace that precedes the closing parenthesis.
func appendToList(content string, re *regexp.Regexp, entry string) (string, bool) {
	m := re.FindStringSubmatchIndex(content)
	if m == nil {
		return content, false
	}
	bodyStart, bodyEnd := m[4], m[5]
	at := bodyStart + len(strings.TrimRight(content[bodyStart:bodyEnd], " \t\r\n"))
	return content[:at] + "\n" + listEntryIndent + entry + content[at:], true
}

// lastLine drops everything up to the last newline of a whitespace run,
// leaving the indentation of the line it precedes.
func lastLine(ws string) string {
	if i := strings.LastIndexByte(ws, '\n'); i >= 0 {
		return ws[i+1:]
	}
	return ws
}
