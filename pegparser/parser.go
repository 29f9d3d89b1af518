package pegparser

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// ParseError reports where in the input a pbxproj document stopped making sense.
type ParseError struct {
	Filename string
	Line     int
	Col      int
	Msg      string
}

func (e *ParseError) Error() string {
	name := e.Filename
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %s", name, e.Line, e.Col, e.Msg)
}

// ParseReader parses an OpenStep style pbxproj document. The result is an
// Object with "headComment" (the text after the leading //) and "project"
// (the root dictionary). Entries of project.objects are grouped into one
// section per isa, in the order the sections first appear:
//
//	objects
//	  PBXBuildFile
//	    ABCDEF012345678901234567         -> Object
//	    ABCDEF012345678901234567_comment -> "Foo in Frameworks"
//
// Scalars stay raw: quoted strings keep their quotes, numbers stay strings.
// A list item followed by a comment becomes an Object {value, comment}.
func ParseReader(filename string, r io.Reader) (interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(filename, data)
}

// Parse is ParseReader on an in-memory document.
func Parse(filename string, data []byte) (interface{}, error) {
	p := &parser{filename: filename, src: data}
	contents, err := p.parseContents()
	if err != nil {
		return nil, err
	}
	return contents, nil
}

type parser struct {
	filename string
	src      []byte
	pos      int
}

func (p *parser) parseContents() (Object, error) {
	contents := NewObject()

	p.skipSpace()
	if p.hasPrefix("//") {
		end := bytes.IndexByte(p.src[p.pos:], '\n')
		if end < 0 {
			end = len(p.src) - p.pos
		}
		contents.Set("headComment", strings.TrimSpace(string(p.src[p.pos+2:p.pos+end])))
		p.pos += end
	}

	p.skipSpaceAndComments()
	if err := p.expect('{'); err != nil {
		return contents, err
	}
	project, err := p.parseDict(true)
	if err != nil {
		return contents, err
	}
	contents.Set("project", project)

	p.skipSpaceAndComments()
	if !p.eof() {
		return contents, p.errorf("unexpected %q after root dictionary", p.peek())
	}
	return contents, nil
}

// parseDict reads "key = value;" pairs up to the closing brace. The opening
// brace has already been consumed.
func (p *parser) parseDict(root bool) (Object, error) {
	obj := NewObject()
	for {
		p.skipSpaceAndComments()
		if p.eof() {
			return obj, p.errorf("unterminated dictionary")
		}
		if p.peek() == '}' {
			p.pos++
			return obj, nil
		}

		key, err := p.parseString()
		if err != nil {
			return obj, err
		}
		p.skipSpace()
		keyComment := p.parseComment()
		p.skipSpaceAndComments()
		if err := p.expect('='); err != nil {
			return obj, err
		}
		p.skipSpaceAndComments()

		var value interface{}
		if root && key == "objects" && !p.eof() && p.peek() == '{' {
			p.pos++
			value, err = p.parseObjects()
		} else {
			value, err = p.parseValue()
		}
		if err != nil {
			return obj, err
		}
		p.skipSpace()
		valueComment := p.parseComment()
		p.skipSpaceAndComments()
		if err := p.expect(';'); err != nil {
			return obj, err
		}

		obj.Set(key, value)
		if keyComment != "" {
			obj.Set(ToCommentKey(key), keyComment)
		} else if valueComment != "" {
			obj.Set(ToCommentKey(key), valueComment)
		}
	}
}

func (p *parser) parseObjects() (Object, error) {
	objects := NewObject()
	for {
		p.skipSpaceAndComments()
		if p.eof() {
			return objects, p.errorf("unterminated objects dictionary")
		}
		if p.peek() == '}' {
			p.pos++
			return objects, nil
		}

		uuid, err := p.parseString()
		if err != nil {
			return objects, err
		}
		p.skipSpace()
		comment := p.parseComment()
		p.skipSpaceAndComments()
		if err := p.expect('='); err != nil {
			return objects, err
		}
		p.skipSpaceAndComments()
		if err := p.expect('{'); err != nil {
			return objects, err
		}
		obj, err := p.parseDict(false)
		if err != nil {
			return objects, err
		}
		p.skipSpaceAndComments()
		if err := p.expect(';'); err != nil {
			return objects, err
		}

		isa := obj.GetString("isa")
		if isa == "" {
			return objects, p.errorf("object %s has no isa", uuid)
		}
		if !objects.Has(isa) {
			objects.Set(isa, NewObject())
		}
		objects.GetObject(isa).SetWithComment(uuid, obj, comment)
	}
}

func (p *parser) parseValue() (interface{}, error) {
	if p.eof() {
		return nil, p.errorf("unexpected end of input")
	}
	switch p.peek() {
	case '{':
		p.pos++
		return p.parseDict(false)
	case '(':
		p.pos++
		return p.parseArray()
	default:
		return p.parseString()
	}
}

// parseArray reads comma separated values up to the closing parenthesis.
// A trailing comma is allowed, Xcode always writes one.
func (p *parser) parseArray() ([]interface{}, error) {
	arr := []interface{}{}
	for {
		p.skipSpaceAndComments()
		if p.eof() {
			return arr, p.errorf("unterminated list")
		}
		if p.peek() == ')' {
			p.pos++
			return arr, nil
		}

		value, err := p.parseValue()
		if err != nil {
			return arr, err
		}
		p.skipSpace()
		comment := p.parseComment()
		if s, ok := value.(string); ok && comment != "" {
			value = NewObjectWithData([]ObjectItem{
				NewObjectItem("value", s),
				NewObjectItem("comment", comment),
			})
		}
		arr = append(arr, value)

		p.skipSpaceAndComments()
		if p.eof() {
			return arr, p.errorf("unterminated list")
		}
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return arr, nil
		default:
			return arr, p.errorf("expected ',' or ')' in list, found %q", p.peek())
		}
	}
}

func (p *parser) parseString() (string, error) {
	if p.eof() {
		return "", p.errorf("unexpected end of input")
	}
	start := p.pos
	if p.peek() == '"' {
		p.pos++
		for !p.eof() {
			switch p.src[p.pos] {
			case '\\':
				p.pos += 2
				continue
			case '"':
				p.pos++
				return string(p.src[start:p.pos]), nil
			}
			p.pos++
		}
		p.pos = start
		return "", p.errorf("unterminated quoted string")
	}

	for !p.eof() && isUnquotedChar(p.src[p.pos]) && !p.hasPrefix("/*") && !p.hasPrefix("//") {
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("unexpected %q", p.peek())
	}
	return string(p.src[start:p.pos]), nil
}

// parseComment consumes a /* block comment */ at the current position and
// returns its trimmed text, or "" when there is none.
func (p *parser) parseComment() string {
	if !p.hasPrefix("/*") {
		return ""
	}
	end := bytes.Index(p.src[p.pos+2:], []byte("*/"))
	if end < 0 {
		p.pos = len(p.src)
		return ""
	}
	text := string(p.src[p.pos+2 : p.pos+2+end])
	p.pos += end + 4
	return strings.TrimSpace(text)
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) skipSpaceAndComments() {
	for {
		p.skipSpace()
		switch {
		case p.hasPrefix("/*"):
			if p.parseComment() == "" && p.eof() {
				return
			}
		case p.hasPrefix("//"):
			end := bytes.IndexByte(p.src[p.pos:], '\n')
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end
		default:
			return
		}
	}
}

func (p *parser) expect(c byte) error {
	if p.eof() {
		return p.errorf("expected %q, found end of input", c)
	}
	if p.peek() != c {
		return p.errorf("expected %q, found %q", c, p.peek())
	}
	p.pos++
	return nil
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

func (p *parser) hasPrefix(s string) bool {
	return bytes.HasPrefix(p.src[p.pos:], []byte(s))
}

func (p *parser) errorf(format string, args ...interface{}) error {
	line, col := 1, 1
	for _, c := range p.src[:p.pos] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &ParseError{
		Filename: p.filename,
		Line:     line,
		Col:      col,
		Msg:      fmt.Sprintf(format, args...),
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isUnquotedChar(c byte) bool {
	switch c {
	case ';', ',', '=', '{', '}', '(', ')', '"':
		return false
	}
	return !isSpace(c)
}
