package pbxproj

import (
	"regexp"
	"strings"

	"github.com/gofrs/uuid"
)

// UUIDLength is the length of an object identifier in a pbxproj file.
const UUIDLength = 24

var uuidRegex = regexp.MustCompile(`\b[0-9A-F]{24}\b`)

// IsUUID reports whether s looks like an object identifier.
func IsUUID(s string) bool {
	return len(s) == UUIDLength && uuidRegex.MatchString(s)
}

// UUIDSet tracks the identifiers already used in a project so new ones
// never collide with them.
type UUIDSet map[string]struct{}

func NewUUIDSet(ids ...string) UUIDSet {
	set := make(UUIDSet, len(ids))
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

// ScanUUIDs collects every identifier-shaped token of a raw document.
func ScanUUIDs(text string) UUIDSet {
	return NewUUIDSet(uuidRegex.FindAllString(text, -1)...)
}

func (s UUIDSet) Add(id string) {
	s[id] = struct{}{}
}

func (s UUIDSet) Has(id string) bool {
	_, found := s[id]
	return found
}

// Generate returns a random 24 digit uppercase hex identifier that is not
// in the set yet, and records it.
func (s UUIDSet) Generate() string {
	for {
		u, _ := uuid.NewV4()
		id := strings.ToUpper(strings.ReplaceAll(u.String(), "-", "")[0:UUIDLength])
		if !s.Has(id) {
			s.Add(id)
			return id
		}
	}
}
