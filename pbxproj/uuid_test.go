package pbxproj

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("DEADBEEF0000000000000001"))
	assert.False(t, IsUUID("deadbeef0000000000000001"))
	assert.False(t, IsUUID("DEADBEEF000000000000001"))
	assert.False(t, IsUUID("DEADBEEF00000000000000012"))
	assert.False(t, IsUUID("DEADBEEF00000000000000G1"))
}

func TestUUIDSet_Generate(t *testing.T) {
	set := NewUUIDSet("DEADBEEF0000000000000001")

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := set.Generate()
		assert.True(t, IsUUID(id), id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		assert.True(t, set.Has(id))
	}
	assert.Len(t, set, 101)
}

func TestScanUUIDs(t *testing.T) {
	set := ScanUUIDs("A1000000000000000000000D /* FirebaseFirestore */ = {productRef = DEADBEEF0000000000000001; name = NOTANID;}")
	assert.True(t, set.Has("A1000000000000000000000D"))
	assert.True(t, set.Has("DEADBEEF0000000000000001"))
	assert.Len(t, set, 2)
}

func TestProjectGenerateUuidAvoidsExisting(t *testing.T) {
	project, _ := loadFixture(t)
	assert.True(t, project.HasUUID("A10000000000000000000015"))

	id := project.GenerateUuid()
	assert.True(t, IsUUID(id))
	assert.True(t, project.HasUUID(id))
}
