package blockfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryBlockEncodeDecodeRoundTrip(t *testing.T) {
	var db directoryBlock
	slot, ok := db.firstFreeSlot()
	require.True(t, ok)
	db = db.insert(slot, dirEntry{InodeNumber: 5, Name: "foo"})

	buf := db.encode()
	assert.Len(t, buf, BlockSize)

	decoded := decodeDirectoryBlock(buf)
	entry, found := decoded.lookup("foo")
	require.True(t, found)
	assert.EqualValues(t, 5, entry.InodeNumber)
}

func TestDirectoryBlockLookupMissing(t *testing.T) {
	var db directoryBlock
	_, found := db.lookup("nope")
	assert.False(t, found)
}

func TestDirectoryBlockFirstFreeSlotFullBlock(t *testing.T) {
	var db directoryBlock
	for i := range db.entries {
		db.entries[i] = dirEntry{InodeNumber: uint32(i + 1), Name: "x"}
	}
	_, ok := db.firstFreeSlot()
	assert.False(t, ok)
}

func TestDirectoryBlockIsEmpty(t *testing.T) {
	var db directoryBlock
	assert.True(t, db.isEmpty())

	db.entries[3] = dirEntry{InodeNumber: 1, Name: "a"}
	assert.False(t, db.isEmpty())
}

func TestDirectoryBlockRemove(t *testing.T) {
	var db directoryBlock
	db.entries[0] = dirEntry{InodeNumber: 9, Name: "gone"}

	db, removed := db.remove("gone")
	assert.True(t, removed)
	assert.True(t, db.isEmpty())

	_, removedAgain := db.remove("gone")
	assert.False(t, removedAgain)
}
