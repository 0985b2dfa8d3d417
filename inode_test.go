package blockfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInodeEncodeDecodeRoundTrip(t *testing.T) {
	ino := Inode{
		Size:           12345,
		IsDirectory:    true,
		SingleIndirect: 77,
	}
	ino.Direct[0] = 10
	ino.Direct[10] = 20

	buf := ino.encode()
	assert.Len(t, buf, InodeSize)

	decoded := decodeInode(buf)
	assert.Equal(t, ino, decoded)
}

func TestInodeEncodeDecodeNotDirectory(t *testing.T) {
	ino := Inode{Size: 1, IsDirectory: false}
	decoded := decodeInode(ino.encode())
	assert.False(t, decoded.IsDirectory)
}

func TestInodeLocation(t *testing.T) {
	const tableStart = 3

	block, slot := inodeLocation(tableStart, 0)
	assert.EqualValues(t, tableStart, block)
	assert.Equal(t, 0, slot)

	block, slot = inodeLocation(tableStart, 63)
	assert.EqualValues(t, tableStart, block)
	assert.Equal(t, 63, slot)

	block, slot = inodeLocation(tableStart, 64)
	assert.EqualValues(t, tableStart+1, block)
	assert.Equal(t, 0, slot)

	block, slot = inodeLocation(tableStart, 127)
	assert.EqualValues(t, tableStart+1, block)
	assert.Equal(t, 63, slot)
}

func TestIndirectBlockEncodeDecodeRoundTrip(t *testing.T) {
	ptrs := make([]uint32, IndirectPtrsPerBlock)
	ptrs[0] = 5
	ptrs[1023] = 999

	buf := encodeIndirectBlock(ptrs)
	assert.Len(t, buf, BlockSize)

	decoded := decodeIndirectBlock(buf)
	assert.Equal(t, ptrs, decoded)
}

func TestBlockForLogicalDirect(t *testing.T) {
	direct, slot, err := blockForLogical(10)
	assert.NoError(t, err)
	assert.True(t, direct)
	assert.EqualValues(t, 10, slot)
}

func TestBlockForLogicalIndirectStart(t *testing.T) {
	direct, slot, err := blockForLogical(DirectPointers)
	assert.NoError(t, err)
	assert.False(t, direct)
	assert.EqualValues(t, 0, slot)
}

func TestBlockForLogicalIndirectEnd(t *testing.T) {
	direct, slot, err := blockForLogical(DirectPointers + IndirectPtrsPerBlock - 1)
	assert.NoError(t, err)
	assert.False(t, direct)
	assert.EqualValues(t, IndirectPtrsPerBlock-1, slot)
}

func TestBlockForLogicalTooLarge(t *testing.T) {
	_, _, err := blockForLogical(DirectPointers + IndirectPtrsPerBlock)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
