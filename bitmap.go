package blockfs

import (
	"github.com/boljen/go-bitmap"
)

// bitset is a thin wrapper around github.com/boljen/go-bitmap sized to a
// fixed capacity (the number of blocks or inodes it tracks), with
// serialization to/from a single on-disk bitmap block.
//
// Allocation policy is monotonically lowest-free-index-first (spec): two of
// these are kept in memory while mounted, one for data blocks and one for
// inodes, and each is written back to disk whenever a bit in it changes.
type bitset struct {
	bm       bitmap.Bitmap
	capacity int
}

func newBitset(capacity int) *bitset {
	return &bitset{bm: bitmap.New(capacity), capacity: capacity}
}

// bitsetFromBlock reconstructs a bitset of the given capacity from a
// BlockSize-byte on-disk bitmap block.
func bitsetFromBlock(block []byte, capacity int) *bitset {
	byteLen := (capacity + 7) / 8
	data := make([]byte, byteLen)
	copy(data, block[:byteLen])
	return &bitset{bm: bitmap.Bitmap(data), capacity: capacity}
}

// toBlock serializes the bitset into a zero-padded BlockSize-byte block
// suitable for writing straight to disk.
func (b *bitset) toBlock() []byte {
	block := make([]byte, BlockSize)
	copy(block, b.bm.Data(false))
	return block
}

func (b *bitset) IsSet(i int) bool {
	return b.bm.Get(i)
}

func (b *bitset) Mark(i int) {
	b.bm.Set(i, true)
}

func (b *bitset) Clear(i int) {
	b.bm.Set(i, false)
}

// FindFirstFree scans from low to high and returns the first clear bit in
// [0, capacity). It fails with ErrOutOfSpace if none exists.
func (b *bitset) FindFirstFree() (int, error) {
	for i := 0; i < b.capacity; i++ {
		if !b.bm.Get(i) {
			return i, nil
		}
	}
	return 0, ErrOutOfSpace
}
