package blockfs

import "encoding/binary"

// Inode is the in-memory form of a 64-byte on-disk inode: a size, a
// directory flag, 11 direct block pointers, and one single-indirect
// pointer. A pointer value of 0 means "no block assigned".
type Inode struct {
	Size           uint64
	IsDirectory    bool
	Direct         [DirectPointers]uint32
	SingleIndirect uint32
}

// On-disk layout of an inode, 64 bytes total (INODE_SIZE):
//
//	offset  0: Size            (8 bytes, uint64 LE)
//	offset  8: IsDirectory      (4 bytes, uint32 LE, 0 or 1)
//	offset 12: Direct[0..10]    (44 bytes, 11 x uint32 LE)
//	offset 56: SingleIndirect   (4 bytes, uint32 LE)
//	offset 60: reserved         (4 bytes, always zero)
const (
	inodeOffSize           = 0
	inodeOffIsDirectory    = 8
	inodeOffDirect         = 12
	inodeOffSingleIndirect = inodeOffDirect + DirectPointers*4
)

// decodeInode reads a 64-byte buffer into an Inode.
func decodeInode(buf []byte) Inode {
	var ino Inode
	ino.Size = binary.LittleEndian.Uint64(buf[inodeOffSize:])
	ino.IsDirectory = binary.LittleEndian.Uint32(buf[inodeOffIsDirectory:]) != 0
	for i := 0; i < DirectPointers; i++ {
		off := inodeOffDirect + i*4
		ino.Direct[i] = binary.LittleEndian.Uint32(buf[off:])
	}
	ino.SingleIndirect = binary.LittleEndian.Uint32(buf[inodeOffSingleIndirect:])
	return ino
}

// encode writes the inode into a freshly allocated InodeSize-byte buffer.
func (ino Inode) encode() []byte {
	buf := make([]byte, InodeSize)
	binary.LittleEndian.PutUint64(buf[inodeOffSize:], ino.Size)
	if ino.IsDirectory {
		binary.LittleEndian.PutUint32(buf[inodeOffIsDirectory:], 1)
	}
	for i, ptr := range ino.Direct {
		off := inodeOffDirect + i*4
		binary.LittleEndian.PutUint32(buf[off:], ptr)
	}
	binary.LittleEndian.PutUint32(buf[inodeOffSingleIndirect:], ino.SingleIndirect)
	return buf
}

// inodeLocation computes which inode-table block holds inode idx, and at
// what slot within that block, per spec: table_block = inode_table_start +
// idx/64, offset = idx%64.
func inodeLocation(inodeTableStart uint32, idx uint32) (block uint32, slot int) {
	return inodeTableStart + idx/InodesPerBlock, int(idx % InodesPerBlock)
}

// decodeIndirectBlock reads a BlockSize-byte indirect-pointer block into its
// 1024 uint32 data-block pointers (0 means unassigned).
func decodeIndirectBlock(buf []byte) []uint32 {
	ptrs := make([]uint32, IndirectPtrsPerBlock)
	for i := range ptrs {
		ptrs[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return ptrs
}

// encodeIndirectBlock serializes 1024 data-block pointers into a fresh
// BlockSize-byte block.
func encodeIndirectBlock(ptrs []uint32) []byte {
	buf := make([]byte, BlockSize)
	for i, ptr := range ptrs {
		binary.LittleEndian.PutUint32(buf[i*4:], ptr)
	}
	return buf
}

// blockForLogical translates a file-logical block index into the slot that
// holds its physical pointer: either a direct slot in the inode itself, or
// a slot in the single-indirect block. It does not resolve the indirect
// block's contents -- callers needing the physical pointer must read the
// indirect block themselves.
func blockForLogical(logical uint32) (direct bool, slot uint32, err error) {
	if logical < DirectPointers {
		return true, logical, nil
	}
	if logical < DirectPointers+IndirectPtrsPerBlock {
		return false, logical - DirectPointers, nil
	}
	return false, 0, ErrFileTooLarge
}
