package blockfs

import "encoding/binary"

// Superblock layout, block 0, little-endian:
//
//	offset  0: magic             (4 bytes, must equal superblockMagic)
//	offset  4: BlocksCount        (4 bytes)
//	offset  8: InodesCount        (4 bytes)
//	offset 12: BlockBitmap        (4 bytes)
//	offset 16: InodeBitmap        (4 bytes)
//	offset 20: InodeTableStart    (4 bytes)
//	offset 24: DataBlocksStart    (4 bytes)
const superblockMagic = 0xB10C0FA5

func encodeSuperblock(l Layout) []byte {
	buf := make([]byte, BlockSize)
	binary.LittleEndian.PutUint32(buf[0:4], superblockMagic)
	binary.LittleEndian.PutUint32(buf[4:8], l.BlocksCount)
	binary.LittleEndian.PutUint32(buf[8:12], l.InodesCount)
	binary.LittleEndian.PutUint32(buf[12:16], l.BlockBitmap)
	binary.LittleEndian.PutUint32(buf[16:20], l.InodeBitmap)
	binary.LittleEndian.PutUint32(buf[20:24], l.InodeTableStart)
	binary.LittleEndian.PutUint32(buf[24:28], l.DataBlocksStart)
	return buf
}

// decodeSuperblock parses a superblock block, returning ErrNotFormatted if
// the magic number doesn't match.
func decodeSuperblock(buf []byte) (Layout, error) {
	if binary.LittleEndian.Uint32(buf[0:4]) != superblockMagic {
		return Layout{}, ErrNotFormatted.WithMessage("bad superblock magic")
	}
	return Layout{
		BlocksCount:     binary.LittleEndian.Uint32(buf[4:8]),
		InodesCount:     binary.LittleEndian.Uint32(buf[8:12]),
		BlockBitmap:     binary.LittleEndian.Uint32(buf[12:16]),
		InodeBitmap:     binary.LittleEndian.Uint32(buf[16:20]),
		InodeTableStart: binary.LittleEndian.Uint32(buf[20:24]),
		DataBlocksStart: binary.LittleEndian.Uint32(buf[24:28]),
	}, nil
}
