package blockfs

import (
	"fmt"
	"io"

	"github.com/nilbuf/blockfs/blockdev"
)

// FileSystem is the mounted, in-memory view of a block device: the region
// layout, both bitmaps, and the device itself. All exported operations are
// methods on *FileSystem; every one other than Format and Mount requires the
// file system to be mounted first.
type FileSystem struct {
	device  blockdev.BlockDevice
	layout  Layout
	mounted bool

	blockBitmap *bitset
	inodeBitmap *bitset
}

// New wraps a block device without mounting it. Format or Mount must be
// called before any other operation.
func New(device blockdev.BlockDevice) *FileSystem {
	return &FileSystem{device: device}
}

// Format lays out a fresh file system across the entire device: it plans
// the region map from the device's block count, zeroes both bitmaps except
// for the blocks the layout itself occupies, writes an empty root directory,
// and leaves the file system mounted and ready for use.
func (fs *FileSystem) Format() error {
	totalBlocks := uint32(fs.device.Size())
	layout, err := planLayout(totalBlocks)
	if err != nil {
		return err
	}

	fs.layout = layout
	fs.blockBitmap = newBitset(int(layout.BlocksCount))
	fs.inodeBitmap = newBitset(int(layout.InodesCount))

	// Blocks [0, DataBlocksStart) are reserved for the superblock, bitmaps,
	// and inode table; mark them used up front so allocation never hands
	// them out as data blocks.
	for i := uint32(0); i < layout.DataBlocksStart; i++ {
		fs.blockBitmap.Mark(int(i))
	}
	// Inode 0 is reserved (a zero inode number means "no entry" in a
	// directory block), and inode 1 is the root directory.
	fs.inodeBitmap.Mark(0)
	fs.inodeBitmap.Mark(rootInodeNumber)

	if err := fs.writeBitmaps(); err != nil {
		return err
	}
	if err := fs.writeSuperblock(); err != nil {
		return err
	}

	rootBlock, err := fs.allocateBlock()
	if err != nil {
		return err
	}
	var empty directoryBlock
	if err := fs.writeBlock(rootBlock, empty.encode()); err != nil {
		return err
	}

	root := Inode{Size: BlockSize, IsDirectory: true}
	root.Direct[0] = rootBlock
	if err := fs.writeInode(rootInodeNumber, root); err != nil {
		return err
	}
	if err := fs.writeBitmaps(); err != nil {
		return err
	}

	fs.mounted = true
	return nil
}

// Mount reads the existing superblock and bitmaps off the device into
// memory, leaving the file system ready for use. It fails with
// ErrNotFormatted if the superblock is unreadable or internally
// inconsistent.
func (fs *FileSystem) Mount() error {
	buf := make([]byte, BlockSize)
	if _, err := fs.device.ReadBlock(0, buf); err != nil {
		return ErrNotFormatted.Wrap(err)
	}
	layout, err := decodeSuperblock(buf)
	if err != nil {
		return ErrNotFormatted.Wrap(err)
	}

	blockBitmapBuf := make([]byte, BlockSize)
	if _, err := fs.device.ReadBlock(layout.BlockBitmap, blockBitmapBuf); err != nil {
		return ErrNotFormatted.Wrap(err)
	}
	inodeBitmapBuf := make([]byte, BlockSize)
	if _, err := fs.device.ReadBlock(layout.InodeBitmap, inodeBitmapBuf); err != nil {
		return ErrNotFormatted.Wrap(err)
	}

	fs.layout = layout
	fs.blockBitmap = bitsetFromBlock(blockBitmapBuf, int(layout.BlocksCount))
	fs.inodeBitmap = bitsetFromBlock(inodeBitmapBuf, int(layout.InodesCount))
	fs.mounted = true
	return nil
}

// Unmount flushes both bitmaps to the device and marks the file system as
// no longer usable until Mount is called again.
func (fs *FileSystem) Unmount() error {
	if !fs.mounted {
		return ErrNotMounted
	}
	if err := fs.writeBitmaps(); err != nil {
		return err
	}
	fs.mounted = false
	return nil
}

// Stat writes a human-readable summary of the mounted file system's
// superblock to w.
func (fs *FileSystem) Stat(w io.Writer) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w,
		"Superblock:\n    Blocks: %d\n    Inodes: %d\n    Inode Table Block Start: %d\n    Data Blocks Start: %d\n",
		fs.layout.BlocksCount, fs.layout.InodesCount, fs.layout.InodeTableStart, fs.layout.DataBlocksStart)
	return err
}

const rootInodeNumber = 1

func (fs *FileSystem) requireMounted() error {
	if !fs.mounted {
		return ErrNotMounted
	}
	return nil
}

func (fs *FileSystem) readBlock(blocknum uint32) ([]byte, error) {
	buf := make([]byte, BlockSize)
	if _, err := fs.device.ReadBlock(blocknum, buf); err != nil {
		return nil, ErrIOError.Wrap(err)
	}
	return buf, nil
}

func (fs *FileSystem) writeBlock(blocknum uint32, buf []byte) error {
	if _, err := fs.device.WriteBlock(blocknum, buf); err != nil {
		return ErrIOError.Wrap(err)
	}
	return nil
}

func (fs *FileSystem) writeBitmaps() error {
	if err := fs.writeBlock(fs.layout.BlockBitmap, fs.blockBitmap.toBlock()); err != nil {
		return err
	}
	return fs.writeBlock(fs.layout.InodeBitmap, fs.inodeBitmap.toBlock())
}

func (fs *FileSystem) writeSuperblock() error {
	return fs.writeBlock(0, encodeSuperblock(fs.layout))
}

// allocateBlock reserves the lowest-numbered free data block, persists the
// updated block bitmap, and zero-fills the block on disk.
func (fs *FileSystem) allocateBlock() (uint32, error) {
	idx, err := fs.blockBitmap.FindFirstFree()
	if err != nil {
		return 0, err
	}
	fs.blockBitmap.Mark(idx)
	if err := fs.writeBlock(fs.layout.BlockBitmap, fs.blockBitmap.toBlock()); err != nil {
		return 0, err
	}
	if err := fs.writeBlock(uint32(idx), make([]byte, BlockSize)); err != nil {
		return 0, err
	}
	return uint32(idx), nil
}

func (fs *FileSystem) freeBlock(blocknum uint32) error {
	fs.blockBitmap.Clear(int(blocknum))
	return fs.writeBlock(fs.layout.BlockBitmap, fs.blockBitmap.toBlock())
}

// allocateInode reserves the lowest-numbered free inode and persists the
// updated inode bitmap.
func (fs *FileSystem) allocateInode() (uint32, error) {
	idx, err := fs.inodeBitmap.FindFirstFree()
	if err != nil {
		return 0, err
	}
	fs.inodeBitmap.Mark(idx)
	if err := fs.writeBlock(fs.layout.InodeBitmap, fs.inodeBitmap.toBlock()); err != nil {
		return 0, err
	}
	return uint32(idx), nil
}

func (fs *FileSystem) freeInode(idx uint32) error {
	fs.inodeBitmap.Clear(int(idx))
	return fs.writeBlock(fs.layout.InodeBitmap, fs.inodeBitmap.toBlock())
}

func (fs *FileSystem) readInode(idx uint32) (Inode, error) {
	block, slot := inodeLocation(fs.layout.InodeTableStart, idx)
	buf, err := fs.readBlock(block)
	if err != nil {
		return Inode{}, err
	}
	off := slot * InodeSize
	return decodeInode(buf[off : off+InodeSize]), nil
}

func (fs *FileSystem) writeInode(idx uint32, ino Inode) error {
	block, slot := inodeLocation(fs.layout.InodeTableStart, idx)
	buf, err := fs.readBlock(block)
	if err != nil {
		return err
	}
	off := slot * InodeSize
	copy(buf[off:off+InodeSize], ino.encode())
	return fs.writeBlock(block, buf)
}

// resolvePhysicalBlock returns the physical block number backing logical
// block `logical` of the file described by ino. It returns 0 with no error
// if the logical block is a hole (never written).
func (fs *FileSystem) resolvePhysicalBlock(ino Inode, logical uint32) (uint32, error) {
	direct, slot, err := blockForLogical(logical)
	if err != nil {
		return 0, err
	}
	if direct {
		return ino.Direct[slot], nil
	}
	if ino.SingleIndirect == 0 {
		return 0, nil
	}
	buf, err := fs.readBlock(ino.SingleIndirect)
	if err != nil {
		return 0, err
	}
	ptrs := decodeIndirectBlock(buf)
	return ptrs[slot], nil
}

// ensurePhysicalBlock is like resolvePhysicalBlock but allocates a block (and
// the single-indirect block, if needed) on first write, persisting the
// updated indirect block as needed. It returns the physical block number and
// records any new pointers in *ino; the caller persists the inode once all of
// a write's blocks have been assigned.
func (fs *FileSystem) ensurePhysicalBlock(ino *Inode, logical uint32) (uint32, error) {
	direct, slot, err := blockForLogical(logical)
	if err != nil {
		return 0, err
	}
	if direct {
		if ino.Direct[slot] == 0 {
			physical, err := fs.allocateBlock()
			if err != nil {
				return 0, err
			}
			ino.Direct[slot] = physical
		}
		return ino.Direct[slot], nil
	}

	if ino.SingleIndirect == 0 {
		physical, err := fs.allocateBlock()
		if err != nil {
			return 0, err
		}
		ino.SingleIndirect = physical
	}
	buf, err := fs.readBlock(ino.SingleIndirect)
	if err != nil {
		return 0, err
	}
	ptrs := decodeIndirectBlock(buf)
	if ptrs[slot] == 0 {
		physical, err := fs.allocateBlock()
		if err != nil {
			return 0, err
		}
		ptrs[slot] = physical
		if err := fs.writeBlock(ino.SingleIndirect, encodeIndirectBlock(ptrs)); err != nil {
			return 0, err
		}
	}
	return ptrs[slot], nil
}
