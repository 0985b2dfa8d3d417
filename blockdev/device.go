// Package blockdev implements the block device contract that the file
// system core consumes: a fixed-count, fixed-size sequence of blocks backed
// by a host file, with every unwritten block reading as zeroes.
//
// This is deliberately the "dumb" layer of the module: no bitmaps, no
// caching, no knowledge of inodes or directories. The core engine in the
// parent package is the only thing that interprets what a block contains.
package blockdev

import (
	"fmt"
	"io"
	"os"
)

// BlockSize is the fixed size, in bytes, of every block on the device.
const BlockSize = 4096

// Device is a virtual disk: a host file treated as an array of fixed-size
// blocks. The zero value is not usable; construct one with Init or Open.
type Device struct {
	file   *os.File
	blocks int
	reads  int
	writes int
}

// Init creates a new virtual disk at path with nblocks blocks, all
// zero-filled. It truncates any existing file at that path.
func Init(path string, nblocks int) (*Device, error) {
	if nblocks <= 0 {
		return nil, fmt.Errorf("blockdev: nblocks must be positive, got %d", nblocks)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("blockdev: could not create %q: %w", path, err)
	}

	zero := make([]byte, BlockSize)
	for i := 0; i < nblocks; i++ {
		if _, err := file.Write(zero); err != nil {
			file.Close()
			return nil, fmt.Errorf("blockdev: could not zero-fill block %d: %w", i, err)
		}
	}

	return &Device{file: file, blocks: nblocks}, nil
}

// Open opens an existing virtual disk file that already contains nblocks
// blocks, without touching its contents.
func Open(path string, nblocks int) (*Device, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("blockdev: could not open %q: %w", path, err)
	}
	return &Device{file: file, blocks: nblocks}, nil
}

// Size returns the number of blocks on the device.
func (d *Device) Size() int {
	return d.blocks
}

func (d *Device) sanityCheck(blocknum uint32, buf []byte) error {
	if int(blocknum) >= d.blocks {
		return fmt.Errorf("blockdev: block number %d must be less than %d", blocknum, d.blocks)
	}
	if buf == nil {
		return fmt.Errorf("blockdev: buffer cannot be nil")
	}
	if len(buf) != BlockSize {
		return fmt.Errorf("blockdev: buffer must be exactly %d bytes, got %d", BlockSize, len(buf))
	}
	return nil
}

// ReadBlock reads exactly one BlockSize-byte block into buf.
func (d *Device) ReadBlock(blocknum uint32, buf []byte) (int, error) {
	if err := d.sanityCheck(blocknum, buf); err != nil {
		return -1, err
	}

	if _, err := d.file.Seek(int64(blocknum)*BlockSize, io.SeekStart); err != nil {
		return -1, fmt.Errorf("blockdev: seek to block %d failed: %w", blocknum, err)
	}

	n, err := io.ReadFull(d.file, buf)
	if err != nil {
		return -1, fmt.Errorf("blockdev: could not read block %d: %w", blocknum, err)
	}

	d.reads++
	return n, nil
}

// WriteBlock writes exactly one BlockSize-byte block from buf.
func (d *Device) WriteBlock(blocknum uint32, buf []byte) (int, error) {
	if err := d.sanityCheck(blocknum, buf); err != nil {
		return -1, err
	}

	if _, err := d.file.Seek(int64(blocknum)*BlockSize, io.SeekStart); err != nil {
		return -1, fmt.Errorf("blockdev: seek to block %d failed: %w", blocknum, err)
	}

	n, err := d.file.Write(buf)
	if err != nil {
		return -1, fmt.Errorf("blockdev: could not write block %d: %w", blocknum, err)
	}

	d.writes++
	return n, nil
}

// Close flushes and closes the underlying file. When log is true, it prints
// the number of block reads and writes performed over the device's lifetime.
func (d *Device) Close(log bool) error {
	if d.file == nil {
		return fmt.Errorf("blockdev: disk is not open")
	}

	if err := d.file.Sync(); err != nil {
		return fmt.Errorf("blockdev: could not flush disk: %w", err)
	}
	if err := d.file.Close(); err != nil {
		return fmt.Errorf("blockdev: could not close disk: %w", err)
	}

	if log {
		fmt.Printf("   Reads (Blocks): %d\n", d.reads)
		fmt.Printf("   Writes (Blocks): %d\n", d.writes)
		fmt.Printf("   Disk closed.\n")
	}

	d.file = nil
	return nil
}
