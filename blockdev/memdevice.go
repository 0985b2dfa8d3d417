package blockdev

import (
	"fmt"
	"io"

	"github.com/xaionaro-go/bytesextra"
)

// MemDevice is an in-memory Device backed by a byte slice instead of a host
// file, for tests that don't want to touch the file system. It implements
// the same block contract as Device.
type MemDevice struct {
	stream io.ReadWriteSeeker
	blocks int
	reads  int
	writes int
}

// NewMemDevice creates a zero-filled in-memory disk of nblocks blocks.
func NewMemDevice(nblocks int) *MemDevice {
	storage := make([]byte, nblocks*BlockSize)
	return &MemDevice{
		stream: bytesextra.NewReadWriteSeeker(storage),
		blocks: nblocks,
	}
}

func (d *MemDevice) Size() int {
	return d.blocks
}

func (d *MemDevice) sanityCheck(blocknum uint32, buf []byte) error {
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

func (d *MemDevice) ReadBlock(blocknum uint32, buf []byte) (int, error) {
	if err := d.sanityCheck(blocknum, buf); err != nil {
		return -1, err
	}
	if _, err := d.stream.Seek(int64(blocknum)*BlockSize, io.SeekStart); err != nil {
		return -1, err
	}
	n, err := io.ReadFull(d.stream, buf)
	if err != nil {
		return -1, err
	}
	d.reads++
	return n, nil
}

func (d *MemDevice) WriteBlock(blocknum uint32, buf []byte) (int, error) {
	if err := d.sanityCheck(blocknum, buf); err != nil {
		return -1, err
	}
	if _, err := d.stream.Seek(int64(blocknum)*BlockSize, io.SeekStart); err != nil {
		return -1, err
	}
	n, err := d.stream.Write(buf)
	if err != nil {
		return -1, err
	}
	d.writes++
	return n, nil
}

func (d *MemDevice) Close(log bool) error {
	if log {
		fmt.Printf("   Reads (Blocks): %d\n", d.reads)
		fmt.Printf("   Writes (Blocks): %d\n", d.writes)
		fmt.Printf("   Disk closed.\n")
	}
	return nil
}
