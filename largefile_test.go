package blockfs_test

import (
	"bytes"
	"testing"

	"github.com/nilbuf/blockfs"
	"github.com/nilbuf/blockfs/blockdev"
	"github.com/stretchr/testify/require"
)

// buildLargeFixture produces deterministic test data of the given size
// without needing a pre-built binary blob.
func buildLargeFixture(size int) []byte {
	seed := bytes.Repeat([]byte{0x10, 0x20, 0x30, 0x40}, size/4+1)
	return seed[:size]
}

func TestWriteThenReadLargeFileSpanningIndirectBlocks(t *testing.T) {
	const totalSize = (blockfs.DirectPointers + 600) * blockfs.BlockSize

	dev := blockdev.NewMemDevice(totalSize/blockfs.BlockSize + 64)
	fs := blockfs.New(dev)
	require.NoError(t, fs.Format())
	require.NoError(t, fs.Create("/huge.bin", false))

	payload := buildLargeFixture(totalSize)

	n, err := fs.Write("/huge.bin", payload, len(payload), false)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)

	out := make([]byte, len(payload))
	n, err = fs.Read("/huge.bin", out, len(out), 0)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.True(t, bytes.Equal(payload, out))
}

func TestWriteRejectsFileLargerThanMaxSize(t *testing.T) {
	dev := blockdev.NewMemDevice(32768)
	fs := blockfs.New(dev)
	require.NoError(t, fs.Format())
	require.NoError(t, fs.Create("/overflow.bin", false))

	payload := make([]byte, blockfs.MaxFileBytes+blockfs.BlockSize)
	_, err := fs.Write("/overflow.bin", payload, len(payload), false)
	require.ErrorIs(t, err, blockfs.ErrFileTooLarge)
}
