package blockfs_test

import (
	"bytes"
	"testing"

	"github.com/nilbuf/blockfs"
	"github.com/nilbuf/blockfs/blockdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMounted(t *testing.T, nblocks int) *blockfs.FileSystem {
	t.Helper()
	dev := blockdev.NewMemDevice(nblocks)
	fs := blockfs.New(dev)
	require.NoError(t, fs.Format())
	return fs
}

func TestFormatThenStat(t *testing.T) {
	fs := newMounted(t, 100)

	var buf bytes.Buffer
	require.NoError(t, fs.Stat(&buf))
	assert.Contains(t, buf.String(), "Blocks: 100")
	assert.Contains(t, buf.String(), "Inodes: 100")
}

func TestCreateFileThenDuplicateFails(t *testing.T) {
	fs := newMounted(t, 100)

	require.NoError(t, fs.Create("/a.txt", false))
	err := fs.Create("/a.txt", false)
	assert.ErrorIs(t, err, blockfs.ErrAlreadyExists)
}

func TestCreateWithImplicitParents(t *testing.T) {
	fs := newMounted(t, 200)

	require.NoError(t, fs.Create("/a/b/c.txt", false))

	var buf bytes.Buffer
	require.NoError(t, fs.List("/a/b", &buf))
	assert.Equal(t, "c.txt 0\n", buf.String())
}

func TestCreateRejectsTooDeepPath(t *testing.T) {
	fs := newMounted(t, 200)

	path := ""
	for i := 0; i < 12; i++ {
		path += "/d"
	}
	err := fs.Create(path, false)
	assert.ErrorIs(t, err, blockfs.ErrTooDeep)
}

func TestCreateUnderFileFailsWithNotADirectory(t *testing.T) {
	fs := newMounted(t, 100)

	require.NoError(t, fs.Create("/a.txt", false))
	err := fs.Create("/a.txt/b.txt", false)
	assert.ErrorIs(t, err, blockfs.ErrNotADirectory)
}

func TestWriteThenReadSmallRoundTrip(t *testing.T) {
	fs := newMounted(t, 100)
	require.NoError(t, fs.Create("/a.txt", false))

	payload := bytes.Repeat([]byte{0xAB}, 128)
	n, err := fs.Write("/a.txt", payload, len(payload), false)
	require.NoError(t, err)
	assert.Equal(t, 128, n)

	out := make([]byte, 128)
	n, err = fs.Read("/a.txt", out, len(out), 0)
	require.NoError(t, err)
	assert.Equal(t, 128, n)
	assert.Equal(t, payload, out)
}

func TestWriteThenReadAcrossTwoBlocks(t *testing.T) {
	fs := newMounted(t, 200)
	require.NoError(t, fs.Create("/big.bin", false))

	payload := make([]byte, blockfs.BlockSize+500)
	for i := range payload {
		payload[i] = byte(i)
	}

	n, err := fs.Write("/big.bin", payload, len(payload), false)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)

	out := make([]byte, len(payload))
	n, err = fs.Read("/big.bin", out, len(out), 0)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, out)
}

func TestAppendExtendsFile(t *testing.T) {
	fs := newMounted(t, 100)
	require.NoError(t, fs.Create("/log.txt", false))

	first := []byte("hello-")
	second := []byte("world")

	_, err := fs.Write("/log.txt", first, len(first), false)
	require.NoError(t, err)
	_, err = fs.Write("/log.txt", second, len(second), true)
	require.NoError(t, err)

	out := make([]byte, len(first)+len(second))
	n, err := fs.Read("/log.txt", out, len(out), 0)
	require.NoError(t, err)
	assert.Equal(t, len(out), n)
	assert.Equal(t, "hello-world", string(out))
}

func TestRemoveRecursive(t *testing.T) {
	fs := newMounted(t, 200)
	require.NoError(t, fs.Create("/dir", true))
	require.NoError(t, fs.Create("/dir/a.txt", false))
	require.NoError(t, fs.Create("/dir/b.txt", false))

	require.NoError(t, fs.Remove("/dir"))

	var buf bytes.Buffer
	err := fs.List("/", &buf)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestReadMissingFileFails(t *testing.T) {
	fs := newMounted(t, 100)
	_, err := fs.Read("/missing.txt", make([]byte, 1), 1, 0)
	assert.ErrorIs(t, err, blockfs.ErrNotFound)
}

func TestOperationsFailWhenNotMounted(t *testing.T) {
	dev := blockdev.NewMemDevice(100)
	fs := blockfs.New(dev)

	err := fs.Create("/a.txt", false)
	assert.ErrorIs(t, err, blockfs.ErrNotMounted)
}
