package blockfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanLayoutReferenceSizes(t *testing.T) {
	cases := []struct {
		totalBlocks     uint32
		dataBlocksStart uint32
	}{
		{16, 4},
		{100, 5},
		{1000, 19},
	}

	for _, c := range cases {
		layout, err := planLayout(c.totalBlocks)
		require.NoError(t, err)
		assert.Equal(t, c.totalBlocks, layout.BlocksCount)
		assert.Equal(t, c.totalBlocks, layout.InodesCount)
		assert.EqualValues(t, 1, layout.BlockBitmap)
		assert.EqualValues(t, 2, layout.InodeBitmap)
		assert.EqualValues(t, 3, layout.InodeTableStart)
		assert.Equal(t, c.dataBlocksStart, layout.DataBlocksStart, "total=%d", c.totalBlocks)
	}
}

func TestPlanLayoutRejectsTooFewBlocks(t *testing.T) {
	_, err := planLayout(3)
	assert.Error(t, err)
}

func TestPlanLayoutRejectsOversizedDisk(t *testing.T) {
	_, err := planLayout(40000)
	assert.Error(t, err)
}
