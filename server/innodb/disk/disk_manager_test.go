package disk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sherlockouo/bustub/server/innodb/buffer_pool"
)

func TestFileDiskManagerWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "data.db")

	dm, err := NewFileDiskManager(path)
	require.NoError(t, err)
	defer dm.Close()

	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "NewFileDiskManager must create parent directories and the file")

	written := make([]byte, buffer_pool.PageSize)
	for i := range written {
		written[i] = byte(i % 251)
	}
	dm.WritePage(3, written)

	readBack := make([]byte, buffer_pool.PageSize)
	dm.ReadPage(3, readBack)
	assert.Equal(t, written, readBack)
}

func TestFileDiskManagerReadUnwrittenPageIsZeroed(t *testing.T) {
	dir := t.TempDir()
	dm, err := NewFileDiskManager(filepath.Join(dir, "data.db"))
	require.NoError(t, err)
	defer dm.Close()

	out := make([]byte, buffer_pool.PageSize)
	for i := range out {
		out[i] = 0xFF
	}
	dm.ReadPage(7, out)
	for _, b := range out {
		assert.Equal(t, byte(0), b)
	}
}

func TestMemoryDiskManagerRoundTrip(t *testing.T) {
	dm := NewMemoryDiskManager()

	data := make([]byte, buffer_pool.PageSize)
	data[0] = 0x11
	dm.WritePage(1, data)

	out := make([]byte, buffer_pool.PageSize)
	dm.ReadPage(1, out)
	assert.Equal(t, byte(0x11), out[0])
	assert.True(t, dm.Contains(1))
	assert.Equal(t, 1, dm.WriteCount())

	dm.DeallocatePage(1)
	assert.False(t, dm.Contains(1))
}
