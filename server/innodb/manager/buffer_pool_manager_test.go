package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sherlockouo/bustub/server/innodb/buffer_pool"
	"github.com/Sherlockouo/bustub/server/innodb/disk"
)

func newTestManager(t *testing.T, poolSize int) *BufferPoolManager {
	t.Helper()
	d := disk.NewMemoryDiskManager()
	pool := buffer_pool.NewPoolInstance(poolSize, d, nil)
	return NewBufferPoolManagerWithPool(pool)
}

func TestBufferPoolManagerFetchAndUnpinRoundTrip(t *testing.T) {
	mgr := newTestManager(t, 4)

	pageID, frame, err := mgr.NewPage()
	require.NoError(t, err)
	frame.Data()[0] = 0x5A

	require.NoError(t, mgr.Unpin(pageID, true))
	require.NoError(t, mgr.Flush(pageID))

	frame2, err := mgr.Fetch(pageID)
	require.NoError(t, err)
	assert.Equal(t, byte(0x5A), frame2.Data()[0])
	require.NoError(t, mgr.Unpin(pageID, false))
}

func TestBufferPoolManagerUnpinUnknownPageReturnsError(t *testing.T) {
	mgr := newTestManager(t, 2)
	assert.ErrorIs(t, mgr.Unpin(999, false), ErrPageNotFound)
}

func TestBufferPoolManagerDeletePinnedPageReturnsError(t *testing.T) {
	mgr := newTestManager(t, 2)
	pageID, _, err := mgr.NewPage()
	require.NoError(t, err)
	assert.ErrorIs(t, mgr.DeletePage(pageID), ErrFrameLocked)
}

func TestBufferPoolManagerCloseIsIdempotentProtected(t *testing.T) {
	mgr := newTestManager(t, 2)
	require.NoError(t, mgr.Close())
	assert.ErrorIs(t, mgr.Close(), ErrManagerClosed)
}

func TestBufferPoolManagerStatsReflectActivity(t *testing.T) {
	mgr := newTestManager(t, 2)
	pageID, _, err := mgr.NewPage()
	require.NoError(t, err)
	require.NoError(t, mgr.Unpin(pageID, false))

	_, err = mgr.Fetch(pageID)
	require.NoError(t, err)
	require.NoError(t, mgr.Unpin(pageID, false))

	stats := mgr.Stats()
	assert.GreaterOrEqual(t, stats.Hits(), uint64(1))
}
