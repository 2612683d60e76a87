// Package manager wraps the buffer_pool core with the process-level
// concerns the teacher's BufferPoolManager carried: a background flush
// ticker, aggregated stats, and config-driven construction.
package manager

import (
	"sync"
	"time"

	"github.com/Sherlockouo/bustub/logger"
	"github.com/Sherlockouo/bustub/server/conf"
	"github.com/Sherlockouo/bustub/server/innodb/buffer_pool"
	"github.com/Sherlockouo/bustub/server/innodb/disk"
)

// Pool is the subset of buffer_pool.PoolInstance / buffer_pool.ParallelPool
// the manager needs; both satisfy it without modification.
type Pool interface {
	Fetch(pageID buffer_pool.PageID) (*buffer_pool.Frame, bool)
	NewPage() (buffer_pool.PageID, *buffer_pool.Frame, bool)
	Unpin(pageID buffer_pool.PageID, isDirty bool) bool
	Flush(pageID buffer_pool.PageID) bool
	FlushAll()
	Delete(pageID buffer_pool.PageID) bool
	StatsSnapshot() buffer_pool.PoolStats
}

var (
	_ Pool = (*buffer_pool.PoolInstance)(nil)
	_ Pool = (*buffer_pool.ParallelPool)(nil)
)

// BufferPoolManager owns a Pool plus the disk manager it was built on, and
// drives periodic flushing so dirty pages don't accumulate indefinitely
// between explicit Flush/FlushAll calls from clients.
type BufferPoolManager struct {
	mu sync.Mutex

	pool Pool
	disk *disk.FileDiskManager

	flushTicker *time.Ticker
	stopChan    chan struct{}
	closed      bool
}

// NewBufferPoolManager builds a manager backed by a file disk manager and no
// log manager, sized and paced from cfg: a single, unsharded pool instance
// when cfg.NumInstances <= 1, otherwise a ParallelPool of cfg.NumInstances
// shards of cfg.PoolSize frames each.
func NewBufferPoolManager(cfg *conf.Cfg) (*BufferPoolManager, error) {
	d, err := disk.NewFileDiskManager(cfg.DataFile)
	if err != nil {
		return nil, err
	}

	var pool Pool
	if cfg.NumInstances <= 1 {
		pool = buffer_pool.NewPoolInstance(cfg.PoolSize, d, nil)
	} else {
		pool = buffer_pool.NewParallelPool(cfg.PoolSize, cfg.NumInstances, d, nil)
	}

	bpm := &BufferPoolManager{
		pool:     pool,
		disk:     d,
		stopChan: make(chan struct{}),
	}
	bpm.startBackgroundFlush(cfg.FlushIntervalDuration)
	return bpm, nil
}

// NewBufferPoolManagerWithPool wraps an already-constructed Pool (typically
// with a MemoryDiskManager, for tests) without starting a background flush
// loop.
func NewBufferPoolManagerWithPool(pool Pool) *BufferPoolManager {
	return &BufferPoolManager{pool: pool, stopChan: make(chan struct{})}
}

func (bpm *BufferPoolManager) startBackgroundFlush(interval time.Duration) {
	if interval <= 0 {
		return
	}
	bpm.flushTicker = time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-bpm.flushTicker.C:
				bpm.pool.FlushAll()
				snap := bpm.pool.StatsSnapshot()
				logger.Debugf("manager: background flush complete, hit ratio %.2f", snap.HitRatio())
			case <-bpm.stopChan:
				return
			}
		}
	}()
}

// Fetch pins and returns the frame holding pageID.
func (bpm *BufferPoolManager) Fetch(pageID buffer_pool.PageID) (*buffer_pool.Frame, error) {
	frame, ok := bpm.pool.Fetch(pageID)
	if !ok {
		return nil, ErrPoolExhausted
	}
	return frame, nil
}

// NewPage allocates and pins a fresh page.
func (bpm *BufferPoolManager) NewPage() (buffer_pool.PageID, *buffer_pool.Frame, error) {
	pageID, frame, ok := bpm.pool.NewPage()
	if !ok {
		return buffer_pool.InvalidPageID, nil, ErrPoolExhausted
	}
	return pageID, frame, nil
}

// Unpin decrements pageID's pin count.
func (bpm *BufferPoolManager) Unpin(pageID buffer_pool.PageID, isDirty bool) error {
	if !bpm.pool.Unpin(pageID, isDirty) {
		return ErrPageNotFound
	}
	return nil
}

// Flush writes pageID to disk unconditionally.
func (bpm *BufferPoolManager) Flush(pageID buffer_pool.PageID) error {
	if !bpm.pool.Flush(pageID) {
		return ErrPageNotFound
	}
	return nil
}

// FlushAll writes every resident page to disk.
func (bpm *BufferPoolManager) FlushAll() {
	bpm.pool.FlushAll()
}

// DeletePage evicts and deallocates pageID.
func (bpm *BufferPoolManager) DeletePage(pageID buffer_pool.PageID) error {
	if !bpm.pool.Delete(pageID) {
		return ErrFrameLocked
	}
	return nil
}

// Stats returns a snapshot of the wrapped pool's cumulative counters.
func (bpm *BufferPoolManager) Stats() buffer_pool.PoolStats {
	return bpm.pool.StatsSnapshot()
}

// Close stops the background flush loop, flushes every dirty page one last
// time, and releases the disk manager's file handle.
func (bpm *BufferPoolManager) Close() error {
	bpm.mu.Lock()
	defer bpm.mu.Unlock()
	if bpm.closed {
		return ErrManagerClosed
	}
	bpm.closed = true

	if bpm.flushTicker != nil {
		bpm.flushTicker.Stop()
		close(bpm.stopChan)
	}
	bpm.pool.FlushAll()

	if bpm.disk != nil {
		return bpm.disk.Close()
	}
	return nil
}
