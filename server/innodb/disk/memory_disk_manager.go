package disk

import (
	"sync"

	"github.com/Sherlockouo/bustub/server/innodb/buffer_pool"
)

// MemoryDiskManager is an in-memory stand-in for FileDiskManager, used by
// tests that want to assert on exactly which pages were written without
// touching the filesystem.
type MemoryDiskManager struct {
	mu      sync.Mutex
	pages   map[buffer_pool.PageID][]byte
	writes  []buffer_pool.PageID
	deletes []buffer_pool.PageID
}

var _ buffer_pool.DiskManager = (*MemoryDiskManager)(nil)

// NewMemoryDiskManager returns an empty in-memory disk.
func NewMemoryDiskManager() *MemoryDiskManager {
	return &MemoryDiskManager{pages: make(map[buffer_pool.PageID][]byte)}
}

func (d *MemoryDiskManager) ReadPage(pageID buffer_pool.PageID, out []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, ok := d.pages[pageID]
	if !ok {
		for i := range out {
			out[i] = 0
		}
		return
	}
	copy(out, data)
}

func (d *MemoryDiskManager) WritePage(pageID buffer_pool.PageID, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	d.pages[pageID] = buf
	d.writes = append(d.writes, pageID)
}

func (d *MemoryDiskManager) DeallocatePage(pageID buffer_pool.PageID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.pages, pageID)
	d.deletes = append(d.deletes, pageID)
}

// WriteCount returns how many WritePage calls this manager has observed,
// for assertions like "only N flushes reached disk".
func (d *MemoryDiskManager) WriteCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.writes)
}

// Writes returns the sequence of page IDs passed to WritePage, in order.
func (d *MemoryDiskManager) Writes() []buffer_pool.PageID {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]buffer_pool.PageID, len(d.writes))
	copy(out, d.writes)
	return out
}

// Contains reports whether pageID currently has data recorded.
func (d *MemoryDiskManager) Contains(pageID buffer_pool.PageID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pages[pageID]
	return ok
}
