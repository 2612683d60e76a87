// Package disk provides the durable page store consumed by the buffer pool:
// a file-backed manager for production use and an in-memory stand-in for
// tests, both satisfying buffer_pool.DiskManager.
package disk

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/Sherlockouo/bustub/logger"
	"github.com/Sherlockouo/bustub/server/innodb/buffer_pool"
)

// FileDiskManager stores pages as fixed-size slots in a single OS file,
// addressed by pageID*PageSize. Per the buffer pool's contract, I/O failures
// are unrecoverable: they are logged and the process aborts rather than
// propagating an error the pool has no way to act on.
type FileDiskManager struct {
	mu   sync.Mutex
	file *os.File
	path string
}

var _ buffer_pool.DiskManager = (*FileDiskManager)(nil)

// NewFileDiskManager opens or creates the backing file at path, creating
// parent directories as needed.
func NewFileDiskManager(path string) (*FileDiskManager, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "disk: create directory for %s", path)
		}
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o664)
	if err != nil {
		return nil, errors.Wrapf(err, "disk: open %s", path)
	}
	return &FileDiskManager{file: f, path: path}, nil
}

// ReadPage fills out with the on-disk bytes of pageID. Reading past the end
// of the file (a page that was allocated but never flushed) leaves out
// zeroed, matching a freshly allocated page's expected contents.
func (d *FileDiskManager) ReadPage(pageID buffer_pool.PageID, out []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(pageID) * int64(buffer_pool.PageSize)
	n, err := d.file.ReadAt(out, offset)
	if err != nil && err != io.EOF {
		logger.Fatalf("disk: read page %d from %s: %v", pageID, d.path, err)
	}
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

// WritePage writes data to pageID's slot, extending the file if necessary.
func (d *FileDiskManager) WritePage(pageID buffer_pool.PageID, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(pageID) * int64(buffer_pool.PageSize)
	if _, err := d.file.WriteAt(data, offset); err != nil {
		logger.Fatalf("disk: write page %d to %s: %v", pageID, d.path, err)
	}
}

// DeallocatePage is a metadata-only no-op; this manager never reclaims disk
// space, matching the spec's non-goal of space reuse (see spec §1).
func (d *FileDiskManager) DeallocatePage(buffer_pool.PageID) {}

// Sync forces the backing file to durable storage.
func (d *FileDiskManager) Sync() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.file.Sync(); err != nil {
		logger.Fatalf("disk: sync %s: %v", d.path, err)
	}
}

// Close releases the backing file handle.
func (d *FileDiskManager) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file.Close()
}
