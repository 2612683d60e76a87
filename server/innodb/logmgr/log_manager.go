// Package logmgr provides the write-ahead log collaborator the buffer pool
// calls into before writing a dirty page back to disk. The pool only needs
// the one hook; everything about what gets durably persisted and when is
// this package's concern, not the pool's (spec §6).
package logmgr

import (
	"sync"
	"sync/atomic"

	"github.com/Sherlockouo/bustub/server/innodb/buffer_pool"
)

var _ buffer_pool.LogManager = (*NoOpLogManager)(nil)
var _ buffer_pool.LogManager = (*InMemoryLogManager)(nil)

// NoOpLogManager satisfies buffer_pool.LogManager without persisting
// anything. Useful for callers that have no WAL, such as tests exercising
// the pool in isolation.
type NoOpLogManager struct{}

// FlushWAL is a no-op.
func (NoOpLogManager) FlushWAL(uint64) {}

// InMemoryLogManager tracks the highest LSN it has been asked to flush, for
// tests that want to assert the pool calls FlushWAL before every dirty
// write-back.
type InMemoryLogManager struct {
	mu       sync.Mutex
	flushed  uint64
	calls    uint64
}

// NewInMemoryLogManager returns a fresh manager with no flushes recorded.
func NewInMemoryLogManager() *InMemoryLogManager {
	return &InMemoryLogManager{}
}

// FlushWAL records upToLSN as durable if it exceeds the previous high-water
// mark.
func (m *InMemoryLogManager) FlushWAL(upToLSN uint64) {
	atomic.AddUint64(&m.calls, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if upToLSN > m.flushed {
		m.flushed = upToLSN
	}
}

// FlushedLSN returns the highest LSN ever passed to FlushWAL.
func (m *InMemoryLogManager) FlushedLSN() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushed
}

// Calls returns the number of times FlushWAL was invoked.
func (m *InMemoryLogManager) Calls() uint64 {
	return atomic.LoadUint64(&m.calls)
}
