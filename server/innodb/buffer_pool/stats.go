package buffer_pool

import "sync/atomic"

// PoolStats tracks cumulative counters for one pool instance, in the style
// of the teacher's server/innodb/buffer_pool/stats.go — plain atomics, no
// locking, safe to read concurrently with the instance latch held elsewhere.
type PoolStats struct {
	hits      uint64
	misses    uint64
	evictions uint64
	flushes   uint64
}

func (s *PoolStats) recordHit()      { atomic.AddUint64(&s.hits, 1) }
func (s *PoolStats) recordMiss()     { atomic.AddUint64(&s.misses, 1) }
func (s *PoolStats) recordEviction() { atomic.AddUint64(&s.evictions, 1) }
func (s *PoolStats) recordFlush()    { atomic.AddUint64(&s.flushes, 1) }

// Hits returns the number of Fetch calls resolved from the page table.
func (s *PoolStats) Hits() uint64 { return atomic.LoadUint64(&s.hits) }

// Misses returns the number of Fetch calls that required a disk read.
func (s *PoolStats) Misses() uint64 { return atomic.LoadUint64(&s.misses) }

// Evictions returns the number of frames reused for a different page.
func (s *PoolStats) Evictions() uint64 { return atomic.LoadUint64(&s.evictions) }

// Flushes returns the number of pages written back to disk.
func (s *PoolStats) Flushes() uint64 { return atomic.LoadUint64(&s.flushes) }

// HitRatio returns hits / (hits + misses), or 0 if there have been no
// lookups yet.
func (s *PoolStats) HitRatio() float64 {
	h, m := s.Hits(), s.Misses()
	total := h + m
	if total == 0 {
		return 0
	}
	return float64(h) / float64(total)
}
