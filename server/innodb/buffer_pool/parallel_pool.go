package buffer_pool

import "github.com/Sherlockouo/bustub/logger"

// ParallelPool shards pages across a fixed set of independent PoolInstances
// by page_id mod len(instances), so that unrelated pages can be fetched,
// flushed and evicted without contending on a single latch (spec §4.3).
type ParallelPool struct {
	instances []*PoolInstance
	nextHint  int // round-robin starting point for NewPage
}

// NewParallelPool builds a pool of numInstances shards, each sized
// poolSizePerInstance, sharing the same DiskManager and LogManager.
func NewParallelPool(poolSizePerInstance int, numInstances int, disk DiskManager, logMgr LogManager) *ParallelPool {
	if numInstances <= 0 {
		logger.Fatalf("%v", newError("NewParallelPool", ErrInvalidInstanceSpec))
	}
	instances := make([]*PoolInstance, numInstances)
	for i := 0; i < numInstances; i++ {
		instances[i] = NewShardedPoolInstance(poolSizePerInstance, int32(numInstances), int32(i), disk, logMgr)
	}
	return &ParallelPool{instances: instances}
}

// instanceFor returns the shard responsible for pageID.
func (p *ParallelPool) instanceFor(pageID PageID) *PoolInstance {
	idx := int(pageID) % len(p.instances)
	if idx < 0 {
		idx += len(p.instances)
	}
	return p.instances[idx]
}

// Fetch routes to the shard owning pageID.
func (p *ParallelPool) Fetch(pageID PageID) (*Frame, bool) {
	return p.instanceFor(pageID).Fetch(pageID)
}

// Unpin routes to the shard owning pageID.
func (p *ParallelPool) Unpin(pageID PageID, isDirty bool) bool {
	return p.instanceFor(pageID).Unpin(pageID, isDirty)
}

// Flush routes to the shard owning pageID.
func (p *ParallelPool) Flush(pageID PageID) bool {
	return p.instanceFor(pageID).Flush(pageID)
}

// Delete routes to the shard owning pageID.
func (p *ParallelPool) Delete(pageID PageID) bool {
	return p.instanceFor(pageID).Delete(pageID)
}

// FlushAll flushes every shard.
func (p *ParallelPool) FlushAll() {
	for _, inst := range p.instances {
		inst.FlushAll()
	}
}

// NewPage round-robins across shards starting from nextHint, looking for one
// that isn't exhausted (every frame pinned with no evictable victim). This
// mirrors BusTub's starting_index probe in ParallelBufferPoolManager.
func (p *ParallelPool) NewPage() (PageID, *Frame, bool) {
	n := len(p.instances)
	start := p.nextHint
	p.nextHint = (p.nextHint + 1) % n

	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if pageID, frame, ok := p.instances[idx].NewPage(); ok {
			return pageID, frame, true
		}
	}
	return InvalidPageID, nil, false
}

// NumInstances returns the shard count.
func (p *ParallelPool) NumInstances() int { return len(p.instances) }

// StatsSnapshot aggregates the cumulative counters across every shard.
func (p *ParallelPool) StatsSnapshot() PoolStats {
	var total PoolStats
	for _, inst := range p.instances {
		total.hits += inst.Stats.Hits()
		total.misses += inst.Stats.Misses()
		total.evictions += inst.Stats.Evictions()
		total.flushes += inst.Stats.Flushes()
	}
	return total
}
