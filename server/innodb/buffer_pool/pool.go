// Package buffer_pool implements the page buffer pool core: a bounded set
// of page frames mediating every read and write between storage clients and
// the on-disk page store (see SPEC_FULL.md §3/§4 for the external disk and
// log manager contracts this package consumes).
package buffer_pool

import (
	"sync"

	"github.com/Sherlockouo/bustub/logger"
)

// DiskManager is the durable page store this pool reads from and writes to.
// Per the spec, disk I/O is synchronous and infallible from the pool's point
// of view — a failing implementation aborts the process rather than
// returning an error up through Fetch/Flush.
type DiskManager interface {
	ReadPage(pageID PageID, out []byte)
	WritePage(pageID PageID, data []byte)
	DeallocatePage(pageID PageID)
}

// LogManager is the write-ahead log collaborator. The pool calls FlushWAL
// immediately before writing a dirty page to disk; the policy of what that
// durably persists lives entirely in the log manager (spec §6).
type LogManager interface {
	FlushWAL(upToLSN uint64)
}

// PoolInstance is one shard of the buffer pool: it owns its frames, page
// table, free list and replacer behind a single exclusive latch.
type PoolInstance struct {
	mu sync.Mutex

	poolSize int
	frames   []*Frame

	pageTable map[PageID]FrameID
	freeList  []FrameID
	replacer  Replacer

	disk   DiskManager
	logMgr LogManager

	numInstances  int32
	instanceIndex int32
	nextPageID    PageID

	nextLSN uint64
	Stats   *PoolStats
}

// NewPoolInstance constructs a single, unsharded pool instance — the
// num_instances=1, instance_index=0 case of NewShardedPoolInstance, mirroring
// BusTub's two-constructor shape.
func NewPoolInstance(poolSize int, disk DiskManager, logMgr LogManager) *PoolInstance {
	return NewShardedPoolInstance(poolSize, 1, 0, disk, logMgr)
}

// NewShardedPoolInstance constructs instance instanceIndex of an
// numInstances-way shard. poolSize must be positive, numInstances must be
// positive, and instanceIndex must be in [0, numInstances) — these are
// construction-time programmer errors, not runtime failures, so violations
// are fatal rather than returned.
func NewShardedPoolInstance(poolSize int, numInstances, instanceIndex int32, disk DiskManager, logMgr LogManager) *PoolInstance {
	if poolSize <= 0 {
		logger.Fatalf("%v", newError("NewShardedPoolInstance", ErrInvalidPoolSize))
	}
	if numInstances <= 0 || instanceIndex < 0 || instanceIndex >= numInstances {
		logger.Fatalf("%v", newError("NewShardedPoolInstance", ErrInvalidInstanceSpec))
	}
	if disk == nil {
		logger.Fatalf("%v", newError("NewShardedPoolInstance", ErrNilDiskManager))
	}

	frames := make([]*Frame, poolSize)
	freeList := make([]FrameID, poolSize)
	for i := 0; i < poolSize; i++ {
		frames[i] = newFrame()
		freeList[i] = FrameID(i)
	}

	return &PoolInstance{
		poolSize:      poolSize,
		frames:        frames,
		pageTable:     make(map[PageID]FrameID, poolSize),
		freeList:      freeList,
		replacer:      NewLRUReplacer(poolSize),
		disk:          disk,
		logMgr:        logMgr,
		numInstances:  numInstances,
		instanceIndex: instanceIndex,
		nextPageID:    PageID(instanceIndex),
		Stats:         &PoolStats{},
	}
}

// Fetch returns the frame holding pageID, pinning it, reading it from disk
// first if it is not already resident. ok is false iff pageID is a miss and
// every frame is currently pinned.
func (p *PoolInstance) Fetch(pageID PageID) (frame *Frame, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if frameID, hit := p.pageTable[pageID]; hit {
		f := p.frames[frameID]
		f.pinCount++
		p.replacer.Pin(frameID)
		p.Stats.recordHit()
		return f, true
	}

	frameID, evicted := p.acquireVictim()
	if !evicted {
		p.Stats.recordMiss()
		return nil, false
	}
	f := p.frames[frameID]

	p.writeBackIfDirty(f)
	if f.PageID() != InvalidPageID {
		delete(p.pageTable, f.pageID)
	}

	p.pageTable[pageID] = frameID
	f.pageID = pageID
	f.pinCount = 1
	f.dirty = false
	p.disk.ReadPage(pageID, f.data)
	p.replacer.Pin(frameID)

	p.Stats.recordMiss()
	return f, true
}

// NewPage allocates a fresh page ID, backs it with a frame, and returns
// both. ok is false iff every frame is pinned and the free list is empty.
func (p *PoolInstance) NewPage() (pageID PageID, frame *Frame, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	frameID, evicted := p.acquireVictim()
	if !evicted {
		return InvalidPageID, nil, false
	}
	f := p.frames[frameID]

	p.writeBackIfDirty(f)
	if f.PageID() != InvalidPageID {
		delete(p.pageTable, f.pageID)
	}

	newID := p.allocatePageID()
	p.pageTable[newID] = frameID
	f.pageID = newID
	f.pinCount = 1
	f.dirty = false
	f.zeroData()
	p.replacer.Pin(frameID)

	// Durability is deferred to a later Flush or eviction — see spec §4.2.2.
	return newID, f, true
}

// Unpin decrements pageID's pin count, folding isDirty into the frame's
// sticky dirty flag, and makes the frame evictable once the count reaches
// zero. Returns false if pageID is not resident or already unpinned.
func (p *PoolInstance) Unpin(pageID PageID, isDirty bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	frameID, resident := p.pageTable[pageID]
	if !resident {
		return false
	}
	f := p.frames[frameID]
	if f.pinCount == 0 {
		return false
	}

	if isDirty {
		f.dirty = true
		p.nextLSN++
	}

	f.pinCount--
	if f.pinCount == 0 {
		p.replacer.Unpin(frameID)
	}
	return true
}

// Flush writes pageID's current bytes to disk unconditionally and clears
// its dirty flag. Returns false if pageID is invalid or not resident.
func (p *PoolInstance) Flush(pageID PageID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flushLocked(pageID)
}

func (p *PoolInstance) flushLocked(pageID PageID) bool {
	if pageID == InvalidPageID {
		return false
	}
	frameID, resident := p.pageTable[pageID]
	if !resident {
		return false
	}
	f := p.frames[frameID]
	p.writeThrough(f)
	return true
}

// FlushAll applies Flush to every resident page, snapshotting the set of
// resident page IDs under the latch first so the iteration is stable even
// though Flush itself re-acquires the latch per call.
func (p *PoolInstance) FlushAll() {
	p.mu.Lock()
	ids := make([]PageID, 0, len(p.pageTable))
	for id := range p.pageTable {
		ids = append(ids, id)
	}
	p.mu.Unlock()

	for _, id := range ids {
		p.Flush(id)
	}
}

// Delete evicts pageID from the pool and tells the disk manager to
// deallocate it. Idempotent: deleting a non-resident page succeeds.
// Fails if the page is still pinned.
func (p *PoolInstance) Delete(pageID PageID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	frameID, resident := p.pageTable[pageID]
	if !resident {
		return true
	}
	f := p.frames[frameID]
	if f.pinCount > 0 {
		return false
	}

	p.disk.DeallocatePage(pageID)

	delete(p.pageTable, pageID)
	p.replacer.Pin(frameID) // no-op if f was never evictable; removes it if it was
	f.resetToFree()
	p.freeList = append(p.freeList, frameID)
	return true
}

// acquireVictim returns a frame ready for reuse: from the free list first,
// else from the replacer. The caller is responsible for writing back a
// dirty victim and removing its old page-table entry (spec §4.2.7).
func (p *PoolInstance) acquireVictim() (FrameID, bool) {
	if n := len(p.freeList); n > 0 {
		id := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return id, true
	}
	frameID, ok := p.replacer.Victim()
	if !ok {
		return 0, false
	}
	p.Stats.recordEviction()
	return frameID, true
}

func (p *PoolInstance) writeBackIfDirty(f *Frame) {
	if f.PageID() == InvalidPageID || !f.IsDirty() {
		return
	}
	p.writeThrough(f)
}

// writeThrough flushes the WAL hook and then writes the frame unconditionally.
func (p *PoolInstance) writeThrough(f *Frame) {
	if p.logMgr != nil {
		p.logMgr.FlushWAL(p.nextLSN)
	}
	p.disk.WritePage(f.pageID, f.data)
	f.dirty = false
	p.Stats.recordFlush()
}

// allocatePageID advances the instance's allocation cursor and asserts the
// sharding invariant (spec §3: allocated_page_id mod num_instances ==
// instance_index). A violation is a programmer error, not a runtime
// failure.
func (p *PoolInstance) allocatePageID() PageID {
	id := p.nextPageID
	p.nextPageID += PageID(p.numInstances)
	if int32(id)%p.numInstances != p.instanceIndex {
		logger.Fatalf("buffer_pool: allocated page %d does not satisfy mod %d == %d", id, p.numInstances, p.instanceIndex)
	}
	return id
}

// Size returns the pool's fixed frame capacity.
func (p *PoolInstance) Size() int { return p.poolSize }

// StatsSnapshot returns a copy of the instance's cumulative counters.
func (p *PoolInstance) StatsSnapshot() PoolStats {
	return PoolStats{
		hits:      p.Stats.Hits(),
		misses:    p.Stats.Misses(),
		evictions: p.Stats.Evictions(),
		flushes:   p.Stats.Flushes(),
	}
}
