package buffer_pool

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/Sherlockouo/bustub/logger"
)

// FrameID names a slot in a pool instance's frame array. Stable for the
// lifetime of the pool.
type FrameID int32

// Replacer tracks which resident frames are currently evictable and picks a
// victim in least-recently-unpinned order.
//
// All four operations are internally serialized; callers may invoke them
// from any goroutine. A frame is evictable iff it has been Unpinned more
// recently than it was last Pinned (or never pinned at all).
type Replacer interface {
	// Victim removes and returns the least-recently-unpinned frame. ok is
	// false iff no frame is currently evictable.
	Victim() (frameID FrameID, ok bool)

	// Pin removes frameID from the evictable set. A no-op if frameID is not
	// currently present.
	Pin(frameID FrameID)

	// Unpin marks frameID evictable. A no-op if frameID is already present
	// — in particular it does NOT move an already-evictable frame back to
	// the front of the victim order.
	Unpin(frameID FrameID)

	// Size returns the number of currently evictable frames.
	Size() int
}

// LRUReplacer is the spec's replacer, backed by hashicorp/golang-lru.
// Cache.RemoveOldest gives Victim, Cache.Remove gives Pin, and
// Cache.ContainsOrAdd gives the idempotent-without-promotion Unpin the spec
// requires — no hand-rolled trimming logic is needed because the cache is
// constructed with capacity equal to the pool size, and the buffer pool
// already guarantees the evictable set never exceeds that (see §9 of the
// spec: capacity is an assertion bound, not a trimming trigger).
type LRUReplacer struct {
	evictable *lru.Cache
}

// NewLRUReplacer constructs a replacer with the given capacity, which must
// equal the owning pool's size. A non-positive capacity is a programmer
// error.
func NewLRUReplacer(capacity int) *LRUReplacer {
	c, err := lru.New(capacity)
	if err != nil {
		logger.Fatalf("buffer_pool: invalid replacer capacity %d: %v", capacity, err)
	}
	return &LRUReplacer{evictable: c}
}

func (r *LRUReplacer) Victim() (FrameID, bool) {
	key, _, ok := r.evictable.RemoveOldest()
	if !ok {
		return 0, false
	}
	return key.(FrameID), true
}

func (r *LRUReplacer) Pin(frameID FrameID) {
	r.evictable.Remove(frameID)
}

func (r *LRUReplacer) Unpin(frameID FrameID) {
	r.evictable.ContainsOrAdd(frameID, struct{}{})
}

func (r *LRUReplacer) Size() int {
	return r.evictable.Len()
}
