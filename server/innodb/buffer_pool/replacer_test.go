package buffer_pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUReplacerSampleScenario(t *testing.T) {
	r := NewLRUReplacer(7)

	r.Unpin(1)
	r.Unpin(2)
	r.Unpin(3)
	r.Unpin(4)
	r.Unpin(5)
	r.Unpin(6)
	r.Unpin(1) // already evictable: no-op, does not move to the back
	assert.Equal(t, 6, r.Size())

	victim, ok := r.Victim()
	assert.True(t, ok)
	assert.Equal(t, FrameID(1), victim)

	victim, ok = r.Victim()
	assert.True(t, ok)
	assert.Equal(t, FrameID(2), victim)

	victim, ok = r.Victim()
	assert.True(t, ok)
	assert.Equal(t, FrameID(3), victim)

	// 3 has already been victimized; pinning it again is a no-op.
	r.Pin(3)
	r.Pin(4)
	assert.Equal(t, 2, r.Size())

	r.Unpin(4)

	victim, ok = r.Victim()
	assert.True(t, ok)
	assert.Equal(t, FrameID(5), victim)

	victim, ok = r.Victim()
	assert.True(t, ok)
	assert.Equal(t, FrameID(6), victim)

	victim, ok = r.Victim()
	assert.True(t, ok)
	assert.Equal(t, FrameID(4), victim)
}

func TestLRUReplacerVictimOnEmpty(t *testing.T) {
	r := NewLRUReplacer(4)
	_, ok := r.Victim()
	assert.False(t, ok)
}

func TestLRUReplacerPinUnknownFrameIsNoop(t *testing.T) {
	r := NewLRUReplacer(4)
	r.Pin(42)
	assert.Equal(t, 0, r.Size())
}

func TestLRUReplacerSize(t *testing.T) {
	r := NewLRUReplacer(4)
	r.Unpin(1)
	r.Unpin(2)
	assert.Equal(t, 2, r.Size())
	r.Pin(1)
	assert.Equal(t, 1, r.Size())
}
