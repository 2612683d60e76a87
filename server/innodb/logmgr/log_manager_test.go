package logmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoOpLogManagerAcceptsAnyLSN(t *testing.T) {
	var m NoOpLogManager
	m.FlushWAL(100)
}

func TestInMemoryLogManagerTracksHighWaterMark(t *testing.T) {
	m := NewInMemoryLogManager()

	m.FlushWAL(5)
	m.FlushWAL(3)
	m.FlushWAL(9)

	assert.Equal(t, uint64(9), m.FlushedLSN())
	assert.Equal(t, uint64(3), m.Calls())
}
