package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameStatsReportsOncePerInterval(t *testing.T) {
	s := NewFrameStats("GLScene")

	_, ok := s.Record(2*time.Millisecond, 10.0)
	assert.False(t, ok)
	_, ok = s.Record(4*time.Millisecond, 10.5)
	assert.False(t, ok)

	title, ok := s.Record(6*time.Millisecond, 11.0)
	assert.True(t, ok)
	assert.Equal(t, "GLScene | 3 fps | cpu 4ms (max 6ms)", title)

	_, ok = s.Record(time.Millisecond, 11.5)
	assert.False(t, ok, "counters restart after a report")
	title, ok = s.Record(time.Millisecond, 12.0)
	assert.True(t, ok)
	assert.Equal(t, "GLScene | 2 fps | cpu 1ms (max 1ms)", title)
}
