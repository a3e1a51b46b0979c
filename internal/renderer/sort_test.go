package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSortBackToFront(t *testing.T) {
	positions := []mgl32.Vec3{
		{-1.5, 0, -0.48},
		{1.5, 0, 0.51},
		{0, 0, 0.7},
		{-0.3, 0, -2.3},
		{0.5, 0, -0.6},
	}
	eye := mgl32.Vec3{0, 0, 3}

	sorted := SortBackToFront(positions, eye)
	assert.Len(t, sorted, len(positions))
	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1].Sub(eye).Len()
		cur := sorted[i].Sub(eye).Len()
		assert.GreaterOrEqual(t, prev, cur, "index %d", i)
	}
	assert.Equal(t, mgl32.Vec3{-0.3, 0, -2.3}, sorted[0])
	assert.Equal(t, mgl32.Vec3{0, 0, 0.7}, sorted[len(sorted)-1])

	assert.Equal(t, mgl32.Vec3{-1.5, 0, -0.48}, positions[0], "input untouched")
}

func TestSortBackToFrontTiesKeepOrder(t *testing.T) {
	positions := []mgl32.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}}
	sorted := SortBackToFront(positions, mgl32.Vec3{})
	assert.Equal(t, positions, sorted)
	assert.Empty(t, SortBackToFront(nil, mgl32.Vec3{}))
}

func TestScatterGrassDeterministic(t *testing.T) {
	a := ScatterGrass(12, 42, 5, -0.5)
	b := ScatterGrass(12, 42, 5, -0.5)
	assert.Len(t, a, 12)
	assert.Equal(t, a, b)

	for _, p := range a {
		assert.InDelta(t, 0, p.X(), 5)
		assert.InDelta(t, 0, p.Z(), 5)
		assert.Equal(t, float32(-0.5), p.Y())
	}

	assert.NotEqual(t, a, ScatterGrass(12, 7, 5, -0.5))
	assert.Nil(t, ScatterGrass(0, 42, 5, 0))
}
