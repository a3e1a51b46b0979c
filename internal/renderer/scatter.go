package renderer

import (
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// ScatterGrass picks count positions on the ground plane within [-extent,
// extent] on X and Z. Candidates on a regular grid are kept where seeded
// Perlin noise is highest, so the same seed always yields the same field.
func ScatterGrass(count int, seed int64, extent, height float32) []mgl32.Vec3 {
	if count <= 0 || extent <= 0 {
		return nil
	}
	noise := perlin.NewPerlin(2, 2, 3, seed)
	jitter := rand.New(rand.NewSource(seed))

	grid := 1
	for grid*grid < count*4 {
		grid++
	}
	step := 2 * extent / float32(grid)

	type candidate struct {
		pos   mgl32.Vec3
		value float64
	}
	candidates := make([]candidate, 0, grid*grid)
	for i := 0; i < grid; i++ {
		for j := 0; j < grid; j++ {
			x := -extent + (float32(i)+jitter.Float32())*step
			z := -extent + (float32(j)+jitter.Float32())*step
			v := noise.Noise2D(float64(x)*0.35, float64(z)*0.35)
			candidates = append(candidates, candidate{pos: mgl32.Vec3{x, height, z}, value: v})
		}
	}

	// Partial selection: highest noise first, grid order on ties.
	out := make([]mgl32.Vec3, 0, count)
	taken := make([]bool, len(candidates))
	for len(out) < count {
		best := -1
		for k, c := range candidates {
			if taken[k] {
				continue
			}
			if best < 0 || c.value > candidates[best].value {
				best = k
			}
		}
		taken[best] = true
		out = append(out, candidates[best].pos)
	}
	return out
}
