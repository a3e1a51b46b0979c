package renderer

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// SortBackToFront returns positions ordered farthest from eye first. Ties keep
// their input order. The input slice is not modified.
func SortBackToFront(positions []mgl32.Vec3, eye mgl32.Vec3) []mgl32.Vec3 {
	type entry struct {
		pos  mgl32.Vec3
		dist float32
	}
	entries := make([]entry, len(positions))
	for i, p := range positions {
		d := p.Sub(eye)
		entries[i] = entry{pos: p, dist: d.Dot(d)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].dist > entries[j].dist
	})

	out := make([]mgl32.Vec3, len(entries))
	for i, e := range entries {
		out[i] = e.pos
	}
	return out
}
