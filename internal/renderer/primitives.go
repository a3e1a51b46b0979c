package renderer

import (
	"GLScene/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Attribute is one float field of an interleaved vertex.
type Attribute struct {
	Index uint32
	Size  int32
}

// Primitive is static interleaved float geometry drawn with DrawArrays.
type Primitive struct {
	Name       string
	Data       []float32
	Attributes []Attribute
}

func (p Primitive) floatsPerVertex() int32 {
	var n int32
	for _, a := range p.Attributes {
		n += a.Size
	}
	return n
}

func (p Primitive) Stride() int32 {
	return p.floatsPerVertex() * 4
}

func (p Primitive) VertexCount() int32 {
	n := p.floatsPerVertex()
	if n == 0 {
		return 0
	}
	return int32(len(p.Data)) / n
}

// Upload creates an ArrayBuffer holding the data with every attribute declared.
func (p Primitive) Upload(dev gpu.Device) *ArrayBuffer {
	ab := NewArrayBuffer(dev, len(p.Data)*4, p.Data)
	offset := 0
	for _, a := range p.Attributes {
		ab.SetupAttribute(a.Index, a.Size, gl.FLOAT, p.Stride(), offset)
		offset += int(a.Size) * 4
	}
	return ab
}

// CubePrimitive is a unit cube with positions and normals.
func CubePrimitive() Primitive {
	return Primitive{
		Name:       "cube",
		Attributes: []Attribute{{0, 3}, {1, 3}},
		Data: []float32{
			// positions          // normals
			-0.5, -0.5, -0.5, 0.0, 0.0, -1.0,
			0.5, -0.5, -0.5, 0.0, 0.0, -1.0,
			0.5, 0.5, -0.5, 0.0, 0.0, -1.0,
			0.5, 0.5, -0.5, 0.0, 0.0, -1.0,
			-0.5, 0.5, -0.5, 0.0, 0.0, -1.0,
			-0.5, -0.5, -0.5, 0.0, 0.0, -1.0,

			-0.5, -0.5, 0.5, 0.0, 0.0, 1.0,
			0.5, -0.5, 0.5, 0.0, 0.0, 1.0,
			0.5, 0.5, 0.5, 0.0, 0.0, 1.0,
			0.5, 0.5, 0.5, 0.0, 0.0, 1.0,
			-0.5, 0.5, 0.5, 0.0, 0.0, 1.0,
			-0.5, -0.5, 0.5, 0.0, 0.0, 1.0,

			-0.5, 0.5, 0.5, -1.0, 0.0, 0.0,
			-0.5, 0.5, -0.5, -1.0, 0.0, 0.0,
			-0.5, -0.5, -0.5, -1.0, 0.0, 0.0,
			-0.5, -0.5, -0.5, -1.0, 0.0, 0.0,
			-0.5, -0.5, 0.5, -1.0, 0.0, 0.0,
			-0.5, 0.5, 0.5, -1.0, 0.0, 0.0,

			0.5, 0.5, 0.5, 1.0, 0.0, 0.0,
			0.5, 0.5, -0.5, 1.0, 0.0, 0.0,
			0.5, -0.5, -0.5, 1.0, 0.0, 0.0,
			0.5, -0.5, -0.5, 1.0, 0.0, 0.0,
			0.5, -0.5, 0.5, 1.0, 0.0, 0.0,
			0.5, 0.5, 0.5, 1.0, 0.0, 0.0,

			-0.5, -0.5, -0.5, 0.0, -1.0, 0.0,
			0.5, -0.5, -0.5, 0.0, -1.0, 0.0,
			0.5, -0.5, 0.5, 0.0, -1.0, 0.0,
			0.5, -0.5, 0.5, 0.0, -1.0, 0.0,
			-0.5, -0.5, 0.5, 0.0, -1.0, 0.0,
			-0.5, -0.5, -0.5, 0.0, -1.0, 0.0,

			-0.5, 0.5, -0.5, 0.0, 1.0, 0.0,
			0.5, 0.5, -0.5, 0.0, 1.0, 0.0,
			0.5, 0.5, 0.5, 0.0, 1.0, 0.0,
			0.5, 0.5, 0.5, 0.0, 1.0, 0.0,
			-0.5, 0.5, 0.5, 0.0, 1.0, 0.0,
			-0.5, 0.5, -0.5, 0.0, 1.0, 0.0,
		},
	}
}

// SkyboxPrimitive is the inside of a cube of half-size 1, positions only.
func SkyboxPrimitive() Primitive {
	return Primitive{
		Name:       "skybox",
		Attributes: []Attribute{{0, 3}},
		Data: []float32{
			-1.0, 1.0, -1.0,
			-1.0, -1.0, -1.0,
			1.0, -1.0, -1.0,
			1.0, -1.0, -1.0,
			1.0, 1.0, -1.0,
			-1.0, 1.0, -1.0,

			-1.0, -1.0, 1.0,
			-1.0, -1.0, -1.0,
			-1.0, 1.0, -1.0,
			-1.0, 1.0, -1.0,
			-1.0, 1.0, 1.0,
			-1.0, -1.0, 1.0,

			1.0, -1.0, -1.0,
			1.0, -1.0, 1.0,
			1.0, 1.0, 1.0,
			1.0, 1.0, 1.0,
			1.0, 1.0, -1.0,
			1.0, -1.0, -1.0,

			-1.0, -1.0, 1.0,
			-1.0, 1.0, 1.0,
			1.0, 1.0, 1.0,
			1.0, 1.0, 1.0,
			1.0, -1.0, 1.0,
			-1.0, -1.0, 1.0,

			-1.0, 1.0, -1.0,
			1.0, 1.0, -1.0,
			1.0, 1.0, 1.0,
			1.0, 1.0, 1.0,
			-1.0, 1.0, 1.0,
			-1.0, 1.0, -1.0,

			-1.0, -1.0, -1.0,
			-1.0, -1.0, 1.0,
			1.0, -1.0, -1.0,
			1.0, -1.0, -1.0,
			-1.0, -1.0, 1.0,
			1.0, -1.0, 1.0,
		},
	}
}

// PlanePrimitive is a ground quad at y = -0.5 with normals and texture
// coordinates that repeat the texture ten times across.
func PlanePrimitive() Primitive {
	return Primitive{
		Name:       "plane",
		Attributes: []Attribute{{0, 3}, {1, 3}, {2, 2}},
		Data: []float32{
			// positions          // normals       // texcoords
			10.0, -0.5, 10.0, 0.0, 1.0, 0.0, 10.0, 0.0,
			-10.0, -0.5, 10.0, 0.0, 1.0, 0.0, 0.0, 0.0,
			-10.0, -0.5, -10.0, 0.0, 1.0, 0.0, 0.0, 10.0,

			10.0, -0.5, 10.0, 0.0, 1.0, 0.0, 10.0, 0.0,
			-10.0, -0.5, -10.0, 0.0, 1.0, 0.0, 0.0, 10.0,
			10.0, -0.5, -10.0, 0.0, 1.0, 0.0, 10.0, 10.0,
		},
	}
}

// GrassPrimitive is a unit billboard standing on its bottom edge.
func GrassPrimitive() Primitive {
	return Primitive{
		Name:       "grass",
		Attributes: []Attribute{{0, 3}, {1, 2}},
		Data: []float32{
			// positions      // texcoords
			0.0, 0.5, 0.0, 0.0, 1.0,
			0.0, -0.5, 0.0, 0.0, 0.0,
			1.0, -0.5, 0.0, 1.0, 0.0,

			0.0, 0.5, 0.0, 0.0, 1.0,
			1.0, -0.5, 0.0, 1.0, 0.0,
			1.0, 0.5, 0.0, 1.0, 1.0,
		},
	}
}

// ScreenQuadPrimitive covers normalized device coordinates.
func ScreenQuadPrimitive() Primitive {
	return Primitive{
		Name:       "screen-quad",
		Attributes: []Attribute{{0, 2}, {1, 2}},
		Data: []float32{
			// positions   // texcoords
			-1.0, 1.0, 0.0, 1.0,
			-1.0, -1.0, 0.0, 0.0,
			1.0, -1.0, 1.0, 0.0,

			-1.0, 1.0, 0.0, 1.0,
			1.0, -1.0, 1.0, 0.0,
			1.0, 1.0, 1.0, 1.0,
		},
	}
}
