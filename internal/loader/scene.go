package loader

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Scene is an imported file before anything touches the GPU. Importers fill
// it; Build walks it into renderer meshes.
type Scene struct {
	Root      *Node
	Meshes    []MeshData
	Materials []Material
}

// Node references meshes by index into Scene.Meshes.
type Node struct {
	Name     string
	Meshes   []int
	Children []*Node
}

// MeshData holds one triangulated primitive. Optional attributes are nil or
// shorter than Positions when the source did not provide them.
type MeshData struct {
	Name       string
	Positions  []mgl32.Vec3
	Normals    []mgl32.Vec3
	TexCoords  []mgl32.Vec2
	Tangents   []mgl32.Vec3
	Bitangents []mgl32.Vec3
	Indices    []uint32
	Material   int // index into Scene.Materials, -1 for none
}

// TextureRef points at an image file relative to the model directory, or
// carries the encoded image when it is embedded in the model file.
type TextureRef struct {
	Path     string
	Embedded []byte
}

// Material lists texture references per sampler family.
type Material struct {
	Name     string
	Textures map[string][]TextureRef
}

func newMaterial(name string) Material {
	return Material{Name: name, Textures: make(map[string][]TextureRef)}
}

func (m *Material) add(family string, ref TextureRef) {
	m.Textures[family] = append(m.Textures[family], ref)
}

// Walk visits nodes depth first, parent before children.
func (s *Scene) Walk(visit func(*Node)) {
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		visit(n)
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(s.Root)
}
