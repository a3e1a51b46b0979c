package renderer

import (
	"GLScene/internal/gpu"
)

// Model is a set of meshes imported from one file. Its textures live in a
// cache scoped to the model so each image path is uploaded once.
type Model struct {
	Meshes    []*Mesh
	Directory string
	Path      string
	Textures  *TextureCache
}

func NewModel(dev gpu.Device, path, directory string) *Model {
	return &Model{
		Path:      path,
		Directory: directory,
		Textures:  NewTextureCache(dev),
	}
}

func (m *Model) Draw(shader *Shader, instances int32) {
	for _, mesh := range m.Meshes {
		mesh.Draw(shader, instances)
	}
}

// VertexCount totals the vertices across meshes.
func (m *Model) VertexCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += len(mesh.Vertices)
	}
	return n
}

// Delete releases every mesh and then the model's textures.
func (m *Model) Delete() {
	for _, mesh := range m.Meshes {
		mesh.Delete()
	}
	m.Meshes = nil
	if m.Textures != nil {
		m.Textures.Clear()
	}
}
