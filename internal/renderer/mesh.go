package renderer

import (
	"strconv"
	"unsafe"

	"GLScene/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxBoneInfluence is the number of bone slots carried per vertex.
const MaxBoneInfluence = 4

// Vertex is the interleaved layout shared by every imported mesh. Bone slots
// are placeholders; nothing animates them.
type Vertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	TexCoords mgl32.Vec2
	Tangent   mgl32.Vec3
	Bitangent mgl32.Vec3
	BoneIDs   [MaxBoneInfluence]int32
	Weights   [MaxBoneInfluence]float32
}

var vertexStride = int32(unsafe.Sizeof(Vertex{}))

// Texture families in the order they are bound.
const (
	TextureDiffuse  = "texture_diffuse"
	TextureSpecular = "texture_specular"
	TextureNormal   = "texture_normal"
	TextureHeight   = "texture_height"
)

type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Textures []Texture

	buffer *ArrayBuffer
	dev    gpu.Device
}

// NewMesh uploads vertices and indices and declares attributes 0..6.
func NewMesh(dev gpu.Device, vertices []Vertex, indices []uint32, textures []Texture) *Mesh {
	m := &Mesh{Vertices: vertices, Indices: indices, Textures: textures, dev: dev}

	var data interface{}
	if len(vertices) > 0 {
		data = vertices
	}
	m.buffer = NewIndexedArrayBuffer(dev, len(vertices)*int(vertexStride), data, indices)

	var v Vertex
	m.buffer.SetupAttribute(0, 3, gl.FLOAT, vertexStride, int(unsafe.Offsetof(v.Position)))
	m.buffer.SetupAttribute(1, 3, gl.FLOAT, vertexStride, int(unsafe.Offsetof(v.Normal)))
	m.buffer.SetupAttribute(2, 2, gl.FLOAT, vertexStride, int(unsafe.Offsetof(v.TexCoords)))
	m.buffer.SetupAttribute(3, 3, gl.FLOAT, vertexStride, int(unsafe.Offsetof(v.Tangent)))
	m.buffer.SetupAttribute(4, 3, gl.FLOAT, vertexStride, int(unsafe.Offsetof(v.Bitangent)))
	m.buffer.SetupIntAttribute(5, MaxBoneInfluence, gl.INT, vertexStride, int(unsafe.Offsetof(v.BoneIDs)))
	m.buffer.SetupAttribute(6, MaxBoneInfluence, gl.FLOAT, vertexStride, int(unsafe.Offsetof(v.Weights)))
	return m
}

// SamplerNames returns the uniform sampler name of each texture, numbering
// each family from 1 in the order its textures appear.
func SamplerNames(textures []Texture) []string {
	counts := make(map[string]int, 4)
	names := make([]string, len(textures))
	for i, tex := range textures {
		counts[tex.Type]++
		names[i] = tex.Type + strconv.Itoa(counts[tex.Type])
	}
	return names
}

// Draw binds texture i to unit i, points material.<sampler> at it and draws
// the indexed triangles, instanced when instances > 0.
func (m *Mesh) Draw(shader *Shader, instances int32) {
	for i, name := range SamplerNames(m.Textures) {
		m.dev.ActiveTexture(gl.TEXTURE0 + uint32(i))
		shader.SetInt("material."+name, int32(i))
		m.dev.BindTexture(gl.TEXTURE_2D, m.Textures[i].ID)
	}

	m.buffer.Bind()
	if instances > 0 {
		m.dev.DrawElementsInstanced(gl.TRIANGLES, int32(len(m.Indices)), gl.UNSIGNED_INT, instances)
	} else {
		m.dev.DrawElements(gl.TRIANGLES, int32(len(m.Indices)), gl.UNSIGNED_INT)
	}
	m.buffer.Unbind()

	m.dev.ActiveTexture(gl.TEXTURE0)
}

// Delete releases the mesh buffers. Textures belong to the model's cache.
func (m *Mesh) Delete() {
	if m.buffer != nil {
		m.buffer.Delete()
	}
}
