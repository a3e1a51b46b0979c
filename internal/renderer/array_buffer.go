package renderer

import (
	"GLScene/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ArrayBuffer owns a vertex array object, its vertex buffer and, when
// constructed with indices or given instance data, an element buffer and a
// per-instance buffer.
type ArrayBuffer struct {
	VAO         uint32
	VBO         uint32
	EBO         uint32
	InstanceVBO uint32

	dev gpu.Device
}

// NewArrayBuffer uploads size bytes of vertex data with STATIC_DRAW usage.
func NewArrayBuffer(dev gpu.Device, size int, data interface{}) *ArrayBuffer {
	ab := &ArrayBuffer{dev: dev}
	ab.VAO = dev.GenVertexArray()
	ab.VBO = dev.GenBuffer()

	dev.BindVertexArray(ab.VAO)
	dev.BindBuffer(gl.ARRAY_BUFFER, ab.VBO)
	dev.BufferData(gl.ARRAY_BUFFER, size, data, gl.STATIC_DRAW)
	dev.BindVertexArray(0)
	dev.BindBuffer(gl.ARRAY_BUFFER, 0)
	return ab
}

// NewIndexedArrayBuffer is NewArrayBuffer plus an element buffer holding
// uint32 indices. The element binding is recorded in the VAO.
func NewIndexedArrayBuffer(dev gpu.Device, size int, data interface{}, indices []uint32) *ArrayBuffer {
	ab := NewArrayBuffer(dev, size, data)
	ab.EBO = dev.GenBuffer()

	dev.BindVertexArray(ab.VAO)
	dev.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ab.EBO)
	dev.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, indices, gl.STATIC_DRAW)
	dev.BindVertexArray(0)
	return ab
}

// SetupAttribute declares a float vertex attribute read from the vertex buffer.
func (ab *ArrayBuffer) SetupAttribute(index uint32, size int32, xtype uint32, stride int32, offset int) {
	ab.dev.BindVertexArray(ab.VAO)
	ab.dev.BindBuffer(gl.ARRAY_BUFFER, ab.VBO)
	ab.dev.EnableVertexAttribArray(index)
	ab.dev.VertexAttribPointer(index, size, xtype, stride, offset)
	ab.dev.BindVertexArray(0)
	ab.dev.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// SetupIntAttribute declares an integer vertex attribute (bone ids and the like).
func (ab *ArrayBuffer) SetupIntAttribute(index uint32, size int32, xtype uint32, stride int32, offset int) {
	ab.dev.BindVertexArray(ab.VAO)
	ab.dev.BindBuffer(gl.ARRAY_BUFFER, ab.VBO)
	ab.dev.EnableVertexAttribArray(index)
	ab.dev.VertexAttribIPointer(index, size, xtype, stride, offset)
	ab.dev.BindVertexArray(0)
	ab.dev.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// AttachInstanceData uploads per-instance data into a buffer owned by this
// ArrayBuffer. Calling it again replaces the contents of the same buffer.
func (ab *ArrayBuffer) AttachInstanceData(size int, data interface{}) {
	if ab.InstanceVBO == 0 {
		ab.InstanceVBO = ab.dev.GenBuffer()
	}
	ab.dev.BindBuffer(gl.ARRAY_BUFFER, ab.InstanceVBO)
	ab.dev.BufferData(gl.ARRAY_BUFFER, size, data, gl.STATIC_DRAW)
	ab.dev.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// SetupInstanceAttribute declares a float attribute sourced from the instance
// buffer, advancing once per instance.
func (ab *ArrayBuffer) SetupInstanceAttribute(index uint32, size int32, xtype uint32, stride int32, offset int) {
	if ab.InstanceVBO == 0 {
		return
	}
	ab.dev.BindVertexArray(ab.VAO)
	ab.dev.BindBuffer(gl.ARRAY_BUFFER, ab.InstanceVBO)
	ab.dev.EnableVertexAttribArray(index)
	ab.dev.VertexAttribPointer(index, size, xtype, stride, offset)
	ab.dev.VertexAttribDivisor(index, 1)
	ab.dev.BindVertexArray(0)
	ab.dev.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (ab *ArrayBuffer) Bind() {
	ab.dev.BindVertexArray(ab.VAO)
}

func (ab *ArrayBuffer) Unbind() {
	ab.dev.BindVertexArray(0)
}

// Delete unbinds and releases every object. It is safe to call twice.
func (ab *ArrayBuffer) Delete() {
	if ab.VAO == 0 && ab.VBO == 0 && ab.EBO == 0 && ab.InstanceVBO == 0 {
		return
	}
	ab.dev.BindBuffer(gl.ARRAY_BUFFER, 0)
	ab.dev.BindVertexArray(0)

	if ab.InstanceVBO != 0 {
		ab.dev.DeleteBuffer(ab.InstanceVBO)
	}
	if ab.EBO != 0 {
		ab.dev.DeleteBuffer(ab.EBO)
	}
	if ab.VBO != 0 {
		ab.dev.DeleteBuffer(ab.VBO)
	}
	if ab.VAO != 0 {
		ab.dev.DeleteVertexArray(ab.VAO)
	}
	ab.VAO, ab.VBO, ab.EBO, ab.InstanceVBO = 0, 0, 0, 0
}
