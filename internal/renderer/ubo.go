package renderer

import (
	"GLScene/internal/gpu"
	"GLScene/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// UBO is a uniform buffer bound to one binding point for its whole lifetime.
type UBO struct {
	ID    uint32
	Size  int
	Index uint32

	dev gpu.Device
}

// NewUBO allocates size bytes and binds the whole range to binding point index.
func NewUBO(dev gpu.Device, size int, index uint32, usage uint32) *UBO {
	u := &UBO{dev: dev, Size: size, Index: index}
	u.ID = dev.GenBuffer()

	dev.BindBuffer(gl.UNIFORM_BUFFER, u.ID)
	dev.BufferData(gl.UNIFORM_BUFFER, size, nil, usage)
	dev.BindBuffer(gl.UNIFORM_BUFFER, 0)
	dev.BindBufferRange(gl.UNIFORM_BUFFER, index, u.ID, 0, size)
	return u
}

// BindBlock points the named uniform block of program at this buffer's
// binding point. Programs that do not declare the block are skipped.
func (u *UBO) BindBlock(program uint32, blockName string) bool {
	blockIndex := u.dev.GetUniformBlockIndex(program, blockName)
	if blockIndex == gpu.InvalidIndex {
		logger.Log.Debug("Uniform block not present in program",
			zap.Uint32("program", program),
			zap.String("block", blockName))
		return false
	}
	u.dev.UniformBlockBinding(program, blockIndex, u.Index)
	return true
}

// Update writes size bytes of value at offset.
func (u *UBO) Update(offset, size int, value interface{}) {
	if offset < 0 || offset+size > u.Size {
		logger.Log.Error("Uniform buffer update out of range",
			zap.Int("offset", offset),
			zap.Int("size", size),
			zap.Int("capacity", u.Size))
		return
	}
	u.dev.BindBuffer(gl.UNIFORM_BUFFER, u.ID)
	u.dev.BufferSubData(gl.UNIFORM_BUFFER, offset, size, value)
	u.dev.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

func (u *UBO) Delete() {
	if u.ID == 0 {
		return
	}
	u.dev.BindBuffer(gl.UNIFORM_BUFFER, 0)
	u.dev.DeleteBuffer(u.ID)
	u.ID = 0
}
