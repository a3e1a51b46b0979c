package renderer

import (
	"fmt"
	"strings"
	"testing"

	"GLScene/internal/gpu/gputest"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lastBindBefore returns the most recent binding of target recorded before
// the given call, or "" when there is none.
func lastBindBefore(calls []string, target uint32, call string) string {
	prefix := fmt.Sprintf("bind %#x ", target)
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i] != call {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if strings.HasPrefix(calls[j], prefix) {
				return calls[j]
			}
		}
		return ""
	}
	return ""
}

func TestArrayBufferLifecycle(t *testing.T) {
	dev := gputest.NewDevice()
	data := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}

	ab := NewArrayBuffer(dev, len(data)*4, data)
	require.NotZero(t, ab.VAO)
	require.NotZero(t, ab.VBO)
	assert.Zero(t, ab.EBO)

	ab.SetupAttribute(0, 3, gl.FLOAT, 12, 0)
	ab.SetupAttribute(0, 3, gl.FLOAT, 12, 0)
	assert.Equal(t, uint32(0), dev.Bound[gl.VERTEX_ARRAY_BINDING], "setup leaves no VAO bound")

	vbo := ab.VBO
	ab.Delete()
	assert.Zero(t, ab.VAO)
	assert.Zero(t, ab.VBO)
	assert.True(t, dev.Balanced(), dev.Summary())

	last := lastBindBefore(dev.Calls, gl.ARRAY_BUFFER, fmt.Sprintf("delete buffer %d", vbo))
	assert.Equal(t, fmt.Sprintf("bind %#x 0", uint32(gl.ARRAY_BUFFER)), last, "array buffer target unbound before delete")

	ab.Delete()
	assert.True(t, dev.Balanced())
}

func TestIndexedArrayBufferWithInstances(t *testing.T) {
	dev := gputest.NewDevice()
	ab := NewIndexedArrayBuffer(dev, 36, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1, 2})
	require.NotZero(t, ab.EBO)

	ab.SetupInstanceAttribute(3, 4, gl.FLOAT, 64, 0)
	assert.Zero(t, ab.InstanceVBO, "no instance buffer until data is attached")

	ab.AttachInstanceData(64, []mgl32.Mat4{mgl32.Ident4()})
	first := ab.InstanceVBO
	ab.AttachInstanceData(64, []mgl32.Mat4{mgl32.Ident4()})
	assert.Equal(t, first, ab.InstanceVBO, "instance buffer is reused")
	assert.Equal(t, 3, dev.LiveCount(gputest.Buffer))

	ab.Delete()
	assert.True(t, dev.Balanced(), dev.Summary())
}

func TestUBOUpdateAndBlock(t *testing.T) {
	dev := gputest.NewDevice()
	dev.Blocks["Matrices"] = true

	u := NewUBO(dev, 128, 0, gl.STATIC_DRAW)
	require.NotZero(t, u.ID)

	assert.True(t, u.BindBlock(7, "Matrices"))
	assert.Equal(t, uint32(0), dev.BlockBindings[7])
	assert.False(t, u.BindBlock(8, "Lights"))

	m := mgl32.Ident4()
	u.Update(64, 64, &m[0])
	require.Len(t, dev.SubDatas, 1)
	assert.Equal(t, gputest.SubData{Buffer: u.ID, Offset: 64, Size: 64}, dev.SubDatas[0])

	logs := observeLogs(t)
	u.Update(100, 64, &m[0])
	assert.Len(t, dev.SubDatas, 1, "out of range update is dropped")
	assert.Equal(t, 1, logs.FilterMessage("Uniform buffer update out of range").Len())

	u.Delete()
	u.Delete()
	assert.Zero(t, u.ID)
	assert.True(t, dev.Balanced(), dev.Summary())
}

func TestFramebufferKinds(t *testing.T) {
	dev := gputest.NewDevice()

	ms := NewFramebuffer(dev, 800, 600, FramebufferMultisample, 4)
	assert.True(t, ms.Complete)
	assert.NotZero(t, ms.FBO)
	assert.NotZero(t, ms.ColorTexture)
	assert.NotZero(t, ms.RBO)
	assert.Empty(t, dev.Uploads, "multisample color target has no 2D upload")

	plain := NewFramebuffer(dev, 800, 600, FramebufferNormal, 0)
	assert.Equal(t, int32(1), plain.Samples)
	require.Len(t, dev.Uploads, 1)
	assert.Equal(t, int32(800), dev.Uploads[0].Width)

	ms.ResolveInto(plain)
	assert.Equal(t, 1, dev.Blits)

	ms.Delete()
	plain.Delete()
	assert.True(t, dev.Balanced(), dev.Summary())
}

func TestFramebufferIncompleteIsLogged(t *testing.T) {
	logs := observeLogs(t)
	dev := gputest.NewDevice()
	dev.FramebufferStatus = gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT

	fb := NewFramebuffer(dev, 16, 16, FramebufferNormal, 1)
	assert.False(t, fb.Complete)
	assert.NotZero(t, fb.FBO, "incomplete framebuffer stays usable")
	assert.Equal(t, 1, logs.FilterMessage("Framebuffer is not complete").Len())

	fb.Delete()
	assert.True(t, dev.Balanced(), dev.Summary())
}

func TestFramebufferResize(t *testing.T) {
	dev := gputest.NewDevice()
	fb := NewFramebuffer(dev, 800, 600, FramebufferMultisample, 4)
	fbo, tex := fb.FBO, fb.ColorTexture

	fb.Resize(800, 600)
	assert.Equal(t, tex, fb.ColorTexture, "same size is a no-op")

	fb.Resize(1024, 768)
	assert.Equal(t, fbo, fb.FBO)
	assert.NotEqual(t, tex, fb.ColorTexture)
	assert.Equal(t, int32(1024), fb.Width)
	assert.Equal(t, 1, dev.LiveCount(gputest.Texture))
	assert.Equal(t, 1, dev.LiveCount(gputest.Renderbuffer))

	fb.Delete()
	assert.True(t, dev.Balanced(), dev.Summary())
}
