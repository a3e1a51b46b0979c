package gpu

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GLDevice forwards to the go-gl bindings. It requires a current context and
// gl.Init having succeeded on the calling thread.
type GLDevice struct{}

func NewGLDevice() *GLDevice {
	return &GLDevice{}
}

func ptr(data interface{}) unsafe.Pointer {
	if isEmpty(data) {
		return nil
	}
	return gl.Ptr(data)
}

func cstr(s string) *uint8 {
	if !strings.HasSuffix(s, "\x00") {
		s += "\x00"
	}
	return gl.Str(s)
}

func (GLDevice) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (GLDevice) DeleteVertexArray(id uint32) { gl.DeleteVertexArrays(1, &id) }
func (GLDevice) BindVertexArray(id uint32)   { gl.BindVertexArray(id) }

func (GLDevice) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (GLDevice) DeleteBuffer(id uint32)       { gl.DeleteBuffers(1, &id) }
func (GLDevice) BindBuffer(target, id uint32) { gl.BindBuffer(target, id) }

func (GLDevice) BufferData(target uint32, size int, data interface{}, usage uint32) {
	gl.BufferData(target, size, ptr(data), usage)
}

func (GLDevice) BufferSubData(target uint32, offset, size int, data interface{}) {
	gl.BufferSubData(target, offset, size, ptr(data))
}

func (GLDevice) BindBufferRange(target, index, id uint32, offset, size int) {
	gl.BindBufferRange(target, index, id, offset, size)
}

func (GLDevice) VertexAttribPointer(index uint32, size int32, xtype uint32, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, false, stride, gl.PtrOffset(offset))
}

func (GLDevice) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int) {
	gl.VertexAttribIPointer(index, size, xtype, stride, gl.PtrOffset(offset))
}

func (GLDevice) EnableVertexAttribArray(index uint32)      { gl.EnableVertexAttribArray(index) }
func (GLDevice) VertexAttribDivisor(index, divisor uint32) { gl.VertexAttribDivisor(index, divisor) }

func (GLDevice) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (GLDevice) DeleteTexture(id uint32)       { gl.DeleteTextures(1, &id) }
func (GLDevice) BindTexture(target, id uint32) { gl.BindTexture(target, id) }
func (GLDevice) ActiveTexture(unit uint32)     { gl.ActiveTexture(unit) }

func (GLDevice) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	var p unsafe.Pointer
	if len(pixels) > 0 {
		p = gl.Ptr(pixels)
	}
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, p)
}

func (GLDevice) TexImage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32) {
	gl.TexImage2DMultisample(target, samples, internalFormat, width, height, true)
}

func (GLDevice) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}
func (GLDevice) GenerateMipmap(target uint32)          { gl.GenerateMipmap(target) }
func (GLDevice) PixelStorei(pname uint32, param int32) { gl.PixelStorei(pname, param) }

func (GLDevice) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (GLDevice) DeleteFramebuffer(id uint32)       { gl.DeleteFramebuffers(1, &id) }
func (GLDevice) BindFramebuffer(target, id uint32) { gl.BindFramebuffer(target, id) }

func (GLDevice) FramebufferTexture2D(target, attachment, texTarget, texture uint32) {
	gl.FramebufferTexture2D(target, attachment, texTarget, texture, 0)
}

func (GLDevice) FramebufferRenderbuffer(target, attachment, renderbuffer uint32) {
	gl.FramebufferRenderbuffer(target, attachment, gl.RENDERBUFFER, renderbuffer)
}

func (GLDevice) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

func (GLDevice) BlitFramebuffer(srcW, srcH, dstW, dstH int32, mask, filter uint32) {
	gl.BlitFramebuffer(0, 0, srcW, srcH, 0, 0, dstW, dstH, mask, filter)
}

func (GLDevice) GenRenderbuffer() uint32 {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	return id
}

func (GLDevice) DeleteRenderbuffer(id uint32) { gl.DeleteRenderbuffers(1, &id) }
func (GLDevice) BindRenderbuffer(id uint32)   { gl.BindRenderbuffer(gl.RENDERBUFFER, id) }

func (GLDevice) RenderbufferStorage(internalFormat uint32, width, height int32) {
	gl.RenderbufferStorage(gl.RENDERBUFFER, internalFormat, width, height)
}

func (GLDevice) RenderbufferStorageMultisample(samples int32, internalFormat uint32, width, height int32) {
	gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, samples, internalFormat, width, height)
}

func (GLDevice) CreateShader(kind uint32) uint32 { return gl.CreateShader(kind) }

func (GLDevice) ShaderSource(id uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
}

func (GLDevice) CompileShader(id uint32) { gl.CompileShader(id) }

func (GLDevice) ShaderCompileStatus(id uint32) (bool, string) {
	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(id, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (GLDevice) DeleteShader(id uint32) { gl.DeleteShader(id) }

func (GLDevice) CreateProgram() uint32               { return gl.CreateProgram() }
func (GLDevice) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (GLDevice) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }
func (GLDevice) LinkProgram(program uint32)          { gl.LinkProgram(program) }
func (GLDevice) DeleteProgram(program uint32)        { gl.DeleteProgram(program) }
func (GLDevice) UseProgram(program uint32)           { gl.UseProgram(program) }

func (GLDevice) ProgramLinkStatus(program uint32) (bool, string) {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (GLDevice) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, cstr(name))
}

func (GLDevice) GetUniformBlockIndex(program uint32, name string) uint32 {
	return gl.GetUniformBlockIndex(program, cstr(name))
}

func (GLDevice) UniformBlockBinding(program, blockIndex, binding uint32) {
	gl.UniformBlockBinding(program, blockIndex, binding)
}

func (GLDevice) Uniform1i(location int32, v int32)         { gl.Uniform1i(location, v) }
func (GLDevice) Uniform1f(location int32, v float32)       { gl.Uniform1f(location, v) }
func (GLDevice) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }
func (GLDevice) UniformMatrix3fv(location int32, m mgl32.Mat3) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}
func (GLDevice) UniformMatrix4fv(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (GLDevice) Enable(capability uint32)           { gl.Enable(capability) }
func (GLDevice) Disable(capability uint32)          { gl.Disable(capability) }
func (GLDevice) DepthFunc(fn uint32)                { gl.DepthFunc(fn) }
func (GLDevice) DepthMask(write bool)               { gl.DepthMask(write) }
func (GLDevice) BlendFunc(src, dst uint32)          { gl.BlendFunc(src, dst) }
func (GLDevice) ClearColor(r, g, b, a float32)      { gl.ClearColor(r, g, b, a) }
func (GLDevice) Clear(mask uint32)                  { gl.Clear(mask) }
func (GLDevice) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (GLDevice) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (GLDevice) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	gl.DrawArraysInstanced(mode, first, count, instances)
}

func (GLDevice) DrawElements(mode uint32, count int32, xtype uint32) {
	gl.DrawElements(mode, count, xtype, nil)
}

func (GLDevice) DrawElementsInstanced(mode uint32, count int32, xtype uint32, instances int32) {
	gl.DrawElementsInstanced(mode, count, xtype, nil, instances)
}
