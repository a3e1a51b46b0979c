// Package gpu narrows OpenGL down to the calls the renderer makes. Every
// wrapper in the renderer talks to a Device so resource lifetimes can be
// checked without a live context.
package gpu

import "github.com/go-gl/mathgl/mgl32"

// Device is the subset of the OpenGL 4.1 core API used by the renderer.
// Gen/Delete pairs operate on a single object name.
type Device interface {
	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)

	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target, id uint32)
	BufferData(target uint32, size int, data interface{}, usage uint32)
	BufferSubData(target uint32, offset, size int, data interface{})
	BindBufferRange(target, index, id uint32, offset, size int)

	VertexAttribPointer(index uint32, size int32, xtype uint32, stride int32, offset int)
	VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int)
	EnableVertexAttribArray(index uint32)
	VertexAttribDivisor(index, divisor uint32)

	GenTexture() uint32
	DeleteTexture(id uint32)
	BindTexture(target, id uint32)
	ActiveTexture(unit uint32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte)
	TexImage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32)
	TexParameteri(target, pname uint32, param int32)
	GenerateMipmap(target uint32)
	PixelStorei(pname uint32, param int32)

	GenFramebuffer() uint32
	DeleteFramebuffer(id uint32)
	BindFramebuffer(target, id uint32)
	FramebufferTexture2D(target, attachment, texTarget, texture uint32)
	FramebufferRenderbuffer(target, attachment, renderbuffer uint32)
	CheckFramebufferStatus(target uint32) uint32
	BlitFramebuffer(srcW, srcH, dstW, dstH int32, mask, filter uint32)

	GenRenderbuffer() uint32
	DeleteRenderbuffer(id uint32)
	BindRenderbuffer(id uint32)
	RenderbufferStorage(internalFormat uint32, width, height int32)
	RenderbufferStorageMultisample(samples int32, internalFormat uint32, width, height int32)

	CreateShader(kind uint32) uint32
	ShaderSource(id uint32, source string)
	CompileShader(id uint32)
	ShaderCompileStatus(id uint32) (ok bool, log string)
	DeleteShader(id uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinkStatus(program uint32) (ok bool, log string)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	GetUniformBlockIndex(program uint32, name string) uint32
	UniformBlockBinding(program, blockIndex, binding uint32)
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix3fv(location int32, m mgl32.Mat3)
	UniformMatrix4fv(location int32, m mgl32.Mat4)

	Enable(capability uint32)
	Disable(capability uint32)
	DepthFunc(fn uint32)
	DepthMask(write bool)
	BlendFunc(src, dst uint32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)

	DrawArrays(mode uint32, first, count int32)
	DrawArraysInstanced(mode uint32, first, count, instances int32)
	DrawElements(mode uint32, count int32, xtype uint32)
	DrawElementsInstanced(mode uint32, count int32, xtype uint32, instances int32)
}

// InvalidIndex is returned by GetUniformBlockIndex for unknown blocks.
const InvalidIndex = ^uint32(0)
