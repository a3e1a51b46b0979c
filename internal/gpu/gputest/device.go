// Package gputest provides a recording Device for tests that exercise GPU
// resource lifetimes without a window or context.
package gputest

import (
	"fmt"
	"strings"

	"GLScene/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type Kind string

const (
	VertexArray  Kind = "vertex-array"
	Buffer       Kind = "buffer"
	Texture      Kind = "texture"
	Framebuffer  Kind = "framebuffer"
	Renderbuffer Kind = "renderbuffer"
	Shader       Kind = "shader"
	Program      Kind = "program"
)

var kinds = []Kind{VertexArray, Buffer, Texture, Framebuffer, Renderbuffer, Shader, Program}

type TexUpload struct {
	Texture        uint32
	Target         uint32
	InternalFormat int32
	Format         uint32
	Width, Height  int32
}

type SubData struct {
	Buffer       uint32
	Offset, Size int
}

type Draw struct {
	Program   uint32
	Mode      uint32
	Count     int32
	Instances int32
	Indexed   bool
}

type UniformWrite struct {
	Program uint32
	Name    string
	Value   interface{}
}

// Device records every call that matters for lifetime and ordering checks.
// Handles are handed out from one increasing counter so they are never zero
// and never reused.
type Device struct {
	// FramebufferStatus is returned by CheckFramebufferStatus.
	FramebufferStatus uint32
	// FailCompile makes compilation fail for sources containing this text.
	FailCompile string
	// FailLink makes every link fail.
	FailLink bool
	// Uniforms lists the names GetUniformLocation resolves; others give -1.
	Uniforms map[string]bool
	// Blocks lists the uniform block names programs declare.
	Blocks map[string]bool

	Created map[Kind]int
	Deleted map[Kind]int
	Live    map[Kind]map[uint32]bool

	Uploads       []TexUpload
	SubDatas      []SubData
	Draws         []Draw
	UniformWrites []UniformWrite
	BlockBindings map[uint32]uint32
	Blits         int
	Calls         []string

	Bound          map[uint32]uint32
	CurrentProgram uint32
	Enabled        map[uint32]bool
	DepthWrites    bool
	DepthFn        uint32
	ViewportSize   [2]int32

	next      uint32
	sources   map[uint32]string
	compiled  map[uint32]bool
	locations map[string]int32
	names     map[int32]string
}

func NewDevice() *Device {
	return &Device{
		FramebufferStatus: gl.FRAMEBUFFER_COMPLETE,
		Uniforms:          map[string]bool{},
		Blocks:            map[string]bool{},
		Created:           map[Kind]int{},
		Deleted:           map[Kind]int{},
		Live:              map[Kind]map[uint32]bool{},
		BlockBindings:     map[uint32]uint32{},
		Bound:             map[uint32]uint32{},
		Enabled:           map[uint32]bool{},
		DepthWrites:       true,
		DepthFn:           gl.LESS,
		sources:           map[uint32]string{},
		compiled:          map[uint32]bool{},
		locations:         map[string]int32{},
		names:             map[int32]string{},
	}
}

var _ gpu.Device = (*Device)(nil)

// DeclareUniforms makes the given names resolvable in every program.
func (d *Device) DeclareUniforms(names ...string) {
	for _, n := range names {
		d.Uniforms[n] = true
	}
}

// Balanced reports whether every created object has been deleted.
func (d *Device) Balanced() bool {
	for _, k := range kinds {
		if d.Created[k] != d.Deleted[k] {
			return false
		}
	}
	return true
}

// LiveCount is the number of objects of kind k not yet deleted.
func (d *Device) LiveCount(k Kind) int {
	return len(d.Live[k])
}

// Summary lists created/deleted counts per kind for failure messages.
func (d *Device) Summary() string {
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s %d/%d", k, d.Created[k], d.Deleted[k]))
	}
	return strings.Join(parts, ", ")
}

// DrawPrograms returns the program bound at each draw call, in order.
func (d *Device) DrawPrograms() []uint32 {
	out := make([]uint32, len(d.Draws))
	for i, dr := range d.Draws {
		out[i] = dr.Program
	}
	return out
}

// Writes returns the recorded values written to the named uniform.
func (d *Device) Writes(name string) []interface{} {
	var out []interface{}
	for _, w := range d.UniformWrites {
		if w.Name == name {
			out = append(out, w.Value)
		}
	}
	return out
}

func (d *Device) gen(k Kind) uint32 {
	d.next++
	d.Created[k]++
	if d.Live[k] == nil {
		d.Live[k] = map[uint32]bool{}
	}
	d.Live[k][d.next] = true
	d.Calls = append(d.Calls, fmt.Sprintf("gen %s %d", k, d.next))
	return d.next
}

func (d *Device) del(k Kind, id uint32) {
	if id == 0 {
		return
	}
	if !d.Live[k][id] {
		panic(fmt.Sprintf("gputest: delete of unknown %s %d", k, id))
	}
	delete(d.Live[k], id)
	d.Deleted[k]++
	d.Calls = append(d.Calls, fmt.Sprintf("delete %s %d", k, id))
}

func checkData(data interface{}, size int) {
	if err := gpu.CheckData(data, size); err != nil {
		panic(fmt.Sprintf("gputest: %v", err))
	}
}

func (d *Device) bind(target, id uint32) {
	d.Bound[target] = id
	d.Calls = append(d.Calls, fmt.Sprintf("bind %#x %d", target, id))
}

func (d *Device) GenVertexArray() uint32       { return d.gen(VertexArray) }
func (d *Device) DeleteVertexArray(id uint32)  { d.del(VertexArray, id) }
func (d *Device) BindVertexArray(id uint32)    { d.bind(gl.VERTEX_ARRAY_BINDING, id) }
func (d *Device) GenBuffer() uint32            { return d.gen(Buffer) }
func (d *Device) DeleteBuffer(id uint32)       { d.del(Buffer, id) }
func (d *Device) BindBuffer(target, id uint32) { d.bind(target, id) }

// BufferData and BufferSubData panic on data the GL device could not take
// an address of.
func (d *Device) BufferData(target uint32, size int, data interface{}, usage uint32) {
	checkData(data, size)
}

func (d *Device) BufferSubData(target uint32, offset, size int, data interface{}) {
	checkData(data, size)
	d.SubDatas = append(d.SubDatas, SubData{Buffer: d.Bound[target], Offset: offset, Size: size})
}

func (d *Device) BindBufferRange(target, index, id uint32, offset, size int) {}

func (d *Device) VertexAttribPointer(index uint32, size int32, xtype uint32, stride int32, offset int) {
}

func (d *Device) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int) {
}

func (d *Device) EnableVertexAttribArray(index uint32)      {}
func (d *Device) VertexAttribDivisor(index, divisor uint32) {}

func (d *Device) GenTexture() uint32                { return d.gen(Texture) }
func (d *Device) DeleteTexture(id uint32)           { d.del(Texture, id) }
func (d *Device) BindTexture(target, id uint32)     { d.bind(target, id) }
func (d *Device) ActiveTexture(unit uint32)         {}
func (d *Device) GenerateMipmap(target uint32)      {}
func (d *Device) PixelStorei(pname uint32, p int32) {}

func (d *Device) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	tex := d.Bound[gl.TEXTURE_2D]
	if target != gl.TEXTURE_2D {
		tex = d.Bound[gl.TEXTURE_CUBE_MAP]
	}
	d.Uploads = append(d.Uploads, TexUpload{
		Texture:        tex,
		Target:         target,
		InternalFormat: internalFormat,
		Format:         format,
		Width:          width,
		Height:         height,
	})
}

func (d *Device) TexImage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32) {
}

func (d *Device) TexParameteri(target, pname uint32, param int32) {}

func (d *Device) GenFramebuffer() uint32            { return d.gen(Framebuffer) }
func (d *Device) DeleteFramebuffer(id uint32)       { d.del(Framebuffer, id) }
func (d *Device) BindFramebuffer(target, id uint32) { d.bind(target, id) }

func (d *Device) FramebufferTexture2D(target, attachment, texTarget, texture uint32) {}
func (d *Device) FramebufferRenderbuffer(target, attachment, renderbuffer uint32)    {}
func (d *Device) CheckFramebufferStatus(target uint32) uint32                        { return d.FramebufferStatus }

func (d *Device) BlitFramebuffer(srcW, srcH, dstW, dstH int32, mask, filter uint32) {
	d.Blits++
	d.Calls = append(d.Calls, "blit")
}

func (d *Device) GenRenderbuffer() uint32      { return d.gen(Renderbuffer) }
func (d *Device) DeleteRenderbuffer(id uint32) { d.del(Renderbuffer, id) }
func (d *Device) BindRenderbuffer(id uint32)   { d.bind(gl.RENDERBUFFER, id) }

func (d *Device) RenderbufferStorage(internalFormat uint32, width, height int32) {}

func (d *Device) RenderbufferStorageMultisample(samples int32, internalFormat uint32, width, height int32) {
}

func (d *Device) CreateShader(kind uint32) uint32 { return d.gen(Shader) }

func (d *Device) ShaderSource(id uint32, source string) { d.sources[id] = source }

func (d *Device) CompileShader(id uint32) {
	d.compiled[id] = d.FailCompile == "" || !strings.Contains(d.sources[id], d.FailCompile)
}

func (d *Device) ShaderCompileStatus(id uint32) (bool, string) {
	if d.compiled[id] {
		return true, ""
	}
	return false, "0:1(1): error: syntax error"
}

func (d *Device) DeleteShader(id uint32) { d.del(Shader, id) }

func (d *Device) CreateProgram() uint32               { return d.gen(Program) }
func (d *Device) AttachShader(program, shader uint32) {}
func (d *Device) DetachShader(program, shader uint32) {}
func (d *Device) LinkProgram(program uint32)          {}
func (d *Device) DeleteProgram(program uint32)        { d.del(Program, program) }

func (d *Device) ProgramLinkStatus(program uint32) (bool, string) {
	if d.FailLink {
		return false, "error: linking failed"
	}
	return true, ""
}

func (d *Device) UseProgram(program uint32) {
	d.CurrentProgram = program
	d.Calls = append(d.Calls, fmt.Sprintf("use %d", program))
}

func (d *Device) GetUniformLocation(program uint32, name string) int32 {
	if !d.Uniforms[name] {
		return -1
	}
	loc, ok := d.locations[name]
	if !ok {
		loc = int32(len(d.locations))
		d.locations[name] = loc
		d.names[loc] = name
	}
	return loc
}

func (d *Device) GetUniformBlockIndex(program uint32, name string) uint32 {
	if !d.Blocks[name] {
		return gpu.InvalidIndex
	}
	return 0
}

func (d *Device) UniformBlockBinding(program, blockIndex, binding uint32) {
	d.BlockBindings[program] = binding
}

func (d *Device) write(location int32, v interface{}) {
	if location < 0 {
		panic("gputest: uniform write to location -1")
	}
	d.UniformWrites = append(d.UniformWrites, UniformWrite{Program: d.CurrentProgram, Name: d.names[location], Value: v})
}

func (d *Device) Uniform1i(location int32, v int32)             { d.write(location, v) }
func (d *Device) Uniform1f(location int32, v float32)           { d.write(location, v) }
func (d *Device) Uniform3f(location int32, x, y, z float32)     { d.write(location, mgl32.Vec3{x, y, z}) }
func (d *Device) UniformMatrix3fv(location int32, m mgl32.Mat3) { d.write(location, m) }
func (d *Device) UniformMatrix4fv(location int32, m mgl32.Mat4) { d.write(location, m) }

func (d *Device) Enable(capability uint32)      { d.Enabled[capability] = true }
func (d *Device) Disable(capability uint32)     { d.Enabled[capability] = false }
func (d *Device) DepthFunc(fn uint32)           { d.DepthFn = fn }
func (d *Device) DepthMask(write bool)          { d.DepthWrites = write }
func (d *Device) BlendFunc(src, dst uint32)     {}
func (d *Device) ClearColor(r, g, b, a float32) {}

func (d *Device) Clear(mask uint32) {
	d.Calls = append(d.Calls, fmt.Sprintf("clear %d", d.Bound[gl.FRAMEBUFFER]))
}

func (d *Device) Viewport(x, y, width, height int32) { d.ViewportSize = [2]int32{width, height} }

func (d *Device) draw(mode uint32, count, instances int32, indexed bool) {
	d.Draws = append(d.Draws, Draw{
		Program:   d.CurrentProgram,
		Mode:      mode,
		Count:     count,
		Instances: instances,
		Indexed:   indexed,
	})
	d.Calls = append(d.Calls, fmt.Sprintf("draw %d", d.CurrentProgram))
}

func (d *Device) DrawArrays(mode uint32, first, count int32) { d.draw(mode, count, 0, false) }

func (d *Device) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	d.draw(mode, count, instances, false)
}

func (d *Device) DrawElements(mode uint32, count int32, xtype uint32) {
	d.draw(mode, count, 0, true)
}

func (d *Device) DrawElementsInstanced(mode uint32, count int32, xtype uint32, instances int32) {
	d.draw(mode, count, instances, true)
}
