package renderer

import (
	"os"

	"GLScene/internal/gpu"
	"GLScene/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ShaderSources names the GLSL files of one program. Geometry is optional.
type ShaderSources struct {
	Vertex   string
	Fragment string
	Geometry string
}

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	Name    string
	program uint32
	dev     gpu.Device
}

// NewShader reads, compiles and links the program. Unreadable files become
// empty sources; compile and link failures are logged and the resulting
// program is kept so callers never have to special-case a broken shader.
func NewShader(dev gpu.Device, src ShaderSources) *Shader {
	shader := &Shader{Name: src.Vertex, dev: dev}

	vertexSource := readShaderFile(src.Vertex)
	fragmentSource := readShaderFile(src.Fragment)

	vertex := shader.compile(vertexSource, gl.VERTEX_SHADER)
	fragment := shader.compile(fragmentSource, gl.FRAGMENT_SHADER)
	stages := []uint32{vertex, fragment}
	if src.Geometry != "" {
		geometry := shader.compile(readShaderFile(src.Geometry), gl.GEOMETRY_SHADER)
		stages = append(stages, geometry)
	}

	shader.program = dev.CreateProgram()
	for _, stage := range stages {
		dev.AttachShader(shader.program, stage)
	}
	dev.LinkProgram(shader.program)
	if ok, log := dev.ProgramLinkStatus(shader.program); !ok {
		logger.Log.Error("Failed to link program",
			zap.String("shader", shader.Name),
			zap.String("log", log))
	}

	for _, stage := range stages {
		dev.DetachShader(shader.program, stage)
		dev.DeleteShader(stage)
	}
	return shader
}

func readShaderFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Log.Error("Shader file not successfully read",
			zap.String("path", path),
			zap.Error(err))
		return ""
	}
	return string(data)
}

func stageName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "VERTEX"
	case gl.GEOMETRY_SHADER:
		return "GEOMETRY"
	default:
		return "FRAGMENT"
	}
}

func (shader *Shader) compile(source string, shaderType uint32) uint32 {
	id := shader.dev.CreateShader(shaderType)
	shader.dev.ShaderSource(id, source)
	shader.dev.CompileShader(id)
	if ok, log := shader.dev.ShaderCompileStatus(id); !ok {
		logger.Log.Error("Failed to compile",
			zap.String("shader", shader.Name),
			zap.String("stage", stageName(shaderType)),
			zap.String("log", log))
	}
	return id
}

func (shader *Shader) ID() uint32 {
	return shader.program
}

func (shader *Shader) Use() {
	shader.dev.UseProgram(shader.program)
}

// Locations are looked up on every call; -1 means the program has no such
// uniform and the write is dropped.
func (shader *Shader) location(name string) (int32, bool) {
	location := shader.dev.GetUniformLocation(shader.program, name)
	return location, location != -1
}

func (shader *Shader) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	shader.SetInt(name, v)
}

func (shader *Shader) SetInt(name string, value int32) {
	if location, ok := shader.location(name); ok {
		shader.dev.Uniform1i(location, value)
	}
}

func (shader *Shader) SetFloat(name string, value float32) {
	if location, ok := shader.location(name); ok {
		shader.dev.Uniform1f(location, value)
	}
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	if location, ok := shader.location(name); ok {
		shader.dev.Uniform3f(location, value.X(), value.Y(), value.Z())
	}
}

func (shader *Shader) SetVec3f(name string, x, y, z float32) {
	shader.SetVec3(name, mgl32.Vec3{x, y, z})
}

func (shader *Shader) SetMat3(name string, value mgl32.Mat3) {
	if location, ok := shader.location(name); ok {
		shader.dev.UniformMatrix3fv(location, value)
	}
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	if location, ok := shader.location(name); ok {
		shader.dev.UniformMatrix4fv(location, value)
	}
}

func (shader *Shader) Delete() {
	if shader.program == 0 {
		return
	}
	shader.dev.UseProgram(0)
	shader.dev.DeleteProgram(shader.program)
	shader.program = 0
}
