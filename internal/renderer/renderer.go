package renderer

import (
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointLights matches the pointLights array length in the model shader.
const MaxPointLights = 4

// Light is a point light. Attenuation follows constant/linear/quadratic terms.
type Light struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Constant  float32
	Linear    float32
	Quadratic float32
}

func NewPointLight(position mgl32.Vec3) Light {
	return Light{
		Position:  position,
		Color:     mgl32.Vec3{1, 1, 1},
		Constant:  1.0,
		Linear:    0.09,
		Quadratic: 0.032,
	}
}

// SceneConfig describes everything the composer acquires at startup.
type SceneConfig struct {
	ShaderDir      string
	GeometryShader string // optional geometry stage for the model program
	PlaneTexture   string
	GrassTexture   string
	Skybox         CubemapFaces

	Width   int32
	Height  int32
	Samples int32

	ModelPosition  mgl32.Vec3
	ModelScale     float32
	LightPositions []mgl32.Vec3
	LightCubeScale float32
	GrassPositions []mgl32.Vec3
	ClearColor     mgl32.Vec4
	Shininess      float32
}

func (sc SceneConfig) shader(vertex, fragment string) ShaderSources {
	return ShaderSources{
		Vertex:   filepath.Join(sc.ShaderDir, vertex),
		Fragment: filepath.Join(sc.ShaderDir, fragment),
	}
}

// FrameInput is the per-frame state the composer reads.
type FrameInput struct {
	Camera     *Camera
	Flashlight bool
	BlinnPhong bool
	Gamma      bool
}
