package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"GLScene/internal/gpu/gputest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeShaderFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestShaderCompilesAndReleasesStages(t *testing.T) {
	dir := writeShaderFiles(t, map[string]string{
		"a.vs": "#version 330 core\nvoid main() {}\n",
		"a.fs": "#version 330 core\nvoid main() {}\n",
		"a.gs": "#version 330 core\nvoid main() {}\n",
	})
	dev := gputest.NewDevice()

	s := NewShader(dev, ShaderSources{
		Vertex:   filepath.Join(dir, "a.vs"),
		Fragment: filepath.Join(dir, "a.fs"),
		Geometry: filepath.Join(dir, "a.gs"),
	})
	require.NotZero(t, s.ID())
	assert.Equal(t, 3, dev.Created[gputest.Shader])
	assert.Zero(t, dev.LiveCount(gputest.Shader), "stage objects are deleted after linking")

	s.Delete()
	s.Delete()
	assert.True(t, dev.Balanced(), dev.Summary())
}

func TestShaderMissingFileIsLogged(t *testing.T) {
	logs := observeLogs(t)
	dev := gputest.NewDevice()

	s := NewShader(dev, ShaderSources{Vertex: "nope.vs", Fragment: "nope.fs"})
	assert.NotZero(t, s.ID(), "program exists even without sources")
	assert.Equal(t, 2, logs.FilterMessage("Shader file not successfully read").Len())

	s.Delete()
	assert.True(t, dev.Balanced())
}

func TestShaderCompileAndLinkFailuresAreNotFatal(t *testing.T) {
	dir := writeShaderFiles(t, map[string]string{
		"bad.vs": "this is not glsl",
		"ok.fs":  "#version 330 core\nvoid main() {}\n",
	})
	logs := observeLogs(t)
	dev := gputest.NewDevice()
	dev.FailCompile = "not glsl"
	dev.FailLink = true

	s := NewShader(dev, ShaderSources{Vertex: filepath.Join(dir, "bad.vs"), Fragment: filepath.Join(dir, "ok.fs")})

	compile := logs.FilterMessage("Failed to compile").All()
	require.Len(t, compile, 1)
	assert.Equal(t, "VERTEX", compile[0].ContextMap()["stage"])
	assert.Equal(t, 1, logs.FilterMessage("Failed to link program").Len())

	s.Delete()
	assert.True(t, dev.Balanced(), dev.Summary())
}

func TestShaderUniformSetters(t *testing.T) {
	dev := gputest.NewDevice()
	dev.DeclareUniforms("enabled", "count", "scale", "color", "normalMatrix", "model")
	s := NewShader(dev, ShaderSources{})
	s.Use()

	s.SetBool("enabled", true)
	s.SetInt("count", 3)
	s.SetFloat("scale", 0.5)
	s.SetVec3f("color", 1, 0, 0)
	s.SetMat3("normalMatrix", mgl32.Ident3())
	s.SetMat4("model", mgl32.Ident4())

	assert.Equal(t, []interface{}{int32(1)}, dev.Writes("enabled"))
	assert.Equal(t, []interface{}{int32(3)}, dev.Writes("count"))
	assert.Equal(t, []interface{}{float32(0.5)}, dev.Writes("scale"))
	assert.Equal(t, []interface{}{mgl32.Vec3{1, 0, 0}}, dev.Writes("color"))
	assert.Equal(t, []interface{}{mgl32.Ident3()}, dev.Writes("normalMatrix"))
	assert.Equal(t, []interface{}{mgl32.Ident4()}, dev.Writes("model"))
	for _, w := range dev.UniformWrites {
		assert.Equal(t, s.ID(), w.Program)
	}
}

func TestShaderUnknownUniformIsNoOp(t *testing.T) {
	dev := gputest.NewDevice()
	s := NewShader(dev, ShaderSources{})

	// The fake panics on writes to location -1.
	assert.NotPanics(t, func() {
		s.SetBool("missing", true)
		s.SetInt("missing", 1)
		s.SetFloat("missing", 1)
		s.SetVec3("missing", mgl32.Vec3{})
		s.SetMat3("missing", mgl32.Mat3{})
		s.SetMat4("missing", mgl32.Mat4{})
	})
	assert.Empty(t, dev.UniformWrites)
}
