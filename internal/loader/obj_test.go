package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"GLScene/internal/gpu/gputest"
	"GLScene/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# two materials sharing one texture
mtllib scene.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl brick
f 1/1/1 2/2/1 3/3/1 4/4/1
usemtl stone
f -4/1/1 -2/3/1 -1/4/1
`

const sceneMTL = `newmtl brick
map_Kd wall.png
map_Bump -bm 0.5 wall_n.png
newmtl stone
map_Kd wall.png
`

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		img.SetNRGBA(i%2, i/2, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeFiles(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	return dir
}

func TestParseOBJGroupsByMaterial(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{"scene.mtl": []byte(sceneMTL)})
	scene, err := parseOBJ(strings.NewReader(quadOBJ), dir)
	require.NoError(t, err)

	require.Len(t, scene.Meshes, 2)
	assert.Equal(t, []int{0, 1}, scene.Root.Meshes)
	require.Len(t, scene.Materials, 2)
	assert.Equal(t, "brick", scene.Materials[0].Name)

	quad := scene.Meshes[0]
	assert.Equal(t, "brick", quad.Name)
	assert.Equal(t, 0, quad.Material)
	assert.Len(t, quad.Positions, 4, "quad corners are shared")
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, quad.Indices)
	assert.Equal(t, mgl32.Vec2{0, 1}, quad.TexCoords[0], "v is flipped")
	assert.Len(t, quad.Normals, 4)

	tri := scene.Meshes[1]
	assert.Equal(t, 1, tri.Material)
	assert.Equal(t, []mgl32.Vec3{{0, 0, 0}, {1, 1, 0}, {0, 1, 0}}, tri.Positions)
}

func TestParseOBJWithoutMaterialsOrNormals(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 0 0 1\nf 1 2 3 4 1\n"
	scene, err := parseOBJ(strings.NewReader(src), t.TempDir())
	require.NoError(t, err)
	require.Len(t, scene.Meshes, 1)

	mesh := scene.Meshes[0]
	assert.Equal(t, -1, mesh.Material)
	assert.Nil(t, mesh.Normals, "missing normals are left for generation")
	assert.Len(t, mesh.Indices, 9, "pentagon fans into three triangles")
}

func TestParseOBJRejectsBadFaces(t *testing.T) {
	for name, src := range map[string]string{
		"out of range": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n",
		"zero index":   "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"too short":    "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"bad vertex":   "v 0 zero 0\n",
	} {
		_, err := parseOBJ(strings.NewReader(src), t.TempDir())
		assert.Error(t, err, name)
	}
}

func TestLoadMaterialsMissingFile(t *testing.T) {
	materials, order := LoadMaterials(filepath.Join(t.TempDir(), "nope.mtl"))
	assert.Empty(t, materials)
	assert.Empty(t, order)
}

func TestLoadMaterialsTextureFamilies(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{"scene.mtl": []byte(sceneMTL)})
	materials, order := LoadMaterials(filepath.Join(dir, "scene.mtl"))
	assert.Equal(t, []string{"brick", "stone"}, order)

	brick := materials["brick"]
	require.Len(t, brick.Textures[renderer.TextureDiffuse], 1)
	assert.Equal(t, filepath.Join(dir, "wall.png"), brick.Textures[renderer.TextureDiffuse][0].Path)
	require.Len(t, brick.Textures[renderer.TextureNormal], 1)
	assert.Equal(t, filepath.Join(dir, "wall_n.png"), brick.Textures[renderer.TextureNormal][0].Path)
}

func TestLoadModelSharesTextures(t *testing.T) {
	img := pngBytes(t)
	dir := writeFiles(t, map[string][]byte{
		"scene.obj":  []byte(quadOBJ),
		"scene.mtl":  []byte(sceneMTL),
		"wall.png":   img,
		"wall_n.png": img,
	})
	dev := gputest.NewDevice()
	logs := observeLogs(t)

	model, err := LoadModel(dev, filepath.Join(dir, "scene.obj"))
	require.NoError(t, err)
	require.Len(t, model.Meshes, 2)
	assert.Equal(t, dir, model.Directory)

	assert.Len(t, dev.Uploads, 2, "wall.png is uploaded once for both materials")
	assert.Equal(t, 2, model.Textures.Len())
	assert.Equal(t, []string{"texture_diffuse1", "texture_normal1"}, renderer.SamplerNames(model.Meshes[0].Textures))
	assert.Equal(t, model.Meshes[0].Textures[0].ID, model.Meshes[1].Textures[0].ID)
	assert.Equal(t, 7, model.VertexCount())

	stats := logs.FilterMessage("Texture cache stats").All()
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1), stats[0].ContextMap()["cacheHits"])
	assert.Equal(t, int64(2), stats[0].ContextMap()["cacheMisses"])

	model.Delete()
	assert.True(t, dev.Balanced(), dev.Summary())
}

func TestLoadModelFailureReturnsEmptyModel(t *testing.T) {
	dev := gputest.NewDevice()

	model, err := LoadModel(dev, filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, err)
	require.NotNil(t, model)
	assert.Empty(t, model.Meshes)

	_, err = LoadModel(dev, "scene.fbx")
	assert.ErrorContains(t, err, "unsupported")
	assert.True(t, dev.Balanced())
}
