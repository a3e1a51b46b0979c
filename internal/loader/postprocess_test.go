package loader

import (
	"testing"

	"GLScene/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

var (
	quadPositions = []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	quadUVs       = []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	quadIndices   = []uint32{0, 1, 2, 0, 2, 3}
)

func TestGenerateSmoothNormals(t *testing.T) {
	normals := GenerateSmoothNormals(quadPositions, quadIndices)
	for _, n := range normals {
		assert.True(t, n.ApproxEqual(mgl32.Vec3{0, 0, 1}), "got %v", n)
	}

	// a vertex no triangle references falls back to up
	normals = GenerateSmoothNormals(append(quadPositions, mgl32.Vec3{5, 5, 5}), quadIndices)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, normals[4])
}

func TestGenerateSmoothNormalsAveragesAcrossFaces(t *testing.T) {
	// two faces meeting at a right angle along the x axis
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	indices := []uint32{0, 1, 2, 0, 3, 1}
	normals := GenerateSmoothNormals(positions, indices)

	want := mgl32.Vec3{0, 1, 1}.Normalize()
	assert.True(t, normals[0].ApproxEqual(want), "got %v", normals[0])
	assert.True(t, normals[2].ApproxEqual(mgl32.Vec3{0, 0, 1}))
}

func TestCalculateTangents(t *testing.T) {
	normals := GenerateSmoothNormals(quadPositions, quadIndices)
	tangents, bitangents := CalculateTangents(quadPositions, normals, quadUVs, quadIndices)

	for i := range tangents {
		assert.True(t, tangents[i].ApproxEqual(mgl32.Vec3{1, 0, 0}), "tangent %d = %v", i, tangents[i])
		assert.True(t, bitangents[i].ApproxEqual(mgl32.Vec3{0, 1, 0}), "bitangent %d = %v", i, bitangents[i])
	}
}

func TestMeshDataCompleteFillsMissingAttributes(t *testing.T) {
	mesh := MeshData{Positions: quadPositions, Indices: quadIndices}
	mesh.complete()

	assert.Len(t, mesh.Normals, 4)
	assert.Len(t, mesh.TexCoords, 4)
	assert.Len(t, mesh.Tangents, 4)
	assert.Len(t, mesh.Bitangents, 4)
	// all-zero uvs leave tangents at zero
	assert.Equal(t, mgl32.Vec3{}, mesh.Tangents[0])
}
