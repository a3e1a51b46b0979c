package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"GLScene/internal/gpu"
	"GLScene/internal/logger"
	"GLScene/internal/renderer"

	"go.uber.org/zap"
)

// Import picks an importer by file extension.
func Import(path string) (*Scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return ImportOBJ(path)
	case ".gltf", ".glb":
		return ImportGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(path))
	}
}

// LoadModel imports path and uploads every mesh. On failure the error is
// logged and an empty model is returned alongside it, so callers can keep
// rendering the rest of the scene.
func LoadModel(dev gpu.Device, path string) (*renderer.Model, error) {
	model := renderer.NewModel(dev, path, filepath.Dir(path))
	scene, err := Import(path)
	if err != nil {
		logger.Log.Error("Model failed to load", zap.String("path", path), zap.Error(err))
		return model, err
	}
	Build(dev, model, scene)
	logger.Log.Info("Model loaded",
		zap.String("path", path),
		zap.Int("meshes", len(model.Meshes)),
		zap.Int("vertices", model.VertexCount()),
		zap.Int("textures", model.Textures.Len()))
	model.Textures.LogStats()
	return model, nil
}

// Build appends the meshes of scene to model in node order. Textures go
// through the model's cache, so a path shared by several meshes uploads once.
func Build(dev gpu.Device, model *renderer.Model, scene *Scene) {
	textures := &renderer.TextureLoader{Device: dev}
	scene.Walk(func(node *Node) {
		for _, idx := range node.Meshes {
			if idx < 0 || idx >= len(scene.Meshes) {
				continue
			}
			if len(scene.Meshes[idx].Indices) == 0 {
				logger.Log.Warn("Skipping mesh without indices",
					zap.String("node", node.Name),
					zap.String("mesh", scene.Meshes[idx].Name))
				continue
			}
			model.Meshes = append(model.Meshes, processMesh(dev, model, textures, scene, &scene.Meshes[idx]))
		}
	})
}

func processMesh(dev gpu.Device, model *renderer.Model, textures *renderer.TextureLoader, scene *Scene, data *MeshData) *renderer.Mesh {
	data.complete()

	vertices := make([]renderer.Vertex, len(data.Positions))
	for i := range vertices {
		vertices[i] = renderer.Vertex{
			Position:  data.Positions[i],
			Normal:    data.Normals[i],
			TexCoords: data.TexCoords[i],
			Tangent:   data.Tangents[i],
			Bitangent: data.Bitangents[i],
		}
	}

	var meshTextures []renderer.Texture
	if data.Material >= 0 && data.Material < len(scene.Materials) {
		mat := scene.Materials[data.Material]
		for _, family := range []string{
			renderer.TextureDiffuse,
			renderer.TextureSpecular,
			renderer.TextureNormal,
			renderer.TextureHeight,
		} {
			for _, ref := range mat.Textures[family] {
				ref := ref
				tex := model.Textures.Acquire(ref.Path, family, func() uint32 {
					if ref.Embedded != nil {
						return textures.LoadBytes(ref.Path, ref.Embedded, renderer.TextureOpaque)
					}
					return textures.Load(ref.Path, renderer.TextureOpaque)
				})
				if tex.ID != 0 {
					meshTextures = append(meshTextures, tex)
				}
			}
		}
	}

	return renderer.NewMesh(dev, vertices, data.Indices, meshTextures)
}
