package loader

import (
	"fmt"
	"path/filepath"

	"GLScene/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

// ImportGLTF reads a .gltf or .glb file. Each primitive becomes one mesh and
// the node hierarchy of the default scene is kept.
func ImportGLTF(filename string) (*Scene, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return convertDocument(doc, filename)
}

// convertDocument maps a decoded document onto a Scene. Relative image URIs
// resolve against the directory of path.
func convertDocument(doc *gltf.Document, path string) (*Scene, error) {
	scene := &Scene{Root: &Node{Name: "root"}}
	dir := filepath.Dir(path)

	for i, mat := range doc.Materials {
		scene.Materials = append(scene.Materials, convertMaterial(doc, mat, i, path, dir))
	}

	// primitive ranges per glTF mesh, so nodes can reference them
	meshPrims := make([][]int, len(doc.Meshes))
	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			data, err := readPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			if data == nil {
				continue
			}
			data.Name = mesh.Name
			meshPrims[mi] = append(meshPrims[mi], len(scene.Meshes))
			scene.Meshes = append(scene.Meshes, *data)
		}
	}

	var roots []int
	switch {
	case doc.Scene != nil && *doc.Scene < len(doc.Scenes):
		roots = doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		roots = doc.Scenes[0].Nodes
	}

	visited := make(map[int]bool)
	var convert func(idx int) *Node
	convert = func(idx int) *Node {
		if idx < 0 || idx >= len(doc.Nodes) || visited[idx] {
			return nil
		}
		visited[idx] = true
		src := doc.Nodes[idx]
		node := &Node{Name: src.Name}
		if src.Mesh != nil && *src.Mesh < len(meshPrims) {
			node.Meshes = append(node.Meshes, meshPrims[*src.Mesh]...)
		}
		for _, child := range src.Children {
			if c := convert(child); c != nil {
				node.Children = append(node.Children, c)
			}
		}
		return node
	}
	for _, idx := range roots {
		if n := convert(idx); n != nil {
			scene.Root.Children = append(scene.Root.Children, n)
		}
	}

	// Documents without a scene still show their meshes.
	if len(roots) == 0 {
		for _, prims := range meshPrims {
			scene.Root.Meshes = append(scene.Root.Meshes, prims...)
		}
	}

	logger.Log.Debug("glTF parsed",
		zap.Int("nodes", len(doc.Nodes)),
		zap.Int("meshes", len(scene.Meshes)),
		zap.Int("materials", len(scene.Materials)))
	return scene, nil
}

// readPrimitive returns nil for primitives that are not triangles.
func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*MeshData, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	mesh := &MeshData{Material: -1}
	if prim.Material != nil {
		mesh.Material = *prim.Material
	}
	for _, p := range positions {
		mesh.Positions = append(mesh.Positions, mgl32.Vec3(p))
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		for _, n := range normals {
			mesh.Normals = append(mesh.Normals, mgl32.Vec3(n))
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read texture coordinates: %w", err)
		}
		for _, uv := range uvs {
			mesh.TexCoords = append(mesh.TexCoords, mgl32.Vec2(uv))
		}
	}
	if idx, ok := prim.Attributes[gltf.TANGENT]; ok && len(mesh.Normals) == len(mesh.Positions) {
		tangents, err := modeler.ReadTangent(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read tangents: %w", err)
		}
		for i, t := range tangents {
			if i >= len(mesh.Normals) {
				break
			}
			tangent := mgl32.Vec3{t[0], t[1], t[2]}
			// w carries the handedness of the bitangent
			mesh.Tangents = append(mesh.Tangents, tangent)
			mesh.Bitangents = append(mesh.Bitangents, mesh.Normals[i].Cross(tangent).Mul(t[3]))
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	switch prim.Mode {
	case gltf.PrimitiveTriangles:
		mesh.Indices = indices
	case gltf.PrimitiveTriangleStrip:
		for i := 2; i < len(indices); i++ {
			if i%2 == 0 {
				mesh.Indices = append(mesh.Indices, indices[i-2], indices[i-1], indices[i])
			} else {
				mesh.Indices = append(mesh.Indices, indices[i-1], indices[i-2], indices[i])
			}
		}
	case gltf.PrimitiveTriangleFan:
		for i := 2; i < len(indices); i++ {
			mesh.Indices = append(mesh.Indices, indices[0], indices[i-1], indices[i])
		}
	default:
		logger.Log.Warn("Skipping non-triangle primitive", zap.Int("mode", int(prim.Mode)))
		return nil, nil
	}
	if len(mesh.Indices) == 0 {
		logger.Log.Warn("Skipping primitive without triangles",
			zap.Int("indices", len(indices)))
		return nil, nil
	}
	return mesh, nil
}

func convertMaterial(doc *gltf.Document, mat *gltf.Material, index int, path, dir string) Material {
	m := newMaterial(mat.Name)
	addRef := func(family string, texture int) {
		if ref, ok := textureRef(doc, texture, path, dir); ok {
			m.add(family, ref)
		}
	}
	if pbr := mat.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorTexture != nil {
			addRef("texture_diffuse", pbr.BaseColorTexture.Index)
		}
		if pbr.MetallicRoughnessTexture != nil {
			addRef("texture_specular", pbr.MetallicRoughnessTexture.Index)
		}
	}
	if mat.NormalTexture != nil && mat.NormalTexture.Index != nil {
		addRef("texture_normal", *mat.NormalTexture.Index)
	}
	if mat.OcclusionTexture != nil && mat.OcclusionTexture.Index != nil {
		addRef("texture_height", *mat.OcclusionTexture.Index)
	}
	if m.Name == "" {
		m.Name = fmt.Sprintf("material%d", index)
	}
	return m
}

// textureRef resolves a texture to an external file or embedded bytes.
// Embedded images are keyed "<model path>#image<n>" for the texture cache.
func textureRef(doc *gltf.Document, texture int, path, dir string) (TextureRef, bool) {
	if texture < 0 || texture >= len(doc.Textures) {
		return TextureRef{}, false
	}
	src := doc.Textures[texture].Source
	if src == nil || *src >= len(doc.Images) {
		return TextureRef{}, false
	}
	img := doc.Images[*src]
	key := fmt.Sprintf("%s#image%d", path, *src)

	switch {
	case img.BufferView != nil:
		data, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			logger.Log.Warn("Embedded image unreadable", zap.String("image", key), zap.Error(err))
			return TextureRef{}, false
		}
		return TextureRef{Path: key, Embedded: data}, true
	case img.IsEmbeddedResource():
		data, err := img.MarshalData()
		if err != nil {
			logger.Log.Warn("Embedded image unreadable", zap.String("image", key), zap.Error(err))
			return TextureRef{}, false
		}
		return TextureRef{Path: key, Embedded: data}, true
	case img.URI != "":
		return TextureRef{Path: filepath.Join(dir, filepath.FromSlash(img.URI))}, true
	}
	return TextureRef{}, false
}
