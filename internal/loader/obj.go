package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"GLScene/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const defaultMaterial = "default"

type faceVertex struct {
	VertexIdx   int32
	TexCoordIdx int32
	NormalIdx   int32
}

// objGroup collects the triangles that share one usemtl statement.
type objGroup struct {
	material string
	faces    []faceVertex
}

// ImportOBJ reads a Wavefront OBJ file and its material libraries. Every
// usemtl run becomes its own mesh under a single root node. Texture
// coordinates are flipped so v grows downwards like image rows.
func ImportOBJ(filename string) (*Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseOBJ(file, filepath.Dir(filename))
}

func parseOBJ(r io.Reader, dir string) (*Scene, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		texCoords []mgl32.Vec2
		groups    []*objGroup
		current   *objGroup
	)
	materials := make(map[string]Material)
	var materialOrder []string

	use := func(name string) {
		if current != nil && current.material == name {
			return
		}
		current = &objGroup{material: name}
		groups = append(groups, current)
	}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}
		switch parts[0] {
		case "v":
			v, err := parseVec3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", line, err)
			}
			positions = append(positions, v)
		case "vn":
			n, err := parseVec3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", line, err)
			}
			normals = append(normals, n)
		case "vt":
			uv, err := parseTextureCoordinate(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", line, err)
			}
			texCoords = append(texCoords, mgl32.Vec2{uv.X(), 1 - uv.Y()})
		case "f":
			face, err := parseFace(parts[1:], len(positions), len(texCoords), len(normals))
			if err != nil {
				return nil, fmt.Errorf("line %d: face: %w", line, err)
			}
			if current == nil {
				use(defaultMaterial)
			}
			current.faces = append(current.faces, face...)
		case "mtllib":
			for _, lib := range parts[1:] {
				loaded, order := LoadMaterials(filepath.Join(dir, lib))
				for _, name := range order {
					if _, seen := materials[name]; !seen {
						materialOrder = append(materialOrder, name)
					}
					materials[name] = loaded[name]
				}
			}
		case "usemtl":
			if len(parts) < 2 {
				continue
			}
			if _, ok := materials[parts[1]]; !ok {
				logger.Log.Debug("Material not found", zap.String("material", parts[1]))
			}
			use(parts[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	scene := &Scene{Root: &Node{Name: "root"}}
	materialIndex := make(map[string]int)
	for _, name := range materialOrder {
		materialIndex[name] = len(scene.Materials)
		scene.Materials = append(scene.Materials, materials[name])
	}

	for _, group := range groups {
		if len(group.faces) == 0 {
			continue
		}
		mesh := unify(group.faces, positions, texCoords, normals)
		mesh.Name = group.material
		mesh.Material = -1
		if idx, ok := materialIndex[group.material]; ok {
			mesh.Material = idx
		}
		scene.Root.Meshes = append(scene.Root.Meshes, len(scene.Meshes))
		scene.Meshes = append(scene.Meshes, mesh)
	}

	logger.Log.Debug("OBJ parsed",
		zap.Int("positions", len(positions)),
		zap.Int("meshes", len(scene.Meshes)),
		zap.Int("materials", len(scene.Materials)))
	return scene, nil
}

// unify turns OBJ's separate position/uv/normal indices into a single index
// buffer, sharing vertices whose index triplet repeats.
func unify(faces []faceVertex, positions []mgl32.Vec3, texCoords []mgl32.Vec2, normals []mgl32.Vec3) MeshData {
	var mesh MeshData
	seen := make(map[faceVertex]uint32)
	hasNormals := true

	for _, fv := range faces {
		if idx, ok := seen[fv]; ok {
			mesh.Indices = append(mesh.Indices, idx)
			continue
		}
		idx := uint32(len(mesh.Positions))
		seen[fv] = idx
		mesh.Positions = append(mesh.Positions, positions[fv.VertexIdx])

		uv := mgl32.Vec2{}
		if fv.TexCoordIdx >= 0 {
			uv = texCoords[fv.TexCoordIdx]
		}
		mesh.TexCoords = append(mesh.TexCoords, uv)

		if fv.NormalIdx >= 0 {
			mesh.Normals = append(mesh.Normals, normals[fv.NormalIdx])
		} else {
			hasNormals = false
		}
		mesh.Indices = append(mesh.Indices, idx)
	}

	if !hasNormals {
		mesh.Normals = nil
	}
	return mesh
}

// LoadMaterials reads a .mtl library. Missing files are logged and yield no
// materials. The second result keeps declaration order.
func LoadMaterials(filename string) (map[string]Material, []string) {
	materials := make(map[string]Material)
	file, err := os.Open(filename)
	if err != nil {
		logger.Log.Error("Error opening material file", zap.String("path", filename), zap.Error(err))
		return materials, nil
	}
	defer file.Close()

	var order []string
	var current string
	dir := filepath.Dir(filename)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				logger.Log.Error("Malformed material line", zap.String("line", scanner.Text()))
				continue
			}
			current = fields[1]
			materials[current] = newMaterial(current)
			order = append(order, current)
			continue
		}
		family, ok := mtlTextureFamilies[fields[0]]
		if !ok || current == "" || len(fields) < 2 {
			continue
		}
		// Options such as -bm come before the file name.
		texturePath := fields[len(fields)-1]
		if !filepath.IsAbs(texturePath) {
			texturePath = filepath.Join(dir, texturePath)
		}
		m := materials[current]
		m.add(family, TextureRef{Path: texturePath})
		materials[current] = m
	}
	if err := scanner.Err(); err != nil {
		logger.Log.Error("Error reading material file", zap.String("path", filename), zap.Error(err))
	}
	return materials, order
}

var mtlTextureFamilies = map[string]string{
	"map_Kd":   "texture_diffuse",
	"map_Ks":   "texture_specular",
	"map_Bump": "texture_normal",
	"map_bump": "texture_normal",
	"bump":     "texture_normal",
	"norm":     "texture_normal",
	"map_Ka":   "texture_height",
}

func parseVec3(parts []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(parts) < 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(parts))
	}
	for i := 0; i < 3; i++ {
		val, err := strconv.ParseFloat(parts[i], 32)
		if err != nil {
			return v, fmt.Errorf("invalid value %v: %w", parts[i], err)
		}
		v[i] = float32(val)
	}
	return v, nil
}

// for 2D textures, a third w component is ignored
func parseTextureCoordinate(parts []string) (mgl32.Vec2, error) {
	var uv mgl32.Vec2
	if len(parts) < 1 {
		return uv, fmt.Errorf("missing texture coordinate")
	}
	for i := 0; i < 2 && i < len(parts); i++ {
		val, err := strconv.ParseFloat(parts[i], 32)
		if err != nil {
			return uv, fmt.Errorf("invalid texture coordinate value %v: %w", parts[i], err)
		}
		uv[i] = float32(val)
	}
	return uv, nil
}

// parseFace resolves 1-based and negative OBJ indices against the counts
// seen so far and fan-triangulates polygons.
func parseFace(parts []string, nv, nt, nn int) ([]faceVertex, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(parts))
	}
	face := make([]faceVertex, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")

		v, err := resolveIndex(vals[0], nv)
		if err != nil {
			return nil, fmt.Errorf("vertex index: %w", err)
		}
		fv := faceVertex{VertexIdx: v, TexCoordIdx: -1, NormalIdx: -1}
		if len(vals) > 1 && vals[1] != "" {
			if fv.TexCoordIdx, err = resolveIndex(vals[1], nt); err != nil {
				return nil, fmt.Errorf("texture coordinate index: %w", err)
			}
		}
		if len(vals) > 2 && vals[2] != "" {
			if fv.NormalIdx, err = resolveIndex(vals[2], nn); err != nil {
				return nil, fmt.Errorf("normal index: %w", err)
			}
		}
		face = append(face, fv)
	}

	if len(face) == 3 {
		return face, nil
	}
	triangulated := make([]faceVertex, 0, (len(face)-2)*3)
	for i := 1; i < len(face)-1; i++ {
		triangulated = append(triangulated, face[0], face[i], face[i+1])
	}
	return triangulated, nil
}

func resolveIndex(s string, count int) (int32, error) {
	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid index %v: %w", s, err)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += int64(count)
	default:
		return 0, fmt.Errorf("index 0 is not valid")
	}
	if i < 0 || i >= int64(count) {
		return 0, fmt.Errorf("index %s out of range (%d defined)", s, count)
	}
	return int32(i), nil
}
