package loader

import (
	"github.com/go-gl/mathgl/mgl32"
)

// GenerateSmoothNormals averages face normals onto shared vertices.
// Degenerate triangles and out of range indices are skipped.
func GenerateSmoothNormals(positions []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	n := uint32(len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if i0 >= n || i1 >= n || i2 >= n {
			continue
		}
		v0, v1, v2 := positions[i0], positions[i1], positions[i2]
		face := v1.Sub(v0).Cross(v2.Sub(v0))
		if face.Len() == 0 {
			continue
		}
		face = face.Normalize()
		normals[i0] = normals[i0].Add(face)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
	}

	for i, normal := range normals {
		if normal.Len() > 0 {
			normals[i] = normal.Normalize()
		} else {
			normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
	return normals
}

// CalculateTangents derives per-vertex tangent and bitangent vectors from
// texture coordinates, orthogonalized against the normals.
func CalculateTangents(positions, normals []mgl32.Vec3, uvs []mgl32.Vec2, indices []uint32) (tangents, bitangents []mgl32.Vec3) {
	tangents = make([]mgl32.Vec3, len(positions))
	bitangents = make([]mgl32.Vec3, len(positions))
	n := uint32(len(positions))
	if len(uvs) < len(positions) || len(normals) < len(positions) {
		return tangents, bitangents
	}

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if i0 >= n || i1 >= n || i2 >= n {
			continue
		}
		edge1 := positions[i1].Sub(positions[i0])
		edge2 := positions[i2].Sub(positions[i0])
		duv1 := uvs[i1].Sub(uvs[i0])
		duv2 := uvs[i2].Sub(uvs[i0])

		det := duv1.X()*duv2.Y() - duv2.X()*duv1.Y()
		if det == 0 {
			continue
		}
		r := 1 / det
		t := edge1.Mul(duv2.Y()).Sub(edge2.Mul(duv1.Y())).Mul(r)
		b := edge2.Mul(duv1.X()).Sub(edge1.Mul(duv2.X())).Mul(r)

		for _, idx := range [3]uint32{i0, i1, i2} {
			tangents[idx] = tangents[idx].Add(t)
			bitangents[idx] = bitangents[idx].Add(b)
		}
	}

	for i := range tangents {
		normal := normals[i]
		// Gram-Schmidt
		t := tangents[i].Sub(normal.Mul(normal.Dot(tangents[i])))
		if t.Len() == 0 {
			continue
		}
		t = t.Normalize()
		b := normal.Cross(t)
		if b.Dot(bitangents[i]) < 0 {
			b = b.Mul(-1)
		}
		tangents[i] = t
		bitangents[i] = b
	}
	return tangents, bitangents
}

// complete fills in whatever optional attributes the importer left out so
// every mesh reaching the GPU has the full vertex layout.
func (m *MeshData) complete() {
	if len(m.Normals) < len(m.Positions) {
		m.Normals = GenerateSmoothNormals(m.Positions, m.Indices)
	}
	if len(m.TexCoords) < len(m.Positions) {
		uvs := make([]mgl32.Vec2, len(m.Positions))
		copy(uvs, m.TexCoords)
		m.TexCoords = uvs
	}
	if len(m.Tangents) < len(m.Positions) || len(m.Bitangents) < len(m.Positions) {
		m.Tangents, m.Bitangents = CalculateTangents(m.Positions, m.Normals, m.TexCoords, m.Indices)
	}
}
