// Package mesh owns the expanded (non-indexed) triangle data of every loaded model.
package mesh

import (
	"fmt"

	"github.com/Faultbox/showroom/pkg/formats"
	"github.com/Faultbox/showroom/pkg/math"
)

// TriangleSize is the std430 size of one Triangle in bytes (9 vec4).
const TriangleSize = 9 * 16

// Triangle is laid out exactly as the shader storage blocks expect it.
// Position and normal w are always 1; UV z and w are unused.
type Triangle struct {
	Pos    [3]math.Vec4
	UV     [3]math.Vec4
	Normal [3]math.Vec4
}

// SetFaceNormal writes n into all three corners.
func (t *Triangle) SetFaceNormal(n math.Vec3) {
	for i := range t.Normal {
		t.Normal[i] = n.Vec4(1)
	}
}

// HasFaceNormal reports whether all three corners share one normal.
func (t *Triangle) HasFaceNormal() bool {
	return t.Normal[0] == t.Normal[1] && t.Normal[1] == t.Normal[2]
}

// Mesh is a named, growable list of triangles.
type Mesh struct {
	Name      string
	Triangles []Triangle
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Triangles)
}

// FromOBJ expands a parsed model into a triangle list by resolving every
// corner against the position, UV and normal lists.
func FromOBJ(name string, obj *formats.OBJ) *Mesh {
	m := &Mesh{
		Name:      name,
		Triangles: make([]Triangle, len(obj.Faces)),
	}

	for i, face := range obj.Faces {
		tri := &m.Triangles[i]
		for j, c := range face.Corners {
			p := obj.Positions[c.Position]
			uv := obj.UVs[c.UV]
			n := obj.Normals[c.Normal]

			tri.Pos[j] = math.Vec4{p[0], p[1], p[2], 1}
			tri.UV[j] = math.Vec4{uv[0], uv[1], 0, 0}
			tri.Normal[j] = math.Vec4{n[0], n[1], n[2], 1}
		}
	}

	return m
}

// LoadFile parses a model file and expands it into a mesh.
func LoadFile(name, path string) (*Mesh, error) {
	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading mesh %q: %w", name, err)
	}
	return FromOBJ(name, obj), nil
}

// Plane builds a flat square on the XZ plane with one upward normal per face.
func Plane(name string, halfExtent float32) *Mesh {
	h := halfExtent
	corner := func(x, z float32) math.Vec4 { return math.Vec4{x, 0, z, 1} }

	tris := []Triangle{
		{
			Pos: [3]math.Vec4{corner(-h, h), corner(-h, -h), corner(h, -h)},
			UV:  [3]math.Vec4{{0, 0, 0, 0}, {0, 1, 0, 0}, {1, 1, 0, 0}},
		},
		{
			Pos: [3]math.Vec4{corner(-h, h), corner(h, -h), corner(h, h)},
			UV:  [3]math.Vec4{{0, 0, 0, 0}, {1, 1, 0, 0}, {1, 0, 0, 0}},
		},
	}
	for i := range tris {
		tris[i].SetFaceNormal(math.Vec3{X: 0, Y: 1, Z: 0})
	}

	return &Mesh{Name: name, Triangles: tris}
}
