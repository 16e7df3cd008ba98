package transform

import (
	"github.com/Faultbox/showroom/internal/engine/mesh"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/pkg/math"
)

// Apply transforms packed triangles by their slot's matrix, writing into dst.
// It mirrors transform.comp: one work item per triangle, slot found through
// the range table, positions by the full matrix, normals by its upper 3x3.
// dst must be at least as long as src. Triangles outside every range are
// copied unchanged.
func Apply(dst, src []mesh.Triangle, ranges [scene.NumSlots]scene.Range, matrices [scene.NumSlots]math.Mat4) {
	for i := range src {
		slot, ok := scene.SlotOf(ranges, uint32(i))
		if !ok {
			dst[i] = src[i]
			continue
		}
		dst[i] = TransformTriangle(src[i], matrices[slot])
	}
}

// TransformTriangle applies m to one triangle. W components stay 1.
func TransformTriangle(tri mesh.Triangle, m math.Mat4) mesh.Triangle {
	out := tri
	for v := 0; v < 3; v++ {
		out.Pos[v] = m.TransformVec3(tri.Pos[v].XYZ()).Vec4(1)
		out.Normal[v] = m.TransformDirection(tri.Normal[v].XYZ()).Normalize().Vec4(1)
	}
	return out
}
