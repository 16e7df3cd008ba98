// Package picking casts primary rays against packed triangles on the host.
// It follows the fragment stage's intersection so tests and diagnostics can
// ask what a pixel sees without reading the GPU back.
package picking

import (
	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/mesh"
	"github.com/Faultbox/showroom/pkg/math"
)

const epsilon = 1e-6

// Ray represents a ray in 3D space with origin and normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// ScreenRay returns the primary ray through normalized screen coordinates
// (x right, y up, both 0-1), interpolated the way the fragment stage does.
func ScreenRay(rays camera.Rays, x, y float32) Ray {
	return Ray{Origin: rays.Eye, Direction: rays.Direction(x, y).Normalize()}
}

// Hit is the nearest intersection of a cast.
type Hit struct {
	Index int     // triangle index in the packed block
	T     float32 // distance along the ray
	U, V  float32 // barycentrics of corners 1 and 2
}

// Point returns the hit position.
func (h Hit) Point(r Ray) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(h.T))
}

// IntersectTriangle tests r against one triangle (Moller-Trumbore, two-sided).
func (r Ray) IntersectTriangle(tri *mesh.Triangle) (t, u, v float32, ok bool) {
	p0, p1, p2 := tri.Pos[0].XYZ(), tri.Pos[1].XYZ(), tri.Pos[2].XYZ()
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)

	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -epsilon && det < epsilon {
		return 0, 0, 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(p0)
	u = s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}
	q := s.Cross(e1)
	v = r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = e2.Dot(q) * inv
	if t <= epsilon {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// Cast returns the nearest triangle hit by r.
func Cast(r Ray, tris []mesh.Triangle) (Hit, bool) {
	best := Hit{Index: -1}
	for i := range tris {
		t, u, v, ok := r.IntersectTriangle(&tris[i])
		if ok && (best.Index < 0 || t < best.T) {
			best = Hit{Index: i, T: t, U: u, V: v}
		}
	}
	return best, best.Index >= 0
}
