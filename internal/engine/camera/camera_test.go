package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/showroom/pkg/math"
)

func showroomRig() *Rig {
	r := NewRig(math.Vec3{Y: 5, Z: 10}, math.Vec3{Y: 0.5}, math.Vec3{Y: 1}, 45)
	r.SetViewport(1600, 900)
	return r
}

func TestCornerRaysDistinct(t *testing.T) {
	rays := showroomRig().Rays()
	corners := []math.Vec3{rays.R00, rays.R01, rays.R10, rays.R11}

	for i := range corners {
		for j := i + 1; j < len(corners); j++ {
			d := corners[i].Sub(corners[j]).Length()
			assert.Greater(t, d, float32(1e-3), "corners %d and %d coincide", i, j)
		}
	}
}

func TestCornerRaysLookAtTarget(t *testing.T) {
	r := showroomRig()
	rays := r.Rays()
	forward := r.Target.Sub(r.Eye)

	for i, c := range []math.Vec3{rays.R00, rays.R01, rays.R10, rays.R11} {
		assert.Greater(t, c.Dot(forward), float32(0), "corner %d", i)
	}
	assert.Equal(t, r.Eye, rays.Eye)
}

func TestCornerOrientation(t *testing.T) {
	rays := showroomRig().Rays()

	// Camera looks down -Z, so +X is screen right and +Y screen up.
	assert.Less(t, rays.R00.X, float32(0), "bottom-left is left")
	assert.Less(t, rays.R01.X, float32(0), "top-left is left")
	assert.Greater(t, rays.R10.X, float32(0), "bottom-right is right")
	assert.Greater(t, rays.R11.X, float32(0), "top-right is right")

	assert.Greater(t, rays.R01.Normalize().Y, rays.R00.Normalize().Y, "top above bottom")
	assert.Greater(t, rays.R11.Normalize().Y, rays.R10.Normalize().Y, "top above bottom")
}

func TestCenterRay(t *testing.T) {
	r := showroomRig()
	rays := r.Rays()

	got := rays.Direction(0.5, 0.5).Normalize()
	want := r.Target.Sub(r.Eye).Normalize()
	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.Z, got.Z, 1e-5)
}

func TestDirectionCorners(t *testing.T) {
	rays := showroomRig().Rays()

	tests := []struct {
		x, y float32
		want math.Vec3
	}{
		{0, 0, rays.R00},
		{0, 1, rays.R01},
		{1, 0, rays.R10},
		{1, 1, rays.R11},
	}
	for _, tt := range tests {
		got := rays.Direction(tt.x, tt.y)
		assert.InDelta(t, 0, got.Sub(tt.want).Length(), 1e-6, "(%v, %v)", tt.x, tt.y)
	}
}

func TestAspectWidensHorizontally(t *testing.T) {
	r := showroomRig()
	wide := r.Rays()

	r.SetViewport(900, 900)
	square := r.Rays()

	angle := func(a, b math.Vec3) float32 { return a.Normalize().Dot(b.Normalize()) }
	// Wider aspect means a smaller cosine between the left and right edges.
	assert.Less(t, angle(wide.R00, wide.R10), angle(square.R00, square.R10))
}

func TestSetViewportIgnoresZero(t *testing.T) {
	r := showroomRig()
	before := r.Aspect
	r.SetViewport(0, 0)
	assert.Equal(t, before, r.Aspect)
}
