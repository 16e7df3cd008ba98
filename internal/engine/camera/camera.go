// Package camera derives the four corner view rays consumed by the ray tracer.
package camera

import (
	"github.com/Faultbox/showroom/pkg/math"
)

// Rays holds the eye and the frustum corner directions.
// R00 is bottom-left, R01 top-left, R10 bottom-right, R11 top-right.
type Rays struct {
	Eye                math.Vec3
	R00, R01, R10, R11 math.Vec3
}

// Direction returns the primary ray direction for normalized screen
// coordinates x (0 left, 1 right) and y (0 bottom, 1 top).
func (r Rays) Direction(x, y float32) math.Vec3 {
	left := r.R00.Lerp(r.R01, y)
	right := r.R10.Lerp(r.R11, y)
	return left.Lerp(right, x)
}

// Rig is a look-at camera.
type Rig struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3

	// FOV is the vertical field of view in degrees.
	FOV    float32
	Aspect float32
}

// NewRig creates a rig with a 1:1 aspect.
func NewRig(eye, target, up math.Vec3, fov float32) *Rig {
	return &Rig{
		Eye:    eye,
		Target: target,
		Up:     up,
		FOV:    fov,
		Aspect: 1,
	}
}

// SetViewport updates the aspect ratio. Zero sizes are ignored.
func (r *Rig) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.Aspect = float32(width) / float32(height)
}

// Rays computes the corner rays from the current pose.
//
// The forward vector is swung by half the horizontal angle about the camera's
// up axis to get the left and right edges, and each edge is then tilted by half
// the vertical angle about its own right axis. The horizontal angle is FOV*Aspect.
func (r *Rig) Rays() Rays {
	forward := r.Target.Sub(r.Eye)
	back := forward.Negate()
	right := r.Up.Cross(back)
	up := back.Cross(right)

	hAngle := math.Radians(r.FOV*r.Aspect) / 2
	vAngle := math.Radians(r.FOV) / 2

	toLeft := math.RotateAxis(up, hAngle)
	toRight := math.RotateAxis(up, -hAngle)

	left := toLeft.TransformDirection(forward)
	rightEdge := toRight.TransformDirection(forward)
	leftAxis := toLeft.TransformDirection(right)
	rightAxis := toRight.TransformDirection(right)

	return Rays{
		Eye: r.Eye,
		R00: math.RotateAxis(leftAxis, -vAngle).TransformDirection(left),
		R01: math.RotateAxis(leftAxis, vAngle).TransformDirection(left),
		R10: math.RotateAxis(rightAxis, -vAngle).TransformDirection(rightEdge),
		R11: math.RotateAxis(rightAxis, vAngle).TransformDirection(rightEdge),
	}
}
