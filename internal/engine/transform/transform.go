// Package transform computes the per-slot model matrices each frame.
//
// The vehicle is a fixed two-level hierarchy: wheels are composed from the body
// matrix, a local attachment offset, an optional steering angle, and a rolling
// rotation. The device pass that applies the matrices to triangles lives in the
// gpu package; Apply here is the host-side reference of the same computation.
package transform

import (
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/pkg/math"
)

// Rates and fixed placements.
const (
	// BodySpinRate is the body's yaw rate in radians per second.
	BodySpinRate = 0.25
	// WheelRollRate is the wheels' roll rate in radians per second.
	WheelRollRate = 3
	// SteerDegrees is the fixed steering angle of the front wheels.
	SteerDegrees = 35
	// GroundHeight places the ground plane under the wheels.
	GroundHeight = -0.5
)

// Attachment is a wheel mount on the vehicle body.
type Attachment struct {
	Name      string
	Slot      scene.Slot
	Offset    math.Vec3
	Steerable bool
}

// Wheels is the attachment table for a four-wheel vehicle.
var Wheels = []Attachment{
	{Name: "front-left", Slot: scene.SlotWheelFrontLeft, Offset: math.Vec3{X: 0.870, Y: 0.180, Z: 1.530}, Steerable: true},
	{Name: "back-left", Slot: scene.SlotWheelBackLeft, Offset: math.Vec3{X: 0.870, Y: 0.180, Z: -1.580}},
	{Name: "back-right", Slot: scene.SlotWheelBackRight, Offset: math.Vec3{X: -0.870, Y: 0.180, Z: -1.580}},
	{Name: "front-right", Slot: scene.SlotWheelFrontRight, Offset: math.Vec3{X: -0.870, Y: 0.180, Z: 1.530}, Steerable: true},
}

// Stage holds the static placement parameters.
type Stage struct {
	SkyboxScale float32
	SkyboxDrop  float32
	BodyOrigin  math.Vec3
	Attachments []Attachment
}

// NewStage returns a stage with the showroom's default placements.
func NewStage(skyboxScale, skyboxDrop float32) *Stage {
	return &Stage{
		SkyboxScale: skyboxScale,
		SkyboxDrop:  skyboxDrop,
		Attachments: Wheels,
	}
}

// Ground returns the static ground matrix.
func (s *Stage) Ground() math.Mat4 {
	return math.Translate(0, GroundHeight, 0).Mul(math.UniformScale(1))
}

// Skybox follows the eye, dropped by SkyboxDrop and scaled to enclose the view.
func (s *Stage) Skybox(eye math.Vec3) math.Mat4 {
	pos := eye.Sub(math.Vec3{Y: s.SkyboxDrop})
	return math.TranslateVec(pos).Mul(math.UniformScale(s.SkyboxScale))
}

// Body spins about +Y at BodySpinRate.
func (s *Stage) Body(t float32) math.Mat4 {
	return math.TranslateVec(s.BodyOrigin).Mul(math.RotateY(t * BodySpinRate))
}

// Wheel composes body * offset * [steer] * roll.
func (s *Stage) Wheel(body math.Mat4, a Attachment, t float32) math.Mat4 {
	m := body.Mul(math.TranslateVec(a.Offset))
	if a.Steerable {
		m = m.Mul(math.RotateY(math.Radians(SteerDegrees)))
	}
	return m.Mul(math.RotateX(t * WheelRollRate))
}

// Matrices computes one matrix per slot for elapsed time t (seconds).
func (s *Stage) Matrices(t float32, eye math.Vec3) [scene.NumSlots]math.Mat4 {
	var out [scene.NumSlots]math.Mat4

	out[scene.SlotGround] = s.Ground()
	out[scene.SlotSkybox] = s.Skybox(eye)

	body := s.Body(t)
	out[scene.SlotBody] = body
	for _, a := range s.Attachments {
		out[a.Slot] = s.Wheel(body, a, t)
	}
	return out
}

// Update writes this frame's matrices into the scene.
func (s *Stage) Update(sc *scene.Scene, t float32, eye math.Vec3) {
	sc.SetTransforms(s.Matrices(t, eye))
}
