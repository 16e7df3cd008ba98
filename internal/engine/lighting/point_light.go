// Package lighting provides point lights for the ray-tracing stage.
package lighting

import "github.com/Faultbox/showroom/pkg/math"

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 8

// PointLightSize is the std430 size of one PointLight in bytes.
const PointLightSize = 48

// PointLight is laid out as the shader's light block expects it.
type PointLight struct {
	Position   math.Vec4 // World position, w unused
	Color      math.Vec4 // RGB, a unused
	Radius     float32   // Falloff distance
	Brightness float32   // Intensity multiplier
	_          [2]float32
}

// NewPointLight builds a light from plain values, clamping color to 0-1
// and defaulting a non-positive radius.
func NewPointLight(pos, color math.Vec3, radius, brightness float32) PointLight {
	c := [3]float32{color.X, color.Y, color.Z}
	for i := range c {
		if c[i] > 1.0 {
			c[i] = 1.0
		}
		if c[i] < 0.0 {
			c[i] = 0.0
		}
	}
	if radius <= 0 {
		radius = 10.0
	}
	return PointLight{
		Position:   pos.Vec4(0),
		Color:      math.Vec4{c[0], c[1], c[2], 0},
		Radius:     radius,
		Brightness: brightness,
	}
}

// Attenuation returns the simple falloff the fragment stage applies:
// brightness scaled linearly to zero at the radius.
func (l PointLight) Attenuation(dist float32) float32 {
	if dist >= l.Radius {
		return 0
	}
	return l.Brightness * (1 - dist/l.Radius)
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Count returns the number of lights.
func (b *PointLightBuffer) Count() int {
	return len(b.Lights)
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if len(b.Lights) >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	return true
}

// Set replaces the light at index i. Returns false if i is out of range.
func (b *PointLightBuffer) Set(i int, light PointLight) bool {
	if i < 0 || i >= len(b.Lights) {
		return false
	}
	b.Lights[i] = light
	return true
}
