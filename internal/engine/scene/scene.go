// Package scene holds the live per-frame composition of the showroom: a fixed
// table of instance slots (mesh reference, model matrix, texture) and the lights.
//
// Meshes are referenced, never owned: swapping a slot's mesh does not touch the
// mesh store. Any swap marks the packed geometry dirty so the renderer re-uploads
// it before the next transform pass.
package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/showroom/internal/engine/lighting"
	"github.com/Faultbox/showroom/internal/engine/mesh"
	"github.com/Faultbox/showroom/pkg/math"
)

// Scene errors.
var (
	ErrSlotLocked   = errors.New("slot mesh cannot change after initialization")
	ErrInvalidSlot  = errors.New("invalid slot")
	ErrNilMesh      = errors.New("nil mesh")
	ErrInvalidLight = errors.New("invalid light index")
)

// Slot is a fixed position in the instance table.
type Slot int

// Slots in packing order. The transform and ray-tracing stages index by this order.
const (
	SlotGround Slot = iota
	SlotSkybox
	SlotBody
	SlotWheelFrontLeft
	SlotWheelBackLeft
	SlotWheelBackRight
	SlotWheelFrontRight

	NumSlots = 7
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotGround:
		return "ground"
	case SlotSkybox:
		return "skybox"
	case SlotBody:
		return "body"
	case SlotWheelFrontLeft:
		return "wheel-front-left"
	case SlotWheelBackLeft:
		return "wheel-back-left"
	case SlotWheelBackRight:
		return "wheel-back-right"
	case SlotWheelFrontRight:
		return "wheel-front-right"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Valid reports whether s names a slot of the table.
func (s Slot) Valid() bool {
	return s >= 0 && s < NumSlots
}

// Texture indices bound by the ray-tracing stage.
const (
	TextureGround = iota
	TextureVehicle
	TextureSky

	NumTextures
)

// Instance is one entry of the slot table.
type Instance struct {
	Mesh    *mesh.Mesh
	Model   math.Mat4
	Texture int
}

// Range locates one slot's triangles in the packed buffer.
// It is a std430 uvec4: offset, count, texture, padding.
type Range struct {
	Offset  uint32
	Count   uint32
	Texture uint32
	_       uint32
}

// Scene is the instance table plus lights.
type Scene struct {
	instances [NumSlots]Instance
	lights    *lighting.PointLightBuffer

	geometryDirty bool
}

// New builds the table. The body slot stays empty until the first swap;
// all four wheel slots reference the same wheel mesh.
func New(ground, skybox, wheel *mesh.Mesh) (*Scene, error) {
	if ground == nil || skybox == nil || wheel == nil {
		return nil, fmt.Errorf("%w: ground, skybox and wheel are required", ErrNilMesh)
	}

	s := &Scene{
		lights:        lighting.NewPointLightBuffer(),
		geometryDirty: true,
	}
	s.instances[SlotGround] = Instance{Mesh: ground, Texture: TextureGround}
	s.instances[SlotSkybox] = Instance{Mesh: skybox, Texture: TextureSky}
	s.instances[SlotBody] = Instance{Texture: TextureVehicle}
	for _, w := range WheelSlots() {
		s.instances[w] = Instance{Mesh: wheel, Texture: TextureVehicle}
	}
	for i := range s.instances {
		s.instances[i].Model = math.Identity()
	}
	return s, nil
}

// WheelSlots returns the wheel slots in table order.
func WheelSlots() []Slot {
	return []Slot{SlotWheelFrontLeft, SlotWheelBackLeft, SlotWheelBackRight, SlotWheelFrontRight}
}

// Instance returns a copy of the slot's entry.
func (s *Scene) Instance(slot Slot) Instance {
	return s.instances[slot]
}

// SetTransform sets the model matrix of one slot.
func (s *Scene) SetTransform(slot Slot, m math.Mat4) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, int(slot))
	}
	s.instances[slot].Model = m
	return nil
}

// SetTransforms replaces every model matrix at once.
func (s *Scene) SetTransforms(ms [NumSlots]math.Mat4) {
	for i := range ms {
		s.instances[i].Model = ms[i]
	}
}

// Matrices returns the model matrices in slot order.
func (s *Scene) Matrices() [NumSlots]math.Mat4 {
	var out [NumSlots]math.Mat4
	for i := range s.instances {
		out[i] = s.instances[i].Model
	}
	return out
}

// SwapMesh replaces the mesh reference of a swappable slot. Only the vehicle body
// may change after initialization.
func (s *Scene) SwapMesh(slot Slot, m *mesh.Mesh) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, int(slot))
	}
	if slot != SlotBody {
		return fmt.Errorf("%w: %s", ErrSlotLocked, slot)
	}
	if m == nil {
		return fmt.Errorf("%w: swapping %s", ErrNilMesh, slot)
	}
	s.instances[slot].Mesh = m
	s.geometryDirty = true
	return nil
}

// AddLight appends a light. Returns false if the light table is full.
func (s *Scene) AddLight(l lighting.PointLight) bool {
	return s.lights.AddLight(l)
}

// SetLight replaces the parameters of light i.
func (s *Scene) SetLight(i int, l lighting.PointLight) error {
	if !s.lights.Set(i, l) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidLight, i, s.lights.Count())
	}
	return nil
}

// Lights returns the current lights.
func (s *Scene) Lights() []lighting.PointLight {
	return s.lights.Lights
}

// GeometryDirty reports whether packed geometry changed since the last upload.
func (s *Scene) GeometryDirty() bool {
	return s.geometryDirty
}

// MarkUploaded clears the dirty flag after the renderer has re-uploaded geometry.
func (s *Scene) MarkUploaded() {
	s.geometryDirty = false
}

// TotalTriangles returns the number of triangles across all slots, counting the
// shared wheel once per slot.
func (s *Scene) TotalTriangles() int {
	n := 0
	for i := range s.instances {
		n += s.instances[i].Mesh.TriangleCount()
	}
	return n
}

// Ranges returns each slot's offset and count in the packed buffer.
func (s *Scene) Ranges() [NumSlots]Range {
	var ranges [NumSlots]Range
	offset := uint32(0)
	for i := range s.instances {
		count := uint32(s.instances[i].Mesh.TriangleCount())
		ranges[i] = Range{
			Offset:  offset,
			Count:   count,
			Texture: uint32(s.instances[i].Texture),
		}
		offset += count
	}
	return ranges
}

// Pack flattens every slot's triangles into one contiguous block in slot order.
func (s *Scene) Pack() []mesh.Triangle {
	out := make([]mesh.Triangle, 0, s.TotalTriangles())
	for i := range s.instances {
		if m := s.instances[i].Mesh; m != nil {
			out = append(out, m.Triangles...)
		}
	}
	return out
}

// SlotOf returns the slot owning the triangle at flat index tri, searching the
// ranges the same way the transform pass does.
func SlotOf(ranges [NumSlots]Range, tri uint32) (Slot, bool) {
	for i, r := range ranges {
		if tri >= r.Offset && tri < r.Offset+r.Count {
			return Slot(i), true
		}
	}
	return 0, false
}
