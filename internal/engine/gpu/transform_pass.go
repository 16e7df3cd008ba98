package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/Faultbox/showroom/internal/engine/mesh"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/shader"
	"github.com/Faultbox/showroom/internal/engine/shader/glsl"
	"github.com/Faultbox/showroom/pkg/math"
)

// TransformPass uploads geometry and matrices, then dispatches transform.comp.
type TransformPass struct {
	program uint32

	source      *StorageBuffer
	transformed *StorageBuffer
	models      *StorageBuffer
	ranges      *StorageBuffer

	locTriangleCount int32
	locSlotCount     int32

	triangles uint32
}

// NewTransformPass compiles the compute program and creates its buffers.
func NewTransformPass() (*TransformPass, error) {
	program, err := shader.CompileCompute("transform", glsl.TransformCompute)
	if err != nil {
		return nil, err
	}
	return &TransformPass{
		program:          program,
		source:           NewStorageBuffer(glsl.BindingSource),
		transformed:      NewStorageBuffer(glsl.BindingTransformed),
		models:           NewStorageBuffer(glsl.BindingModels),
		ranges:           NewStorageBuffer(glsl.BindingRanges),
		locTriangleCount: shader.Uniform(program, "triangleCount"),
		locSlotCount:     shader.Uniform(program, "slotCount"),
	}, nil
}

// SetGeometry re-uploads the whole packed source block and range table and
// sizes the destination block to match.
func (p *TransformPass) SetGeometry(tris []mesh.Triangle, ranges [scene.NumSlots]scene.Range) {
	Upload(p.source, tris)
	Upload(p.ranges, ranges[:])
	p.transformed.Reserve(len(tris) * int(unsafe.Sizeof(mesh.Triangle{})))
	p.triangles = uint32(len(tris))
}

// Run uploads this frame's matrices and transforms every triangle.
func (p *TransformPass) Run(matrices [scene.NumSlots]math.Mat4) {
	Upload(p.models, matrices[:])
	if p.triangles == 0 {
		return
	}

	p.source.BindBase()
	p.transformed.BindBase()
	p.models.BindBase()
	p.ranges.BindBase()

	gl.UseProgram(p.program)
	gl.Uniform1ui(p.locTriangleCount, p.triangles)
	gl.Uniform1ui(p.locSlotCount, scene.NumSlots)
	gl.DispatchCompute(DispatchGroups(p.triangles), 1, 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)
}

// Triangles returns the number of triangles in the current geometry.
func (p *TransformPass) Triangles() uint32 {
	return p.triangles
}

// Transformed is the output block read by the trace pass.
func (p *TransformPass) Transformed() *StorageBuffer {
	return p.transformed
}

// Ranges is the per-slot range table.
func (p *TransformPass) Ranges() *StorageBuffer {
	return p.ranges
}

// Destroy releases the program and buffers.
func (p *TransformPass) Destroy() {
	p.source.Destroy()
	p.transformed.Destroy()
	p.models.Destroy()
	p.ranges.Destroy()
	gl.DeleteProgram(p.program)
}

// DispatchGroups returns the number of work groups covering n triangles.
func DispatchGroups(n uint32) uint32 {
	return (n + glsl.WorkGroupSize - 1) / glsl.WorkGroupSize
}
