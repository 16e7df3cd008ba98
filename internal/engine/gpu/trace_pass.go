package gpu

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/lighting"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/shader"
	"github.com/Faultbox/showroom/internal/engine/shader/glsl"
	"github.com/Faultbox/showroom/pkg/math"
)

// TracePass draws the full-screen quad that ray traces each pixel.
type TracePass struct {
	program uint32
	vao     uint32
	lights  *StorageBuffer

	locEye           int32
	locRays          [4]int32
	locTriangleCount int32
	locSlotCount     int32
	locLightCount    int32
	locTextures      [scene.NumTextures]int32

	lightCount uint32
}

// NewTracePass compiles the vertex/fragment pair.
func NewTracePass() (*TracePass, error) {
	program, err := shader.CompileProgram("raytrace", glsl.RayTraceVertex, glsl.RayTraceFragment)
	if err != nil {
		return nil, err
	}

	p := &TracePass{
		program:          program,
		lights:           NewStorageBuffer(glsl.BindingLights),
		locEye:           shader.Uniform(program, "eye"),
		locTriangleCount: shader.Uniform(program, "triangleCount"),
		locSlotCount:     shader.Uniform(program, "slotCount"),
		locLightCount:    shader.Uniform(program, "lightCount"),
	}
	for i, name := range []string{"ray00", "ray01", "ray10", "ray11"} {
		p.locRays[i] = shader.Uniform(program, name)
	}
	p.locTextures[scene.TextureGround] = shader.Uniform(program, "groundTex")
	p.locTextures[scene.TextureVehicle] = shader.Uniform(program, "vehicleTex")
	p.locTextures[scene.TextureSky] = shader.Uniform(program, "skyTex")

	// The quad is generated from gl_VertexID; core profile still needs a VAO.
	gl.GenVertexArrays(1, &p.vao)
	return p, nil
}

// SetLights uploads the light list.
func (p *TracePass) SetLights(lights []lighting.PointLight) {
	Upload(p.lights, lights)
	p.lightCount = uint32(len(lights))
}

// Run writes the camera uniforms and draws. The transformed and range buffers
// come from the transform pass of the same frame; texture i must be bound to unit i.
func (p *TracePass) Run(rays camera.Rays, transformed, ranges *StorageBuffer, triangles uint32) {
	transformed.BindBase()
	ranges.BindBase()
	p.lights.BindBase()

	gl.UseProgram(p.program)
	gl.Uniform3f(p.locEye, rays.Eye.X, rays.Eye.Y, rays.Eye.Z)
	for i, r := range [4]math.Vec3{rays.R00, rays.R01, rays.R10, rays.R11} {
		gl.Uniform3f(p.locRays[i], r.X, r.Y, r.Z)
	}
	gl.Uniform1ui(p.locTriangleCount, triangles)
	gl.Uniform1ui(p.locSlotCount, scene.NumSlots)
	gl.Uniform1ui(p.locLightCount, p.lightCount)
	for unit, loc := range p.locTextures {
		gl.Uniform1i(loc, int32(unit))
	}

	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// Destroy releases GL objects.
func (p *TracePass) Destroy() {
	p.lights.Destroy()
	gl.DeleteVertexArrays(1, &p.vao)
	gl.DeleteProgram(p.program)
}
