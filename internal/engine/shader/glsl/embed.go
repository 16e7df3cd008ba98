// Package glsl holds the embedded GLSL sources of the two device stages.
package glsl

import _ "embed"

// TransformCompute applies per-slot model matrices to the packed triangles.
//
//go:embed transform.comp
var TransformCompute string

// RayTraceVertex emits a full-screen quad with normalized screen coordinates.
//
//go:embed raytrace.vert
var RayTraceVertex string

// RayTraceFragment intersects one primary ray per pixel with the transformed triangles.
//
//go:embed raytrace.frag
var RayTraceFragment string

// Binding points shared with the Go side.
const (
	BindingTransformed = 0
	BindingSource      = 1
	BindingModels      = 2
	BindingRanges      = 3
	BindingLights      = 4
)

// WorkGroupSize is local_size_x of transform.comp.
const WorkGroupSize = 64
