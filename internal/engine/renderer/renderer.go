// Package renderer owns the GL render context: programs, storage buffers,
// textures and viewport. Each frame it uploads what changed, runs the
// transform pass, then the ray-tracing pass.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/gpu"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/texture"
	"github.com/Faultbox/showroom/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer is the render context.
type Renderer struct {
	config Config

	textures  *texture.Store
	transform *gpu.TransformPass
	trace     *gpu.TracePass

	uploads int
}

// New initializes GL and compiles both device stages.
// Must be called after the GL context is current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Disable(gl.DEPTH_TEST)
	gl.ClearColor(0, 0, 0, 1)

	r := &Renderer{config: cfg}

	var err error
	if r.transform, err = gpu.NewTransformPass(); err != nil {
		return nil, fmt.Errorf("transform stage: %w", err)
	}
	if r.trace, err = gpu.NewTracePass(); err != nil {
		r.transform.Destroy()
		return nil, fmt.Errorf("ray-tracing stage: %w", err)
	}
	r.textures = texture.NewStore()

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// LoadTextures loads one image per scene texture index, in index order.
func (r *Renderer) LoadTextures(paths [scene.NumTextures]string) error {
	for want, path := range paths {
		idx, err := r.textures.Load(path)
		if err != nil {
			return err
		}
		if idx != want {
			return fmt.Errorf("texture %s loaded at index %d, want %d", path, idx, want)
		}
	}
	return nil
}

// UploadScene re-uploads packed geometry when the scene changed since the
// last upload. Source block, destination size and range table are refreshed together.
func (r *Renderer) UploadScene(sc *scene.Scene) {
	if !sc.GeometryDirty() {
		return
	}
	tris := sc.Pack()
	r.transform.SetGeometry(tris, sc.Ranges())
	sc.MarkUploaded()
	r.uploads++

	logger.Debug("scene geometry uploaded",
		zap.Int("triangles", len(tris)),
		zap.Int("uploads", r.uploads))
}

// Frame renders one frame. Lights and camera uniforms are written every frame.
func (r *Renderer) Frame(sc *scene.Scene, rays camera.Rays) {
	r.UploadScene(sc)
	r.trace.SetLights(sc.Lights())

	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.transform.Run(sc.Matrices())

	r.textures.BindAll()
	r.trace.Run(rays, r.transform.Transformed(), r.transform.Ranges(), r.transform.Triangles())
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// ReadPixels reads the back buffer as bottom-up RGBA.
func (r *Renderer) ReadPixels() []byte {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Close releases GL resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.textures != nil {
		r.textures.Destroy()
	}
	if r.trace != nil {
		r.trace.Destroy()
	}
	if r.transform != nil {
		r.transform.Destroy()
	}
}
