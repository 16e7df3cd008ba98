// Package showroom wires the mesh store, scene, transform stage, camera rig
// and renderer into the frame loop. Setup fails before the loop starts if any
// asset or device program cannot be loaded.
package showroom

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/config"
	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/lighting"
	"github.com/Faultbox/showroom/internal/engine/mesh"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/transform"
	"github.com/Faultbox/showroom/internal/logger"
	"github.com/Faultbox/showroom/pkg/math"
)

// ErrTooManyLights is returned when the config lists more lights than the shader supports.
var ErrTooManyLights = errors.New("too many lights")

// Assets are the meshes the scene is built from.
type Assets struct {
	Meshes *mesh.Store
	Ground *mesh.Mesh
	Skybox *mesh.Mesh
	Wheel  *mesh.Mesh
}

// LoadAssets parses every model the showroom needs. Any failure is returned;
// there is no partial asset set.
func LoadAssets(cfg *config.Config) (*Assets, error) {
	store := mesh.NewStore()
	a := &Assets{Meshes: store}

	a.Ground = mesh.Plane("ground", cfg.Scene.GroundHalfExtent)
	if err := store.Add(a.Ground); err != nil {
		return nil, err
	}

	var err error
	if a.Skybox, err = store.Load("skybox", cfg.AssetPath(cfg.Assets.Skybox)); err != nil {
		return nil, fmt.Errorf("skybox: %w", err)
	}
	if a.Wheel, err = store.Load("wheel", cfg.AssetPath(cfg.Assets.Wheel)); err != nil {
		return nil, fmt.Errorf("wheel: %w", err)
	}
	if err := store.LoadVehicles(cfg.Assets.Dir, cfg.Assets.VehiclePattern, cfg.Scene.VehicleCount); err != nil {
		return nil, err
	}
	return a, nil
}

// NewScene builds the slot table and lights from loaded assets.
func NewScene(cfg *config.Config, a *Assets) (*scene.Scene, error) {
	sc, err := scene.New(a.Ground, a.Skybox, a.Wheel)
	if err != nil {
		return nil, err
	}
	for i, l := range cfg.Scene.Lights {
		light := lighting.NewPointLight(vec3(l.Position), vec3(l.Color), l.Radius, l.Brightness)
		if !sc.AddLight(light) {
			return nil, fmt.Errorf("%w: light %d exceeds %d", ErrTooManyLights, i, lighting.MaxPointLights)
		}
	}
	return sc, nil
}

// NewRig builds the camera rig from the configured pose.
func NewRig(cfg *config.Config) *camera.Rig {
	c := cfg.Scene.Camera
	rig := camera.NewRig(vec3(c.Eye), vec3(c.Target), vec3(c.Up), c.FOV)
	rig.SetViewport(cfg.Graphics.Width, cfg.Graphics.Height)
	return rig
}

// NewStage builds the transform stage from the configured skybox placement.
func NewStage(cfg *config.Config) *transform.Stage {
	return transform.NewStage(cfg.Scene.SkyboxScale, cfg.Scene.SkyboxDrop)
}

// logDiagnostics reports mesh and triangle counts once at startup.
func logDiagnostics(a *Assets, sc *scene.Scene) {
	st := a.Meshes.Stats()
	logger.Info("assets loaded",
		zap.Int("meshes", st.Meshes),
		zap.Int("vehicles", st.Vehicles),
		zap.Int("slots", scene.NumSlots),
		zap.Int("largest_mesh_triangles", st.LargestTriangles),
		zap.Int("stored_triangles", st.TotalTriangles),
		zap.Int("scene_triangles", sceneTriangles(sc, st)),
		zap.Int("lights", len(sc.Lights())),
	)
}

// sceneTriangles is the largest per-frame dispatch: every slot as placed, with
// the body holding the largest vehicle of the pool.
func sceneTriangles(sc *scene.Scene, st mesh.Stats) int {
	body := sc.Instance(scene.SlotBody).Mesh.TriangleCount()
	return sc.TotalTriangles() - body + st.LargestVehicle
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
