package showroom

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/mesh"
	"github.com/Faultbox/showroom/internal/engine/picking"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/transform"
	"github.com/Faultbox/showroom/internal/logger"
)

// Controller advances the host-side frame state: scheduler, body swap,
// instance matrices and camera rays. It makes no GL calls.
type Controller struct {
	sched  *Scheduler
	scene  *scene.Scene
	meshes *mesh.Store
	stage  *transform.Stage
	rig    *camera.Rig
}

// NewController rotates through every vehicle in meshes.
func NewController(sc *scene.Scene, meshes *mesh.Store, stage *transform.Stage, rig *camera.Rig, interval time.Duration) (*Controller, error) {
	if meshes.VehicleCount() == 0 {
		return nil, fmt.Errorf("no vehicles loaded")
	}
	return &Controller{
		sched:  NewScheduler(meshes.VehicleCount(), interval),
		scene:  sc,
		meshes: meshes,
		stage:  stage,
		rig:    rig,
	}, nil
}

// Advance runs the host part of a frame sampled at now. On a rotation boundary
// the body slot is swapped, which marks scene geometry for re-upload.
func (c *Controller) Advance(now time.Duration) (Tick, camera.Rays, error) {
	tick := c.sched.Tick(now)
	if tick.Rotated {
		v := c.meshes.Vehicle(tick.Vehicle)
		if err := c.scene.SwapMesh(scene.SlotBody, v); err != nil {
			return tick, camera.Rays{}, err
		}
		logger.Debug("vehicle rotated",
			zap.Int("index", tick.Vehicle),
			zap.String("mesh", v.Name),
			zap.Int("triangles", v.TriangleCount()))
	}

	c.stage.Update(c.scene, float32(tick.Time.Seconds()), c.rig.Eye)
	return tick, c.rig.Rays(), nil
}

// SetViewport forwards a resize to the camera rig.
func (c *Controller) SetViewport(width, height int) {
	c.rig.SetViewport(width, height)
}

// Probe reports which slot is visible at normalized screen coordinates, using
// host-side copies of the transform pass and the primary-ray intersection.
func (c *Controller) Probe(x, y float32) (scene.Slot, bool) {
	src := c.scene.Pack()
	world := make([]mesh.Triangle, len(src))
	ranges := c.scene.Ranges()
	transform.Apply(world, src, ranges, c.scene.Matrices())

	hit, ok := picking.Cast(picking.ScreenRay(c.rig.Rays(), x, y), world)
	if !ok {
		return 0, false
	}
	return scene.SlotOf(ranges, uint32(hit.Index))
}
