package showroom

import "time"

// Tick is the scheduler's decision for one frame.
type Tick struct {
	// Time is the clock reading the frame animates with.
	Time time.Duration

	// Rotated is set on a rotation boundary; Vehicle is then the new index.
	Rotated bool
	Vehicle int

	// FPSUpdated is set on every boundary, the first frame included, so the
	// label is shown from the start.
	FPSUpdated bool
	FPS        int
}

// Scheduler does FPS accounting and vehicle rotation from one clock sample
// per frame. It holds no timers; the caller passes the time.
type Scheduler struct {
	interval time.Duration
	pool     int

	timebase time.Duration
	frames   int
	fps      int
	vehicle  int
}

// NewScheduler creates a scheduler rotating through pool vehicles. No vehicle
// is selected until the first Tick.
func NewScheduler(pool int, interval time.Duration) *Scheduler {
	return &Scheduler{
		interval: interval,
		pool:     pool,
		vehicle:  -1,
	}
}

// Tick advances the state machine for a frame sampled at now.
//
// A boundary happens on the first frame and whenever more than one interval
// has passed since the last reset. FPS is frames divided by whole elapsed
// seconds and keeps its previous value (0 at start) while no full second has
// passed; it is still reported on that boundary.
func (s *Scheduler) Tick(now time.Duration) Tick {
	t := Tick{Time: now}

	elapsed := now - s.timebase
	if elapsed > s.interval || s.vehicle < 0 {
		if whole := int(elapsed / time.Second); whole > 0 {
			s.fps = s.frames / whole
			s.timebase = now
			s.frames = 0
		}
		s.vehicle = (s.vehicle + 1) % s.pool
		t.Rotated = true
		t.FPSUpdated = true
	}
	s.frames++

	t.Vehicle = s.vehicle
	t.FPS = s.fps
	return t
}

// Vehicle returns the current vehicle index, or -1 before the first Tick.
func (s *Scheduler) Vehicle() int {
	return s.vehicle
}

// FPS returns the last computed frames per second (0 until the first full second).
func (s *Scheduler) FPS() int {
	return s.fps
}
