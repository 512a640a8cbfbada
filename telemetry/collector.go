package telemetry

import "github.com/rill-engine/rill/fluid"

// Collector accumulates per-step fluid samples and closes a WindowStats at
// the end of each window.
type Collector struct {
	windowDurationSec   float64
	windowDurationSteps int64
	dt                  float32

	windowStartStep int64

	// Event counters for the current window
	boundaryContacts int
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per step (used for step-to-time conversion).
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	stepsPerWindow := int64(windowDurationSec / float64(dt))
	if stepsPerWindow < 1 {
		stepsPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationSteps: stepsPerWindow,
		dt:                  dt,
	}
}

// RecordBoundaryContacts adds boundary collision events for the current
// window.
func (c *Collector) RecordBoundaryContacts(n int) {
	c.boundaryContacts += n
}

// WindowDone reports whether the window ending at step is complete.
func (c *Collector) WindowDone(step int64) bool {
	return step-c.windowStartStep >= c.windowDurationSteps
}

// CountBoundaryContacts counts particles sitting exactly on a boundary
// face. Positions are snapped onto faces by the collision clamp, so an
// exact comparison is the right test.
func CountBoundaryContacts(positions []fluid.Vec3, boundaryMin, boundaryMax fluid.Vec3) int {
	n := 0
	for _, p := range positions {
		if p.X == boundaryMin.X || p.X == boundaryMax.X ||
			p.Y == boundaryMin.Y || p.Y == boundaryMax.Y ||
			p.Z == boundaryMin.Z || p.Z == boundaryMax.Z {
			n++
		}
	}
	return n
}

// CloseWindow samples the fluid state, produces the finished window, and
// starts the next one.
func (c *Collector) CloseWindow(step int64, velocities []fluid.Vec3, densities []float32) WindowStats {
	stats := WindowStats{
		WindowStartStep:  c.windowStartStep,
		WindowEndStep:    step,
		SimTimeSec:       float64(step) * float64(c.dt),
		BoundaryContacts: c.boundaryContacts,
	}
	stats.SampleFluid(velocities, densities)

	c.windowStartStep = step
	c.boundaryContacts = 0

	return stats
}
