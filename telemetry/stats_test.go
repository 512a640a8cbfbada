package telemetry

import (
	"math"
	"testing"

	"github.com/rill-engine/rill/fluid"
)

func TestSampleFluid(t *testing.T) {
	velocities := []fluid.Vec3{
		{X: 1, Y: 0, Z: 0},
		{X: -1, Y: 0, Z: 0},
		{X: 0, Y: 2, Z: 0},
	}
	densities := []float32{100, 200, 300}

	var w WindowStats
	w.SampleFluid(velocities, densities)

	if w.ParticleCount != 3 {
		t.Errorf("particles = %d, want 3", w.ParticleCount)
	}

	// KE = 0.5(1 + 1 + 4) = 3
	if math.Abs(w.KineticEnergy-3) > 1e-9 {
		t.Errorf("kinetic energy = %v, want 3", w.KineticEnergy)
	}

	// Opposing x velocities cancel; only y momentum remains.
	if math.Abs(w.MomentumX) > 1e-9 || math.Abs(w.MomentumY-2) > 1e-9 {
		t.Errorf("momentum = (%v,%v,%v), want (0,2,0)", w.MomentumX, w.MomentumY, w.MomentumZ)
	}
	if math.Abs(w.MomentumMagnitude-2) > 1e-9 {
		t.Errorf("momentum magnitude = %v, want 2", w.MomentumMagnitude)
	}

	if math.Abs(w.MaxSpeed-2) > 1e-9 {
		t.Errorf("max speed = %v, want 2", w.MaxSpeed)
	}

	if math.Abs(w.DensityMean-200) > 1e-9 {
		t.Errorf("density mean = %v, want 200", w.DensityMean)
	}
	if w.DensityMin != 100 || w.DensityMax != 300 {
		t.Errorf("density range = [%v,%v], want [100,300]", w.DensityMin, w.DensityMax)
	}
}

func TestSampleFluidEmpty(t *testing.T) {
	var w WindowStats
	w.SampleFluid(nil, nil)

	if w.ParticleCount != 0 || w.KineticEnergy != 0 || w.DensityMean != 0 {
		t.Errorf("empty sample produced non-zero stats: %+v", w)
	}
}

func TestCollectorWindowing(t *testing.T) {
	c := NewCollector(1.0, 0.1) // 10 steps per window

	if c.WindowDone(5) {
		t.Error("window done at step 5, want 10")
	}
	if !c.WindowDone(10) {
		t.Error("window not done at step 10")
	}

	c.RecordBoundaryContacts(3)
	c.RecordBoundaryContacts(2)

	stats := c.CloseWindow(10, []fluid.Vec3{{X: 1}}, []float32{100})
	if stats.WindowStartStep != 0 || stats.WindowEndStep != 10 {
		t.Errorf("window = [%d,%d], want [0,10]", stats.WindowStartStep, stats.WindowEndStep)
	}
	if stats.BoundaryContacts != 5 {
		t.Errorf("boundary contacts = %d, want 5", stats.BoundaryContacts)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-6 {
		t.Errorf("sim time = %v, want 1.0", stats.SimTimeSec)
	}

	// Counters reset for the next window.
	next := c.CloseWindow(20, nil, nil)
	if next.BoundaryContacts != 0 {
		t.Errorf("next window contacts = %d, want 0", next.BoundaryContacts)
	}
	if next.WindowStartStep != 10 {
		t.Errorf("next window start = %d, want 10", next.WindowStartStep)
	}
}

func TestCountBoundaryContacts(t *testing.T) {
	bmin := fluid.Vec3{X: -1, Y: -1, Z: -1}
	bmax := fluid.Vec3{X: 1, Y: 1, Z: 1}

	positions := []fluid.Vec3{
		{X: 0, Y: 0, Z: 0},    // interior
		{X: -1, Y: 0, Z: 0},   // on min x face
		{X: 0.5, Y: 1, Z: 0},  // on max y face
		{X: 0.9, Y: 0.9, Z: 0}, // near but not on a face
	}

	if got := CountBoundaryContacts(positions, bmin, bmax); got != 2 {
		t.Errorf("contacts = %d, want 2", got)
	}
}
