// Package telemetry collects fluid simulation statistics and performance
// timings, aggregates them over windows, and writes structured output.
package telemetry

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/rill-engine/rill/fluid"
)

// WindowStats holds aggregated fluid statistics for a time window.
type WindowStats struct {
	WindowStartStep int64   `csv:"-"`
	WindowEndStep   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	ParticleCount int `csv:"particles"`

	// Motion (sampled at window end)
	KineticEnergy     float64 `csv:"kinetic_energy"`
	MomentumX         float64 `csv:"momentum_x"`
	MomentumY         float64 `csv:"momentum_y"`
	MomentumZ         float64 `csv:"momentum_z"`
	MomentumMagnitude float64 `csv:"momentum_mag"`
	MaxSpeed          float64 `csv:"max_speed"`

	// Density field (sampled at window end)
	DensityMean float64 `csv:"density_mean"`
	DensityStd  float64 `csv:"density_std"`
	DensityMin  float64 `csv:"density_min"`
	DensityMax  float64 `csv:"density_max"`

	// Boundary contacts accumulated over the window
	BoundaryContacts int `csv:"boundary_contacts"`
}

// SampleFluid fills the motion and density fields from a simulation
// snapshot. Velocities and densities must come from the same step.
func (w *WindowStats) SampleFluid(velocities []fluid.Vec3, densities []float32) {
	w.ParticleCount = len(velocities)

	var kinetic float64
	var px, py, pz float64
	var maxSpeedSq float32
	for _, v := range velocities {
		sq := v.LenSq()
		kinetic += 0.5 * float64(sq)
		px += float64(v.X)
		py += float64(v.Y)
		pz += float64(v.Z)
		if sq > maxSpeedSq {
			maxSpeedSq = sq
		}
	}
	w.KineticEnergy = kinetic
	w.MomentumX, w.MomentumY, w.MomentumZ = px, py, pz
	w.MomentumMagnitude = math.Sqrt(px*px + py*py + pz*pz)
	w.MaxSpeed = math.Sqrt(float64(maxSpeedSq))

	if len(densities) == 0 {
		return
	}
	d64 := make([]float64, len(densities))
	minD, maxD := densities[0], densities[0]
	for i, d := range densities {
		d64[i] = float64(d)
		if d < minD {
			minD = d
		}
		if d > maxD {
			maxD = d
		}
	}
	w.DensityMean, w.DensityStd = stat.MeanStdDev(d64, nil)
	w.DensityMin = float64(minD)
	w.DensityMax = float64(maxD)
}

// LogStats emits the window via slog.
func (w WindowStats) LogStats() {
	slog.Info("fluid_stats",
		"step", w.WindowEndStep,
		"sim_time", w.SimTimeSec,
		"particles", w.ParticleCount,
		"kinetic_energy", w.KineticEnergy,
		"momentum_mag", w.MomentumMagnitude,
		"max_speed", w.MaxSpeed,
		"density_mean", w.DensityMean,
		"density_std", w.DensityStd,
		"density_min", w.DensityMin,
		"density_max", w.DensityMax,
		"boundary_contacts", w.BoundaryContacts,
	)
}
