package fluid

import (
	"fmt"
	"math/rand"
)

// Simulation owns a particle store and advances it one Step at a time.
//
// A step runs three passes in strict order: density/pressure, then forces,
// then integration with boundary collision, followed by a force buffer
// reset. Each pass is data-parallel over particle indices; passes are
// separated by a full barrier because pressure depends on density and force
// depends on pressure.
//
// Step is not safe for concurrent use; the caller owns frame pacing and
// must serialize calls. Readers such as a renderer take snapshot copies
// between steps via CopyPositions and friends.
type Simulation struct {
	params Params
	store  *particleStore
	kernel kernel
	grid   *uniformGrid
	pool   *workerPool

	// pressureConst is PressureStiffness * RestDensity, the equation-of-state
	// gain applied to the relative density deviation.
	pressureConst float32

	timer PhaseTimer

	steps int64
}

// PhaseTimer receives the name of each pass as a step enters it. Used by
// callers that collect per-pass timings.
type PhaseTimer interface {
	StartPhase(name string)
}

// Pass names reported to the PhaseTimer.
const (
	PhaseDensityPressure = "density_pressure"
	PhaseForces          = "forces"
	PhaseIntegrate       = "integrate"
)

// SetPhaseTimer installs a timer notified at the start of each pass. Pass
// nil to disable. Must not be called while Step is running.
func (s *Simulation) SetPhaseTimer(t PhaseTimer) {
	s.timer = t
}

// New constructs a simulation or fails with a configuration error. It never
// returns a partially initialized simulation.
func New(params Params) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(params.Seed))

	s := &Simulation{
		params:        params,
		store:         newParticleStore(params.ParticleCount, params.SeedMin, params.SeedMax, params.RestDensity, rng),
		kernel:        newKernel(params.SmoothingRadius),
		pressureConst: params.PressureStiffness * params.RestDensity,
	}
	s.pool = newWorkerPool(s, params.Workers)

	if params.UseGrid {
		// The seed volume is validated inside the boundary box and the
		// integrator clamps to it, so the box covers every position the
		// grid will ever index.
		s.grid = newUniformGrid(params.BoundaryMin, params.BoundaryMax, params.SmoothingRadius)
	}

	return s, nil
}

// Params returns the configuration the simulation was built with.
func (s *Simulation) Params() Params {
	return s.params
}

// Count returns the fixed particle count.
func (s *Simulation) Count() int {
	return s.store.count
}

// Steps returns how many steps have completed.
func (s *Simulation) Steps() int64 {
	return s.steps
}

// Step advances the simulation by dt seconds. A non-finite or negative dt
// is a caller error and leaves the particle store untouched.
func (s *Simulation) Step(dt float32) error {
	if !isFinite32(dt) || dt < 0 {
		return fmt.Errorf("fluid: step dt must be finite and non-negative, got %v", dt)
	}

	if s.grid != nil {
		s.grid.rebuild(s.store.positions)
	}

	s.startPhase(PhaseDensityPressure)
	s.pool.runPass(passDensityPressure, dt)
	s.startPhase(PhaseForces)
	s.pool.runPass(passForces, dt)
	s.startPhase(PhaseIntegrate)
	s.pool.runPass(passIntegrate, dt)
	s.store.clearForces()

	s.steps++
	return nil
}

func (s *Simulation) startPhase(name string) {
	if s.timer != nil {
		s.timer.StartPhase(name)
	}
}

// Close releases the worker pool. The simulation must not be stepped after
// closing.
func (s *Simulation) Close() {
	s.pool.stop()
}

// neighborsInto appends every particle j ≠ i within the smoothing radius of
// particle i to dst and returns the updated slice. The grid and the brute
// scan enumerate exactly the same neighbor set.
func (s *Simulation) neighborsInto(dst []Neighbor, i int) []Neighbor {
	origin := s.store.positions[i]

	if s.grid != nil {
		return s.grid.queryInto(dst, origin, s.kernel.hSq, i, s.store.positions)
	}

	for j, pj := range s.store.positions {
		if j == i {
			continue
		}
		d := origin.Sub(pj)
		distSq := d.LenSq()
		if distSq < s.kernel.hSq {
			dst = append(dst, Neighbor{Index: j, Delta: d, DistSq: distSq})
		}
	}
	return dst
}

// CopyPositions copies all particle positions into dst, growing it if
// needed, and returns the result. The store itself is never exposed.
func (s *Simulation) CopyPositions(dst []Vec3) []Vec3 {
	return append(dst[:0], s.store.positions...)
}

// CopyVelocities copies all particle velocities into dst.
func (s *Simulation) CopyVelocities(dst []Vec3) []Vec3 {
	return append(dst[:0], s.store.velocities...)
}

// CopyDensities copies all particle densities into dst.
func (s *Simulation) CopyDensities(dst []float32) []float32 {
	return append(dst[:0], s.store.densities...)
}
