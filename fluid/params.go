// Package fluid implements a smoothed particle hydrodynamics (SPH) fluid
// simulation: a structure-of-arrays particle store advanced by three passes
// per step (density/pressure, forces, integration with boundary collision).
package fluid

import "fmt"

// Params configures a Simulation. All values are fixed for the lifetime of
// the simulation instance.
type Params struct {
	// ParticleCount is the fixed number of particles.
	ParticleCount int

	// SmoothingRadius is the neighbor cutoff distance h.
	SmoothingRadius float32

	// RestDensity is the reference density the equation of state targets.
	RestDensity float32

	// Viscosity damps velocity differences between neighboring particles.
	Viscosity float32

	// PressureStiffness is the equation-of-state gain.
	PressureStiffness float32

	// Gravity is a constant external acceleration applied to every particle.
	Gravity Vec3

	// BoundaryMin and BoundaryMax define the axis-aligned containment box.
	BoundaryMin Vec3
	BoundaryMax Vec3

	// BoundaryDamping multiplies the velocity component on the clamped axis
	// when a particle crosses a boundary face. Typically negative for a
	// lossy bounce. Must be in [-1, 0].
	BoundaryDamping float32

	// SeedMin and SeedMax define the volume initial positions are drawn
	// from. Must lie inside the boundary box so the first step never has
	// to clamp seed positions.
	SeedMin Vec3
	SeedMax Vec3

	// Seed initializes the RNG used for initial particle placement.
	Seed int64

	// Workers is the number of worker goroutines for the parallel passes.
	// Zero means GOMAXPROCS.
	Workers int

	// UseGrid selects the uniform spatial grid for neighbor search.
	// When false every pass falls back to the O(n²) all-pairs scan; both
	// strategies enumerate exactly the same neighbor set.
	UseGrid bool
}

// DefaultParams returns the stock dam-break configuration.
func DefaultParams() Params {
	return Params{
		ParticleCount:     5000,
		SmoothingRadius:   0.1,
		RestDensity:       1000.0,
		Viscosity:         0.1,
		PressureStiffness: 3.0,
		Gravity:           Vec3{0, -9.81, 0},
		BoundaryMin:       Vec3{-3, -1, -3},
		BoundaryMax:       Vec3{3, 5, 3},
		BoundaryDamping:   -0.5,
		SeedMin:           Vec3{-1, -1, -1},
		SeedMax:           Vec3{1, 1, 1},
		Seed:              42,
		UseGrid:           true,
	}
}

// Validate reports the first configuration error, or nil.
func (p Params) Validate() error {
	if p.ParticleCount <= 0 {
		return fmt.Errorf("fluid: particle count must be positive, got %d", p.ParticleCount)
	}
	if !isFinite32(p.SmoothingRadius) || p.SmoothingRadius <= 0 {
		return fmt.Errorf("fluid: smoothing radius must be finite and positive, got %v", p.SmoothingRadius)
	}
	if !isFinite32(p.RestDensity) || p.RestDensity <= 0 {
		return fmt.Errorf("fluid: rest density must be finite and positive, got %v", p.RestDensity)
	}
	if !isFinite32(p.Viscosity) || p.Viscosity < 0 {
		return fmt.Errorf("fluid: viscosity must be finite and non-negative, got %v", p.Viscosity)
	}
	if !isFinite32(p.PressureStiffness) || p.PressureStiffness <= 0 {
		return fmt.Errorf("fluid: pressure stiffness must be finite and positive, got %v", p.PressureStiffness)
	}
	if !p.Gravity.IsFinite() {
		return fmt.Errorf("fluid: gravity must be finite, got %v", p.Gravity)
	}
	if !p.BoundaryMin.IsFinite() || !p.BoundaryMax.IsFinite() {
		return fmt.Errorf("fluid: boundary box must be finite")
	}
	if p.BoundaryMin.X >= p.BoundaryMax.X || p.BoundaryMin.Y >= p.BoundaryMax.Y || p.BoundaryMin.Z >= p.BoundaryMax.Z {
		return fmt.Errorf("fluid: boundary min %v must be below boundary max %v on every axis", p.BoundaryMin, p.BoundaryMax)
	}
	if !isFinite32(p.BoundaryDamping) || p.BoundaryDamping < -1 || p.BoundaryDamping > 0 {
		return fmt.Errorf("fluid: boundary damping must be in [-1, 0], got %v", p.BoundaryDamping)
	}
	if !p.SeedMin.IsFinite() || !p.SeedMax.IsFinite() {
		return fmt.Errorf("fluid: seed volume must be finite")
	}
	if p.SeedMin.X > p.SeedMax.X || p.SeedMin.Y > p.SeedMax.Y || p.SeedMin.Z > p.SeedMax.Z {
		return fmt.Errorf("fluid: seed min %v must not exceed seed max %v on any axis", p.SeedMin, p.SeedMax)
	}
	if p.SeedMin.X < p.BoundaryMin.X || p.SeedMin.Y < p.BoundaryMin.Y || p.SeedMin.Z < p.BoundaryMin.Z ||
		p.SeedMax.X > p.BoundaryMax.X || p.SeedMax.Y > p.BoundaryMax.Y || p.SeedMax.Z > p.BoundaryMax.Z {
		return fmt.Errorf("fluid: seed volume [%v, %v] must lie inside the boundary box", p.SeedMin, p.SeedMax)
	}
	if p.Workers < 0 {
		return fmt.Errorf("fluid: workers must be non-negative, got %d", p.Workers)
	}
	return nil
}
