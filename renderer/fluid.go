// Package renderer draws the simulation state with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/rill-engine/rill/fluid"
)

// FluidRenderer renders fluid particles as density-shaded spheres
// inside a wireframe boundary box.
type FluidRenderer struct {
	particleRadius float32
	restDensity    float32

	boundsMin, boundsMax fluid.Vec3
}

// NewFluidRenderer creates a renderer for a simulation with the given
// parameters. The particle radius is a fraction of the smoothing
// radius so neighbouring particles stay visually distinct.
func NewFluidRenderer(p fluid.Params) *FluidRenderer {
	return &FluidRenderer{
		particleRadius: p.SmoothingRadius * 0.25,
		restDensity:    p.RestDensity,
		boundsMin:      p.BoundaryMin,
		boundsMax:      p.BoundaryMax,
	}
}

// Draw renders all particles. Must be called inside BeginMode3D.
// Densities index-match positions; both come from the simulation
// snapshot accessors.
func (r *FluidRenderer) Draw(positions []fluid.Vec3, densities []float32) {
	for i, pos := range positions {
		color := r.densityColor(densities[i])
		rl.DrawSphereEx(rl.Vector3{X: pos.X, Y: pos.Y, Z: pos.Z}, r.particleRadius, 6, 6, color)
	}
}

// DrawBounds renders the simulation boundary as a wire box.
func (r *FluidRenderer) DrawBounds() {
	min := r.boundsMin
	max := r.boundsMax
	center := rl.Vector3{
		X: (min.X + max.X) * 0.5,
		Y: (min.Y + max.Y) * 0.5,
		Z: (min.Z + max.Z) * 0.5,
	}
	size := rl.Vector3{
		X: max.X - min.X,
		Y: max.Y - min.Y,
		Z: max.Z - min.Z,
	}
	rl.DrawCubeWiresV(center, size, rl.Color{R: 120, G: 130, B: 150, A: 255})
}

// densityColor maps density relative to rest density onto a blue
// gradient. Compressed fluid reads brighter and more opaque.
func (r *FluidRenderer) densityColor(density float32) rl.Color {
	ratio := density / r.restDensity
	if ratio < 0.2 {
		ratio = 0.2
	}
	if ratio > 1.5 {
		ratio = 1.5
	}
	t := (ratio - 0.2) / 1.3

	return rl.Color{
		R: uint8(40 + t*80),
		G: uint8(90 + t*110),
		B: 255,
		A: uint8(120 + t*135),
	}
}
