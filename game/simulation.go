package game

import (
	"log/slog"

	"github.com/rill-engine/rill/telemetry"
)

// Update runs input handling and simulation steps for one frame.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
	g.perfCollector.RecordFrame()
}

// UpdateHeadless runs simulation steps without any input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// step advances the fluid and the scene by one fixed timestep and feeds
// the telemetry collectors.
func (g *Game) step() {
	dt := g.cfg.Derived.DT32

	g.perfCollector.StartStep()

	if err := g.sim.Step(dt); err != nil {
		slog.Error("fluid step failed", "error", err, "tick", g.tick)
		g.paused = true
		g.perfCollector.EndStep()
		return
	}

	g.perfCollector.StartPhase(telemetry.PhaseScene)
	g.scene.Update(dt)

	g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	g.snapshot()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordBoundaryContacts(telemetry.CountBoundaryContacts(
		g.positions, g.sim.Params().BoundaryMin, g.sim.Params().BoundaryMax))
	g.tick++
	g.flushTelemetry()

	g.perfCollector.EndStep()
}

// snapshot refreshes the reusable state buffers from the simulation.
// Renderers and telemetry read these copies, never the live store.
func (g *Game) snapshot() {
	g.positions = g.sim.CopyPositions(g.positions)
	g.velocities = g.sim.CopyVelocities(g.velocities)
	g.densities = g.sim.CopyDensities(g.densities)
}
