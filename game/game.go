// Package game ties the fluid simulation, scene graph, fracture system, and
// renderers together into a runnable demo.
package game

import (
	"fmt"
	"math/rand"

	"github.com/rill-engine/rill/camera"
	"github.com/rill-engine/rill/components"
	"github.com/rill-engine/rill/config"
	"github.com/rill-engine/rill/fluid"
	"github.com/rill-engine/rill/fracture"
	"github.com/rill-engine/rill/renderer"
	"github.com/rill-engine/rill/scene"
	"github.com/rill-engine/rill/telemetry"
	"github.com/rill-engine/rill/ui"
)

// Options configures a Game beyond what the config file provides.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// Config overrides the global configuration when non-nil. Used by the
	// calibration tool to run evaluations with different parameters in
	// parallel.
	Config *config.Config

	// StatsCallback receives each closed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete engine state.
type Game struct {
	cfg *config.Config

	sim   *fluid.Simulation
	scene *scene.Scene
	cube  *fracture.Cube

	cam           *camera.Orbit
	fluidRenderer *renderer.FluidRenderer
	sceneRenderer *renderer.SceneRenderer
	hud           *ui.Renderer

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	// Snapshot buffers reused across steps
	positions  []fluid.Vec3
	velocities []fluid.Vec3
	densities  []float32

	// Most recently closed stats window, shown on the HUD
	lastStats *telemetry.WindowStats

	tick           int64
	paused         bool
	stepsPerUpdate int
	logStats       bool

	statsCallback func(telemetry.WindowStats)
}

// NewGame builds a game from the global config and the given options.
// Graphical resources are only touched in Draw, so headless callers never
// need a window.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	params := fluidParams(cfg, opts.Seed)
	sim, err := fluid.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating fluid simulation: %w", err)
	}

	gravity := params.Gravity
	groundY := float32(cfg.Scene.GroundY)
	sc := scene.New(gravity, groundY)

	rng := rand.New(rand.NewSource(opts.Seed))
	fracSystem := fracture.NewSystem(rng, float32(cfg.Fracture.MaterialStrength), cfg.Fracture.AuxiliarySites)

	cubePos := vec3(cfg.Scene.CubePosition)
	cubeSize := vec3(cfg.Scene.CubeSize)
	cube := fracture.NewCube(fracSystem, cubePos, cubeSize, float32(cfg.Fracture.CubeHealth))
	cube.ImpactJitter = float32(cfg.Fracture.ImpactJitter)

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = cfg.Physics.StepsPerUpdate
	}

	g := &Game{
		cfg:            cfg,
		sim:            sim,
		scene:          sc,
		cube:           cube,
		collector:      telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		stepsPerUpdate: stepsPerUpdate,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
	}
	sim.SetPhaseTimer(g.perfCollector)

	g.spawnSceneEntities()

	if !opts.Headless {
		g.cam = g.defaultCamera()
		g.fluidRenderer = renderer.NewFluidRenderer(params)
		g.sceneRenderer = renderer.NewSceneRenderer(groundY)
		g.hud = ui.NewRenderer()
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		g.outputManager = om
	}

	return g, nil
}

// spawnSceneEntities creates the initial scene content: the destructible
// cube entity. Fragments join the scene when the cube breaks.
func (g *Game) spawnSceneEntities() {
	cubeTransform := components.NewTransform()
	cubeTransform.Position = g.cube.Position
	cubeTransform.Scale = g.cube.Size
	g.scene.Spawn("cube",
		cubeTransform,
		components.Renderable{Visible: true, Shape: components.ShapeCube, R: 180, G: 140, B: 90},
		components.RigidBody{Mass: 1, Static: true},
	)
}

// defaultCamera places the orbit camera at the configured viewpoint,
// aimed at the center of the simulation volume.
func (g *Game) defaultCamera() *camera.Orbit {
	params := g.sim.Params()
	center := params.BoundaryMin.Add(params.BoundaryMax).Scale(0.5)
	eye := vec3(g.cfg.Scene.CameraPosition)
	return camera.LookFrom(center.X, center.Y, center.Z, eye.X, eye.Y, eye.Z)
}

// fluidParams maps the fluid section of the config onto simulation
// parameters.
func fluidParams(cfg *config.Config, seed int64) fluid.Params {
	f := cfg.Fluid
	return fluid.Params{
		ParticleCount:     f.ParticleCount,
		SmoothingRadius:   float32(f.SmoothingRadius),
		RestDensity:       float32(f.RestDensity),
		Viscosity:         float32(f.Viscosity),
		PressureStiffness: float32(f.PressureStiffness),
		Gravity:           vec3(f.Gravity),
		BoundaryMin:       vec3(f.BoundaryMin),
		BoundaryMax:       vec3(f.BoundaryMax),
		BoundaryDamping:   float32(f.BoundaryDamping),
		SeedMin:           vec3(f.SeedMin),
		SeedMax:           vec3(f.SeedMax),
		Seed:              seed,
		Workers:           f.Workers,
		UseGrid:           f.UseGrid,
	}
}

func vec3(v [3]float64) fluid.Vec3 {
	return fluid.Vec3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}
}

// Tick returns the number of completed simulation steps.
func (g *Game) Tick() int64 {
	return g.tick
}

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// SetStatsCallback registers a function called with each closed stats
// window. Used by the calibration tool to score headless runs.
func (g *Game) SetStatsCallback(cb func(telemetry.WindowStats)) {
	g.statsCallback = cb
}

// Unload releases simulation workers and flushes output files.
func (g *Game) Unload() {
	g.sim.Close()
	if g.outputManager != nil {
		g.outputManager.Close()
	}
}
