// Fluid preview tool - interactive parameter exploration with sliders.
//
// Runs a small live simulation so parameter changes show their effect in
// seconds rather than at full scale.
//
// Usage: go run ./cmd/fluidpreview
package main

import (
	"fmt"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/rill-engine/rill/camera"
	"github.com/rill-engine/rill/fluid"
	"github.com/rill-engine/rill/renderer"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	viewWidth    = 760
	panelWidth   = windowWidth - viewWidth - 30

	previewParticles = 600
	previewDT        = 1.0 / 60.0
)

// previewParams holds the slider-controlled subset of the simulation
// parameters.
type previewParams struct {
	Stiffness float32
	Viscosity float32
	Damping   float32
	GravityY  float32
}

func defaultPreviewParams() previewParams {
	return previewParams{
		Stiffness: 3.0,
		Viscosity: 0.1,
		Damping:   -0.5,
		GravityY:  -9.81,
	}
}

// buildSim creates a small simulation with the given slider values.
func buildSim(p previewParams, seed int64) (*fluid.Simulation, error) {
	params := fluid.DefaultParams()
	params.ParticleCount = previewParticles
	params.PressureStiffness = p.Stiffness
	params.Viscosity = p.Viscosity
	params.BoundaryDamping = p.Damping
	params.Gravity = fluid.Vec3{Y: p.GravityY}
	params.Seed = seed
	return fluid.New(params)
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Fluid Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultPreviewParams()
	seed := int64(42)

	sim, err := buildSim(params, seed)
	if err != nil {
		log.Fatalf("failed to create simulation: %v", err)
	}
	defer func() { sim.Close() }()

	simParams := sim.Params()
	center := simParams.BoundaryMin.Add(simParams.BoundaryMax).Scale(0.5)
	extent := simParams.BoundaryMax.Sub(simParams.BoundaryMin).Len()
	cam := camera.New(center.X, center.Y, center.Z, extent*1.2)
	fluidRenderer := renderer.NewFluidRenderer(simParams)

	var positions []fluid.Vec3
	var densities []float32

	paused := false
	needsRebuild := false

	for !rl.WindowShouldClose() {
		// Camera controls
		if rl.IsMouseButtonDown(rl.MouseRightButton) {
			delta := rl.GetMouseDelta()
			cam.Rotate(delta.X*0.005, -delta.Y*0.005)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			cam.Dolly(1.0 - wheel*0.1)
		}
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}

		// Rebuild with new parameters, reseeding the particles
		if needsRebuild {
			sim.Close()
			sim, err = buildSim(params, seed)
			if err != nil {
				log.Fatalf("failed to rebuild simulation: %v", err)
			}
			fluidRenderer = renderer.NewFluidRenderer(sim.Params())
			needsRebuild = false
		}

		if !paused {
			if err := sim.Step(previewDT); err != nil {
				log.Fatalf("step failed: %v", err)
			}
		}
		positions = sim.CopyPositions(positions)
		densities = sim.CopyDensities(densities)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 18, G: 20, B: 26, A: 255})

		// 3D view
		x, y, z := cam.Position()
		camera3D := rl.Camera3D{
			Position:   rl.Vector3{X: x, Y: y, Z: z},
			Target:     rl.Vector3{X: cam.TargetX, Y: cam.TargetY, Z: cam.TargetZ},
			Up:         rl.Vector3{Y: 1},
			Fovy:       45,
			Projection: rl.CameraPerspective,
		}
		rl.BeginMode3D(camera3D)
		fluidRenderer.DrawBounds()
		fluidRenderer.Draw(positions, densities)
		rl.EndMode3D()

		rl.DrawFPS(10, 10)
		rl.DrawText(fmt.Sprintf("%d particles, step %d", sim.Count(), sim.Steps()), 10, 35, 16, rl.RayWhite)
		if paused {
			rl.DrawText("PAUSED", 10, 55, 16, rl.Yellow)
		}

		// Control panel
		panelX := float32(viewWidth + 20)
		panelY := float32(10)

		rl.DrawText("Fluid Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		// Stiffness slider
		rl.DrawText("Pressure stiffness", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newStiffness := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.5", "20",
			params.Stiffness, 0.5, 20,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Stiffness), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if newStiffness != params.Stiffness {
			params.Stiffness = newStiffness
			needsRebuild = true
		}
		panelY += 35

		// Viscosity slider
		rl.DrawText("Viscosity", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newViscosity := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "1",
			params.Viscosity, 0, 1,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Viscosity), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if newViscosity != params.Viscosity {
			params.Viscosity = newViscosity
			needsRebuild = true
		}
		panelY += 35

		// Damping slider
		rl.DrawText("Boundary damping", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newDamping := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"-1", "0",
			params.Damping, -1, 0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Damping), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if newDamping != params.Damping {
			params.Damping = newDamping
			needsRebuild = true
		}
		panelY += 35

		// Gravity slider
		rl.DrawText("Gravity Y", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newGravity := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"-20", "0",
			params.GravityY, -20, 0,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.GravityY), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if newGravity != params.GravityY {
			params.GravityY = newGravity
			needsRebuild = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reseed") {
			seed++
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultPreviewParams()
			needsRebuild = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.RayWhite)
		panelY += 25
		yamlLines := []string{
			"fluid:",
			fmt.Sprintf("  pressure_stiffness: %.1f", params.Stiffness),
			fmt.Sprintf("  viscosity: %.2f", params.Viscosity),
			fmt.Sprintf("  boundary_damping: %.2f", params.Damping),
			fmt.Sprintf("  gravity: [0.0, %.1f, 0.0]", params.GravityY),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			yaml := fmt.Sprintf(`fluid:
  pressure_stiffness: %.1f
  viscosity: %.2f
  boundary_damping: %.2f
  gravity: [0.0, %.1f, 0.0]`,
				params.Stiffness, params.Viscosity, params.Damping, params.GravityY)
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}
