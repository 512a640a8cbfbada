package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// camera3D builds the raylib camera from the orbit controller.
func (g *Game) camera3D() rl.Camera3D {
	x, y, z := g.cam.Position()
	return rl.Camera3D{
		Position:   rl.Vector3{X: x, Y: y, Z: z},
		Target:     rl.Vector3{X: g.cam.TargetX, Y: g.cam.TargetY, Z: g.cam.TargetZ},
		Up:         rl.Vector3{Y: 1},
		Fovy:       float32(g.cfg.Scene.CameraFOV),
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the current frame. Must not be called in headless mode.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 18, G: 20, B: 26, A: 255})

	rl.BeginMode3D(g.camera3D())
	g.sceneRenderer.DrawGround()
	g.fluidRenderer.DrawBounds()
	g.fluidRenderer.Draw(g.positions, g.densities)
	g.sceneRenderer.Draw(g.scene)
	rl.EndMode3D()

	g.drawHUD()

	rl.EndDrawing()
}

// drawHUD renders the 2D overlay with state and controls.
func (g *Game) drawHUD() {
	rl.DrawFPS(10, 10)

	const panelW = 260
	panelX := int32(g.cfg.Screen.Width) - panelW - 10
	panelY := int32(10)
	pad := g.hud.Theme.Padding

	g.hud.DrawPanel(panelX, panelY, panelW, 190)
	x := panelX + pad
	y := panelY + pad

	y = g.hud.DrawSectionHeader(x, y, "Simulation")
	y = g.hud.DrawLabelValue(x, y, "tick", fmt.Sprintf("%d (%dx)", g.tick, g.stepsPerUpdate))
	y = g.hud.DrawLabelValue(x, y, "particles", fmt.Sprintf("%d", g.sim.Count()))
	if g.paused {
		y = g.hud.DrawLabelValue(x, y, "state", "PAUSED")
	}

	if g.cube.Broken() {
		y = g.hud.DrawLabelValue(x, y, "cube", fmt.Sprintf("broken, %d pieces", len(g.cube.Fragments())))
	} else {
		y = g.hud.DrawHealthBar(x, y, "cube", g.cube.Health(), float32(g.cfg.Fracture.CubeHealth), panelW-2*pad)
	}

	if s := g.lastStats; s != nil {
		y = g.hud.DrawSectionHeader(x, y, "Last window")
		y = g.hud.DrawLabelValue(x, y, "kinetic", fmt.Sprintf("%.2f", s.KineticEnergy))
		y = g.hud.DrawLabelValue(x, y, "max speed", fmt.Sprintf("%.2f", s.MaxSpeed))
		rest := g.sim.Params().RestDensity
		y = g.hud.DrawBar(x, y, "density", float32(s.DensityMean)/rest, panelW-2*pad)
		g.hud.DrawLabelValue(x, y, "contacts", fmt.Sprintf("%d", s.BoundaryContacts))
	}

	screenH := int32(g.cfg.Screen.Height)
	rl.DrawText("LMB damage cube | RMB orbit | wheel zoom | space pause | <> speed | home reset",
		10, screenH-25, 14, rl.Gray)
}
