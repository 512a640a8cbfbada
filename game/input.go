package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/rill-engine/rill/fluid"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	g.handleCameraInput()
	g.handleClickDamage()
}

// handleCameraInput processes orbit camera controls.
func (g *Game) handleCameraInput() {
	if g.cam == nil {
		return
	}

	// Right mouse drag orbits around the target
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		g.cam.Rotate(delta.X*0.005, -delta.Y*0.005)
	}

	// Arrow keys orbit as well
	const keyRotate = 0.02
	if rl.IsKeyDown(rl.KeyRight) {
		g.cam.Rotate(keyRotate, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.cam.Rotate(-keyRotate, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.cam.Rotate(0, keyRotate)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.cam.Rotate(0, -keyRotate)
	}

	// Mouse wheel dollies in and out
	wheelMove := rl.GetMouseWheelMove()
	if wheelMove != 0 {
		g.cam.Dolly(1.0 - wheelMove*0.1)
	}

	// Home key returns to the configured viewpoint
	if rl.IsKeyPressed(rl.KeyHome) {
		*g.cam = *g.defaultCamera()
	}
}

// handleClickDamage ray-picks the cube on left click and applies damage at
// the hit point.
func (g *Game) handleClickDamage() {
	if g.cam == nil || g.cube.Broken() {
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}

	ray := rl.GetMouseRay(rl.GetMousePosition(), g.camera3D())

	half := g.cube.Size.Scale(0.5)
	box := rl.BoundingBox{
		Min: rl.Vector3{X: g.cube.Position.X - half.X, Y: g.cube.Position.Y - half.Y, Z: g.cube.Position.Z - half.Z},
		Max: rl.Vector3{X: g.cube.Position.X + half.X, Y: g.cube.Position.Y + half.Y, Z: g.cube.Position.Z + half.Z},
	}

	hit := rl.GetRayCollisionBox(ray, box)
	if !hit.Hit {
		return
	}

	impact := fluid.Vec3{X: hit.Point.X, Y: hit.Point.Y, Z: hit.Point.Z}
	g.DamageCube(float32(g.cfg.Fracture.ClickDamage), impact)
}
