package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/rill-engine/rill/components"
	"github.com/rill-engine/rill/scene"
)

// SceneRenderer renders scene entities and fracture debris.
type SceneRenderer struct {
	groundY float32
}

// NewSceneRenderer creates a renderer for scene content.
func NewSceneRenderer(groundY float32) *SceneRenderer {
	return &SceneRenderer{groundY: groundY}
}

// Draw renders all visible scene entities. Must be called inside
// BeginMode3D.
func (r *SceneRenderer) Draw(sc *scene.Scene) {
	sc.Each(func(e ecs.Entity, meta *components.Metadata, t *components.Transform, rend *components.Renderable) {
		if !meta.Active || !rend.Visible {
			return
		}

		pos := rl.Vector3{X: t.Position.X, Y: t.Position.Y, Z: t.Position.Z}
		color := rl.Color{R: rend.R, G: rend.G, B: rend.B, A: 255}

		switch rend.Shape {
		case components.ShapeCube:
			size := rl.Vector3{X: t.Scale.X, Y: t.Scale.Y, Z: t.Scale.Z}
			rl.DrawCubeV(pos, size, color)
			rl.DrawCubeWiresV(pos, size, rl.Color{R: 30, G: 30, B: 40, A: 255})
		case components.ShapeSphere:
			rl.DrawSphereEx(pos, t.Scale.X*0.5, 12, 12, color)
		}
	})
}

// DrawGround renders a reference plane at ground height.
func (r *SceneRenderer) DrawGround() {
	center := rl.NewVector3(0, r.groundY, 0)
	rl.DrawPlane(center, rl.NewVector2(12, 12), rl.Color{R: 52, G: 56, B: 62, A: 255})
	if r.groundY == 0 {
		rl.DrawGrid(24, 0.5)
	}
}
