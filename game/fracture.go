package game

import (
	"fmt"
	"log/slog"

	"github.com/rill-engine/rill/components"
	"github.com/rill-engine/rill/fluid"
)

// DamageCube applies damage to the destructible cube at the given impact
// point. If the damage breaks the cube, its fragments are spawned into the
// scene as rigid bodies and the intact cube entity is hidden.
func (g *Game) DamageCube(damage float32, impact fluid.Vec3) {
	if g.cube.Broken() {
		return
	}

	g.cube.ApplyDamage(damage, impact)
	if !g.cube.Broken() {
		return
	}

	if e, ok := g.scene.FindByName("cube"); ok {
		g.scene.SetActive(e, false)
	}

	fragments := g.cube.Fragments()
	for i, f := range fragments {
		transform := components.NewTransform()
		transform.Position = f.Position
		transform.Scale = f.Size
		g.scene.Spawn(fmt.Sprintf("fragment-%d", i),
			transform,
			components.Renderable{Visible: true, Shape: components.ShapeCube, R: 170, G: 120, B: 80},
			components.RigidBody{Mass: f.Mass, Velocity: f.Velocity},
		)
	}

	slog.Info("cube fractured",
		"tick", g.tick,
		"fragments", len(fragments),
		"impact_x", impact.X,
		"impact_y", impact.Y,
		"impact_z", impact.Z,
	)
}
