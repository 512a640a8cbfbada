package scene

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/rill-engine/rill/components"
	"github.com/rill-engine/rill/fluid"
)

// groundDamping is the velocity multiplier applied on ground contact.
const groundDamping = -0.3

// rigidBodySystem integrates non-static scene bodies: gravity, accumulated
// forces, semi-implicit Euler, and a ground-plane bounce. Fracture fragments
// are its main customer.
type rigidBodySystem struct {
	gravity fluid.Vec3
	groundY float32
}

func newRigidBodySystem(gravity fluid.Vec3, groundY float32) *rigidBodySystem {
	return &rigidBodySystem{gravity: gravity, groundY: groundY}
}

func (p *rigidBodySystem) update(filter *ecs.Filter4[
	components.Metadata,
	components.Transform,
	components.Renderable,
	components.RigidBody,
], dt float32) {
	query := filter.Query()
	for query.Next() {
		meta, transform, _, body := query.Get()

		if !meta.Active || body.Static || body.Mass <= 0 {
			continue
		}

		accel := p.gravity.Add(body.Force.Scale(1 / body.Mass))
		body.Velocity = body.Velocity.Add(accel.Scale(dt))
		transform.Position = transform.Position.Add(body.Velocity.Scale(dt))

		// Fragments rest on the ground plane instead of falling forever.
		halfHeight := transform.Scale.Y * 0.5
		if transform.Position.Y-halfHeight < p.groundY {
			transform.Position.Y = p.groundY + halfHeight
			body.Velocity.Y *= groundDamping
		}

		body.ClearForces()
	}
}
