// Package components defines ECS components for the scene graph.
package components

import "github.com/rill-engine/rill/fluid"

// Transform holds an entity's position, Euler rotation, and scale.
type Transform struct {
	Position fluid.Vec3
	Rotation fluid.Vec3
	Scale    fluid.Vec3
}

// NewTransform returns a transform at the origin with unit scale.
func NewTransform() Transform {
	return Transform{Scale: fluid.Vec3{X: 1, Y: 1, Z: 1}}
}

// Metadata identifies an entity.
type Metadata struct {
	Name   string
	Active bool
}

// Shape selects how a renderable entity is drawn.
type Shape uint8

const (
	ShapeCube Shape = iota
	ShapeSphere
)

// Renderable marks an entity for drawing.
type Renderable struct {
	Visible bool
	Shape   Shape
	R, G, B uint8
}

// RigidBody holds simple rigid-body state for scene entities such as
// fracture fragments. Forces accumulate between updates and are cleared by
// the physics system after integration.
type RigidBody struct {
	Mass     float32
	Static   bool
	Velocity fluid.Vec3
	Force    fluid.Vec3
}

// AddForce accumulates a force on the body.
func (b *RigidBody) AddForce(f fluid.Vec3) {
	b.Force = b.Force.Add(f)
}

// ClearForces zeroes the accumulated force.
func (b *RigidBody) ClearForces() {
	b.Force = fluid.Vec3{}
}
