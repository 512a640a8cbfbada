package fracture

import "github.com/rill-engine/rill/fluid"

// Cube is a destructible box. Damage accumulates until health runs out, at
// which point the cube fractures around the final impact position.
type Cube struct {
	Position fluid.Vec3
	Size     fluid.Vec3

	// ImpactJitter scales the spread of secondary impact points relative
	// to the cube size. Zero selects the default spread.
	ImpactJitter float32

	health    float32
	intact    bool
	system    *System
	fragments []Fragment
}

// NewCube creates an intact destructible cube.
func NewCube(system *System, position, size fluid.Vec3, health float32) *Cube {
	return &Cube{
		Position: position,
		Size:     size,
		health:   health,
		intact:   true,
		system:   system,
	}
}

// ApplyDamage subtracts damage and fractures the cube once health is
// exhausted. Further damage after breaking is ignored.
func (c *Cube) ApplyDamage(damage float32, impact fluid.Vec3) {
	if !c.intact {
		return
	}

	c.health -= damage
	if c.health > 0 {
		return
	}

	// Primary impact plus a few jittered secondary points seeds the
	// fracture pattern around the hit.
	jitter := c.ImpactJitter
	if jitter <= 0 {
		jitter = 0.2
	}
	impacts := []fluid.Vec3{impact}
	for i := 0; i < 3; i++ {
		impacts = append(impacts, fluid.Vec3{
			X: impact.X + (c.system.rng.Float32()*2-1)*jitter*c.Size.X,
			Y: impact.Y + (c.system.rng.Float32()*2-1)*jitter*c.Size.Y,
			Z: impact.Z + (c.system.rng.Float32()*2-1)*jitter*c.Size.Z,
		})
	}

	c.fragments = c.system.Fracture(c.Position, c.Size, impacts)
	c.intact = false
}

// Broken reports whether the cube has fractured.
func (c *Cube) Broken() bool {
	return !c.intact
}

// Health returns the remaining health.
func (c *Cube) Health() float32 {
	return c.health
}

// Fragments returns the pieces produced by the fracture, or nil while the
// cube is intact.
func (c *Cube) Fragments() []Fragment {
	if c.intact {
		return nil
	}
	return c.fragments
}
