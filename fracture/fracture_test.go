package fracture

import (
	"math/rand"
	"testing"

	"github.com/rill-engine/rill/fluid"
)

func TestFractureProducesContainedFragments(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sys := NewSystem(rng, 100, 5)

	position := fluid.Vec3{Y: 2}
	size := fluid.Vec3{X: 1, Y: 1, Z: 1}
	impacts := []fluid.Vec3{{X: 0.1, Y: 2, Z: -0.1}}

	fragments := sys.Fracture(position, size, impacts)
	if len(fragments) == 0 {
		t.Fatal("expected at least one fragment from a unit cube")
	}

	// Fragment footprints stay within the cube footprint (half a sample
	// cell of slack from the lattice padding).
	slackX := size.X / footprintSamples
	slackZ := size.Z / footprintSamples
	for i, f := range fragments {
		if f.Position.X-f.Size.X/2 < position.X-size.X/2-slackX ||
			f.Position.X+f.Size.X/2 > position.X+size.X/2+slackX {
			t.Errorf("fragment %d outside footprint on x: pos=%v size=%v", i, f.Position, f.Size)
		}
		if f.Position.Z-f.Size.Z/2 < position.Z-size.Z/2-slackZ ||
			f.Position.Z+f.Size.Z/2 > position.Z+size.Z/2+slackZ {
			t.Errorf("fragment %d outside footprint on z: pos=%v size=%v", i, f.Position, f.Size)
		}
		if f.Mass <= 0 {
			t.Errorf("fragment %d has non-positive mass %v", i, f.Mass)
		}
	}
}

func TestFractureNoSites(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sys := NewSystem(rng, 100, 0)

	fragments := sys.Fracture(fluid.Vec3{}, fluid.Vec3{X: 1, Y: 1, Z: 1}, nil)
	if fragments != nil {
		t.Errorf("expected nil fragments with no sites, got %d", len(fragments))
	}
}

func TestCubeDamageAccumulates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sys := NewSystem(rng, 100, 5)
	cube := NewCube(sys, fluid.Vec3{Y: 2}, fluid.Vec3{X: 1, Y: 1, Z: 1}, 100)

	cube.ApplyDamage(40, fluid.Vec3{Y: 2})
	if cube.Broken() {
		t.Fatal("cube broke below its health threshold")
	}
	if cube.Fragments() != nil {
		t.Error("intact cube reported fragments")
	}

	cube.ApplyDamage(70, fluid.Vec3{Y: 2})
	if !cube.Broken() {
		t.Fatal("cube survived damage beyond its health")
	}
	if len(cube.Fragments()) == 0 {
		t.Error("broken cube has no fragments")
	}
}

func TestCubeIgnoresPostBreakDamage(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sys := NewSystem(rng, 100, 5)
	cube := NewCube(sys, fluid.Vec3{}, fluid.Vec3{X: 1, Y: 1, Z: 1}, 10)

	cube.ApplyDamage(50, fluid.Vec3{})
	first := cube.Fragments()

	cube.ApplyDamage(50, fluid.Vec3{X: 0.3})
	if len(cube.Fragments()) != len(first) {
		t.Error("damage after breaking changed the fragment set")
	}
}
