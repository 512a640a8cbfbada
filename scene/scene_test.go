package scene

import (
	"math"
	"testing"

	"github.com/rill-engine/rill/components"
	"github.com/rill-engine/rill/fluid"
)

func testRenderable() components.Renderable {
	return components.Renderable{Visible: true, Shape: components.ShapeCube, R: 200, G: 200, B: 200}
}

func TestSpawnAndFindByName(t *testing.T) {
	s := New(fluid.Vec3{Y: -9.81}, -1)

	tr := components.NewTransform()
	tr.Position = fluid.Vec3{X: 1, Y: 2, Z: 3}
	e := s.Spawn("cube", tr, testRenderable(), components.RigidBody{Mass: 10, Static: true})

	if s.Count() != 1 {
		t.Fatalf("count = %d, want 1", s.Count())
	}

	found, ok := s.FindByName("cube")
	if !ok {
		t.Fatal("FindByName(cube) not found")
	}
	if found != e {
		t.Error("FindByName returned a different entity")
	}

	if _, ok := s.FindByName("missing"); ok {
		t.Error("FindByName(missing) unexpectedly found an entity")
	}

	got := s.Transform(e)
	if got == nil || got.Position != tr.Position {
		t.Errorf("transform = %+v, want position %v", got, tr.Position)
	}
}

func TestRemove(t *testing.T) {
	s := New(fluid.Vec3{}, -1)

	e := s.Spawn("f", components.NewTransform(), testRenderable(), components.RigidBody{Mass: 1})
	s.Remove(e)

	if s.Count() != 0 {
		t.Errorf("count = %d after remove, want 0", s.Count())
	}
	if _, ok := s.FindByName("f"); ok {
		t.Error("removed entity still findable")
	}
}

func TestRigidBodyFall(t *testing.T) {
	s := New(fluid.Vec3{Y: -10}, -100)

	tr := components.NewTransform()
	tr.Position = fluid.Vec3{Y: 5}
	e := s.Spawn("frag", tr, testRenderable(), components.RigidBody{Mass: 2})

	dt := float32(0.1)
	s.Update(dt)

	body := s.Body(e)
	if math.Abs(float64(body.Velocity.Y-(-1))) > 1e-5 {
		t.Errorf("vel.y = %v, want -1 after one step", body.Velocity.Y)
	}

	pos := s.Transform(e).Position
	if math.Abs(float64(pos.Y-4.9)) > 1e-5 {
		t.Errorf("pos.y = %v, want 4.9", pos.Y)
	}
}

func TestRigidBodyStaticUnmoved(t *testing.T) {
	s := New(fluid.Vec3{Y: -10}, -1)

	tr := components.NewTransform()
	tr.Position = fluid.Vec3{Y: 2}
	e := s.Spawn("anchor", tr, testRenderable(), components.RigidBody{Mass: 10, Static: true})

	for i := 0; i < 10; i++ {
		s.Update(0.016)
	}

	if pos := s.Transform(e).Position; pos.Y != 2 {
		t.Errorf("static entity moved to y=%v", pos.Y)
	}
}

func TestRigidBodyGroundBounce(t *testing.T) {
	s := New(fluid.Vec3{}, 0)

	tr := components.NewTransform()
	tr.Position = fluid.Vec3{Y: 0.6}
	e := s.Spawn("frag", tr, testRenderable(), components.RigidBody{
		Mass:     1,
		Velocity: fluid.Vec3{Y: -5},
	})

	s.Update(0.1)

	pos := s.Transform(e).Position
	// Scale is 1, so the body rests with its half-extent above the ground.
	if math.Abs(float64(pos.Y-0.5)) > 1e-5 {
		t.Errorf("pos.y = %v, want 0.5 resting on ground", pos.Y)
	}

	body := s.Body(e)
	if body.Velocity.Y <= 0 {
		t.Errorf("vel.y = %v, want upward bounce", body.Velocity.Y)
	}
}

func TestForceAccumulatorCleared(t *testing.T) {
	s := New(fluid.Vec3{}, -100)

	e := s.Spawn("frag", components.NewTransform(), testRenderable(), components.RigidBody{Mass: 1})

	s.Body(e).AddForce(fluid.Vec3{X: 10})
	s.Update(0.1)

	body := s.Body(e)
	if body.Force != (fluid.Vec3{}) {
		t.Errorf("force = %v after update, want cleared", body.Force)
	}
	if body.Velocity.X <= 0 {
		t.Errorf("vel.x = %v, want > 0 from applied force", body.Velocity.X)
	}
}
