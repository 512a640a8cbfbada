// Package scene provides the entity-component scene graph for the demo
// shell. Entities live in an ECS world; the fluid simulator is not part of
// the scene and is consumed separately through its snapshot interface.
package scene

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/rill-engine/rill/components"
	"github.com/rill-engine/rill/fluid"
)

// Scene is the container for all scene entities.
type Scene struct {
	world *ecs.World

	mapper *ecs.Map4[
		components.Metadata,
		components.Transform,
		components.Renderable,
		components.RigidBody,
	]
	filter *ecs.Filter4[
		components.Metadata,
		components.Transform,
		components.Renderable,
		components.RigidBody,
	]

	metaMap      *ecs.Map1[components.Metadata]
	transformMap *ecs.Map1[components.Transform]
	bodyMap      *ecs.Map1[components.RigidBody]

	physics *rigidBodySystem
	count   int
}

// New creates an empty scene.
func New(gravity fluid.Vec3, groundY float32) *Scene {
	world := ecs.NewWorld()

	s := &Scene{
		world: world,
		mapper: ecs.NewMap4[
			components.Metadata,
			components.Transform,
			components.Renderable,
			components.RigidBody,
		](world),
		filter: ecs.NewFilter4[
			components.Metadata,
			components.Transform,
			components.Renderable,
			components.RigidBody,
		](world),
		metaMap:      ecs.NewMap1[components.Metadata](world),
		transformMap: ecs.NewMap1[components.Transform](world),
		bodyMap:      ecs.NewMap1[components.RigidBody](world),
	}
	s.physics = newRigidBodySystem(gravity, groundY)

	return s
}

// Spawn creates an entity with the given name and components.
func (s *Scene) Spawn(name string, transform components.Transform, renderable components.Renderable, body components.RigidBody) ecs.Entity {
	meta := components.Metadata{Name: name, Active: true}
	e := s.mapper.NewEntity(&meta, &transform, &renderable, &body)
	s.count++
	return e
}

// Remove deletes an entity from the scene.
func (s *Scene) Remove(e ecs.Entity) {
	s.mapper.Remove(e)
	s.count--
}

// Count returns the number of live entities.
func (s *Scene) Count() int {
	return s.count
}

// FindByName returns the first active entity with the given name.
func (s *Scene) FindByName(name string) (ecs.Entity, bool) {
	var found ecs.Entity
	var ok bool

	query := s.filter.Query()
	for query.Next() {
		meta, _, _, _ := query.Get()
		if !ok && meta.Active && meta.Name == name {
			found = query.Entity()
			ok = true
		}
	}
	return found, ok
}

// Transform returns a pointer to an entity's transform, or nil.
func (s *Scene) Transform(e ecs.Entity) *components.Transform {
	return s.transformMap.Get(e)
}

// Body returns a pointer to an entity's rigid body, or nil.
func (s *Scene) Body(e ecs.Entity) *components.RigidBody {
	return s.bodyMap.Get(e)
}

// SetActive toggles an entity's active flag.
func (s *Scene) SetActive(e ecs.Entity, active bool) {
	if meta := s.metaMap.Get(e); meta != nil {
		meta.Active = active
	}
}

// Update advances the rigid-body physics for all active entities.
func (s *Scene) Update(dt float32) {
	s.physics.update(s.filter, dt)
}

// Each visits every active entity with its transform and renderable.
func (s *Scene) Each(visit func(e ecs.Entity, meta *components.Metadata, t *components.Transform, r *components.Renderable)) {
	query := s.filter.Query()
	for query.Next() {
		meta, transform, renderable, _ := query.Get()
		if meta.Active {
			visit(query.Entity(), meta, transform, renderable)
		}
	}
}
