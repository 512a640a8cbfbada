package fluid

// integrateRange runs the integration and boundary pass for particles in
// [i0, i1). Writes velocities[i] and positions[i] only.
//
// Semi-implicit Euler: velocity first, then position from the updated
// velocity. Each axis is clamped against the boundary box independently;
// on contact the position snaps to the face and the velocity component on
// that axis is multiplied by the (typically negative) boundary damping.
func (s *Simulation) integrateRange(i0, i1 int, dt float32) {
	st := s.store
	bmin := s.params.BoundaryMin
	bmax := s.params.BoundaryMax
	damping := s.params.BoundaryDamping

	for i := i0; i < i1; i++ {
		vel := st.velocities[i].Add(st.forces[i].Scale(dt))
		pos := st.positions[i].Add(vel.Scale(dt))

		if pos.X < bmin.X {
			pos.X = bmin.X
			vel.X *= damping
		} else if pos.X > bmax.X {
			pos.X = bmax.X
			vel.X *= damping
		}
		if pos.Y < bmin.Y {
			pos.Y = bmin.Y
			vel.Y *= damping
		} else if pos.Y > bmax.Y {
			pos.Y = bmax.Y
			vel.Y *= damping
		}
		if pos.Z < bmin.Z {
			pos.Z = bmin.Z
			vel.Z *= damping
		} else if pos.Z > bmax.Z {
			pos.Z = bmax.Z
			vel.Z *= damping
		}

		st.velocities[i] = vel
		st.positions[i] = pos
	}
}
