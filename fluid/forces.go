package fluid

// forceRange runs the force pass for particles in [i0, i1). Reads positions,
// velocities, densities and pressures, writes forces[i] only.
//
// The accumulator starts from gravity (forces hold mass-normalized
// acceleration, which is what the integrator consumes) and adds the pressure
// and viscosity contributions of every neighbor. The pressure term uses the
// symmetrized (p_i + p_j) / (2 ρ_j) form; dividing by ρ_j alone makes the
// pair forces only approximately antisymmetric, so momentum is not exactly
// conserved. Pairs closer than the near-zero guard contribute nothing.
func (s *Simulation) forceRange(i0, i1 int, scratch *[]Neighbor) {
	st := s.store
	mu := s.params.Viscosity

	for i := i0; i < i1; i++ {
		*scratch = s.neighborsInto((*scratch)[:0], i)

		force := s.params.Gravity
		pi := st.pressures[i]
		vi := st.velocities[i]

		for _, n := range *scratch {
			r := sqrt32(n.DistSq)
			if r < nearZero {
				continue
			}
			j := n.Index
			gradMag := s.kernel.GradMag(r)
			invDensityJ := 1 / st.densities[j]

			// Pressure: push along the j→i direction against the gradient.
			pressureTerm := (pi + st.pressures[j]) * 0.5 * invDensityJ
			grad := n.Delta.Scale(gradMag / r)
			force = force.Sub(grad.Scale(pressureTerm))

			// Viscosity: drag v_i toward v_j. GradMag is negative over
			// the support; the term needs the magnitude to stay
			// dissipative.
			viscTerm := -mu * gradMag * invDensityJ
			force = force.Add(st.velocities[j].Sub(vi).Scale(viscTerm))
		}

		st.forces[i] = force
	}
}
