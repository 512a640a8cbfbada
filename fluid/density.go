package fluid

// densityPressureRange runs the density and pressure pass for particles in
// [i0, i1). Reads positions, writes densities[i] and pressures[i] only, so
// disjoint ranges are safe to run concurrently.
//
// Density is the sum of kernel values over neighbors within the smoothing
// radius, floored at a tenth of the rest density so downstream divisions
// never hit zero. Pressure follows from the equation of state: zero at rest
// density, positive above it, negative (attractive) below it.
func (s *Simulation) densityPressureRange(i0, i1 int, scratch *[]Neighbor) {
	st := s.store
	floor := s.params.RestDensity * 0.1

	for i := i0; i < i1; i++ {
		*scratch = s.neighborsInto((*scratch)[:0], i)

		var density float32
		for _, n := range *scratch {
			density += s.kernel.W(sqrt32(n.DistSq))
		}

		if density < floor {
			density = floor
		}
		st.densities[i] = density
		st.pressures[i] = s.pressureConst * (density/s.params.RestDensity - 1)
	}
}
