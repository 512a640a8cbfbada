package fluid

import "math/rand"

// particleStore is the structure-of-arrays state for all particles.
// Each attribute lives in its own contiguous slice indexed by particle id;
// indices are stable for the lifetime of the simulation and the arrays are
// never resized after construction.
type particleStore struct {
	count      int
	positions  []Vec3
	velocities []Vec3
	densities  []float32
	pressures  []float32
	forces     []Vec3
}

// newParticleStore allocates a store for n particles with positions drawn
// uniformly from the seed volume, zero velocities, and densities pinned to
// the rest density until the first density pass overwrites them.
func newParticleStore(n int, seedMin, seedMax Vec3, restDensity float32, rng *rand.Rand) *particleStore {
	s := &particleStore{
		count:      n,
		positions:  make([]Vec3, n),
		velocities: make([]Vec3, n),
		densities:  make([]float32, n),
		pressures:  make([]float32, n),
		forces:     make([]Vec3, n),
	}

	span := seedMax.Sub(seedMin)
	for i := 0; i < n; i++ {
		s.positions[i] = Vec3{
			X: seedMin.X + rng.Float32()*span.X,
			Y: seedMin.Y + rng.Float32()*span.Y,
			Z: seedMin.Z + rng.Float32()*span.Z,
		}
		s.densities[i] = restDensity
	}

	return s
}

// clearForces zeroes the force accumulator. Called after integration so
// forces never carry state across steps.
func (s *particleStore) clearForces() {
	for i := range s.forces {
		s.forces[i] = Vec3{}
	}
}
