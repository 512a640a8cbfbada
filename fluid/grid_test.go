package fluid

import (
	"math/rand"
	"sort"
	"testing"
)

func TestUniformGridQueryMatchesScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	boxMin := Vec3{-3, -1, -3}
	boxMax := Vec3{3, 5, 3}
	h := float32(0.25)

	positions := make([]Vec3, 400)
	for i := range positions {
		positions[i] = Vec3{
			X: boxMin.X + rng.Float32()*(boxMax.X-boxMin.X),
			Y: boxMin.Y + rng.Float32()*(boxMax.Y-boxMin.Y),
			Z: boxMin.Z + rng.Float32()*(boxMax.Z-boxMin.Z),
		}
	}

	g := newUniformGrid(boxMin, boxMax, h)
	g.rebuild(positions)

	for i := 0; i < 50; i++ {
		origin := positions[i]

		got := g.queryInto(nil, origin, h*h, i, positions)

		var want []int
		for j, pj := range positions {
			if j == i {
				continue
			}
			if origin.Sub(pj).LenSq() < h*h {
				want = append(want, j)
			}
		}

		gotIdx := make([]int, len(got))
		for k, n := range got {
			gotIdx[k] = n.Index
		}
		sort.Ints(gotIdx)

		if len(gotIdx) != len(want) {
			t.Fatalf("query %d: got %d neighbors, want %d", i, len(gotIdx), len(want))
		}
		for k := range want {
			if gotIdx[k] != want[k] {
				t.Fatalf("query %d: neighbor sets differ at %d: got %d want %d", i, k, gotIdx[k], want[k])
			}
		}
	}
}

func TestUniformGridPrecomputedPairData(t *testing.T) {
	positions := []Vec3{{0, 0, 0}, {0.1, 0, 0}, {0, 0.4, 0}}

	g := newUniformGrid(Vec3{-1, -1, -1}, Vec3{1, 1, 1}, 0.25)
	g.rebuild(positions)

	got := g.queryInto(nil, positions[0], 0.25*0.25, 0, positions)
	if len(got) != 1 {
		t.Fatalf("got %d neighbors, want 1", len(got))
	}
	n := got[0]
	if n.Index != 1 {
		t.Errorf("neighbor index = %d, want 1", n.Index)
	}
	if n.Delta != (Vec3{-0.1, 0, 0}) {
		t.Errorf("delta = %v, want (-0.1,0,0)", n.Delta)
	}
	if d := float64(n.DistSq) - 0.01; d > 1e-9 || d < -1e-9 {
		t.Errorf("distSq = %v, want 0.01", n.DistSq)
	}
}

func TestUniformGridClampsOutOfBoxPositions(t *testing.T) {
	positions := []Vec3{{-10, 0, 0}, {0, 0, 0}}
	g := newUniformGrid(Vec3{-1, -1, -1}, Vec3{1, 1, 1}, 0.25)

	// Must not panic; the stray particle lands in a border cell.
	g.rebuild(positions)

	got := g.queryInto(nil, positions[1], 0.25*0.25, 1, positions)
	if len(got) != 0 {
		t.Errorf("got %d neighbors, want 0", len(got))
	}
}
