package fluid

import (
	"math"
	"testing"
)

func TestKernelSupport(t *testing.T) {
	h := float32(0.1)
	k := newKernel(h)

	tests := []struct {
		name     string
		r        float32
		positive bool
	}{
		{"at origin", 0, true},
		{"inner branch", 0.03, true},
		{"branch boundary", 0.05, true},
		{"outer branch", 0.08, true},
		{"just inside support", 0.0999, true},
		{"at support edge", 0.1, false},
		{"outside support", 0.15, false},
		{"far outside", 1.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := k.W(tt.r)
			if tt.positive && w <= 0 {
				t.Errorf("W(%v) = %v, want > 0", tt.r, w)
			}
			if !tt.positive && w != 0 {
				t.Errorf("W(%v) = %v, want 0", tt.r, w)
			}
		})
	}
}

func TestKernelContinuityAtBranchBoundary(t *testing.T) {
	h := float32(0.1)
	k := newKernel(h)

	// W must not jump between the two piecewise branches at q = 0.5.
	below := k.W(0.5*h - 1e-5)
	above := k.W(0.5*h + 1e-5)

	rel := math.Abs(float64(below-above)) / math.Abs(float64(below))
	if rel > 1e-2 {
		t.Errorf("kernel discontinuous at q=0.5: W-=%v W+=%v (rel %v)", below, above, rel)
	}
}

func TestKernelNormalizationConstant(t *testing.T) {
	h := float32(0.1)
	k := newKernel(h)

	// W(0) = 8/(π h⁴) exactly.
	want := 8.0 / (math.Pi * math.Pow(float64(h), 4))
	got := float64(k.W(0))
	if math.Abs(got-want)/want > 1e-5 {
		t.Errorf("W(0) = %v, want %v", got, want)
	}
}

func TestKernelGradient(t *testing.T) {
	h := float32(0.1)
	k := newKernel(h)

	t.Run("zero below near-zero guard", func(t *testing.T) {
		if g := k.GradMag(1e-9); g != 0 {
			t.Errorf("GradMag below guard = %v, want 0", g)
		}
		if g := k.Grad(Vec3{1e-10, 0, 0}, 1e-10); g != (Vec3{}) {
			t.Errorf("Grad below guard = %v, want zero vector", g)
		}
	})

	t.Run("zero outside support", func(t *testing.T) {
		if g := k.GradMag(0.2); g != 0 {
			t.Errorf("GradMag(0.2) = %v, want 0", g)
		}
	})

	t.Run("inner branch magnitude", func(t *testing.T) {
		// q = 0.5: 24/(π h⁵) · q(3q - 2) = 24/(π h⁵) · (-0.25)
		r := 0.5 * h
		want := 24.0 / (math.Pi * math.Pow(float64(h), 5)) * 0.5 * (3*0.5 - 2)
		got := float64(k.GradMag(r))
		if math.Abs(got-want)/math.Abs(want) > 1e-4 {
			t.Errorf("GradMag(h/2) = %v, want %v", got, want)
		}
	})

	t.Run("outer branch is negative", func(t *testing.T) {
		if g := k.GradMag(0.08); g >= 0 {
			t.Errorf("GradMag(0.08) = %v, want < 0", g)
		}
	})

	t.Run("direction follows separation vector", func(t *testing.T) {
		r := float32(0.07)
		g := k.Grad(Vec3{r, 0, 0}, r)
		if g.Y != 0 || g.Z != 0 {
			t.Errorf("Grad off-axis components = %v, want x-only", g)
		}
		// Outer branch: gradient magnitude negative, so the vector points
		// from i back toward j.
		if g.X >= 0 {
			t.Errorf("Grad.X = %v, want < 0", g.X)
		}
	})
}
