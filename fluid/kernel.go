package fluid

import "math"

// Cubic spline smoothing kernel and its gradient, both with support radius h.
// Constants are precomputed once per simulation; the piecewise branches
// split at q = r/h = 0.5.

// nearZero is the pair distance below which gradient-based terms are
// dropped entirely so coincident particles never produce singular forces.
const nearZero = 1e-8

// kernel holds the precomputed normalization constants for a fixed h.
type kernel struct {
	h     float32
	hSq   float32
	wNorm float32 // 8 / (π h⁴)
	gNorm float32 // 24 / (π h⁵)
}

func newKernel(h float32) kernel {
	h64 := float64(h)
	return kernel{
		h:     h,
		hSq:   h * h,
		wNorm: float32(8.0 / (math.Pi * h64 * h64 * h64 * h64)),
		gNorm: float32(24.0 / (math.Pi * h64 * h64 * h64 * h64 * h64)),
	}
}

// W evaluates the smoothing kernel at distance r. Zero outside the support.
func (k kernel) W(r float32) float32 {
	q := r / k.h
	switch {
	case q <= 0.5:
		return k.wNorm * (1 - 6*q*q + 6*q*q*q)
	case q <= 1.0:
		u := 1 - q
		return k.wNorm * 2 * u * u * u
	default:
		return 0
	}
}

// GradMag returns the signed radial derivative of the kernel at distance r.
// Negative over most of the support: the kernel decreases away from the
// origin. Returns 0 for r below nearZero and outside the support.
func (k kernel) GradMag(r float32) float32 {
	if r < nearZero {
		return 0
	}
	q := r / k.h
	switch {
	case q <= 0.5:
		return k.gNorm * q * (3*q - 2)
	case q <= 1.0:
		u := 1 - q
		return -k.gNorm * u * u
	default:
		return 0
	}
}

// Grad returns the kernel gradient for the separation vector d = posI - posJ
// with |d| = r. The direction is the unit vector from j to i.
func (k kernel) Grad(d Vec3, r float32) Vec3 {
	if r < nearZero {
		return Vec3{}
	}
	return d.Scale(k.GradMag(r) / r)
}
