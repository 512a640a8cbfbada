package fluid

import "math"

// Vec3 is a 3-component float32 vector.
// The simulation runs entirely in float32; Go's math package wants float64,
// so the few transcendental helpers here do the conversion in one place.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// LenSq returns the squared length of v.
func (v Vec3) LenSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Len returns the length of v.
func (v Vec3) Len() float32 {
	return sqrt32(v.LenSq())
}

// IsFinite reports whether all components are finite.
func (v Vec3) IsFinite() bool {
	return isFinite32(v.X) && isFinite32(v.Y) && isFinite32(v.Z)
}

func sqrt32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func isFinite32(x float32) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
