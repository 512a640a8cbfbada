// Package camera provides an orbit camera for viewing the simulation volume.
package camera

import "math"

// Orbit is a camera that circles a target point at a fixed distance.
// Yaw and pitch are in radians; pitch is clamped short of the poles so
// the view vector never becomes parallel to the up axis.
type Orbit struct {
	// Target is the point the camera looks at, in world coordinates.
	TargetX, TargetY, TargetZ float32

	// Yaw rotates around the vertical axis, pitch tilts above the horizon.
	Yaw, Pitch float32

	// Distance from the target point.
	Distance float32

	// Distance constraints
	MinDistance, MaxDistance float32
}

const maxPitch = float32(math.Pi/2) - 0.05

// New creates an orbit camera looking at the given target from the
// given starting distance.
func New(targetX, targetY, targetZ, distance float32) *Orbit {
	return &Orbit{
		TargetX:     targetX,
		TargetY:     targetY,
		TargetZ:     targetZ,
		Yaw:         float32(math.Pi) / 4,
		Pitch:       float32(math.Pi) / 6,
		Distance:    distance,
		MinDistance: distance * 0.2,
		MaxDistance: distance * 5,
	}
}

// LookFrom creates an orbit camera whose eye sits at the given world
// position, aimed at the target. The eye must not coincide with the
// target; a degenerate placement falls back to New's default angles at
// unit distance.
func LookFrom(targetX, targetY, targetZ, eyeX, eyeY, eyeZ float32) *Orbit {
	dx := float64(eyeX - targetX)
	dy := float64(eyeY - targetY)
	dz := float64(eyeZ - targetZ)
	dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if dist < 1e-6 {
		return New(targetX, targetY, targetZ, 1)
	}

	c := New(targetX, targetY, targetZ, float32(dist))
	c.Yaw = float32(math.Atan2(dz, dx))
	c.Pitch = clamp(float32(math.Asin(dy/dist)), -maxPitch, maxPitch)
	return c
}

// Position returns the camera eye point in world coordinates.
func (c *Orbit) Position() (x, y, z float32) {
	cosPitch := float32(math.Cos(float64(c.Pitch)))
	x = c.TargetX + c.Distance*cosPitch*float32(math.Cos(float64(c.Yaw)))
	y = c.TargetY + c.Distance*float32(math.Sin(float64(c.Pitch)))
	z = c.TargetZ + c.Distance*cosPitch*float32(math.Sin(float64(c.Yaw)))
	return x, y, z
}

// Rotate adjusts yaw and pitch by the given deltas in radians.
// Pitch is clamped so the camera never flips over the poles.
func (c *Orbit) Rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = clamp(c.Pitch+dPitch, -maxPitch, maxPitch)
}

// Dolly multiplies the camera distance by the given factor, clamped
// to the min/max range.
func (c *Orbit) Dolly(factor float32) {
	c.Distance = clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// Pan shifts the target point in the camera's horizontal plane.
// dx moves along the camera's right vector, dz along its forward
// projection onto the ground plane.
func (c *Orbit) Pan(dx, dz float32) {
	sinYaw := float32(math.Sin(float64(c.Yaw)))
	cosYaw := float32(math.Cos(float64(c.Yaw)))
	c.TargetX += dx*-sinYaw + dz*-cosYaw
	c.TargetZ += dx*cosYaw + dz*-sinYaw
}

// Reset returns the camera to its default angles and distance.
func (c *Orbit) Reset(targetX, targetY, targetZ, distance float32) {
	c.TargetX = targetX
	c.TargetY = targetY
	c.TargetZ = targetZ
	c.Yaw = float32(math.Pi) / 4
	c.Pitch = float32(math.Pi) / 6
	c.Distance = clamp(distance, c.MinDistance, c.MaxDistance)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
