package math3d

import "math"

// Spherical is a point in spherical coordinates around the Y axis.
// Phi is the polar angle measured from +Y, Theta the azimuth around +Y
// measured from +Z toward +X.
type Spherical struct {
	Radius float64
	Phi    float64
	Theta  float64
}

// SphericalFromVec3 converts a cartesian offset into spherical coordinates.
func SphericalFromVec3(v Vec3) Spherical {
	r := v.Len()
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		Radius: r,
		Phi:    math.Acos(clamp(v.Y/r, -1, 1)),
		Theta:  math.Atan2(v.X, v.Z),
	}
}

// Vec3 converts back to a cartesian offset.
func (s Spherical) Vec3() Vec3 {
	sinPhi := math.Sin(s.Phi)
	return Vec3{
		X: s.Radius * sinPhi * math.Sin(s.Theta),
		Y: s.Radius * math.Cos(s.Phi),
		Z: s.Radius * sinPhi * math.Cos(s.Theta),
	}
}

// MakeSafe keeps Phi away from the poles so the view basis stays defined.
func (s Spherical) MakeSafe() Spherical {
	const eps = 1e-6
	s.Phi = clamp(s.Phi, eps, math.Pi-eps)
	return s
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return clamp(v, lo, hi)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
