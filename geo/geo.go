// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geo implements 2D/3D vector helpers and planar intersections
package geo

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// constants
const (
	TolParallel = 1e-10 // determinant tolerance below which two directions are parallel
	TolConnect  = 1e-6  // distance tolerance for endpoint connectivity
	TolBasis    = 1e-9  // tolerance for orthonormal basis checks
)

// Cross2 returns the z-component of the cross product of two 2D vectors
func Cross2(a, b v2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Unit2 returns the unit vector along a. It panics not; a zero vector is returned unchanged
func Unit2(a v2.Vec) v2.Vec {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.DivScalar(l)
}

// Unit3 returns the unit vector along a. A zero vector is returned unchanged
func Unit3(a v3.Vec) v3.Vec {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.DivScalar(l)
}

// Dist2 returns the distance between two 2D points
func Dist2(a, b v2.Vec) float64 {
	return a.Sub(b).Length()
}

// Angle2 returns the angle between two 2D directions; in [0,π]
func Angle2(d1, d2 v2.Vec) float64 {
	c := d1.Dot(d2) / (d1.Length() * d2.Length())
	if c > 1 {
		c = 1
	}
	if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// ProjectPointOnLine returns the foot of the perpendicular from p onto the
// line through a with direction d (d needs not be unit)
func ProjectPointOnLine(p, a, d v2.Vec) v2.Vec {
	t := p.Sub(a).Dot(d) / d.Dot(d)
	return a.Add(d.MulScalar(t))
}

// NormAngle maps an angle to [0,2π)
func NormAngle(a float64) float64 {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
