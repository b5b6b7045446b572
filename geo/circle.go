// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// CircleFrom3Points computes the unique circle through three non-collinear
// points. An error is returned when the points are collinear
func CircleFrom3Points(a, m, b v2.Vec) (c v2.Vec, r float64, err error) {

	// perpendicular bisectors of a-m and m-b
	am := m.Sub(a)
	mb := b.Sub(m)
	pa := a.Add(m).MulScalar(0.5)
	pb := m.Add(b).MulScalar(0.5)
	na := v2.Vec{X: -am.Y, Y: am.X}
	nb := v2.Vec{X: -mb.Y, Y: mb.X}

	// intersect bisectors
	var ok bool
	c, _, ok = LineLineIntersection(pa, na, pb, nb)
	if !ok {
		err = chk.Err("cannot compute circle: points are collinear")
		return
	}
	r = Dist2(c, a)
	return
}

// ArcCentersFromEndpoints computes the two candidate centers of a circle with
// radius r through points a and b. An error is returned when 2r is smaller
// than the chord length
func ArcCentersFromEndpoints(a, b v2.Vec, r float64) (c1, c2 v2.Vec, err error) {
	chord := Dist2(a, b)
	if 2*r < chord {
		err = chk.Err("radius %g is too small for chord length %g", r, chord)
		return
	}
	mid := a.Add(b).MulScalar(0.5)
	h := math.Sqrt(r*r - chord*chord/4.0)
	d := Unit2(b.Sub(a))
	n := v2.Vec{X: -d.Y, Y: d.X}
	c1 = mid.Add(n.MulScalar(h))
	c2 = mid.Sub(n.MulScalar(h))
	return
}

// SweepCCW returns the counter-clockwise sweep from angle a0 to angle a1; in (0,2π]
func SweepCCW(a0, a1 float64) float64 {
	s := NormAngle(a1 - a0)
	if s == 0 {
		s = 2 * math.Pi
	}
	return s
}

// AngleOn returns the polar angle of point p about center c
func AngleOn(c, p v2.Vec) float64 {
	return math.Atan2(p.Y-c.Y, p.X-c.X)
}
