// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// LineLineIntersection computes the intersection of two infinite lines given
// by point+direction. ok is false when the directions are parallel
//  p = p1 + t*d1 = p2 + s*d2
func LineLineIntersection(p1, d1, p2, d2 v2.Vec) (p v2.Vec, t float64, ok bool) {
	det := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(det) < TolParallel {
		return
	}
	w := p2.Sub(p1)
	t = (w.X*d2.Y - w.Y*d2.X) / det
	p = p1.Add(d1.MulScalar(t))
	ok = true
	return
}

// SegSegIntersection computes the intersection of the infinite carriers of
// two segments and reports the line parameters on each segment. The carriers
// are a1→a2 and b1→b2; ta and tb are 0 at the first endpoint and 1 at the second
func SegSegIntersection(a1, a2, b1, b2 v2.Vec) (p v2.Vec, ta, tb float64, ok bool) {
	da := a2.Sub(a1)
	db := b2.Sub(b1)
	p, ta, ok = LineLineIntersection(a1, da, b1, db)
	if !ok {
		return
	}
	// parameter on b from the component with the larger magnitude
	if math.Abs(db.X) > math.Abs(db.Y) {
		tb = (p.X - b1.X) / db.X
	} else {
		tb = (p.Y - b1.Y) / db.Y
	}
	return
}

// LineCircleIntersection computes the intersections of the line through a
// with direction d and the circle (c,r). Returns 0, 1 or 2 points
func LineCircleIntersection(a, d, c v2.Vec, r float64) (points []v2.Vec) {
	u := Unit2(d)
	w := a.Sub(c)
	b := w.Dot(u)
	q := w.Dot(w) - r*r
	disc := b*b - q
	if disc < 0 {
		return
	}
	if disc == 0 {
		points = append(points, a.Add(u.MulScalar(-b)))
		return
	}
	s := math.Sqrt(disc)
	points = append(points, a.Add(u.MulScalar(-b-s)), a.Add(u.MulScalar(-b+s)))
	return
}
