// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brep

import (
	"github.com/cpmech/gocad/geo"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Edge is a curve trimmed to [T0,T1]
type Edge struct {
	Curve  Curve
	T0, T1 float64
	Rev    bool // traverse from T1 to T0 during wire assembly
}

// NewLine creates an edge from a straight segment between two points
func NewLine(a, b v3.Vec) *Edge {
	return &Edge{Curve: &Line3{A: a, B: b}, T0: 0, T1: 1}
}

// NewCircle creates a closed circular edge. center is the circle center,
// normal the axis and xdir the in-plane direction of angle zero
func NewCircle(center, normal, xdir v3.Vec, r float64) *Edge {
	u := geo.Unit3(xdir)
	n := geo.Unit3(normal)
	v := n.Cross(u)
	c := &Circle3{C: center, U: u, V: v, R: r}
	t0, t1 := c.Bounds()
	return &Edge{Curve: c, T0: t0, T1: t1}
}

// NewTrimmed creates an edge from a curve restricted to [t0,t1]
func NewTrimmed(curve Curve, t0, t1 float64) *Edge {
	return &Edge{Curve: curve, T0: t0, T1: t1}
}

// First returns the start point, honoring the traversal flag
func (o *Edge) First() v3.Vec {
	if o.Rev {
		return o.Curve.Eval(o.T1)
	}
	return o.Curve.Eval(o.T0)
}

// Last returns the end point, honoring the traversal flag
func (o *Edge) Last() v3.Vec {
	if o.Rev {
		return o.Curve.Eval(o.T0)
	}
	return o.Curve.Eval(o.T1)
}

// Closed tells whether start and end coincide
func (o *Edge) Closed() bool {
	return o.First().Sub(o.Last()).Length() < geo.TolConnect
}

// Sample returns points along the edge within the given deflection. The start
// point is included; the end point is included when closing is true
func (o *Edge) Sample(defl float64, closing bool) (points []v3.Vec) {
	n := o.Curve.NumSegs(o.T1-o.T0, defl)
	for i := 0; i <= n; i++ {
		if i == n && !closing {
			break
		}
		f := float64(i) / float64(n)
		if o.Rev {
			f = 1 - f
		}
		t := o.T0 + (o.T1-o.T0)*f
		points = append(points, o.Curve.Eval(t))
	}
	return
}
