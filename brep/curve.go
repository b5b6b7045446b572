// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package brep implements a minimal boundary-representation kernel: curves,
// edges, wires, faces, prism solids, mesh booleans and tessellation
package brep

import (
	"math"

	"github.com/cpmech/gocad/geo"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Curve defines a bounded 3D parametric curve
type Curve interface {
	Eval(t float64) v3.Vec    // point at parameter t
	Bounds() (t0, t1 float64) // natural parameter range
	NumSegs(dt, defl float64) int
}

// Line3 is a straight segment from A to B; parameter range [0,1]
type Line3 struct {
	A, B v3.Vec
}

// Eval returns the point at parameter t
func (o *Line3) Eval(t float64) v3.Vec {
	return o.A.Add(o.B.Sub(o.A).MulScalar(t))
}

// Bounds returns the natural parameter range
func (o *Line3) Bounds() (t0, t1 float64) {
	return 0, 1
}

// NumSegs returns the number of segments to approximate the span dt within deflection defl
func (o *Line3) NumSegs(dt, defl float64) int {
	return 1
}

// Circle3 is a circle embedded in 3D. Points are C + R·cos(t)·U + R·sin(t)·V;
// parameter range [0,2π]. U and V must be unit and orthogonal
type Circle3 struct {
	C    v3.Vec  // center
	U, V v3.Vec  // in-plane axes
	R    float64 // radius
}

// Eval returns the point at angle t
func (o *Circle3) Eval(t float64) v3.Vec {
	return o.C.Add(o.U.MulScalar(o.R * math.Cos(t))).Add(o.V.MulScalar(o.R * math.Sin(t)))
}

// Bounds returns the natural parameter range
func (o *Circle3) Bounds() (t0, t1 float64) {
	return 0, 2 * math.Pi
}

// NumSegs returns the number of segments so the chord error stays below defl
func (o *Circle3) NumSegs(dt, defl float64) int {
	if defl >= o.R {
		return 2
	}
	step := 2 * math.Acos(1-defl/o.R)
	n := int(math.Ceil(math.Abs(dt) / step))
	if n < 2 {
		n = 2
	}
	return n
}

// Normal returns the axis of the circle (U×V)
func (o *Circle3) Normal() v3.Vec {
	return geo.Unit3(o.U.Cross(o.V))
}
