// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brep

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gocad/geo"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Face is a planar region bounded by one closed outer wire
type Face struct {
	Wire   *Wire
	Origin v3.Vec // plane frame
	U, V   v3.Vec // in-plane axes (unit, orthogonal)
	N      v3.Vec // plane normal (unit, = U×V)
}

// NewFace builds a face from a closed wire. The plane frame is derived from
// the wire geometry (Newell's method); orientation is kept forward, i.e. the
// face normal follows the wire's winding
func NewFace(wire *Wire) (o *Face, err error) {
	if wire == nil {
		err = chk.Err("cannot build face from nil wire")
		return
	}
	if !wire.Closed() {
		err = chk.Err("cannot build face from open wire")
		return
	}

	// normal by Newell's method on a coarse sampling
	pts := wire.Sample(0.5)
	if len(pts) < 3 {
		err = chk.Err("wire sampling yields less than 3 points")
		return
	}
	var n v3.Vec
	for i := 0; i < len(pts); i++ {
		p := pts[i]
		q := pts[(i+1)%len(pts)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	if n.Length() < 1e-12 {
		err = chk.Err("wire is degenerate: zero area")
		return
	}
	n = geo.Unit3(n)

	// in-plane axes: U along the first edge where possible
	u := pts[1].Sub(pts[0])
	u = u.Sub(n.MulScalar(u.Dot(n)))
	if u.Length() < 1e-12 {
		u = pickPerp(n)
	}
	u = geo.Unit3(u)

	o = &Face{
		Wire:   wire,
		Origin: pts[0],
		U:      u,
		V:      n.Cross(u),
		N:      n,
	}
	return
}

// pickPerp returns some unit vector perpendicular to n
func pickPerp(n v3.Vec) v3.Vec {
	a := v3.Vec{X: 0, Y: 0, Z: 1}
	if math.Abs(n.Dot(a)) > 0.9 {
		a = v3.Vec{X: 1, Y: 0, Z: 0}
	}
	return geo.Unit3(n.Cross(a))
}

// Translated returns a copy of the face with every edge shifted by vec
func (o *Face) Translated(vec v3.Vec) *Face {
	edges := make([]*Edge, len(o.Wire.Edges))
	for i, e := range o.Wire.Edges {
		edges[i] = &Edge{Curve: translateCurve(e.Curve, vec), T0: e.T0, T1: e.T1, Rev: e.Rev}
	}
	return &Face{
		Wire:   &Wire{Edges: edges},
		Origin: o.Origin.Add(vec),
		U:      o.U,
		V:      o.V,
		N:      o.N,
	}
}

func translateCurve(c Curve, vec v3.Vec) Curve {
	switch cc := c.(type) {
	case *Line3:
		return &Line3{A: cc.A.Add(vec), B: cc.B.Add(vec)}
	case *Circle3:
		return &Circle3{C: cc.C.Add(vec), U: cc.U, V: cc.V, R: cc.R}
	}
	chk.Panic("cannot translate curve of type %T", c)
	return nil
}

// toPlane maps a world point to the face's 2D frame
func (o *Face) toPlane(p v3.Vec) v2.Vec {
	d := p.Sub(o.Origin)
	return v2.Vec{X: d.Dot(o.U), Y: d.Dot(o.V)}
}

// Polygon samples the boundary within defl and returns the loop both as 2D
// points in the face frame and as 3D points. The loop is made counter-clockwise
// with respect to the face normal
func (o *Face) Polygon(defl float64) (p2 []v2.Vec, p3 []v3.Vec) {
	p3 = o.Wire.Sample(defl)
	p3 = dedupLoop(p3)
	p2 = make([]v2.Vec, len(p3))
	for i, p := range p3 {
		p2[i] = o.toPlane(p)
	}
	if polyArea(p2) < 0 {
		for i, j := 0, len(p2)-1; i < j; i, j = i+1, j-1 {
			p2[i], p2[j] = p2[j], p2[i]
			p3[i], p3[j] = p3[j], p3[i]
		}
	}
	return
}

// dedupLoop removes consecutive duplicates and a trailing point equal to the start
func dedupLoop(pts []v3.Vec) (out []v3.Vec) {
	for _, p := range pts {
		if len(out) > 0 && p.Sub(out[len(out)-1]).Length() < geo.TolConnect {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1].Sub(out[0]).Length() < geo.TolConnect {
		out = out[:len(out)-1]
	}
	return
}

// polyArea returns the signed area of a 2D polygon
func polyArea(p []v2.Vec) (a float64) {
	for i := 0; i < len(p); i++ {
		q := p[(i+1)%len(p)]
		a += p[i].X*q.Y - q.X*p[i].Y
	}
	return a / 2
}
