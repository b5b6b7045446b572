// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sketch implements sketch planes, 2D sketch elements and their
// assembly into wires and faces
package sketch

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gocad/geo"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// PlaneKind distinguishes the canonical planes from custom ones
type PlaneKind int

// plane kinds
const (
	PlaneXY PlaneKind = iota
	PlaneXZ
	PlaneYZ
	PlaneCustom
)

// String returns the kind name as used in payloads
func (o PlaneKind) String() string {
	switch o {
	case PlaneXY:
		return "XY"
	case PlaneXZ:
		return "XZ"
	case PlaneYZ:
		return "YZ"
	}
	return "Custom"
}

// PlaneKindFromString parses a plane kind name
func PlaneKindFromString(s string) (k PlaneKind, err error) {
	switch s {
	case "XY":
		k = PlaneXY
	case "XZ":
		k = PlaneXZ
	case "YZ":
		k = PlaneYZ
	case "Custom":
		k = PlaneCustom
	default:
		err = chk.Err("unknown plane type %q", s)
	}
	return
}

// Plane is an oriented 2D frame embedded in 3D. The axes form a right-handed
// orthonormal basis: |u|=|v|=|n|=1, u·v=v·n=n·u=0, u×v=n
type Plane struct {
	Id     string
	Kind   PlaneKind
	Origin v3.Vec
	Normal v3.Vec
	UAxis  v3.Vec
	VAxis  v3.Vec
}

// NewPlane creates a canonical plane with fixed axes
func NewPlane(id string, kind PlaneKind, origin v3.Vec) (o *Plane) {
	o = &Plane{Id: id, Kind: kind, Origin: origin}
	switch kind {
	case PlaneXY:
		o.UAxis = v3.Vec{X: 1}
		o.VAxis = v3.Vec{Y: 1}
		o.Normal = v3.Vec{Z: 1}
	case PlaneXZ:
		o.UAxis = v3.Vec{X: 1}
		o.VAxis = v3.Vec{Z: 1}
		o.Normal = v3.Vec{Y: 1}
	case PlaneYZ:
		o.UAxis = v3.Vec{Y: 1}
		o.VAxis = v3.Vec{Z: 1}
		o.Normal = v3.Vec{X: 1}
	default:
		chk.Panic("NewPlane cannot handle kind %q; use NewCustomPlane", kind)
	}
	return
}

// NewCustomPlane creates a plane from an origin and a normal. The u axis is
// normal×Z, or normal×X when the normal is close to Z
func NewCustomPlane(id string, origin, normal v3.Vec) (o *Plane, err error) {
	if normal.Length() < 1e-9 {
		err = chk.Err("plane normal is degenerate")
		return
	}
	n := geo.Unit3(normal)
	ref := v3.Vec{Z: 1}
	if math.Abs(n.Dot(ref)) > 0.9 {
		ref = v3.Vec{X: 1}
	}
	u := geo.Unit3(n.Cross(ref))
	o = &Plane{
		Id:     id,
		Kind:   PlaneCustom,
		Origin: origin,
		Normal: n,
		UAxis:  u,
		VAxis:  n.Cross(u),
	}
	return
}

// ToWorld maps a 2D sketch point to world coordinates
func (o *Plane) ToWorld(p v2.Vec) v3.Vec {
	return o.Origin.Add(o.UAxis.MulScalar(p.X)).Add(o.VAxis.MulScalar(p.Y))
}

// ToSketch maps a world point to the sketch frame
func (o *Plane) ToSketch(p v3.Vec) v2.Vec {
	d := p.Sub(o.Origin)
	return v2.Vec{X: d.Dot(o.UAxis), Y: d.Dot(o.VAxis)}
}

// CheckBasis verifies the right-handed orthonormal basis invariant
func (o *Plane) CheckBasis(tol float64) (err error) {
	if math.Abs(o.UAxis.Length()-1) > tol || math.Abs(o.VAxis.Length()-1) > tol || math.Abs(o.Normal.Length()-1) > tol {
		return chk.Err("plane %q: axes are not unit vectors", o.Id)
	}
	if math.Abs(o.UAxis.Dot(o.VAxis)) > tol || math.Abs(o.VAxis.Dot(o.Normal)) > tol || math.Abs(o.Normal.Dot(o.UAxis)) > tol {
		return chk.Err("plane %q: axes are not orthogonal", o.Id)
	}
	if o.UAxis.Cross(o.VAxis).Sub(o.Normal).Length() > tol {
		return chk.Err("plane %q: basis is not right-handed", o.Id)
	}
	return
}
