// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gocad/geo"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Kind tags the variant of a sketch element
type Kind int

// element kinds
const (
	KindLine Kind = iota
	KindCircle
	KindArc
	KindRectangle
	KindPolygon
	KindFillet
	KindChamfer
)

// String returns the kind name as used in identifiers and payloads
func (o Kind) String() string {
	switch o {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	case KindRectangle:
		return "rectangle"
	case KindPolygon:
		return "polygon"
	case KindFillet:
		return "fillet"
	case KindChamfer:
		return "chamfer"
	}
	return "unknown"
}

// KindFromString parses an element kind name
func KindFromString(s string) (k Kind, err error) {
	switch s {
	case "line":
		k = KindLine
	case "circle":
		k = KindCircle
	case "arc":
		k = KindArc
	case "rectangle":
		k = KindRectangle
	case "polygon":
		k = KindPolygon
	case "fillet":
		k = KindFillet
	case "chamfer":
		k = KindChamfer
	default:
		err = chk.Err("unknown element type %q", s)
	}
	return
}

// curveSegs is the fixed segment count for visualization sampling of curved elements
const curveSegs = 16

// Element is a tagged-variant sketch primitive. The 2D parameters are flat
// per-kind fields:
//  line      -- X1,Y1 → X2,Y2
//  circle    -- center (Cx,Cy), radius R
//  arc       -- center (Cx,Cy), radius R, sweep A0→A1 (ccw), defining points X1,Y1 / Xm,Ym / X2,Y2
//  rectangle -- corner (X1,Y1), width W, height H; container for 4 line children
//  polygon   -- center (Cx,Cy), Sides, circumradius R; container for Sides line children
//  fillet    -- arc of circle (Cx,Cy,R) between tangent points (X1,Y1) and (X2,Y2)
//  chamfer   -- line from (X1,Y1) to (X2,Y2), offset distance D
type Element struct {
	Id   string
	Kind Kind

	// parameters (per kind; see above)
	X1, Y1 float64
	X2, Y2 float64
	Xm, Ym float64
	Cx, Cy float64
	R      float64
	A0, A1 float64
	W, H   float64
	Sides  int
	D      float64

	// composite bookkeeping
	IsCompositeParent bool
	IsContainerOnly   bool
	ParentId          string
	ChildIds          []string

	// fillet/chamfer references (the two joined lines)
	RefElems []string

	// solver bookkeeping
	ConstraintVars []int
}

// Start returns the first endpoint of a line-like element
func (o *Element) Start() v2.Vec {
	return v2.Vec{X: o.X1, Y: o.Y1}
}

// End returns the second endpoint of a line-like element
func (o *Element) End() v2.Vec {
	return v2.Vec{X: o.X2, Y: o.Y2}
}

// Center returns the center of a circle/arc/fillet/polygon element
func (o *Element) Center() v2.Vec {
	return v2.Vec{X: o.Cx, Y: o.Cy}
}

// Length returns the length of a line-like element
func (o *Element) Length() float64 {
	return geo.Dist2(o.Start(), o.End())
}

// Dir returns the unit direction of a line-like element
func (o *Element) Dir() v2.Vec {
	return geo.Unit2(o.End().Sub(o.Start()))
}

// Points2D samples the element in sketch coordinates for visualization:
// 2 points for lines, 17 for closed circles (first point repeated), 17 over
// the sweep for arcs and fillets. Container elements yield no points
func (o *Element) Points2D() (points []v2.Vec) {
	switch o.Kind {
	case KindLine, KindChamfer:
		points = []v2.Vec{o.Start(), o.End()}
	case KindCircle:
		for i := 0; i <= curveSegs; i++ {
			a := 2 * math.Pi * float64(i) / curveSegs
			points = append(points, v2.Vec{X: o.Cx + o.R*math.Cos(a), Y: o.Cy + o.R*math.Sin(a)})
		}
	case KindArc, KindFillet:
		sweep := geo.SweepCCW(o.A0, o.A1)
		for i := 0; i <= curveSegs; i++ {
			a := o.A0 + sweep*float64(i)/curveSegs
			points = append(points, v2.Vec{X: o.Cx + o.R*math.Cos(a), Y: o.Cy + o.R*math.Sin(a)})
		}
	}
	return
}

// ProducesEdge tells whether the element contributes edges to wires
func (o *Element) ProducesEdge() bool {
	return !o.IsContainerOnly
}

func pt(x, y float64) v2.Vec {
	return v2.Vec{X: x, Y: y}
}
