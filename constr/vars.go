// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constr

import (
	"math"

	"github.com/cpmech/gocad/fault"
	"github.com/cpmech/gocad/sketch"
)

// endpoint sharing tolerance when merging composite-child variables
const shareTol = 1e-9

// pointRef addresses the (x,y) variable pair of one endpoint
type pointRef struct {
	ix, iy int
}

// lineRef holds the variable pairs of a line's endpoints
type lineRef struct {
	p1, p2 pointRef
}

// circleRef holds the variables of a circle (cx,cy,r) or arc (cx,cy,r,a0,a1)
type circleRef struct {
	icx, icy, ir   int
	ia0, ia1       int
	isArc          bool
}

// varSys maps sketch elements to solver variables and back. Endpoints shared
// between the children of one composite map to the same variable pair, so the
// solver sees the composite as a connected polyline
type varSys struct {
	sk      *sketch.Sketch
	x       []float64
	lines   map[string]*lineRef
	circles map[string]*circleRef
}

// newVarSys collects variables for the elements targeted by the constraints.
// When a composite child is targeted, all children of that composite join the
// system so shared endpoints stay welded
func newVarSys(sk *sketch.Sketch, cons []*Constraint) (o *varSys, err error) {
	o = &varSys{
		sk:      sk,
		lines:   make(map[string]*lineRef),
		circles: make(map[string]*circleRef),
	}

	// element set: targets plus composite siblings
	want := make(map[string]bool)
	add := func(id string) error {
		e, gerr := sk.Get(id)
		if gerr != nil {
			return gerr
		}
		if e.IsContainerOnly {
			for _, cid := range e.ChildIds {
				want[cid] = true
			}
			return nil
		}
		want[id] = true
		if e.ParentId != "" {
			p, gerr := sk.Get(e.ParentId)
			if gerr != nil {
				return gerr
			}
			for _, cid := range p.ChildIds {
				want[cid] = true
			}
		}
		return nil
	}
	for _, c := range cons {
		for _, id := range c.Targets {
			if err = add(id); err != nil {
				return
			}
		}
	}

	// allocate variables in sketch insertion order for determinism
	for _, id := range sk.Order {
		if !want[id] {
			continue
		}
		e := sk.Elems[id]
		switch e.Kind {
		case sketch.KindLine, sketch.KindChamfer:
			lr := &lineRef{
				p1: o.pointVar(e, e.X1, e.Y1),
				p2: o.pointVar(e, e.X2, e.Y2),
			}
			o.lines[id] = lr
			e.ConstraintVars = []int{lr.p1.ix, lr.p1.iy, lr.p2.ix, lr.p2.iy}
		case sketch.KindCircle:
			cr := &circleRef{icx: o.scalarVar(e.Cx), icy: o.scalarVar(e.Cy), ir: o.scalarVar(e.R)}
			o.circles[id] = cr
			e.ConstraintVars = []int{cr.icx, cr.icy, cr.ir}
		case sketch.KindArc:
			cr := &circleRef{
				icx: o.scalarVar(e.Cx), icy: o.scalarVar(e.Cy), ir: o.scalarVar(e.R),
				ia0: o.scalarVar(e.A0), ia1: o.scalarVar(e.A1), isArc: true,
			}
			o.circles[id] = cr
			e.ConstraintVars = []int{cr.icx, cr.icy, cr.ir, cr.ia0, cr.ia1}
		default:
			err = fault.New(fault.InvariantViolated, "cannot constrain element %q of kind %v", id, e.Kind)
			return
		}
	}
	return
}

// pointVar allocates (or reuses) the variable pair of an endpoint. Reuse
// happens for coincident endpoints among children of the same composite
func (o *varSys) pointVar(e *sketch.Element, x, y float64) pointRef {
	if e.ParentId != "" {
		for sid, lr := range o.lines {
			se := o.sk.Elems[sid]
			if se == nil || se.ParentId != e.ParentId {
				continue
			}
			for _, p := range []pointRef{lr.p1, lr.p2} {
				if math.Abs(o.x[p.ix]-x) < shareTol && math.Abs(o.x[p.iy]-y) < shareTol {
					return p
				}
			}
		}
	}
	return pointRef{ix: o.scalarVar(x), iy: o.scalarVar(y)}
}

func (o *varSys) scalarVar(v float64) int {
	o.x = append(o.x, v)
	return len(o.x) - 1
}

// lineOf returns the variable mapping of a line-like target
func (o *varSys) lineOf(id string) (lr *lineRef, err error) {
	lr, ok := o.lines[id]
	if !ok {
		err = fault.New(fault.InvariantViolated, "constraint target %q is not a line in the variable system", id)
	}
	return
}

// end returns the endpoint variable pair (0 = start, 1 = end)
func (o *lineRef) end(which int) pointRef {
	if which == 0 {
		return o.p1
	}
	return o.p2
}

// writeBack copies solved values into the sketch elements
func (o *varSys) writeBack(x []float64) {
	for id, lr := range o.lines {
		e := o.sk.Elems[id]
		e.X1, e.Y1 = x[lr.p1.ix], x[lr.p1.iy]
		e.X2, e.Y2 = x[lr.p2.ix], x[lr.p2.iy]
	}
	for id, cr := range o.circles {
		e := o.sk.Elems[id]
		e.Cx, e.Cy, e.R = x[cr.icx], x[cr.icy], x[cr.ir]
		if cr.isArc {
			e.A0, e.A1 = x[cr.ia0], x[cr.ia1]
		}
	}
}
