// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"math"

	"github.com/cpmech/gocad/fault"
	"github.com/cpmech/gocad/geo"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// how far past a segment the carrier intersection may lie, as a fraction of
// the segment length
const cornerReach = 0.5

// corner holds the resolved geometry of two lines meeting at an intersection
type corner struct {
	la, lb *Element
	ipt    v2.Vec // carrier intersection
	da, db v2.Vec // unit directions away from the intersection, toward the far endpoints
	fa, fb v2.Vec // far endpoints (the ones kept by trimming)
}

// resolveCorner intersects the carriers of two lines and orients them away
// from the intersection
func (o *Sketch) resolveCorner(lineA, lineB, parallelCode, infeasCode string) (c corner, err error) {
	c.la, err = o.GetLine(lineA)
	if err != nil {
		return
	}
	c.lb, err = o.GetLine(lineB)
	if err != nil {
		return
	}
	p, ta, tb, ok := geo.SegSegIntersection(c.la.Start(), c.la.End(), c.lb.Start(), c.lb.End())
	if !ok {
		err = fault.New(parallelCode, "lines %q and %q are parallel", lineA, lineB)
		return
	}
	if ta < -cornerReach || ta > 1+cornerReach || tb < -cornerReach || tb > 1+cornerReach {
		err = fault.New(infeasCode, "lines %q and %q do not meet near their extents", lineA, lineB)
		return
	}
	c.ipt = p

	// far endpoint of each line: the endpoint farther from the intersection
	c.fa = farEndpoint(c.la, p)
	c.fb = farEndpoint(c.lb, p)
	c.da = geo.Unit2(c.fa.Sub(p))
	c.db = geo.Unit2(c.fb.Sub(p))
	return
}

func farEndpoint(e *Element, p v2.Vec) v2.Vec {
	if geo.Dist2(e.Start(), p) > geo.Dist2(e.End(), p) {
		return e.Start()
	}
	return e.End()
}

// trimToward replaces the endpoint of e nearer to p with t
func trimToward(e *Element, p, t v2.Vec) {
	if geo.Dist2(e.Start(), p) < geo.Dist2(e.End(), p) {
		e.X1, e.Y1 = t.X, t.Y
		return
	}
	e.X2, e.Y2 = t.X, t.Y
}

// AddFillet rounds the corner between two lines with an arc of radius r. Both
// lines are trimmed so their near-intersection endpoints become the tangent
// points; the arc is appended as a fillet element referencing the lines
func (o *Sketch) AddFillet(lineA, lineB string, r float64) (e *Element, err error) {
	if r <= 0 {
		err = fault.New(fault.InvalidArgs, "fillet radius must be positive (%g)", r)
		return
	}
	c, err := o.resolveCorner(lineA, lineB, fault.FilletParallelLines, fault.FilletInfeasible)
	if err != nil {
		return
	}

	// center along the bisector
	theta := geo.Angle2(c.da, c.db)
	if theta < 1e-9 || math.Pi-theta < 1e-9 {
		err = fault.New(fault.FilletParallelLines, "lines %q and %q are parallel", lineA, lineB)
		return
	}
	bis := geo.Unit2(c.da.Add(c.db))
	center := c.ipt.Add(bis.MulScalar(r / math.Sin(theta/2)))

	// tangent points: feet of the perpendiculars from the center
	t1 := geo.ProjectPointOnLine(center, c.ipt, c.da)
	t2 := geo.ProjectPointOnLine(center, c.ipt, c.db)

	// tangent points must not overshoot the far endpoints
	reach := r / math.Tan(theta/2)
	if reach > geo.Dist2(c.ipt, c.fa) || reach > geo.Dist2(c.ipt, c.fb) {
		err = fault.New(fault.FilletInfeasible, "fillet radius %g does not fit on lines %q and %q", r, lineA, lineB)
		return
	}

	// minor arc from t1 to t2
	a1 := geo.AngleOn(center, t1)
	a2 := geo.AngleOn(center, t2)
	a0, ae := a1, a2
	if geo.SweepCCW(a1, a2) > math.Pi {
		a0, ae = a2, a1
	}

	e = &Element{
		Id: o.nextId(KindFillet), Kind: KindFillet,
		Cx: center.X, Cy: center.Y, R: r, A0: a0, A1: ae,
		X1: t1.X, Y1: t1.Y, X2: t2.X, Y2: t2.Y,
		RefElems: []string{c.la.Id, c.lb.Id},
	}

	// commit: trim both lines, then append
	trimToward(c.la, c.ipt, t1)
	trimToward(c.lb, c.ipt, t2)
	o.insert(e)
	return
}

// AddChamfer bevels the corner between two lines with a straight segment at
// offset distance d from the intersection. Both lines are trimmed as in AddFillet
func (o *Sketch) AddChamfer(lineA, lineB string, d float64) (e *Element, err error) {
	if d <= 0 {
		err = fault.New(fault.InvalidArgs, "chamfer distance must be positive (%g)", d)
		return
	}
	c, err := o.resolveCorner(lineA, lineB, fault.ChamferInfeasible, fault.ChamferInfeasible)
	if err != nil {
		return
	}
	if d > geo.Dist2(c.ipt, c.fa) || d > geo.Dist2(c.ipt, c.fb) {
		err = fault.New(fault.ChamferInfeasible, "chamfer distance %g does not fit on lines %q and %q", d, lineA, lineB)
		return
	}
	t1 := c.ipt.Add(c.da.MulScalar(d))
	t2 := c.ipt.Add(c.db.MulScalar(d))

	e = &Element{
		Id: o.nextId(KindChamfer), Kind: KindChamfer,
		X1: t1.X, Y1: t1.Y, X2: t2.X, Y2: t2.Y, D: d,
		RefElems: []string{c.la.Id, c.lb.Id},
	}
	trimToward(c.la, c.ipt, t1)
	trimToward(c.lb, c.ipt, t2)
	o.insert(e)
	return
}
