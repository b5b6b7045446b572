// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"math"
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gocad/fault"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// testSketch returns a sketch on the XY plane with a frozen clock
func testSketch() *Sketch {
	s := NewSketch("sketch_1", NewPlane("plane_1", PlaneXY, v3.Vec{}))
	s.Clock = func() time.Time { return time.UnixMilli(11234) }
	return s
}

func Test_sketch01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sketch01. identifiers and per-kind counters")

	s := testSketch()
	l1, err := s.AddLine(0, 0, 1, 0)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	l2, _ := s.AddLine(1, 0, 1, 1)
	c1, _ := s.AddCircle(0, 0, 2)
	chk.StrAssert(l1.Id, "line_1_1234")
	chk.StrAssert(l2.Id, "line_2_1234")
	chk.StrAssert(c1.Id, "circle_1_1234")
}

func Test_sketch02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sketch02. rectangle decomposition")

	s := testSketch()
	parent, children, err := s.AddRectangle(0, 0, 10, 5)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.StrAssert(parent.Id, "rectangle_1_1234")
	if !parent.IsCompositeParent || !parent.IsContainerOnly {
		tst.Errorf("parent must be container-only composite\n")
	}
	names := []string{"bottom", "right", "top", "left"}
	for i, c := range children {
		chk.StrAssert(c.Id, "rectangle_1_1234_line_"+names[i])
		chk.StrAssert(c.ParentId, parent.Id)
	}

	// bottom edge spans the width
	chk.Scalar(tst, "bottom x1", 1e-17, children[0].X1, 0)
	chk.Scalar(tst, "bottom x2", 1e-17, children[0].X2, 10)
	chk.Scalar(tst, "left y2", 1e-17, children[3].Y2, 0)

	if err := s.Validate(); err != nil {
		tst.Errorf("%v\n", err)
	}
	if !s.ChildBoundaryClosed(parent) {
		tst.Errorf("rectangle boundary must be closed\n")
	}
}

func Test_sketch03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sketch03. polygon decomposition and closed boundary")

	s := testSketch()
	parent, children, err := s.AddPolygon(1, 2, 6, 3)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.IntAssert(len(children), 6)
	chk.IntAssert(len(parent.ChildIds), 6)

	// children chain head-to-tail
	for i := 0; i < 6; i++ {
		next := children[(i+1)%6]
		chk.Scalar(tst, "chain x", 1e-14, children[i].X2, next.X1)
		chk.Scalar(tst, "chain y", 1e-14, children[i].Y2, next.Y1)
	}
	if !s.ChildBoundaryClosed(parent) {
		tst.Errorf("polygon boundary must be closed\n")
	}

	// too few sides
	_, _, err = s.AddPolygon(0, 0, 2, 1)
	if !fault.Is(err, fault.InvalidArgs) {
		tst.Errorf("expected InvalidArgs, got %v\n", err)
	}
}

func Test_sketch04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sketch04. fillet trims both lines")

	s := testSketch()
	l1, _ := s.AddLine(0, 0, 10, 0)
	l2, _ := s.AddLine(10, 0, 10, 10)
	f, err := s.AddFillet(l1.Id, l2.Id, 2)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// L1 trimmed to (0,0)→(8,0); opposite endpoint untouched
	chk.Scalar(tst, "l1 x1", 1e-17, l1.X1, 0)
	chk.Scalar(tst, "l1 y1", 1e-17, l1.Y1, 0)
	chk.Scalar(tst, "l1 x2", 1e-14, l1.X2, 8)
	chk.Scalar(tst, "l1 y2", 1e-14, l1.Y2, 0)

	// L2 trimmed to (10,2)→(10,10)
	chk.Scalar(tst, "l2 x1", 1e-14, l2.X1, 10)
	chk.Scalar(tst, "l2 y1", 1e-14, l2.Y1, 2)
	chk.Scalar(tst, "l2 x2", 1e-17, l2.X2, 10)
	chk.Scalar(tst, "l2 y2", 1e-17, l2.Y2, 10)

	// fillet arc: center (8,2), tangents (8,0) and (10,2), radius 2
	chk.Scalar(tst, "center x", 1e-14, f.Cx, 8)
	chk.Scalar(tst, "center y", 1e-14, f.Cy, 2)
	chk.Scalar(tst, "radius", 1e-17, f.R, 2)
	chk.Scalar(tst, "t1 x", 1e-14, f.X1, 8)
	chk.Scalar(tst, "t1 y", 1e-14, f.Y1, 0)
	chk.Scalar(tst, "t2 x", 1e-14, f.X2, 10)
	chk.Scalar(tst, "t2 y", 1e-14, f.Y2, 2)
	chk.Strings(tst, "refs", f.RefElems, []string{l1.Id, l2.Id})

	// |tangent - center| == radius
	chk.Scalar(tst, "|t1-c|", 1e-7, math.Hypot(f.X1-f.Cx, f.Y1-f.Cy), 2)
	chk.Scalar(tst, "|t2-c|", 1e-7, math.Hypot(f.X2-f.Cx, f.Y2-f.Cy), 2)

	if err := s.Validate(); err != nil {
		tst.Errorf("%v\n", err)
	}
}

func Test_sketch05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sketch05. parallel lines fillet fails, sketch untouched")

	s := testSketch()
	l1, _ := s.AddLine(0, 0, 10, 0)
	l2, _ := s.AddLine(0, 5, 10, 5)
	before := []float64{l1.X1, l1.Y1, l1.X2, l1.Y2, l2.X1, l2.Y1, l2.X2, l2.Y2}

	_, err := s.AddFillet(l1.Id, l2.Id, 2)
	if !fault.Is(err, fault.FilletParallelLines) {
		tst.Errorf("expected FilletParallelLines, got %v\n", err)
		return
	}
	after := []float64{l1.X1, l1.Y1, l1.X2, l1.Y2, l2.X1, l2.Y1, l2.X2, l2.Y2}
	chk.Vector(tst, "endpoints unchanged", 0, after, before)
	chk.IntAssert(s.NumElements(), 2)
}

func Test_sketch06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sketch06. fillet infeasibility")

	s := testSketch()

	// radius overshooting the far endpoints
	l1, _ := s.AddLine(0, 0, 3, 0)
	l2, _ := s.AddLine(3, 0, 3, 3)
	_, err := s.AddFillet(l1.Id, l2.Id, 5)
	if !fault.Is(err, fault.FilletInfeasible) {
		tst.Errorf("expected FilletInfeasible, got %v\n", err)
	}

	// carriers meeting far beyond the segments
	l3, _ := s.AddLine(0, 10, 0.5, 11)
	_, err = s.AddFillet(l1.Id, l3.Id, 0.1)
	if !fault.Is(err, fault.FilletInfeasible) {
		tst.Errorf("expected FilletInfeasible, got %v\n", err)
	}

	// referencing a circle
	c, _ := s.AddCircle(0, 0, 1)
	_, err = s.AddFillet(l1.Id, c.Id, 1)
	if !fault.Is(err, fault.InvariantViolated) {
		tst.Errorf("expected InvariantViolated, got %v\n", err)
	}
}

func Test_sketch07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sketch07. chamfer trims both lines")

	s := testSketch()
	l1, _ := s.AddLine(0, 0, 10, 0)
	l2, _ := s.AddLine(10, 0, 10, 10)
	ch, err := s.AddChamfer(l1.Id, l2.Id, 2)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Scalar(tst, "p1 x", 1e-14, ch.X1, 8)
	chk.Scalar(tst, "p1 y", 1e-14, ch.Y1, 0)
	chk.Scalar(tst, "p2 x", 1e-14, ch.X2, 10)
	chk.Scalar(tst, "p2 y", 1e-14, ch.Y2, 2)
	chk.Scalar(tst, "l1 x2", 1e-14, l1.X2, 8)
	chk.Scalar(tst, "l2 y1", 1e-14, l2.Y1, 2)

	// distance too large
	s2 := testSketch()
	m1, _ := s2.AddLine(0, 0, 1, 0)
	m2, _ := s2.AddLine(1, 0, 1, 1)
	_, err = s2.AddChamfer(m1.Id, m2.Id, 5)
	if !fault.Is(err, fault.ChamferInfeasible) {
		tst.Errorf("expected ChamferInfeasible, got %v\n", err)
	}
}

func Test_sketch08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sketch08. arc through three points")

	s := testSketch()

	// upper half circle of radius 1 about origin
	a, err := s.AddArc3P(1, 0, 0, 1, -1, 0)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Scalar(tst, "cx", 1e-14, a.Cx, 0)
	chk.Scalar(tst, "cy", 1e-14, a.Cy, 0)
	chk.Scalar(tst, "r", 1e-14, a.R, 1)

	// the swept arc passes through the mid point
	pts := a.Points2D()
	chk.IntAssert(len(pts), 17)
	found := false
	for _, p := range pts {
		if math.Hypot(p.X-0, p.Y-1) < 1e-6 {
			found = true
		}
	}
	if !found {
		tst.Errorf("sampled arc must pass through mid point\n")
	}

	// collinear points
	_, err = s.AddArc3P(0, 0, 1, 1, 2, 2)
	if !fault.Is(err, fault.ArcInfeasible) {
		tst.Errorf("expected ArcInfeasible, got %v\n", err)
	}
}

func Test_sketch09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sketch09. arc from endpoints and radius picks the minor arc")

	s := testSketch()
	a, err := s.AddArcEndpointsRadius(-1, 0, 1, 0, math.Sqrt2)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// minor arc: sweep must be at most π
	sweep := a.A1 - a.A0
	for sweep < 0 {
		sweep += 2 * math.Pi
	}
	if sweep > math.Pi+1e-12 {
		tst.Errorf("expected minor arc, sweep = %g\n", sweep)
	}

	// infeasible radius
	_, err = s.AddArcEndpointsRadius(-1, 0, 1, 0, 0.5)
	if !fault.Is(err, fault.ArcInfeasible) {
		tst.Errorf("expected ArcInfeasible, got %v\n", err)
	}
}

func Test_sketch10(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sketch10. delete composite as a unit; cascade to fillets")

	s := testSketch()
	parent, children, _ := s.AddRectangle(0, 0, 4, 3)

	// deleting a child removes the whole composite
	removed, err := s.Delete(children[1].Id)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.IntAssert(len(removed), 5)
	chk.IntAssert(s.NumElements(), 0)
	if _, err := s.Get(parent.Id); err == nil {
		tst.Errorf("parent must be gone\n")
	}

	// deleting a line removes fillets referencing it
	l1, _ := s.AddLine(0, 0, 10, 0)
	l2, _ := s.AddLine(10, 0, 10, 10)
	f, _ := s.AddFillet(l1.Id, l2.Id, 1)
	removed, err = s.Delete(l1.Id)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Strings(tst, "removed", removed, []string{l1.Id, f.Id})
	if _, err := s.Get(l2.Id); err != nil {
		tst.Errorf("l2 must remain\n")
	}
}

func Test_sketch11(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sketch11. element visualization sampling")

	s := testSketch()
	l, _ := s.AddLine(0, 0, 3, 4)
	chk.IntAssert(len(l.Points2D()), 2)

	c, _ := s.AddCircle(1, 1, 2)
	pts := c.Points2D()
	chk.IntAssert(len(pts), 17)
	chk.Scalar(tst, "closure x", 1e-14, pts[0].X, pts[16].X)
	chk.Scalar(tst, "closure y", 1e-14, pts[0].Y, pts[16].Y)

	parent, _, _ := s.AddRectangle(0, 0, 1, 1)
	chk.IntAssert(len(parent.Points2D()), 0)
}

func Test_sketch12(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sketch12. staged update keeps the element on failure")

	s := testSketch()
	l, _ := s.AddLine(0, 0, 1, 0)
	err := s.Update(l.Id, func(e *Element) error {
		e.X2 = 99
		return fault.New(fault.InvalidArgs, "refused")
	})
	if err == nil {
		tst.Errorf("update must fail\n")
		return
	}
	chk.Scalar(tst, "x2 unchanged", 1e-17, l.X2, 1)

	err = s.Update(l.Id, func(e *Element) error {
		e.X2 = 5
		return nil
	})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	e, _ := s.Get(l.Id)
	chk.Scalar(tst, "x2 updated", 1e-17, e.X2, 5)
}
