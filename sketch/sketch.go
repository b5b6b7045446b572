// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"math"
	"time"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocad/fault"
	"github.com/cpmech/gocad/geo"
)

// Sketch is an ordered collection of elements on a plane
type Sketch struct {
	Id    string
	Plane *Plane

	// elements in insertion order
	Order []string
	Elems map[string]*Element

	// Clock supplies the timestamp suffix of element identifiers; replaced in
	// tests for determinism
	Clock func() time.Time

	counts map[Kind]int
}

// NewSketch creates an empty sketch on a plane
func NewSketch(id string, plane *Plane) (o *Sketch) {
	return &Sketch{
		Id:     id,
		Plane:  plane,
		Elems:  make(map[string]*Element),
		Clock:  time.Now,
		counts: make(map[Kind]int),
	}
}

// NumElements returns the number of elements (containers included)
func (o *Sketch) NumElements() int {
	return len(o.Order)
}

// Get returns an element by id
func (o *Sketch) Get(id string) (e *Element, err error) {
	e, ok := o.Elems[id]
	if !ok {
		err = fault.New(fault.NotFoundElement, "cannot find element %q in sketch %q", id, o.Id)
	}
	return
}

// GetLine returns a line element by id
func (o *Sketch) GetLine(id string) (e *Element, err error) {
	e, err = o.Get(id)
	if err != nil {
		return
	}
	if e.Kind != KindLine {
		err = fault.New(fault.InvariantViolated, "element %q is a %v, not a line", id, e.Kind)
	}
	return
}

// nextId allocates an element identifier: {kind}_{count}_{ms mod 10000}
func (o *Sketch) nextId(kind Kind) string {
	o.counts[kind]++
	ms := o.Clock().UnixMilli() % 10000
	return io.Sf("%v_%d_%d", kind, o.counts[kind], ms)
}

// insert appends an element
func (o *Sketch) insert(e *Element) {
	o.Elems[e.Id] = e
	o.Order = append(o.Order, e.Id)
}

// AddLine adds a line element
func (o *Sketch) AddLine(x1, y1, x2, y2 float64) (e *Element, err error) {
	if x1 == x2 && y1 == y2 {
		err = fault.New(fault.InvalidArgs, "line endpoints coincide")
		return
	}
	e = &Element{Id: o.nextId(KindLine), Kind: KindLine, X1: x1, Y1: y1, X2: x2, Y2: y2}
	o.insert(e)
	return
}

// AddCircle adds a circle element
func (o *Sketch) AddCircle(cx, cy, r float64) (e *Element, err error) {
	if r <= 0 {
		err = fault.New(fault.InvalidArgs, "circle radius must be positive (%g)", r)
		return
	}
	e = &Element{Id: o.nextId(KindCircle), Kind: KindCircle, Cx: cx, Cy: cy, R: r}
	o.insert(e)
	return
}

// AddArc3P adds an arc through three points. The sweep is stored so the arc
// runs counter-clockwise from A0 to A1 passing through the mid point
func (o *Sketch) AddArc3P(x1, y1, xm, ym, x2, y2 float64) (e *Element, err error) {
	p1 := pt(x1, y1)
	pm := pt(xm, ym)
	p2 := pt(x2, y2)
	c, r, cerr := geo.CircleFrom3Points(p1, pm, p2)
	if cerr != nil {
		err = fault.New(fault.ArcInfeasible, "cannot build arc: %v", cerr)
		return
	}
	a1 := geo.AngleOn(c, p1)
	am := geo.AngleOn(c, pm)
	a2 := geo.AngleOn(c, p2)

	// orientation such that the swept arc passes through the mid point
	a0, ae := a1, a2
	if geo.SweepCCW(a1, am) > geo.SweepCCW(a1, a2) {
		a0, ae = a2, a1
	}
	e = &Element{
		Id: o.nextId(KindArc), Kind: KindArc,
		Cx: c.X, Cy: c.Y, R: r, A0: a0, A1: ae,
		X1: x1, Y1: y1, Xm: xm, Ym: ym, X2: x2, Y2: y2,
	}
	o.insert(e)
	return
}

// AddArcEndpointsRadius adds an arc from two endpoints and a radius, selecting
// the center that yields the minor arc
func (o *Sketch) AddArcEndpointsRadius(x1, y1, x2, y2, r float64) (e *Element, err error) {
	if r <= 0 {
		err = fault.New(fault.InvalidArgs, "arc radius must be positive (%g)", r)
		return
	}
	p1 := pt(x1, y1)
	p2 := pt(x2, y2)
	c1, c2, cerr := geo.ArcCentersFromEndpoints(p1, p2, r)
	if cerr != nil {
		err = fault.New(fault.ArcInfeasible, "cannot build arc: %v", cerr)
		return
	}

	// the minor arc runs ccw from p1 to p2 about exactly one of the candidates
	c := c1
	if geo.SweepCCW(geo.AngleOn(c1, p1), geo.AngleOn(c1, p2)) > math.Pi {
		c = c2
	}
	a0 := geo.AngleOn(c, p1)
	a1 := geo.AngleOn(c, p2)
	e = &Element{
		Id: o.nextId(KindArc), Kind: KindArc,
		Cx: c.X, Cy: c.Y, R: r, A0: a0, A1: a1,
		X1: x1, Y1: y1, X2: x2, Y2: y2,
	}
	o.insert(e)
	return
}

// AddRectangle adds a rectangle: a container parent plus four line children
// named {id}_line_bottom|right|top|left. The insert is atomic
func (o *Sketch) AddRectangle(x, y, w, h float64) (parent *Element, children []*Element, err error) {
	if w <= 0 || h <= 0 {
		err = fault.New(fault.InvalidArgs, "rectangle width and height must be positive (%g, %g)", w, h)
		return
	}
	parent = &Element{
		Id: o.nextId(KindRectangle), Kind: KindRectangle,
		X1: x, Y1: y, W: w, H: h,
		IsCompositeParent: true, IsContainerOnly: true,
	}
	names := []string{"bottom", "right", "top", "left"}
	coords := [][4]float64{
		{x, y, x + w, y},
		{x + w, y, x + w, y + h},
		{x + w, y + h, x, y + h},
		{x, y + h, x, y},
	}
	for i, name := range names {
		c := coords[i]
		child := &Element{
			Id: io.Sf("%s_line_%s", parent.Id, name), Kind: KindLine,
			X1: c[0], Y1: c[1], X2: c[2], Y2: c[3],
			ParentId: parent.Id,
		}
		parent.ChildIds = append(parent.ChildIds, child.Id)
		children = append(children, child)
	}
	o.insert(parent)
	for _, c := range children {
		o.insert(c)
	}
	return
}

// AddPolygon adds a regular polygon: a container parent plus Sides line
// children named {id}_line_{i} forming a closed loop. The insert is atomic
func (o *Sketch) AddPolygon(cx, cy float64, sides int, r float64) (parent *Element, children []*Element, err error) {
	if sides < 3 {
		err = fault.New(fault.InvalidArgs, "polygon needs at least 3 sides (%d)", sides)
		return
	}
	if r <= 0 {
		err = fault.New(fault.InvalidArgs, "polygon circumradius must be positive (%g)", r)
		return
	}
	parent = &Element{
		Id: o.nextId(KindPolygon), Kind: KindPolygon,
		Cx: cx, Cy: cy, Sides: sides, R: r,
		IsCompositeParent: true, IsContainerOnly: true,
	}
	for i := 0; i < sides; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(sides)
		a1 := 2 * math.Pi * float64(i+1) / float64(sides)
		child := &Element{
			Id: io.Sf("%s_line_%d", parent.Id, i), Kind: KindLine,
			X1: cx + r*math.Cos(a0), Y1: cy + r*math.Sin(a0),
			X2: cx + r*math.Cos(a1), Y2: cy + r*math.Sin(a1),
			ParentId: parent.Id,
		}
		parent.ChildIds = append(parent.ChildIds, child.Id)
		children = append(children, child)
	}
	o.insert(parent)
	for _, c := range children {
		o.insert(c)
	}
	return
}

// Update modifies an element through a callback operating on a staged copy;
// the copy replaces the original only when the callback succeeds
func (o *Sketch) Update(id string, apply func(e *Element) error) (err error) {
	e, err := o.Get(id)
	if err != nil {
		return
	}
	staged := *e
	staged.ChildIds = append([]string(nil), e.ChildIds...)
	staged.RefElems = append([]string(nil), e.RefElems...)
	if err = apply(&staged); err != nil {
		return
	}
	o.Elems[id] = &staged
	return
}

// Delete removes an element. Composites are deleted as a unit: passing either
// the parent or one of its children removes the parent and all children.
// Fillets and chamfers referencing a deleted line are removed as well
func (o *Sketch) Delete(id string) (removed []string, err error) {
	e, err := o.Get(id)
	if err != nil {
		return
	}

	// resolve to composite root
	if e.ParentId != "" {
		if p, ok := o.Elems[e.ParentId]; ok {
			e = p
		}
	}

	// the element, its children, and referencing fillets/chamfers
	doomed := map[string]bool{e.Id: true}
	for _, cid := range e.ChildIds {
		doomed[cid] = true
	}
	for _, id2 := range o.Order {
		e2 := o.Elems[id2]
		if e2.Kind != KindFillet && e2.Kind != KindChamfer {
			continue
		}
		for _, ref := range e2.RefElems {
			if doomed[ref] {
				doomed[id2] = true
			}
		}
	}

	var order []string
	for _, id2 := range o.Order {
		if doomed[id2] {
			removed = append(removed, id2)
			delete(o.Elems, id2)
			continue
		}
		order = append(order, id2)
	}
	o.Order = order
	return
}

// Validate checks the sketch invariants: children point at existing composite
// parents which list them back, and fillet/chamfer references resolve to lines
func (o *Sketch) Validate() (err error) {
	for _, id := range o.Order {
		e := o.Elems[id]
		if e.ParentId != "" {
			p, ok := o.Elems[e.ParentId]
			if !ok {
				return fault.New(fault.InvariantViolated, "element %q references missing parent %q", id, e.ParentId)
			}
			if !p.IsCompositeParent {
				return fault.New(fault.InvariantViolated, "parent %q of %q is not a composite", p.Id, id)
			}
			listed := false
			for _, cid := range p.ChildIds {
				if cid == id {
					listed = true
					break
				}
			}
			if !listed {
				return fault.New(fault.InvariantViolated, "parent %q does not list child %q", p.Id, id)
			}
		}
		if e.Kind == KindFillet || e.Kind == KindChamfer {
			if len(e.RefElems) != 2 {
				return fault.New(fault.InvariantViolated, "%v %q must reference two lines", e.Kind, id)
			}
			for _, ref := range e.RefElems {
				r, ok := o.Elems[ref]
				if !ok {
					return fault.New(fault.InvariantViolated, "%v %q references missing element %q", e.Kind, id, ref)
				}
				if r.Kind != KindLine {
					return fault.New(fault.InvariantViolated, "%v %q references %q which is not a line", e.Kind, id, ref)
				}
			}
		}
	}
	return
}

// HasFilletsOrChamfers reports whether any fillet/chamfer exists
func (o *Sketch) HasFilletsOrChamfers() bool {
	for _, id := range o.Order {
		k := o.Elems[id].Kind
		if k == KindFillet || k == KindChamfer {
			return true
		}
	}
	return false
}
