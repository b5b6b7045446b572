// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocad/fault"
	"github.com/cpmech/gocad/sketch"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// CreatePlane creates a canonical or custom plane. The normal is only
// consulted for custom planes
func (o *Engine) CreatePlane(planeType string, origin v3.Vec, normal *v3.Vec) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	kind, err := sketch.PlaneKindFromString(planeType)
	if err != nil {
		return errResult(fault.New(fault.InvalidArgs, "%v", err), fault.InvalidArgs)
	}
	id := io.Sf("plane_%d", o.planeCount+1)

	var p *sketch.Plane
	if kind == sketch.PlaneCustom {
		if normal == nil {
			return errResult(fault.WithDetails(fault.InvalidArgs, []string{"normal_x", "normal_y", "normal_z"},
				"custom plane needs a normal"), fault.InvalidArgs)
		}
		p, err = sketch.NewCustomPlane(id, origin, *normal)
		if err != nil {
			return errResult(fault.New(fault.InvalidArgs, "%v", err), fault.InvalidArgs)
		}
	} else {
		p = sketch.NewPlane(id, kind, origin)
	}

	o.planeCount++
	o.planes[id] = p
	o.planeOrder = append(o.planeOrder, id)

	res := okResult(map[string]interface{}{"plane_id": id})
	res.Visualization = planeViz(p)
	return res
}

// DeletePlane removes a plane; refused while any sketch references it
func (o *Engine) DeletePlane(planeId string) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	p, err := o.plane(planeId)
	if err != nil {
		return errResult(err, fault.NotFoundPlane)
	}
	for _, sid := range o.sketchOrder {
		if o.sketches[sid].Plane.Id == p.Id {
			return errResult(fault.New(fault.InvariantViolated,
				"cannot delete plane %q: sketch %q references it", p.Id, sid), fault.InvariantViolated)
		}
	}
	delete(o.planes, p.Id)
	o.planeOrder = removeId(o.planeOrder, p.Id)
	return okResult(map[string]interface{}{"plane_id": p.Id})
}

// CreateSketch creates an empty sketch on a plane. Legacy plane aliases
// (XY_Plane, ...) are accepted
func (o *Engine) CreateSketch(planeId string) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	p, err := o.plane(planeId)
	if err != nil {
		return errResult(err, fault.NotFoundPlane)
	}
	o.sketchCount++
	id := io.Sf("sketch_%d", o.sketchCount)
	s := sketch.NewSketch(id, p)
	s.Clock = o.Now
	o.sketches[id] = s
	o.sketchOrder = append(o.sketchOrder, id)

	res := okResult(map[string]interface{}{"sketch_id": id, "plane_id": p.Id})
	res.Visualization = sketchViz(s)
	return res
}

// DeleteSketch removes a sketch, its elements and every constraint that
// references the sketch
func (o *Engine) DeleteSketch(sketchId string) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	s, err := o.sketchOf(sketchId)
	if err != nil {
		return errResult(err, fault.NotFoundSketch)
	}
	for _, c := range o.sketchCons(s.Id) {
		delete(o.cons, c.Id)
		o.consOrder = removeId(o.consOrder, c.Id)
	}
	delete(o.sketches, s.Id)
	o.sketchOrder = removeId(o.sketchOrder, s.Id)
	return okResult(map[string]interface{}{"sketch_id": s.Id})
}

// ElementSpec carries the flat kind-specific parameters of add/modify element
type ElementSpec struct {
	Type    string
	X1, Y1  float64
	X2, Y2  float64
	Xm, Ym  float64
	Cx, Cy  float64
	R       float64
	W, H    float64
	Sides   int
	ArcType string // "three_point" (default) or "endpoints_radius"
}

// AddElement adds a primitive to a sketch. Composite kinds return the parent
// envelope plus one child envelope per child, parent first
func (o *Engine) AddElement(sketchId string, spec ElementSpec) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	s, err := o.sketchOf(sketchId)
	if err != nil {
		return errResult(err, fault.NotFoundSketch)
	}
	kind, kerr := sketch.KindFromString(spec.Type)
	if kerr != nil {
		return errResult(fault.New(fault.InvalidArgs, "%v", kerr), fault.InvalidArgs)
	}

	var e *sketch.Element
	var children []*sketch.Element
	switch kind {
	case sketch.KindLine:
		e, err = s.AddLine(spec.X1, spec.Y1, spec.X2, spec.Y2)
	case sketch.KindCircle:
		e, err = s.AddCircle(spec.Cx, spec.Cy, spec.R)
	case sketch.KindArc:
		if spec.ArcType == "endpoints_radius" {
			e, err = s.AddArcEndpointsRadius(spec.X1, spec.Y1, spec.X2, spec.Y2, spec.R)
		} else {
			e, err = s.AddArc3P(spec.X1, spec.Y1, spec.Xm, spec.Ym, spec.X2, spec.Y2)
		}
	case sketch.KindRectangle:
		e, children, err = s.AddRectangle(spec.X1, spec.Y1, spec.W, spec.H)
	case sketch.KindPolygon:
		e, children, err = s.AddPolygon(spec.Cx, spec.Cy, spec.Sides, spec.R)
	default:
		err = fault.New(fault.InvalidArgs, "element type %q cannot be added directly", spec.Type)
	}
	if err != nil {
		return errResult(err, fault.InvalidArgs)
	}

	res := okResult(map[string]interface{}{"element_id": e.Id})
	res.Visualization = elementViz(s, e)
	for _, c := range children {
		res.Children = append(res.Children, elementViz(s, c))
	}
	return res
}

// ModifyElement updates the kind-specific parameters of an element. For
// composite parents the children are recomputed in place, keeping their ids.
// Changing the side count of a polygon is refused
func (o *Engine) ModifyElement(sketchId, elementId string, spec ElementSpec) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	s, err := o.sketchOf(sketchId)
	if err != nil {
		return errResult(err, fault.NotFoundSketch)
	}
	e, err := s.Get(elementId)
	if err != nil {
		return errResult(err, fault.NotFoundElement)
	}

	switch e.Kind {
	case sketch.KindLine:
		err = s.Update(elementId, func(t *sketch.Element) error {
			if spec.X1 == spec.X2 && spec.Y1 == spec.Y2 {
				return fault.New(fault.InvalidArgs, "line endpoints coincide")
			}
			t.X1, t.Y1, t.X2, t.Y2 = spec.X1, spec.Y1, spec.X2, spec.Y2
			return nil
		})
	case sketch.KindCircle:
		err = s.Update(elementId, func(t *sketch.Element) error {
			if spec.R <= 0 {
				return fault.New(fault.InvalidArgs, "circle radius must be positive (%g)", spec.R)
			}
			t.Cx, t.Cy, t.R = spec.Cx, spec.Cy, spec.R
			return nil
		})
	case sketch.KindRectangle:
		err = o.modifyRectangle(s, e, spec)
	case sketch.KindPolygon:
		err = o.modifyPolygon(s, e, spec)
	default:
		err = fault.New(fault.InvalidArgs, "element kind %v cannot be modified", e.Kind)
	}
	if err != nil {
		return errResult(err, fault.InvalidArgs)
	}

	e, _ = s.Get(elementId)
	res := okResult(map[string]interface{}{"element_id": e.Id})
	res.Visualization = elementViz(s, e)
	for _, cid := range e.ChildIds {
		if c, cerr := s.Get(cid); cerr == nil {
			res.Children = append(res.Children, elementViz(s, c))
		}
	}
	return res
}

// modifyRectangle recomputes the parent and its four children
func (o *Engine) modifyRectangle(s *sketch.Sketch, e *sketch.Element, spec ElementSpec) error {
	if spec.W <= 0 || spec.H <= 0 {
		return fault.New(fault.InvalidArgs, "rectangle width and height must be positive (%g, %g)", spec.W, spec.H)
	}
	x, y, w, h := spec.X1, spec.Y1, spec.W, spec.H
	e.X1, e.Y1, e.W, e.H = x, y, w, h
	coords := [][4]float64{
		{x, y, x + w, y},
		{x + w, y, x + w, y + h},
		{x + w, y + h, x, y + h},
		{x, y + h, x, y},
	}
	for i, cid := range e.ChildIds {
		c, err := s.Get(cid)
		if err != nil {
			return err
		}
		c.X1, c.Y1, c.X2, c.Y2 = coords[i][0], coords[i][1], coords[i][2], coords[i][3]
	}
	return nil
}

// modifyPolygon recomputes the parent and its children; the side count is fixed
func (o *Engine) modifyPolygon(s *sketch.Sketch, e *sketch.Element, spec ElementSpec) error {
	if spec.R <= 0 {
		return fault.New(fault.InvalidArgs, "polygon circumradius must be positive (%g)", spec.R)
	}
	if spec.Sides != 0 && spec.Sides != e.Sides {
		return fault.New(fault.InvalidArgs, "cannot change polygon side count (%d -> %d)", e.Sides, spec.Sides)
	}
	e.Cx, e.Cy, e.R = spec.Cx, spec.Cy, spec.R
	n := float64(e.Sides)
	for i, cid := range e.ChildIds {
		c, err := s.Get(cid)
		if err != nil {
			return err
		}
		a0 := 2 * math.Pi * float64(i) / n
		a1 := 2 * math.Pi * float64(i+1) / n
		c.X1, c.Y1 = e.Cx+e.R*math.Cos(a0), e.Cy+e.R*math.Sin(a0)
		c.X2, c.Y2 = e.Cx+e.R*math.Cos(a1), e.Cy+e.R*math.Sin(a1)
	}
	return nil
}

// DeleteElement removes an element; composites go as a unit
func (o *Engine) DeleteElement(sketchId, elementId string) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	s, err := o.sketchOf(sketchId)
	if err != nil {
		return errResult(err, fault.NotFoundSketch)
	}
	removed, err := s.Delete(elementId)
	if err != nil {
		return errResult(err, fault.NotFoundElement)
	}
	return okResult(map[string]interface{}{"deleted": removed})
}

// AddFillet inserts a fillet arc between two lines and trims them. The
// envelope carries the fillet payload first, then the trimmed lines
func (o *Engine) AddFillet(sketchId, line1, line2 string, radius float64) *Result {
	return o.addCorner(sketchId, line1, line2, radius, true)
}

// AddChamfer inserts a chamfer segment between two lines and trims them
func (o *Engine) AddChamfer(sketchId, line1, line2 string, distance float64) *Result {
	return o.addCorner(sketchId, line1, line2, distance, false)
}

func (o *Engine) addCorner(sketchId, line1, line2 string, value float64, fillet bool) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	s, err := o.sketchOf(sketchId)
	if err != nil {
		return errResult(err, fault.NotFoundSketch)
	}
	var e *sketch.Element
	if fillet {
		e, err = s.AddFillet(line1, line2, value)
	} else {
		e, err = s.AddChamfer(line1, line2, value)
	}
	if err != nil {
		return errResult(err, fault.InvalidArgs)
	}

	res := okResult(map[string]interface{}{"element_id": e.Id})
	res.Visualization = elementViz(s, e)
	for _, ref := range e.RefElems {
		if line, lerr := s.Get(ref); lerr == nil {
			res.Children = append(res.Children, elementViz(s, line))
		}
	}
	return res
}

// VisualizePlane returns the payload of a plane
func (o *Engine) VisualizePlane(planeId string) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	p, err := o.plane(planeId)
	if err != nil {
		return errResult(err, fault.NotFoundPlane)
	}
	res := okResult(map[string]interface{}{"plane_id": p.Id})
	res.Visualization = planeViz(p)
	return res
}

// VisualizeSketch returns the payload of a sketch plus one child payload per
// element in insertion order
func (o *Engine) VisualizeSketch(sketchId string) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	s, err := o.sketchOf(sketchId)
	if err != nil {
		return errResult(err, fault.NotFoundSketch)
	}
	res := okResult(map[string]interface{}{"sketch_id": s.Id})
	res.Visualization = sketchViz(s)
	for _, id := range s.Order {
		res.Children = append(res.Children, elementViz(s, s.Elems[id]))
	}
	return res
}

// VisualizeElement returns the payload of one element
func (o *Engine) VisualizeElement(sketchId, elementId string) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	s, err := o.sketchOf(sketchId)
	if err != nil {
		return errResult(err, fault.NotFoundSketch)
	}
	e, err := s.Get(elementId)
	if err != nil {
		return errResult(err, fault.NotFoundElement)
	}
	res := okResult(map[string]interface{}{"element_id": e.Id})
	res.Visualization = elementViz(s, e)
	return res
}

// removeId deletes one id from an ordered id list
func removeId(ids []string, id string) []string {
	for i, x := range ids {
		if x == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
