// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package feature implements solid features built from sketches; the only
// concrete feature is the extrusion of a sketch face along a vector
package feature

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocad/brep"
	"github.com/cpmech/gocad/fault"
	"github.com/cpmech/gocad/geo"
	"github.com/cpmech/gocad/sketch"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ExtrudeType selects how the extrusion depth is determined
type ExtrudeType int

// extrude types
const (
	Blind ExtrudeType = iota
	Symmetric
	ThroughAll
	ToSurface
)

// String returns the type name as used in payloads
func (o ExtrudeType) String() string {
	switch o {
	case Blind:
		return "blind"
	case Symmetric:
		return "symmetric"
	case ThroughAll:
		return "through_all"
	case ToSurface:
		return "to_surface"
	}
	return "unknown"
}

// ExtrudeTypeFromString parses an extrude type name
func ExtrudeTypeFromString(s string) (t ExtrudeType, err error) {
	switch s {
	case "blind", "":
		t = Blind
	case "symmetric":
		t = Symmetric
	case "through_all":
		t = ThroughAll
	case "to_surface":
		t = ToSurface
	default:
		err = chk.Err("unknown extrude type %q", s)
	}
	return
}

// Extrude sweeps a sketch face along the plane normal (or a custom direction)
// into a solid
type Extrude struct {
	Id        string
	SketchId  string
	ElementId string // element to extrude; may be a composite parent; empty means the whole sketch
	Type      ExtrudeType
	Distance  float64 // Blind
	D1, D2    float64 // Symmetric
	Custom    *v3.Vec // custom direction; nil means the sketch plane normal
	Reverse   bool
	TaperDeg  float64

	// results
	ResultId string
	Valid    bool
	Warnings []string
}

// warn records a non-fatal condition
func (o *Extrude) warn(msg string, args ...interface{}) {
	o.Warnings = append(o.Warnings, io.Sf(msg, args...))
}

// Validate checks the feature parameters before execution
func (o *Extrude) Validate(sk *sketch.Sketch) (err error) {
	if sk.NumElements() == 0 {
		return fault.New(fault.NotExtrudable, "sketch %q is empty", sk.Id)
	}
	switch o.Type {
	case Blind:
		if o.Distance <= 0 {
			return fault.New(fault.InvalidArgs, "extrude distance must be positive (%g)", o.Distance)
		}
	case Symmetric:
		if o.D1 <= 0 || o.D2 <= 0 {
			return fault.New(fault.InvalidArgs, "symmetric distances must both be positive (%g, %g)", o.D1, o.D2)
		}
	}
	if o.Custom != nil && o.Custom.Length() < 1e-6 {
		return fault.New(fault.InvalidArgs, "extrude direction is degenerate")
	}
	if o.ElementId != "" {
		e, gerr := sk.Get(o.ElementId)
		if gerr != nil {
			return gerr
		}
		if !e.IsCompositeParent && !closedAlone(e) {
			return fault.New(fault.NotExtrudable, "element %q is open and cannot be extruded alone", o.ElementId)
		}
	}
	return
}

// closedAlone tells whether a single element bounds a face by itself
func closedAlone(e *sketch.Element) bool {
	return e.Kind == sketch.KindCircle
}

// Direction resolves the extrusion direction (unit vector)
func (o *Extrude) Direction(sk *sketch.Sketch) v3.Vec {
	d := sk.Plane.Normal
	if o.Custom != nil {
		d = geo.Unit3(*o.Custom)
	}
	if o.Reverse {
		d = d.Neg()
	}
	return d
}

// Execute validates, selects the face and sweeps it. Through-all and
// to-surface fall back to blind with a warning; a non-zero taper angle is
// ignored with a warning. The Valid flag reflects the kernel's verdict on the
// resulting shape. The cancel flag is polled between the stages and during
// the validation tessellation
func (o *Extrude) Execute(bk brep.Adapter, sk *sketch.Sketch, cancel brep.CancelFn) (shape brep.Shape, err error) {
	if err = o.Validate(sk); err != nil {
		return
	}
	if cancel != nil && cancel() {
		return nil, fault.New(fault.Cancelled, "extrusion cancelled")
	}
	if o.Type == ThroughAll || o.Type == ToSurface {
		o.warn("extrude type %v is not available; falling back to blind", o.Type)
		if o.Distance <= 0 {
			return nil, fault.New(fault.InvalidArgs, "fallback to blind needs a positive distance (%g)", o.Distance)
		}
	}
	if o.TaperDeg != 0 {
		o.warn("taper angle %g is not available and was ignored", o.TaperDeg)
	}

	// face selection
	var face *brep.Face
	if o.ElementId != "" {
		face, err = sk.BuildFaceFromElement(bk, o.ElementId)
	} else {
		var wire *brep.Wire
		wire, err = sk.BuildWire(bk)
		if err != nil {
			return
		}
		if !wire.Closed() {
			return nil, fault.New(fault.WireOpen, "sketch %q boundary is not closed", sk.Id)
		}
		var ferr error
		face, ferr = bk.MakeFace(wire)
		if ferr != nil {
			err = fault.New(fault.FaceBuildFailed, "cannot build face for sketch %q: %v", sk.Id, ferr)
		}
	}
	if err != nil {
		return
	}
	if cancel != nil && cancel() {
		return nil, fault.New(fault.Cancelled, "extrusion cancelled")
	}

	// sweep
	d := o.Direction(sk)
	switch o.Type {
	case Symmetric:
		face = face.Translated(d.MulScalar(-o.D2))
		shape, err = makePrism(bk, face, d.MulScalar(o.D1+o.D2))
	default:
		shape, err = makePrism(bk, face, d.MulScalar(o.Distance))
	}
	if err != nil {
		return
	}
	if cancel != nil && cancel() {
		return nil, fault.New(fault.Cancelled, "extrusion cancelled")
	}
	o.Valid = bk.Validate(shape, cancel)
	return
}

func makePrism(bk brep.Adapter, face *brep.Face, vec v3.Vec) (shape brep.Shape, err error) {
	shape, kerr := bk.MakePrism(face, vec)
	if kerr != nil {
		err = fault.New(fault.KernelFailure, "prism failed: %v", kerr)
	}
	return shape, err
}
