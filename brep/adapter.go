// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brep

import (
	"github.com/cpmech/gosl/chk"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Adapter is the façade through which the engine reaches the kernel. All
// entry points convert kernel panics into errors so degenerate inputs surface
// as KernelFailure envelopes instead of taking the session down
type Adapter struct{}

// MakeEdgeLine creates a straight edge between two points
func (o Adapter) MakeEdgeLine(a, b v3.Vec) (e *Edge, err error) {
	defer func() { err = catch(recover(), err) }()
	if a.Sub(b).Length() < 1e-12 {
		err = chk.Err("cannot create line edge: points coincide")
		return
	}
	e = NewLine(a, b)
	return
}

// MakeEdgeCircle creates a closed circular edge about an axis
func (o Adapter) MakeEdgeCircle(center, normal, xdir v3.Vec, r float64) (e *Edge, err error) {
	defer func() { err = catch(recover(), err) }()
	if r <= 0 {
		err = chk.Err("cannot create circle edge: radius must be positive (%g)", r)
		return
	}
	e = NewCircle(center, normal, xdir, r)
	return
}

// MakeEdgeTrimmed creates an edge from a curve restricted to [t0,t1]
func (o Adapter) MakeEdgeTrimmed(curve Curve, t0, t1 float64) (e *Edge, err error) {
	defer func() { err = catch(recover(), err) }()
	if t0 == t1 {
		err = chk.Err("cannot create trimmed edge: empty parameter range")
		return
	}
	e = NewTrimmed(curve, t0, t1)
	return
}

// MakeWire chains edges into a wire
func (o Adapter) MakeWire(edges []*Edge) (w *Wire, err error) {
	defer func() { err = catch(recover(), err) }()
	return NewWire(edges)
}

// MakeFace builds a face from a closed wire with forward orientation
func (o Adapter) MakeFace(wire *Wire) (f *Face, err error) {
	defer func() { err = catch(recover(), err) }()
	return NewFace(wire)
}

// MakePrism sweeps a face along a vector
func (o Adapter) MakePrism(face *Face, vec v3.Vec) (s Shape, err error) {
	defer func() { err = catch(recover(), err) }()
	return NewPrism(face, vec)
}

// Boolean combines two shapes
func (o Adapter) Boolean(op string, a, b Shape) (s Shape, err error) {
	defer func() { err = catch(recover(), err) }()
	return NewBoolean(op, a, b)
}

// Validate checks a shape for kernel validity; the cancel flag is polled
// during the validation tessellation
func (o Adapter) Validate(shape Shape, cancel CancelFn) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return Validate(shape, cancel)
}

// Tessellate meshes a shape with the given deflection
func (o Adapter) Tessellate(shape Shape, defl float64, cancel CancelFn) (m *Mesh, err error) {
	defer func() { err = catch(recover(), err) }()
	if defl <= 0 {
		err = chk.Err("deflection must be positive (%g)", defl)
		return
	}
	return shape.Mesh(defl, cancel)
}

// catch maps a recovered panic to an error, keeping an already-set error
func catch(rec interface{}, prev error) error {
	if rec != nil {
		return chk.Err("kernel failure: %v", rec)
	}
	return prev
}
