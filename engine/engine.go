// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package engine implements the per-session modeling engine: it owns planes,
// sketches, constraints, features and shapes, allocates identifiers, runs
// operations and produces visualization payloads
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocad/brep"
	"github.com/cpmech/gocad/constr"
	"github.com/cpmech/gocad/fault"
	"github.com/cpmech/gocad/feature"
	"github.com/cpmech/gocad/sketch"
)

// Options holds engine configuration
type Options struct {
	Deflection float64 `json:"deflection"` // default tessellation deflection
	Verbose    bool    `json:"verbose"`    // print operation messages
}

// SetDefaults fills unset options
func (o *Options) SetDefaults() {
	if o.Deflection <= 0 {
		o.Deflection = 0.1
	}
}

// Engine is the session-scoped owner of all modeling entities. All references
// between entities go by identifier through the engine's tables; operations
// are serialized by the engine mutex
type Engine struct {
	Opts Options

	// Now supplies timestamps for identifier generation; replaced in tests
	Now func() time.Time

	mu sync.Mutex
	bk brep.Adapter

	// entity tables (insertion-ordered ids alongside maps)
	planes      map[string]*sketch.Plane
	planeOrder  []string
	sketches    map[string]*sketch.Sketch
	sketchOrder []string
	cons        map[string]*constr.Constraint
	consOrder   []string
	features    map[string]*feature.Extrude
	featOrder   []string
	shapes      map[string]brep.Shape
	shapeOrder  []string

	// monotonic counters
	planeCount  int
	sketchCount int
	consCount   int
	shapeCount  int

	// in-flight operation cancel flags
	cancels map[string]*int32

	// last operation time, read by the session manager for eviction
	lastUsed time.Time
}

// New creates an engine
func New(opts Options) (o *Engine) {
	opts.SetDefaults()
	o = &Engine{
		Opts:     opts,
		Now:      time.Now,
		planes:   make(map[string]*sketch.Plane),
		sketches: make(map[string]*sketch.Sketch),
		cons:     make(map[string]*constr.Constraint),
		features: make(map[string]*feature.Extrude),
		shapes:   make(map[string]brep.Shape),
		cancels:  make(map[string]*int32),
		lastUsed: time.Now(),
	}
	return
}

// LastUsed returns the time of the most recent operation
func (o *Engine) LastUsed() time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastUsed
}

// touch records activity; must hold the lock
func (o *Engine) touch() {
	o.lastUsed = o.Now()
	if o.Opts.Verbose {
		io.Pf("> engine operation at %v\n", o.lastUsed)
	}
}

// Cancel sets the cancel flag of an in-flight operation; best-effort
func (o *Engine) Cancel(opId string) {
	o.mu.Lock()
	flag, ok := o.cancels[opId]
	o.mu.Unlock()
	if ok {
		atomic.StoreInt32(flag, 1)
	}
}

// cancelFn registers a cancellable operation and returns the polling function
// plus a cleanup. Must be called with the lock held
func (o *Engine) cancelFn(opId string) (fn brep.CancelFn, done func()) {
	if opId == "" {
		return nil, func() {}
	}
	flag := new(int32)
	o.cancels[opId] = flag
	fn = func() bool { return atomic.LoadInt32(flag) != 0 }
	done = func() { delete(o.cancels, opId) }
	return
}

// lookups //////////////////////////////////////////////////////////////////

// resolvePlaneId maps the legacy aliases XY_Plane|XZ_Plane|YZ_Plane to the
// first matching canonical plane; canonical ids pass through
func (o *Engine) resolvePlaneId(id string) string {
	var kind sketch.PlaneKind
	switch id {
	case "XY_Plane":
		kind = sketch.PlaneXY
	case "XZ_Plane":
		kind = sketch.PlaneXZ
	case "YZ_Plane":
		kind = sketch.PlaneYZ
	default:
		return id
	}
	for _, pid := range o.planeOrder {
		if o.planes[pid].Kind == kind {
			return pid
		}
	}
	return id
}

func (o *Engine) plane(id string) (*sketch.Plane, error) {
	p, ok := o.planes[o.resolvePlaneId(id)]
	if !ok {
		return nil, fault.New(fault.NotFoundPlane, "cannot find plane %q", id)
	}
	return p, nil
}

func (o *Engine) sketchOf(id string) (*sketch.Sketch, error) {
	s, ok := o.sketches[id]
	if !ok {
		return nil, fault.New(fault.NotFoundSketch, "cannot find sketch %q", id)
	}
	return s, nil
}

func (o *Engine) constraint(id string) (*constr.Constraint, error) {
	c, ok := o.cons[id]
	if !ok {
		return nil, fault.New(fault.NotFoundConstraint, "cannot find constraint %q", id)
	}
	return c, nil
}

func (o *Engine) shape(id string) (brep.Shape, error) {
	s, ok := o.shapes[id]
	if !ok {
		return nil, fault.New(fault.NotFoundShape, "cannot find shape %q", id)
	}
	return s, nil
}

// sketchCons returns the constraints of one sketch in insertion order
func (o *Engine) sketchCons(sketchId string) (out []*constr.Constraint) {
	for _, cid := range o.consOrder {
		if o.cons[cid].SketchId == sketchId {
			out = append(out, o.cons[cid])
		}
	}
	return
}

// putShape registers a shape under an id
func (o *Engine) putShape(id string, s brep.Shape) {
	if _, exists := o.shapes[id]; !exists {
		o.shapeOrder = append(o.shapeOrder, id)
	}
	o.shapes[id] = s
}

// Status summarises the engine contents
func (o *Engine) Status() map[string]int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return map[string]int{
		"planes":      len(o.planes),
		"sketches":    len(o.sketches),
		"elements":    o.numElements(),
		"constraints": len(o.cons),
		"features":    len(o.features),
		"shapes":      len(o.shapes),
	}
}

func (o *Engine) numElements() (n int) {
	for _, s := range o.sketches {
		n += s.NumElements()
	}
	return
}
