// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocad/brep"
	"github.com/cpmech/gocad/fault"
	"github.com/cpmech/gocad/geo"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Edges creates the kernel edges of a single element. Container elements
// yield nothing; composite children are created by their own calls
func (o *Sketch) Edges(bk brep.Adapter, e *Element) (edges []*brep.Edge, err error) {
	if !e.ProducesEdge() {
		return
	}
	pl := o.Plane
	switch e.Kind {
	case KindLine, KindChamfer:
		edge, lerr := bk.MakeEdgeLine(pl.ToWorld(e.Start()), pl.ToWorld(e.End()))
		if lerr != nil {
			err = fault.New(fault.KernelFailure, "cannot create edge for %q: %v", e.Id, lerr)
			return
		}
		edges = append(edges, edge)
	case KindCircle:
		edge, cerr := bk.MakeEdgeCircle(pl.ToWorld(e.Center()), pl.Normal, pl.UAxis, e.R)
		if cerr != nil {
			err = fault.New(fault.KernelFailure, "cannot create edge for %q: %v", e.Id, cerr)
			return
		}
		edges = append(edges, edge)
	case KindArc, KindFillet:
		curve := &brep.Circle3{
			C: pl.ToWorld(e.Center()),
			U: pl.UAxis,
			V: pl.VAxis,
			R: e.R,
		}
		edge, aerr := bk.MakeEdgeTrimmed(curve, e.A0, e.A0+geo.SweepCCW(e.A0, e.A1))
		if aerr != nil {
			err = fault.New(fault.KernelFailure, "cannot create edge for %q: %v", e.Id, aerr)
			return
		}
		edges = append(edges, edge)
	default:
		err = fault.New(fault.InvariantViolated, "element %q of kind %v cannot produce edges", e.Id, e.Kind)
	}
	return
}

// BuildWire assembles a wire from all edge-producing elements of the sketch
// in insertion order. Trimmed lines and fillet/chamfer elements take part like
// any other element; ordering is by endpoint proximity
func (o *Sketch) BuildWire(bk brep.Adapter) (wire *brep.Wire, err error) {
	var edges []*brep.Edge
	for _, id := range o.Order {
		e := o.Elems[id]
		es, eerr := o.Edges(bk, e)
		if eerr != nil {
			return nil, eerr
		}
		edges = append(edges, es...)
	}
	if len(edges) == 0 {
		err = fault.New(fault.WireOpen, "sketch %q has no edges", o.Id)
		return
	}
	wire, werr := bk.MakeWire(edges)
	if werr != nil {
		err = fault.New(fault.WireOpen, "cannot assemble wire for sketch %q: %v", o.Id, werr)
	}
	return
}

// BuildFaceFromElement builds a face from one element: the closed child
// boundary for composite parents, the element's own closed edge otherwise
func (o *Sketch) BuildFaceFromElement(bk brep.Adapter, id string) (face *brep.Face, err error) {
	e, err := o.Get(id)
	if err != nil {
		return
	}
	var edges []*brep.Edge
	if e.IsCompositeParent {
		if !o.ChildBoundaryClosed(e) {
			err = fault.New(fault.WireOpen, "children of %q do not form a closed boundary", id)
			return
		}
		for _, cid := range e.ChildIds {
			child, cerr := o.Get(cid)
			if cerr != nil {
				return nil, cerr
			}
			es, eerr := o.Edges(bk, child)
			if eerr != nil {
				return nil, eerr
			}
			edges = append(edges, es...)
		}
	} else {
		edges, err = o.Edges(bk, e)
		if err != nil {
			return
		}
	}
	if len(edges) == 0 {
		err = fault.New(fault.WireOpen, "element %q produces no edges", id)
		return
	}
	wire, werr := bk.MakeWire(edges)
	if werr != nil {
		err = fault.New(fault.WireOpen, "cannot assemble wire for %q: %v", id, werr)
		return
	}
	if !wire.Closed() {
		err = fault.New(fault.WireOpen, "boundary of %q is not closed", id)
		return
	}
	face, ferr := bk.MakeFace(wire)
	if ferr != nil {
		err = fault.New(fault.FaceBuildFailed, "cannot build face for %q: %v", id, ferr)
	}
	return
}

// ChildBoundaryClosed checks that the child edges of a composite parent form
// one closed loop: every endpoint is shared by exactly two children and the
// connectivity graph is a single cycle
func (o *Sketch) ChildBoundaryClosed(parent *Element) bool {
	if len(parent.ChildIds) < 3 {
		return false
	}

	// endpoint vertices merged within tolerance
	var verts []v2.Vec
	vertOf := func(p v2.Vec) int {
		for i, v := range verts {
			if geo.Dist2(v, p) < geo.TolConnect {
				return i
			}
		}
		verts = append(verts, p)
		return len(verts) - 1
	}
	adj := make(map[int][]int)
	for _, cid := range parent.ChildIds {
		c, ok := o.Elems[cid]
		if !ok || c.Kind != KindLine {
			return false
		}
		a := vertOf(c.Start())
		b := vertOf(c.End())
		if a == b {
			return false
		}
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}

	// every vertex has degree 2
	for _, nbs := range adj {
		if len(nbs) != 2 {
			return false
		}
	}

	// single cycle: walk and count
	seen := make(map[int]bool)
	cur, prev := 0, -1
	for {
		seen[cur] = true
		next := adj[cur][0]
		if next == prev {
			next = adj[cur][1]
		}
		if next == 0 {
			break
		}
		if seen[next] {
			return false
		}
		prev, cur = cur, next
	}
	return len(seen) == len(verts)
}

// String returns a one-line summary of the sketch
func (o *Sketch) String() string {
	return io.Sf("sketch %q on plane %q with %d elements", o.Id, o.Plane.Id, len(o.Order))
}
