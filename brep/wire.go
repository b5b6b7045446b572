// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brep

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gocad/geo"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Wire is an ordered chain of edges sharing endpoints
type Wire struct {
	Edges []*Edge
}

// NewWire assembles a wire from edges. Edges are reordered (and reversed where
// needed) by endpoint proximity with tolerance geo.TolConnect. An error is
// returned when some edge cannot be chained to the rest
func NewWire(edges []*Edge) (o *Wire, err error) {
	if len(edges) == 0 {
		err = chk.Err("cannot build wire without edges")
		return
	}
	o = new(Wire)

	// a single closed edge is already a wire
	if len(edges) == 1 {
		o.Edges = edges
		return
	}

	// chain the remaining edges by endpoint proximity
	used := make([]bool, len(edges))
	o.Edges = append(o.Edges, edges[0])
	used[0] = true
	tail := edges[0].Last()
	for len(o.Edges) < len(edges) {
		found := false
		for i, e := range edges {
			if used[i] {
				continue
			}
			if tail.Sub(e.First()).Length() < geo.TolConnect {
				o.Edges = append(o.Edges, e)
				used[i] = true
				tail = e.Last()
				found = true
				break
			}
			if tail.Sub(e.Last()).Length() < geo.TolConnect {
				e.Rev = !e.Rev
				o.Edges = append(o.Edges, e)
				used[i] = true
				tail = e.Last()
				found = true
				break
			}
		}
		if !found {
			err = chk.Err("wire is incomplete: %d of %d edges chained", len(o.Edges), len(edges))
			return
		}
	}
	return
}

// First returns the start point of the wire
func (o *Wire) First() v3.Vec {
	return o.Edges[0].First()
}

// Last returns the end point of the wire
func (o *Wire) Last() v3.Vec {
	return o.Edges[len(o.Edges)-1].Last()
}

// Closed tells whether the wire forms a loop
func (o *Wire) Closed() bool {
	if len(o.Edges) == 1 {
		return o.Edges[0].Closed()
	}
	return o.First().Sub(o.Last()).Length() < geo.TolConnect
}

// Sample returns the polyline approximation of the wire within the given
// deflection. Joint points between consecutive edges are not repeated; for a
// closed wire the first point is not repeated at the end
func (o *Wire) Sample(defl float64) (points []v3.Vec) {
	for _, e := range o.Edges {
		points = append(points, e.Sample(defl, false)...)
	}
	return
}
