// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brep

import (
	"github.com/cpmech/gosl/chk"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// boolean operation names
const (
	OpUnion     = "union"
	OpCut       = "cut"
	OpIntersect = "intersect"
)

// BoolShape combines two shapes with a boolean operation. The operands stay
// exact; the combination happens on their tessellations (BSP solid clipping)
type BoolShape struct {
	Op   string
	A, B Shape
}

// NewBoolean creates a boolean combination of two shapes
func NewBoolean(op string, a, b Shape) (o *BoolShape, err error) {
	switch op {
	case OpUnion, OpCut, OpIntersect:
	default:
		err = chk.Err("unknown boolean operation %q", op)
		return
	}
	o = &BoolShape{Op: op, A: a, B: b}
	return
}

// Mesh tessellates both operands at the given deflection and clips one
// against the other
func (o *BoolShape) Mesh(defl float64, cancel CancelFn) (m *Mesh, err error) {
	ma, err := o.A.Mesh(defl, cancel)
	if err != nil {
		return
	}
	mb, err := o.B.Mesh(defl, cancel)
	if err != nil {
		return
	}
	a := newBspNode(meshPolys(ma))
	b := newBspNode(meshPolys(mb))
	if cancel != nil && cancel() {
		return nil, ErrCancelled
	}
	switch o.Op {
	case OpUnion:
		a.clipTo(b)
		b.clipTo(a)
		b.invert()
		b.clipTo(a)
		b.invert()
		a.build(b.allPolys())
	case OpCut:
		a.invert()
		a.clipTo(b)
		b.clipTo(a)
		b.invert()
		b.clipTo(a)
		b.invert()
		a.build(b.allPolys())
		a.invert()
	case OpIntersect:
		a.invert()
		b.clipTo(a)
		b.invert()
		a.clipTo(b)
		b.clipTo(a)
		a.build(b.allPolys())
		a.invert()
	}
	if cancel != nil && cancel() {
		return nil, ErrCancelled
	}

	// fan-triangulate the resulting polygons into a single face group
	ft := new(FaceTri)
	for _, p := range a.allPolys() {
		base := len(ft.V)
		for _, v := range p.verts {
			ft.V = append(ft.V, v.pos)
			ft.N = append(ft.N, v.nrm)
		}
		for i := 2; i < len(p.verts); i++ {
			ft.I = append(ft.I, base, base+i-1, base+i)
		}
	}
	m = &Mesh{Faces: []*FaceTri{ft}}
	return
}

// BSP solid clipping ///////////////////////////////////////////////////////

const bspEps = 1e-5

type bspVert struct {
	pos v3.Vec
	nrm v3.Vec
}

type bspPlane struct {
	n v3.Vec
	w float64
}

type bspPoly struct {
	verts []bspVert
	plane bspPlane
}

type bspNode struct {
	plane *bspPlane
	front *bspNode
	back  *bspNode
	polys []*bspPoly
}

func meshPolys(m *Mesh) (polys []*bspPoly) {
	for _, f := range m.Faces {
		for i := 0; i < len(f.I); i += 3 {
			a, b, c := f.I[i], f.I[i+1], f.I[i+2]
			n := triNormal(f.V[a], f.V[b], f.V[c])
			if n.Length() == 0 {
				continue
			}
			na, nb, nc := f.N[a], f.N[b], f.N[c]
			if na.Length() == 0 {
				na, nb, nc = n, n, n
			}
			polys = append(polys, &bspPoly{
				verts: []bspVert{{f.V[a], na}, {f.V[b], nb}, {f.V[c], nc}},
				plane: bspPlane{n: n, w: n.Dot(f.V[a])},
			})
		}
	}
	return
}

func (o *bspPoly) flip() {
	for i, j := 0, len(o.verts)-1; i < j; i, j = i+1, j-1 {
		o.verts[i], o.verts[j] = o.verts[j], o.verts[i]
	}
	for i := range o.verts {
		o.verts[i].nrm = o.verts[i].nrm.Neg()
	}
	o.plane.n = o.plane.n.Neg()
	o.plane.w = -o.plane.w
}

// split classifies and splits a polygon by the plane
func (o *bspPlane) split(p *bspPoly, cofront, coback, front, back *[]*bspPoly) {
	const (
		coplanar = 0
		inFront  = 1
		inBack   = 2
		spanning = 3
	)
	ptype := 0
	types := make([]int, len(p.verts))
	for i, v := range p.verts {
		t := o.n.Dot(v.pos) - o.w
		k := coplanar
		if t < -bspEps {
			k = inBack
		} else if t > bspEps {
			k = inFront
		}
		ptype |= k
		types[i] = k
	}
	switch ptype {
	case coplanar:
		if o.n.Dot(p.plane.n) > 0 {
			*cofront = append(*cofront, p)
		} else {
			*coback = append(*coback, p)
		}
	case inFront:
		*front = append(*front, p)
	case inBack:
		*back = append(*back, p)
	case spanning:
		var f, b []bspVert
		for i := range p.verts {
			j := (i + 1) % len(p.verts)
			ti, tj := types[i], types[j]
			vi, vj := p.verts[i], p.verts[j]
			if ti != inBack {
				f = append(f, vi)
			}
			if ti != inFront {
				b = append(b, vi)
			}
			if (ti | tj) == spanning {
				t := (o.w - o.n.Dot(vi.pos)) / o.n.Dot(vj.pos.Sub(vi.pos))
				v := bspVert{
					pos: vi.pos.Add(vj.pos.Sub(vi.pos).MulScalar(t)),
					nrm: vi.nrm.Add(vj.nrm.Sub(vi.nrm).MulScalar(t)),
				}
				f = append(f, v)
				b = append(b, v)
			}
		}
		if len(f) >= 3 {
			*front = append(*front, &bspPoly{verts: f, plane: p.plane})
		}
		if len(b) >= 3 {
			*back = append(*back, &bspPoly{verts: b, plane: p.plane})
		}
	}
}

func newBspNode(polys []*bspPoly) *bspNode {
	o := new(bspNode)
	if len(polys) > 0 {
		o.build(polys)
	}
	return o
}

func (o *bspNode) build(polys []*bspPoly) {
	if len(polys) == 0 {
		return
	}
	if o.plane == nil {
		pl := polys[0].plane
		o.plane = &pl
	}
	var front, back []*bspPoly
	for _, p := range polys {
		o.plane.split(p, &o.polys, &o.polys, &front, &back)
	}
	if len(front) > 0 {
		if o.front == nil {
			o.front = new(bspNode)
		}
		o.front.build(front)
	}
	if len(back) > 0 {
		if o.back == nil {
			o.back = new(bspNode)
		}
		o.back.build(back)
	}
}

func (o *bspNode) invert() {
	for _, p := range o.polys {
		p.flip()
	}
	if o.plane != nil {
		o.plane.n = o.plane.n.Neg()
		o.plane.w = -o.plane.w
	}
	if o.front != nil {
		o.front.invert()
	}
	if o.back != nil {
		o.back.invert()
	}
	o.front, o.back = o.back, o.front
}

// clipPolys removes the parts of the given polygons inside this node's solid
func (o *bspNode) clipPolys(polys []*bspPoly) (out []*bspPoly) {
	if o.plane == nil {
		return append(out, polys...)
	}
	var front, back []*bspPoly
	for _, p := range polys {
		o.plane.split(p, &front, &back, &front, &back)
	}
	if o.front != nil {
		front = o.front.clipPolys(front)
	}
	if o.back != nil {
		back = o.back.clipPolys(back)
	} else {
		back = nil
	}
	return append(front, back...)
}

// clipTo removes the parts of this BSP inside the other BSP's solid
func (o *bspNode) clipTo(other *bspNode) {
	o.polys = other.clipPolys(o.polys)
	if o.front != nil {
		o.front.clipTo(other)
	}
	if o.back != nil {
		o.back.clipTo(other)
	}
}

func (o *bspNode) allPolys() (out []*bspPoly) {
	out = append(out, o.polys...)
	if o.front != nil {
		out = append(out, o.front.allPolys()...)
	}
	if o.back != nil {
		out = append(out, o.back.allPolys()...)
	}
	return
}
