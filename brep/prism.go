// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brep

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gocad/geo"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Prism is the solid swept by translating a face along a vector
type Prism struct {
	Face *Face
	Vec  v3.Vec
}

// NewPrism creates a prism. The sweep vector must not be (near) parallel to
// the face plane
func NewPrism(face *Face, vec v3.Vec) (o *Prism, err error) {
	if vec.Length() < 1e-9 {
		err = chk.Err("cannot sweep with zero vector")
		return
	}
	if math.Abs(geo.Unit3(vec).Dot(face.N)) < 1e-9 {
		err = chk.Err("sweep vector lies in the face plane")
		return
	}
	o = &Prism{Face: face, Vec: vec}
	return
}

// Mesh tessellates the prism: two triangulated caps plus one quad-strip side
// face per wire edge
func (o *Prism) Mesh(defl float64, cancel CancelFn) (m *Mesh, err error) {

	// orient the sweep upward along the face normal
	face := o.Face
	w := o.Vec
	if w.Dot(face.N) < 0 {
		face = face.Translated(w)
		w = w.Neg()
	}

	// boundary loop (counter-clockwise about the face normal)
	p2, p3 := face.Polygon(defl)
	if len(p2) < 3 {
		err = chk.Err("cannot tessellate prism: degenerate boundary")
		return
	}
	tris, err := earClip(p2)
	if err != nil {
		return
	}

	m = new(Mesh)
	n := face.N

	// bottom cap: outward normal is -n; flip winding
	bot := &FaceTri{V: p3, N: constNormals(len(p3), n.Neg())}
	for i := 0; i < len(tris); i += 3 {
		bot.I = append(bot.I, tris[i], tris[i+2], tris[i+1])
	}
	m.Faces = append(m.Faces, bot)

	// top cap: outward normal is +n
	topv := make([]v3.Vec, len(p3))
	for i, p := range p3 {
		topv[i] = p.Add(w)
	}
	top := &FaceTri{V: topv, N: constNormals(len(p3), n), I: tris}
	m.Faces = append(m.Faces, top)

	// side faces: one strip per wire edge
	for _, e := range face.Wire.Edges {
		if cancel != nil && cancel() {
			return nil, ErrCancelled
		}
		side := sideStrip(e, w, n, defl)
		if side != nil {
			m.Faces = append(m.Faces, side)
		}
	}
	return
}

// sideStrip builds the swept surface of one boundary edge
func sideStrip(e *Edge, w, n v3.Vec, defl float64) *FaceTri {
	pts := e.Sample(defl, true)
	if len(pts) < 2 {
		return nil
	}
	circ, isCirc := e.Curve.(*Circle3)
	ft := new(FaceTri)
	for _, p := range pts {
		ft.V = append(ft.V, p, p.Add(w))
		var nrm v3.Vec
		if isCirc {
			// radial normal, smooth around the cylinder
			nrm = geo.Unit3(p.Sub(circ.C))
		}
		ft.N = append(ft.N, nrm, nrm)
	}
	for i := 0; i+1 < len(pts); i++ {
		a := 2 * i       // bottom i
		b := 2 * (i + 1) // bottom i+1
		// outward winding for a loop that is CCW about n
		ft.I = append(ft.I, a, b, b+1)
		ft.I = append(ft.I, a, b+1, a+1)
		if !isCirc {
			// flat normal from edge direction
			nrm := geo.Unit3(pts[i+1].Sub(pts[i]).Cross(n))
			ft.N[a] = nrm
			ft.N[b] = nrm
			ft.N[b+1] = nrm
			ft.N[a+1] = nrm
		}
	}
	return ft
}

func constNormals(n int, nrm v3.Vec) (out []v3.Vec) {
	out = make([]v3.Vec, n)
	for i := range out {
		out[i] = nrm
	}
	return
}
