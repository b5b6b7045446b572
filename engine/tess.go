// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/cpmech/gosl/gm"

	"github.com/cpmech/gocad/brep"
	"github.com/cpmech/gocad/fault"
	"github.com/cpmech/gocad/geo"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// seam tolerance when merging vertices of adjacent face triangulations
const seamTol = 1e-6

// Tessellate meshes a shape and accumulates the per-face triangulations into
// one indexed mesh with per-vertex normals. Seam vertices shared by adjacent
// faces are merged within tolerance and their normals averaged. An empty
// tessellation yields an empty mesh, not an error
func (o *Engine) Tessellate(shapeId string, deflection float64, opId string) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	s, err := o.shape(shapeId)
	if err != nil {
		return errResult(err, fault.NotFoundShape)
	}
	if deflection <= 0 {
		deflection = o.Opts.Deflection
	}
	cancel, done := o.cancelFn(opId)
	defer done()

	m, merr := o.bk.Tessellate(s, deflection, cancel)
	if merr != nil {
		if merr == brep.ErrCancelled {
			return errResult(fault.New(fault.Cancelled, "tessellation cancelled"), fault.Cancelled)
		}
		return errResult(fault.New(fault.KernelFailure, "%v", merr), fault.KernelFailure)
	}

	viz, aerr := accumulate(m, deflection, cancel)
	if aerr != nil {
		return errResult(aerr, fault.KernelFailure)
	}
	res := okResult(map[string]interface{}{
		"shape_id":     shapeId,
		"vertex_count": viz.Metadata.VertexCount,
		"face_count":   viz.Metadata.FaceCount,
	})
	res.Visualization = viz
	return res
}

// accumulate merges face triangulations into a single indexed mesh
func accumulate(m *brep.Mesh, deflection float64, cancel brep.CancelFn) (viz *MeshViz, err error) {
	viz = &MeshViz{
		Vertices: []float64{},
		Faces:    []int{},
		Normals:  []float64{},
	}
	if m == nil || m.NumTris() == 0 {
		viz.Metadata = MeshMeta{Deflection: deflection}
		return
	}

	// spatial bins over the padded bounding box for seam lookups
	min, max := m.BBox()
	pad := seamTol + 1e-12
	var bins gm.Bins
	err = bins.Init(
		[]float64{min.X - pad, min.Y - pad, min.Z - pad},
		[]float64{max.X + pad, max.Y + pad, max.Z + pad},
		20,
	)
	if err != nil {
		return nil, fault.New(fault.KernelFailure, "cannot initialise bins: %v", err)
	}

	var verts []v3.Vec
	var nsum []v3.Vec
	var binErr error
	addVert := func(p, n v3.Vec) int {
		if id := bins.Find([]float64{p.X, p.Y, p.Z}); id >= 0 {
			if p.Sub(verts[id]).Length() < seamTol {
				nsum[id] = nsum[id].Add(n)
				return id
			}
		}
		id := len(verts)
		verts = append(verts, p)
		nsum = append(nsum, n)
		if aerr := bins.Append([]float64{p.X, p.Y, p.Z}, id); aerr != nil {
			binErr = aerr
		}
		return id
	}

	for _, ft := range m.Faces {
		if cancel != nil && cancel() {
			return nil, fault.New(fault.Cancelled, "tessellation cancelled")
		}

		// map face-local indices to merged mesh indices
		local := make([]int, len(ft.V))
		for i, p := range ft.V {
			n := ft.N[i]
			if n.Length() == 0 {
				n = faceFallbackNormal(ft, i)
			}
			local[i] = addVert(p, n)
		}
		for i := 0; i < len(ft.I); i += 3 {
			a, b, c := local[ft.I[i]], local[ft.I[i+1]], local[ft.I[i+2]]
			if a == b || b == c || c == a {
				continue // degenerate after merging
			}
			viz.Faces = append(viz.Faces, a, b, c)
		}
	}

	if binErr != nil {
		return nil, fault.New(fault.KernelFailure, "cannot bin vertices: %v", binErr)
	}

	for i, p := range verts {
		viz.Vertices = append(viz.Vertices, p.X, p.Y, p.Z)
		n := nsum[i]
		if n.Length() < 1e-12 {
			n = v3.Vec{Z: 1}
		} else {
			n = geo.Unit3(n)
		}
		viz.Normals = append(viz.Normals, n.X, n.Y, n.Z)
	}
	viz.Metadata = MeshMeta{
		VertexCount: len(verts),
		FaceCount:   len(viz.Faces) / 3,
		Deflection:  deflection,
	}
	return
}

// faceFallbackNormal derives a vertex normal from the first triangle of the
// face that uses the vertex
func faceFallbackNormal(ft *brep.FaceTri, vi int) v3.Vec {
	for i := 0; i < len(ft.I); i += 3 {
		if ft.I[i] == vi || ft.I[i+1] == vi || ft.I[i+2] == vi {
			a, b, c := ft.V[ft.I[i]], ft.V[ft.I[i+1]], ft.V[ft.I[i+2]]
			n := b.Sub(a).Cross(c.Sub(a))
			if n.Length() > 0 {
				return geo.Unit3(n)
			}
		}
	}
	return v3.Vec{}
}
