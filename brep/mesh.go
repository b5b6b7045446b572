// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brep

import (
	"math"

	"github.com/deadsy/sdfx/render"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// FaceTri holds the triangulation of a single face of a shape
type FaceTri struct {
	V []v3.Vec // vertices
	N []v3.Vec // per-vertex normals (same length as V)
	I []int    // triangle indices; 3 per triangle
}

// NumTris returns the number of triangles
func (o *FaceTri) NumTris() int {
	return len(o.I) / 3
}

// Mesh is the tessellation of a shape, one triangulation per face
type Mesh struct {
	Faces []*FaceTri
}

// NumTris returns the total number of triangles
func (o *Mesh) NumTris() (n int) {
	for _, f := range o.Faces {
		n += f.NumTris()
	}
	return
}

// Triangles converts the mesh to sdfx render triangles
func (o *Mesh) Triangles() (tris []*render.Triangle3) {
	for _, f := range o.Faces {
		for i := 0; i < len(f.I); i += 3 {
			tris = append(tris, &render.Triangle3{V: [3]v3.Vec{
				f.V[f.I[i]], f.V[f.I[i+1]], f.V[f.I[i+2]],
			}})
		}
	}
	return
}

// BBox returns the axis-aligned bounding box of the mesh
func (o *Mesh) BBox() (min, max v3.Vec) {
	min = v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = min.Neg()
	for _, f := range o.Faces {
		for _, p := range f.V {
			min.X = math.Min(min.X, p.X)
			min.Y = math.Min(min.Y, p.Y)
			min.Z = math.Min(min.Z, p.Z)
			max.X = math.Max(max.X, p.X)
			max.Y = math.Max(max.Y, p.Y)
			max.Z = math.Max(max.Z, p.Z)
		}
	}
	return
}

// Volume returns the signed volume enclosed by the mesh (divergence theorem).
// Positive for outward-oriented closed meshes
func (o *Mesh) Volume() (vol float64) {
	for _, f := range o.Faces {
		for i := 0; i < len(f.I); i += 3 {
			a := f.V[f.I[i]]
			b := f.V[f.I[i+1]]
			c := f.V[f.I[i+2]]
			vol += a.Dot(b.Cross(c)) / 6.0
		}
	}
	return
}

// SaveSTL writes the mesh to a binary STL file
func SaveSTL(path string, mesh *Mesh) error {
	return render.SaveSTL(path, mesh.Triangles())
}

// triNormal returns the unit normal of a triangle; zero for degenerate triangles
func triNormal(a, b, c v3.Vec) v3.Vec {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Length()
	if l == 0 {
		return n
	}
	return n.DivScalar(l)
}
