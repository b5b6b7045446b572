// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brep

import (
	"errors"
)

// CancelFn reports whether the current operation was cancelled. It is polled
// at loop boundaries of long-running work; nil means "never cancelled"
type CancelFn func() bool

// ErrCancelled is returned by long-running operations aborted via CancelFn
var ErrCancelled = errors.New("operation cancelled")

// Shape is a solid which can be tessellated
type Shape interface {
	Mesh(defl float64, cancel CancelFn) (*Mesh, error)
}

// Validate checks that a shape encloses a positive volume. For prisms the
// tessellation must also be edge-manifold (every edge shared by two
// triangles). The cancel flag is polled by the underlying meshing; a
// cancelled validation reports false
func Validate(shape Shape, cancel CancelFn) bool {
	m, err := shape.Mesh(0.1, cancel)
	if err != nil {
		return false
	}
	if m.NumTris() < 4 {
		return false
	}
	if m.Volume() < 1e-12 {
		return false
	}
	if _, ok := shape.(*Prism); ok {
		return edgeManifold(m)
	}
	return true
}

// edgeManifold checks that every undirected edge of the mesh is shared by
// exactly two triangles, after merging vertices within tolerance
func edgeManifold(m *Mesh) bool {
	type vkey struct{ x, y, z int64 }
	const s = 1e6 // quantization: 1e-6 grid
	vid := make(map[vkey]int)
	id := func(i, f int) int {
		p := m.Faces[f].V[i]
		k := vkey{int64(p.X*s + 0.5), int64(p.Y*s + 0.5), int64(p.Z*s + 0.5)}
		if p.X < 0 {
			k.x = int64(p.X*s - 0.5)
		}
		if p.Y < 0 {
			k.y = int64(p.Y*s - 0.5)
		}
		if p.Z < 0 {
			k.z = int64(p.Z*s - 0.5)
		}
		if v, ok := vid[k]; ok {
			return v
		}
		v := len(vid)
		vid[k] = v
		return v
	}
	type ekey struct{ a, b int }
	count := make(map[ekey]int)
	for f, ft := range m.Faces {
		for i := 0; i < len(ft.I); i += 3 {
			v := [3]int{id(ft.I[i], f), id(ft.I[i+1], f), id(ft.I[i+2], f)}
			for j := 0; j < 3; j++ {
				a, b := v[j], v[(j+1)%3]
				if a > b {
					a, b = b, a
				}
				count[ekey{a, b}]++
			}
		}
	}
	for _, c := range count {
		if c != 2 {
			return false
		}
	}
	return true
}
