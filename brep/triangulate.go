// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brep

import (
	"math"

	"github.com/cpmech/gosl/chk"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// earClip triangulates a simple counter-clockwise polygon by ear clipping.
// Returns triples of indices into poly
func earClip(poly []v2.Vec) (tris []int, err error) {
	n := len(poly)
	if n < 3 {
		err = chk.Err("cannot triangulate polygon with %d vertices", n)
		return
	}

	// active vertex ring
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	guard := 0
	for len(idx) > 3 {
		guard++
		if guard > 2*n*n {
			err = chk.Err("ear clipping failed: polygon may be self-intersecting")
			return
		}
		clipped := false
		for i := 0; i < len(idx); i++ {
			ia := idx[(i+len(idx)-1)%len(idx)]
			ib := idx[i]
			ic := idx[(i+1)%len(idx)]
			a, b, c := poly[ia], poly[ib], poly[ic]

			// convex corner?
			cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
			if cross <= 1e-14 {
				continue
			}

			// no other active vertex inside the candidate ear
			contains := false
			for _, j := range idx {
				if j == ia || j == ib || j == ic {
					continue
				}
				if pointInTri(poly[j], a, b, c) {
					contains = true
					break
				}
			}
			if contains {
				continue
			}

			tris = append(tris, ia, ib, ic)
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// tolerate collinear runs: drop the flattest corner
			flat := 0
			best := math.Inf(1)
			for i := 0; i < len(idx); i++ {
				ia := idx[(i+len(idx)-1)%len(idx)]
				ib := idx[i]
				ic := idx[(i+1)%len(idx)]
				a, b, c := poly[ia], poly[ib], poly[ic]
				cross := math.Abs((b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X))
				if cross < best {
					best = cross
					flat = i
				}
			}
			if best > 1e-9 {
				err = chk.Err("ear clipping failed: no ear found")
				return
			}
			idx = append(idx[:flat], idx[flat+1:]...)
		}
	}
	tris = append(tris, idx[0], idx[1], idx[2])
	return
}

// pointInTri tells whether p lies inside triangle (a,b,c) or on its boundary
func pointInTri(p, a, b, c v2.Vec) bool {
	d1 := sign2(p, a, b)
	d2 := sign2(p, b, c)
	d3 := sign2(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func sign2(p, a, b v2.Vec) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}
