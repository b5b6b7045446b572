// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constr

import (
	"math"

	"github.com/cpmech/gocad/sketch"
)

// inference thresholds
const (
	inferAbs = 1e-4 // absolute near-axis tolerance
	inferRel = 1e-2 // relative near-axis tolerance
)

// Infer scans the lines of a sketch and proposes Horizontal/Vertical
// constraints for lines that are almost axis-aligned. Proposals conflicting
// with existing constraints on the same line are skipped. The proposals are
// returned without ids; the caller decides whether to append them
func Infer(sk *sketch.Sketch, existing []*Constraint) (proposals []*Constraint) {

	// existing H/V per line
	hv := make(map[string]Kind)
	for _, c := range existing {
		if c.Kind == Horizontal || c.Kind == Vertical {
			hv[c.Targets[0]] = c.Kind
		}
	}

	for _, id := range sk.Order {
		e := sk.Elems[id]
		if e.Kind != sketch.KindLine {
			continue
		}
		if _, has := hv[id]; has {
			continue
		}
		dx := math.Abs(e.X2 - e.X1)
		dy := math.Abs(e.Y2 - e.Y1)
		if dy < inferAbs || dy < inferRel*dx {
			proposals = append(proposals, &Constraint{
				SketchId: sk.Id, Kind: Horizontal, Targets: []string{id},
			})
			continue
		}
		if dx < inferAbs || dx < inferRel*dy {
			proposals = append(proposals, &Constraint{
				SketchId: sk.Id, Kind: Vertical, Targets: []string{id},
			})
		}
	}
	return
}
