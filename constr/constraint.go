// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package constr implements dimensional and geometric constraints on sketch
// elements and a damped Newton-Raphson solver for them
package constr

import (
	"github.com/cpmech/gosl/chk"
)

// Kind tags the constraint variant
type Kind int

// constraint kinds
const (
	Length Kind = iota
	Horizontal
	Vertical
	Coincident
	Perpendicular
	Parallel
)

// String returns the kind name as used in payloads
func (o Kind) String() string {
	switch o {
	case Length:
		return "length"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Coincident:
		return "coincident"
	case Perpendicular:
		return "perpendicular"
	case Parallel:
		return "parallel"
	}
	return "unknown"
}

// KindFromString parses a constraint kind name
func KindFromString(s string) (k Kind, err error) {
	switch s {
	case "length":
		k = Length
	case "horizontal":
		k = Horizontal
	case "vertical":
		k = Vertical
	case "coincident":
		k = Coincident
	case "perpendicular":
		k = Perpendicular
	case "parallel":
		k = Parallel
	default:
		err = chk.Err("unknown constraint kind %q", s)
	}
	return
}

// NumRows returns the number of residual rows the kind contributes
func (o Kind) NumRows() int {
	if o == Coincident {
		return 2
	}
	return 1
}

// Constraint ties one or two sketch elements to a condition
type Constraint struct {
	Id       string
	SketchId string
	Kind     Kind
	Targets  []string // element ids; one for Length/Horizontal/Vertical, two otherwise
	Value    float64  // Length only

	// Coincident: which endpoint of each target (0 = start, 1 = end)
	EndA, EndB int
}
