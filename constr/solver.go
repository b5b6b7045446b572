// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constr

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gocad/brep"
	"github.com/cpmech/gocad/fault"
	"github.com/cpmech/gocad/sketch"
)

// solver tolerances and limits
const (
	tolRes   = 1e-8  // convergence on ‖r‖∞
	tolStep  = 1e-10 // convergence on ‖Δx‖∞
	tolPinv  = 1e-10 // singular value cutoff for the generalized inverse
	maxIt    = 50    // maximum Newton iterations
	minAlpha = 1.0 / 64.0
)

// Solver solves the constraints of one sketch with a damped Newton-Raphson
// method. The Jacobian comes from forward finite differences; the step is the
// minimum-norm solution via the generalized inverse, so under-determined
// systems move as little as possible
type Solver struct {
	Verbose bool
}

// Solve runs the iterations and, on success, propagates the solved values
// back into the sketch elements. On any failure the sketch stays untouched
func (o *Solver) Solve(sk *sketch.Sketch, cons []*Constraint, cancel brep.CancelFn) (err error) {
	if len(cons) == 0 {
		return
	}
	sys, err := newVarSys(sk, cons)
	if err != nil {
		return
	}
	n := len(sys.x)
	m := 0
	for _, c := range cons {
		m += c.Kind.NumRows()
	}

	x := make([]float64, n)
	copy(x, sys.x)
	r := make([]float64, m)
	rTrial := make([]float64, m)
	xTrial := make([]float64, n)
	dx := make([]float64, n)
	J := la.MatAlloc(m, n)
	Ji := la.MatAlloc(n, m)

	if err = o.residuals(r, x, sys, cons); err != nil {
		return
	}

	var it int
	for it = 0; it < maxIt; it++ {

		// check cancellation at iteration boundaries
		if cancel != nil && cancel() {
			return fault.New(fault.Cancelled, "constraint solving cancelled")
		}

		// converged on residual?
		normR := vecNormInf(r)
		if o.Verbose {
			io.Pf("%4d%23.15e\n", it, normR)
		}
		if normR < tolRes {
			break
		}

		// Jacobian by forward finite differences
		for j := 0; j < n; j++ {
			h := math.Max(1e-6, 1e-6*math.Abs(x[j]))
			copy(xTrial, x)
			xTrial[j] += h
			if err = o.residuals(rTrial, xTrial, sys, cons); err != nil {
				return
			}
			for i := 0; i < m; i++ {
				J[i][j] = (rTrial[i] - r[i]) / h
			}
		}

		// minimum-norm Newton step: Δx = -J⁺ r
		if err = la.MatInvG(Ji, J, tolPinv); err != nil {
			return fault.New(fault.ConstraintUnsolved, "cannot invert Jacobian: %v", err)
		}
		for j := 0; j < n; j++ {
			dx[j] = 0
			for i := 0; i < m; i++ {
				dx[j] -= Ji[j][i] * r[i]
			}
		}

		// converged on step size?
		if vecNormInf(dx) < tolStep {
			break
		}

		// damping: halve α until the residual decreases
		alpha := 1.0
		for {
			for j := 0; j < n; j++ {
				xTrial[j] = x[j] + alpha*dx[j]
			}
			if err = o.residuals(rTrial, xTrial, sys, cons); err != nil {
				return
			}
			if vecNormInf(rTrial) < vecNormInf(r) || alpha <= minAlpha {
				break
			}
			alpha /= 2
		}
		copy(x, xTrial)
		copy(r, rTrial)
	}

	// diagnose the final state
	if vecNormInf(r) >= tolRes {
		if m > n {
			return fault.New(fault.ConstraintInconsistent, "over-determined system did not reach tolerance: ‖r‖ = %g", vecNormInf(r))
		}
		return fault.New(fault.ConstraintUnsolved, "no convergence after %d iterations: ‖r‖ = %g", it, vecNormInf(r))
	}

	// success: propagate
	sys.writeBack(x)
	return
}

// residuals evaluates one row per constraint condition at x
func (o *Solver) residuals(r, x []float64, sys *varSys, cons []*Constraint) (err error) {
	row := 0
	for _, c := range cons {
		switch c.Kind {

		case Length:
			lr, lerr := sys.lineOf(c.Targets[0])
			if lerr != nil {
				return lerr
			}
			dx := x[lr.p2.ix] - x[lr.p1.ix]
			dy := x[lr.p2.iy] - x[lr.p1.iy]
			r[row] = math.Sqrt(dx*dx+dy*dy) - c.Value
			row++

		case Horizontal:
			lr, lerr := sys.lineOf(c.Targets[0])
			if lerr != nil {
				return lerr
			}
			r[row] = x[lr.p2.iy] - x[lr.p1.iy]
			row++

		case Vertical:
			lr, lerr := sys.lineOf(c.Targets[0])
			if lerr != nil {
				return lerr
			}
			r[row] = x[lr.p2.ix] - x[lr.p1.ix]
			row++

		case Coincident:
			lA, lerr := sys.lineOf(c.Targets[0])
			if lerr != nil {
				return lerr
			}
			lB, lerr := sys.lineOf(c.Targets[1])
			if lerr != nil {
				return lerr
			}
			pa := lA.end(c.EndA)
			pb := lB.end(c.EndB)
			r[row] = x[pa.ix] - x[pb.ix]
			r[row+1] = x[pa.iy] - x[pb.iy]
			row += 2

		case Perpendicular:
			lA, lB, lerr := sys.twoLines(c)
			if lerr != nil {
				return lerr
			}
			r[row] = (x[lA.p2.ix]-x[lA.p1.ix])*(x[lB.p2.ix]-x[lB.p1.ix]) +
				(x[lA.p2.iy]-x[lA.p1.iy])*(x[lB.p2.iy]-x[lB.p1.iy])
			row++

		case Parallel:
			lA, lB, lerr := sys.twoLines(c)
			if lerr != nil {
				return lerr
			}
			r[row] = (x[lA.p2.ix]-x[lA.p1.ix])*(x[lB.p2.iy]-x[lB.p1.iy]) -
				(x[lA.p2.iy]-x[lA.p1.iy])*(x[lB.p2.ix]-x[lB.p1.ix])
			row++

		default:
			return fault.New(fault.InvalidArgs, "unknown constraint kind %d", c.Kind)
		}
	}
	return
}

// twoLines resolves both targets of a two-line constraint
func (o *varSys) twoLines(c *Constraint) (lA, lB *lineRef, err error) {
	lA, err = o.lineOf(c.Targets[0])
	if err != nil {
		return
	}
	lB, err = o.lineOf(c.Targets[1])
	return
}

func vecNormInf(v []float64) (n float64) {
	for _, x := range v {
		if math.Abs(x) > n {
			n = math.Abs(x)
		}
	}
	return
}
