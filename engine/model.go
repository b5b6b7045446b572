// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocad/brep"
	"github.com/cpmech/gocad/constr"
	"github.com/cpmech/gocad/fault"
	"github.com/cpmech/gocad/feature"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ConstraintSpec carries the flat parameters of add_constraint
type ConstraintSpec struct {
	Kind       string
	Elements   []string
	Value      float64
	EndA, EndB int // Coincident endpoint selectors (0 = start, 1 = end)
}

// AddConstraint adds a constraint to a sketch. The constraint is validated
// against the current elements but not solved; call SolveSketch to apply
func (o *Engine) AddConstraint(sketchId string, spec ConstraintSpec) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	s, err := o.sketchOf(sketchId)
	if err != nil {
		return errResult(err, fault.NotFoundSketch)
	}
	kind, kerr := constr.KindFromString(spec.Kind)
	if kerr != nil {
		return errResult(fault.New(fault.InvalidArgs, "%v", kerr), fault.InvalidArgs)
	}
	need := 1
	if kind == constr.Coincident || kind == constr.Perpendicular || kind == constr.Parallel {
		need = 2
	}
	if len(spec.Elements) != need {
		return errResult(fault.WithDetails(fault.InvalidArgs, []string{"element_id"},
			"%v constraint needs %d target element(s), got %d", kind, need, len(spec.Elements)), fault.InvalidArgs)
	}
	for _, id := range spec.Elements {
		if _, gerr := s.Get(id); gerr != nil {
			return errResult(gerr, fault.NotFoundElement)
		}
	}
	if kind == constr.Length && spec.Value <= 0 {
		return errResult(fault.WithDetails(fault.InvalidArgs, []string{"constraint_value"},
			"length value must be positive (%g)", spec.Value), fault.InvalidArgs)
	}

	o.consCount++
	c := &constr.Constraint{
		Id:       io.Sf("constraint_%d", o.consCount),
		SketchId: s.Id,
		Kind:     kind,
		Targets:  append([]string(nil), spec.Elements...),
		Value:    spec.Value,
		EndA:     spec.EndA,
		EndB:     spec.EndB,
	}
	o.cons[c.Id] = c
	o.consOrder = append(o.consOrder, c.Id)
	return okResult(map[string]interface{}{"constraint_id": c.Id})
}

// UpdateConstraintValue changes the value of a dimensional constraint and
// re-solves its sketch. On failure the previous value is restored and the
// geometry stays untouched
func (o *Engine) UpdateConstraintValue(constraintId string, value float64) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	c, err := o.constraint(constraintId)
	if err != nil {
		return errResult(err, fault.NotFoundConstraint)
	}
	if c.Kind != constr.Length {
		return errResult(fault.New(fault.InvalidArgs,
			"constraint %q of kind %v has no value", c.Id, c.Kind), fault.InvalidArgs)
	}
	if value <= 0 {
		return errResult(fault.WithDetails(fault.InvalidArgs, []string{"constraint_value"},
			"length value must be positive (%g)", value), fault.InvalidArgs)
	}
	s, err := o.sketchOf(c.SketchId)
	if err != nil {
		return errResult(err, fault.NotFoundSketch)
	}

	prev := c.Value
	c.Value = value
	solver := constr.Solver{Verbose: o.Opts.Verbose}
	if serr := solver.Solve(s, o.sketchCons(s.Id), nil); serr != nil {
		c.Value = prev
		return errResult(serr, fault.ConstraintUnsolved)
	}
	return okResult(map[string]interface{}{"constraint_id": c.Id, "value": value})
}

// DeleteConstraint removes a constraint
func (o *Engine) DeleteConstraint(constraintId string) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	c, err := o.constraint(constraintId)
	if err != nil {
		return errResult(err, fault.NotFoundConstraint)
	}
	delete(o.cons, c.Id)
	o.consOrder = removeId(o.consOrder, c.Id)
	return okResult(map[string]interface{}{"constraint_id": c.Id})
}

// SolveSketch runs the constraint solver on a sketch
func (o *Engine) SolveSketch(sketchId, opId string) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	s, err := o.sketchOf(sketchId)
	if err != nil {
		return errResult(err, fault.NotFoundSketch)
	}
	cancel, done := o.cancelFn(opId)
	defer done()

	solver := constr.Solver{Verbose: o.Opts.Verbose}
	if serr := solver.Solve(s, o.sketchCons(s.Id), cancel); serr != nil {
		return errResult(serr, fault.ConstraintUnsolved)
	}
	res := okResult(map[string]interface{}{"sketch_id": s.Id})
	for _, id := range s.Order {
		res.Children = append(res.Children, elementViz(s, s.Elems[id]))
	}
	return res
}

// InferConstraints proposes Horizontal/Vertical constraints for almost
// axis-aligned lines; with apply the proposals are appended (without solving)
func (o *Engine) InferConstraints(sketchId string, apply bool) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	s, err := o.sketchOf(sketchId)
	if err != nil {
		return errResult(err, fault.NotFoundSketch)
	}
	props := constr.Infer(s, o.sketchCons(s.Id))
	out := make([]map[string]interface{}, 0, len(props))
	for _, p := range props {
		entry := map[string]interface{}{
			"constraint_kind": p.Kind.String(),
			"element_id":      p.Targets[0],
		}
		if apply {
			o.consCount++
			p.Id = io.Sf("constraint_%d", o.consCount)
			o.cons[p.Id] = p
			o.consOrder = append(o.consOrder, p.Id)
			entry["constraint_id"] = p.Id
		}
		out = append(out, entry)
	}
	return okResult(map[string]interface{}{"sketch_id": s.Id, "proposals": out, "applied": apply})
}

// ExtrudeSpec carries the flat parameters of the extrude operation
type ExtrudeSpec struct {
	ElementId string
	Type      string
	Distance  float64
	D1, D2    float64
	Direction *v3.Vec // nil means the sketch plane normal
	Reverse   bool
	TaperDeg  float64
}

// Extrude sweeps a sketch face into a solid and registers the result shape.
// Feature and shape share the identifier Extrude_{epoch_seconds}
func (o *Engine) Extrude(sketchId string, spec ExtrudeSpec, opId string) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	s, err := o.sketchOf(sketchId)
	if err != nil {
		return errResult(err, fault.NotFoundSketch)
	}
	etype, terr := feature.ExtrudeTypeFromString(spec.Type)
	if terr != nil {
		return errResult(fault.New(fault.InvalidArgs, "%v", terr), fault.InvalidArgs)
	}

	// unique feature id from epoch seconds
	sec := o.Now().Unix()
	id := io.Sf("Extrude_%d", sec)
	for _, exists := o.features[id]; exists; _, exists = o.features[id] {
		sec++
		id = io.Sf("Extrude_%d", sec)
	}

	ext := &feature.Extrude{
		Id:        id,
		SketchId:  s.Id,
		ElementId: spec.ElementId,
		Type:      etype,
		Distance:  spec.Distance,
		D1:        spec.D1,
		D2:        spec.D2,
		Custom:    spec.Direction,
		Reverse:   spec.Reverse,
		TaperDeg:  spec.TaperDeg,
	}
	cancel, done := o.cancelFn(opId)
	defer done()
	shape, xerr := ext.Execute(o.bk, s, cancel)
	if xerr != nil {
		return errResult(xerr, fault.KernelFailure)
	}
	if cancel != nil && cancel() {
		return errResult(fault.New(fault.Cancelled, "extrusion cancelled"), fault.Cancelled)
	}
	ext.ResultId = id
	o.features[id] = ext
	o.featOrder = append(o.featOrder, id)
	o.putShape(id, shape)

	return okResult(map[string]interface{}{
		"feature_id": id,
		"shape_id":   id,
		"valid":      ext.Valid,
		"warnings":   ext.Warnings,
	})
}

// BooleanOp combines two shapes and registers the result under resultId
func (o *Engine) BooleanOp(op, shapeA, shapeB, resultId string, opId string) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	if resultId == "" {
		return errResult(fault.WithDetails(fault.InvalidArgs, []string{"result_id"},
			"boolean needs a result id"), fault.InvalidArgs)
	}
	a, err := o.shape(shapeA)
	if err != nil {
		return errResult(err, fault.NotFoundShape)
	}
	b, err := o.shape(shapeB)
	if err != nil {
		return errResult(err, fault.NotFoundShape)
	}
	res, berr := o.bk.Boolean(op, a, b)
	if berr != nil {
		return errResult(fault.New(fault.InvalidArgs, "%v", berr), fault.KernelFailure)
	}

	// the BSP work runs inside the validation tessellation
	cancel, done := o.cancelFn(opId)
	defer done()
	valid := o.bk.Validate(res, cancel)
	if cancel != nil && cancel() {
		return errResult(fault.New(fault.Cancelled, "boolean operation cancelled"), fault.Cancelled)
	}
	o.putShape(resultId, res)
	return okResult(map[string]interface{}{"shape_id": resultId, "valid": valid})
}

// Export writes a shape to a file. Only the binary STL writer is available;
// other formats return NotImplemented. The tessellation runs at deflection 0.1
func (o *Engine) Export(shapeId, format, path string) *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.touch()

	s, err := o.shape(shapeId)
	if err != nil {
		return errResult(err, fault.NotFoundShape)
	}
	switch format {
	case "stl":
	case "step", "iges", "obj":
		return errResult(fault.New(fault.NotImplemented, "export format %q is not implemented", format), fault.NotImplemented)
	default:
		return errResult(fault.WithDetails(fault.InvalidArgs, []string{"format"},
			"unknown export format %q", format), fault.InvalidArgs)
	}
	if path == "" {
		path = io.Sf("%s.stl", shapeId)
	}
	m, merr := o.bk.Tessellate(s, 0.1, nil)
	if merr != nil {
		return errResult(fault.New(fault.KernelFailure, "%v", merr), fault.KernelFailure)
	}
	if werr := brep.SaveSTL(path, m); werr != nil {
		return errResult(fault.New(fault.KernelFailure, "cannot write STL: %v", werr), fault.KernelFailure)
	}
	return okResult(map[string]interface{}{"shape_id": shapeId, "path": path, "triangles": m.NumTris()})
}

// StatusOp reports entity counts
func (o *Engine) StatusOp() *Result {
	counts := o.Status()
	data := make(map[string]interface{}, len(counts))
	for k, v := range counts {
		data[k] = v
	}
	return okResult(data)
}
