// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocad/engine"
	"github.com/cpmech/gocad/fault"
	"github.com/cpmech/gocad/session"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Dispatch validates a request and runs it against the session's engine
func Dispatch(mgr *session.Manager, req *Request) *Response {
	if req.Op == "" {
		return invalid([]string{"op"}, "missing operation")
	}

	// session lifecycle first
	switch req.Op {
	case "open_session":
		id := req.SessionId
		if id == "" {
			id = io.Sf("session_%d", mgr.Now().UnixNano())
		}
		if _, err := mgr.GetOrCreate(id); err != nil {
			return invalid([]string{"session_id"}, "%v", err)
		}
		return &Response{Success: true, Data: map[string]interface{}{"session_id": id}}
	case "close_session":
		if req.SessionId == "" {
			return invalid([]string{"session_id"}, "missing session id")
		}
		mgr.Close(req.SessionId)
		return &Response{Success: true, Data: map[string]interface{}{"session_id": req.SessionId}}
	}

	if req.SessionId == "" {
		return invalid([]string{"session_id"}, "missing session id")
	}

	// cancel targets an existing engine only
	if req.Op == "cancel" {
		e, ok := mgr.Get(req.SessionId)
		if !ok {
			return fail(fault.SessionUnknown, "no engine for session %q", req.SessionId)
		}
		if req.OpId == "" {
			return invalid([]string{"op_id"}, "missing op id")
		}
		e.Cancel(req.OpId)
		return &Response{Success: true, Data: map[string]interface{}{"op_id": req.OpId}}
	}

	e, err := mgr.GetOrCreate(req.SessionId)
	if err != nil {
		return fail(fault.SessionUnknown, "%v", err)
	}

	switch req.Op {

	case "create_plane":
		if req.PlaneType == "" {
			return invalid([]string{"plane_type"}, "missing plane type")
		}
		origin := v3.Vec{X: req.OriginX, Y: req.OriginY, Z: req.OriginZ}
		var normal *v3.Vec
		if req.PlaneType == "Custom" {
			normal = &v3.Vec{X: req.NormalX, Y: req.NormalY, Z: req.NormalZ}
		}
		return e.CreatePlane(req.PlaneType, origin, normal)

	case "delete_plane":
		if req.PlaneId == "" {
			return invalid([]string{"plane_id"}, "missing plane id")
		}
		return e.DeletePlane(req.PlaneId)

	case "create_sketch":
		if req.PlaneId == "" {
			return invalid([]string{"plane_id"}, "missing plane id")
		}
		return e.CreateSketch(req.PlaneId)

	case "delete_sketch":
		if req.SketchId == "" {
			return invalid([]string{"sketch_id"}, "missing sketch id")
		}
		return e.DeleteSketch(req.SketchId)

	case "add_element":
		if missing := missingOf(req.SketchId, "sketch_id", req.ElementType, "element_type"); missing != nil {
			return invalid(missing, "missing fields")
		}
		return e.AddElement(req.SketchId, elementSpec(req))

	case "modify_element":
		if missing := missingOf(req.SketchId, "sketch_id", req.ElementId, "element_id"); missing != nil {
			return invalid(missing, "missing fields")
		}
		return e.ModifyElement(req.SketchId, req.ElementId, elementSpec(req))

	case "delete_element":
		if missing := missingOf(req.SketchId, "sketch_id", req.ElementId, "element_id"); missing != nil {
			return invalid(missing, "missing fields")
		}
		return e.DeleteElement(req.SketchId, req.ElementId)

	case "add_fillet":
		if missing := missingOf(req.SketchId, "sketch_id", req.Line1Id, "line1_id", req.Line2Id, "line2_id"); missing != nil {
			return invalid(missing, "missing fields")
		}
		return e.AddFillet(req.SketchId, req.Line1Id, req.Line2Id, req.Radius)

	case "add_chamfer":
		if missing := missingOf(req.SketchId, "sketch_id", req.Line1Id, "line1_id", req.Line2Id, "line2_id"); missing != nil {
			return invalid(missing, "missing fields")
		}
		return e.AddChamfer(req.SketchId, req.Line1Id, req.Line2Id, req.Distance)

	case "add_constraint":
		if missing := missingOf(req.SketchId, "sketch_id", req.ConstraintKind, "constraint_kind"); missing != nil {
			return invalid(missing, "missing fields")
		}
		return e.AddConstraint(req.SketchId, constraintSpec(req))

	case "update_constraint_value":
		if req.ConstraintId == "" {
			return invalid([]string{"constraint_id"}, "missing constraint id")
		}
		return e.UpdateConstraintValue(req.ConstraintId, req.ConstraintValue)

	case "delete_constraint":
		if req.ConstraintId == "" {
			return invalid([]string{"constraint_id"}, "missing constraint id")
		}
		return e.DeleteConstraint(req.ConstraintId)

	case "solve_sketch":
		if req.SketchId == "" {
			return invalid([]string{"sketch_id"}, "missing sketch id")
		}
		return e.SolveSketch(req.SketchId, req.OpId)

	case "infer_constraints":
		if req.SketchId == "" {
			return invalid([]string{"sketch_id"}, "missing sketch id")
		}
		return e.InferConstraints(req.SketchId, req.Apply)

	case "extrude":
		if req.SketchId == "" {
			return invalid([]string{"sketch_id"}, "missing sketch id")
		}
		spec := engine.ExtrudeSpec{
			ElementId: req.ElementId,
			Type:      req.ExtrudeType,
			Distance:  req.Distance,
			D1:        req.Distance1,
			D2:        req.Distance2,
			Reverse:   req.Reverse,
			TaperDeg:  req.TaperDeg,
		}
		if req.Direction == "custom" {
			spec.Direction = &v3.Vec{X: req.DirectionX, Y: req.DirectionY, Z: req.DirectionZ}
		}
		return e.Extrude(req.SketchId, spec, req.OpId)

	case "boolean_op":
		if missing := missingOf(req.Operation, "operation", req.ShapeA, "shape_a", req.ShapeB, "shape_b", req.ResultId, "result_id"); missing != nil {
			return invalid(missing, "missing fields")
		}
		return e.BooleanOp(req.Operation, req.ShapeA, req.ShapeB, req.ResultId, req.OpId)

	case "tessellate":
		if req.ShapeId == "" {
			return invalid([]string{"shape_id"}, "missing shape id")
		}
		return e.Tessellate(req.ShapeId, req.Deflection, req.OpId)

	case "visualize_plane":
		if req.PlaneId == "" {
			return invalid([]string{"plane_id"}, "missing plane id")
		}
		return e.VisualizePlane(req.PlaneId)

	case "visualize_sketch":
		if req.SketchId == "" {
			return invalid([]string{"sketch_id"}, "missing sketch id")
		}
		return e.VisualizeSketch(req.SketchId)

	case "visualize_element":
		if missing := missingOf(req.SketchId, "sketch_id", req.ElementId, "element_id"); missing != nil {
			return invalid(missing, "missing fields")
		}
		return e.VisualizeElement(req.SketchId, req.ElementId)

	case "export":
		if missing := missingOf(req.ShapeId, "shape_id", req.Format, "format"); missing != nil {
			return invalid(missing, "missing fields")
		}
		return e.Export(req.ShapeId, req.Format, req.Path)

	case "status":
		return e.StatusOp()
	}

	return invalid([]string{"op"}, "unknown operation %q", req.Op)
}

// elementSpec converts the flat request fields into an element spec
func elementSpec(req *Request) engine.ElementSpec {
	return engine.ElementSpec{
		Type:    req.ElementType,
		X1:      req.X1,
		Y1:      req.Y1,
		X2:      req.X2,
		Y2:      req.Y2,
		Xm:      req.XMid,
		Ym:      req.YMid,
		Cx:      req.CenterX,
		Cy:      req.CenterY,
		R:       req.Radius,
		W:       req.Width,
		H:       req.Height,
		Sides:   req.Sides,
		ArcType: req.ArcType,
	}
}

// constraintSpec converts the flat request fields into a constraint spec.
// Two-element kinds take their targets from line1_id/line2_id, single-element
// kinds from element_id
func constraintSpec(req *Request) engine.ConstraintSpec {
	spec := engine.ConstraintSpec{
		Kind:  req.ConstraintKind,
		Value: req.ConstraintValue,
		EndA:  req.EndA,
		EndB:  req.EndB,
	}
	if req.Line1Id != "" || req.Line2Id != "" {
		spec.Elements = []string{req.Line1Id, req.Line2Id}
	} else if req.ElementId != "" {
		spec.Elements = []string{req.ElementId}
	}
	return spec
}

func invalid(fields []string, msg string, args ...interface{}) *Response {
	return &Response{Success: false, Error: &engine.ErrInfo{
		Code:    fault.InvalidArgs,
		Message: io.Sf(msg, args...),
		Details: fields,
	}}
}

func fail(code, msg string, args ...interface{}) *Response {
	return &Response{Success: false, Error: &engine.ErrInfo{Code: code, Message: io.Sf(msg, args...)}}
}

// missingOf collects the names of empty required string fields, pairwise
// (value, name)
func missingOf(pairs ...string) (missing []string) {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i] == "" {
			missing = append(missing, pairs[i+1])
		}
	}
	return
}
