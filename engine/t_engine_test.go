// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocad/fault"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// testEngine returns an engine with a frozen clock
func testEngine() *Engine {
	e := New(Options{})
	e.Now = func() time.Time { return time.UnixMilli(1700000001234) }
	return e
}

func Test_engine01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("engine01. create XY plane")

	e := testEngine()
	res := e.CreatePlane("XY", v3.Vec{}, nil)
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	chk.StrAssert(res.Data["plane_id"].(string), "plane_1")

	viz, ok := res.Visualization.(*PlaneViz)
	if !ok {
		tst.Errorf("plane visualization missing\n")
		return
	}
	chk.StrAssert(viz.PlaneId, "plane_1")
	chk.StrAssert(viz.PlaneType, "XY")
	chk.Vector(tst, "origin", 1e-17, viz.Origin, []float64{0, 0, 0})
	chk.Vector(tst, "normal", 1e-17, viz.Normal, []float64{0, 0, 1})
	chk.Vector(tst, "u_axis", 1e-17, viz.UAxis, []float64{1, 0, 0})
	chk.Vector(tst, "v_axis", 1e-17, viz.VAxis, []float64{0, 1, 0})
}

func Test_engine02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("engine02. sketch + rectangle + extrude + tessellate")

	e := testEngine()
	e.CreatePlane("XY", v3.Vec{}, nil)

	res := e.CreateSketch("plane_1")
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	chk.StrAssert(res.Data["sketch_id"].(string), "sketch_1")

	res = e.AddElement("sketch_1", ElementSpec{Type: "rectangle", X1: 0, Y1: 0, W: 10, H: 5})
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	parentId := res.Data["element_id"].(string)
	if !strings.HasPrefix(parentId, "rectangle_1_") {
		tst.Errorf("unexpected parent id %q\n", parentId)
	}
	chk.IntAssert(len(res.Children), 4)
	suffixes := []string{"_line_bottom", "_line_right", "_line_top", "_line_left"}
	for i, c := range res.Children {
		chk.StrAssert(c.ElementId, parentId+suffixes[i])
	}
	pviz := res.Visualization.(*ElementViz)
	if !pviz.IsComposite || len(pviz.Points3D) != 0 {
		tst.Errorf("composite parent payload must have no points\n")
	}

	res = e.Extrude("sketch_1", ExtrudeSpec{ElementId: parentId, Type: "blind", Distance: 3}, "")
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	shapeId := res.Data["shape_id"].(string)
	if !strings.HasPrefix(shapeId, "Extrude_") {
		tst.Errorf("unexpected shape id %q\n", shapeId)
	}
	if !res.Data["valid"].(bool) {
		tst.Errorf("extrusion must validate\n")
	}

	res = e.Tessellate(shapeId, 0.1, "")
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	mesh := res.Visualization.(*MeshViz)
	if mesh.Metadata.FaceCount < 12 {
		tst.Errorf("expected at least 12 faces, got %d\n", mesh.Metadata.FaceCount)
	}

	// bounding box of the accumulated mesh
	min := []float64{1e30, 1e30, 1e30}
	max := []float64{-1e30, -1e30, -1e30}
	for i := 0; i < len(mesh.Vertices); i += 3 {
		for j := 0; j < 3; j++ {
			v := mesh.Vertices[i+j]
			if v < min[j] {
				min[j] = v
			}
			if v > max[j] {
				max[j] = v
			}
		}
	}
	chk.Vector(tst, "aabb min", 1e-6, min, []float64{0, 0, 0})
	chk.Vector(tst, "aabb max", 1e-6, max, []float64{10, 5, 3})

	// indices are 0-based and in range
	for _, idx := range mesh.Faces {
		if idx < 0 || idx >= mesh.Metadata.VertexCount {
			tst.Errorf("face index %d out of range\n", idx)
			return
		}
	}
	chk.IntAssert(len(mesh.Normals), len(mesh.Vertices))
}

func Test_engine03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("engine03. plane aliases and deletion guard")

	e := testEngine()
	e.CreatePlane("XY", v3.Vec{}, nil)

	// legacy alias resolves to the canonical plane
	res := e.CreateSketch("XY_Plane")
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	chk.StrAssert(res.Data["plane_id"].(string), "plane_1")

	// plane with a sketch cannot go
	res = e.DeletePlane("plane_1")
	if res.Success || res.Error.Code != fault.InvariantViolated {
		tst.Errorf("expected InvariantViolated, got %v\n", res.Error)
	}

	// after deleting the sketch the plane can go
	e.DeleteSketch("sketch_1")
	res = e.DeletePlane("plane_1")
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
	}
}

func Test_engine04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("engine04. fillet envelope carries trimmed lines")

	e := testEngine()
	e.CreatePlane("XY", v3.Vec{}, nil)
	e.CreateSketch("plane_1")
	r1 := e.AddElement("sketch_1", ElementSpec{Type: "line", X1: 0, Y1: 0, X2: 10, Y2: 0})
	r2 := e.AddElement("sketch_1", ElementSpec{Type: "line", X1: 10, Y1: 0, X2: 10, Y2: 10})
	l1 := r1.Data["element_id"].(string)
	l2 := r2.Data["element_id"].(string)

	res := e.AddFillet("sketch_1", l1, l2, 2)
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	viz := res.Visualization.(*ElementViz)
	chk.StrAssert(viz.ElementType, "fillet")
	chk.Scalar(tst, "center x", 1e-14, viz.Parameters2D["center_x"].(float64), 8)
	chk.Scalar(tst, "center y", 1e-14, viz.Parameters2D["center_y"].(float64), 2)
	chk.IntAssert(len(res.Children), 2)
	chk.StrAssert(res.Children[0].ElementId, l1)
	chk.StrAssert(res.Children[1].ElementId, l2)
	chk.Scalar(tst, "trimmed l1 x2", 1e-14, res.Children[0].Parameters2D["x2"].(float64), 8)
}

func Test_engine05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("engine05. constraints: solve and idempotent value update")

	e := testEngine()
	e.CreatePlane("XY", v3.Vec{}, nil)
	e.CreateSketch("plane_1")
	r := e.AddElement("sketch_1", ElementSpec{Type: "line", X1: 0, Y1: 0, X2: 3, Y2: 0})
	lid := r.Data["element_id"].(string)

	res := e.AddConstraint("sketch_1", ConstraintSpec{Kind: "length", Elements: []string{lid}, Value: 5})
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	cid := res.Data["constraint_id"].(string)
	chk.StrAssert(cid, "constraint_1")

	res = e.SolveSketch("sketch_1", "")
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	var lviz *ElementViz
	for _, c := range res.Children {
		if c.ElementId == lid {
			lviz = c
		}
	}
	chk.Scalar(tst, "x1", 1e-6, lviz.Parameters2D["x1"].(float64), -1)
	chk.Scalar(tst, "x2", 1e-6, lviz.Parameters2D["x2"].(float64), 4)

	// two identical updates leave the geometry bitwise equal
	res = e.UpdateConstraintValue(cid, 7)
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	first := e.VisualizeElement("sketch_1", lid).Visualization.(*ElementViz).Parameters2D
	res = e.UpdateConstraintValue(cid, 7)
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	second := e.VisualizeElement("sketch_1", lid).Visualization.(*ElementViz).Parameters2D
	for _, k := range []string{"x1", "y1", "x2", "y2"} {
		if first[k].(float64) != second[k].(float64) {
			tst.Errorf("geometry changed on repeated update: %s\n", k)
		}
	}

	// deletion
	res = e.DeleteConstraint(cid)
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
	}
	res = e.DeleteConstraint(cid)
	if res.Success || res.Error.Code != fault.NotFoundConstraint {
		tst.Errorf("expected NotFoundConstraint, got %v\n", res.Error)
	}
}

func Test_engine06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("engine06. boolean union of two extrusions")

	e := testEngine()
	e.CreatePlane("XY", v3.Vec{}, nil)
	e.CreateSketch("plane_1")
	ra := e.AddElement("sketch_1", ElementSpec{Type: "rectangle", X1: 0, Y1: 0, W: 2, H: 2})
	rb := e.AddElement("sketch_1", ElementSpec{Type: "rectangle", X1: 1, Y1: 0, W: 2, H: 2})
	pa := ra.Data["element_id"].(string)
	pb := rb.Data["element_id"].(string)

	s1 := e.Extrude("sketch_1", ExtrudeSpec{ElementId: pa, Type: "blind", Distance: 2}, "")
	s2 := e.Extrude("sketch_1", ExtrudeSpec{ElementId: pb, Type: "blind", Distance: 2}, "")
	idA := s1.Data["shape_id"].(string)
	idB := s2.Data["shape_id"].(string)
	if idA == idB {
		tst.Errorf("shape ids must be unique\n")
		return
	}

	res := e.BooleanOp("union", idA, idB, "combined", "")
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	chk.StrAssert(res.Data["shape_id"].(string), "combined")

	res = e.Tessellate("combined", 0.1, "")
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}

	// missing operand
	res = e.BooleanOp("cut", "nope", idB, "x", "")
	if res.Success || res.Error.Code != fault.NotFoundShape {
		tst.Errorf("expected NotFoundShape, got %v\n", res.Error)
	}
}

func Test_engine07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("engine07. export: stl works, others are stubs")

	e := testEngine()
	e.CreatePlane("XY", v3.Vec{}, nil)
	e.CreateSketch("plane_1")
	r := e.AddElement("sketch_1", ElementSpec{Type: "rectangle", X1: 0, Y1: 0, W: 1, H: 1})
	s := e.Extrude("sketch_1", ExtrudeSpec{ElementId: r.Data["element_id"].(string), Type: "blind", Distance: 1}, "")
	shapeId := s.Data["shape_id"].(string)

	res := e.Export(shapeId, "step", "")
	if res.Success || res.Error.Code != fault.NotImplemented {
		tst.Errorf("expected NotImplemented, got %v\n", res.Error)
	}

	res = e.Export(shapeId, "stl", io.Sf("%s/box.stl", tst.TempDir()))
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	if res.Data["triangles"].(int) < 12 {
		tst.Errorf("expected at least 12 triangles\n")
	}
}

func Test_engine08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("engine08. inference proposals and status")

	e := testEngine()
	e.CreatePlane("XY", v3.Vec{}, nil)
	e.CreateSketch("plane_1")
	e.AddElement("sketch_1", ElementSpec{Type: "line", X1: 0, Y1: 0, X2: 10, Y2: 0.001})

	res := e.InferConstraints("sketch_1", false)
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	props := res.Data["proposals"].([]map[string]interface{})
	chk.IntAssert(len(props), 1)
	chk.StrAssert(props[0]["constraint_kind"].(string), "horizontal")

	// apply appends them
	res = e.InferConstraints("sketch_1", true)
	props = res.Data["proposals"].([]map[string]interface{})
	chk.IntAssert(len(props), 1)

	st := e.StatusOp()
	chk.IntAssert(st.Data["constraints"].(int), 1)
	chk.IntAssert(st.Data["planes"].(int), 1)
	chk.IntAssert(st.Data["sketches"].(int), 1)
}

func Test_engine09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("engine09. error envelopes carry taxonomy codes")

	e := testEngine()

	res := e.CreateSketch("plane_1")
	if res.Success || res.Error.Code != fault.NotFoundPlane {
		tst.Errorf("expected NotFoundPlane, got %v\n", res.Error)
	}

	res = e.CreatePlane("Diagonal", v3.Vec{}, nil)
	if res.Success || res.Error.Code != fault.InvalidArgs {
		tst.Errorf("expected InvalidArgs, got %v\n", res.Error)
	}

	e.CreatePlane("XY", v3.Vec{}, nil)
	e.CreateSketch("plane_1")
	res = e.AddElement("sketch_1", ElementSpec{Type: "circle", Cx: 0, Cy: 0, R: -1})
	if res.Success || res.Error.Code != fault.InvalidArgs {
		tst.Errorf("expected InvalidArgs, got %v\n", res.Error)
	}

	// open element is not extrudable
	r := e.AddElement("sketch_1", ElementSpec{Type: "line", X1: 0, Y1: 0, X2: 1, Y2: 0})
	res = e.Extrude("sketch_1", ExtrudeSpec{ElementId: r.Data["element_id"].(string), Type: "blind", Distance: 1}, "")
	if res.Success || res.Error.Code != fault.NotExtrudable {
		tst.Errorf("expected NotExtrudable, got %v\n", res.Error)
	}
}

func Test_engine10(tst *testing.T) {

	//verbose()
	chk.PrintTitle("engine10. symmetric extrusion and polygon faces")

	e := testEngine()
	e.CreatePlane("XZ", v3.Vec{}, nil)
	e.CreateSketch("plane_1")
	r := e.AddElement("sketch_1", ElementSpec{Type: "polygon", Cx: 0, Cy: 0, Sides: 6, R: 2})
	pid := r.Data["element_id"].(string)
	chk.IntAssert(len(r.Children), 6)

	res := e.Extrude("sketch_1", ExtrudeSpec{ElementId: pid, Type: "symmetric", D1: 1, D2: 1}, "")
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	res = e.Tessellate(res.Data["shape_id"].(string), 0.05, "")
	if !res.Success {
		tst.Errorf("%v\n", res.Error)
		return
	}
	mesh := res.Visualization.(*MeshViz)

	// XZ plane normal is +Y; symmetric extrusion spans [-1,1] in world Y
	minY, maxY := 1e30, -1e30
	for i := 1; i < len(mesh.Vertices); i += 3 {
		if mesh.Vertices[i] < minY {
			minY = mesh.Vertices[i]
		}
		if mesh.Vertices[i] > maxY {
			maxY = mesh.Vertices[i]
		}
	}
	chk.Scalar(tst, "ymin", 1e-9, minY, -1)
	chk.Scalar(tst, "ymax", 1e-9, maxY, 1)
}
