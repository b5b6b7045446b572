// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gocad/engine"
	"github.com/cpmech/gocad/fault"
	"github.com/cpmech/gocad/session"
)

func newManager() *session.Manager {
	return session.NewManager(session.Options{})
}

func TestCreatePlaneScenario(t *testing.T) {
	mgr := newManager()

	// XY plane at the origin with the documented canonical axes
	res := Dispatch(mgr, &Request{
		SessionId: "s1", Op: "create_plane", PlaneType: "XY",
		OriginX: 0, OriginY: 0, OriginZ: 0,
	})
	require.True(t, res.Success)
	assert.Equal(t, "plane_1", res.Data["plane_id"])

	viz, ok := res.Visualization.(*engine.PlaneViz)
	require.True(t, ok)
	assert.Equal(t, "plane_1", viz.PlaneId)
	assert.Equal(t, "XY", viz.PlaneType)
	assert.Equal(t, []float64{0, 0, 0}, viz.Origin)
	assert.Equal(t, []float64{0, 0, 1}, viz.Normal)
	assert.Equal(t, []float64{1, 0, 0}, viz.UAxis)
	assert.Equal(t, []float64{0, 1, 0}, viz.VAxis)
}

func TestFlatRecordRoundTrip(t *testing.T) {
	// the wire form is flat: no nested parameters object
	payload := []byte(`{
		"session_id": "s1",
		"op": "add_element",
		"sketch_id": "sketch_1",
		"element_type": "rectangle",
		"x1": 0, "y1": 0, "width": 10, "height": 5
	}`)
	var req Request
	require.NoError(t, json.Unmarshal(payload, &req))
	assert.Equal(t, "rectangle", req.ElementType)
	assert.Equal(t, 10.0, req.Width)

	mgr := newManager()
	Dispatch(mgr, &Request{SessionId: "s1", Op: "create_plane", PlaneType: "XY"})
	Dispatch(mgr, &Request{SessionId: "s1", Op: "create_sketch", PlaneId: "plane_1"})
	res := Dispatch(mgr, &req)
	require.True(t, res.Success)
	assert.Len(t, res.Children, 4)

	// envelope serializes with the documented field names
	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"visualization_data"`)
	assert.Contains(t, string(out), `"child_visualizations"`)
	assert.Contains(t, string(out), `"points_3d"`)
}

func TestValidation(t *testing.T) {
	mgr := newManager()

	res := Dispatch(mgr, &Request{SessionId: "s1"})
	require.False(t, res.Success)
	assert.Equal(t, fault.InvalidArgs, res.Error.Code)

	res = Dispatch(mgr, &Request{Op: "create_plane", PlaneType: "XY"})
	require.False(t, res.Success)
	assert.Contains(t, res.Error.Details, "session_id")

	res = Dispatch(mgr, &Request{SessionId: "s1", Op: "add_fillet", SketchId: "sketch_1"})
	require.False(t, res.Success)
	assert.Equal(t, []string{"line1_id", "line2_id"}, res.Error.Details)

	res = Dispatch(mgr, &Request{SessionId: "s1", Op: "warp_drive"})
	require.False(t, res.Success)
	assert.Equal(t, fault.InvalidArgs, res.Error.Code)
}

func TestSessionLifecycle(t *testing.T) {
	mgr := newManager()

	res := Dispatch(mgr, &Request{Op: "open_session"})
	require.True(t, res.Success)
	id := res.Data["session_id"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, mgr.NumSessions())

	res = Dispatch(mgr, &Request{Op: "close_session", SessionId: id})
	require.True(t, res.Success)
	assert.Equal(t, 0, mgr.NumSessions())

	// cancel on an unknown session
	res = Dispatch(mgr, &Request{Op: "cancel", SessionId: "ghost", OpId: "op_1"})
	require.False(t, res.Success)
	assert.Equal(t, fault.SessionUnknown, res.Error.Code)
}

func TestEndToEnd(t *testing.T) {
	mgr := newManager()
	sid := "workbench"

	steps := []*Request{
		{SessionId: sid, Op: "create_plane", PlaneType: "XY"},
		{SessionId: sid, Op: "create_sketch", PlaneId: "plane_1"},
		{SessionId: sid, Op: "add_element", SketchId: "sketch_1", ElementType: "rectangle", Width: 4, Height: 4},
		{SessionId: sid, Op: "solve_sketch", SketchId: "sketch_1"},
	}
	var parentId string
	for _, s := range steps {
		res := Dispatch(mgr, s)
		require.True(t, res.Success, "op %s failed: %v", s.Op, res.Error)
		if s.Op == "add_element" {
			parentId = res.Data["element_id"].(string)
		}
	}

	res := Dispatch(mgr, &Request{
		SessionId: sid, Op: "extrude", SketchId: "sketch_1",
		ElementId: parentId, ExtrudeType: "blind", Distance: 2,
	})
	require.True(t, res.Success, "%v", res.Error)
	shapeId := res.Data["shape_id"].(string)

	res = Dispatch(mgr, &Request{SessionId: sid, Op: "tessellate", ShapeId: shapeId, Deflection: 0.1})
	require.True(t, res.Success)
	mesh := res.Visualization.(*engine.MeshViz)
	assert.GreaterOrEqual(t, mesh.Metadata.FaceCount, 12)

	res = Dispatch(mgr, &Request{SessionId: sid, Op: "status"})
	require.True(t, res.Success)
	assert.Equal(t, 1, res.Data["shapes"])
}
