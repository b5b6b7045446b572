// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/cpmech/gocad/sketch"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// PlaneViz is the visualization payload of a plane
type PlaneViz struct {
	PlaneId   string    `json:"plane_id"`
	PlaneType string    `json:"plane_type"`
	Origin    []float64 `json:"origin"`
	Normal    []float64 `json:"normal"`
	UAxis     []float64 `json:"u_axis"`
	VAxis     []float64 `json:"v_axis"`
}

// SketchViz is the visualization payload of a sketch: its plane frame plus
// the sketch id
type SketchViz struct {
	PlaneViz
	SketchId string `json:"sketch_id"`
}

// ElementViz is the visualization payload of one sketch element. For
// composite parents Points3D is empty and the children are listed
type ElementViz struct {
	ElementId    string                 `json:"element_id"`
	SketchId     string                 `json:"sketch_id"`
	ElementType  string                 `json:"element_type"`
	Points3D     []float64              `json:"points_3d"`
	Parameters2D map[string]interface{} `json:"parameters_2d"`
	ParentId     string                 `json:"parent_id,omitempty"`
	IsComposite  bool                   `json:"is_composite,omitempty"`
	ChildIds     []string               `json:"child_ids,omitempty"`
}

// MeshViz is the visualization payload of a tessellated shape
type MeshViz struct {
	Vertices []float64 `json:"vertices"`
	Faces    []int     `json:"faces"`
	Normals  []float64 `json:"normals"`
	Metadata MeshMeta  `json:"metadata"`
}

// MeshMeta carries tessellation statistics
type MeshMeta struct {
	VertexCount int     `json:"vertex_count"`
	FaceCount   int     `json:"face_count"`
	Deflection  float64 `json:"deflection"`
}

func vec3Slice(v v3.Vec) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// planeViz builds the payload of a plane
func planeViz(p *sketch.Plane) *PlaneViz {
	return &PlaneViz{
		PlaneId:   p.Id,
		PlaneType: p.Kind.String(),
		Origin:    vec3Slice(p.Origin),
		Normal:    vec3Slice(p.Normal),
		UAxis:     vec3Slice(p.UAxis),
		VAxis:     vec3Slice(p.VAxis),
	}
}

// sketchViz builds the payload of a sketch
func sketchViz(s *sketch.Sketch) *SketchViz {
	return &SketchViz{PlaneViz: *planeViz(s.Plane), SketchId: s.Id}
}

// elementViz builds the payload of an element, sampling its polyline in world
// coordinates through the sketch plane
func elementViz(s *sketch.Sketch, e *sketch.Element) *ElementViz {
	o := &ElementViz{
		ElementId:    e.Id,
		SketchId:     s.Id,
		ElementType:  e.Kind.String(),
		Points3D:     []float64{},
		Parameters2D: elementParams(e),
		ParentId:     e.ParentId,
	}
	if e.IsCompositeParent {
		o.IsComposite = true
		o.ChildIds = append([]string(nil), e.ChildIds...)
		return o
	}
	for _, p := range e.Points2D() {
		w := s.Plane.ToWorld(p)
		o.Points3D = append(o.Points3D, w.X, w.Y, w.Z)
	}
	return o
}

// elementParams returns the kind-specific flat 2D parameters
func elementParams(e *sketch.Element) map[string]interface{} {
	m := make(map[string]interface{})
	switch e.Kind {
	case sketch.KindLine:
		m["x1"], m["y1"], m["x2"], m["y2"] = e.X1, e.Y1, e.X2, e.Y2
	case sketch.KindCircle:
		m["center_x"], m["center_y"], m["radius"] = e.Cx, e.Cy, e.R
	case sketch.KindArc:
		m["center_x"], m["center_y"], m["radius"] = e.Cx, e.Cy, e.R
		m["angle_start"], m["angle_end"] = e.A0, e.A1
		m["x1"], m["y1"], m["x2"], m["y2"] = e.X1, e.Y1, e.X2, e.Y2
	case sketch.KindRectangle:
		m["corner_x"], m["corner_y"], m["width"], m["height"] = e.X1, e.Y1, e.W, e.H
	case sketch.KindPolygon:
		m["center_x"], m["center_y"], m["radius"] = e.Cx, e.Cy, e.R
		m["sides"] = e.Sides
	case sketch.KindFillet:
		m["radius"] = e.R
		m["center_x"], m["center_y"] = e.Cx, e.Cy
		m["tangent1_x"], m["tangent1_y"] = e.X1, e.Y1
		m["tangent2_x"], m["tangent2_y"] = e.X2, e.Y2
	case sketch.KindChamfer:
		m["distance"] = e.D
		m["x1"], m["y1"], m["x2"], m["y2"] = e.X1, e.Y1, e.X2, e.Y2
	}
	return m
}
