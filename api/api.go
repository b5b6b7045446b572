// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package api implements the flat command records consumed by the modeling
// core and their dispatch onto session engines
package api

import (
	"github.com/cpmech/gocad/engine"
)

// Request is the flat record of one operation. The outer transport flattens
// any nested client payload; the core consumes only this form
type Request struct {
	SessionId string `json:"session_id"`
	Op        string `json:"op"`
	OpId      string `json:"op_id,omitempty"`

	// planes
	PlaneType string  `json:"plane_type,omitempty"`
	OriginX   float64 `json:"origin_x,omitempty"`
	OriginY   float64 `json:"origin_y,omitempty"`
	OriginZ   float64 `json:"origin_z,omitempty"`
	NormalX   float64 `json:"normal_x,omitempty"`
	NormalY   float64 `json:"normal_y,omitempty"`
	NormalZ   float64 `json:"normal_z,omitempty"`
	PlaneId   string  `json:"plane_id,omitempty"`

	// sketches and elements
	SketchId    string  `json:"sketch_id,omitempty"`
	ElementType string  `json:"element_type,omitempty"`
	ElementId   string  `json:"element_id,omitempty"`
	X1          float64 `json:"x1,omitempty"`
	Y1          float64 `json:"y1,omitempty"`
	X2          float64 `json:"x2,omitempty"`
	Y2          float64 `json:"y2,omitempty"`
	XMid        float64 `json:"x_mid,omitempty"`
	YMid        float64 `json:"y_mid,omitempty"`
	CenterX     float64 `json:"center_x,omitempty"`
	CenterY     float64 `json:"center_y,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Sides       int     `json:"sides,omitempty"`
	ArcType     string  `json:"arc_type,omitempty"`

	// fillets and chamfers
	Line1Id  string  `json:"line1_id,omitempty"`
	Line2Id  string  `json:"line2_id,omitempty"`
	Distance float64 `json:"distance,omitempty"`

	// extrude
	Distance1  float64 `json:"distance1,omitempty"`
	Distance2  float64 `json:"distance2,omitempty"`
	ExtrudeType string `json:"extrude_type,omitempty"`
	Direction  string  `json:"direction,omitempty"` // "normal" (default) or "custom"
	DirectionX float64 `json:"direction_x,omitempty"`
	DirectionY float64 `json:"direction_y,omitempty"`
	DirectionZ float64 `json:"direction_z,omitempty"`
	Reverse    bool    `json:"reverse,omitempty"`
	TaperDeg   float64 `json:"taper_deg,omitempty"`

	// constraints
	ConstraintKind  string  `json:"constraint_kind,omitempty"`
	ConstraintValue float64 `json:"constraint_value,omitempty"`
	ConstraintId    string  `json:"constraint_id,omitempty"`
	EndA            int     `json:"end_a,omitempty"`
	EndB            int     `json:"end_b,omitempty"`
	Apply           bool    `json:"apply,omitempty"`

	// booleans, tessellation and export
	Operation  string  `json:"operation,omitempty"` // union|cut|intersect
	ShapeA     string  `json:"shape_a,omitempty"`
	ShapeB     string  `json:"shape_b,omitempty"`
	ShapeId    string  `json:"shape_id,omitempty"`
	ResultId   string  `json:"result_id,omitempty"`
	Deflection float64 `json:"deflection,omitempty"`
	Format     string  `json:"format,omitempty"`
	Path       string  `json:"path,omitempty"`
}

// Response is the envelope returned for every request
type Response = engine.Result
