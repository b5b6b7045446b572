// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/cpmech/gocad/fault"
)

// ErrInfo is the error part of a result envelope
type ErrInfo struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Result is the envelope returned by every engine operation
type Result struct {
	Success       bool                   `json:"success"`
	Error         *ErrInfo               `json:"error,omitempty"`
	Data          map[string]interface{} `json:"data,omitempty"`
	Visualization interface{}            `json:"visualization_data,omitempty"`
	Children      []*ElementViz          `json:"child_visualizations,omitempty"`
}

// okResult builds a success envelope
func okResult(data map[string]interface{}) *Result {
	return &Result{Success: true, Data: data}
}

// errResult builds a failure envelope from an error, mapping unknown errors
// to the fallback code
func errResult(err error, fallback string) *Result {
	info := &ErrInfo{Code: fault.Code(err, fallback), Message: err.Error()}
	if f, ok := err.(*fault.F); ok {
		info.Details = f.Details
	}
	return &Result{Success: false, Error: info}
}
