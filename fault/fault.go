// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fault implements errors carrying the machine-readable codes used in
// result envelopes
package fault

import "github.com/cpmech/gosl/io"

// error codes
const (
	SessionUnknown         = "SessionUnknown"
	NotFoundPlane          = "NotFoundPlane"
	NotFoundSketch         = "NotFoundSketch"
	NotFoundElement        = "NotFoundElement"
	NotFoundConstraint     = "NotFoundConstraint"
	NotFoundShape          = "NotFoundShape"
	InvalidArgs            = "InvalidArgs"
	InvariantViolated      = "InvariantViolated"
	WireOpen               = "WireOpen"
	FaceBuildFailed        = "FaceBuildFailed"
	FilletParallelLines    = "FilletParallelLines"
	FilletInfeasible       = "FilletInfeasible"
	ChamferInfeasible      = "ChamferInfeasible"
	ArcInfeasible          = "ArcInfeasible"
	NotExtrudable          = "NotExtrudable"
	ConstraintUnsolved     = "ConstraintUnsolved"
	ConstraintInconsistent = "ConstraintInconsistent"
	KernelFailure          = "KernelFailure"
	Cancelled              = "Cancelled"
	NotImplemented         = "NotImplemented"
)

// F is an error with a code from the taxonomy above
type F struct {
	Code    string   // taxonomy code
	Msg     string   // human-readable message
	Details []string // e.g. names of offending fields
}

// Error returns the message
func (o *F) Error() string {
	return o.Msg
}

// New creates a coded error
func New(code, msg string, args ...interface{}) *F {
	return &F{Code: code, Msg: io.Sf(msg, args...)}
}

// WithDetails creates a coded error with a details list
func WithDetails(code string, details []string, msg string, args ...interface{}) *F {
	return &F{Code: code, Msg: io.Sf(msg, args...), Details: details}
}

// Code extracts the code of an error; unknown errors map to fallback
func Code(err error, fallback string) string {
	if f, ok := err.(*F); ok {
		return f.Code
	}
	return fallback
}

// Is tells whether err carries the given code
func Is(err error, code string) bool {
	f, ok := err.(*F)
	return ok && f.Code == code
}
