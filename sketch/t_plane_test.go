// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_plane01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plane01. canonical axes and basis invariant")

	xy := NewPlane("plane_1", PlaneXY, v3.Vec{})
	chk.Vector(tst, "xy u", 1e-17, []float64{xy.UAxis.X, xy.UAxis.Y, xy.UAxis.Z}, []float64{1, 0, 0})
	chk.Vector(tst, "xy v", 1e-17, []float64{xy.VAxis.X, xy.VAxis.Y, xy.VAxis.Z}, []float64{0, 1, 0})
	chk.Vector(tst, "xy n", 1e-17, []float64{xy.Normal.X, xy.Normal.Y, xy.Normal.Z}, []float64{0, 0, 1})

	xz := NewPlane("plane_2", PlaneXZ, v3.Vec{})
	chk.Vector(tst, "xz v", 1e-17, []float64{xz.VAxis.X, xz.VAxis.Y, xz.VAxis.Z}, []float64{0, 0, 1})
	chk.Vector(tst, "xz n", 1e-17, []float64{xz.Normal.X, xz.Normal.Y, xz.Normal.Z}, []float64{0, 1, 0})

	yz := NewPlane("plane_3", PlaneYZ, v3.Vec{})
	chk.Vector(tst, "yz u", 1e-17, []float64{yz.UAxis.X, yz.UAxis.Y, yz.UAxis.Z}, []float64{0, 1, 0})
	chk.Vector(tst, "yz n", 1e-17, []float64{yz.Normal.X, yz.Normal.Y, yz.Normal.Z}, []float64{1, 0, 0})

	for _, p := range []*Plane{xy, xz, yz} {
		if err := p.CheckBasis(1e-9); err != nil {
			tst.Errorf("%v\n", err)
		}
	}
}

func Test_plane02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plane02. XZ plane round-trip at (1,2,3)")

	pl := NewPlane("plane_1", PlaneXZ, v3.Vec{X: 1, Y: 2, Z: 3})

	// to_world((4,7)) = (5,2,10) exactly
	w := pl.ToWorld(v2.Vec{X: 4, Y: 7})
	chk.Scalar(tst, "wx", 1e-17, w.X, 5)
	chk.Scalar(tst, "wy", 1e-17, w.Y, 2)
	chk.Scalar(tst, "wz", 1e-17, w.Z, 10)

	// round trip
	s := pl.ToSketch(w)
	chk.Scalar(tst, "sx", 1e-9, s.X, 4)
	chk.Scalar(tst, "sy", 1e-9, s.Y, 7)
}

func Test_plane03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plane03. custom plane basis")

	// oblique normal
	pl, err := NewCustomPlane("plane_1", v3.Vec{X: 1, Y: 1, Z: 1}, v3.Vec{X: 1, Y: 1, Z: 0})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err := pl.CheckBasis(1e-9); err != nil {
		tst.Errorf("%v\n", err)
	}

	// near-Z normal switches the reference axis
	pl2, err := NewCustomPlane("plane_2", v3.Vec{}, v3.Vec{X: 0.01, Y: 0, Z: 1})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err := pl2.CheckBasis(1e-9); err != nil {
		tst.Errorf("%v\n", err)
	}

	// round trip on custom plane
	p := v2.Vec{X: -2.5, Y: 3.75}
	q := pl.ToSketch(pl.ToWorld(p))
	chk.Scalar(tst, "rx", 1e-9, q.X, p.X)
	chk.Scalar(tst, "ry", 1e-9, q.Y, p.Y)

	// degenerate normal
	_, err = NewCustomPlane("plane_3", v3.Vec{}, v3.Vec{})
	if err == nil {
		tst.Errorf("degenerate normal must fail\n")
	}
}
