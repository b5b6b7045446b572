// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// gocad runs a JSON command script against the modeling core and prints one
// result envelope per command
package main

import (
	"encoding/json"
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocad/api"
	"github.com/cpmech/gocad/session"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// message
	io.PfWhite("\nGocad -- parametric sketch and feature modeling core\n\n")

	// input file
	flag.Parse()
	if flag.NArg() < 1 {
		chk.Panic("usage: gocad script.json")
	}
	fnk := flag.Arg(0)

	// read script: a JSON array of flat command records
	buf, err := io.ReadFile(fnk)
	if err != nil {
		chk.Panic("cannot read script file: %v", err)
	}
	var script []*api.Request
	if jerr := json.Unmarshal(buf, &script); jerr != nil {
		chk.Panic("cannot parse script file: %v", jerr)
	}

	// run commands
	mgr := session.NewManager(session.Options{})
	nfail := 0
	for i, req := range script {
		res := api.Dispatch(mgr, req)
		out, merr := json.Marshal(res)
		if merr != nil {
			chk.Panic("cannot encode result: %v", merr)
		}
		if res.Success {
			io.Pf("%3d %s => %s\n", i, req.Op, string(out))
		} else {
			nfail++
			io.Pfred("%3d %s => %s\n", i, req.Op, string(out))
		}
	}

	// summary
	if nfail == 0 {
		io.PfGreen("\n%d commands completed\n", len(script))
	} else {
		io.PfRed("\n%d of %d commands failed\n", nfail, len(script))
	}
}
