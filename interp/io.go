// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// WriteTable writes the current table to path in the plain-text format of
// spec.md §6: two columns "x f1 ... fk" per row; the first line is a
// metadata comment, matching the header-comment convention gofem's own
// file readers (inp.ReadSim et al.) tolerate.
func WriteTable(path string, fn *Function) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# interp table: k=%d n=%d xMin=%g xMax=%g\n", fn.K, fn.n, fn.xMin, fn.xMax)
	for i, x := range fn.nodes {
		fmt.Fprintf(&b, "%.17g", x)
		for _, v := range fn.values[i] {
			fmt.Fprintf(&b, " %.17g", v)
		}
		b.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return chk.Err("interp: WriteTable %q failed: %v", path, err)
	}
	return nil
}

// ReadTable reads a table previously written by WriteTable (or any plain
// text file in the "x f1 ... fk" format, spec.md §6) and wraps it as a
// Function with Adaptive=false (no underlying f to resample from: a loaded
// table is frozen, per spec.md §4.C "read/write of tables").
func ReadTable(path string, k int) (*Function, error) {
	raw, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("interp: ReadTable %q: %v", path, err)
	}

	var xs []float64
	var vals [][]float64
	first := true
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			first = false
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != k+1 {
			if first {
				// tolerate a non-comment metadata first line without '#'
				first = false
				continue
			}
			return nil, chk.Err("interp: ReadTable %q: row %q does not have %d columns", path, line, k+1)
		}
		first = false
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, chk.Err("interp: ReadTable %q: bad x value %q", path, fields[0])
		}
		row := make([]float64, k)
		for c := 0; c < k; c++ {
			row[c], err = strconv.ParseFloat(fields[c+1], 64)
			if err != nil {
				return nil, chk.Err("interp: ReadTable %q: bad value %q", path, fields[c+1])
			}
		}
		xs = append(xs, x)
		vals = append(vals, row)
	}
	if len(xs) < 2 {
		return nil, chk.Err("interp: ReadTable %q: need at least 2 rows, got %d", path, len(xs))
	}
	fn := &Function{
		K:           k,
		xMin:        xs[0],
		xMax:        xs[len(xs)-1],
		n:           len(xs) - 1,
		nodes:       xs,
		values:      vals,
		CapXMin:     xs[0],
		CapXMax:     xs[len(xs)-1],
		LowerPolicy: ERROR,
		UpperPolicy: ERROR,
	}
	return fn, nil
}
