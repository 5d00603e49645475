package io

import (
	"bufio"
	"fmt"
	"os"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/crust/geom"
)

// Results are the per-vertex fields written at the end of a run.
type Results struct {
	Positions []geom.Vec

	Elevation, Thickness, Density, AreaDensity []float64
	Buoyancy, Displacement, Intended           []float64
}

// ResultColumns is the number of columns in a results table.
const ResultColumns = 11

func (r *Results) columns() [][]float64 {
	return [][]float64{
		r.Elevation, r.Thickness, r.Density, r.AreaDensity,
		r.Buoyancy, r.Displacement, r.Intended,
	}
}

// WriteResults writes one row per vertex: id, x, y, z, elevation,
// thickness, density, area density, buoyancy, displacement and intended
// displacement.
func WriteResults(fname string, r *Results) error {
	n := len(r.Positions)
	for i, col := range r.columns() {
		if len(col) != n {
			return fmt.Errorf(
				"Result column %d has length %d, but there are %d vertices.",
				i+4, len(col), n,
			)
		}
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	cols := r.columns()
	for i, p := range r.Positions {
		fmt.Fprintf(w, "%d %.8g %.8g %.8g", i, p[0], p[1], p[2])
		for _, col := range cols {
			fmt.Fprintf(w, " %.8g", col[i])
		}
		fmt.Fprintln(w)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadResults reads a table written by WriteResults.
func ReadResults(fname string) (*Results, error) {
	colIdxs := make([]int, ResultColumns)
	for i := range colIdxs {
		colIdxs[i] = i
	}
	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	r := &Results{Positions: make([]geom.Vec, len(cols[0]))}
	for i := range r.Positions {
		r.Positions[i] = geom.Vec{cols[1][i], cols[2][i], cols[3][i]}
	}
	r.Elevation, r.Thickness, r.Density, r.AreaDensity = cols[4], cols[5], cols[6], cols[7]
	r.Buoyancy, r.Displacement, r.Intended = cols[8], cols[9], cols[10]
	return r, nil
}
