package rock

import (
	"fmt"

	"github.com/phil-mansfield/crust/parallel"
)

// EachColumn walks the vertices covered by a set of Formations and calls fn
// with the column of every Formation at that vertex. cols is only valid for
// the duration of the call. Vertices are split across workers goroutines and
// fn must only write state owned by vertex i.
//
// Flattening and summarization both traverse crusts through EachColumn.
func EachColumn(
	fs []*Formation, workers int, fn func(i int, cols [][]Stratum),
) {
	if len(fs) == 0 {
		return
	}
	n := fs[0].VertexCount()
	for _, f := range fs[1:] {
		if f.VertexCount() != n {
			panic(fmt.Sprintf(
				"Formations cover %d and %d vertices.", n, f.VertexCount(),
			))
		}
	}

	parallel.For(n, workers, func(low, high, jump int) {
		cols := make([][]Stratum, len(fs))
		for i := low; i < high; i += jump {
			for k, f := range fs {
				cols[k] = f.Column(i)
			}
			fn(i, cols)
		}
	})
}
