/*package parallel splits per-vertex loops across worker goroutines.

Work is handed out with the same (low, high, jump) striding the density
interpolators use: worker id processes indices id, id + workers, ... so
every index is owned by exactly one worker and no two workers ever write
the same output slot.
*/
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers returns n if it is positive and the number of available cores
// otherwise.
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// For calls loop once per worker with the index range [low, high) and the
// stride jump that worker is responsible for. It returns after every worker
// has finished.
//
// Small ranges are run on the calling goroutine.
func For(n, workers int, loop func(low, high, jump int)) {
	if n < 0 {
		panic("parallel.For given a negative length.")
	}
	workers = Workers(workers)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		loop(0, n, 1)
		return
	}

	var g errgroup.Group
	for id := 0; id < workers; id++ {
		id := id
		g.Go(func() error {
			loop(id, n, workers)
			return nil
		})
	}
	g.Wait()
}

// Each calls fn(i) for every i in [0, n) across workers goroutines. fn must
// only write state owned by index i.
func Each(n, workers int, fn func(i int)) {
	For(n, workers, func(low, high, jump int) {
		for i := low; i < high; i += jump {
			fn(i)
		}
	})
}
