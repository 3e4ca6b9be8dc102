// Package parallel splits row-oriented kernel loops across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how a loop over rows is split.
type Config struct {
	Workers   int // Upper bound on goroutines per loop; <= 1 runs inline.
	MinRows   int // Rows below which the loop runs inline.
	MinChunks int // Smallest number of rows handed to one goroutine.
}

// DefaultConfig returns a configuration sized to the machine.
func DefaultConfig() Config {
	return Config{
		Workers:   runtime.GOMAXPROCS(0),
		MinRows:   256,
		MinChunks: 64,
	}
}

// Sequential returns a configuration that never spawns goroutines.
func Sequential() Config {
	return Config{Workers: 1}
}

// Rows calls fn over contiguous half-open ranges [start, end) covering [0, n).
// Ranges never overlap, so fn may write the rows it is given without locking.
// fn must not panic: a panic on a worker goroutine cannot be recovered by the
// caller, so kernels validate their operands before calling Rows.
func Rows(n int, cfg Config, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if cfg.Workers <= 1 || n < cfg.MinRows {
		fn(0, n)
		return
	}

	chunk := max((n+cfg.Workers-1)/cfg.Workers, cfg.MinChunks, 1)
	if chunk >= n {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Go(func() {
			fn(start, end)
		})
	}
	wg.Wait()
}
