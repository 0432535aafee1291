package engine

import "golang.org/x/sync/errgroup"

// runParallelPhase fans fn out across items on the engine's worker pool
// when Parallel is enabled, else runs serially. Only the per-entity
// phases §4.4 names as commuting (2, 3, 5, 7, 12, 13) ever call this —
// each of those touches only the one entity it was handed, so the result
// is identical to the serial loop regardless of scheduling order (§4.4
// "may be parallelized if and only if the result is identical to the
// serial order", §5 "the engine must provide a serial mode for tests and
// determinism checks").
func runParallelPhase[T any](e *Engine, items []T, fn func(T)) {
	if !e.Parallel || len(items) < parallelPhaseThreshold {
		for _, item := range items {
			fn(item)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(parallelPhaseWorkers)
	for _, item := range items {
		item := item
		g.Go(func() error {
			fn(item)
			return nil
		})
	}
	_ = g.Wait() // fn never returns an error; Wait only blocks for completion
}

// parallelPhaseThreshold is the minimum entity count below which the
// goroutine dispatch overhead outweighs the win; smaller entity counts
// just run serially.
const parallelPhaseThreshold = 64

const parallelPhaseWorkers = 8
