// internal/worker/pool.go

// Package worker provides a generic bounded-concurrency pool used by
// bulk search, archive diffing, and the build pipeline.
package worker

import (
	"context"
	"sync"

	"github.com/PakBeast/PakBeast/internal/ctxlog"
)

// Result pairs one input with its processing outcome.
type Result[I, R any] struct {
	Input I
	Value R
	Err   error
}

// Func processes a single unit of work.
type Func[I, R any] func(ctx context.Context, input I) (R, error)

// Pool runs units of work across a fixed number of workers.
type Pool[I, R any] struct {
	workers int
	fn      Func[I, R]
}

// NewPool creates a pool with the given worker count, at least one.
func NewPool[I, R any](workers int, fn Func[I, R]) *Pool[I, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[I, R]{workers: workers, fn: fn}
}

// Execute runs all inputs through the pool and returns one Result per
// input, in input order. Dispatch stops once ctx is cancelled; a
// cancelled run returns ctx.Err() and no results.
func (p *Pool[I, R]) Execute(ctx context.Context, inputs []I) ([]Result[I, R], error) {
	logger := ctxlog.FromContext(ctx)
	results := make([]Result[I, R], len(inputs))
	indexes := make(chan int, len(inputs))

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-indexes:
					if !ok {
						return
					}
					value, err := p.fn(ctx, inputs[idx])
					results[idx] = Result[I, R]{Input: inputs[idx], Value: value, Err: err}
					if err != nil {
						logger.Debug("Unit of work failed.", "workerID", workerID, "index", idx, "error", err)
					}
				}
			}
		}(w)
	}

	// The channel is sized to the input, so sends never block; the
	// cancellation check just cuts dispatch short.
	for i := range inputs {
		if ctx.Err() != nil {
			break
		}
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
