// Package parallel is the optional worker-pool wrapper around a check run:
// independent iterations execute on a fixed pool of goroutines instead of
// inline on the caller, while preserving the same first-failure semantics a
// sequential run would produce.
//
// The dispatch loop mirrors the channel-driven run loop GoMC's simulator
// uses to hand runs to workers and collect their status (a "next work item"
// channel feeding goroutines that report back on a shared channel), with the
// addition of a mutex-protected record so only the smallest-iteration-index
// failure is kept when several workers disprove concurrently.
package parallel

import (
	"sync"

	"checkito/rng"
	"checkito/shrink"
)

// Iteration is one iteration's inputs, computed before dispatch so that the
// result of a run does not depend on how the pool happens to schedule it.
type Iteration struct {
	Index int
	Seed  rng.Seed
	Size  float64
}

// Outcome is a worker's report for one iteration: the generated value (boxed
// as a shrink.Tree so the caller can shrink it further) and whether the
// property held.
type Outcome[T any] struct {
	Iteration Iteration
	Tree      shrink.Tree[T]
	Failed    bool
	Err       error
}

// Run dispatches len(iters) calls to draw across workers goroutines. draw
// generates a value and evaluates the property for one Iteration. Run
// returns the Outcome with the smallest Index among those reported as
// failed; already-dispatched iterations are allowed to finish. Once one
// failure is recorded the dispatcher stops handing out iterations, but it
// picks at random between the stop signal and an idle worker, so a few more
// iterations may still start before it returns.
//
// Run blocks until every dispatched iteration has completed or the first
// failure has been recorded and in-flight work has drained.
func Run[T any](iters []Iteration, workers int, draw func(Iteration) Outcome[T]) (*Outcome[T], error) {
	if workers <= 0 {
		workers = 1
	}

	work := make(chan Iteration)
	results := make(chan Outcome[T])
	stop := make(chan struct{})

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := range work {
				results <- draw(it)
			}
		}()
	}

	go func() {
		defer close(work)
		for _, it := range iters {
			select {
			case work <- it:
			case <-stop:
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		mu       sync.Mutex
		first    *Outcome[T]
		firstErr error
		stopped  bool
	)

	for res := range results {
		res := res
		if res.Err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = res.Err
			}
			if !stopped {
				stopped = true
				close(stop)
			}
			mu.Unlock()
			continue
		}
		if !res.Failed {
			continue
		}
		mu.Lock()
		if first == nil || res.Iteration.Index < first.Iteration.Index {
			first = &res
		}
		if !stopped {
			stopped = true
			close(stop)
		}
		mu.Unlock()
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return first, nil
}

// Plan derives count independent Iterations from root the same way the
// sequential driver does, so that switching between Run and a sequential
// loop produces identical per-iteration seeds and sizes.
func Plan(root rng.Seed, count int, sizeAt func(i int) float64) []Iteration {
	iters := make([]Iteration, count)
	for i := 0; i < count; i++ {
		iters[i] = Iteration{Index: i, Seed: rng.Derive(root, i), Size: sizeAt(i)}
	}
	return iters
}
