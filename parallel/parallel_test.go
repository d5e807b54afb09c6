package parallel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"checkito/rng"
	"checkito/shrink"
)

func TestRunReturnsNilWhenNothingFails(t *testing.T) {
	iters := Plan(1, 20, func(i int) float64 { return 1.0 })
	out, err := Run(iters, 4, func(it Iteration) Outcome[int] {
		return Outcome[int]{Iteration: it, Tree: shrink.Leaf(it.Index), Failed: false}
	})
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestRunReportsSmallestFailingIndex(t *testing.T) {
	iters := Plan(1, 50, func(i int) float64 { return 1.0 })
	out, err := Run(iters, 8, func(it Iteration) Outcome[int] {
		failed := it.Index >= 10
		return Outcome[int]{Iteration: it, Tree: shrink.Leaf(it.Index), Failed: failed}
	})
	assert.NoError(t, err)
	if assert.NotNil(t, out) {
		assert.Equal(t, 10, out.Iteration.Index)
	}
}

func TestPlanDerivesIndependentSeeds(t *testing.T) {
	root := rng.Seed(7)
	iters := Plan(root, 10, func(i int) float64 { return float64(i) / 10 })
	seen := map[rng.Seed]bool{}
	for _, it := range iters {
		assert.False(t, seen[it.Seed])
		seen[it.Seed] = true
		assert.Equal(t, rng.Derive(root, it.Index), it.Seed)
	}
}

func TestRunPropagatesWorkerError(t *testing.T) {
	iters := Plan(1, 5, func(i int) float64 { return 1.0 })
	_, err := Run(iters, 2, func(it Iteration) Outcome[int] {
		if it.Index == 2 {
			return Outcome[int]{Iteration: it, Err: assertError{}}
		}
		return Outcome[int]{Iteration: it, Tree: shrink.Leaf(it.Index)}
	})
	assert.Error(t, err)
}

type assertError struct{}

func (assertError) Error() string { return "worker error" }
