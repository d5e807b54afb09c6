package shrink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildIntTree builds the shrink tree of a bounds-respecting integer exactly
// the way the int leaf generator would, for use in search tests.
func buildIntTree(v, target int64) Tree[int64] {
	return Node(v, func() []Tree[int64] {
		var out []Tree[int64]
		for _, c := range IntegersTowards(v, target) {
			out = append(out, buildIntTree(c, target))
		}
		return out
	})
}

func TestSearchFindsLocalMinimum(t *testing.T) {
	root := buildIntTree(100, 0)
	res := Search(root, 1000, func(v int64) bool { return v >= 50 }, nil)
	assert.Equal(t, int64(50), res.Value)
}

func TestSearchRespectsBudget(t *testing.T) {
	root := buildIntTree(1_000_000, 0)
	res := Search(root, 3, func(v int64) bool { return true }, nil)
	assert.LessOrEqual(t, res.Accepted+res.Rejected, 3)
}

func TestSearchNoFailingChildReturnsRoot(t *testing.T) {
	root := buildIntTree(5, 0)
	res := Search(root, 100, func(v int64) bool { return false }, nil)
	assert.Equal(t, int64(5), res.Value)
	assert.Equal(t, 0, res.Accepted)
}

func TestSearchObserveReportsEveryCandidate(t *testing.T) {
	root := buildIntTree(100, 0)
	var accepted, rejected []int64
	res := Search(root, 1000, func(v int64) bool { return v >= 50 }, func(v int64, ok bool) {
		if ok {
			accepted = append(accepted, v)
		} else {
			rejected = append(rejected, v)
		}
	})
	assert.Equal(t, res.Accepted, len(accepted))
	assert.Equal(t, res.Rejected, len(rejected))
	for _, v := range accepted {
		assert.GreaterOrEqual(t, v, int64(50))
	}
	for _, v := range rejected {
		assert.Less(t, v, int64(50))
	}
}
