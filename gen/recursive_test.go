package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"checkito/rng"
)

// intList is a minimal recursive structure: either nil or a node wrapping a
// smaller intList, used to confirm Recursive terminates.
type intList struct {
	head int
	tail *intList
}

func TestRecursiveTerminatesAtLowSize(t *testing.T) {
	base := Const[*intList](nil)
	g := Recursive(base, func(self Generator[*intList]) Generator[*intList] {
		return Map(Tuple2(Int(0, 9), self), func(p Pair[int, *intList]) *intList {
			return &intList{head: p.First, tail: p.Second}
		})
	}, 0.5)

	tree, err := g.Generate(rng.New(1, 0.0))
	assert.NoError(t, err)
	assert.Nil(t, tree.Value())
}

func TestRecursiveProducesNestedValuesAtHighSize(t *testing.T) {
	base := Const[*intList](nil)
	g := Recursive(base, func(self Generator[*intList]) Generator[*intList] {
		return Map(Tuple2(Int(0, 9), self), func(p Pair[int, *intList]) *intList {
			return &intList{head: p.First, tail: p.Second}
		})
	}, 0.5)

	// Starting at size 1.0 with factor 0.5, the levels are drawn at sizes
	// 0.5, 0.25, 0.125, 0.0625 and 0.03125; the self reference below that
	// last one is at or under recursionFloor and yields base, so every draw
	// is a list of exactly five nodes.
	for i := 0; i < 30; i++ {
		tree, err := g.Generate(rng.New(rng.Derive(1, i), 1.0))
		assert.NoError(t, err)
		depth := 0
		for n := tree.Value(); n != nil; n = n.tail {
			depth++
		}
		assert.Equal(t, 5, depth, "expected nested values five levels deep at size 1.0")
	}
}
