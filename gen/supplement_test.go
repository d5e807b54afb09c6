package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"checkito/rng"
)

func TestContainsDuplicatesDetectsRepeats(t *testing.T) {
	assert.True(t, ContainsDuplicates([]int{1, 2, 2, 3}))
	assert.False(t, ContainsDuplicates([]int{1, 2, 3}))
}

func TestOrderedSliceProducesSortedOutput(t *testing.T) {
	g := OrderedSlice(Int(0, 100), LenRange{Lo: 0, Hi: 20})
	for i := 0; i < 20; i++ {
		tree, err := g.Generate(rng.New(rng.Derive(1, i), 1.0))
		assert.NoError(t, err)
		s := tree.Value()
		for j := 1; j < len(s); j++ {
			assert.LessOrEqual(t, s[j-1], s[j])
		}
	}
}

func TestDistinctNeverRepeatsAnElement(t *testing.T) {
	g := Distinct(Int(0, 9), LenRange{Lo: 5, Hi: 10}, 50)
	tree, err := g.Generate(rng.New(1, 1.0))
	assert.NoError(t, err)
	assert.False(t, ContainsDuplicates(tree.Value()))
	for _, c := range tree.Children() {
		assert.False(t, ContainsDuplicates(c.Value()))
	}
}

func TestDistinctExhaustsWhenRangeTooSmall(t *testing.T) {
	g := Distinct(Int(0, 1), LenRange{Lo: 5, Hi: 5}, 10)
	_, err := g.Generate(rng.New(1, 1.0))
	assert.Error(t, err)
}
