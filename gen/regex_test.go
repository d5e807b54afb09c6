package gen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"checkito/rng"
)

func TestRegexProducesMatchingStrings(t *testing.T) {
	pattern := `[a-c]{2,4}-[0-9]+`
	re := regexp.MustCompile("^" + pattern + "$")
	g := Regex(pattern)
	for i := 0; i < 30; i++ {
		tree, err := g.Generate(rng.New(rng.Derive(1, i), 1.0))
		assert.NoError(t, err)
		assert.True(t, re.MatchString(tree.Value()), "generated %q does not match %s", tree.Value(), pattern)
	}
}

func TestRegexShrinkChildrenStillMatch(t *testing.T) {
	pattern := `a{1,10}b*`
	re := regexp.MustCompile("^" + pattern + "$")
	g := Regex(pattern)
	tree, err := g.Generate(rng.New(5, 1.0))
	assert.NoError(t, err)

	for _, c := range tree.Children() {
		assert.True(t, re.MatchString(c.Value()))
		for _, gc := range c.Children() {
			assert.True(t, re.MatchString(gc.Value()))
		}
	}
}

func TestRegexPanicsOnInvalidPattern(t *testing.T) {
	assert.Panics(t, func() { Regex(`[`) })
}

func TestRegexAlternationOnlyProducesListedBranches(t *testing.T) {
	pattern := `cat|dog`
	re := regexp.MustCompile("^" + pattern + "$")
	g := Regex(pattern)
	for i := 0; i < 20; i++ {
		tree, err := g.Generate(rng.New(rng.Derive(2, i), 1.0))
		assert.NoError(t, err)
		assert.True(t, re.MatchString(tree.Value()))
	}
}
