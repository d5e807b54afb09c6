// Package checkito is a property-based testing core: a generator algebra
// with lazily-built shrink trees, a bounded greedy shrink search, and a
// check driver that ties the two together into a single Check call.
package checkito

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"checkito/gen"
	"checkito/rng"
	"checkito/shrink"
)

var log = logrus.WithField("component", "checkito")

// Check runs prop against 1000 values drawn from g using the package
// defaults. It is Checks with no options.
func Check[T any](g gen.Generator[T], prop Property[T]) (*CheckReport[T], error) {
	return Checks(g, prop)
}

// Checks runs prop against values drawn from g, ramping size across
// GenerateCount iterations. The first iteration prop fails on is shrunk
// with shrink.Search and both the original and shrunk values are reported.
func Checks[T any](g gen.Generator[T], prop Property[T], opts ...CheckOption) (*CheckReport[T], error) {
	cfg, err := resolveConfig[T](opts...)
	if err != nil {
		return nil, err
	}
	return runCheck(g, prop, cfg)
}

func runCheck[T any](g gen.Generator[T], prop Property[T], cfg Config) (*CheckReport[T], error) {
	root := cfg.rootSeed()
	labels := labelsMap(cfg)

	for i := 0; i < cfg.GenerateCount; i++ {
		size := cfg.sizeAt(i)
		seed := rng.Derive(root, i)
		state := rng.New(seed, size)

		tree, err := g.Generate(state)
		if err != nil {
			var exhausted *gen.ExhaustedError
			if errors.As(err, &exhausted) {
				log.WithFields(logrus.Fields{"iteration": i, "seed": seed}).
					Warn("checkito: generator exhausted its filter retries")
				return &CheckReport[T]{
					Seed: root, Iteration: i, Count: cfg.GenerateCount,
					OriginalOutcome: Outcome{Kind: KindExhausted, Reason: exhausted.Error()},
					Labels:          labels,
				}, nil
			}
			return nil, errors.Wrapf(err, "checkito: generation failed at iteration %d", i)
		}

		value := tree.Value()
		observeLabel(labels, cfg, value)

		outcome := prove(prop, value)
		if !outcome.Failed() {
			if cfg.GenerateItems {
				log.WithFields(logrus.Fields{"iteration": i, "size": size}).Debug("checkito: iteration passed")
			}
			continue
		}

		log.WithFields(logrus.Fields{"iteration": i, "seed": seed}).Info("checkito: property falsified, shrinking")
		return shrinkFailure(root, i, cfg, tree, outcome, prop, labels), nil
	}

	return &CheckReport[T]{
		Seed: root, Iteration: cfg.GenerateCount, Count: cfg.GenerateCount,
		OriginalOutcome: Outcome{Kind: KindPass},
		Labels:          labels,
	}, nil
}

func shrinkFailure[T any](
	root rng.Seed, iteration int, cfg Config,
	tree shrink.Tree[T], outcome Outcome, prop Property[T], labels map[string]int,
) *CheckReport[T] {
	// Disprove and Error both count as still-failing during the descent —
	// the search does not require a candidate to reproduce the exact
	// original failure kind, only that it still falsifies the property.
	failing := func(v T) bool {
		return prove(prop, v).Failed()
	}

	observe := func(v T, accepted bool) {
		fields := logrus.Fields{"iteration": iteration, "seed": root}
		if accepted {
			if cfg.ShrinkItems {
				log.WithFields(fields).Info("checkito: shrink accepted")
			}
			return
		}
		if cfg.ShrinkErrors {
			log.WithFields(fields).Debug("checkito: shrink rejected")
		}
	}

	result := shrink.Search(tree, cfg.ShrinkCount, failing, observe)

	report := &CheckReport[T]{
		Seed: root, Iteration: iteration, Count: cfg.GenerateCount,
		Original: tree.Value(), OriginalOutcome: outcome,
		Stats:  ShrinkStats{Accepted: result.Accepted, Rejected: result.Rejected},
		Labels: labels,
	}

	// result.Value is the root itself when no child was accepted, so an
	// original that is already locally minimal is reported as its own
	// shrunk value.
	shrunk := result.Value
	report.Shrunk = &shrunk
	report.ShrunkOutcome = prove(prop, shrunk)

	return report
}

// Samples draws count values from g without checking any property, ramping
// size the same way Checks does. Useful for eyeballing a generator's output.
func Samples[T any](g gen.Generator[T], count int, opts ...CheckOption) ([]T, error) {
	cfg, err := resolveConfig[T](opts...)
	if err != nil {
		return nil, err
	}
	cfg.GenerateCount = count

	root := cfg.rootSeed()
	out := make([]T, 0, count)
	for i := 0; i < count; i++ {
		state := rng.New(rng.Derive(root, i), cfg.sizeAt(i))
		tree, err := g.Generate(state)
		if err != nil {
			return nil, errors.Wrapf(err, "checkito: sampling failed at iteration %d", i)
		}
		out = append(out, tree.Value())
	}
	return out, nil
}

// Shrink runs prop against an already-drawn sample (a drawn value together
// with its lazily-built shrink tree) and, if it fails, shrinks it directly —
// skipping the generation loop entirely. Useful for replaying and
// re-minimizing a previously reported failure.
func Shrink[T any](sample shrink.Tree[T], prop Property[T], opts ...CheckOption) (*CheckReport[T], error) {
	cfg, err := resolveConfig[T](opts...)
	if err != nil {
		return nil, err
	}

	outcome := prove(prop, sample.Value())
	if !outcome.Failed() {
		return &CheckReport[T]{
			Original: sample.Value(), OriginalOutcome: outcome, ShrunkOutcome: outcome,
		}, nil
	}
	return shrinkFailure(0, 0, cfg, sample, outcome, prop, nil), nil
}

// Seeded replays a single iteration at a fixed seed and size, shrinking it
// if it fails. Given a CheckReport's Seed/Iteration pair and the size the
// driver's ramp assigned to that iteration, it reproduces the same draw
// without rerunning the whole check.
func Seeded[T any](g gen.Generator[T], seed rng.Seed, iteration int, size float64, prop Property[T], opts ...CheckOption) (*CheckReport[T], error) {
	cfg, err := resolveConfig[T](opts...)
	if err != nil {
		return nil, err
	}

	iterSeed := rng.Derive(seed, iteration)
	tree, err := g.Generate(rng.New(iterSeed, size))
	if err != nil {
		return nil, errors.Wrapf(err, "checkito: replay failed at iteration %d", iteration)
	}

	outcome := prove(prop, tree.Value())
	if !outcome.Failed() {
		return &CheckReport[T]{
			Seed: seed, Iteration: iteration,
			Original: tree.Value(), OriginalOutcome: outcome, ShrunkOutcome: outcome,
		}, nil
	}
	return shrinkFailure(seed, iteration, cfg, tree, outcome, prop, nil), nil
}

func labelsMap(cfg Config) map[string]int {
	if cfg.classifier == nil {
		return nil
	}
	return map[string]int{}
}

func observeLabel[T any](labels map[string]int, cfg Config, v T) {
	if labels == nil || cfg.classifier == nil {
		return
	}
	f, ok := cfg.classifier.(func(T) string)
	if !ok {
		return
	}
	labels[f(v)]++
}
