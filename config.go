package checkito

import (
	"os"
	"strconv"

	"github.com/pkg/errors"

	"checkito/rng"
)

// Config is the resolved set of knobs a check run obeys. Callers do not
// build one directly; they pass CheckOption values to Checks/Samples/Shrink
// and let resolveConfig apply defaults, options, and environment overrides
// in that order.
type Config struct {
	GenerateCount int
	SizeLo        float64
	SizeHi        float64
	SizeFixed     *float64
	Seed          *rng.Seed
	GenerateItems bool

	ShrinkCount  int
	ShrinkItems  bool
	ShrinkErrors bool

	classifier any
}

func defaultConfig() Config {
	return Config{
		GenerateCount: 1000,
		SizeLo:        0.0,
		SizeHi:        1.0,
		ShrinkCount:   1000,
	}
}

// CheckOption customizes a Checks/Samples/Shrink call. The concrete option
// types are unexported; construct one with the With* functions below.
type CheckOption interface{}

type countOption struct{ n int }

// WithCount overrides how many values are generated before a check reports
// success.
func WithCount(n int) CheckOption { return countOption{n: n} }

type sizeRangeOption struct{ lo, hi float64 }

// WithSizeRange overrides the [lo, hi] size ramp iterations are drawn
// across. Both bounds must lie in [0, 1] with lo <= hi.
func WithSizeRange(lo, hi float64) CheckOption { return sizeRangeOption{lo: lo, hi: hi} }

type fixedSizeOption struct{ size float64 }

// WithFixedSize pins every iteration to a single size instead of ramping.
func WithFixedSize(size float64) CheckOption { return fixedSizeOption{size: size} }

type seedOption struct{ seed rng.Seed }

// WithSeed pins the root seed a check run derives its per-iteration seeds
// from, for deterministic replay of a prior run.
func WithSeed(seed rng.Seed) CheckOption { return seedOption{seed: seed} }

type generateItemsOption struct{}

// WithGenerateItems turns on a Debug-level log entry for every iteration
// that passes, for callers who want a trace of the whole run rather than
// just the final failing (or passing) outcome.
func WithGenerateItems() CheckOption { return generateItemsOption{} }

type shrinkCountOption struct{ n int }

// WithShrinkCount overrides the shrink search's node-visit budget.
func WithShrinkCount(n int) CheckOption { return shrinkCountOption{n: n} }

type shrinkItemsOption struct{}

// WithShrinkItems turns on an Info-level log entry for every shrink
// candidate the search accepts (still falsifies the property) while
// minimizing a failure.
func WithShrinkItems() CheckOption { return shrinkItemsOption{} }

type shrinkErrorsOption struct{}

// WithShrinkErrors turns on a Debug-level log entry for every shrink
// candidate the search rejects (passes, and is abandoned in favor of the
// remaining siblings) while minimizing a failure.
func WithShrinkErrors() CheckOption { return shrinkErrorsOption{} }

type classifierOption[T any] struct{ f func(T) string }

// WithClassifier attaches a labeling function: every generated value is
// passed through it and the resulting label counts are returned on
// CheckReport.Labels, independent of whether the run passes or fails.
func WithClassifier[T any](f func(T) string) CheckOption {
	return classifierOption[T]{f: f}
}

func resolveConfig[T any](opts ...CheckOption) (Config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		switch t := opt.(type) {
		case countOption:
			cfg.GenerateCount = t.n
		case sizeRangeOption:
			cfg.SizeLo, cfg.SizeHi = t.lo, t.hi
		case fixedSizeOption:
			size := t.size
			cfg.SizeFixed = &size
		case seedOption:
			seed := t.seed
			cfg.Seed = &seed
		case generateItemsOption:
			cfg.GenerateItems = true
		case shrinkCountOption:
			cfg.ShrinkCount = t.n
		case shrinkItemsOption:
			cfg.ShrinkItems = true
		case shrinkErrorsOption:
			cfg.ShrinkErrors = true
		case classifierOption[T]:
			cfg.classifier = t.f
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}

	return cfg, validateConfig(cfg)
}

// applyEnvOverrides lets CHECKITO_GENERATE_* / CHECKITO_SHRINK_* environment
// variables override whatever the caller's options resolved to, so a CI job
// can widen a run (or pin a seed for a bisect) without touching source.
func applyEnvOverrides(cfg *Config) error {
	if v, ok := os.LookupEnv("CHECKITO_GENERATE_COUNT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "checkito: CHECKITO_GENERATE_COUNT")
		}
		cfg.GenerateCount = n
	}
	if v, ok := os.LookupEnv("CHECKITO_GENERATE_SIZE_LO"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(err, "checkito: CHECKITO_GENERATE_SIZE_LO")
		}
		cfg.SizeLo = f
	}
	if v, ok := os.LookupEnv("CHECKITO_GENERATE_SIZE_HI"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(err, "checkito: CHECKITO_GENERATE_SIZE_HI")
		}
		cfg.SizeHi = f
	}
	if v, ok := os.LookupEnv("CHECKITO_GENERATE_SIZE_FIXED"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(err, "checkito: CHECKITO_GENERATE_SIZE_FIXED")
		}
		cfg.SizeFixed = &f
	}
	if v, ok := os.LookupEnv("CHECKITO_GENERATE_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "checkito: CHECKITO_GENERATE_SEED")
		}
		seed := rng.Seed(n)
		cfg.Seed = &seed
	}
	if v, ok := os.LookupEnv("CHECKITO_GENERATE_ITEMS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "checkito: CHECKITO_GENERATE_ITEMS")
		}
		cfg.GenerateItems = b
	}
	if v, ok := os.LookupEnv("CHECKITO_SHRINK_COUNT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "checkito: CHECKITO_SHRINK_COUNT")
		}
		cfg.ShrinkCount = n
	}
	if v, ok := os.LookupEnv("CHECKITO_SHRINK_ITEMS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "checkito: CHECKITO_SHRINK_ITEMS")
		}
		cfg.ShrinkItems = b
	}
	if v, ok := os.LookupEnv("CHECKITO_SHRINK_ERRORS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "checkito: CHECKITO_SHRINK_ERRORS")
		}
		cfg.ShrinkErrors = b
	}
	return nil
}

// ConfigError reports a Config that failed validation. It is returned
// synchronously, before any value is generated.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "checkito: invalid configuration: " + e.Reason
}

func validateConfig(cfg Config) error {
	switch {
	case cfg.GenerateCount <= 0:
		return &ConfigError{Reason: "generate count must be positive"}
	case cfg.ShrinkCount < 0:
		return &ConfigError{Reason: "shrink count must not be negative"}
	case cfg.SizeLo < 0 || cfg.SizeHi > 1 || cfg.SizeLo > cfg.SizeHi:
		return &ConfigError{Reason: "size range must satisfy 0 <= lo <= hi <= 1"}
	case cfg.SizeFixed != nil && (*cfg.SizeFixed < 0 || *cfg.SizeFixed > 1):
		return &ConfigError{Reason: "fixed size must lie in [0, 1]"}
	}
	return nil
}

func (cfg Config) sizeAt(i int) float64 {
	if cfg.SizeFixed != nil {
		return *cfg.SizeFixed
	}
	if cfg.GenerateCount <= 1 {
		return cfg.SizeHi
	}
	t := float64(i) / float64(cfg.GenerateCount-1)
	return rng.Lerp(cfg.SizeLo, cfg.SizeHi, t)
}

func (cfg Config) rootSeed() rng.Seed {
	if cfg.Seed != nil {
		return *cfg.Seed
	}
	return rng.NewSeed()
}
