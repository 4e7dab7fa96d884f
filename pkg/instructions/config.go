package instructions

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidConfig = errors.New("instructions: invalid config")

// Resolution controls the Evolver t parameter; smaller t is finer.
type Resolution struct {
	// Weibull draws t per pass instead of always using TMin.
	Weibull bool
	TMin    float64
	TMax    float64
	Shape   float64
	Scale   float64
	// Bins is the number of evenly spaced t values in [TMin, TMax] that
	// Weibull draws are snapped onto.
	Bins int
}

type Config struct {
	// InDir holds the tiling files on the machine running the scripts.
	InDir string
	// OutDir receives the dumps written by Evolver.
	OutDir  string
	Evolver string

	L   int
	R   float64
	Rho []float64
	// Tilings is the number of tilings per density, numbered from 0.
	Tilings int

	// Alphas are run from last to first. They are written as given.
	Alphas []string
	// Iterations is the number of relaxation passes per alpha.
	Iterations int
	// Stabilize is the number of alpha 1 passes before the sweep.
	Stabilize int

	Resolution Resolution
	// Label tags file names with the resolution setup.
	Label string
}

func DefaultAlphas() []string {
	return []string{
		"0.700", "0.725", "0.750", "0.775", "0.800", "0.825", "0.850", "0.860", "0.864",
		"0.868", "0.872", "0.880", "0.890", "0.905", "0.920", "0.935", "0.950", "0.975",
	}
}

func DefaultConfig() Config {
	return Config{
		Evolver:    "/usr/local/bin/evolver",
		L:          26,
		R:          0.5,
		Rho:        []float64{0.8},
		Tilings:    50,
		Alphas:     DefaultAlphas(),
		Iterations: 20,
		Stabilize:  4,
		Resolution: Resolution{
			TMin:  0.005,
			TMax:  0.14,
			Shape: 1.4,
			Scale: 0.035,
			Bins:  28,
		},
		Label: "minp005maxp14",
	}
}

// ParseAlphas splits a comma separated list, dropping blanks.
func ParseAlphas(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func (c Config) Validate() error {
	switch {
	case c.L <= 0:
		return fmt.Errorf("%w: L must be positive, got %d", ErrInvalidConfig, c.L)
	case c.R <= 0:
		return fmt.Errorf("%w: R must be positive, got %g", ErrInvalidConfig, c.R)
	case len(c.Rho) == 0:
		return fmt.Errorf("%w: no densities", ErrInvalidConfig)
	case c.Tilings <= 0:
		return fmt.Errorf("%w: tilings must be positive, got %d", ErrInvalidConfig, c.Tilings)
	case len(c.Alphas) == 0:
		return fmt.Errorf("%w: no alphas", ErrInvalidConfig)
	case c.Iterations < 1:
		return fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidConfig, c.Iterations)
	case c.Stabilize < 0:
		return fmt.Errorf("%w: stabilize must be non-negative, got %d", ErrInvalidConfig, c.Stabilize)
	case c.Evolver == "":
		return fmt.Errorf("%w: evolver path is empty", ErrInvalidConfig)
	}
	for _, rho := range c.Rho {
		if rho <= 0 || rho > 1 {
			return fmt.Errorf("%w: rho must be in (0, 1], got %g", ErrInvalidConfig, rho)
		}
	}
	for _, a := range c.Alphas {
		if err := parseAlpha(a); err != nil {
			return fmt.Errorf("%w: alpha %q: %v", ErrInvalidConfig, a, err)
		}
	}
	return c.Resolution.validate()
}

func (r Resolution) validate() error {
	if r.TMin <= 0 {
		return fmt.Errorf("%w: t_min must be positive, got %g", ErrInvalidConfig, r.TMin)
	}
	if !r.Weibull {
		return nil
	}
	switch {
	case r.TMax <= r.TMin:
		return fmt.Errorf("%w: t_max %g must exceed t_min %g", ErrInvalidConfig, r.TMax, r.TMin)
	case r.Shape <= 0 || r.Scale <= 0:
		return fmt.Errorf("%w: weibull shape and scale must be positive", ErrInvalidConfig)
	case r.Bins < 2:
		return fmt.Errorf("%w: need at least 2 bins, got %d", ErrInvalidConfig, r.Bins)
	}
	return nil
}
