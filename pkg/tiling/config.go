package tiling

import (
	"fmt"
	"math"
)

// Config holds the recognized generation parameters.
type Config struct {
	// L is the linear domain size in cells.
	L int
	// R is the nominal disk radius.
	R float64
	// Rho is the target density, 0 < Rho <= 1.
	Rho float64
	// Count is the placement attempt budget.
	Count int
	// Epsilon is the contact tolerance added to the sum of radii.
	Epsilon float64
	// Res is the number of arc samples per disk.
	Res int
	// Delta is the accepted shortfall before the retry wrapper repacks.
	Delta int
	// Retries bounds the retry wrapper; 1 packs exactly once.
	Retries int
	Profile Profile
	Seed    int64
}

func DefaultMonodisperse() Config {
	return Config{
		L:       20,
		R:       0.5,
		Rho:     0.8,
		Count:   100000,
		Epsilon: 0.05,
		Res:     15,
		Delta:   0,
		Retries: 1,
		Profile: Monodisperse(),
	}
}

func DefaultPolydisperse() Config {
	cfg := DefaultMonodisperse()
	cfg.Profile = Polydisperse()
	cfg.Delta = 2
	cfg.Retries = 10
	return cfg
}

// Size is the side of the square domain.
func (c Config) Size() float64 {
	return math.Sqrt(3) * float64(c.L) / 2
}

// Target is the number of cells the packer aims for.
func (c Config) Target() int {
	return int(math.Floor(c.Rho * float64(c.L) * float64(c.L+1)))
}

func (c Config) Validate() error {
	switch {
	case c.L <= 0:
		return fmt.Errorf("%w: L must be positive, got %d", ErrInvalidConfig, c.L)
	case c.R <= 0:
		return fmt.Errorf("%w: R must be positive, got %g", ErrInvalidConfig, c.R)
	case c.Rho <= 0 || c.Rho > 1:
		return fmt.Errorf("%w: rho must be in (0, 1], got %g", ErrInvalidConfig, c.Rho)
	case c.Count <= 0:
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidConfig, c.Count)
	case c.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon must be positive, got %g", ErrInvalidConfig, c.Epsilon)
	case c.Res < 3:
		return fmt.Errorf("%w: res must be at least 3, got %d", ErrInvalidConfig, c.Res)
	case c.Delta < 0:
		return fmt.Errorf("%w: delta must be non-negative, got %d", ErrInvalidConfig, c.Delta)
	case c.Retries < 1:
		return fmt.Errorf("%w: retries must be at least 1, got %d", ErrInvalidConfig, c.Retries)
	}
	return c.Profile.validate()
}

func (p Profile) validate() error {
	switch {
	case p.MinSeparation <= 0:
		return fmt.Errorf("%w: profile %q: min separation must be positive", ErrInvalidConfig, p.Name)
	case len(p.Tiers) == 0:
		return fmt.Errorf("%w: profile %q has no tiers", ErrInvalidConfig, p.Name)
	case p.HoleGrid < 1:
		return fmt.Errorf("%w: profile %q: hole grid must be positive", ErrInvalidConfig, p.Name)
	}
	for _, t := range p.Tiers {
		if t.RadiusScale <= 0 {
			return fmt.Errorf("%w: profile %q: tier %q radius scale must be positive", ErrInvalidConfig, p.Name, t.Name)
		}
	}
	return nil
}
