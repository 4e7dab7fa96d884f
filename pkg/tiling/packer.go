package tiling

import (
	"math"
	"math/rand"

	"github.com/0x0FACED/go-rds/pkg/logger"
	"github.com/0x0FACED/go-rds/pkg/spatial"
	"github.com/jbeda/geom"
	"go.uber.org/zap"
)

// Packing is the result of a single packing attempt.
type Packing struct {
	Cells     []Cell
	Requested int
	// Attempts is the sampling budget actually consumed.
	Attempts int
	Sampled  int
	Filled   int
}

func (p *Packing) Achieved() int {
	return len(p.Cells)
}

// Warning returns an *UnderfilledPackingWarning when the packing is more
// than delta cells short of the request, nil otherwise.
func (p *Packing) Warning(delta int) error {
	if p.Achieved() >= p.Requested-delta {
		return nil
	}
	return &UnderfilledPackingWarning{Requested: p.Requested, Achieved: p.Achieved(), Delta: delta}
}

type packer struct {
	cfg   Config
	rng   *rand.Rand
	log   *logger.ZapLogger
	index *spatial.Index
	cells []Cell
}

func newPacker(cfg Config, rng *rand.Rand, log *logger.ZapLogger, cells []Cell) *packer {
	size := cfg.Size()
	pad := cfg.Profile.reach()*cfg.R + 1
	bounds := geom.Rect{
		Min: geom.Coord{X: -pad, Y: -pad},
		Max: geom.Coord{X: size + pad, Y: size + pad},
	}
	p := &packer{
		cfg:   cfg,
		rng:   rng,
		log:   log,
		index: spatial.New(bounds, cfg.R),
		cells: make([]Cell, 0, cfg.Target()),
	}
	// The index is keyed by slice position, so incoming cells are renumbered.
	for _, c := range cells {
		c.Index = len(p.cells)
		p.cells = append(p.cells, c)
		p.index.Insert(c.Index, c.Center)
	}
	return p
}

func (p *packer) place(center geom.Coord, tier int, filled bool) {
	t := p.cfg.Profile.Tiers[tier]
	c := Cell{
		Index:  len(p.cells),
		Center: center,
		Radius: p.cfg.R * t.RadiusScale,
		Volume: p.cfg.Profile.BaseVolume * t.Volume,
		Tier:   tier,
		Filled: filled,
	}
	p.cells = append(p.cells, c)
	p.index.Insert(c.Index, c.Center)
}

// spread draws uniform candidates until target cells are accepted or the
// budget runs out. Crowding is measured against cells accepted so far only.
func (p *packer) spread(target int) int {
	cfg := p.cfg
	lo, hi := 0.5, cfg.Size()-0.5
	reach := cfg.Profile.reach() * cfg.R
	reject := cfg.Profile.MinSeparation * cfg.R
	step := cfg.Count / 100

	attempts := 0
	for len(p.cells) < target && attempts < cfg.Count {
		x := lo + p.rng.Float64()*(hi-lo)
		y := lo + p.rng.Float64()*(hi-lo)
		v := geom.Coord{X: x, Y: y}
		attempts++

		nearest := p.index.Nearest(v, reach)
		if nearest >= reject {
			p.place(v, cfg.Profile.grade(nearest, cfg.R), false)
		}

		if step > 0 && attempts%step == 0 {
			p.log.Debug("[pack] progress",
				zap.Int("percent", attempts/step),
				zap.Int("accepted", len(p.cells)))
		}
	}
	return attempts
}

// fillHoles walks a shuffled regular grid and appends every candidate whose
// nearest center lies farther than the reject threshold.
func (p *packer) fillHoles(target int) int {
	cfg := p.cfg
	grid := cfg.Profile.HoleGrid
	span := cfg.Size() - 1

	candidates := make([]geom.Coord, 0, grid*grid)
	for i := 0; i < grid; i++ {
		for k := 0; k < grid; k++ {
			candidates = append(candidates, geom.Coord{
				X: 0.5 + float64(i)/float64(grid)*span,
				Y: 0.5 + float64(k)/float64(grid)*span,
			})
		}
	}
	p.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	threshold := cfg.Profile.MinSeparation * cfg.R
	free := cfg.Profile.freeTier()
	added := 0
	for _, c := range candidates {
		if len(p.cells) >= target {
			break
		}
		if p.index.Nearest(c, 2*threshold) > threshold {
			p.place(c, free, true)
			added++
		}
	}
	return added
}

// Pack runs one packing attempt: random spreading, then the hole search if
// the spreading stalled short of the target. It never fails on shortfall;
// inspect the returned Packing instead.
func Pack(cfg Config, rng *rand.Rand, log *logger.ZapLogger) (*Packing, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	target := cfg.Target()
	p := newPacker(cfg, rng, log, nil)

	log.Info("[pack] spreading disks",
		zap.String("profile", cfg.Profile.Name),
		zap.Int("target", target),
		zap.Float64("size", cfg.Size()),
		zap.Int("budget", cfg.Count))

	attempts := p.spread(target)
	sampled := len(p.cells)

	log.Info("[pack] spreading done",
		zap.Int("accepted", sampled),
		zap.Int("target", target),
		zap.Int("attempts", attempts))

	filled := 0
	if sampled < target {
		log.Info("[holes] checking potential holes", zap.Int("missing", target-sampled))
		filled = p.fillHoles(target)
		log.Info("[holes] search done", zap.Int("filled", filled), zap.Int("accepted", len(p.cells)))
	}

	return &Packing{
		Cells:     p.cells,
		Requested: target,
		Attempts:  attempts,
		Sampled:   sampled,
		Filled:    filled,
	}, nil
}

// FillHoles appends hole-search cells to a copy of an existing packing until
// target is reached or the grid is exhausted. The input cells keep their
// order and geometry; Index is renumbered to the position in the result.
func FillHoles(cfg Config, cells []Cell, target int, rng *rand.Rand, log *logger.ZapLogger) []Cell {
	p := newPacker(cfg, rng, log, cells)
	added := p.fillHoles(target)
	log.Debug("[holes] appended cells", zap.Int("filled", added))
	return p.cells
}

// minSeparation returns the smallest pairwise center distance, or +Inf for
// fewer than two cells.
func minSeparation(cells []Cell) float64 {
	best := math.Inf(1)
	for i := range cells {
		for j := i + 1; j < len(cells); j++ {
			if d := Distance(cells[i].Center, cells[j].Center); d < best {
				best = d
			}
		}
	}
	return best
}
