// Package hexagon builds the network-based tiling: unit hexagons on a
// triangular lattice, touching neighbours sharing a vertex with probability
// PContact, every vertex jittered, and lattice sites left empty at random.
package hexagon

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/0x0FACED/go-rds/pkg/logger"
	"github.com/0x0FACED/go-rds/pkg/mesh"
	"github.com/0x0FACED/go-rds/pkg/spatial"
	"github.com/jbeda/geom"
	"go.uber.org/zap"
)

// coincident is how close two hexagon vertices must be to count as the same.
const coincident = 0.001

type Config struct {
	// L is the lattice size in cell diameters.
	L int
	// PContact is the probability that two touching hexagons share their
	// common vertex instead of each keeping its own copy.
	PContact float64
	// POccupied is the probability that a lattice site keeps its cell.
	POccupied float64
	// Jitter bounds the uniform displacement added to each vertex coordinate.
	Jitter float64
	// Body volumes are drawn uniformly from [VolumeMin, VolumeMax].
	VolumeMin float64
	VolumeMax float64
}

func DefaultConfig() Config {
	return Config{
		L:         20,
		PContact:  1,
		POccupied: 0.9,
		Jitter:    0.4,
		VolumeMin: math.Pi - 0.2,
		VolumeMax: math.Pi + 0.25,
	}
}

func (c Config) Validate() error {
	switch {
	case c.L <= 0:
		return fmt.Errorf("hexagon: L must be positive, got %d", c.L)
	case c.PContact < 0 || c.PContact > 1:
		return fmt.Errorf("hexagon: contact probability must be in [0, 1], got %g", c.PContact)
	case c.POccupied < 0 || c.POccupied > 1:
		return fmt.Errorf("hexagon: occupation probability must be in [0, 1], got %g", c.POccupied)
	case c.Jitter < 0:
		return fmt.Errorf("hexagon: jitter must be non-negative, got %g", c.Jitter)
	case c.VolumeMax < c.VolumeMin:
		return fmt.Errorf("hexagon: volume range [%g, %g] is empty", c.VolumeMin, c.VolumeMax)
	}
	return nil
}

// LatticeCenters returns the cell centers: even rows at (2k, √3 i) for
// k < L, odd rows shifted by one with L-1 cells.
func LatticeCenters(l int) []geom.Coord {
	var centers []geom.Coord
	for i := 0; i < l; i++ {
		y := math.Sqrt(3) * float64(i)
		if i%2 == 0 {
			for k := 0; k < l; k++ {
				centers = append(centers, geom.Coord{X: float64(2 * k), Y: y})
			}
		} else {
			for k := 1; k < l; k++ {
				centers = append(centers, geom.Coord{X: float64(2*k - 1), Y: y})
			}
		}
	}
	return centers
}

// Result is the generated mesh plus a few counters for reporting.
type Result struct {
	Mesh   *mesh.Mesh
	Sites  int
	Kept   int
	Shared int
}

type network struct {
	nodes    []geom.Coord
	hexagons [][6]int // node indices, counter-clockwise
}

func Generate(cfg Config, rng *rand.Rand, log *logger.ZapLogger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	centers := LatticeCenters(cfg.L)
	log.Info("[hex] lattice built", zap.Int("sites", len(centers)))

	net, shared := buildNetwork(centers, cfg.PContact, rng)

	for i := range net.nodes {
		net.nodes[i].X += uniform(rng, -cfg.Jitter, cfg.Jitter)
		net.nodes[i].Y += uniform(rng, -cfg.Jitter, cfg.Jitter)
	}

	var kept []int
	for i := range net.hexagons {
		if cfg.POccupied > rng.Float64() {
			kept = append(kept, i)
		}
	}

	m := net.compact(kept, func() float64 {
		return uniform(rng, cfg.VolumeMin, cfg.VolumeMax)
	})
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("hexagon: %w", err)
	}

	log.Info("[hex] tiling ready",
		zap.Int("kept", len(kept)),
		zap.Int("shared", shared),
		zap.Int("points", len(m.Points)),
		zap.Int("edges", len(m.Edges)))

	return &Result{Mesh: m, Sites: len(centers), Kept: len(kept), Shared: shared}, nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// buildNetwork places six vertices per center. A vertex landing on an
// existing one is merged with probability pContact; each coincident
// candidate gets its own draw, in creation order.
func buildNetwork(centers []geom.Coord, pContact float64, rng *rand.Rand) (*network, int) {
	bounds := geom.Rect{Min: geom.Coord{X: -2, Y: -2}, Max: geom.Coord{X: 2, Y: 2}}
	for _, c := range centers {
		bounds.Max.X = math.Max(bounds.Max.X, c.X+2)
		bounds.Max.Y = math.Max(bounds.Max.Y, c.Y+2)
	}
	ix := spatial.New(bounds, coincident)

	net := &network{}
	shared := 0
	for _, c := range centers {
		var hex [6]int
		for k := 0; k < 6; k++ {
			theta := 2 * float64(k) * math.Pi / 6
			node := geom.Coord{X: c.X + math.Cos(theta), Y: c.Y + math.Sin(theta)}

			idx := -1
			for _, u := range ix.Within(node, coincident) {
				if pContact > rng.Float64() {
					idx = u
					shared++
					break
				}
			}
			if idx < 0 {
				idx = len(net.nodes)
				net.nodes = append(net.nodes, node)
				ix.Insert(idx, node)
			}
			hex[k] = idx
		}
		net.hexagons = append(net.hexagons, hex)
	}
	return net, shared
}

// compact emits the kept hexagons into a fresh mesh. Surviving vertices keep
// their relative order and are renumbered from 1.
func (n *network) compact(kept []int, volume func() float64) *mesh.Mesh {
	used := make(map[int]bool)
	for _, h := range kept {
		for _, node := range n.hexagons[h] {
			used[node] = true
		}
	}
	order := make([]int, 0, len(used))
	for node := range used {
		order = append(order, node)
	}
	sort.Ints(order)

	m := mesh.New()
	ids := make(map[int]int, len(order))
	for _, node := range order {
		ids[node] = m.AddPoint(n.nodes[node])
	}

	for _, h := range kept {
		var loop []int
		for _, node := range n.hexagons[h] {
			loop = append(loop, ids[node])
		}
		m.AddLoop(loop, volume())
	}
	return m
}
