// Package tiling implements Random Disk Spreading: disks are packed into a
// square domain at a target density, and their contacts are turned into a
// planar mesh with one angle-ordered face per disk.
//
// Randomness comes only from the *rand.Rand handed in. The placement order,
// and with it every tier assignment, depends on the exact draw sequence, so
// two runs only agree when seeded and sequenced identically.
package tiling

import (
	"fmt"
	"math/rand"

	"github.com/0x0FACED/go-rds/pkg/logger"
	"github.com/0x0FACED/go-rds/pkg/mesh"
	"go.uber.org/zap"
)

// Tiling is a finished run: the cells, their mesh and the density outcome.
type Tiling struct {
	Cells     []Cell
	Mesh      *mesh.Mesh
	Requested int
	Achieved  int
	// PackAttempts is how many times the whole packing was run.
	PackAttempts int
	// Warning is an *UnderfilledPackingWarning when the run stayed more than
	// Delta cells short, nil otherwise.
	Warning error
}

// Generate packs, builds contacts and orients faces. It either returns a
// mesh that passes mesh.Validate or an error; a density shortfall is not an
// error and is reported through Tiling.Warning.
func Generate(cfg Config, rng *rand.Rand, log *logger.ZapLogger) (*Tiling, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	packing, attempts, err := Retry(cfg.Retries, cfg.Delta, log, func(int) (*Packing, error) {
		return Pack(cfg, rng, log)
	})
	if err != nil {
		return nil, err
	}

	t := &Tiling{
		Cells:        packing.Cells,
		Requested:    packing.Requested,
		Achieved:     packing.Achieved(),
		PackAttempts: attempts,
		Warning:      packing.Warning(cfg.Delta),
	}
	if t.Warning != nil {
		log.Warn("[pack] target density not reached", zap.Error(t.Warning))
	}
	if log.DebugEnabled() {
		log.Debug("[pack] closest pair", zap.Float64("distance", minSeparation(t.Cells)))
	}

	m := mesh.New()
	topo := BuildContacts(t.Cells, cfg.Epsilon, cfg.Res, m, log)
	if err := Orient(t.Cells, topo, m, log); err != nil {
		return nil, fmt.Errorf("orient faces: %w", err)
	}
	if err := m.Validate(); err != nil {
		log.Error("[orient] mesh failed validation", zap.Error(err))
		return nil, fmt.Errorf("validate mesh: %w", err)
	}
	t.Mesh = m

	log.Info("[rds] tiling ready",
		zap.Int("cells", t.Achieved),
		zap.Int("requested", t.Requested),
		zap.Int("points", len(m.Points)),
		zap.Int("edges", len(m.Edges)),
		zap.Int("faces", len(m.Faces)))
	return t, nil
}
