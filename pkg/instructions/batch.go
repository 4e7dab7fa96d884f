package instructions

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/0x0FACED/go-rds/pkg/logger"
	"go.uber.org/zap"
)

// WriteBatch writes one script per tiling and density into dir and returns
// their paths. Scripts are produced tiling by tiling, densities inner, all
// drawing from the same rng.
func WriteBatch(dir string, cfg Config, rng *rand.Rand, log *logger.ZapLogger) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info("[batch] writing scripts",
		zap.Int("tilings", cfg.Tilings),
		zap.Int("densities", len(cfg.Rho)),
		zap.Int("alphas", len(cfg.Alphas)),
		zap.Bool("weibull", cfg.Resolution.Weibull))

	var paths []string
	var buf bytes.Buffer
	for n := 0; n < cfg.Tilings; n++ {
		for _, rho := range cfg.Rho {
			buf.Reset()
			if err := Write(&buf, cfg, n, rho, rng); err != nil {
				return paths, err
			}
			p := filepath.Join(dir, ScriptName(cfg, n, rho))
			if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
				return paths, fmt.Errorf("write script: %w", err)
			}
			log.Debug("[batch] script written", zap.String("path", p))
			paths = append(paths, p)
		}
	}

	log.Info("[batch] done", zap.Int("scripts", len(paths)))
	return paths, nil
}
