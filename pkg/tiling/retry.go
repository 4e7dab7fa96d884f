package tiling

import (
	"fmt"

	"github.com/0x0FACED/go-rds/pkg/logger"
	"go.uber.org/zap"
)

// PackFunc performs one independent packing attempt.
type PackFunc func(attempt int) (*Packing, error)

// Retry calls pack until the result is within delta cells of its request or
// attempts calls have been made. It returns the first acceptable packing,
// otherwise the fullest one seen, together with the number of calls used.
func Retry(attempts, delta int, log *logger.ZapLogger, pack PackFunc) (*Packing, int, error) {
	if attempts < 1 {
		return nil, 0, fmt.Errorf("%w: retry needs at least one attempt", ErrInvalidConfig)
	}

	var best *Packing
	for i := 1; i <= attempts; i++ {
		p, err := pack(i)
		if err != nil {
			return nil, i, fmt.Errorf("packing attempt %d: %w", i, err)
		}
		log.Info("[retry] attempt finished",
			zap.Int("attempt", i),
			zap.Int("achieved", p.Achieved()),
			zap.Int("requested", p.Requested))

		if best == nil || p.Achieved() > best.Achieved() {
			best = p
		}
		if p.Warning(delta) == nil {
			return p, i, nil
		}
	}
	return best, attempts, nil
}
