package tiling

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/0x0FACED/go-rds/pkg/logger"
	"go.uber.org/zap/zapcore"
)

func TestGenerateScenario(t *testing.T) {
	cfg := smallConfig(Monodisperse())
	tl, err := Generate(cfg, rand.New(rand.NewSource(4)), logger.NewNop())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if tl.Requested != 16 {
		t.Fatalf("Requested = %d, want 16", tl.Requested)
	}
	if tl.Achieved != len(tl.Cells) || len(tl.Mesh.Faces) != tl.Achieved {
		t.Fatalf("achieved %d, cells %d, faces %d", tl.Achieved, len(tl.Cells), len(tl.Mesh.Faces))
	}
	if tl.Achieved < tl.Requested {
		var under *UnderfilledPackingWarning
		if !errors.As(tl.Warning, &under) {
			t.Fatalf("shortfall of %d cells not reported", tl.Requested-tl.Achieved)
		}
	} else if tl.Warning != nil {
		t.Fatalf("full tiling carries warning %v", tl.Warning)
	}
	assertSeparated(t, tl.Cells, 1.54*cfg.R)

	m := tl.Mesh
	if err := m.Validate(); err != nil {
		t.Fatalf("mesh invalid: %v", err)
	}
	for i, f := range m.Faces {
		if len(f.Edges) < cfg.Res {
			t.Errorf("face %d has %d edges, want at least %d", i+1, len(f.Edges), cfg.Res)
		}
		if f.Volume != tl.Cells[i].Volume {
			t.Errorf("face %d volume %v, cell volume %v", i+1, f.Volume, tl.Cells[i].Volume)
		}

		// Angles never decrease along the loop, apart from the closing step.
		prev := -1.0
		for _, id := range f.Loop[:len(f.Loop)-1] {
			a, err := PolarAngle(tl.Cells[i].Center, m.Point(id))
			if err != nil {
				t.Fatal(err)
			}
			if a < prev {
				t.Fatalf("face %d: angle %v after %v", i+1, a, prev)
			}
			prev = a
		}
		if prev >= 2*math.Pi {
			t.Fatalf("face %d: angle %v outside [0, 2π)", i+1, prev)
		}
	}
}

func TestGeneratePolydisperseWithRetry(t *testing.T) {
	cfg := DefaultPolydisperse()
	cfg.L = 6
	cfg.Retries = 3
	cfg.Delta = 2
	tl, err := Generate(cfg, rand.New(rand.NewSource(21)), logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if tl.PackAttempts < 1 || tl.PackAttempts > 3 {
		t.Errorf("PackAttempts = %d, want 1..3", tl.PackAttempts)
	}
	if (tl.Achieved >= tl.Requested-cfg.Delta) != (tl.Warning == nil) {
		t.Errorf("achieved %d of %d with delta %d, warning = %v", tl.Achieved, tl.Requested, cfg.Delta, tl.Warning)
	}
	if err := tl.Mesh.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultMonodisperse()
	cfg.Res = 2
	if _, err := Generate(cfg, rand.New(rand.NewSource(1)), logger.NewNop()); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Generate() = %v, want ErrInvalidConfig", err)
	}
}

func TestGenerateLogsShortfall(t *testing.T) {
	cfg := smallConfig(Monodisperse())
	cfg.Rho = 1.0
	log := logger.New()
	tl, err := Generate(cfg, rand.New(rand.NewSource(6)), log)
	if err != nil {
		t.Fatal(err)
	}
	if tl.Warning == nil {
		t.Fatalf("rho=1 on L=4 should not fill %d cells", tl.Requested)
	}
	if !strings.Contains(log.Text(), "target density not reached") {
		t.Errorf("shortfall not logged:\n%s", log.Text())
	}
}

func TestGenerateClosestPairOnlyAtDebug(t *testing.T) {
	cfg := smallConfig(Monodisperse())

	info := logger.New(logger.WithLevel(zapcore.InfoLevel))
	if _, err := Generate(cfg, rand.New(rand.NewSource(3)), info); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(info.Text(), "closest pair") {
		t.Error("closest pair logged by an info-level logger")
	}

	debug := logger.New()
	if _, err := Generate(cfg, rand.New(rand.NewSource(3)), debug); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(debug.Text(), "closest pair") {
		t.Error("closest pair missing from debug log")
	}
}
