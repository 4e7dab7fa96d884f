package tiling

import (
	"errors"
	"testing"

	"github.com/0x0FACED/go-rds/pkg/logger"
)

func scripted(achieved ...int) (PackFunc, *int) {
	calls := 0
	return func(attempt int) (*Packing, error) {
		calls++
		return &Packing{Cells: make([]Cell, achieved[attempt-1]), Requested: 10}, nil
	}, &calls
}

func TestRetryStopsWhenWithinDelta(t *testing.T) {
	pack, calls := scripted(5, 7, 8, 10)
	p, used, err := Retry(4, 2, logger.NewNop(), pack)
	if err != nil {
		t.Fatal(err)
	}
	if p.Achieved() != 8 || used != 3 || *calls != 3 {
		t.Errorf("got %d cells after %d attempts (%d calls), want 8 after 3", p.Achieved(), used, *calls)
	}
}

func TestRetryKeepsFullestWhenNeverWithinDelta(t *testing.T) {
	pack, _ := scripted(4, 6, 5)
	p, used, err := Retry(3, 0, logger.NewNop(), pack)
	if err != nil {
		t.Fatal(err)
	}
	if p.Achieved() != 6 || used != 3 {
		t.Errorf("got %d cells after %d attempts, want 6 after 3", p.Achieved(), used)
	}
	if p.Warning(0) == nil {
		t.Errorf("short packing should carry a warning")
	}
}

func TestRetryPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, used, err := Retry(5, 0, logger.NewNop(), func(int) (*Packing, error) { return nil, boom })
	if !errors.Is(err, boom) || used != 1 {
		t.Errorf("Retry() = %v after %d attempts, want wrapped boom after 1", err, used)
	}
	if _, _, err := Retry(0, 0, logger.NewNop(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Retry(0) = %v, want ErrInvalidConfig", err)
	}
}
