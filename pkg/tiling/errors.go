package tiling

import (
	"errors"
	"fmt"

	"github.com/jbeda/geom"
)

var ErrInvalidConfig = errors.New("invalid config")

// DegenerateVectorError is returned when an angle is requested between two
// identical points.
type DegenerateVectorError struct {
	Center geom.Coord
	Point  geom.Coord
}

func (e *DegenerateVectorError) Error() string {
	return fmt.Sprintf("degenerate vector: point (%g, %g) coincides with center (%g, %g)",
		e.Point.X, e.Point.Y, e.Center.X, e.Center.Y)
}

// DegenerateFaceError means a cell resolved to fewer than 3 boundary points.
type DegenerateFaceError struct {
	Cell   int
	Points int
}

func (e *DegenerateFaceError) Error() string {
	return fmt.Sprintf("degenerate face: cell %d has %d boundary points, need at least 3", e.Cell, e.Points)
}

// UnderfilledPackingWarning reports a packing that stayed more than Delta
// cells short of the requested count. It is attached to results, not
// returned as a failure.
type UnderfilledPackingWarning struct {
	Requested int
	Achieved  int
	Delta     int
}

func (w *UnderfilledPackingWarning) Error() string {
	return fmt.Sprintf("underfilled packing: %d of %d cells placed (allowed deviation %d)", w.Achieved, w.Requested, w.Delta)
}

func (w *UnderfilledPackingWarning) Missing() int {
	return w.Requested - w.Achieved
}
