package tiling

import (
	"math"

	"github.com/jbeda/geom"
)

func Distance(p, q geom.Coord) float64 {
	return p.DistanceFrom(q)
}

func Midpoint(p, q geom.Coord) geom.Coord {
	return p.Plus(q).Times(0.5)
}

// PolarAngle returns the angle of point-center in [0, 2π). Vectors with a
// non-negative vertical component map to [0, π] through the arccosine of the
// normalized horizontal component, the rest to 2π minus that.
func PolarAngle(center, point geom.Coord) (float64, error) {
	w := point.Minus(center)
	norm := w.Magnitude()
	if norm == 0 {
		return 0, &DegenerateVectorError{Center: center, Point: point}
	}
	c := math.Max(-1, math.Min(1, w.X/norm))
	if w.Y >= 0 {
		return math.Acos(c), nil
	}
	return 2*math.Pi - math.Acos(c), nil
}
