package tiling

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/jbeda/geom"
)

func TestPolarAngle(t *testing.T) {
	center := geom.Coord{X: 1, Y: 1}
	tests := []struct {
		name  string
		point geom.Coord
		want  float64
	}{
		{"east", geom.Coord{X: 2, Y: 1}, 0},
		{"north", geom.Coord{X: 1, Y: 3}, math.Pi / 2},
		{"west", geom.Coord{X: 0, Y: 1}, math.Pi},
		{"south", geom.Coord{X: 1, Y: 0}, 3 * math.Pi / 2},
		{"north-east", geom.Coord{X: 2, Y: 2}, math.Pi / 4},
		{"south-east", geom.Coord{X: 2, Y: 0}, 7 * math.Pi / 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PolarAngle(center, tt.point)
			if err != nil {
				t.Fatalf("PolarAngle() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("PolarAngle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolarAngleRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		p := geom.Coord{X: rng.NormFloat64(), Y: rng.NormFloat64()}
		a, err := PolarAngle(geom.Coord{}, p)
		if err != nil {
			t.Fatal(err)
		}
		if a < 0 || a >= 2*math.Pi || math.IsNaN(a) {
			t.Fatalf("PolarAngle(%v) = %v, outside [0, 2π)", p, a)
		}
	}
}

func TestPolarAngleDegenerate(t *testing.T) {
	p := geom.Coord{X: 0.3, Y: -2}
	_, err := PolarAngle(p, p)
	var dv *DegenerateVectorError
	if !errors.As(err, &dv) {
		t.Fatalf("PolarAngle(p, p) error = %v, want *DegenerateVectorError", err)
	}
	if dv.Point != p {
		t.Errorf("error point = %v, want %v", dv.Point, p)
	}
}

func TestPrimitivesAreSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		p := geom.Coord{X: rng.Float64() * 100, Y: rng.Float64() * 100}
		q := geom.Coord{X: rng.Float64() * 100, Y: rng.Float64() * 100}
		if Distance(p, q) != Distance(q, p) {
			t.Fatalf("Distance not symmetric for %v, %v", p, q)
		}
		if Midpoint(p, q) != Midpoint(q, p) {
			t.Fatalf("Midpoint not symmetric for %v, %v", p, q)
		}
	}
	if d := Distance(geom.Coord{}, geom.Coord{X: 3, Y: 4}); d != 5 {
		t.Errorf("Distance() = %v, want 5", d)
	}
	if m := Midpoint(geom.Coord{}, geom.Coord{X: 0.9, Y: 0}); m != (geom.Coord{X: 0.45, Y: 0}) {
		t.Errorf("Midpoint() = %v, want (0.45, 0)", m)
	}
}
