package spatial

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jbeda/geom"
)

func bruteWithin(pts []geom.Coord, p geom.Coord, r float64) []int {
	var ids []int
	for i, q := range pts {
		if q.DistanceFrom(p) < r {
			ids = append(ids, i)
		}
	}
	return ids
}

func TestWithinMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bounds := geom.Rect{Min: geom.Coord{X: 0, Y: 0}, Max: geom.Coord{X: 10, Y: 10}}
	ix := New(bounds, 0.25)

	var pts []geom.Coord
	for i := 0; i < 400; i++ {
		p := geom.Coord{X: rng.Float64() * 10, Y: rng.Float64() * 10}
		pts = append(pts, p)
		ix.Insert(i, p)
	}
	if ix.Len() != len(pts) {
		t.Fatalf("Len() = %d, want %d", ix.Len(), len(pts))
	}

	for i := 0; i < 50; i++ {
		q := geom.Coord{X: rng.Float64() * 10, Y: rng.Float64() * 10}
		r := 0.2 + rng.Float64()*1.5
		got := ix.Within(q, r)
		want := bruteWithin(pts, q, r)
		if len(got) != len(want) {
			t.Fatalf("Within(%v, %v) = %v, want %v", q, r, got, want)
		}
		for k := range got {
			if got[k] != want[k] {
				t.Fatalf("Within(%v, %v) = %v, want %v", q, r, got, want)
			}
		}
	}
}

func TestOverflowOutsideBounds(t *testing.T) {
	ix := New(geom.Rect{Min: geom.Coord{X: 0, Y: 0}, Max: geom.Coord{X: 1, Y: 1}}, 0.1)
	ix.Insert(0, geom.Coord{X: 0.5, Y: 0.5})
	ix.Insert(1, geom.Coord{X: 5, Y: 5})

	got := ix.Within(geom.Coord{X: 5.1, Y: 5}, 0.5)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("Within() = %v, want [1]", got)
	}
}

func TestNearest(t *testing.T) {
	ix := New(geom.Rect{Min: geom.Coord{X: -5, Y: -5}, Max: geom.Coord{X: 5, Y: 5}}, 0.5)
	ix.Insert(3, geom.Coord{X: 1, Y: 0})
	ix.Insert(4, geom.Coord{X: 0, Y: 2})

	if d := ix.Nearest(geom.Coord{}, 10); math.Abs(d-1) > 1e-12 {
		t.Errorf("Nearest() = %v, want 1", d)
	}
	if d := ix.Nearest(geom.Coord{X: -4, Y: -4}, 0.5); d != 0.5 {
		t.Errorf("Nearest() with nothing in range = %v, want 0.5", d)
	}
}
