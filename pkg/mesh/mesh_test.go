package mesh

import (
	"strings"
	"testing"

	"github.com/jbeda/geom"
	"go.uber.org/multierr"
)

func square(m *Mesh) []int {
	return []int{
		m.AddPoint(geom.Coord{X: 0, Y: 0}),
		m.AddPoint(geom.Coord{X: 1, Y: 0}),
		m.AddPoint(geom.Coord{X: 1, Y: 1}),
		m.AddPoint(geom.Coord{X: 0, Y: 1}),
	}
}

func TestAddLoop(t *testing.T) {
	m := New()
	pts := square(m)
	if pts[0] != 1 || pts[3] != 4 {
		t.Fatalf("point ids = %v, want 1-based", pts)
	}

	fid := m.AddLoop(pts, 2.5)
	if fid != 1 {
		t.Fatalf("face id = %d, want 1", fid)
	}
	f := m.Faces[0]
	if len(f.Edges) != 4 {
		t.Fatalf("edges = %v, want 4", f.Edges)
	}
	wantLoop := []int{1, 2, 3, 4, 1}
	for i, id := range wantLoop {
		if f.Loop[i] != id {
			t.Fatalf("loop = %v, want %v", f.Loop, wantLoop)
		}
	}
	if m.Edges[3] != (Edge{From: 4, To: 1}) {
		t.Errorf("closing edge = %+v", m.Edges[3])
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if v := m.Volumes(); len(v) != 1 || v[0] != 2.5 {
		t.Errorf("Volumes() = %v", v)
	}
}

func TestSignedEdges(t *testing.T) {
	m := New()
	pts := square(m)
	m.AddLoop(pts, 1)
	// Walk the same square backwards through negative ids.
	m.AddFace([]int{-4, -3, -2, -1}, 1)
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	want := []int{1, 4, 3, 2, 1}
	got := m.Faces[1].Loop
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reversed loop = %v, want %v", got, want)
		}
	}
}

func TestValidateReportsAll(t *testing.T) {
	m := New()
	pts := square(m)
	m.AddEdge(pts[0], 99)
	m.AddFace([]int{1}, 1)
	m.AddFace([]int{1, 1, 1}, 1)

	err := m.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want errors")
	}
	errs := multierr.Errors(err)
	if len(errs) < 3 {
		t.Fatalf("got %d errors, want at least 3: %v", len(errs), err)
	}
	for _, want := range []string{"edge 1: endpoint out of range", "face 1: 1 edges", "face 2"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("missing %q in %v", want, err)
		}
	}
}

func TestBounds(t *testing.T) {
	m := New()
	if b := m.Bounds(); b != (geom.Rect{}) {
		t.Errorf("empty Bounds() = %v", b)
	}
	m.AddPoint(geom.Coord{X: 2, Y: -1})
	m.AddPoint(geom.Coord{X: -3, Y: 4})
	b := m.Bounds()
	if b.Min != (geom.Coord{X: -3, Y: -1}) || b.Max != (geom.Coord{X: 2, Y: 4}) {
		t.Errorf("Bounds() = %v", b)
	}
	if !m.IsEmpty() {
		t.Errorf("mesh without faces should be empty")
	}
}
