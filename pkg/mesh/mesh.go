// Package mesh holds the planar cell mesh shared by the generators and the
// exporter. All ids are 1-based, in creation order.
package mesh

import (
	"fmt"

	"github.com/jbeda/geom"
	"go.uber.org/multierr"
)

// Edge joins two point ids.
type Edge struct {
	From int
	To   int
}

// Face is one cell's boundary. Loop is the closed point sequence (first id
// repeated at the end), Edges the signed edge ids walking it.
type Face struct {
	Loop   []int
	Edges  []int
	Volume float64
}

// Mesh accumulates points, edges and faces as the pipeline stages run.
type Mesh struct {
	Points []geom.Coord
	Edges  []Edge
	Faces  []Face
}

func New() *Mesh {
	return &Mesh{}
}

// AddPoint registers p and returns its id. Points are never merged by
// coordinate: each call creates a new point.
func (m *Mesh) AddPoint(p geom.Coord) int {
	m.Points = append(m.Points, p)
	return len(m.Points)
}

func (m *Mesh) AddEdge(from, to int) int {
	m.Edges = append(m.Edges, Edge{From: from, To: to})
	return len(m.Edges)
}

// AddFace stores a face given its edge loop. Loop is derived from the edges.
func (m *Mesh) AddFace(edges []int, volume float64) int {
	loop := make([]int, 0, len(edges)+1)
	for _, id := range edges {
		e, ok := m.edge(id)
		if !ok {
			loop = nil
			break
		}
		loop = append(loop, e.From)
	}
	if len(loop) > 0 {
		loop = append(loop, loop[0])
	}
	m.Faces = append(m.Faces, Face{Loop: loop, Edges: edges, Volume: volume})
	return len(m.Faces)
}

// AddLoop creates one edge per consecutive pair of the closed point sequence
// and a face over them.
func (m *Mesh) AddLoop(points []int, volume float64) int {
	n := len(points)
	edges := make([]int, 0, n)
	for k := 0; k < n; k++ {
		edges = append(edges, m.AddEdge(points[k], points[(k+1)%n]))
	}
	return m.AddFace(edges, volume)
}

func (m *Mesh) Point(id int) geom.Coord {
	return m.Points[id-1]
}

// edge resolves a signed edge id; negative ids walk the edge backwards.
func (m *Mesh) edge(id int) (Edge, bool) {
	idx := id
	if idx < 0 {
		idx = -idx
	}
	if idx < 1 || idx > len(m.Edges) {
		return Edge{}, false
	}
	e := m.Edges[idx-1]
	if id < 0 {
		e.From, e.To = e.To, e.From
	}
	return e, true
}

func (m *Mesh) Volumes() []float64 {
	vols := make([]float64, len(m.Faces))
	for i, f := range m.Faces {
		vols[i] = f.Volume
	}
	return vols
}

func (m *Mesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// Bounds returns the smallest rectangle holding every point.
func (m *Mesh) Bounds() geom.Rect {
	if len(m.Points) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{Min: m.Points[0], Max: m.Points[0]}
	for _, p := range m.Points[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	return r
}

// Validate checks the structural invariants the exporter relies on and
// reports every violation found.
func (m *Mesh) Validate() error {
	var err error
	for i, e := range m.Edges {
		if !m.hasPoint(e.From) || !m.hasPoint(e.To) {
			err = multierr.Append(err, fmt.Errorf("edge %d: endpoint out of range (%d, %d)", i+1, e.From, e.To))
		}
	}
	for i, f := range m.Faces {
		err = multierr.Append(err, m.validateFace(i+1, f))
	}
	return err
}

func (m *Mesh) hasPoint(id int) bool {
	return id >= 1 && id <= len(m.Points)
}

func (m *Mesh) validateFace(id int, f Face) error {
	if len(f.Edges) < 3 {
		return fmt.Errorf("face %d: %d edges, need at least 3", id, len(f.Edges))
	}
	var err error
	var first, prev Edge
	for k, eid := range f.Edges {
		e, ok := m.edge(eid)
		if !ok {
			return multierr.Append(err, fmt.Errorf("face %d: unknown edge %d", id, eid))
		}
		if k == 0 {
			first = e
		} else if prev.To != e.From {
			err = multierr.Append(err, fmt.Errorf("face %d: edge %d does not start where edge %d ends", id, eid, f.Edges[k-1]))
		}
		prev = e
	}
	if prev.To != first.From {
		err = multierr.Append(err, fmt.Errorf("face %d: loop not closed", id))
	}
	if n := len(f.Loop); n > 0 && f.Loop[0] != f.Loop[n-1] {
		err = multierr.Append(err, fmt.Errorf("face %d: point loop does not repeat its first point", id))
	}
	return err
}
