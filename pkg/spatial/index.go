// Package spatial answers "which points lie within r of p" for the packers
// and the mesh builders. Points live in a quadtree; anything outside the
// tree's bounds is kept in a linear overflow list.
package spatial

import (
	"sort"

	"github.com/jbeda/geom"
	"github.com/jbeda/geom/qtree"
)

// entry is the quadtree item: a small square around the point, keyed by id.
type entry struct {
	id  int
	pos geom.Coord
	box geom.Rect
}

func (e *entry) Bounds() geom.Rect {
	return e.box
}

func (e *entry) Equals(oi interface{}) bool {
	o, ok := oi.(*entry)
	return ok && o.id == e.id
}

type Index struct {
	tree     *qtree.Tree
	half     float64
	overflow []*entry
	pos      map[int]geom.Coord
}

// New creates an index covering bounds. half is the half-width of the box
// stored for each point; it only has to be positive.
func New(bounds geom.Rect, half float64) *Index {
	if half <= 0 {
		half = 0.5
	}
	return &Index{
		tree: qtree.New(qtree.ConfigDefault(), bounds),
		half: half,
		pos:  make(map[int]geom.Coord),
	}
}

func (ix *Index) box(p geom.Coord, half float64) geom.Rect {
	d := geom.Coord{X: half, Y: half}
	return geom.Rect{Min: p.Minus(d), Max: p.Plus(d)}
}

// Insert adds point p under id. Ids must be unique.
func (ix *Index) Insert(id int, p geom.Coord) {
	e := &entry{id: id, pos: p, box: ix.box(p, ix.half)}
	ix.pos[id] = p
	if _, inserted := ix.tree.FindOrInsert(e); !inserted {
		ix.overflow = append(ix.overflow, e)
	}
}

func (ix *Index) Len() int {
	return len(ix.pos)
}

// Within returns the ids of every point strictly closer than r to p, in
// ascending id order.
func (ix *Index) Within(p geom.Coord, r float64) []int {
	found := make(map[qtree.Item]bool)
	ix.tree.CollectIntersect(ix.box(p, r+ix.half), found)

	var ids []int
	for item := range found {
		e := item.(*entry)
		if e.pos.DistanceFrom(p) < r {
			ids = append(ids, e.id)
		}
	}
	for _, e := range ix.overflow {
		if e.pos.DistanceFrom(p) < r {
			ids = append(ids, e.id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Nearest returns the distance from p to the closest point within r, or
// r itself when there is none.
func (ix *Index) Nearest(p geom.Coord, r float64) float64 {
	best := r
	for _, id := range ix.Within(p, r) {
		if d := ix.pos[id].DistanceFrom(p); d < best {
			best = d
		}
	}
	return best
}
