package tiling

import "github.com/jbeda/geom"

// Cell is one placed disk. Index is its position in the packing order.
type Cell struct {
	Index  int
	Center geom.Coord
	Radius float64
	Volume float64
	Tier   int
	// Filled marks cells placed by the hole search rather than by sampling.
	Filled bool
}
