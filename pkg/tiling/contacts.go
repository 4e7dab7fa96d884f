package tiling

import (
	"math"

	"github.com/0x0FACED/go-rds/pkg/logger"
	"github.com/0x0FACED/go-rds/pkg/mesh"
	"github.com/0x0FACED/go-rds/pkg/spatial"
	"github.com/jbeda/geom"
	"go.uber.org/zap"
)

// Contact is a pair of touching cells and the id of their shared point.
type Contact struct {
	A, B  int
	Point int
}

// Topology is the builder's output: for every cell the unordered ids of the
// points bounding its face, plus the contacts that produced shared points.
type Topology struct {
	Boundary [][]int
	Contacts []Contact
}

// BuildContacts registers one midpoint per pair of cells closer than the sum
// of their radii plus epsilon, then res arc samples per cell. Pairs are
// visited in (lower index, higher index) order so point ids do not depend on
// the neighbour search.
func BuildContacts(cells []Cell, epsilon float64, res int, m *mesh.Mesh, log *logger.ZapLogger) *Topology {
	topo := &Topology{Boundary: make([][]int, len(cells))}

	if len(cells) > 1 {
		ix, maxRadius := indexCells(cells)
		for k, a := range cells {
			for _, i := range ix.Within(a.Center, a.Radius+maxRadius+epsilon) {
				if i <= k {
					continue
				}
				b := cells[i]
				if Distance(a.Center, b.Center) >= a.Radius+b.Radius+epsilon {
					continue
				}
				id := m.AddPoint(Midpoint(a.Center, b.Center))
				topo.Boundary[k] = append(topo.Boundary[k], id)
				topo.Boundary[i] = append(topo.Boundary[i], id)
				topo.Contacts = append(topo.Contacts, Contact{A: k, B: i, Point: id})
			}
		}
	}

	for k, c := range cells {
		for i := 0; i < res; i++ {
			theta := 2 * float64(i) * math.Pi / float64(res)
			p := geom.Coord{
				X: c.Center.X + c.Radius*math.Cos(theta),
				Y: c.Center.Y + c.Radius*math.Sin(theta),
			}
			topo.Boundary[k] = append(topo.Boundary[k], m.AddPoint(p))
		}
	}

	log.Info("[contacts] topology built",
		zap.Int("cells", len(cells)),
		zap.Int("contacts", len(topo.Contacts)),
		zap.Int("points", len(m.Points)))
	return topo
}

func indexCells(cells []Cell) (*spatial.Index, float64) {
	bounds := geom.Rect{Min: cells[0].Center, Max: cells[0].Center}
	maxRadius := 0.0
	for _, c := range cells {
		bounds.Min.X = math.Min(bounds.Min.X, c.Center.X)
		bounds.Min.Y = math.Min(bounds.Min.Y, c.Center.Y)
		bounds.Max.X = math.Max(bounds.Max.X, c.Center.X)
		bounds.Max.Y = math.Max(bounds.Max.Y, c.Center.Y)
		maxRadius = math.Max(maxRadius, c.Radius)
	}
	pad := geom.Coord{X: 2*maxRadius + 1, Y: 2*maxRadius + 1}
	bounds.Min = bounds.Min.Minus(pad)
	bounds.Max = bounds.Max.Plus(pad)

	ix := spatial.New(bounds, maxRadius)
	for k, c := range cells {
		ix.Insert(k, c.Center)
	}
	return ix, maxRadius
}
