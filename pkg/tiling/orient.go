package tiling

import (
	"fmt"
	"sort"

	"github.com/0x0FACED/go-rds/pkg/logger"
	"github.com/0x0FACED/go-rds/pkg/mesh"
	"go.uber.org/zap"
)

type boundaryPoint struct {
	id    int
	angle float64
}

type boundaryPoints []boundaryPoint

func (s boundaryPoints) Len() int      { return len(s) }
func (s boundaryPoints) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

type boundaryByAngle struct{ boundaryPoints }

func (s boundaryByAngle) Less(i, j int) bool {
	return s.boundaryPoints[i].angle < s.boundaryPoints[j].angle
}

// orderBoundary sorts a cell's boundary point ids by polar angle around its
// center. Equal angles keep their input order.
func orderBoundary(c Cell, ids []int, m *mesh.Mesh) ([]int, error) {
	pts := make(boundaryPoints, len(ids))
	for k, id := range ids {
		a, err := PolarAngle(c.Center, m.Point(id))
		if err != nil {
			return nil, fmt.Errorf("cell %d, point %d: %w", c.Index, id, err)
		}
		pts[k] = boundaryPoint{id: id, angle: a}
	}
	sort.Stable(boundaryByAngle{pts})

	ordered := make([]int, len(pts))
	for k, p := range pts {
		ordered[k] = p.id
	}
	return ordered, nil
}

// Orient turns every cell's boundary into a closed, angle-ordered edge loop
// and appends the edges and one face per cell to m. Face i belongs to
// cells[i].
func Orient(cells []Cell, topo *Topology, m *mesh.Mesh, log *logger.ZapLogger) error {
	for k, c := range cells {
		ids := topo.Boundary[k]
		if len(ids) < 3 {
			err := &DegenerateFaceError{Cell: c.Index, Points: len(ids)}
			log.Error("[orient] degenerate face", zap.Error(err))
			return err
		}
		ordered, err := orderBoundary(c, ids, m)
		if err != nil {
			log.Error("[orient] angle failed", zap.Error(err))
			return err
		}
		m.AddLoop(ordered, c.Volume)
	}

	log.Info("[orient] faces oriented",
		zap.Int("faces", len(m.Faces)),
		zap.Int("edges", len(m.Edges)))
	return nil
}
