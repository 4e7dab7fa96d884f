package preview

import (
	"fmt"
	"io"
	"math"

	"github.com/0x0FACED/go-rds/pkg/mesh"
	"github.com/gogpu/gg"
	"github.com/jbeda/geom"
)

const margin = 16

// Raster sizes the PNG preview. The mesh is scaled uniformly to fit Width
// and Height minus a fixed margin.
type Raster struct {
	Width  int
	Height int
	// LineWidth of face boundaries in pixels.
	LineWidth float64
	// SiteRadius of site dots in pixels; zero hides sites.
	SiteRadius float64
}

func DefaultRaster() Raster {
	return Raster{Width: 1024, Height: 1024, LineWidth: 1, SiteRadius: 1.5}
}

// transform maps mesh coordinates to pixels with y pointing up.
type transform struct {
	min    geom.Coord
	scale  float64
	height float64
}

func newTransform(bounds geom.Rect, r Raster) transform {
	w := bounds.Max.X - bounds.Min.X
	h := bounds.Max.Y - bounds.Min.Y
	scale := math.Min(
		float64(r.Width-2*margin)/math.Max(w, 1e-9),
		float64(r.Height-2*margin)/math.Max(h, 1e-9),
	)
	return transform{min: bounds.Min, scale: scale, height: float64(r.Height)}
}

func (t transform) apply(p geom.Coord) (float64, float64) {
	x := margin + (p.X-t.min.X)*t.scale
	y := t.height - margin - (p.Y-t.min.Y)*t.scale
	return x, y
}

// Draw paints m and sites onto a fresh context.
func Draw(m *mesh.Mesh, sites []geom.Coord, r Raster) (*gg.Context, error) {
	if r.Width <= 2*margin || r.Height <= 2*margin {
		return nil, fmt.Errorf("preview: raster %dx%d too small", r.Width, r.Height)
	}
	dc := gg.NewContext(r.Width, r.Height)

	dc.SetRGB(0.12, 0.12, 0.12)
	dc.DrawRectangle(0, 0, float64(r.Width), float64(r.Height))
	if err := dc.Fill(); err != nil {
		return nil, err
	}
	if m.IsEmpty() && len(sites) == 0 {
		return dc, nil
	}

	bounds := m.Bounds()
	for _, s := range sites {
		bounds.Min.X = math.Min(bounds.Min.X, s.X)
		bounds.Min.Y = math.Min(bounds.Min.Y, s.Y)
		bounds.Max.X = math.Max(bounds.Max.X, s.X)
		bounds.Max.Y = math.Max(bounds.Max.Y, s.Y)
	}
	t := newTransform(bounds, r)

	dc.SetRGB(0.83, 0.83, 0.83)
	dc.SetLineWidth(r.LineWidth)
	for _, f := range m.Faces {
		for i, id := range f.Loop {
			x, y := t.apply(m.Point(id))
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("stroke face: %w", err)
		}
	}

	if r.SiteRadius > 0 {
		dc.SetRGBA(0.56, 0.93, 0.56, 0.9)
		for _, s := range sites {
			x, y := t.apply(s)
			dc.DrawCircle(x, y, r.SiteRadius)
			if err := dc.Fill(); err != nil {
				return nil, fmt.Errorf("fill site: %w", err)
			}
		}
	}
	return dc, nil
}

// WritePNG encodes the preview to w.
func WritePNG(w io.Writer, m *mesh.Mesh, sites []geom.Coord, r Raster) error {
	dc, err := Draw(m, sites, r)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

func SavePNG(path string, m *mesh.Mesh, sites []geom.Coord, r Raster) error {
	dc, err := Draw(m, sites, r)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.SavePNG(path)
}
