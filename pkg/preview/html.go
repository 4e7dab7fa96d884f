// Package preview renders a mesh for a quick look: an interactive echarts
// page with the run's logs alongside, or a flat PNG.
package preview

import (
	"fmt"
	"html"
	"io"

	"github.com/0x0FACED/go-rds/pkg/mesh"
	"github.com/0x0FACED/go-rds/static"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/jbeda/geom"
)

// Page is everything around the chart.
type Page struct {
	Title string
	// Summary lines are shown above the chart, escaped.
	Summary []string
	// Logs is already-rendered HTML, as returned by logger.ZapLogger.HTML.
	Logs string
}

func prepareScatter(scatter *charts.Scatter, title string) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "720px",
			Width:  "900px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                title,
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "x",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "y",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// Chart draws sites as a scatter series and overlaps one closed line per
// face. Sites may be nil.
func Chart(m *mesh.Mesh, sites []geom.Coord, title string) *charts.Scatter {
	scatter := charts.NewScatter()
	prepareScatter(scatter, title)

	points := make([]opts.ScatterData, 0, len(sites))
	for _, s := range sites {
		points = append(points, opts.ScatterData{
			Value: []float64{s.X, s.Y},
		})
	}
	scatter.AddSeries("Sites", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	for _, f := range m.Faces {
		data := make([]opts.LineData, 0, len(f.Loop))
		for _, id := range f.Loop {
			p := m.Point(id)
			data = append(data, opts.LineData{Value: []float64{p.X, p.Y}})
		}

		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
			charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
		)
		line.AddSeries("Faces", data).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 1,
			}),
		)
		scatter.Overlap(line)
	}

	return scatter
}

// errWriter keeps the first write error and turns every later write into a
// no-op returning it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteHTML writes the full preview page to w.
func WriteHTML(w io.Writer, m *mesh.Mesh, sites []geom.Coord, page Page) error {
	ew := &errWriter{w: w}

	fmt.Fprintln(ew, static.Part1)
	fmt.Fprintf(ew, "<h1>%s</h1>\n<pre id=\"summary\">", html.EscapeString(page.Title))
	for _, line := range page.Summary {
		fmt.Fprintln(ew, html.EscapeString(line))
	}
	fmt.Fprintln(ew, "</pre>")
	if ew.err != nil {
		return ew.err
	}

	if err := Chart(m, sites, page.Title).Render(ew); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	fmt.Fprintln(ew, static.Part2)
	fmt.Fprintln(ew, page.Logs)
	fmt.Fprintln(ew, static.Part3)
	return ew.err
}
