package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/0x0FACED/go-rds/pkg/evolver"
	"github.com/0x0FACED/go-rds/pkg/hexagon"
	"github.com/0x0FACED/go-rds/pkg/instructions"
	"github.com/0x0FACED/go-rds/pkg/logger"
	"github.com/0x0FACED/go-rds/pkg/mesh"
	"github.com/0x0FACED/go-rds/pkg/preview"
	"github.com/0x0FACED/go-rds/pkg/tiling"
	"github.com/jbeda/geom"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	mode    string
	out     string
	html    string
	png     string
	verbose bool

	profile string
	rds     tiling.Config
	hex     hexagon.Config
	batch   instructions.Config
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("app", flag.ContinueOnError)
	o := &options{
		rds:   tiling.DefaultMonodisperse(),
		hex:   hexagon.DefaultConfig(),
		batch: instructions.DefaultConfig(),
	}

	fs.StringVar(&o.mode, "mode", "rds", "rds, hex, inspect or instructions")
	fs.StringVar(&o.out, "o", "", "output .fe file (rds, hex), input file (inspect) or script directory (instructions)")
	fs.StringVar(&o.html, "html", "", "write an HTML preview with the run's logs")
	fs.StringVar(&o.png, "png", "", "write a PNG preview")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	seed := fs.Int64("seed", time.Now().UnixNano(), "random seed")

	fs.StringVar(&o.profile, "profile", "mono", "dispersity profile: mono or poly")
	fs.IntVar(&o.rds.L, "L", o.rds.L, "domain size in cells")
	fs.Float64Var(&o.rds.R, "R", o.rds.R, "disk radius")
	fs.Float64Var(&o.rds.Rho, "rho", o.rds.Rho, "target density")
	fs.IntVar(&o.rds.Count, "count", o.rds.Count, "placement attempt budget")
	fs.Float64Var(&o.rds.Epsilon, "eps", o.rds.Epsilon, "contact tolerance")
	fs.IntVar(&o.rds.Res, "res", o.rds.Res, "arc samples per disk")
	delta := fs.Int("delta", -1, "accepted shortfall in cells (default depends on profile)")
	retries := fs.Int("retries", 0, "packing attempts (default depends on profile)")

	fs.Float64Var(&o.hex.PContact, "pcontact", o.hex.PContact, "hex: probability that touching cells share a vertex")
	fs.Float64Var(&o.hex.POccupied, "poccupied", o.hex.POccupied, "hex: probability that a site keeps its cell")
	fs.Float64Var(&o.hex.Jitter, "jitter", o.hex.Jitter, "hex: vertex displacement bound")

	b := &o.batch
	fs.IntVar(&b.Tilings, "tilings", b.Tilings, "instructions: tilings per density")
	alphas := fs.String("alphas", strings.Join(b.Alphas, ","), "instructions: comma separated alpha sweep")
	fs.IntVar(&b.Iterations, "iterations", b.Iterations, "instructions: relaxation passes per alpha")
	fs.IntVar(&b.Stabilize, "stabilize", b.Stabilize, "instructions: alpha 1 passes before the sweep")
	fs.BoolVar(&b.Resolution.Weibull, "weibull", false, "instructions: draw t from a Weibull distribution")
	fs.Float64Var(&b.Resolution.TMin, "tmin", b.Resolution.TMin, "instructions: finest t")
	fs.Float64Var(&b.Resolution.TMax, "tmax", b.Resolution.TMax, "instructions: coarsest t")
	fs.Float64Var(&b.Resolution.Shape, "shape", b.Resolution.Shape, "instructions: Weibull shape")
	fs.Float64Var(&b.Resolution.Scale, "scale", b.Resolution.Scale, "instructions: Weibull scale")
	fs.IntVar(&b.Resolution.Bins, "bins", b.Resolution.Bins, "instructions: t values between tmin and tmax")
	fs.StringVar(&b.Label, "tlabel", b.Label, "instructions: resolution tag in file names")
	fs.StringVar(&b.InDir, "indir", b.InDir, "instructions: tiling directory on the cluster")
	fs.StringVar(&b.OutDir, "outdir", b.OutDir, "instructions: dump directory on the cluster")
	fs.StringVar(&b.Evolver, "evolver", b.Evolver, "instructions: evolver binary on the cluster")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	b.Alphas = instructions.ParseAlphas(*alphas)

	profile, ok := tiling.ProfileByName(o.profile)
	if !ok {
		return nil, fmt.Errorf("unknown profile %q", o.profile)
	}
	if profile.Name == tiling.Polydisperse().Name {
		defaults := tiling.DefaultPolydisperse()
		o.rds.Delta, o.rds.Retries = defaults.Delta, defaults.Retries
	}
	o.rds.Profile = profile
	if *delta >= 0 {
		o.rds.Delta = *delta
	}
	if *retries > 0 {
		o.rds.Retries = *retries
	}
	o.rds.Seed = *seed
	o.hex.L = o.rds.L
	b.L, b.R, b.Rho = o.rds.L, o.rds.R, []float64{o.rds.Rho}

	if o.out == "" {
		switch o.mode {
		case "inspect":
			return nil, errors.New("inspect needs -o <file>")
		case "hex":
			o.out = "hex.fe"
		case "instructions":
			o.out = "."
		default:
			o.out = "rds.fe"
		}
	}
	return o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := zapcore.InfoLevel
	if o.verbose {
		level = zapcore.DebugLevel
	}
	log := logger.New(logger.WithConsole(os.Stderr), logger.WithLevel(level))
	defer log.Sync()

	if err := run(o, log); err != nil {
		log.Error("run failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(o *options, log *logger.ZapLogger) error {
	var (
		m       *mesh.Mesh
		sites   []geom.Coord
		summary []string
	)

	switch o.mode {
	case "rds":
		log.Info("[rds] starting",
			zap.String("profile", o.rds.Profile.Name),
			zap.Int("L", o.rds.L),
			zap.Float64("rho", o.rds.Rho),
			zap.Int64("seed", o.rds.Seed))

		t, err := tiling.Generate(o.rds, rand.New(rand.NewSource(o.rds.Seed)), log)
		if err != nil {
			return err
		}
		m = t.Mesh
		for _, c := range t.Cells {
			sites = append(sites, c.Center)
		}
		summary = []string{
			"profile: " + o.rds.Profile.Name,
			"seed: " + strconv.FormatInt(o.rds.Seed, 10),
			fmt.Sprintf("cells: %d of %d requested", t.Achieved, t.Requested),
			fmt.Sprintf("packing attempts: %d", t.PackAttempts),
		}
		if t.Warning != nil {
			summary = append(summary, "warning: "+t.Warning.Error())
		}

	case "hex":
		res, err := hexagon.Generate(o.hex, rand.New(rand.NewSource(o.rds.Seed)), log)
		if err != nil {
			return err
		}
		m = res.Mesh
		summary = []string{
			"seed: " + strconv.FormatInt(o.rds.Seed, 10),
			fmt.Sprintf("cells: %d of %d sites", res.Kept, res.Sites),
			fmt.Sprintf("shared vertices: %d", res.Shared),
		}

	case "instructions":
		paths, err := instructions.WriteBatch(o.out, o.batch, rand.New(rand.NewSource(o.rds.Seed)), log)
		if err != nil {
			return err
		}
		log.Info("[export] scripts written", zap.String("dir", o.out), zap.Int("count", len(paths)))
		return nil

	case "inspect":
		read, err := evolver.ReadFile(o.out)
		if err != nil {
			return err
		}
		if err := read.Validate(); err != nil {
			return fmt.Errorf("%s: %w", o.out, err)
		}
		m = read
		log.Info("[inspect] file ok", zap.String("path", o.out))

	default:
		return fmt.Errorf("unknown mode %q", o.mode)
	}

	summary = append(summary, fmt.Sprintf("points: %d  edges: %d  faces: %d", len(m.Points), len(m.Edges), len(m.Faces)))

	if o.mode != "inspect" {
		if err := evolver.WriteFile(o.out, m); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		log.Info("[export] written", zap.String("path", o.out), zap.Int("bodies", len(m.Faces)))
	}

	if o.png != "" {
		if err := preview.SavePNG(o.png, m, sites, preview.DefaultRaster()); err != nil {
			return fmt.Errorf("png preview: %w", err)
		}
		log.Info("[export] png preview written", zap.String("path", o.png))
	}

	if o.html != "" {
		if err := writeHTML(o.html, m, sites, summary, log); err != nil {
			return fmt.Errorf("html preview: %w", err)
		}
	}
	return nil
}

func writeHTML(path string, m *mesh.Mesh, sites []geom.Coord, summary []string, log *logger.ZapLogger) error {
	// Logged before rendering so the page includes it.
	log.Info("[export] html preview written", zap.String("path", path))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	page := preview.Page{
		Title:   filepath.Base(path),
		Summary: summary,
		Logs:    log.HTML(),
	}
	if err := preview.WriteHTML(f, m, sites, page); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
