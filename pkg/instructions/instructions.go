// Package instructions writes Surface Evolver batch scripts for exported
// tilings. Each script stabilizes one tiling at alpha 1, then relaxes it at
// every alpha of a sweep, highest first, dumping the mesh, its contacts,
// cell ids and triple junctions after each stage.
package instructions

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"path"
	"strconv"

	"github.com/0x0FACED/go-rds/pkg/evolver"
)

const (
	tensionFree   = "foreach edges ff where sum(ff.faces,1) == 1 do ff.tension:=1.0\n"
	tensionShared = "foreach edges ff where sum(ff.faces,1) == 2 do ff.tension:=(2*%s)\n"
	relaxAt       = "t %s; g 100; o; g 100; r; o; g 100\n"

	dumpMesh     = "DUMP \"%s\"\n"
	dumpContacts = "foreach edges ff where sum(ff.faces,1) == 2 do {foreach ff.facet gg do print gg.id} >> \"%s\"\n"
	dumpCells    = "foreach facet ff do print ff.id >> \"%s\"\n"
	dumpTCJ      = "foreach vertices vv where sum(vv.facets,1) == 3 do {foreach vv.facet gg do print gg.id} >> \"%s\"\n"

	// stabilizedAlpha labels the outputs of the alpha 1 stage.
	stabilizedAlpha = "1"
	refinements     = 3
)

// Write emits the script for one tiling at density rho. The rng is only
// drawn from when cfg.Resolution.Weibull is set.
func Write(w io.Writer, cfg Config, tiling int, rho float64, rng *rand.Rand) error {
	bw := bufio.NewWriter(w)
	tMin := cfg.Resolution.TMin

	bw.WriteString("echo 'o\n")
	for i := 0; i < refinements; i++ {
		bw.WriteString("r\n")
	}

	for i := 0; i < cfg.Stabilize; i++ {
		relax(bw, "1.0", tMin)
	}
	exports(bw, cfg, rho, stabilizedAlpha, tiling, cfg.Stabilize)

	for i := len(cfg.Alphas) - 1; i >= 0; i-- {
		alpha := cfg.Alphas[i]
		for k := 0; k < cfg.Iterations-1; k++ {
			relax(bw, alpha, cfg.Resolution.Sample(rng))
		}
		// The last pass always runs at TMin so every alpha ends at the same
		// resolution.
		relax(bw, alpha, tMin)
		exports(bw, cfg, rho, alpha, tiling, cfg.Iterations-1)
	}

	bw.WriteString("q\n")
	fmt.Fprintf(bw, "q' | %s %s\n", cfg.Evolver, path.Join(cfg.InDir, InputName(cfg, tiling, rho)))
	bw.WriteString("\n")
	return bw.Flush()
}

func relax(w *bufio.Writer, alpha string, t float64) {
	w.WriteString(tensionFree)
	fmt.Fprintf(w, tensionShared, alpha)
	fmt.Fprintf(w, relaxAt, evolver.FormatFloat(t))
}

func exports(w *bufio.Writer, cfg Config, rho float64, alpha string, tiling, iteration int) {
	base := path.Join(cfg.OutDir, outputBase(cfg, rho, alpha, tiling, iteration))
	fmt.Fprintf(w, dumpMesh, base+".fe")
	fmt.Fprintf(w, dumpContacts, base+"_Contacts.txt")
	fmt.Fprintf(w, dumpCells, base+"_Ncells.txt")
	fmt.Fprintf(w, dumpTCJ, base+"_TCJ.txt")
}

// ScriptName is the file name of the script for one tiling and density.
func ScriptName(cfg Config, tiling int, rho float64) string {
	return fmt.Sprintf("Simulator_L%d_Frac%s_Alphas_N%d_t%s_It%d.txt",
		cfg.L, evolver.FormatFloat(rho), tiling, cfg.Label, cfg.Iterations)
}

// InputName is the tiling file a script loads, relative to Config.InDir.
func InputName(cfg Config, tiling int, rho float64) string {
	return fmt.Sprintf("Lattice_L%dCells_R%s_rho%s_N%d.fe",
		cfg.L, evolver.FormatFloat(cfg.R), evolver.FormatFloat(rho), tiling)
}

func outputBase(cfg Config, rho float64, alpha string, tiling, iteration int) string {
	return fmt.Sprintf("Fcells_L%d_R%s_rho%s_Alpha%s_N%d_Iteration%d_t%s",
		cfg.L, evolver.FormatFloat(cfg.R), evolver.FormatFloat(rho), alpha, tiling, iteration, cfg.Label)
}

// Sample returns the resolution for one relaxation pass: TMin when fixed,
// otherwise a Weibull draw offset by TMin/2 and snapped down onto the bins.
func (r Resolution) Sample(rng *rand.Rand) float64 {
	if !r.Weibull {
		return r.TMin
	}
	// Inverse transform: U in (0, 1].
	u := 1 - rng.Float64()
	x := math.Pow(-math.Log(u), 1/r.Shape) * r.Scale
	return r.snap(x + r.TMin/2)
}

// snap maps x to the largest bin not above it, clamped to the first and
// last bins, rounded to three decimals.
func (r Resolution) snap(x float64) float64 {
	step := (r.TMax - r.TMin) / float64(r.Bins-1)
	i := 0
	for i+1 < r.Bins && r.bin(i+1, step) <= x {
		i++
	}
	return math.Round(r.bin(i, step)*1000) / 1000
}

func (r Resolution) bin(i int, step float64) float64 {
	if i == r.Bins-1 {
		return r.TMax
	}
	return r.TMin + float64(i)*step
}

// parseAlpha checks an alpha label; labels are written verbatim.
func parseAlpha(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("alpha %s is not positive", s)
	}
	return nil
}
