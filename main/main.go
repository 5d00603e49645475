package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/inconshreveable/log15"
	plt "github.com/phil-mansfield/pyplot"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/crust/calculus"
	"github.com/phil-mansfield/crust/flatten"
	"github.com/phil-mansfield/crust/generate"
	"github.com/phil-mansfield/crust/grid"
	"github.com/phil-mansfield/crust/io"
	"github.com/phil-mansfield/crust/motion"
	"github.com/phil-mansfield/crust/rock"
	"github.com/phil-mansfield/crust/summary"
)

var log = log15.New("module", "crust")

func fatal(msg string, ctx ...interface{}) {
	log.Crit(msg, ctx...)
	os.Exit(1)
}

func main() {
	var crust, exampleConfig string
	vars := map[string]*string{
		"Crust":         &crust,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&crust, "Crust", "",
		"Configuration file for [Crust] mode.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. The only accepted argument is 'Crust'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		fatal(err.Error())
	}

	switch modeName {
	case "Crust":
		con, err := io.ReadCrustConfig(crust)
		if err != nil {
			fatal("Could not read config.", "file", crust, "err", err)
		}
		setLevel(con.Verbose)
		crustMain(con)
	case "ExampleConfig":
		switch exampleConfig {
		case "Crust":
			fmt.Println(io.ExampleCrustFile)
		default:
			fatal(
				"Unrecognized 'ExampleConfig' argument. The only recognized " +
					"argument is 'Crust'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func setLevel(verbose bool) {
	lvl := log15.LvlInfo
	if verbose {
		lvl = log15.LvlDebug
	}
	log.SetHandler(log15.LvlFilterHandler(
		lvl, log15.StreamHandler(os.Stderr, log15.TerminalFormat()),
	))
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but crust "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func crustMain(con *io.CrustConfig) {
	model := summary.DefaultDensityModel()
	if con.ValidDensityTable() {
		var err error
		model, err = io.ReadDensityTable(con.DensityTable)
		if err != nil {
			fatal("Could not read density table.",
				"file", con.DensityTable, "err", err)
		}
		log.Debug("Read density table.", "file", con.DensityTable)
	}

	res := runCrust(con, model)

	if err := io.WriteResults(con.Output, res); err != nil {
		fatal("Could not write results.", "file", con.Output, "err", err)
	}
	log.Info("Wrote results.", "file", con.Output)

	if con.ValidPlot() {
		plotDisplacement(con.Plot, res.Intended, res.Displacement)
		log.Info("Wrote plot.", "file", con.Plot)
	}
}

// runCrust generates a crust, summarizes it and computes its isostatic
// displacement.
func runCrust(con *io.CrustConfig, model *summary.DensityModel) *io.Results {
	threads := con.Threads
	p := con.Params()

	g := grid.New(con.Radius, con.FaceCells)
	log.Info("Built grid.", "vertices", g.VertexCount(), "radius", con.Radius)

	// Generate.

	elev := generate.Elevation(
		g, generate.Field(p.Seed), p.MinElevation, p.MaxElevation, threads,
	)
	c := generate.Crust(g, elev, p, threads)
	log.Info("Generated crust.", "formations", c.Len(), "plates", p.Plates)

	// Summarize.

	sz := summary.New(g, model, p.WorldAge, threads)
	sums := sz.Crust(c)

	flat := flatten.Crust(c, threads)
	log.Debug("Checked flattened summary.",
		"distance", summary.Distance(sums, sz.Formation(flat)))

	stored := rock.Store(flat, rock.DefaultCodec, threads)
	log.Debug("Compressed flattened crust.", "bytes", len(stored.Bytes()))

	// Isostasy.

	m := motion.New(calculus.New(g, threads), con.Mantle())
	b := m.Buoyancy(sums)
	disp := m.Displacement(b)
	intended := generate.IntendedDisplacement(elev, p.ReferenceElevation)

	diff := make([]float64, len(disp))
	floats.SubTo(diff, disp, intended)
	log.Info("Computed displacement.",
		"max_error", floats.Norm(diff, math.Inf(1)),
		"rms_error", floats.Norm(diff, 2)/math.Sqrt(float64(len(diff))))

	speeds := make([]float64, len(disp))
	for i, v := range m.Velocity(sums, b) {
		speeds[i] = v.Norm()
	}
	log.Debug("Computed creep.", "max_speed", floats.Max(speeds))

	if coarse := coarseField(g, disp, threads); coarse != nil {
		log.Debug("Downsampled displacement.",
			"vertices", len(coarse), "max", floats.Max(coarse))
	}

	thickness, density, areaDensity := summary.Fields(sums)
	return &io.Results{
		Positions: g.Positions(),
		Elevation: elev, Thickness: thickness, Density: density,
		AreaDensity: areaDensity, Buoyancy: b, Displacement: disp,
		Intended: intended,
	}
}

// coarseField halves the resolution of a field, or returns nil if the grid
// cannot be halved.
func coarseField(g *grid.Grid, x []float64, threads int) []float64 {
	if g.FaceCells%2 != 0 {
		return nil
	}
	return g.DownsampleField(x, 2, threads)
}

func plotDisplacement(fname string, intended, disp []float64) {
	lo := math.Min(floats.Min(intended), floats.Min(disp))
	hi := math.Max(floats.Max(intended), floats.Max(disp))

	plt.Figure()
	plt.Plot(intended, disp, "ok")
	plt.Plot([]float64{lo, hi}, []float64{lo, hi}, "r", plt.LW(2))

	plt.XLabel("Intended displacement [m]", plt.FontSize(16))
	plt.YLabel("Displacement [m]", plt.FontSize(16))
	plt.XLim(lo, hi)
	plt.YLim(lo, hi)
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)
	plt.Execute()
}
