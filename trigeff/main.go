package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/vbfplot"
	"github.com/decibelcooper/vbfplot/vbf"
)

var (
	configFile = flag.String("config", "", "YAML selection config (defaults to the 2017 selection)")
	workers    = flag.Int("workers", 4, "number of files read at once")
	l1Only     = flag.Bool("l1only", false, "measure the emulated L1 seed alone")
	variable   = flag.String("var", "met", "binning variable: met, mjj, leadpt or trailpt")
	split      = flag.String("split", "geometry", "jet categories plotted apart: geometry (|eta| 2.5) or barrel (|eta| 1.479)")
	xMax       = flag.Float64("max", 0, "upper edge of the x axis (0 picks one for the variable)")
	nBins      = flag.Int("nbins", 40, "number of bins")
	title      = flag.String("title", "", "plot title")
	prefix     = flag.String("prefix", "trigeff", "output file prefix")
	doProfile  = flag.Bool("profile", false, "write a CPU profile")

	triggers = vbfplot.StringArrayFlags{}
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <root-input-files>...

options:
`,
	)
	flag.PrintDefaults()
}

// axis describes the variable efficiencies are binned in.
type axis struct {
	label string
	max   float64
	value func(*vbf.Summary) float64
	// relax drops the cut on the variable itself so the turn-on is visible.
	relax func(*vbf.Cuts)
}

var axes = map[string]axis{
	"met": {
		label: "MET (GeV)",
		max:   500,
		value: func(s *vbf.Summary) float64 { return s.MET.Pt },
		relax: func(c *vbf.Cuts) { c.MET = math.Inf(-1) },
	},
	"mjj": {
		label: "leading mjj (GeV)",
		max:   3000,
		value: func(s *vbf.Summary) float64 { return s.Mjj },
		relax: func(c *vbf.Cuts) { c.Mjj = math.Inf(-1) },
	},
	"leadpt": {
		label: "leading jet pt (GeV)",
		max:   500,
		value: func(s *vbf.Summary) float64 { return s.Jets[0].Pt },
		relax: func(c *vbf.Cuts) { c.LeadJetPt = math.Inf(-1) },
	},
	"trailpt": {
		label: "trailing jet pt (GeV)",
		max:   300,
		value: func(s *vbf.Summary) float64 { return s.Jets[1].Pt },
		relax: func(c *vbf.Cuts) { c.TrailJetPt = math.Inf(-1) },
	},
}

// categorization splits selected events into the plots drawn apart.
type categorization struct {
	names []string
	of    func(*vbf.Summary) int
}

var splits = map[string]categorization{
	"geometry": {
		names: geometryNames(),
		of:    func(s *vbf.Summary) int { return int(s.Geometry) },
	},
	"barrel": {
		names: regionNames(),
		of:    func(s *vbf.Summary) int { return int(vbf.ClassifyRegion(s.Jets[0], s.Jets[1])) },
	},
}

func geometryNames() []string {
	names := make([]string, len(vbf.Geometries))
	for _, g := range vbf.Geometries {
		names[g] = g.String()
	}
	return names
}

func regionNames() []string {
	names := make([]string, len(vbf.Regions))
	for _, r := range vbf.Regions {
		names[r] = r.String()
	}
	return names
}

// measurement is the numerator of one efficiency curve.
type measurement struct {
	name  string
	fired func(*vbf.Event) bool
}

func main() {
	flag.Var(&triggers, "trigger", "HLT path to measure, repeatable (defaults to the first VBF path of the config)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *doProfile {
		defer profile.Start().Stop()
	}

	ax, ok := axes[*variable]
	if !ok {
		log.Fatalf("unknown variable %q", *variable)
	}
	if *xMax > 0 {
		ax.max = *xMax
	}
	cat, ok := splits[*split]
	if !ok {
		log.Fatalf("unknown split %q", *split)
	}

	cfg, err := vbfplot.LoadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	menu := vbf.NewTriggerMenu(append(cfg.Branches(), triggers.Array...)...)
	filtersPass, err := menu.AllFired(cfg.Filters...)
	if err != nil {
		log.Fatal(err)
	}
	meas, err := measurements(cfg, menu, triggers.Array, *l1Only)
	if err != nil {
		log.Fatal(err)
	}
	for _, m := range meas {
		log.Printf("measuring %s in %s", m.name, *variable)
	}

	cuts := cfg.Cuts
	ax.relax(&cuts)
	sel := vbf.NewSelector(cuts)

	files := flag.Args()
	nCurves := len(meas) * len(files)
	effs := make([][]*vbfplot.Efficiency, len(cat.names))
	for c := range effs {
		effs[c] = make([]*vbfplot.Efficiency, nCurves)
		for i := range effs[c] {
			effs[c][i] = vbfplot.NewEfficiency(*nBins, 0, ax.max)
		}
	}

	err = vbfplot.ProcessFiles(context.Background(), files, menu, *workers, nil,
		func(file int, _ int64, ev *vbf.Event) error {
			sum, ok := denominator(sel, filtersPass, ev)
			if !ok {
				return nil
			}
			x := ax.value(sum)
			curves := effs[cat.of(sum)]
			for m := range meas {
				curves[curve(m, file, len(files))].Fill(x, meas[m].fired(ev))
			}
			return nil
		})
	if err != nil {
		log.Fatal(err)
	}

	for c, catName := range cat.names {
		p, err := plot.New()
		if err != nil {
			log.Fatal(err)
		}
		p.Title.Text = *title
		if p.Title.Text == "" {
			p.Title.Text = catName
			if len(meas) == 1 {
				p.Title.Text = meas[0].name + " " + catName
			}
		}
		p.X.Label.Text = ax.label
		p.Y.Label.Text = "efficiency"
		p.X.Tick.Marker = vbfplot.PreciseTicks{NSuggestedTicks: 5}
		p.Y.Tick.Marker = vbfplot.PreciseTicks{NSuggestedTicks: 5}
		p.Legend.Top = true
		p.Legend.Left = true

		for m := range meas {
			for i := range files {
				k := curve(m, i, len(files))
				label := curveLabel(meas, files, m, i)
				if err := effs[c][k].AddTo(p, vbfplot.LineColor(k), label); err != nil {
					log.Fatal(err)
				}
			}
		}

		output := fmt.Sprintf("%s_%s_%s.png", *prefix, *variable, catName)
		if err := p.Save(6*vg.Inch, 4*vg.Inch, output); err != nil {
			log.Fatal(err)
		}
		for m := range meas {
			log.Printf("%s %s: %s", filepath.Base(output), meas[m].name, tally(effs[c], m, len(files)))
		}
	}
}

// denominator reports whether ev passes the noise filters and the selection.
func denominator(sel *vbf.Selector, filtersPass func(*vbf.Event) bool, ev *vbf.Event) (*vbf.Summary, bool) {
	if !filtersPass(ev) {
		return nil, false
	}
	sum, verdict := sel.Evaluate(ev)
	return sum, verdict.Pass
}

// measurements returns the per-event trigger decisions selected by the
// flags, one per requested trigger.
func measurements(cfg vbf.Config, menu *vbf.TriggerMenu, names []string, l1 bool) ([]measurement, error) {
	if l1 {
		return []measurement{{
			name:  "L1 VBF seed",
			fired: func(ev *vbf.Event) bool { return vbf.L1Selection(ev.L1Jets, cfg.L1) },
		}}, nil
	}

	if len(names) == 0 {
		if len(cfg.Triggers.VBF) == 0 {
			return nil, fmt.Errorf("no trigger given and no VBF trigger configured")
		}
		names = cfg.Triggers.VBF[:1]
	}
	meas := make([]measurement, len(names))
	for i, name := range names {
		fired, err := vbf.HLTSelection(menu, name, cfg.L1)
		if err != nil {
			return nil, err
		}
		meas[i] = measurement{name: name, fired: fired}
	}
	return meas, nil
}

// curve returns the index of the curve of measurement m in file i.
func curve(m, i, nFiles int) int { return m*nFiles + i }

// curveLabel names a curve by whatever tells it apart from the others.
func curveLabel(meas []measurement, files []string, m, i int) string {
	switch {
	case len(meas) == 1 && len(files) == 1:
		return ""
	case len(files) == 1:
		return meas[m].name
	case len(meas) == 1:
		return filepath.Base(files[i])
	}
	return meas[m].name + " " + filepath.Base(files[i])
}

func tally(curves []*vbfplot.Efficiency, m, nFiles int) string {
	var pass, total float64
	for i := 0; i < nFiles; i++ {
		e := curves[curve(m, i, nFiles)]
		pass += e.Pass.SumW()
		total += e.Total.SumW()
	}
	if total == 0 {
		return "no events"
	}
	return fmt.Sprintf("%.0f / %.0f passed (%.4f)", pass, total, pass/total)
}
