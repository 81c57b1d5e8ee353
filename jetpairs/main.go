package main

import (
	"context"
	"flag"
	"fmt"
	"log"
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
	selected   = flag.Bool("selected", false, "only count events passing every cut but mjj")
	mjjMax     = flag.Float64("mjjmax", 5000, "upper edge of the mjj axis")
	nBins      = flag.Int("nbins", 25, "number of mjj bins")
	title      = flag.String("title", "", "plot title")
	output     = flag.String("output", "jetpairs.png", "output file")
	doProfile  = flag.Bool("profile", false, "write a CPU profile")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <root-input-files>...

options:
`,
	)
	flag.PrintDefaults()
}

// pairCounts tallies, per geometry, how often the maximum-mass pair is the
// leading pair.
type pairCounts struct {
	leading [vbf.NumGeometries]int
	other   [vbf.NumGeometries]int
}

func (c *pairCounts) add(o pairCounts) {
	for g := range c.leading {
		c.leading[g] += o.leading[g]
		c.other[g] += o.other[g]
	}
}

// plotted are the geometries shown in the fraction plot.
var plotted = []vbf.Geometry{vbf.TwoCentral, vbf.Mixed}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *doProfile {
		defer profile.Start().Stop()
	}

	cfg, err := vbfplot.LoadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	sel := vbf.NewSelector(cfg.Cuts)

	files := flag.Args()
	counts := make([]pairCounts, len(files))
	fractions := make([][vbf.NumGeometries]*vbfplot.Efficiency, len(files))
	for i := range fractions {
		for g := range fractions[i] {
			fractions[i][g] = vbfplot.NewEfficiency(*nBins, 0, *mjjMax)
		}
	}

	err = vbfplot.ProcessFiles(context.Background(), files, vbf.NewTriggerMenu(), *workers, nil,
		func(file int, _ int64, ev *vbf.Event) error {
			sum, verdict := sel.Evaluate(ev)
			if sum.Masses == nil {
				return nil
			}
			if *selected && !verdict.Passed(vbf.StagePhotonVeto) {
				return nil
			}

			leading := sum.MaxPair.IsLeading()
			if leading {
				counts[file].leading[sum.Geometry]++
			} else {
				counts[file].other[sum.Geometry]++
			}
			fractions[file][sum.Geometry].Fill(sum.Mjj, leading)
			return nil
		})
	if err != nil {
		log.Fatal(err)
	}

	var total pairCounts
	for _, c := range counts {
		total.add(c)
	}
	for _, g := range vbf.Geometries {
		n := total.leading[g] + total.other[g]
		frac := 0.
		if n > 0 {
			frac = float64(total.leading[g]) / float64(n)
		}
		fmt.Printf("%-16s leading: %8d  other: %8d  leading fraction: %.4f\n", g, total.leading[g], total.other[g], frac)
	}

	p, err := plot.New()
	if err != nil {
		log.Fatal(err)
	}
	p.Title.Text = *title
	p.X.Label.Text = "leading mjj (GeV)"
	p.Y.Label.Text = "max pair is leading pair"
	p.X.Tick.Marker = vbfplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = vbfplot.PreciseTicks{NSuggestedTicks: 5}

	curve := 0
	for i := range files {
		for _, g := range plotted {
			if err := fractions[i][g].AddTo(p, vbfplot.LineColor(curve), legendLabel(files, i, g)); err != nil {
				log.Fatal(err)
			}
			curve++
		}
	}

	p.Legend.Top = true
	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}
}

func legendLabel(files []string, i int, g vbf.Geometry) string {
	if len(files) == 1 {
		return g.String()
	}
	return filepath.Base(files[i]) + " " + g.String()
}
