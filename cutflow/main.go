package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/profile"
	"github.com/schollz/progressbar/v3"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/vbfplot"
	"github.com/decibelcooper/vbfplot/skim"
	"github.com/decibelcooper/vbfplot/vbf"
)

var (
	configFile = flag.String("config", "", "YAML selection config (defaults to the 2017 selection)")
	workers    = flag.Int("workers", 4, "number of files read at once")
	skimFile   = flag.String("skim", "", "write the selected events to this Parquet file")
	title      = flag.String("title", "", "plot title")
	prefix     = flag.String("prefix", "cutflow", "output file prefix")
	logY       = flag.Bool("logy", false, "logarithmic y axis")
	progress   = flag.Bool("progress", true, "show a progress bar")
	doProfile  = flag.Bool("profile", false, "write a CPU profile")

	mjjScan = vbfplot.FloatArrayFlags{}
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <root-input-files>...

options:
`,
	)
	flag.PrintDefaults()
}

// fileResult is filled by the goroutine reading one file.
type fileResult struct {
	flow    vbf.CutFlow
	l1      int
	filters int
	nJet    *hbook.H1D
	mjj     *hbook.H1D
	mjjScan []int
}

func main() {
	flag.Var(&mjjScan, "mjjscan", "extra mjj thresholds to count selected events at (repeatable)")
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
	menu := vbf.NewTriggerMenu(cfg.Branches()...)
	filtersPass, err := menu.AllFired(cfg.Filters...)
	if err != nil {
		log.Fatal(err)
	}
	thresholds := mjjScan.Sorted()

	files := flag.Args()
	results := make([]fileResult, len(files))
	for i := range results {
		results[i] = fileResult{
			nJet:    hbook.NewH1D(10, -0.5, 9.5),
			mjj:     hbook.NewH1D(50, 0, 5000),
			mjjScan: make([]int, len(thresholds)),
		}
	}

	var (
		mu sync.Mutex
		sw *skim.Writer
	)
	if *skimFile != "" {
		f, err := os.Create(*skimFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if sw, err = skim.NewWriter(f); err != nil {
			log.Fatal(err)
		}
	}

	bar := newBar(files)
	err = vbfplot.ProcessFiles(context.Background(), files, menu, *workers, bar,
		func(file int, entry int64, ev *vbf.Event) error {
			res := &results[file]
			sum, verdict := sel.Evaluate(ev)
			res.flow.Add(verdict)
			if vbf.L1Selection(ev.L1Jets, cfg.L1) {
				res.l1++
			}
			if filtersPass(ev) {
				res.filters++
			}
			res.nJet.Fill(float64(sum.NJet()), 1)

			if !verdict.Passed(vbf.StagePhotonVeto) {
				return nil
			}
			res.mjj.Fill(sum.Mjj, 1)
			for i, cut := range thresholds {
				if sum.Mjj > cut {
					res.mjjScan[i]++
				}
			}

			if sw == nil || !verdict.Pass {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			return sw.Write(skim.RecordOf(filepath.Base(files[file]), entry, sum))
		})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		log.Fatal(err)
	}

	if sw != nil {
		if err := sw.Close(); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %d events to %s", sw.Rows(), *skimFile)
	}

	var (
		total        vbf.CutFlow
		l1, filtered int
	)
	for i, res := range results {
		total.Merge(res.flow)
		l1 += res.l1
		filtered += res.filters
		if len(files) > 1 {
			fmt.Println(vbfplot.CutFlowTable(filepath.Base(files[i]), res.flow))
		}
	}
	fmt.Println(vbfplot.CutFlowTable("total", total))
	fmt.Println(vbfplot.YieldLine("total", total.Total, total.Total))
	fmt.Println(vbfplot.YieldLine("L1 seed", l1, total.Total))
	fmt.Println(vbfplot.YieldLine("noise filters", filtered, total.Total))
	fmt.Println(vbfplot.YieldLine("VBF selection", total.Passed[vbf.NumStages-1], total.Total))
	printScan(thresholds, results)

	if err := savePlot("nJet (tight)", files, results, func(r fileResult) *hbook.H1D { return r.nJet }, *prefix+"_njet.png"); err != nil {
		log.Fatal(err)
	}
	if err := savePlot("leading mjj (GeV)", files, results, func(r fileResult) *hbook.H1D { return r.mjj }, *prefix+"_mjj.png"); err != nil {
		log.Fatal(err)
	}
}

func newBar(files []string) *progressbar.ProgressBar {
	if !*progress {
		return nil
	}
	n, err := vbfplot.CountEntries(files)
	if err != nil {
		log.Fatal(err)
	}
	return vbfplot.NewProgressBar(n, "selecting")
}

func printScan(thresholds []float64, results []fileResult) {
	for i, cut := range thresholds {
		n := 0
		for _, res := range results {
			n += res.mjjScan[i]
		}
		fmt.Printf("mjj > %g: %d\n", cut, n)
	}
}

func savePlot(xLabel string, files []string, results []fileResult, hist func(fileResult) *hbook.H1D, output string) error {
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = *title
	p.X.Label.Text = xLabel
	p.X.Tick.Marker = vbfplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = vbfplot.PreciseTicks{NSuggestedTicks: 5}

	for i, res := range results {
		h := hplot.NewH1D(hist(res))
		h.FillColor = nil
		h.LineStyle.Color = vbfplot.LineColor(i)
		if len(results) == 1 {
			h.Infos.Style = hplot.HInfoSummary
		} else {
			h.Infos.Style = hplot.HInfoNone
			p.Legend.Add(filepath.Base(files[i]), h)
		}
		p.Add(h)
	}

	if *logY {
		// Empty bins must stay off a log axis.
		p.Y.Tick.Marker = vbfplot.LogTicks{}
		p.Y.Scale = vbfplot.LogScale{}
		p.Y.Min = 0.5
		p.Y.Max = math.Max(p.Y.Max, 1)
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, output)
}
