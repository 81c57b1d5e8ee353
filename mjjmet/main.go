package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"sync"

	"github.com/pkg/profile"
	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/decibelcooper/vbfplot"
	"github.com/decibelcooper/vbfplot/vbf"
)

var (
	configFile = flag.String("config", "", "YAML selection config (defaults to the 2017 selection)")
	workers    = flag.Int("workers", 4, "number of files read at once")
	relax      = flag.Bool("relax", true, "drop the MET and mjj cuts so the whole plane is populated")
	zVar       = flag.String("z", "count", "color variable: count, deta (mean delta eta) or detarms")
	metMax     = flag.Float64("metmax", 1000, "upper edge of the MET axis")
	mjjMax     = flag.Float64("mjjmax", 4000, "upper edge of the mjj axis")
	nBinsMET   = flag.Int("nbinsmet", 20, "number of bins in MET")
	nBinsMjj   = flag.Int("nbinsmjj", 20, "number of bins in mjj")
	zMax       = flag.Float64("zmax", 0, "maximum of the color map (0 takes the largest cell)")
	title      = flag.String("title", "", "plot title")
	output     = flag.String("output", "mjjmet.png", "output file")
	doProfile  = flag.Bool("profile", false, "write a CPU profile")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <root-input-files>...

options:
`,
	)
	flag.PrintDefaults()
}

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

	mode, err := parseMode(*zVar)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := vbfplot.LoadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	cuts := cfg.Cuts
	if *relax {
		cuts.MET = math.Inf(-1)
		cuts.Mjj = math.Inf(-1)
	}
	sel := vbf.NewSelector(cuts)

	grid := NewStatGrid(mode, *nBinsMjj, 0, *mjjMax, *nBinsMET, 0, *metMax)
	var mu sync.Mutex

	err = vbfplot.ProcessFiles(context.Background(), flag.Args(), vbf.NewTriggerMenu(), *workers, nil,
		func(_ int, _ int64, ev *vbf.Event) error {
			sum, verdict := sel.Evaluate(ev)
			if !verdict.Pass {
				return nil
			}
			mu.Lock()
			grid.Fill(sum.Mjj, sum.MET.Pt, sum.DeltaEta)
			mu.Unlock()
			return nil
		})
	if err != nil {
		log.Fatal(err)
	}

	p, err := plot.New()
	if err != nil {
		log.Fatal(err)
	}
	p.Title.Text = *title
	p.X.Label.Text = "mjj (GeV)"
	p.Y.Label.Text = "MET (GeV)"
	p.X.Tick.Marker = vbfplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = vbfplot.PreciseTicks{NSuggestedTicks: 5}

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	top := *zMax
	if top <= 0 {
		top = grid.Max()
	}
	if top <= 0 {
		top = 1
	}

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(top)
	pal := colorMap.Palette(1000)
	heatMap := plotter.NewHeatMap(grid, pal)
	heatMap.Min = 0
	heatMap.Max = top
	p.Add(heatMap)

	p.Draw(dc0)

	p, err = plot.New()
	if err != nil {
		log.Fatal(err)
	}

	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	p.Add(colorBar)
	p.HideX()
	p.Y.Padding = 0

	p.Draw(dc1)

	w, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(w); err != nil {
		log.Fatal(err)
	}
}

// Mode selects what a StatGrid cell shows.
type Mode int

const (
	Count Mode = iota
	Mean
	RMS
)

func parseMode(s string) (Mode, error) {
	switch s {
	case "count":
		return Count, nil
	case "deta":
		return Mean, nil
	case "detarms":
		return RMS, nil
	}
	return 0, fmt.Errorf("unknown color variable %q", s)
}

// StatGrid accumulates a value per cell of a 2D binning and shows the count,
// mean or standard deviation of it.
type StatGrid struct {
	mode            Mode
	hCount, hV, hV2 *hbook.H2D
	nBinsX, nBinsY  int
}

// minFills is the number of fills below which Mean and RMS cells show zero.
const minFills = 3

func NewStatGrid(mode Mode, nBinsX int, xLow, xHigh float64, nBinsY int, yLow, yHigh float64) *StatGrid {
	return &StatGrid{
		mode:   mode,
		hCount: hbook.NewH2D(nBinsX, xLow, xHigh, nBinsY, yLow, yHigh),
		hV:     hbook.NewH2D(nBinsX, xLow, xHigh, nBinsY, yLow, yHigh),
		hV2:    hbook.NewH2D(nBinsX, xLow, xHigh, nBinsY, yLow, yHigh),
		nBinsX: nBinsX,
		nBinsY: nBinsY,
	}
}

func (g *StatGrid) Fill(x, y, v float64) {
	g.hCount.Fill(x, y, 1)
	g.hV.Fill(x, y, v)
	g.hV2.Fill(x, y, v*v)
}

func (g *StatGrid) Dims() (int, int) {
	return g.nBinsX, g.nBinsY
}

func (g *StatGrid) Z(i, j int) float64 {
	n := g.hCount.GridXYZ().Z(i, j)
	if g.mode == Count {
		return n
	}
	if n < minFills {
		return 0
	}
	mean := g.hV.GridXYZ().Z(i, j) / n
	if g.mode == Mean {
		return mean
	}
	mean2 := g.hV2.GridXYZ().Z(i, j) / n
	return math.Sqrt(math.Max(mean2-mean*mean, 0))
}

func (g *StatGrid) X(c int) float64 {
	return g.hCount.GridXYZ().X(c)
}

func (g *StatGrid) Y(r int) float64 {
	return g.hCount.GridXYZ().Y(r)
}

// Max returns the largest cell value.
func (g *StatGrid) Max() float64 {
	top := 0.
	for i := 0; i < g.nBinsX; i++ {
		for j := 0; j < g.nBinsY; j++ {
			top = math.Max(top, g.Z(i, j))
		}
	}
	return top
}
