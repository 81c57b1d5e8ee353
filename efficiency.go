package vbfplot

import (
	"image/color"
	"math"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

// Efficiency counts, per bin of some variable, how many events were tried
// and how many of them passed.
type Efficiency struct {
	Pass, Total *hbook.H1D

	nBins  int
	lo, hi float64
}

func NewEfficiency(nBins int, lo, hi float64) *Efficiency {
	return &Efficiency{
		Pass:  hbook.NewH1D(nBins, lo, hi),
		Total: hbook.NewH1D(nBins, lo, hi),
		nBins: nBins,
		lo:    lo,
		hi:    hi,
	}
}

func (e *Efficiency) Fill(x float64, passed bool) {
	e.Total.Fill(x, 1)
	if passed {
		e.Pass.Fill(x, 1)
	}
}

// Points returns the efficiency of every bin at the bin center, with
// binomial errors in y and the RMS of a flat distribution over the bin in x.
// Empty bins are reported as zero with no error.
func (e *Efficiency) Points() plotutil.ErrorPoints {
	points := make(plotter.XYs, e.nBins)
	xErrors := make(plotter.XErrors, e.nBins)
	yErrors := make(plotter.YErrors, e.nBins)

	binHalfWidth := (e.hi - e.lo) / float64(e.nBins) / 2
	binSigma := binHalfWidth / math.Sqrt(3.)
	for i := range points {
		totalX, totalY := e.Total.XY(i)
		_, passY := e.Pass.XY(i)

		points[i].X = totalX + binHalfWidth
		xErrors[i].Low = binSigma
		xErrors[i].High = binSigma

		if totalY > 0 {
			eff := passY / totalY
			points[i].Y = eff
			yErrors[i].Low = math.Sqrt((1 - eff) * eff / totalY)
			yErrors[i].High = yErrors[i].Low
		}
	}
	return plotutil.ErrorPoints{XYs: points, XErrors: xErrors, YErrors: yErrors}
}

// AddTo draws the efficiency on p as error bars of the given color. A
// non-empty label adds a legend entry.
func (e *Efficiency) AddTo(p *plot.Plot, c color.Color, label string) error {
	errPoints := e.Points()
	xerr, err := plotter.NewXErrorBars(errPoints)
	if err != nil {
		return err
	}
	yerr, err := plotter.NewYErrorBars(errPoints)
	if err != nil {
		return err
	}
	xerr.LineStyle.Color = c
	yerr.LineStyle.Color = c
	p.Add(xerr, yerr)
	if label != "" {
		p.Legend.Add(label, &plotter.Line{LineStyle: yerr.LineStyle})
	}
	return nil
}
