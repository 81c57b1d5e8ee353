package vbfplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places about NSuggestedTicks labelled ticks on round values,
// with unlabelled minor ticks between them.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks == 0 {
		t.NSuggestedTicks = 4
	}

	if max <= min {
		panic("illegal range")
	}

	tens := math.Pow10(int(math.Floor(math.Log10(max - min))))
	n := (max - min) / tens
	for n < float64(t.NSuggestedTicks)-1 {
		tens /= 10
		n = (max - min) / tens
	}

	majorMult := majorMultiple(n, t.NSuggestedTicks)
	majorDelta := float64(majorMult) * tens

	var labels []float64
	val := math.Floor(min/majorDelta) * majorDelta
	for ; val <= max; val += majorDelta {
		if val >= min {
			labels = append(labels, val)
		}
	}
	prec := int(math.Ceil(math.Log10(val)) - math.Floor(math.Log10(majorDelta)))

	var ticks []plot.Tick
	major := make(map[float64]bool, len(labels))
	for _, v := range labels {
		v = round(v, prec)
		major[v] = true
		ticks = append(ticks, plot.Tick{Value: v, Label: formatFloatTick(v, -1)})
	}

	minorDelta := majorDelta / float64(minorDivisions(majorMult))
	for val = math.Floor(min/minorDelta) * minorDelta; val <= max; val += minorDelta {
		if val >= min && !major[val] {
			ticks = append(ticks, plot.Tick{Value: val})
		}
	}
	return ticks
}

// majorMultiple returns the step between labelled ticks in units of the
// current power of ten, avoiding awkward steps of 7 and 9.
func majorMultiple(n float64, nTicks int) int {
	m := int(n / float64(nTicks-1))
	switch m {
	case 7:
		return 6
	case 9:
		return 8
	}
	return m
}

func minorDivisions(majorMult int) int {
	switch majorMult {
	case 3, 6:
		return 3
	case 5:
		return 5
	}
	return 2
}

// LogTicks labels every power of ten in range and adds minor ticks at the
// integer multiples in between.
type LogTicks struct{}

func (LogTicks) Ticks(min, max float64) []plot.Tick {
	if min <= 0 || max <= min {
		panic("illegal range for log ticks")
	}

	var ticks []plot.Tick
	for e := math.Floor(math.Log10(min)); e <= math.Ceil(math.Log10(max)); e++ {
		decade := math.Pow10(int(e))
		for m := 1.0; m < 10; m++ {
			v := m * decade
			if v < min || v > max {
				continue
			}
			tick := plot.Tick{Value: v}
			if m == 1 {
				tick.Label = formatFloatTick(v, -1)
			}
			ticks = append(ticks, tick)
		}
	}
	return ticks
}

// LogScale maps values logarithmically onto the axis. Non-positive values,
// such as empty histogram bins, are clamped to the bottom of the axis.
type LogScale struct{}

func (LogScale) Normalize(min, max, x float64) float64 {
	if min <= 0 {
		min = math.Min(1, max/10)
	}
	if x <= 0 {
		return 0
	}
	logMin := math.Log(min)
	return (math.Log(x) - logMin) / (math.Log(max) - logMin)
}

func round(x float64, prec int) float64 {
	if x == 0 {
		// Make sure zero is returned
		// without the negative bit set.
		return 0
	}
	// Fast path for positive precision on integers.
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}

	if x == 0 {
		return 0
	}

	return x / pow
}

func formatFloatTick(v float64, prec int) string {
	return strconv.FormatFloat(v, 'g', prec, 64)
}
