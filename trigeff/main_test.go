package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/vbfplot/vbf"
)

func tightJet(pt, eta, phi float64) vbf.Jet {
	return vbf.Jet{
		Pt: pt, Eta: eta, Phi: phi, Energy: pt * math.Cosh(eta),
		NConstituents: 10, NeutralHadronFrac: 0.1, NeutralEMFrac: 0.1,
		ChargedHadronFrac: 0.5, ChargedMultiplicity: 5, NeutralMultiplicity: 20,
	}
}

func selectedEvent() *vbf.Event {
	return &vbf.Event{
		Jets: []vbf.Jet{tightJet(150, 2.0, 2.0), tightJet(100, -2.0, -2.0)},
		MET:  vbf.MET{Pt: 250},
	}
}

func TestAxesRelaxOwnCut(t *testing.T) {
	base := vbf.DefaultConfig().Cuts
	for name, want := range map[string]func(*vbf.Cuts) *float64{
		"met":     func(c *vbf.Cuts) *float64 { return &c.MET },
		"mjj":     func(c *vbf.Cuts) *float64 { return &c.Mjj },
		"leadpt":  func(c *vbf.Cuts) *float64 { return &c.LeadJetPt },
		"trailpt": func(c *vbf.Cuts) *float64 { return &c.TrailJetPt },
	} {
		ax, ok := axes[name]
		require.True(t, ok, name)

		cuts := base
		ax.relax(&cuts)
		assert.True(t, math.IsInf(*want(&cuts), -1), name)

		// every other threshold is untouched
		*want(&cuts) = *want(&base)
		assert.Equal(t, base, cuts, name)
	}
}

func TestAxesValue(t *testing.T) {
	sum, v := vbf.NewSelector(vbf.DefaultConfig().Cuts).Evaluate(selectedEvent())
	require.True(t, v.Pass)

	assert.Equal(t, 250.0, axes["met"].value(sum))
	assert.Equal(t, sum.Mjj, axes["mjj"].value(sum))
	assert.Equal(t, 150.0, axes["leadpt"].value(sum))
	assert.Equal(t, 100.0, axes["trailpt"].value(sum))
}

func TestRelaxedLeadPtKeepsTurnOn(t *testing.T) {
	ev := selectedEvent()
	ev.Jets[0].Pt = 60

	cuts := vbf.DefaultConfig().Cuts
	_, v := vbf.NewSelector(cuts).Evaluate(ev)
	assert.False(t, v.Pass)

	axes["leadpt"].relax(&cuts)
	sum, v := vbf.NewSelector(cuts).Evaluate(ev)
	require.True(t, v.Pass)
	assert.Equal(t, 60.0, axes["leadpt"].value(sum))
}

func TestSplits(t *testing.T) {
	geo := splits["geometry"]
	assert.Equal(t, []string{"twoCentralJets", "twoForwardJets", "mixed"}, geo.names)

	barrel := splits["barrel"]
	assert.Equal(t, []string{"twoJetsInBarrel", "twoJetsInEndcap", "oneJetInBarrel_oneJetInEndcap"}, barrel.names)

	sel := vbf.NewSelector(vbf.DefaultConfig().Cuts)
	sum := sel.Summarize(selectedEvent())
	assert.Equal(t, int(vbf.TwoCentral), geo.of(sum))
	assert.Equal(t, int(vbf.BothEndcap), barrel.of(sum))

	ev := selectedEvent()
	ev.Jets[0].Eta, ev.Jets[1].Eta = 1.2, -1.4
	assert.Equal(t, int(vbf.BothBarrel), barrel.of(sel.Summarize(ev)))
}

func TestDenominatorRequiresFilters(t *testing.T) {
	cfg := vbf.DefaultConfig()
	menu := vbf.NewTriggerMenu(cfg.Branches()...)
	filtersPass, err := menu.AllFired(cfg.Filters...)
	require.NoError(t, err)
	sel := vbf.NewSelector(cfg.Cuts)

	ev := selectedEvent()
	ev.Fired = make([]bool, menu.Len())
	_, ok := denominator(sel, filtersPass, ev)
	assert.False(t, ok, "filters not fired")

	for _, name := range cfg.Filters {
		slot, err := menu.Slot(name)
		require.NoError(t, err)
		ev.Fired[slot] = true
	}
	sum, ok := denominator(sel, filtersPass, ev)
	assert.True(t, ok)
	require.NotNil(t, sum)

	ev.MET.Pt = 100
	_, ok = denominator(sel, filtersPass, ev)
	assert.False(t, ok, "selection failed")
}

func TestMeasurements(t *testing.T) {
	cfg := vbf.DefaultConfig()
	extra := "HLT_DiJet110_35_Mjj650_PFMET110_v2"
	menu := vbf.NewTriggerMenu(append(cfg.Branches(), extra)...)

	meas, err := measurements(cfg, menu, nil, false)
	require.NoError(t, err)
	require.Len(t, meas, 1)
	assert.Equal(t, cfg.Triggers.VBF[0], meas[0].name)

	meas, err = measurements(cfg, menu, []string{cfg.Triggers.MET[0], extra}, false)
	require.NoError(t, err)
	require.Len(t, meas, 2)
	assert.Equal(t, cfg.Triggers.MET[0], meas[0].name)
	assert.Equal(t, extra, meas[1].name)

	meas, err = measurements(cfg, menu, []string{extra}, true)
	require.NoError(t, err)
	require.Len(t, meas, 1)
	assert.Equal(t, "L1 VBF seed", meas[0].name)
	assert.False(t, meas[0].fired(&vbf.Event{}))

	_, err = measurements(cfg, menu, []string{"HLT_Nope"}, false)
	assert.ErrorIs(t, err, vbf.ErrUnknownTrigger)

	cfg.Triggers.VBF = nil
	_, err = measurements(cfg, menu, nil, false)
	assert.Error(t, err)
}

func TestCurveLabels(t *testing.T) {
	meas := []measurement{{name: "HLT_A"}, {name: "HLT_B"}}
	files := []string{"data/a.root", "data/b.root"}

	assert.Equal(t, "", curveLabel(meas[:1], files[:1], 0, 0))
	assert.Equal(t, "HLT_B", curveLabel(meas, files[:1], 1, 0))
	assert.Equal(t, "b.root", curveLabel(meas[:1], files, 0, 1))
	assert.Equal(t, "HLT_B a.root", curveLabel(meas, files, 1, 0))

	seen := map[int]bool{}
	for m := range meas {
		for i := range files {
			seen[curve(m, i, len(files))] = true
		}
	}
	assert.Len(t, seen, 4)
}
