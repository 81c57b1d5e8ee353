package vbf

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
cuts:
  met: 250
  mjj: 800
triggers:
  vbf: [HLT_DiJet110_35_Mjj650_PFMET110_v2]
`))
	require.NoError(t, err)

	want := DefaultConfig()
	want.Cuts.MET = 250
	want.Cuts.Mjj = 800
	want.Triggers.VBF = []string{"HLT_DiJet110_35_Mjj650_PFMET110_v2"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("cuts:\n  metcut: 10\n"))
	assert.Error(t, err)
}

func TestReadConfigFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "vbf.yaml")
	require.NoError(t, os.WriteFile(name, []byte("l1:\n  mjj: 700\n"), 0o644))

	cfg, err := ReadConfigFile(name)
	require.NoError(t, err)
	assert.Equal(t, 700.0, cfg.L1.Mjj)
	assert.Equal(t, 115.0, cfg.L1.LeadJetPt)

	_, err = ReadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestTriggerMenu(t *testing.T) {
	menu := NewTriggerMenu("A", "B", "A", "C")
	assert.Equal(t, []string{"A", "B", "C"}, menu.Names())
	assert.Equal(t, 3, menu.Len())

	slot, err := menu.Slot("C")
	require.NoError(t, err)
	assert.Equal(t, 2, slot)

	_, err = menu.Slot("D")
	assert.ErrorIs(t, err, ErrUnknownTrigger)
	_, err = menu.Accessor("D")
	assert.ErrorIs(t, err, ErrUnknownTrigger)

	fired, err := menu.Accessor("B")
	require.NoError(t, err)
	assert.True(t, fired(&Event{Fired: []bool{false, true, false}}))
	assert.False(t, fired(&Event{Fired: []bool{true, false, true}}))
	assert.False(t, fired(&Event{}))
}

func TestL1Selection(t *testing.T) {
	seed := DefaultConfig().L1
	l1 := func(pt, eta, phi float64) L1Jet {
		j := masslessJet(pt, eta, phi)
		return L1Jet{Pt: j.Pt, Eta: j.Eta, Phi: j.Phi, Energy: j.Energy}
	}

	pass := []L1Jet{l1(150, 2.0, 0), l1(60, -2.0, 3.0)}
	require.Greater(t, L1Mjj(pass), 620.0)
	assert.True(t, L1Selection(pass, seed))

	assert.False(t, L1Selection(pass[:1], seed))
	assert.False(t, L1Selection([]L1Jet{l1(115, 2.0, 0), l1(60, -2.0, 3.0)}, seed))
	assert.False(t, L1Selection([]L1Jet{l1(150, 2.0, 0), l1(40, -2.0, 3.0)}, seed))
	assert.False(t, L1Selection([]L1Jet{l1(150, 0.2, 0), l1(60, -0.2, 0.5)}, seed))
}

func TestHLTSelection(t *testing.T) {
	cfg := DefaultConfig()
	menu := NewTriggerMenu(cfg.Triggers.All()...)
	name := cfg.Triggers.VBF[0]

	hlt, err := HLTSelection(menu, name, cfg.L1)
	require.NoError(t, err)

	slot, _ := menu.Slot(name)
	fired := make([]bool, menu.Len())
	fired[slot] = true

	l1Jets := []L1Jet{
		{Pt: 150, Eta: 2.0, Phi: 0, Energy: 150 * 3.7621956910836314},
		{Pt: 60, Eta: -2.0, Phi: 3.0, Energy: 60 * 3.7621956910836314},
	}
	assert.True(t, hlt(&Event{L1Jets: l1Jets, Fired: fired}))
	assert.False(t, hlt(&Event{L1Jets: l1Jets, Fired: make([]bool, menu.Len())}))
	assert.False(t, hlt(&Event{L1Jets: l1Jets[:1], Fired: fired}))

	_, err = HLTSelection(menu, "HLT_Nope", cfg.L1)
	assert.ErrorIs(t, err, ErrUnknownTrigger)
}

func TestConfigFilters(t *testing.T) {
	cfg := DefaultConfig()
	require.Len(t, cfg.Filters, 6)
	assert.Contains(t, cfg.Filters, "Flag_HBHENoiseIsoFilter")

	branches := cfg.Branches()
	assert.Equal(t, cfg.Triggers.All(), branches[:len(branches)-len(cfg.Filters)])
	assert.Equal(t, cfg.Filters, branches[len(branches)-len(cfg.Filters):])

	cfg, err := LoadConfig(strings.NewReader("filters: [Flag_goodVertices]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Flag_goodVertices"}, cfg.Filters)

	cfg, err = LoadConfig(strings.NewReader("filters: []\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Filters)
}

func TestAllFired(t *testing.T) {
	cfg := DefaultConfig()
	menu := NewTriggerMenu(cfg.Branches()...)

	pass, err := menu.AllFired(cfg.Filters...)
	require.NoError(t, err)

	fired := make([]bool, menu.Len())
	for _, name := range cfg.Filters {
		slot, err := menu.Slot(name)
		require.NoError(t, err)
		fired[slot] = true
	}
	assert.True(t, pass(&Event{Fired: fired}))

	slot, _ := menu.Slot("Flag_EcalDeadCellTriggerPrimitiveFilter")
	fired[slot] = false
	assert.False(t, pass(&Event{Fired: fired}))
	assert.False(t, pass(&Event{}))

	none, err := menu.AllFired()
	require.NoError(t, err)
	assert.True(t, none(&Event{}))

	_, err = NewTriggerMenu(cfg.Triggers.All()...).AllFired(cfg.Filters...)
	assert.ErrorIs(t, err, ErrUnknownTrigger)
}

func TestL1MjjTooFewJets(t *testing.T) {
	assert.Equal(t, 0.0, L1Mjj(nil))
	assert.Equal(t, 0.0, L1Mjj([]L1Jet{{Pt: 150, Eta: 2, Energy: 600}}))
}

func TestReadConfigFileMatchesDefault(t *testing.T) {
	cfg, err := ReadConfigFile("testdata/vbf2017.yaml")
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}
