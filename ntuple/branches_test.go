package ntuple

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/vbfplot/vbf"
)

func TestBranchesEvent(t *testing.T) {
	b := branches{
		MET:    250,
		METPhi: 0.5,

		NJet:      2,
		JetPt:     []float32{150, 100},
		JetEta:    []float32{2, -2},
		JetPhi:    []float32{1, -1},
		JetEnergy: []float32{560, 380},
		JetBTag:   []float32{0.1, 0.9},
		JetNConst: []int32{12, 8},
		JetNHF:    []float32{0.25, 0.5},
		JetNEMF:   []float32{0.125, 0.25},
		JetCHF:    []float32{0.5, 0.25},
		JetCMult:  []int32{6, 3},
		JetNMult:  []int32{4, 5},

		NElectron:       1,
		ElectronPt:      []float32{15},
		ElectronEta:     []float32{1},
		ElectronPhi:     []float32{0},
		ElectronLooseID: []int32{1},

		NMuon:         1,
		MuonPt:        []float32{7},
		MuonEta:       []float32{0.5},
		MuonPhi:       []float32{2},
		MuonIsGlobal:  []int32{0},
		MuonIsTracker: []int32{1},
		MuonIsPF:      []int32{1},

		NPhoton:       1,
		PhotonPt:      []float32{20},
		PhotonEta:     []float32{-1},
		PhotonPhi:     []float32{3},
		PhotonLooseID: []int32{0},

		L1NJet:      1,
		L1JetPt:     []float32{120},
		L1JetEta:    []float32{2.5},
		L1JetPhi:    []float32{1},
		L1JetEnergy: []float32{740},
	}

	got := b.event([]int32{1, 0})
	want := &vbf.Event{
		MET: vbf.MET{Pt: 250, Phi: 0.5},
		Jets: []vbf.Jet{
			{
				Pt: 150, Eta: 2, Phi: 1, Energy: 560, BTag: float64(float32(0.1)),
				NConstituents: 12, NeutralHadronFrac: 0.25, NeutralEMFrac: 0.125,
				ChargedHadronFrac: 0.5, ChargedMultiplicity: 6, NeutralMultiplicity: 4,
			},
			{
				Pt: 100, Eta: -2, Phi: -1, Energy: 380, BTag: float64(float32(0.9)),
				NConstituents: 8, NeutralHadronFrac: 0.5, NeutralEMFrac: 0.25,
				ChargedHadronFrac: 0.25, ChargedMultiplicity: 3, NeutralMultiplicity: 5,
			},
		},
		Electrons: []vbf.Electron{{Pt: 15, Eta: 1, LooseID: true}},
		Muons:     []vbf.Muon{{Pt: 7, Eta: 0.5, Phi: 2, Tracker: true, PF: true}},
		Taus:      []vbf.Tau{},
		Photons:   []vbf.Photon{{Pt: 20, Eta: -1, Phi: 3}},
		L1Jets:    []vbf.L1Jet{{Pt: 120, Eta: 2.5, Phi: 1, Energy: 740}},
		Fired:     []bool{true, false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}
}

func TestBranchesEventClampsCounters(t *testing.T) {
	b := branches{
		NJet:   3,
		JetPt:  []float32{100, 50},
		JetEta: []float32{1, 2},
		NTau:   -1,
	}
	ev := b.event(nil)
	assert.Empty(t, ev.Jets, "jet arrays missing")
	assert.Empty(t, ev.Taus)
	assert.Empty(t, ev.Fired)
}

func TestScanVarsOrder(t *testing.T) {
	var b branches
	menu := vbf.NewTriggerMenu("HLT_A", "HLT_B")
	trig := make([]int32, menu.Len())

	vars, ptrs := scanVars(&b, trig, menu)
	require.Len(t, ptrs, len(vars))

	n := len(vars)
	assert.Equal(t, "met", vars[0].Name)
	assert.Equal(t, "HLT_A", vars[n-2].Name)
	assert.Equal(t, "HLT_B", vars[n-1].Name)
	assert.Same(t, &trig[1], ptrs[n-1])
	assert.Same(t, &b.MET, ptrs[0])
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("testdata/does-not-exist.root", vbf.NewTriggerMenu())
	assert.Error(t, err)
}
