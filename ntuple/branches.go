package ntuple

import (
	"go-hep.org/x/hep/rootio"

	"github.com/decibelcooper/vbfplot/vbf"
)

// branches mirrors one entry of the event tree. Variable length arrays are
// sized by their n* counter branch.
type branches struct {
	MET    float32
	METPhi float32

	NJet      int32
	JetPt     []float32
	JetEta    []float32
	JetPhi    []float32
	JetEnergy []float32
	JetBTag   []float32
	JetNConst []int32
	JetNHF    []float32
	JetNEMF   []float32
	JetCHF    []float32
	JetCMult  []int32
	JetNMult  []int32

	NElectron       int32
	ElectronPt      []float32
	ElectronEta     []float32
	ElectronPhi     []float32
	ElectronLooseID []int32

	NMuon         int32
	MuonPt        []float32
	MuonEta       []float32
	MuonPhi       []float32
	MuonIsGlobal  []int32
	MuonIsTracker []int32
	MuonIsPF      []int32

	NTau   int32
	TauPt  []float32
	TauEta []float32
	TauPhi []float32

	NPhoton       int32
	PhotonPt      []float32
	PhotonEta     []float32
	PhotonPhi     []float32
	PhotonLooseID []int32

	L1NJet      int32
	L1JetPt     []float32
	L1JetEta    []float32
	L1JetPhi    []float32
	L1JetEnergy []float32
}

// binding associates a branch name with the field it is scanned into.
type binding struct {
	name string
	ptr  interface{}
}

func (b *branches) bindings() []binding {
	return []binding{
		{"met", &b.MET},
		{"met_phi", &b.METPhi},

		{"nJet", &b.NJet},
		{"jet_pt", &b.JetPt},
		{"jet_eta", &b.JetEta},
		{"jet_phi", &b.JetPhi},
		{"jet_energy", &b.JetEnergy},
		{"jet_btag_CSVv2", &b.JetBTag},
		{"jet_nConstituents", &b.JetNConst},
		{"jet_neutralHadronEnergyFraction", &b.JetNHF},
		{"jet_neutralEmEnergyFraction", &b.JetNEMF},
		{"jet_chargedHadronEnergyFraction", &b.JetCHF},
		{"jet_chargedMultiplicity", &b.JetCMult},
		{"jet_neutralMultiplicity", &b.JetNMult},

		{"nElectron", &b.NElectron},
		{"electron_pt", &b.ElectronPt},
		{"electron_eta", &b.ElectronEta},
		{"electron_phi", &b.ElectronPhi},
		{"electron_looseID", &b.ElectronLooseID},

		{"nMuon", &b.NMuon},
		{"muon_pt", &b.MuonPt},
		{"muon_eta", &b.MuonEta},
		{"muon_phi", &b.MuonPhi},
		{"muon_isGlobal", &b.MuonIsGlobal},
		{"muon_isTracker", &b.MuonIsTracker},
		{"muon_isPF", &b.MuonIsPF},

		{"nTau", &b.NTau},
		{"tau_pt", &b.TauPt},
		{"tau_eta", &b.TauEta},
		{"tau_phi", &b.TauPhi},

		{"nPhoton", &b.NPhoton},
		{"photon_pt", &b.PhotonPt},
		{"photon_eta", &b.PhotonEta},
		{"photon_phi", &b.PhotonPhi},
		{"photon_looseID", &b.PhotonLooseID},

		{"L1_nJet", &b.L1NJet},
		{"L1_jet_pt", &b.L1JetPt},
		{"L1_jet_eta", &b.L1JetEta},
		{"L1_jet_phi", &b.L1JetPhi},
		{"L1_jet_energy", &b.L1JetEnergy},
	}
}

// scanVars returns the tree scanner variables for the event branches
// followed by one int32 branch per trigger, and the matching scan targets.
func scanVars(b *branches, triggers []int32, menu *vbf.TriggerMenu) ([]rootio.ScanVar, []interface{}) {
	binds := b.bindings()
	vars := make([]rootio.ScanVar, 0, len(binds)+len(triggers))
	ptrs := make([]interface{}, 0, len(binds)+len(triggers))
	for _, bd := range binds {
		vars = append(vars, rootio.ScanVar{Name: bd.name})
		ptrs = append(ptrs, bd.ptr)
	}
	for i, name := range menu.Names() {
		vars = append(vars, rootio.ScanVar{Name: name})
		ptrs = append(ptrs, &triggers[i])
	}
	return vars, ptrs
}

// count clamps a counter branch to the length of the arrays it sizes.
func count(n int32, arrays ...int) int {
	c := int(n)
	if c < 0 {
		c = 0
	}
	for _, l := range arrays {
		if l < c {
			c = l
		}
	}
	return c
}

// event converts the scanned branches into a fresh event.
func (b *branches) event(triggers []int32) *vbf.Event {
	ev := &vbf.Event{
		MET: vbf.MET{Pt: float64(b.MET), Phi: float64(b.METPhi)},
	}

	n := count(b.NJet, len(b.JetPt), len(b.JetEta), len(b.JetPhi), len(b.JetEnergy),
		len(b.JetBTag), len(b.JetNConst), len(b.JetNHF), len(b.JetNEMF), len(b.JetCHF),
		len(b.JetCMult), len(b.JetNMult))
	ev.Jets = make([]vbf.Jet, n)
	for i := range ev.Jets {
		ev.Jets[i] = vbf.Jet{
			Pt:                  float64(b.JetPt[i]),
			Eta:                 float64(b.JetEta[i]),
			Phi:                 float64(b.JetPhi[i]),
			Energy:              float64(b.JetEnergy[i]),
			BTag:                float64(b.JetBTag[i]),
			NConstituents:       int(b.JetNConst[i]),
			NeutralHadronFrac:   float64(b.JetNHF[i]),
			NeutralEMFrac:       float64(b.JetNEMF[i]),
			ChargedHadronFrac:   float64(b.JetCHF[i]),
			ChargedMultiplicity: int(b.JetCMult[i]),
			NeutralMultiplicity: int(b.JetNMult[i]),
		}
	}

	n = count(b.NElectron, len(b.ElectronPt), len(b.ElectronEta), len(b.ElectronPhi), len(b.ElectronLooseID))
	ev.Electrons = make([]vbf.Electron, n)
	for i := range ev.Electrons {
		ev.Electrons[i] = vbf.Electron{
			Pt:      float64(b.ElectronPt[i]),
			Eta:     float64(b.ElectronEta[i]),
			Phi:     float64(b.ElectronPhi[i]),
			LooseID: b.ElectronLooseID[i] == 1,
		}
	}

	n = count(b.NMuon, len(b.MuonPt), len(b.MuonEta), len(b.MuonPhi),
		len(b.MuonIsGlobal), len(b.MuonIsTracker), len(b.MuonIsPF))
	ev.Muons = make([]vbf.Muon, n)
	for i := range ev.Muons {
		ev.Muons[i] = vbf.Muon{
			Pt:      float64(b.MuonPt[i]),
			Eta:     float64(b.MuonEta[i]),
			Phi:     float64(b.MuonPhi[i]),
			Global:  b.MuonIsGlobal[i] != 0,
			Tracker: b.MuonIsTracker[i] != 0,
			PF:      b.MuonIsPF[i] != 0,
		}
	}

	n = count(b.NTau, len(b.TauPt), len(b.TauEta), len(b.TauPhi))
	ev.Taus = make([]vbf.Tau, n)
	for i := range ev.Taus {
		ev.Taus[i] = vbf.Tau{
			Pt:  float64(b.TauPt[i]),
			Eta: float64(b.TauEta[i]),
			Phi: float64(b.TauPhi[i]),
		}
	}

	n = count(b.NPhoton, len(b.PhotonPt), len(b.PhotonEta), len(b.PhotonPhi), len(b.PhotonLooseID))
	ev.Photons = make([]vbf.Photon, n)
	for i := range ev.Photons {
		ev.Photons[i] = vbf.Photon{
			Pt:      float64(b.PhotonPt[i]),
			Eta:     float64(b.PhotonEta[i]),
			Phi:     float64(b.PhotonPhi[i]),
			LooseID: b.PhotonLooseID[i] == 1,
		}
	}

	n = count(b.L1NJet, len(b.L1JetPt), len(b.L1JetEta), len(b.L1JetPhi), len(b.L1JetEnergy))
	ev.L1Jets = make([]vbf.L1Jet, n)
	for i := range ev.L1Jets {
		ev.L1Jets[i] = vbf.L1Jet{
			Pt:     float64(b.L1JetPt[i]),
			Eta:    float64(b.L1JetEta[i]),
			Phi:    float64(b.L1JetPhi[i]),
			Energy: float64(b.L1JetEnergy[i]),
		}
	}

	ev.Fired = make([]bool, len(triggers))
	for i, bit := range triggers {
		ev.Fired[i] = bit == 1
	}
	return ev
}
