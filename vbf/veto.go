package vbf

import "math"

// ContainsLooseElectron reports whether any electron passes the loose ID.
func ContainsLooseElectron(electrons []Electron) bool {
	for _, e := range electrons {
		if e.LooseID && e.Pt > 10 && math.Abs(e.Eta) < 2.5 {
			return true
		}
	}
	return false
}

// ContainsLooseMuon reports whether any muon passes the loose ID.
func ContainsLooseMuon(muons []Muon) bool {
	for _, m := range muons {
		if (m.Global || m.Tracker) && m.PF && m.Pt > 5 {
			return true
		}
	}
	return false
}

// ContainsLooseTau reports whether any tau passes the loose selection.
func ContainsLooseTau(taus []Tau) bool {
	for _, t := range taus {
		if t.Pt > 20 && math.Abs(t.Eta) < 2.3 {
			return true
		}
	}
	return false
}

// ContainsLoosePhoton reports whether any photon passes the loose ID.
func ContainsLoosePhoton(photons []Photon) bool {
	for _, p := range photons {
		if p.LooseID && math.Abs(p.Eta) < 2.5 && p.Pt > 15 {
			return true
		}
	}
	return false
}

// ContainsLepton reports whether the event has a loose electron, muon or tau.
func ContainsLepton(ev *Event) bool {
	return ContainsLooseElectron(ev.Electrons) ||
		ContainsLooseMuon(ev.Muons) ||
		ContainsLooseTau(ev.Taus)
}

// ContainsLeptonOrPhoton reports whether any of the collections holds a
// loose object. An event for which this is true is vetoed.
func ContainsLeptonOrPhoton(electrons []Electron, muons []Muon, taus []Tau, photons []Photon) bool {
	return ContainsLooseElectron(electrons) ||
		ContainsLooseMuon(muons) ||
		ContainsLooseTau(taus) ||
		ContainsLoosePhoton(photons)
}

// ContainsBJet reports whether any jet has a b-tag discriminator above wp.
func ContainsBJet(jets []Jet, wp float64) bool {
	for _, j := range jets {
		if j.BTag > wp {
			return true
		}
	}
	return false
}
