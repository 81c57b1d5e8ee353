package vbf

import "math"

// etaZone is the detector region a jet falls in for the tight ID.
type etaZone int

const (
	zoneTracker    etaZone = iota // |eta| <= 2.4
	zoneEndcap                    // 2.4 < |eta| <= 2.7
	zoneTransition                // 2.7 < |eta| <= 3.0
	zoneForward                   // |eta| > 3.0
)

func jetZone(eta float64) etaZone {
	abs := math.Abs(eta)
	switch {
	case abs <= 2.4:
		return zoneTracker
	case abs <= 2.7:
		return zoneEndcap
	case abs <= 3.0:
		return zoneTransition
	default:
		return zoneForward
	}
}

// IsTightJet reports whether the jet passes the 2017 tight jet ID.
func IsTightJet(j Jet) bool {
	switch jetZone(j.Eta) {
	case zoneTracker:
		return passesCentral(j) && j.ChargedHadronFrac > 0 && j.ChargedMultiplicity > 0
	case zoneEndcap:
		return passesCentral(j)
	case zoneTransition:
		return j.NeutralEMFrac > 0.02 && j.NeutralEMFrac < 0.99 && j.NeutralMultiplicity > 2
	default:
		return j.NeutralEMFrac <= 0.9 && j.NeutralHadronFrac > 0.02 && j.NeutralMultiplicity > 10
	}
}

// passesCentral applies the requirements shared by every jet with |eta| <= 2.7.
func passesCentral(j Jet) bool {
	return j.NConstituents > 1 && j.NeutralHadronFrac < 0.9 && j.NeutralEMFrac < 0.9
}

// TightJets returns the jets passing the tight ID, keeping their order.
func TightJets(jets []Jet) []Jet {
	var tight []Jet
	for _, j := range jets {
		if IsTightJet(j) {
			tight = append(tight, j)
		}
	}
	return tight
}
