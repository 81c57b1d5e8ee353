package vbf

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NoJetPhi is returned by MinJetMETPhi when no jet qualifies. It fails any
// positive delta-phi threshold.
const NoJetPhi = -1.0

const (
	minPhiJets  = 4
	minPhiJetPt = 30
)

// DeltaPhi returns |phi1 - phi2| folded into [0, pi].
func DeltaPhi(phi1, phi2 float64) float64 {
	d := math.Abs(phi1 - phi2)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// MinJetMETPhi returns the smallest delta-phi between the MET and any of the
// first four jets with pt >= 30.
func MinJetMETPhi(jets []Jet, met MET) float64 {
	if len(jets) > minPhiJets {
		jets = jets[:minPhiJets]
	}
	var dphi []float64
	for _, j := range jets {
		if j.Pt < minPhiJetPt {
			continue
		}
		dphi = append(dphi, DeltaPhi(j.Phi, met.Phi))
	}
	if len(dphi) == 0 {
		return NoJetPhi
	}
	return floats.Min(dphi)
}
