// Package vbf implements the jet-pair combinatorics and the VBF event
// selection applied to reconstructed events: tight jet ID, invariant mass of
// jet pairs, geometry categories, lepton/photon/b-jet vetoes and the
// ordered cut cascade with its cut flow.
package vbf

import (
	"math"

	"go-hep.org/x/hep/fmom"
)

// Jet is a reconstructed AK4 jet. Energy fractions are in [0, 1].
type Jet struct {
	Pt, Eta, Phi, Energy float64

	NConstituents       int
	NeutralHadronFrac   float64
	NeutralEMFrac       float64
	ChargedHadronFrac   float64
	ChargedMultiplicity int
	NeutralMultiplicity int

	// BTag is the CSVv2 b-tag discriminator.
	BTag float64
}

// P4 returns the four-momentum of the jet.
func (j Jet) P4() fmom.PxPyPzE {
	return fmom.NewPxPyPzE(
		j.Pt*math.Cos(j.Phi),
		j.Pt*math.Sin(j.Phi),
		j.Pt*math.Sinh(j.Eta),
		j.Energy,
	)
}

type Electron struct {
	Pt, Eta, Phi float64
	LooseID      bool
}

type Muon struct {
	Pt, Eta, Phi float64
	Global       bool
	Tracker      bool
	PF           bool
}

type Tau struct {
	Pt, Eta, Phi float64
}

type Photon struct {
	Pt, Eta, Phi float64
	LooseID      bool
}

// MET is the missing transverse momentum of an event.
type MET struct {
	Pt, Phi float64
}

// L1Jet is a level-1 trigger jet candidate.
type L1Jet struct {
	Pt, Eta, Phi, Energy float64
}

// P4 returns the four-momentum of the L1 jet.
func (j L1Jet) P4() fmom.PxPyPzE {
	return Jet{Pt: j.Pt, Eta: j.Eta, Phi: j.Phi, Energy: j.Energy}.P4()
}

// Event holds the object collections of one collision event. Jets and L1Jets
// must be sorted by descending pt; nothing in this package re-sorts them.
type Event struct {
	Jets      []Jet
	Electrons []Electron
	Muons     []Muon
	Taus      []Tau
	Photons   []Photon
	MET       MET
	L1Jets    []L1Jet

	// Fired holds the trigger decisions in the slot order of the
	// TriggerMenu the event was read with.
	Fired []bool
}
