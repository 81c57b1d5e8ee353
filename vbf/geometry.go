package vbf

import "math"

// Geometry categorizes an event by the pseudorapidity of its two leading jets.
type Geometry int

const (
	TwoCentral Geometry = iota
	TwoForward
	Mixed

	NumGeometries
)

// centralEta is the |eta| boundary between central and forward jets,
// inclusive on the central side.
const centralEta = 2.5

var geometryNames = [NumGeometries]string{
	TwoCentral: "twoCentralJets",
	TwoForward: "twoForwardJets",
	Mixed:      "mixed",
}

// Geometries lists every category in display order.
var Geometries = []Geometry{TwoCentral, TwoForward, Mixed}

func (g Geometry) String() string {
	if g < 0 || g >= NumGeometries {
		return "unknown"
	}
	return geometryNames[g]
}

// Classify returns the geometry category of the leading and trailing jets.
func Classify(lead, trail Jet) Geometry {
	c1 := math.Abs(lead.Eta) <= centralEta
	c2 := math.Abs(trail.Eta) <= centralEta
	switch {
	case c1 && c2:
		return TwoCentral
	case !c1 && !c2:
		return TwoForward
	default:
		return Mixed
	}
}

// Region categorizes an event by whether its two leading jets fall in the
// calorimeter barrel or endcaps.
type Region int

const (
	BothBarrel Region = iota
	BothEndcap
	BarrelEndcap

	NumRegions
)

// barrelEta is the |eta| boundary of the ECAL barrel, exclusive on the barrel
// side.
const barrelEta = 1.479

var regionNames = [NumRegions]string{
	BothBarrel:   "twoJetsInBarrel",
	BothEndcap:   "twoJetsInEndcap",
	BarrelEndcap: "oneJetInBarrel_oneJetInEndcap",
}

// Regions lists every region in display order.
var Regions = []Region{BothBarrel, BothEndcap, BarrelEndcap}

func (r Region) String() string {
	if r < 0 || r >= NumRegions {
		return "unknown"
	}
	return regionNames[r]
}

// ClassifyRegion returns the calorimeter region of the leading and trailing
// jets.
func ClassifyRegion(lead, trail Jet) Region {
	b1 := math.Abs(lead.Eta) < barrelEta
	b2 := math.Abs(trail.Eta) < barrelEta
	switch {
	case b1 && b2:
		return BothBarrel
	case !b1 && !b2:
		return BothEndcap
	default:
		return BarrelEndcap
	}
}
