package vbf

import "go-hep.org/x/hep/fmom"

// PairIndex identifies an unordered pair of jets by their positions in the
// jet list the pair was computed against.
type PairIndex struct {
	I, J int
}

// LeadingPair is the pair made of the leading and trailing jets.
var LeadingPair = PairIndex{0, 1}

// canonical orders the pair so that I < J.
func (p PairIndex) canonical() PairIndex {
	if p.I > p.J {
		return PairIndex{p.J, p.I}
	}
	return p
}

// IsLeading reports whether p is the leading pair in either order.
func (p PairIndex) IsLeading() bool {
	return p.canonical() == LeadingPair
}

// PairMass is the invariant mass of one jet pair.
type PairMass struct {
	Pair PairIndex
	Mass float64
}

// MassTable holds the invariant mass of every unordered jet pair of an event.
// Leading is the mass of LeadingPair, which is never repeated in Others.
type MassTable struct {
	Leading float64
	Others  []PairMass

	index map[PairIndex]int
}

// Len returns the number of pairs in the table, the leading pair included.
func (t *MassTable) Len() int {
	return 1 + len(t.Others)
}

// Mass returns the invariant mass stored for p, in either order.
func (t *MassTable) Mass(p PairIndex) (float64, bool) {
	p = p.canonical()
	if p == LeadingPair {
		return t.Leading, true
	}
	i, ok := t.index[p]
	if !ok {
		return 0, false
	}
	return t.Others[i].Mass, true
}

func (t *MassTable) has(p PairIndex) bool {
	_, ok := t.index[p.canonical()]
	return ok
}

func (t *MassTable) insert(p PairIndex, mass float64) {
	if t.index == nil {
		t.index = make(map[PairIndex]int)
	}
	t.index[p.canonical()] = len(t.Others)
	t.Others = append(t.Others, PairMass{Pair: p, Mass: mass})
}

// InvMass returns the invariant mass of the sum of the two jets'
// four-momenta.
func InvMass(a, b Jet) float64 {
	return pairMass(a.P4(), b.P4())
}

func pairMass(a, b fmom.PxPyPzE) float64 {
	return fmom.Add(&a, &b).M()
}

// JetCombos computes the invariant mass of every unordered pair of jets.
// jets must contain at least two entries.
func JetCombos(jets []Jet) *MassTable {
	t := &MassTable{
		Leading: InvMass(jets[0], jets[1]),
		Others:  make([]PairMass, 0, len(jets)*(len(jets)-1)/2-1),
	}
	for i := range jets {
		for j := range jets {
			p := PairIndex{i, j}
			if i == j || p.IsLeading() || t.has(p) {
				continue
			}
			t.insert(p, InvMass(jets[i], jets[j]))
		}
	}
	return t
}

// MaxCombo returns the pair with the largest invariant mass. The leading pair
// is kept unless another pair is strictly heavier; among other pairs of equal
// mass the first one in the table wins.
func (t *MassTable) MaxCombo() PairIndex {
	best, mjj := LeadingPair, t.Leading
	for _, pm := range t.Others {
		if pm.Mass > mjj {
			best, mjj = pm.Pair, pm.Mass
		}
	}
	return best
}

// SortJets returns the indices of the pair ordered by jet pt, higher first.
// On equal pt the first index of the pair is returned second.
func SortJets(jets []Jet, p PairIndex) (hi, lo int) {
	if jets[p.I].Pt > jets[p.J].Pt {
		return p.I, p.J
	}
	return p.J, p.I
}
