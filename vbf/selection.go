package vbf

import "math"

// Stage is one cut of the VBF selection, in evaluation order.
type Stage int

const (
	StageMET Stage = iota
	StageNJet
	StageLeadJetPt
	StageTrailJetPt
	StageMinJetMETPhi
	StageOppositeHemisphere
	StageDeltaEta
	StageBJetVeto
	StageLeptonVeto
	StagePhotonVeto
	StageMjj

	NumStages
)

var stageNames = [NumStages]string{
	StageMET:                "met",
	StageNJet:               "nJet",
	StageLeadJetPt:          "leadJetPt",
	StageTrailJetPt:         "trailJetPt",
	StageMinJetMETPhi:       "minPhiJetMET",
	StageOppositeHemisphere: "oppositeHemisphere",
	StageDeltaEta:           "deltaEta",
	StageBJetVeto:           "bJetVeto",
	StageLeptonVeto:         "leptonVeto",
	StagePhotonVeto:         "photonVeto",
	StageMjj:                "mjj",
}

func (s Stage) String() string {
	if s < 0 || s >= NumStages {
		return "none"
	}
	return stageNames[s]
}

// Summary holds the per-event quantities the cuts are evaluated on.
// Fields derived from the two leading jets are only set when the event has
// at least two tight jets; Masses is nil otherwise.
type Summary struct {
	MET  MET
	Jets []Jet // tight jets, in input order

	Masses       *MassTable
	MaxPair      PairIndex
	Geometry     Geometry
	Mjj          float64 // leading pair
	DeltaEta     float64 // |eta0 - eta1|
	MinJetMETPhi float64

	HasBJet   bool
	HasLepton bool
	HasPhoton bool
}

// NJet returns the number of tight jets.
func (s *Summary) NJet() int { return len(s.Jets) }

// Verdict is the outcome of the selection for one event.
type Verdict struct {
	Pass bool
	// FailedAt is the first stage the event did not pass, NumStages when
	// the event passed every stage.
	FailedAt Stage
}

// Passed reports whether the event survived the given stage.
func (v Verdict) Passed(s Stage) bool { return s < v.FailedAt }

// Selector applies the VBF selection with a fixed set of thresholds.
// It holds no per-event state and is safe for concurrent use.
type Selector struct {
	cuts Cuts
}

func NewSelector(cuts Cuts) *Selector {
	return &Selector{cuts: cuts}
}

// Cuts returns the thresholds of the selector.
func (s *Selector) Cuts() Cuts { return s.cuts }

// Summarize computes the selection quantities of an event.
func (s *Selector) Summarize(ev *Event) *Summary {
	jets := TightJets(ev.Jets)
	sum := &Summary{
		MET:          ev.MET,
		Jets:         jets,
		MinJetMETPhi: MinJetMETPhi(jets, ev.MET),
		HasBJet:      ContainsBJet(jets, s.cuts.BTagWP),
		HasLepton:    ContainsLepton(ev),
		HasPhoton:    ContainsLoosePhoton(ev.Photons),
	}
	if len(jets) < 2 {
		return sum
	}
	sum.Masses = JetCombos(jets)
	sum.MaxPair = sum.Masses.MaxCombo()
	sum.Mjj = sum.Masses.Leading
	sum.Geometry = Classify(jets[0], jets[1])
	sum.DeltaEta = math.Abs(jets[0].Eta - jets[1].Eta)
	return sum
}

// Select runs the cuts in order and stops at the first one failing.
func (s *Selector) Select(sum *Summary) Verdict {
	for st := Stage(0); st < NumStages; st++ {
		if !s.passes(st, sum) {
			return Verdict{FailedAt: st}
		}
	}
	return Verdict{Pass: true, FailedAt: NumStages}
}

// Evaluate summarizes and selects an event.
func (s *Selector) Evaluate(ev *Event) (*Summary, Verdict) {
	sum := s.Summarize(ev)
	return sum, s.Select(sum)
}

// passes evaluates a single stage. Stages after StageNJet may index the two
// leading jets, which Select guarantees exist.
func (s *Selector) passes(st Stage, sum *Summary) bool {
	c := s.cuts
	switch st {
	case StageMET:
		return sum.MET.Pt > c.MET
	case StageNJet:
		return len(sum.Jets) >= 2
	case StageLeadJetPt:
		return sum.Jets[0].Pt > c.LeadJetPt
	case StageTrailJetPt:
		return sum.Jets[1].Pt > c.TrailJetPt
	case StageMinJetMETPhi:
		return sum.MinJetMETPhi > c.MinJetMETPhi
	case StageOppositeHemisphere:
		return sum.Jets[0].Eta*sum.Jets[1].Eta < 0
	case StageDeltaEta:
		return sum.DeltaEta > c.DeltaEta
	case StageBJetVeto:
		return !sum.HasBJet
	case StageLeptonVeto:
		return !sum.HasLepton
	case StagePhotonVeto:
		return !sum.HasPhoton
	case StageMjj:
		return sum.Mjj > c.Mjj
	}
	return false
}

// CutFlow accumulates, for every stage, the number of events that passed it
// and all the stages before it.
type CutFlow struct {
	Total  int
	Passed [NumStages]int
}

// Add records the verdict of one event.
func (c *CutFlow) Add(v Verdict) {
	c.Total++
	for st := Stage(0); st < v.FailedAt && st < NumStages; st++ {
		c.Passed[st]++
	}
}

// Merge adds the counts of o.
func (c *CutFlow) Merge(o CutFlow) {
	c.Total += o.Total
	for i, n := range o.Passed {
		c.Passed[i] += n
	}
}

// Reached returns the number of events that were evaluated at stage st.
func (c *CutFlow) Reached(st Stage) int {
	if st <= 0 {
		return c.Total
	}
	return c.Passed[st-1]
}

// Counts returns the passed count of every stage keyed by stage name.
func (c *CutFlow) Counts() map[string]int {
	m := make(map[string]int, NumStages)
	for st := Stage(0); st < NumStages; st++ {
		m[st.String()] = c.Passed[st]
	}
	return m
}
