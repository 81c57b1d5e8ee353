package vbf

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Cuts holds the thresholds of the VBF selection. All comparisons are strict.
type Cuts struct {
	MET          float64 `yaml:"met"`
	LeadJetPt    float64 `yaml:"leadJetPt"`
	TrailJetPt   float64 `yaml:"trailJetPt"`
	MinJetMETPhi float64 `yaml:"minJetMETPhi"`
	DeltaEta     float64 `yaml:"deltaEta"`
	BTagWP       float64 `yaml:"btagWP"`
	Mjj          float64 `yaml:"mjj"`
}

// L1Seed holds the thresholds of the emulated VBF L1 seed.
type L1Seed struct {
	LeadJetPt  float64 `yaml:"leadJetPt"`
	TrailJetPt float64 `yaml:"trailJetPt"`
	Mjj        float64 `yaml:"mjj"`
}

// Triggers lists the HLT paths read from the input.
type Triggers struct {
	VBF []string `yaml:"vbf"`
	MET []string `yaml:"met"`
}

// All returns the VBF paths followed by the MET paths.
func (t Triggers) All() []string {
	names := make([]string, 0, len(t.VBF)+len(t.MET))
	names = append(names, t.VBF...)
	return append(names, t.MET...)
}

type Config struct {
	Cuts     Cuts     `yaml:"cuts"`
	L1       L1Seed   `yaml:"l1"`
	Triggers Triggers `yaml:"triggers"`

	// Filters are the MET noise filter flags an event must all pass.
	Filters []string `yaml:"filters"`
}

// Branches returns the flag branches read for the configuration: the
// trigger paths followed by the noise filters.
func (c Config) Branches() []string {
	return append(c.Triggers.All(), c.Filters...)
}

// DefaultConfig returns the 2017 selection.
func DefaultConfig() Config {
	return Config{
		Cuts: Cuts{
			MET:          200,
			LeadJetPt:    80,
			TrailJetPt:   40,
			MinJetMETPhi: 0.5,
			DeltaEta:     2.5,
			BTagWP:       0.8484,
			Mjj:          500,
		},
		L1: L1Seed{
			LeadJetPt:  115,
			TrailJetPt: 40,
			Mjj:        620,
		},
		Triggers: Triggers{
			VBF: []string{
				"HLT_DiJet110_35_Mjj650_PFMET110_v5",
				"HLT_DiJet110_35_Mjj650_PFMET120_v5",
				"HLT_DiJet110_35_Mjj650_PFMET130_v5",
			},
			MET: []string{
				"HLT_PFMETNoMu110_PFMHTNoMu110_IDTight_v16",
				"HLT_PFMETNoMu120_PFMHTNoMu120_IDTight_v16",
				"HLT_PFMETNoMu130_PFMHTNoMu130_IDTight_v15",
				"HLT_PFMETNoMu140_PFMHTNoMu140_IDTight_v15",
			},
		},
		Filters: []string{
			"Flag_BadPFMuonFilter",
			"Flag_goodVertices",
			"Flag_globalSuperTightHalo2016Filter",
			"Flag_HBHENoiseFilter",
			"Flag_HBHENoiseIsoFilter",
			"Flag_EcalDeadCellTriggerPrimitiveFilter",
		},
	}
}

// LoadConfig decodes a YAML configuration on top of DefaultConfig. Unknown
// keys are an error. Trigger and filter lists given in the file replace the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("vbf: decoding config: %w", err)
	}
	return cfg, nil
}

// ReadConfigFile loads the configuration stored in the named file.
func ReadConfigFile(name string) (Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg, err := LoadConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}
