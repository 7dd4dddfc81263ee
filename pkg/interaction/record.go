package interaction

// Record is one immutable row of a Resource.
type Record struct {
	Source   string `json:"source" yaml:"source"`
	Target   string `json:"target" yaml:"target"`
	Directed bool   `json:"is_directed" yaml:"is_directed"`

	// Type is the free-form interaction category, e.g. post_translational.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	Stimulation bool `json:"is_stimulation" yaml:"is_stimulation"`
	Inhibition  bool `json:"is_inhibition" yaml:"is_inhibition"`
	FormComplex bool `json:"form_complex" yaml:"form_complex"`

	ConsensusDirection   bool `json:"consensus_direction" yaml:"consensus_direction"`
	ConsensusStimulation bool `json:"consensus_stimulation" yaml:"consensus_stimulation"`
	ConsensusInhibition  bool `json:"consensus_inhibition" yaml:"consensus_inhibition"`

	// HasConsensus is false when the source table carried no consensus
	// columns; the consensus flags then mirror the plain ones.
	HasConsensus bool `json:"-" yaml:"-"`

	References     []string `json:"references,omitempty" yaml:"references,omitempty"`
	CurationEffort int      `json:"curation_effort" yaml:"curation_effort"`
}

// Effect classifies the record in the given mode.
func (r Record) Effect(consensus bool) Effect {
	return Classify(r, consensus)
}

func (r Record) normalized() Record {
	if !r.HasConsensus {
		r.ConsensusDirection = r.Directed
		r.ConsensusStimulation = r.Stimulation
		r.ConsensusInhibition = r.Inhibition
		r.HasConsensus = true
	}
	if len(r.References) > 0 {
		r.References = append([]string(nil), r.References...)
	}
	return r
}
