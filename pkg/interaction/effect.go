// Package interaction holds the read-only background interaction database
// (the Resource), its sign semantics, and the adjacency index built over it.
package interaction

import "strings"

// Effect is the sign carried by an interaction or a network edge.
type Effect string

const (
	EffectStimulation Effect = "stimulation"
	EffectInhibition  Effect = "inhibition"
	EffectFormComplex Effect = "form_complex"
	EffectBimodal     Effect = "bimodal"
	EffectUndefined   Effect = "undefined"
)

// Signed reports whether the effect survives an only-signed filter.
// Bimodal counts as signed.
func (e Effect) Signed() bool {
	return e != EffectUndefined && e != ""
}

// Activating reports whether the effect contributes an activator to a rule.
func (e Effect) Activating() bool {
	return e == EffectStimulation || e == EffectBimodal
}

// Inhibiting reports whether the effect contributes an inhibitor to a rule.
func (e Effect) Inhibiting() bool {
	return e == EffectInhibition || e == EffectBimodal
}

var effectTokens = map[string]Effect{
	"1":                 EffectStimulation,
	"activate":          EffectStimulation,
	"stimulate":         EffectStimulation,
	"stimulation":       EffectStimulation,
	"->":                EffectStimulation,
	"-|":                EffectInhibition,
	"-1":                EffectInhibition,
	"inhibit":           EffectInhibition,
	"block":             EffectInhibition,
	"inhibition":        EffectInhibition,
	"form complex":      EffectFormComplex,
	"form_complex":      EffectFormComplex,
	"form-complex":      EffectFormComplex,
	"complex_formation": EffectFormComplex,
	"complex formation": EffectFormComplex,
	"bimodal":           EffectBimodal,
	"both":              EffectBimodal,
	"undefined":         EffectUndefined,
}

// ParseEffect maps an interaction token (SIF column, export label) to an
// Effect. Unknown tokens map to EffectUndefined and ok is false.
func ParseEffect(token string) (Effect, bool) {
	e, ok := effectTokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return EffectUndefined, false
	}
	return e, true
}

// Classify returns the sign of rec in plain or consensus mode.
// Precedence is fixed: bimodal, stimulation, inhibition, form_complex, undefined.
func Classify(rec Record, consensus bool) Effect {
	stim, inhib := rec.Stimulation, rec.Inhibition
	if consensus {
		stim, inhib = rec.ConsensusStimulation, rec.ConsensusInhibition
	}
	switch {
	case stim && inhib:
		return EffectBimodal
	case stim:
		return EffectStimulation
	case inhib:
		return EffectInhibition
	case rec.FormComplex:
		return EffectFormComplex
	default:
		return EffectUndefined
	}
}

// MajorityEffect aggregates independent evidence for one pair.
// Unknown votes outweighing known ones, or a tie with no votes, give undefined;
// a stimulation/inhibition tie gives bimodal.
func MajorityEffect(effects []Effect) Effect {
	var stim, inhib, complexes int
	for _, e := range effects {
		switch e {
		case EffectStimulation:
			stim++
		case EffectInhibition:
			inhib++
		case EffectFormComplex:
			complexes++
		}
	}

	known := stim + inhib + complexes
	if len(effects)-known > known {
		return EffectUndefined
	}
	if complexes > stim && complexes > inhib {
		return EffectFormComplex
	}
	switch {
	case stim > inhib:
		return EffectStimulation
	case inhib > stim:
		return EffectInhibition
	case stim > 0:
		return EffectBimodal
	}
	return EffectUndefined
}
