package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want Effect
	}{
		{"bimodal wins over complex", Record{Stimulation: true, Inhibition: true, FormComplex: true}, EffectBimodal},
		{"stimulation", Record{Stimulation: true, FormComplex: true}, EffectStimulation},
		{"inhibition", Record{Inhibition: true, FormComplex: true}, EffectInhibition},
		{"complex", Record{FormComplex: true}, EffectFormComplex},
		{"nothing set", Record{}, EffectUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.rec, false))
		})
	}
}

func TestClassifyBimodalInBothModes(t *testing.T) {
	rec := Record{
		Stimulation: true, Inhibition: true,
		ConsensusStimulation: true, ConsensusInhibition: true,
		HasConsensus: true,
	}
	assert.Equal(t, EffectBimodal, Classify(rec, false))
	assert.Equal(t, EffectBimodal, Classify(rec, true))
	assert.True(t, EffectBimodal.Signed())
	assert.False(t, EffectUndefined.Signed())
}

func TestClassifyConsensusMode(t *testing.T) {
	rec := Record{Stimulation: true, Inhibition: true, ConsensusInhibition: true, HasConsensus: true}
	assert.Equal(t, EffectBimodal, Classify(rec, false))
	assert.Equal(t, EffectInhibition, Classify(rec, true))
}

func TestParseEffect(t *testing.T) {
	cases := map[string]Effect{
		"->":           EffectStimulation,
		"-|":           EffectInhibition,
		"Activate":     EffectStimulation,
		"form complex": EffectFormComplex,
		"both":         EffectBimodal,
	}
	for token, want := range cases {
		got, ok := ParseEffect(token)
		assert.True(t, ok, token)
		assert.Equal(t, want, got, token)
	}

	got, ok := ParseEffect("phosphorylate")
	assert.False(t, ok)
	assert.Equal(t, EffectUndefined, got)
}

func TestMajorityEffect(t *testing.T) {
	assert.Equal(t, EffectStimulation, MajorityEffect([]Effect{EffectStimulation, EffectStimulation, EffectInhibition}))
	assert.Equal(t, EffectBimodal, MajorityEffect([]Effect{EffectStimulation, EffectInhibition}))
	assert.Equal(t, EffectFormComplex, MajorityEffect([]Effect{EffectFormComplex, EffectFormComplex, EffectStimulation}))
	assert.Equal(t, EffectUndefined, MajorityEffect([]Effect{EffectUndefined, EffectUndefined, EffectStimulation}))
	assert.Equal(t, EffectUndefined, MajorityEffect(nil))
}
