package interaction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceLookup(t *testing.T) {
	res := NewResource([]Record{
		{Source: "A", Target: "B", Stimulation: true, References: []string{"PMID:1"}},
		{Source: "A", Target: "B", Inhibition: true, References: []string{"PMID:2", "PMID:1"}},
		{Source: "", Target: "B"},
	})

	assert.Equal(t, 2, res.Len())
	assert.Len(t, res.Lookup("A", "B"), 2)
	assert.Empty(t, res.Lookup("B", "A"))

	first, ok := res.First("A", "B")
	require.True(t, ok)
	assert.Equal(t, EffectStimulation, first.Effect(false))
	assert.Equal(t, []string{"PMID:1", "PMID:2"}, res.References("A", "B"))
	assert.True(t, res.Contains("B"))
	assert.False(t, res.Contains(""))
}

func TestResourceAggregate(t *testing.T) {
	res := NewResource([]Record{
		{Source: "A", Target: "B", Stimulation: true, CurationEffort: 1},
		{Source: "A", Target: "B", Stimulation: true, CurationEffort: 2},
		{Source: "A", Target: "B", Inhibition: true, CurationEffort: 1},
		{Source: "B", Target: "C", FormComplex: true},
	}).Aggregate()

	require.Equal(t, 2, res.Len())
	ab, _ := res.First("A", "B")
	assert.Equal(t, EffectStimulation, ab.Effect(false))
	assert.Equal(t, 4, ab.CurationEffort)
	bc, _ := res.First("B", "C")
	assert.Equal(t, EffectFormComplex, bc.Effect(false))
}

func TestResourceFilter(t *testing.T) {
	res := NewResource([]Record{
		{Source: "A", Target: "B", Stimulation: true},
		{Source: "B", Target: "C"},
	})
	signed := res.Filter(func(r Record) bool { return r.Effect(false).Signed() })
	assert.Equal(t, 1, signed.Len())
	assert.False(t, signed.Contains("C"))
}

func TestReadTable(t *testing.T) {
	const table = `source	target	is_directed	is_stimulation	is_inhibition	form_complex	references	curation_effort
# comment rows are ignored
P1	P2	1	1	0	0	PMID:1;PMID:2	3
P2	P3	True	False	True	False		x
	P4	1	1	0	0		
`
	recs, err := ReadTable(strings.NewReader(table), '\t', nil)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, []string{"PMID:1", "PMID:2"}, recs[0].References)
	assert.Equal(t, 3, recs[0].CurationEffort)
	assert.Equal(t, EffectInhibition, recs[1].Effect(false))
	assert.Equal(t, 0, recs[1].CurationEffort)

	res := NewResource(recs)
	p2p3, _ := res.First("P2", "P3")
	assert.True(t, p2p3.ConsensusInhibition, "consensus mirrors plain when columns are absent")
}

func TestReadTableEmpty(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""), ',', nil)
	assert.ErrorIs(t, err, ErrNoHeader)
}
