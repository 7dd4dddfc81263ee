package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
)

func TestUpstreamCascades(t *testing.T) {
	idx := edges(
		[2]string{"R1", "T1"}, [2]string{"R1", "T2"},
		[2]string{"U1", "R1"},
		[2]string{"V1", "U1"},
	)

	one := UpstreamCascades(idx, []string{"T1", "T2"}, 1, 1)
	assert.Equal(t, []interaction.Pair{{Source: "R1", Target: "T1"}, {Source: "R1", Target: "T2"}}, one.Edges)
	assert.Equal(t, 1, one.Rounds)
	assert.True(t, one.Complete)

	two := UpstreamCascades(idx, []string{"T1", "T2"}, 2, 1)
	assert.Contains(t, two.Edges, interaction.Pair{Source: "U1", Target: "R1"})
	assert.NotContains(t, two.Edges, interaction.Pair{Source: "V1", Target: "U1"}, "stops at the requested depth")
	assert.Equal(t, 2, two.Rounds)
}

func TestUpstreamCascadesSkipsIndirect(t *testing.T) {
	idx := edges([2]string{"R1", "T1"}, [2]string{"R1", "T2"}, [2]string{"R2", "T3"})

	res := UpstreamCascades(idx, []string{"T1", "T2", "T3"}, 1, 2)
	assert.Len(t, res.Edges, 3)
	assert.Contains(t, res.Skipped, interaction.Pair{Source: "R1", Target: "T3"})
}

func TestUpstreamCascadesNoRegulators(t *testing.T) {
	idx := edges([2]string{"A", "B"})

	res := UpstreamCascades(idx, []string{"A"}, 3, 1)
	assert.Empty(t, res.Edges)
	assert.False(t, res.Complete)
	assert.Equal(t, 1, res.Rounds)
}
