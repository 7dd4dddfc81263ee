package paths

import (
	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
)

// chain builds an index with a stimulation edge between each consecutive id.
func chain(ids ...string) *interaction.Index {
	var recs []interaction.Record
	for i := 0; i+1 < len(ids); i++ {
		recs = append(recs, interaction.Record{Source: ids[i], Target: ids[i+1], Directed: true, Stimulation: true})
	}
	return interaction.NewIndex(interaction.NewResource(recs))
}

func edges(pairs ...[2]string) *interaction.Index {
	var recs []interaction.Record
	for _, p := range pairs {
		recs = append(recs, interaction.Record{Source: p[0], Target: p[1], Directed: true, Stimulation: true})
	}
	return interaction.NewIndex(interaction.NewResource(recs))
}
