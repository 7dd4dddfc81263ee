package translate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/network"
)

const table = `canonical	label	aliases
# human kinases
P31749	AKT1	PKB;RAC
P42345	MTOR
Q9Y243	AKT3
`

func TestTableTranslate(t *testing.T) {
	entries, err := LoadTSV(strings.NewReader(table))
	require.NoError(t, err)
	tab := NewTable(entries)

	for _, id := range []string{"P31749", "akt1", "PKB"} {
		tr := tab.Translate(id)
		assert.Equal(t, "P31749", tr.Canonical, id)
		assert.Equal(t, "AKT1", tr.Label, id)
	}

	assert.True(t, tab.Translate("GHOST").Unresolved())
}

func TestTableComplex(t *testing.T) {
	entries, err := LoadTSV(strings.NewReader(table))
	require.NoError(t, err)
	tab := NewTable(entries)

	tr := tab.Translate("COMPLEX:P31749_P42345")
	assert.Equal(t, "COMPLEX:AKT1_MTOR", tr.Complex)
	assert.Equal(t, "COMPLEX:P31749_P42345", tr.Canonical)
	assert.Equal(t, "complex", tr.Kind)

	assert.True(t, tab.Translate("COMPLEX:P31749_P99999").Unresolved())
}

func TestLoadTSVErrors(t *testing.T) {
	_, err := LoadTSV(strings.NewReader("P31749\n"))
	assert.ErrorContains(t, err, "line 1")
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.yaml")
	doc := "- canonical: P31749\n  label: AKT1\n  aliases: [PKB]\n- canonical: P42345\n  label: MTOR\n  kind: protein\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	tab, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "protein", tab.Translate("mtor").Kind)
	assert.Equal(t, "P31749", tab.Translate("pkb").Canonical)
}

func TestTableWithNetwork(t *testing.T) {
	entries, err := LoadTSV(strings.NewReader(table))
	require.NoError(t, err)
	res := interaction.NewResource([]interaction.Record{
		{Source: "P31749", Target: "P42345", Directed: true, Stimulation: true},
	})

	net := network.New(res, network.WithSeeds("AKT1", "MTOR"), network.WithTranslator(NewTable(entries)))
	assert.Equal(t, []string{"P31749", "P42345"}, net.Seeds())
	node, ok := net.Node("P31749")
	require.True(t, ok)
	assert.Equal(t, "AKT1", node.Label)

	assert.Equal(t, "X", Identity.Translate("X").Canonical)
}
