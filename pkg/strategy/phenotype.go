package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/network"
	"github.com/sysbio-curie/Neko-sub000/pkg/phenotype"
)

// PhenotypeReference is attached to edges that link genes to a compressed
// phenotype node.
const PhenotypeReference = "Gene Ontology"

// PhenotypeRequest names a phenotype and how to connect it.
type PhenotypeRequest struct {
	Name      string
	Accession string
	// Genes restricts the connected genes; empty means every current node.
	Genes []string
	// Compress collapses the phenotype's marker nodes into a single node.
	Compress bool
}

// ConnectToPhenotype connects the network's genes towards the phenotype's
// marker genes. An empty marker set aborts with an Incomplete report.
func (g *Grower) ConnectToPhenotype(ctx context.Context, src phenotype.MarkerSource, req PhenotypeRequest, o Options) (Report, error) {
	rep := Report{Strategy: "connect_genes_to_phenotype"}

	markers, err := src.Markers(ctx, req.Name, req.Accession)
	if err != nil {
		return rep, fmt.Errorf("fetch markers: %w", err)
	}
	if len(markers) == 0 {
		g.logger.Warn("no markers found for phenotype", "name", req.Name, "accession", req.Accession)
		rep.Incomplete = true
		return rep, nil
	}

	genes := g.canonical(req.Genes)
	if len(genes) == 0 {
		genes = g.net.NodeIDs()
	}
	inGenes := make(map[string]bool, len(genes))
	for _, id := range genes {
		inGenes[id] = true
	}

	var unique, common []string
	for _, m := range g.canonical(markers) {
		if inGenes[m] {
			common = append(common, m)
		} else {
			unique = append(unique, m)
		}
	}

	g.logger.Info("connecting network to phenotype markers", "phenotype", req.Name, "markers", len(markers))
	rep.merge(g.ConnectComponent(genes, unique, interaction.Out, o))

	if req.Compress {
		label := req.Name
		if label == "" {
			label = req.Accession
		}
		node := strings.ReplaceAll(label, " ", "_")
		rep.EdgesAdded += g.compress(unique, common, node)
	}
	return rep, nil
}

// compress redirects every edge touching a marker node to the phenotype
// node, keeping the first edge per (source, target), then links common
// genes to it.
func (g *Grower) compress(markers, common []string, node string) int {
	isMarker := make(map[string]bool, len(markers))
	for _, m := range markers {
		isMarker[m] = true
	}

	var redirected []network.Edge
	for _, e := range g.net.Edges() {
		if !isMarker[e.Source] && !isMarker[e.Target] {
			continue
		}
		if isMarker[e.Source] {
			e.Source = node
		}
		if isMarker[e.Target] {
			e.Target = node
		}
		redirected = append(redirected, e)
	}
	for _, m := range markers {
		if !g.net.IsSeed(m) {
			g.net.RemoveNode(m)
		}
	}

	added := 0
	for _, e := range redirected {
		if e.Source == e.Target || g.net.HasEdge(e.Source, e.Target) {
			continue
		}
		if _, ok := g.net.Insert(e); ok {
			added++
		}
	}
	for _, gene := range common {
		if g.net.HasEdge(gene, node) {
			continue
		}
		_, ok := g.net.Insert(network.Edge{
			Source:     gene,
			Target:     node,
			Effect:     interaction.EffectStimulation,
			References: []string{PhenotypeReference},
			Provenance: []string{"connect_genes_to_phenotype"},
		})
		if ok {
			added++
		}
	}
	return added
}
