package network

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
)

// FromSIF builds a network from SIF triples (source, interaction, target).
// Every node named in the file becomes a seed. Nodes are kept even when the
// Resource does not know them; untranslatable ids follow the unresolved policy.
func FromSIF(r io.Reader, res *interaction.Resource, opts ...Option) (*Network, error) {
	n := New(res, opts...)
	if err := n.LoadSIF(r); err != nil {
		return nil, err
	}
	for _, id := range n.NodeIDs() {
		if !n.seeds[id] {
			n.seeds[id] = true
			n.seedOrder = append(n.seedOrder, id)
		}
	}
	return n, nil
}

// LoadSIF reads SIF triples into the network. Lines starting with '#' are
// comments. Unknown interaction tokens load as undefined with a warning.
func (n *Network) LoadSIF(r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) < 3 {
			fields = strings.Fields(text)
		}
		switch len(fields) {
		case 1:
			n.addNodeVerbatim(strings.TrimSpace(fields[0]))
			continue
		case 2:
			n.logger.Warn("malformed SIF line", "line", line, "text", text)
			continue
		}

		src := strings.TrimSpace(fields[0])
		tgt := strings.TrimSpace(fields[2])
		effect, ok := interaction.ParseEffect(fields[1])
		if !ok {
			n.logger.Warn("unknown SIF interaction, loading as undefined", "line", line, "interaction", fields[1])
		}
		n.Insert(Edge{Source: src, Target: tgt, Effect: effect, References: n.res.References(src, tgt)})
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read sif: %w", err)
	}
	return nil
}
