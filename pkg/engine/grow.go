package engine

import (
	"context"
	"errors"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/strategy"
)

// ErrNoMarkerSource is returned by ConnectToPhenotype without WithMarkers.
var ErrNoMarkerSource = errors.New("engine: no phenotype marker source configured")

// misuse logs a rejected argument and returns the no-op report.
func (e *Engine) misuse(name string, err error) (strategy.Report, error) {
	e.Logger.Error("strategy not run", "strategy", name, "error", err)
	return strategy.Report{Strategy: name, Incomplete: true}, err
}

func optionArgs(o strategy.Options) map[string]any {
	return map[string]any{
		"maxlen":      o.MaxLen,
		"only_signed": o.OnlySigned,
		"consensus":   o.Consensus,
		"algorithm":   o.Algorithm.String(),
		"minimal":     o.Minimal,
	}
}

// ConnectNodes adds every direct interaction between current nodes.
func (e *Engine) ConnectNodes(ctx context.Context, o strategy.Options) strategy.Report {
	return e.run(ctx, "connect_nodes", optionArgs(o), func() strategy.Report {
		return e.Grower.ConnectNodes(o)
	})
}

// CompleteConnection connects every ordered pair of current nodes by paths.
func (e *Engine) CompleteConnection(ctx context.Context, o strategy.Options) strategy.Report {
	return e.run(ctx, "complete_connection", optionArgs(o), func() strategy.Report {
		return e.Grower.CompleteConnection(o)
	})
}

// ConnectSubgroup connects every pair within group.
func (e *Engine) ConnectSubgroup(ctx context.Context, group []string, o strategy.Options) strategy.Report {
	args := optionArgs(o)
	args["group"] = group
	return e.run(ctx, "connect_subgroup", args, func() strategy.Report {
		return e.Grower.ConnectSubgroup(group, o)
	})
}

// ConnectComponent parses mode as a direction (OUT, IN or ALL). An unknown
// mode leaves the network untouched.
func (e *Engine) ConnectComponent(ctx context.Context, a, b []string, mode string, o strategy.Options) (strategy.Report, error) {
	dir, err := interaction.ParseDirection(mode)
	if err != nil {
		return e.misuse("connect_component", err)
	}
	args := optionArgs(o)
	args["a"], args["b"], args["mode"] = a, b, dir.String()
	return e.run(ctx, "connect_component", args, func() strategy.Report {
		return e.Grower.ConnectComponent(a, b, dir, o)
	}), nil
}

// ConnectRadially grows outward from the seeds up to maxLen hops.
func (e *Engine) ConnectRadially(ctx context.Context, maxLen int, mode string, o strategy.Options) (strategy.Report, error) {
	dir, err := interaction.ParseDirection(mode)
	if err != nil {
		return e.misuse("connect_network_radially", err)
	}
	args := optionArgs(o)
	args["max_len"], args["direction"] = maxLen, dir.String()
	return e.run(ctx, "connect_network_radially", args, func() strategy.Report {
		return e.Grower.ConnectRadially(maxLen, dir, o)
	}), nil
}

// ConnectUpstream splices regulator cascades of targets, depth rounds deep.
func (e *Engine) ConnectUpstream(ctx context.Context, targets []string, depth, rank int, o strategy.Options) strategy.Report {
	args := optionArgs(o)
	args["targets"], args["depth"], args["rank"] = targets, depth, rank
	return e.run(ctx, "connect_to_upstream_nodes", args, func() strategy.Report {
		return e.Grower.ConnectUpstream(targets, depth, rank, o)
	})
}

// ConnectAsAtopo applies the named baseline strategy towards outputs.
func (e *Engine) ConnectAsAtopo(ctx context.Context, baseline string, maxLen int, outputs []string, o strategy.Options) (strategy.Report, error) {
	b, err := strategy.ParseBaseline(baseline)
	if err != nil {
		return e.misuse("connect_as_atopo", err)
	}
	args := optionArgs(o)
	args["strategy"], args["max_len"], args["outputs"] = b.String(), maxLen, outputs
	return e.run(ctx, "connect_as_atopo", args, func() strategy.Report {
		return e.Grower.ConnectAsAtopo(b, maxLen, outputs, o)
	}), nil
}

// ConnectToPhenotype needs a marker source. A failing lookup leaves the
// network untouched.
func (e *Engine) ConnectToPhenotype(ctx context.Context, req strategy.PhenotypeRequest, o strategy.Options) (strategy.Report, error) {
	const name = "connect_genes_to_phenotype"
	if e.markers == nil {
		return e.misuse(name, ErrNoMarkerSource)
	}
	args := optionArgs(o)
	args["phenotype"], args["accession"], args["compress"] = req.Name, req.Accession, req.Compress

	var err error
	rep := e.run(ctx, name, args, func() strategy.Report {
		var r strategy.Report
		r, err = e.Grower.ConnectToPhenotype(ctx, e.markers, req, o)
		return r
	})
	return rep, err
}
