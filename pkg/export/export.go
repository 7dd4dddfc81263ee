// Package export writes a network's node and edge tables in formats consumed
// by downstream modelling tools.
package export

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/network"
	"github.com/sysbio-curie/Neko-sub000/pkg/storage"
)

var (
	// ErrEmptyNetwork is returned when there is nothing to export.
	ErrEmptyNetwork = errors.New("export: network has no nodes or edges")

	// ErrUnknownFormat is returned by ParseFormat.
	ErrUnknownFormat = errors.New("export: unknown format")
)

// Format is an export file format.
type Format string

const (
	SIF  Format = "sif"
	BNET Format = "bnet"
)

// ParseFormat accepts "sif" or "bnet".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case SIF, BNET:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Options control how identifiers are written.
type Options struct {
	// UseIDs writes canonical ids instead of display labels.
	UseIDs bool
	Logger *slog.Logger
}

// Option configures an export.
type Option func(*Options)

// WithIDs writes canonical ids instead of display labels.
func WithIDs() Option {
	return func(o *Options) { o.UseIDs = true }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func buildOptions(net *network.Network, opts []Option) Options {
	o := Options{Logger: net.Logger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// namer maps node ids to the names written out.
func (o Options) namer(net *network.Network) func(string) string {
	return func(id string) string {
		if o.UseIDs {
			return id
		}
		if n, ok := net.Node(id); ok && n.Label != "" {
			return n.Label
		}
		return id
	}
}

// Write dispatches to the writer for f.
func Write(w io.Writer, f Format, net *network.Network, opts ...Option) error {
	switch f {
	case SIF:
		return WriteSIF(w, net, opts...)
	case BNET:
		return WriteBNET(w, net, opts...)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Save renders net in format f and stores it under key.
func Save(ctx context.Context, store storage.BlobStore, key string, f Format, net *network.Network, opts ...Option) error {
	var buf bytes.Buffer
	if err := Write(&buf, f, net, opts...); err != nil {
		return err
	}
	if err := store.Put(ctx, key, buf.Bytes()); err != nil {
		return fmt.Errorf("export %s: %w", key, err)
	}
	return nil
}

// WriteSIF writes one "source<TAB>effect<TAB>target" line per edge, each
// preceded by a comment carrying the edge's references.
func WriteSIF(w io.Writer, net *network.Network, opts ...Option) error {
	edges := net.Edges()
	if len(edges) == 0 {
		return ErrEmptyNetwork
	}
	name := buildOptions(net, opts).namer(net)

	bw := bufio.NewWriter(w)
	for _, e := range edges {
		fmt.Fprintf(bw, "# Reference PMID: %s\n", strings.Join(e.References, ";"))
		fmt.Fprintf(bw, "%s\t%s\t%s\n", name(e.Source), e.Effect, name(e.Target))
	}
	return bw.Flush()
}

// WriteBNET writes one BoolNet rule per node. Complex-forming sources are
// AND-ed, activators OR-ed and inhibitors OR-ed under a negation; the parts
// are then AND-ed. Bimodal edges count as both activating and inhibiting.
// Undefined edges are left out with a warning. A node without regulators
// keeps its own value.
func WriteBNET(w io.Writer, net *network.Network, opts ...Option) error {
	if net.NodeCount() == 0 || net.EdgeCount() == 0 {
		return ErrEmptyNetwork
	}
	o := buildOptions(net, opts)
	name := o.namer(net)

	type regulators struct{ complexes, on, off []string }
	regs := make(map[string]*regulators)
	for _, e := range net.Edges() {
		r, ok := regs[e.Target]
		if !ok {
			r = &regulators{}
			regs[e.Target] = r
		}
		src := name(e.Source)
		switch e.Effect {
		case interaction.EffectFormComplex:
			r.complexes = append(r.complexes, src)
		case interaction.EffectStimulation:
			r.on = append(r.on, src)
		case interaction.EffectInhibition:
			r.off = append(r.off, src)
		case interaction.EffectBimodal:
			o.Logger.Warn("bimodal interaction exported as both activating and inhibiting",
				"source", e.Source, "target", e.Target, "references", e.References)
			r.on = append(r.on, src)
			r.off = append(r.off, src)
		default:
			o.Logger.Warn("undefined interaction left out of the model",
				"source", e.Source, "target", e.Target, "references", e.References)
		}
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("# model in BoolNet format\n")
	bw.WriteString("targets, factors\n")
	for _, id := range net.NodeIDs() {
		var parts []string
		if r, ok := regs[id]; ok {
			if len(r.complexes) > 0 {
				parts = append(parts, "("+strings.Join(r.complexes, " & ")+")")
			}
			if len(r.on) > 0 {
				parts = append(parts, "("+strings.Join(r.on, " | ")+")")
			}
			if len(r.off) > 0 {
				parts = append(parts, "!("+strings.Join(r.off, " | ")+")")
			}
		}
		rule := name(id)
		if len(parts) > 0 {
			rule = strings.Join(parts, " & ")
		}
		fmt.Fprintf(bw, "%s, %s\n", name(id), rule)
	}
	return bw.Flush()
}
