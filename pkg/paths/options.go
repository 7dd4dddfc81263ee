// Package paths implements the search algorithms used to grow a network:
// bounded breadth-first search, explicit-stack path enumeration, greedy
// minimal covering regulators and upstream cascade expansion.
//
// Every function is pure over a Graph and runs to completion; bounding is
// achieved only through length and depth parameters.
package paths

import (
	"log/slog"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
)

// DefaultMaxLen caps BFS when no explicit bound is given.
const DefaultMaxLen = 10

// DefaultEnumerateMaxLen is the path enumeration bound when none is given.
const DefaultEnumerateMaxLen = 2

// Graph is the adjacency view the algorithms search. *interaction.Index
// satisfies it.
type Graph interface {
	Neighbours(id string, dir interaction.Direction) []string
	IsSigned(src, tgt string, consensus bool) bool
	Has(src, tgt string) bool
}

// Options controls a search.
type Options struct {
	MaxLen     int
	MinLen     int
	Unbounded  bool
	OnlySigned bool
	Consensus  bool
	Loops      bool
	Logger     *slog.Logger
}

// Option configures a search.
type Option func(*Options)

// WithMaxLen bounds the path length in edges. Non-positive values are ignored.
func WithMaxLen(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxLen = n
		}
	}
}

// WithMinLen sets the minimum qualifying path length in edges.
func WithMinLen(n int) Option {
	return func(o *Options) {
		o.MinLen = n
	}
}

// Unbounded lifts the implicit BFS depth cap when no MaxLen is given.
func Unbounded() Option {
	return func(o *Options) {
		o.Unbounded = true
	}
}

// WithOnlySigned skips edges classified undefined.
func WithOnlySigned(v bool) Option {
	return func(o *Options) {
		o.OnlySigned = v
	}
}

// WithConsensus classifies edges using consensus flags.
func WithConsensus(v bool) Option {
	return func(o *Options) {
		o.Consensus = v
	}
}

// WithLoops makes path enumeration return closed walks back to the origin.
func WithLoops(v bool) Option {
	return func(o *Options) {
		o.Loops = v
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func buildOptions(opts []Option) Options {
	o := Options{MinLen: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.MinLen < 1 {
		o.MinLen = 1
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func (o Options) traversable(g Graph, src, tgt string) bool {
	return !o.OnlySigned || g.IsSigned(src, tgt, o.Consensus)
}
