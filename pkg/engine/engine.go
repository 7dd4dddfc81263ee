// Package engine is the composition root of a growth session: one network,
// its growth strategies, the state history and the telemetry around them.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/sysbio-curie/Neko-sub000/pkg/config"
	"github.com/sysbio-curie/Neko-sub000/pkg/history"
	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/network"
	"github.com/sysbio-curie/Neko-sub000/pkg/phenotype"
	"github.com/sysbio-curie/Neko-sub000/pkg/storage"
	"github.com/sysbio-curie/Neko-sub000/pkg/strategy"
)

const instrumentationName = "neko/engine"

// Engine owns a network and checkpoints it after every mutating call. It is
// not safe for concurrent use.
type Engine struct {
	Network *network.Network
	Grower  *strategy.Grower
	History *history.Tree
	Logger  *slog.Logger
	Tracer  trace.Tracer

	config     config.Config
	translator network.Translator
	markers    phenotype.MarkerSource
	blobs      storage.BlobStore

	tracking  bool
	suspended int

	edgesAdded   metric.Int64Counter
	nodesRemoved metric.Int64Counter
	runs         metric.Int64Counter
	duration     metric.Float64Histogram
}

// Option defines a functional configuration override.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.Logger = l
		}
	}
}

// WithConfig sets the run configuration.
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) {
		e.config = cfg
		e.tracking = cfg.History.Enabled
	}
}

// WithTranslator sets the identifier translator used for node admission.
func WithTranslator(t network.Translator) Option {
	return func(e *Engine) {
		e.translator = t
	}
}

// WithMarkers sets the phenotype marker source.
func WithMarkers(src phenotype.MarkerSource) Option {
	return func(e *Engine) {
		e.markers = src
	}
}

// WithStore sets where history and exported models are persisted.
func WithStore(s storage.BlobStore) Option {
	return func(e *Engine) {
		e.blobs = s
	}
}

// New seeds a network over res and records the initial state.
func New(ctx context.Context, res *interaction.Resource, seeds []string, opts ...Option) (*Engine, error) {
	e := &Engine{
		Logger:   slog.Default(),
		Tracer:   otel.Tracer(instrumentationName),
		config:   config.Default(),
		tracking: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.config.Validate(); err != nil {
		return nil, err
	}
	if err := e.initMetrics(); err != nil {
		return nil, err
	}

	_, span := e.Tracer.Start(ctx, "Engine.New")
	defer span.End()

	netOpts := []network.Option{
		network.WithSeeds(seeds...),
		network.WithLogger(e.Logger),
		network.WithTranslator(e.translator),
	}
	if e.config.Resource.RejectUnresolved {
		netOpts = append(netOpts, network.WithUnresolved(network.Reject))
	}
	e.Network = network.New(res, netOpts...)
	e.Grower = strategy.NewGrower(e.Network)
	e.History = history.NewTree(history.WithMaxStates(e.config.History.MaxStates))

	span.SetAttributes(
		attribute.Int("neko.seeds", len(e.Network.Seeds())),
		attribute.Int("neko.resource.records", res.Len()),
	)
	if dropped := len(seeds) - len(e.Network.Seeds()); dropped > 0 {
		e.Logger.Warn("some seeds were not found in the resource", "requested", len(seeds), "dropped", dropped)
	}
	e.checkpoint("init", map[string]any{"seeds": e.Network.Seeds()})
	return e, nil
}

func (e *Engine) initMetrics() error {
	meter := otel.Meter(instrumentationName)
	var err error
	if e.edgesAdded, err = meter.Int64Counter("neko.edges.added",
		metric.WithDescription("Edges spliced into the network by growth strategies.")); err != nil {
		return fmt.Errorf("create metric: %w", err)
	}
	if e.nodesRemoved, err = meter.Int64Counter("neko.nodes.removed",
		metric.WithDescription("Nodes pruned by growth strategies.")); err != nil {
		return fmt.Errorf("create metric: %w", err)
	}
	if e.runs, err = meter.Int64Counter("neko.strategy.runs"); err != nil {
		return fmt.Errorf("create metric: %w", err)
	}
	if e.duration, err = meter.Float64Histogram("neko.strategy.duration", metric.WithUnit("s")); err != nil {
		return fmt.Errorf("create metric: %w", err)
	}
	return nil
}

// Config returns the engine configuration.
func (e *Engine) Config() config.Config {
	return e.config
}

// Options returns strategy options derived from the growth configuration.
func (e *Engine) Options() strategy.Options {
	g := e.config.Growth
	algo, _ := strategy.ParseAlgorithm(g.Algorithm)
	return strategy.Options{
		MaxLen:          g.MaxLen,
		OnlySigned:      g.OnlySigned,
		Consensus:       g.Consensus,
		Loops:           g.Loops,
		Minimal:         g.Minimal,
		Algorithm:       algo,
		ConnectWithBias: g.ConnectWithBias,
	}
}

// run wraps one strategy call with a span, metrics, panic recovery and a
// checkpoint.
func (e *Engine) run(ctx context.Context, name string, args map[string]any, fn func() strategy.Report) (rep strategy.Report) {
	ctx, span := e.Tracer.Start(ctx, "strategy."+name)
	defer span.End()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			e.recoverPanic(span, r)
			rep = strategy.Report{Strategy: name, Incomplete: true}
		}
	}()

	rep = fn()

	attrs := metric.WithAttributes(attribute.String("strategy", name))
	e.runs.Add(ctx, 1, attrs)
	e.edgesAdded.Add(ctx, int64(rep.EdgesAdded), attrs)
	e.nodesRemoved.Add(ctx, int64(len(rep.NodesRemoved)), attrs)
	e.duration.Record(ctx, time.Since(start).Seconds(), attrs)

	span.SetAttributes(
		attribute.Int("neko.edges_added", rep.EdgesAdded),
		attribute.Int("neko.nodes_removed", len(rep.NodesRemoved)),
		attribute.Int("neko.unconnected", len(rep.Unconnected)),
		attribute.Bool("neko.incomplete", rep.Incomplete),
	)
	e.Logger.Info("strategy finished", "strategy", name,
		"edges_added", rep.EdgesAdded, "unconnected", len(rep.Unconnected), "incomplete", rep.Incomplete,
		"nodes", e.Network.NodeCount(), "edges", e.Network.EdgeCount())

	e.checkpoint(name, args)
	return rep
}

// recoverPanic records a strategy crash on its span. The network may be
// partially mutated; callers can Undo to the last checkpoint.
func (e *Engine) recoverPanic(span trace.Span, r any) {
	stack := debug.Stack()
	span.RecordError(fmt.Errorf("%v", r), trace.WithStackTrace(true))
	span.SetStatus(codes.Error, "strategy panic")
	span.SetAttributes(attribute.String("crash.reason", fmt.Sprintf("%v", r)))
	e.Logger.Error("strategy panicked", "error", r, "stack", string(stack))
}
