package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/sysbio-curie/Neko-sub000/pkg/engine"
	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/storage"
)

var (
	errNoResource = errors.New("no resource table configured (use --resource or resource.path)")
	errNoStore    = errors.New("no store configured (use --store or history.store)")
)

func openStore(ctx context.Context) (storage.BlobStore, error) {
	if cfg.History.Store == "" {
		return nil, nil
	}
	return storage.Open(ctx, cfg.History.Store)
}

func loadResource() (*interaction.Resource, error) {
	if cfg.Resource.Path == "" {
		return nil, errNoResource
	}
	return engine.LoadResource(cfg.Resource, logger)
}

// openEngine builds a session over the configured resource. With resume set
// and a store configured, the stored history replaces the fresh one.
func openEngine(ctx context.Context, seeds []string, resume bool) (*engine.Engine, error) {
	res, err := loadResource()
	if err != nil {
		return nil, err
	}
	tr, err := engine.LoadTranslator(cfg.Resource)
	if err != nil {
		return nil, fmt.Errorf("load translation table: %w", err)
	}
	markers, err := engine.LoadMarkers(cfg.Resource)
	if err != nil {
		return nil, fmt.Errorf("load phenotype markers: %w", err)
	}
	store, err := openStore(ctx)
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithConfig(cfg),
		engine.WithTranslator(tr),
		engine.WithMarkers(markers),
	}
	if store != nil {
		opts = append(opts, engine.WithStore(store))
	}
	e, err := engine.New(ctx, res, seeds, opts...)
	if err != nil {
		return nil, err
	}

	if resume && store != nil {
		ok, err := e.Resume(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Info("no stored history, starting fresh", "store", cfg.History.Store, "key", cfg.History.Key)
		}
	}
	return e, nil
}
