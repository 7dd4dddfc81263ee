package engine

import (
	"context"

	"github.com/sysbio-curie/Neko-sub000/pkg/export"
)

// Export renders the network in format f and uploads it under key.
func (e *Engine) Export(ctx context.Context, f export.Format, key string) error {
	if e.blobs == nil {
		return ErrNoStore
	}
	ctx, span := e.Tracer.Start(ctx, "Engine.Export")
	defer span.End()

	if err := export.Save(ctx, e.blobs, key, f, e.Network, export.WithLogger(e.Logger)); err != nil {
		span.RecordError(err)
		e.Logger.Warn("failed to export model", "key", key, "format", f, "error", err)
		return err
	}
	e.Logger.Info("model exported", "key", key, "format", f)
	return nil
}
