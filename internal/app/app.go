// Package app wires configuration, the catalog, and the interactive front
// end into a running storefront.
package app

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"storefront/internal/cli"
)

// Run loads the catalog, builds the store, and drives the interactive menu
// until the user quits or the context is cancelled. It is the single wiring
// point for the application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	cat := DefaultCatalog()
	if cfg.CatalogPath != "" {
		loaded, err := LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return errors.Wrap(err, "load catalog")
		}
		cat = loaded
	}

	st, counter, err := BuildStore(lg, cat)
	if err != nil {
		return errors.Wrap(err, "build store")
	}
	lg.Info("catalog loaded",
		zap.Int("products", len(cat.Products)),
		zap.Int("promotions", len(cat.Promotions)),
		zap.Int64("units", counter.Total()))

	front := cli.New(st, os.Stdin, os.Stdout, lg)
	if err := front.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "menu loop")
	}
	return nil
}
