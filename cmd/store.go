package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sniftern/internguard/internal/company"
	"github.com/sniftern/internguard/internal/config"
	"github.com/sniftern/internguard/internal/extract"
	"github.com/sniftern/internguard/internal/store"
	"github.com/sniftern/internguard/pkg/anthropic"
)

// openStore builds the configured store backend and runs migrations.
func openStore(ctx context.Context, cfg *config.Config) (company.Store, error) {
	var (
		s   company.Store
		err error
	)

	switch cfg.Store.Driver {
	case "sqlite", "":
		s, err = store.NewSQLite(cfg.Store.SQLitePath)
	case "postgres":
		s, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "memory":
		s = store.NewMem()
	default:
		return nil, eris.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "open store %s", cfg.Store.Driver)
	}

	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	zap.L().Debug("store ready", zap.String("driver", cfg.Store.Driver))
	return s, nil
}

// newExtractor builds the configured text extractor.
func newExtractor(cfg *config.Config) (extract.Extractor, error) {
	switch cfg.Extract.Provider {
	case "heuristic", "":
		return extract.NewHeuristicExtractor(), nil
	case "anthropic":
		if cfg.Extract.AnthropicKey == "" {
			return nil, eris.New("extract.anthropic_key is required for the anthropic provider")
		}
		client := anthropic.NewClient(cfg.Extract.AnthropicKey)
		return extract.NewLLMExtractor(client, cfg.Extract.Model), nil
	default:
		return nil, eris.Errorf("unknown extract provider: %s", cfg.Extract.Provider)
	}
}
