package main

import (
	"context"
	"fmt"

	"github.com/kevin07696/worldnet-gateway/internal/adapters/secrets"
	"github.com/kevin07696/worldnet-gateway/internal/config"
	"go.uber.org/zap"
)

// resolveSecret returns the terminal secret from the configured source.
// Without WORLDNET_SECRET_SOURCE the secret is taken from WORLDNET_SECRET and "" is returned.
func resolveSecret(ctx context.Context, cfg *config.Config, logger *zap.Logger) (string, error) {
	if cfg.Secrets.Source == "" {
		return "", nil
	}

	source, err := secrets.NewSource(ctx, cfg.Secrets.SourceConfig(), logger)
	if err != nil {
		return "", fmt.Errorf("failed to initialize %s secret source: %w", cfg.Secrets.Source, err)
	}

	secret, err := source.GetSecret(ctx, cfg.Secrets.Path)
	if err != nil {
		return "", err
	}

	logger.Info("Terminal secret resolved",
		zap.String("source", cfg.Secrets.Source),
		zap.String("path", cfg.Secrets.Path),
		zap.String("version", secret.Version),
	)
	return secret.Value, nil
}
