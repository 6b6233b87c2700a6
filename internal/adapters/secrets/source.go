package secrets

import (
	"context"
	"fmt"

	"github.com/kevin07696/worldnet-gateway/internal/adapters/ports"
	"go.uber.org/zap"
)

// Source kinds
const (
	SourceEnv   = "env"
	SourceFile  = "file"
	SourceAWS   = "aws"
	SourceVault = "vault"
)

// SourceConfig selects and configures a secret backend
type SourceConfig struct {
	Kind string

	// SecretsDir is the base directory of the file source
	SecretsDir string

	AWS   *AWSSecretsManagerConfig
	Vault *VaultConfig
}

// NewSource builds the SecretSource selected by cfg.Kind
func NewSource(ctx context.Context, cfg SourceConfig, logger *zap.Logger) (ports.SecretSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Kind {
	case SourceEnv:
		return NewEnvSecretSource(), nil
	case SourceFile:
		if cfg.SecretsDir == "" {
			return nil, fmt.Errorf("secrets directory is required for the file source")
		}
		return NewFileSecretSource(cfg.SecretsDir, logger), nil
	case SourceAWS:
		if cfg.AWS == nil {
			return nil, fmt.Errorf("AWS configuration is required for the aws source")
		}
		return NewAWSSecretsManagerSource(ctx, cfg.AWS, logger)
	case SourceVault:
		if cfg.Vault == nil {
			return nil, fmt.Errorf("Vault configuration is required for the vault source")
		}
		return NewVaultSecretSource(ctx, cfg.Vault, logger)
	default:
		return nil, fmt.Errorf("unsupported secret source: %q", cfg.Kind)
	}
}
