package ports

import (
	"context"
)

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string            // The secret value (the terminal's shared secret)
	Version   string            // Secret version identifier
	Metadata  map[string]string // Additional secret metadata
	CreatedAt string            // When this version was created
}

// SecretSource retrieves the gateway shared secret from a secret backend.
// Implementations: environment, local file, AWS Secrets Manager, HashiCorp Vault.
// Path format depends on implementation:
//   - env:   variable name, e.g. "WORLDNET_SECRET"
//   - file:  path relative to the secrets directory
//   - AWS:   secret name or ARN, e.g. "worldnet/terminals/{terminal_id}"
//   - Vault: KV path under the mount, e.g. "worldnet/terminals/{terminal_id}"
type SecretSource interface {
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
