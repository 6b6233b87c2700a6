package secrets

import (
	"context"
	"fmt"
	"os"

	"github.com/kevin07696/worldnet-gateway/internal/adapters/ports"
)

// envSecretSource reads the secret from an environment variable named by path
type envSecretSource struct {
	lookup func(string) (string, bool)
}

// NewEnvSecretSource creates a SecretSource backed by the process environment
func NewEnvSecretSource() ports.SecretSource {
	return &envSecretSource{lookup: os.LookupEnv}
}

func (s *envSecretSource) GetSecret(_ context.Context, path string) (*ports.Secret, error) {
	value, ok := s.lookup(path)
	if !ok || value == "" {
		return nil, fmt.Errorf("secret not found: environment variable %s is not set", path)
	}
	return &ports.Secret{
		Value:    value,
		Version:  "env",
		Metadata: map[string]string{"variable": path},
	}, nil
}
