package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevin07696/worldnet-gateway/internal/adapters/ports"
	"go.uber.org/zap"
)

// fileSecretSource reads secrets from files under a base directory.
// WARNING: This is for development only. Use AWS Secrets Manager or Vault in production.
type fileSecretSource struct {
	basePath string
	logger   *zap.Logger
}

// NewFileSecretSource creates a SecretSource reading files under basePath
func NewFileSecretSource(basePath string, logger *zap.Logger) ports.SecretSource {
	return &fileSecretSource{
		basePath: basePath,
		logger:   logger,
	}
}

// GetSecret reads the file at basePath/secretPath. Both plain text and
// {"value": "...", "tags": {...}, "created_at": "..."} JSON are accepted.
func (m *fileSecretSource) GetSecret(_ context.Context, secretPath string) (*ports.Secret, error) {
	filePath := filepath.Join(m.basePath, filepath.Clean("/"+secretPath))

	m.logger.Debug("Reading secret from filesystem",
		zap.String("path", secretPath),
	)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("secret not found: %s", secretPath)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	value, metadata := parseSecretValue(data)
	if value == "" {
		return nil, fmt.Errorf("secret %s is empty", secretPath)
	}

	return &ports.Secret{
		Value:     value,
		Version:   "v1",
		Metadata:  metadata,
		CreatedAt: metadata["created_at"],
	}, nil
}

// parseSecretValue extracts the secret from a JSON document with a "value" key,
// falling back to the raw text without its trailing newline
func parseSecretValue(data []byte) (string, map[string]string) {
	metadata := make(map[string]string)

	var secretData struct {
		Value     string            `json:"value"`
		Tags      map[string]string `json:"tags"`
		CreatedAt string            `json:"created_at"`
	}
	if err := json.Unmarshal(data, &secretData); err == nil && secretData.Value != "" {
		for k, v := range secretData.Tags {
			metadata[k] = v
		}
		if secretData.CreatedAt != "" {
			metadata["created_at"] = secretData.CreatedAt
		}
		return secretData.Value, metadata
	}

	return strings.TrimRight(string(data), "\r\n"), metadata
}
