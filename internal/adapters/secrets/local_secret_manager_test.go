package secrets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileSecretSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "terminals"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "terminals", "plain"), []byte("x4n35c32RT\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "terminals", "json"),
		[]byte(`{"value":"json-secret","tags":{"env":"sandbox"},"created_at":"2025-01-01T00:00:00Z"}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), []byte("\n"), 0o600))

	source := NewFileSecretSource(dir, zap.NewNop())
	ctx := context.Background()

	t.Run("plain text", func(t *testing.T) {
		secret, err := source.GetSecret(ctx, "terminals/plain")
		require.NoError(t, err)
		assert.Equal(t, "x4n35c32RT", secret.Value)
	})

	t.Run("json", func(t *testing.T) {
		secret, err := source.GetSecret(ctx, "terminals/json")
		require.NoError(t, err)
		assert.Equal(t, "json-secret", secret.Value)
		assert.Equal(t, "sandbox", secret.Metadata["env"])
		assert.Equal(t, "2025-01-01T00:00:00Z", secret.CreatedAt)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := source.GetSecret(ctx, "terminals/none")
		assert.ErrorContains(t, err, "secret not found")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := source.GetSecret(ctx, "empty")
		assert.Error(t, err)
	})

	t.Run("stays inside base directory", func(t *testing.T) {
		outside := filepath.Join(filepath.Dir(dir), "outside-secret")
		require.NoError(t, os.WriteFile(outside, []byte("leak"), 0o600))
		t.Cleanup(func() { _ = os.Remove(outside) })

		_, err := source.GetSecret(ctx, "../outside-secret")
		assert.Error(t, err)
	})
}

func TestEnvSecretSource(t *testing.T) {
	t.Setenv("WORLDNET_TEST_SECRET", "from-env")
	source := NewEnvSecretSource()

	secret, err := source.GetSecret(context.Background(), "WORLDNET_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "from-env", secret.Value)

	_, err = source.GetSecret(context.Background(), "WORLDNET_TEST_SECRET_UNSET")
	assert.Error(t, err)
}

func TestNewSource(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     SourceConfig
		wantErr bool
	}{
		{"env", SourceConfig{Kind: SourceEnv}, false},
		{"file", SourceConfig{Kind: SourceFile, SecretsDir: t.TempDir()}, false},
		{"file without dir", SourceConfig{Kind: SourceFile}, true},
		{"aws without config", SourceConfig{Kind: SourceAWS}, true},
		{"vault without config", SourceConfig{Kind: SourceVault}, true},
		{"unknown", SourceConfig{Kind: "gcp"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := NewSource(ctx, tt.cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, source)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, source)
		})
	}
}
