package http

import (
	"crypto/tls"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_AppliesConfig(t *testing.T) {
	cfg := GatewayClientConfig()

	client := NewHTTPClient(cfg, 30*time.Second)

	assert.Equal(t, 30*time.Second, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, cfg.MaxIdleConnsPerHost, transport.MaxIdleConnsPerHost)
	assert.Equal(t, cfg.MaxConnsPerHost, transport.MaxConnsPerHost)
	assert.True(t, transport.DisableCompression)
	assert.Equal(t, uint16(tls.VersionTLS12), transport.TLSClientConfig.MinVersion)
}

func TestGatewayClientConfig_SingleHostPool(t *testing.T) {
	cfg := GatewayClientConfig()

	assert.Equal(t, cfg.MaxIdleConns, cfg.MaxIdleConnsPerHost)
	assert.False(t, cfg.DisableKeepAlives)
}

func TestDefaultClientConfig(t *testing.T) {
	cfg := DefaultClientConfig()

	assert.False(t, cfg.DisableCompression)
	assert.Greater(t, cfg.MaxIdleConns, cfg.MaxIdleConnsPerHost)
}
