package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kevin07696/worldnet-gateway/internal/adapters/ports"
	pkgerrors "github.com/kevin07696/worldnet-gateway/pkg/errors"
)

// maxResponseBytes bounds how much of a gateway reply is read
const maxResponseBytes = 1 << 20

// HTTPTransport implements ports.Transport with a single HTTPS POST per call
type HTTPTransport struct {
	httpClient ports.HTTPClient
	logger     ports.Logger
}

// NewHTTPTransport creates a transport with dependency injection
func NewHTTPTransport(httpClient ports.HTTPClient, logger ports.Logger) *HTTPTransport {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &HTTPTransport{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Post sends payload to url and returns the reply body.
// 5xx replies are transport errors; any other status returns the body so the
// caller can decode the gateway's XML (errors included). No retries.
func (t *HTTPTransport) Post(ctx context.Context, url string, payload []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.NewTransportError(url, 0, fmt.Errorf("failed to create request: %w", err))
	}

	httpReq.ContentLength = int64(len(payload))
	httpReq.Header.Set("Content-Type", "text/xml; charset=UTF-8")

	startTime := time.Now()
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		t.logger.Error("Failed to send gateway request",
			ports.String("url", url),
			ports.Duration("elapsed", time.Since(startTime)),
			ports.Err(err),
		)
		return nil, pkgerrors.NewTransportError(url, 0, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes+1))
	if err != nil {
		t.logger.Error("Failed to read gateway response", ports.Err(err))
		return nil, pkgerrors.NewTransportError(url, httpResp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}
	if len(body) > maxResponseBytes {
		t.logger.Error("Gateway response exceeds read limit",
			ports.String("url", url),
			ports.Int("limit_bytes", maxResponseBytes),
		)
		return nil, pkgerrors.NewTransportError(url, httpResp.StatusCode, pkgerrors.ErrResponseTooLarge)
	}

	t.logger.Debug("Gateway responded",
		ports.Int("status_code", httpResp.StatusCode),
		ports.Int("body_length", len(body)),
		ports.Duration("elapsed", time.Since(startTime)),
	)

	if httpResp.StatusCode >= http.StatusInternalServerError {
		return nil, pkgerrors.NewTransportError(url, httpResp.StatusCode, nil)
	}

	return body, nil
}
