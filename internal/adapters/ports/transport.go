package ports

import (
	"context"
	"net/http"
)

// Transport delivers one XML document to the gateway and returns the raw reply.
// Implementations perform a single POST with Content-Length set and never retry.
type Transport interface {
	Post(ctx context.Context, url string, payload []byte) ([]byte, error)
}

// HTTPClient is the subset of *http.Client used by the HTTP transport
// This allows for easy mocking and testing of adapters
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
