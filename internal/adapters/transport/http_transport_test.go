package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "github.com/kevin07696/worldnet-gateway/pkg/errors"
	"github.com/kevin07696/worldnet-gateway/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTransportTest(t *testing.T, handler http.HandlerFunc) (*HTTPTransport, *httptest.Server, *mocks.MockLogger) {
	server := httptest.NewServer(handler)
	logger := mocks.NewMockLogger()
	return NewHTTPTransport(&http.Client{Timeout: 5 * time.Second}, logger), server, logger
}

func TestHTTPTransport_Post_Success(t *testing.T) {
	payload := []byte(`<?xml version="1.0" encoding="UTF-8"?><DELETESUBSCRIPTION><MERCHANTREF>M1</MERCHANTREF></DELETESUBSCRIPTION>`)

	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/merchant/xmlpayment", r.URL.Path)
		assert.Equal(t, int64(len(payload)), r.ContentLength)
		assert.Contains(t, r.Header.Get("Content-Type"), "text/xml")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, payload, body)

		w.Write([]byte(`<DELETESUBSCRIPTIONRESPONSE><MERCHANTREF>M1</MERCHANTREF></DELETESUBSCRIPTIONRESPONSE>`))
	}

	transport, server, logger := setupTransportTest(t, handler)
	defer server.Close()

	body, err := transport.Post(context.Background(), server.URL+"/merchant/xmlpayment", payload)

	require.NoError(t, err)
	assert.Contains(t, string(body), "DELETESUBSCRIPTIONRESPONSE")
	assert.Len(t, logger.DebugCalls, 1)
}

func TestHTTPTransport_Post_ClientErrorReturnsBody(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`<ERROR><ERRORSTRING>Invalid TERMINALID field</ERRORSTRING></ERROR>`))
	}

	transport, server, _ := setupTransportTest(t, handler)
	defer server.Close()

	body, err := transport.Post(context.Background(), server.URL, []byte("<X/>"))

	require.NoError(t, err)
	assert.Contains(t, string(body), "ERRORSTRING")
}

func TestHTTPTransport_Post_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}

	transport, server, _ := setupTransportTest(t, handler)
	defer server.Close()

	body, err := transport.Post(context.Background(), server.URL, []byte("<X/>"))

	require.Error(t, err)
	assert.Nil(t, body)

	var transportErr *pkgerrors.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
	assert.True(t, pkgerrors.IsRetriable(err))
}

func TestHTTPTransport_Post_ResponseTooLarge(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<R>"))
		_, _ = w.Write(make([]byte, maxResponseBytes))
	}

	transport, server, logger := setupTransportTest(t, handler)
	defer server.Close()

	body, err := transport.Post(context.Background(), server.URL, []byte("<X/>"))

	require.Error(t, err)
	assert.Nil(t, body)
	assert.True(t, errors.Is(err, pkgerrors.ErrResponseTooLarge))

	var transportErr *pkgerrors.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusOK, transportErr.StatusCode)
	assert.Equal(t, pkgerrors.CategoryNetworkError, pkgerrors.CategoryOf(err))
	assert.Len(t, logger.ErrorCalls, 1)
}

func TestHTTPTransport_Post_ResponseAtLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, maxResponseBytes))
	}

	transport, server, _ := setupTransportTest(t, handler)
	defer server.Close()

	body, err := transport.Post(context.Background(), server.URL, []byte("<X/>"))

	require.NoError(t, err)
	assert.Len(t, body, maxResponseBytes)
}

func TestHTTPTransport_Post_ConnectionFailure(t *testing.T) {
	httpClient := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	logger := mocks.NewMockLogger()
	transport := NewHTTPTransport(httpClient, logger)

	_, err := transport.Post(context.Background(), "https://gateway.invalid/xml", []byte("<X/>"))

	require.Error(t, err)
	var transportErr *pkgerrors.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, 0, transportErr.StatusCode)
	assert.Len(t, httpClient.Calls, 1)
	assert.Len(t, logger.ErrorCalls, 1)
}

func TestHTTPTransport_Post_ContextCancelled(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}

	transport, server, _ := setupTransportTest(t, handler)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := transport.Post(ctx, server.URL, []byte("<X/>"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestHTTPTransport_Post_NoRetry(t *testing.T) {
	httpClient := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return mocks.XMLResponse(http.StatusServiceUnavailable, ""), nil
	})
	transport := NewHTTPTransport(httpClient, nil)

	_, err := transport.Post(context.Background(), "https://gateway.invalid/xml", []byte("<X/>"))

	require.Error(t, err)
	assert.Len(t, httpClient.Calls, 1)
}
