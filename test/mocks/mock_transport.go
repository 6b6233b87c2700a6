package mocks

import (
	"context"
	"sync"
)

// TransportCall is one captured Post
type TransportCall struct {
	URL     string
	Payload []byte
}

// MockTransport is a mock implementation of Transport for testing
type MockTransport struct {
	mu       sync.Mutex
	PostFunc func(ctx context.Context, url string, payload []byte) ([]byte, error)
	Calls    []TransportCall
}

// NewMockTransport creates a transport answering with postFunc
func NewMockTransport(postFunc func(ctx context.Context, url string, payload []byte) ([]byte, error)) *MockTransport {
	return &MockTransport{PostFunc: postFunc}
}

// Post captures the call and delegates to PostFunc
func (m *MockTransport) Post(ctx context.Context, url string, payload []byte) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, TransportCall{URL: url, Payload: payload})
	m.mu.Unlock()

	if m.PostFunc != nil {
		return m.PostFunc(ctx, url, payload)
	}
	return nil, nil
}

// CallCount returns the number of captured calls
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastPayload returns the payload of the most recent call
func (m *MockTransport) LastPayload() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return m.Calls[len(m.Calls)-1].Payload
}
