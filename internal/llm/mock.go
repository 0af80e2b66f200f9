package llm

import (
	"context"
	"sync"
)

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error
	// Fn, si no es nil, reemplaza Response/Err.
	Fn func(req Request) (string, error)

	mu       sync.Mutex
	requests []Request
}

func (m *MockClient) Generate(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.Fn != nil {
		return m.Fn(req)
	}
	return m.Response, m.Err
}

// Requests devuelve las requests recibidas, en orden.
func (m *MockClient) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}
