package debate

import (
	"context"
	"sync"

	"github.com/parley-ai/parley/pkg/core"
)

// fakeConnection returns scripted responses and records every request.
type fakeConnection struct {
	mu        sync.Mutex
	requests  []*core.ChatRequest
	responses []string
	calls     int
	failAt    int   // 1-based call number to fail on; 0 disables
	failWith  error // error returned at failAt
	blockOn   chan struct{}
	started   chan struct{}
}

func (f *fakeConnection) GenerateContent(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.requests = append(f.requests, req)
	started := f.started
	block := f.blockOn
	f.mu.Unlock()

	if started != nil && call == 1 {
		close(started)
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.failAt != 0 && call >= f.failAt {
		return nil, f.failWith
	}

	text := "argument"
	if len(f.responses) > 0 {
		text = f.responses[(call-1)%len(f.responses)]
	}
	return &core.ChatResponse{Content: text, Model: req.Model}, nil
}

func (f *fakeConnection) Close(ctx context.Context) error {
	return nil
}

func (f *fakeConnection) recorded() []*core.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*core.ChatRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// fakeResolver hands every model the same connection unless a per-model
// override is present.
type fakeResolver struct {
	conn        *fakeConnection
	perModel    map[string]core.LLMConnection
	validateErr error
}

func (r *fakeResolver) Connection(model string) (core.LLMConnection, error) {
	if conn, ok := r.perModel[model]; ok {
		return conn, nil
	}
	return r.conn, nil
}

func (r *fakeResolver) ValidateCredentials(models ...string) error {
	return r.validateErr
}
