package llmclient

import (
	"context"
	"sync"
)

// FakeClient returns scripted responses in order for offline/testing use.
// Once the script is exhausted it repeats the last entry.
type FakeClient struct {
	mu      sync.Mutex
	script  []FakeTurn
	pos     int
	Calls   int
	LastReq Request
}

// FakeTurn is one scripted response: either Text or Err.
type FakeTurn struct {
	Text string
	Err  error
}

func NewFakeClient(turns ...FakeTurn) *FakeClient {
	if len(turns) == 0 {
		turns = []FakeTurn{{Text: "<!DOCTYPE html><html><head><title>ok</title></head><body></body></html>"}}
	}
	return &FakeClient{script: turns}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastReq = req
	turn := f.script[f.pos]
	if f.pos < len(f.script)-1 {
		f.pos++
	}
	if turn.Err != nil {
		return "", turn.Err
	}
	return turn.Text, nil
}
