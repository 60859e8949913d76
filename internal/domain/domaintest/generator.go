// Package domaintest provides fakes of the domain ports for tests.
package domaintest

import (
	"context"
	"sync"

	"hsl-agent/internal/domain"
)

// Generator records every request and answers with Reply, or fails with Err
// when it is set.
type Generator struct {
	mu       sync.Mutex
	Reply    string
	Err      error
	requests []domain.GenerationRequest

	// Block, when non-nil, is received from before answering.
	Block chan struct{}
}

func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	block := g.Block
	g.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return "", g.Err
	}
	return g.Reply, nil
}

func (g *Generator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

func (g *Generator) Requests() []domain.GenerationRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.GenerationRequest(nil), g.requests...)
}

func (g *Generator) LastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.requests) == 0 {
		return ""
	}
	return g.requests[len(g.requests)-1].Prompt
}
