package mocks

import (
	"context"
	"sync"

	"github.com/Brendennago/Syntagma/internal/generation"
)

// MockGenerator implements generation.Generator for testing.
type MockGenerator struct {
	GeneratePassageFn func(ctx context.Context, params generation.PromptParams) (*generation.PassageResult, error)

	// Default response values used when GeneratePassageFn is nil.
	Result *generation.PassageResult
	Err    error

	// Call tracking for verification
	GenerateCalls struct {
		mu     sync.Mutex
		Count  int
		Params []generation.PromptParams
	}
}

// GeneratePassage implements the generation.Generator interface.
func (m *MockGenerator) GeneratePassage(
	ctx context.Context,
	params generation.PromptParams,
) (*generation.PassageResult, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Params = append(m.GenerateCalls.Params, params)
	m.GenerateCalls.mu.Unlock()

	if m.GeneratePassageFn != nil {
		return m.GeneratePassageFn(ctx, params)
	}
	return m.Result, m.Err
}

var _ generation.Generator = (*MockGenerator)(nil)
