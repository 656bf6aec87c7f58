package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/Brendennago/Syntagma/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPassageService is a mock implementation of the PassageGenerationService interface
type mockPassageService struct {
	generateFn func(ctx context.Context, language, level string, ref time.Time) (*generation.PassageResult, error)
}

func (m *mockPassageService) GeneratePassage(ctx context.Context, language, level string, ref time.Time) (*generation.PassageResult, error) {
	return m.generateFn(ctx, language, level, ref)
}

func TestPassageHandlerGenerate(t *testing.T) {
	t.Parallel()

	svc := &mockPassageService{
		generateFn: func(ctx context.Context, language, level string, ref time.Time) (*generation.PassageResult, error) {
			assert.Equal(t, "es", language)
			assert.Equal(t, "beginner", level)
			return &generation.PassageResult{
				Passage: "El gato duerme.",
				Glossary: []generation.GlossaryEntry{
					{Word: "gato", Translation: "cat"},
				},
			}, nil
		},
	}
	handler := NewPassageHandler(svc, slog.Default())

	w := postJSON(t, handler.Generate, GeneratePassageRequest{Language: "es", Level: "beginner"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp GeneratePassageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "El gato duerme.", resp.Passage)
	require.Len(t, resp.Glossary, 1)
	assert.Equal(t, "gato", resp.Glossary[0].Word)
}

func TestPassageHandlerGenerateUpstreamFailure(t *testing.T) {
	t.Parallel()

	svc := &mockPassageService{
		generateFn: func(ctx context.Context, language, level string, ref time.Time) (*generation.PassageResult, error) {
			return nil, generation.ErrTransientFailure
		},
	}
	handler := NewPassageHandler(svc, slog.Default())

	w := postJSON(t, handler.Generate, GeneratePassageRequest{Language: "es", Level: "beginner"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPassageHandlerGenerateValidation(t *testing.T) {
	t.Parallel()

	handler := NewPassageHandler(&mockPassageService{}, slog.Default())

	w := postJSON(t, handler.Generate, GeneratePassageRequest{Language: "", Level: "beginner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
