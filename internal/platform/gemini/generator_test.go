package gemini

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/Brendennago/Syntagma/internal/config"
	"github.com/Brendennago/Syntagma/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewGeneratorValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := NewGenerator(ctx, nil, config.LLMConfig{GeminiAPIKey: "key", ModelName: "model"})
	assert.Error(t, err, "nil logger rejected")

	_, err = NewGenerator(ctx, slog.Default(), config.LLMConfig{ModelName: "model"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig, "missing API key rejected")

	_, err = NewGenerator(ctx, slog.Default(), config.LLMConfig{GeminiAPIKey: "key"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig, "missing model name rejected")

	_, err = NewGenerator(ctx, slog.Default(), config.LLMConfig{
		GeminiAPIKey:       "key",
		ModelName:          "model",
		PromptTemplatePath: "/nonexistent/template.tmpl",
	})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig, "unreadable template override rejected")
}

func TestClassifyAPIError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		code     int
		expected error
	}{
		{name: "unauthorized", code: http.StatusUnauthorized, expected: generation.ErrInvalidCredential},
		{name: "forbidden", code: http.StatusForbidden, expected: generation.ErrInvalidCredential},
		{name: "model not found", code: http.StatusNotFound, expected: generation.ErrModelNotFound},
		{name: "rate limited", code: http.StatusTooManyRequests, expected: generation.ErrQuotaExceeded},
		{name: "bad request", code: http.StatusBadRequest, expected: generation.ErrGenerationFailed},
		{name: "server error", code: http.StatusInternalServerError, expected: generation.ErrTransientFailure},
		{name: "bad gateway", code: http.StatusBadGateway, expected: generation.ErrTransientFailure},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := classifyAPIError(genai.APIError{Code: tc.code, Message: "boom"})
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	t.Run("transport errors are transient", func(t *testing.T) {
		t.Parallel()
		err := classifyAPIError(assert.AnError)
		assert.ErrorIs(t, err, generation.ErrTransientFailure)
	})
}

func TestExtractSchema(t *testing.T) {
	t.Parallel()

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		_, err := extractSchema(nil)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()
		_, err := extractSchema(&genai.GenerateContentResponse{})
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("safety block", func(t *testing.T) {
		t.Parallel()
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		}
		_, err := extractSchema(resp)
		assert.ErrorIs(t, err, generation.ErrContentBlocked)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "{not json"}}},
			}},
		}
		_, err := extractSchema(resp)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("valid payload split across parts", func(t *testing.T) {
		t.Parallel()
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: `{"passage": "El gato duerme.", "glossary": `},
					{Text: `[{"word": "gato", "translation": "cat"}]}`},
				}},
			}},
		}
		schema, err := extractSchema(resp)
		require.NoError(t, err)
		assert.Equal(t, "El gato duerme.", schema.Passage)
		require.Len(t, schema.Glossary, 1)
		assert.Equal(t, "gato", schema.Glossary[0].Word)
	})
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	g := &Generator{logger: slog.Default()}
	ctx := context.Background()

	t.Run("missing passage", func(t *testing.T) {
		t.Parallel()
		_, err := g.parseResponse(ctx, &responseSchema{Passage: "   "})
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("incomplete glossary entry", func(t *testing.T) {
		t.Parallel()
		schema := &responseSchema{Passage: "Texto."}
		schema.Glossary = append(schema.Glossary, struct {
			Word        string `json:"word"`
			Translation string `json:"translation"`
		}{Word: "gato"})

		_, err := g.parseResponse(ctx, schema)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("valid response", func(t *testing.T) {
		t.Parallel()
		schema := &responseSchema{Passage: "El gato duerme."}
		schema.Glossary = append(schema.Glossary, struct {
			Word        string `json:"word"`
			Translation string `json:"translation"`
		}{Word: "gato", Translation: "cat"})

		result, err := g.parseResponse(ctx, schema)
		require.NoError(t, err)
		assert.Equal(t, "El gato duerme.", result.Passage)
		require.Len(t, result.Glossary, 1)
		assert.Equal(t, "cat", result.Glossary[0].Translation)
	})
}
