package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/Brendennago/Syntagma/internal/config"
	"github.com/Brendennago/Syntagma/internal/generation"
	"google.golang.org/genai"
)

// Generator implements the generation.Generator interface using Google's
// Gemini API to produce reading passages with glossaries.
type Generator struct {
	logger         *slog.Logger
	config         config.LLMConfig
	promptTemplate *template.Template
	client         *genai.Client
	model          string
}

// NewGenerator creates a new Gemini-backed passage generator.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and retry settings
//
// Returns a properly initialized Generator or an error if initialization fails.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	// Load the override template when configured, otherwise use the default.
	templateSource := ""
	if cfg.PromptTemplatePath != "" {
		content, err := os.ReadFile(cfg.PromptTemplatePath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				generation.ErrInvalidConfig, cfg.PromptTemplatePath, err)
		}
		templateSource = string(content)
	}

	promptTemplate, err := generation.NewPromptTemplate(templateSource)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:         logger,
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// Ensure Generator implements the generation.Generator interface
var _ generation.Generator = (*Generator)(nil)

// responseSchema is the JSON shape the model is instructed to return.
type responseSchema struct {
	Passage  string `json:"passage"`
	Glossary []struct {
		Word        string `json:"word"`
		Translation string `json:"translation"`
	} `json:"glossary"`
}

// GeneratePassage implements generation.Generator.GeneratePassage.
func (g *Generator) GeneratePassage(
	ctx context.Context,
	params generation.PromptParams,
) (*generation.PassageResult, error) {
	prompt, err := generation.BuildPrompt(g.promptTemplate, params)
	if err != nil {
		return nil, err
	}

	g.logger.DebugContext(ctx, "generating passage",
		"language", params.Language,
		"level", params.Level,
		"mode", string(params.Mode),
		"review_words", len(params.ReviewWords),
		"target_words", len(params.TargetWords))

	schema, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return g.parseResponse(ctx, schema)
}

// callWithRetry makes a call to the Gemini API with exponential backoff retry
// logic. Transient errors (5xx, transport failures) are retried up to the
// configured maximum; classified permanent errors return immediately.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (*responseSchema, error) {
	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}

	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1 // for logging (1-based)
		g.logger.InfoContext(ctx, "making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genConfig)

		var schema *responseSchema
		transient := false
		if err != nil {
			err = classifyAPIError(err)
			transient = errors.Is(err, generation.ErrTransientFailure)
		} else {
			schema, err = extractSchema(resp)
		}

		if err == nil {
			g.logger.InfoContext(ctx, "Gemini API call successful", "attempt", attemptNum)
			return schema, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if !transient {
			g.logger.WarnContext(ctx, "permanent error occurred, not retrying")
			return nil, err
		}

		if attempt >= maxRetries {
			g.logger.WarnContext(ctx, "maximum retry attempts reached", "max_retries", maxRetries)
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// Exponential backoff with jitter:
		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attemptNum,
			"delay", delay.String())

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			g.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// classifyAPIError maps a Gemini API error onto the generation package's
// typed sentinels so callers can report a cause without parsing messages.
func classifyAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", generation.ErrInvalidCredential, apiErr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", generation.ErrModelNotFound, apiErr.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", generation.ErrQuotaExceeded, apiErr.Message)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", generation.ErrGenerationFailed, apiErr.Message)
		}
		if apiErr.Code >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %s", generation.ErrTransientFailure, apiErr.Message)
		}
		return fmt.Errorf("%w: %s", generation.ErrGenerationFailed, apiErr.Message)
	}

	// Transport-level failures are worth a retry.
	return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
}

// extractSchema pulls the JSON payload out of a generation response.
// Malformed model output is an ErrInvalidResponse, never a crash.
func extractSchema(resp *genai.GenerateContentResponse) (*responseSchema, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}

	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}

	var schema responseSchema
	if err := json.Unmarshal([]byte(text.String()), &schema); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}

	return &schema, nil
}

// parseResponse converts a responseSchema into a generation.PassageResult,
// validating the fields the rest of the system relies on.
func (g *Generator) parseResponse(
	ctx context.Context,
	schema *responseSchema,
) (*generation.PassageResult, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: response is nil", generation.ErrInvalidResponse)
	}

	if strings.TrimSpace(schema.Passage) == "" {
		return nil, fmt.Errorf("%w: missing passage text", generation.ErrInvalidResponse)
	}

	result := &generation.PassageResult{
		Passage:  schema.Passage,
		Glossary: make([]generation.GlossaryEntry, 0, len(schema.Glossary)),
	}

	for i, entry := range schema.Glossary {
		if entry.Word == "" || entry.Translation == "" {
			return nil, fmt.Errorf("%w: glossary entry %d missing word or translation",
				generation.ErrInvalidResponse, i)
		}
		result.Glossary = append(result.Glossary, generation.GlossaryEntry{
			Word:        entry.Word,
			Translation: entry.Translation,
		})
	}

	g.logger.InfoContext(ctx, "passage generated",
		"passage_length", len(result.Passage),
		"glossary_entries", len(result.Glossary))

	return result, nil
}
