package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Brendennago/Syntagma/internal/config"
	"github.com/Brendennago/Syntagma/internal/platform/logger"
)

// HTTPProvider implements the Provider interface against a
// LibreTranslate-compatible JSON endpoint.
type HTTPProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

// NewHTTPProvider creates a provider from the translation configuration.
// If log is nil, a default logger will be used.
func NewHTTPProvider(cfg config.TranslationConfig, log *slog.Logger) *HTTPProvider {
	if log == nil {
		log = slog.Default()
	}

	return &HTTPProvider{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: log.With(slog.String("component", "translation_provider")),
	}
}

// Ensure HTTPProvider implements the Provider interface
var _ Provider = (*HTTPProvider)(nil)

// translateRequest is the provider's request body.
type translateRequest struct {
	Query  string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

// translateResponse is the provider's response body.
type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate implements Provider.Translate.
// Any transport, status, or decoding failure collapses into ErrUnavailable;
// the caller decides whether to degrade or propagate.
func (p *HTTPProvider) Translate(
	ctx context.Context,
	word, sourceLang, targetLang string,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	if strings.TrimSpace(word) == "" {
		return "", ErrEmptyWord
	}

	body, err := json.Marshal(translateRequest{
		Query:  word,
		Source: sourceLang,
		Target: targetLang,
		Format: "text",
		APIKey: p.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		log.Warn("translation provider call failed",
			slog.String("error", err.Error()),
			slog.String("word", word))
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error("failed to close response body", slog.String("error", err.Error()))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		log.Warn("translation provider returned non-OK status",
			slog.Int("status", resp.StatusCode),
			slog.String("word", word))
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Warn("translation provider returned malformed body",
			slog.String("error", err.Error()),
			slog.String("word", word))
		return "", fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	if parsed.TranslatedText == "" {
		return "", fmt.Errorf("%w: empty translation", ErrUnavailable)
	}

	log.Debug("translation resolved via provider",
		slog.String("word", word),
		slog.String("source_language", sourceLang),
		slog.String("target_language", targetLang))
	return parsed.TranslatedText, nil
}
