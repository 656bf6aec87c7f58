package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Brendennago/Syntagma/internal/api/shared"
	"github.com/Brendennago/Syntagma/internal/generation"
	"github.com/Brendennago/Syntagma/internal/platform/logger"
)

// PassageGenerationService defines the generation operation the handler
// depends on.
type PassageGenerationService interface {
	GeneratePassage(ctx context.Context, language, level string, ref time.Time) (*generation.PassageResult, error)
}

// PassageHandler handles passage-generation HTTP requests.
type PassageHandler struct {
	passageService PassageGenerationService
	logger         *slog.Logger
}

// NewPassageHandler creates a new PassageHandler.
func NewPassageHandler(passageService PassageGenerationService, logger *slog.Logger) *PassageHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PassageHandler")
	}

	return &PassageHandler{
		passageService: passageService,
		logger:         logger.With(slog.String("component", "passage_handler")),
	}
}

// GeneratePassageRequest represents the request body for generating a passage.
type GeneratePassageRequest struct {
	Language string `json:"language" validate:"required"`
	Level    string `json:"level"    validate:"required"`
}

// GlossaryEntryResponse is one glossary line in a generated passage.
type GlossaryEntryResponse struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// GeneratePassageResponse represents a generated passage with its glossary.
type GeneratePassageResponse struct {
	Passage  string                  `json:"passage"`
	Glossary []GlossaryEntryResponse `json:"glossary"`
}

// Generate handles POST /passage/generate requests. Generation can take
// several seconds; the request context bounds the provider call.
func (h *PassageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GeneratePassageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.passageService.GeneratePassage(r.Context(), req.Language, req.Level, time.Now().UTC())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate passage")
		return
	}

	glossary := make([]GlossaryEntryResponse, 0, len(result.Glossary))
	for _, entry := range result.Glossary {
		glossary = append(glossary, GlossaryEntryResponse{
			Word:        entry.Word,
			Translation: entry.Translation,
		})
	}

	log.Debug("generated passage",
		slog.String("language", req.Language),
		slog.String("level", req.Level),
		slog.Int("glossary_entries", len(glossary)))
	shared.RespondWithJSON(w, r, http.StatusOK, GeneratePassageResponse{
		Passage:  result.Passage,
		Glossary: glossary,
	})
}
