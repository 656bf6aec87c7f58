// Package api provides HTTP handlers for the API.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Brendennago/Syntagma/internal/api/shared"
	"github.com/Brendennago/Syntagma/internal/domain"
	"github.com/Brendennago/Syntagma/internal/platform/logger"
	"github.com/Brendennago/Syntagma/internal/service"
)

// VocabularyService defines the vocabulary operations the handler depends on.
type VocabularyService interface {
	GetVocabularyList(ctx context.Context, language string, ref time.Time) ([]service.EntryWithDue, error)
	PassWordsBatch(ctx context.Context, words []string, language string, ref time.Time) error
	LookupWord(ctx context.Context, word, language string, ref time.Time) (*service.LookupResult, error)
	UndoLookup(ctx context.Context, word, language string, prior *domain.VocabularyEntry, ref time.Time) error
	BulkAction(ctx context.Context, words []string, action service.BulkActionType, language string, ref time.Time) error
	ResetWord(ctx context.Context, word string, action service.BulkActionType, language string, ref time.Time) error
	ImportWords(ctx context.Context, words []string, language string, opts service.ImportOptions, ref time.Time) error
}

// VocabHandler handles vocabulary-related HTTP requests.
type VocabHandler struct {
	vocabService VocabularyService
	logger       *slog.Logger
}

// NewVocabHandler creates a new VocabHandler.
func NewVocabHandler(vocabService VocabularyService, logger *slog.Logger) *VocabHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for VocabHandler")
	}

	return &VocabHandler{
		vocabService: vocabService,
		logger:       logger.With(slog.String("component", "vocab_handler")),
	}
}

// PassRequest represents the request body for marking words as read.
type PassRequest struct {
	Words    []string `json:"words"    validate:"required,min=1"`
	Language string   `json:"language" validate:"required"`
}

// LookupRequest represents the request body for looking up a word.
type LookupRequest struct {
	Word     string `json:"word"     validate:"required"`
	Language string `json:"language" validate:"required"`
}

// LookupResponse carries the resolved translation and the pre-lookup state
// the client holds onto for a later undo.
type LookupResponse struct {
	Translation string                  `json:"translation"`
	PriorState  *domain.VocabularyEntry `json:"prior_state"`
}

// UndoLookupRequest represents the request body for undoing a lookup.
type UndoLookupRequest struct {
	Word       string                  `json:"word"     validate:"required"`
	Language   string                  `json:"language" validate:"required"`
	PriorState *domain.VocabularyEntry `json:"prior_state"`
}

// BulkRequest represents the request body for a bulk delete or reset.
type BulkRequest struct {
	Words    []string `json:"words"    validate:"required,min=1"`
	Action   string   `json:"action"   validate:"required,oneof=delete reset"`
	Language string   `json:"language" validate:"required"`
}

// ResetRequest represents the request body for resetting a single word.
type ResetRequest struct {
	Word      string `json:"word"       validate:"required"`
	ResetType string `json:"reset_type" validate:"required,oneof=delete reset"`
	Language  string `json:"language"   validate:"required"`
}

// ImportRequest represents the request body for importing a word list.
type ImportRequest struct {
	Words          []string `json:"words"    validate:"required,min=1"`
	Language       string   `json:"language" validate:"required"`
	MakeTargetList bool     `json:"make_target_list"`
	MakeDueNow     bool     `json:"make_due_now"`
}

// List handles GET /vocabulary requests.
// It returns every entry for the language with its derived due state.
func (h *VocabHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	language := r.URL.Query().Get("language")
	if language == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing language parameter")
		return
	}

	entries, err := h.vocabService.GetVocabularyList(r.Context(), language, time.Now().UTC())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list vocabulary")
		return
	}

	log.Debug("listed vocabulary",
		slog.String("language", language),
		slog.Int("count", len(entries)))
	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// Pass handles POST /vocabulary/pass requests.
// Every word in the batch is judged against the same reference time and the
// whole batch commits or none of it does.
func (h *VocabHandler) Pass(w http.ResponseWriter, r *http.Request) {
	var req PassRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.vocabService.PassWordsBatch(r.Context(), req.Words, req.Language, time.Now().UTC())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record passed words")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Lookup handles POST /vocabulary/lookup requests.
func (h *VocabHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.vocabService.LookupWord(r.Context(), req.Word, req.Language, time.Now().UTC())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to look up word")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LookupResponse{
		Translation: result.Translation,
		PriorState:  result.Prior,
	})
}

// UndoLookup handles POST /vocabulary/lookup/undo requests.
// A null prior state means the lookup created the entry, so undo deletes it.
func (h *VocabHandler) UndoLookup(w http.ResponseWriter, r *http.Request) {
	var req UndoLookupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.vocabService.UndoLookup(r.Context(), req.Word, req.Language, req.PriorState, time.Now().UTC())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to undo lookup")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Bulk handles POST /vocabulary/bulk requests.
func (h *VocabHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req BulkRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.vocabService.BulkAction(
		r.Context(), req.Words, service.BulkActionType(req.Action), req.Language, time.Now().UTC())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to apply bulk action")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reset handles POST /vocabulary/reset requests.
func (h *VocabHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.vocabService.ResetWord(
		r.Context(), req.Word, service.BulkActionType(req.ResetType), req.Language, time.Now().UTC())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to reset word")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /vocabulary/import requests.
func (h *VocabHandler) Import(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ImportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	opts := service.ImportOptions{
		MakeTargetList: req.MakeTargetList,
		MakeDueNow:     req.MakeDueNow,
	}
	err := h.vocabService.ImportWords(r.Context(), req.Words, req.Language, opts, time.Now().UTC())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to import words")
		return
	}

	log.Info("imported words",
		slog.String("language", req.Language),
		slog.Int("count", len(req.Words)))
	w.WriteHeader(http.StatusNoContent)
}

// decodeAndValidate decodes the request body and runs validation, writing a
// 400 response on failure. Returns false when a response was already written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return false
	}
	return true
}
