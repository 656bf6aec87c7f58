package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Brendennago/Syntagma/internal/api/shared"
	"github.com/Brendennago/Syntagma/internal/domain"
	"github.com/Brendennago/Syntagma/internal/platform/logger"
)

// ReadingSessionService defines the session operations the handler depends on.
type ReadingSessionService interface {
	SaveSession(ctx context.Context, language, passage string, lookedUpWords []string, ref time.Time) (*domain.ReadingSession, error)
	LoadSession(ctx context.Context, language string) (*domain.ReadingSession, error)
}

// SessionHandler handles reading-session HTTP requests.
type SessionHandler struct {
	sessionService ReadingSessionService
	logger         *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService ReadingSessionService, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger.With(slog.String("component", "session_handler")),
	}
}

// SaveSessionRequest represents the request body for saving a session.
type SaveSessionRequest struct {
	Language      string   `json:"language"     validate:"required"`
	PassageText   string   `json:"passage_text" validate:"required"`
	LookedUpWords []string `json:"looked_up_words"`
}

// SessionResponse represents a stored reading session.
type SessionResponse struct {
	Language      string    `json:"language"`
	PassageText   string    `json:"passage_text"`
	LookedUpWords []string  `json:"looked_up_words"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Load handles GET /session requests.
func (h *SessionHandler) Load(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	if language == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing language parameter")
		return
	}

	session, err := h.sessionService.LoadSession(r.Context(), language)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// Save handles PUT /session requests. Saving always overwrites the stored
// session for the language.
func (h *SessionHandler) Save(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SaveSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.sessionService.SaveSession(
		r.Context(), req.Language, req.PassageText, req.LookedUpWords, time.Now().UTC())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save session")
		return
	}

	log.Debug("saved session",
		slog.String("language", req.Language),
		slog.Int("looked_up_words", len(session.LookedUpWords)))
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

func sessionToResponse(session *domain.ReadingSession) SessionResponse {
	words := session.LookedUpWords
	if words == nil {
		words = []string{}
	}
	return SessionResponse{
		Language:      session.Language,
		PassageText:   session.PassageText,
		LookedUpWords: words,
		UpdatedAt:     session.UpdatedAt,
	}
}
