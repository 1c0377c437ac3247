package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"scambait-lab/internal/domain/models"
	"scambait-lab/internal/domain/services"
	"scambait-lab/internal/domain/services/extraction"
	"scambait-lab/internal/domain/services/personas"
	"scambait-lab/internal/infrastructure/sessions"
	"scambait-lab/pkg/logger"
)

// SessionsHandler manages honeypot conversation sessions
type SessionsHandler struct {
	engine *services.Engine
	logger *logger.Logger
}

// NewSessionsHandler creates a new SessionsHandler
func NewSessionsHandler(engine *services.Engine, log *logger.Logger) *SessionsHandler {
	return &SessionsHandler{
		engine: engine,
		logger: log.WithComponent("sessions-handler"),
	}
}

// CreateRequest is the body for POST /api/v1/sessions
type CreateRequest struct {
	Persona string `json:"persona,omitempty"`
}

// MessageRequest is the body for POST /api/v1/sessions/{id}/messages.
// The llm_verdict is optional and comes from the caller's own model
// pass over the message.
type MessageRequest struct {
	Message    string             `json:"message"`
	Metadata   map[string]string  `json:"metadata,omitempty"`
	LLMVerdict *models.LLMVerdict `json:"llm_verdict,omitempty"`
}

// Create handles POST /api/v1/sessions
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	session, err := h.engine.CreateSession(r.Context(), req.Persona)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.engine.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondLoadError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// PostMessage handles POST /api/v1/sessions/{id}/messages
func (h *SessionsHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	var llm models.LLMVerdict
	if req.LLMVerdict != nil {
		llm = *req.LLMVerdict
	}

	result, err := h.engine.ProcessMessage(r.Context(), chi.URLParam(r, "id"), req.Message, req.Metadata, llm)
	if err != nil {
		h.respondLoadError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetProfile handles GET /api/v1/sessions/{id}/profile
func (h *SessionsHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.engine.Profile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondLoadError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// IntelResponse is the body for GET /api/v1/sessions/{id}/intel
type IntelResponse struct {
	Intelligence *models.Intelligence    `json:"intelligence"`
	GapAnalysis  *extraction.GapAnalysis `json:"gap_analysis"`
}

// GetIntel handles GET /api/v1/sessions/{id}/intel
func (h *SessionsHandler) GetIntel(w http.ResponseWriter, r *http.Request) {
	intel, gaps, err := h.engine.IntelReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondLoadError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, IntelResponse{Intelligence: intel, GapAnalysis: gaps})
}

// ListPersonas handles GET /api/v1/personas
func (h *SessionsHandler) ListPersonas(w http.ResponseWriter, r *http.Request) {
	out := make([]personas.Persona, 0, len(personas.All()))
	for _, name := range personas.All() {
		out = append(out, personas.Get(name))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"personas": out})
}

func (h *SessionsHandler) respondLoadError(w http.ResponseWriter, err error) {
	if errors.Is(err, sessions.ErrNotFound) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	h.logger.Error().Err(err).Msg("session request failed")
	respondError(w, http.StatusInternalServerError, "internal error")
}
