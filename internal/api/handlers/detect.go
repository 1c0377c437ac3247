package handlers

import (
	"encoding/json"
	"net/http"

	"scambait-lab/internal/domain/models"
	"scambait-lab/internal/domain/services"
	"scambait-lab/pkg/logger"
)

// DetectHandler exposes the stateless scam decision endpoint
type DetectHandler struct {
	engine *services.Engine
	logger *logger.Logger
}

// NewDetectHandler creates a new DetectHandler
func NewDetectHandler(engine *services.Engine, log *logger.Logger) *DetectHandler {
	return &DetectHandler{
		engine: engine,
		logger: log.WithComponent("detect-handler"),
	}
}

// DetectRequest is the body for POST /api/v1/detect
type DetectRequest struct {
	Message    string             `json:"message"`
	Metadata   map[string]string  `json:"metadata,omitempty"`
	History    []models.Message   `json:"history,omitempty"`
	LLMVerdict *models.LLMVerdict `json:"llm_verdict,omitempty"`
}

// Analyze handles POST /api/v1/detect. It classifies a single message
// without touching any session state.
func (h *DetectHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
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

	verdict := h.engine.Detect(r.Context(), req.Message, req.Metadata, req.History, llm)
	respondJSON(w, http.StatusOK, verdict)
}
