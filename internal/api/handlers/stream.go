package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"scambait-lab/internal/domain/models"
	"scambait-lab/internal/streaming"
	"scambait-lab/pkg/logger"
)

// StreamHandler serves the real-time verdict event feed
type StreamHandler struct {
	bus    *streaming.EventBus
	logger *logger.Logger
}

// NewStreamHandler creates a new StreamHandler
func NewStreamHandler(bus *streaming.EventBus, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		bus:    bus,
		logger: log.WithComponent("stream"),
	}
}

const streamHeartbeat = 15 * time.Second

// Stream handles GET /api/v1/stream as a server-sent event feed of
// verdict events. Filters come from query parameters: scams_only,
// min_confidence, and a comma-separated scam_types list.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, unsubscribe := h.bus.Subscribe(r.Context(), parseSubscription(r))
	defer unsubscribe()

	h.logger.Debug().
		Str("remote_addr", r.RemoteAddr).
		Msg("event stream opened")

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug().Str("remote_addr", r.RemoteAddr).Msg("event stream closed")
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				h.logger.Warn().Err(err).Msg("failed to marshal verdict event")
				continue
			}
			fmt.Fprintf(w, "event: verdict\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// parseSubscription builds the event filter from query parameters
func parseSubscription(r *http.Request) *streaming.Subscription {
	q := r.URL.Query()

	sub := &streaming.Subscription{
		ScamsOnly: q.Get("scams_only") == "true",
	}
	if v := q.Get("min_confidence"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			sub.MinConfidence = f
		}
	}
	if v := q.Get("scam_types"); v != "" {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				sub.ScamTypes = append(sub.ScamTypes, models.ScamType(t))
			}
		}
	}
	return sub
}
