package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"filmera/services/proxy"
)

type proxyService interface {
	Configured() bool
	Dispatch(ctx context.Context, req proxy.Request) (*proxy.Result, error)
}

// ProxyHandler exposes the provider proxy as a single POST endpoint.
type ProxyHandler struct {
	Service proxyService
}

var _ proxyService = (*proxy.Service)(nil)

func NewProxyHandler(s proxyService) *ProxyHandler {
	return &ProxyHandler{Service: s}
}

// Fetch accepts {"action": ..., ...params}, performs the single
// upstream call and relays the outcome. Validation order: method, body
// shape, credentials, action.
func (h *ProxyHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()[:8]

	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	var request proxy.Request
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Bad Request")
		return
	}

	if !h.Service.Configured() {
		log.Printf("[proxy-handler] %s rejected: provider keys missing", reqID)
		writeJSONError(w, http.StatusInternalServerError, "API keys are not configured properly")
		return
	}

	result, err := h.Service.Dispatch(r.Context(), request)
	if err != nil {
		switch {
		case errors.Is(err, proxy.ErrInvalidAction):
			writeJSONError(w, http.StatusBadRequest, "Invalid Action")
		case errors.Is(err, proxy.ErrMissingParam):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, proxy.ErrNotConfigured):
			writeJSONError(w, http.StatusInternalServerError, "API keys are not configured properly")
		default:
			// Transport errors embed the full upstream URL, credentials
			// included. Log the detail, never relay it.
			log.Printf("[proxy-handler] %s action=%q upstream failure: %v", reqID, request.Action, err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to fetch from external API")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(result.Status)
	w.Write(result.Body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
