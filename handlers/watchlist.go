package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"filmera/models"
	"filmera/services/records"
	watchlistsvc "filmera/services/watchlist"
)

type watchlistService interface {
	List() []models.WatchlistEntry
	Contains(key string) bool
	Add(ctx context.Context, key string) (*models.WatchlistEntry, error)
	Remove(key string) error
	ToggleWatched(key string) (*models.WatchlistEntry, error)
	UpdateDetails(key string, rating int, notes string) (*models.WatchlistEntry, error)
}

// WatchlistHandler exposes the watchlist as a small JSON API.
type WatchlistHandler struct {
	Service watchlistService
}

var _ watchlistService = (*watchlistsvc.Service)(nil)

func NewWatchlistHandler(s watchlistService) *WatchlistHandler {
	return &WatchlistHandler{Service: s}
}

// List responds with the full watchlist, newest first.
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.Service.List()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// Add fetches the record for the posted key and prepends it.
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.ID == "" {
		writeJSONError(w, http.StatusBadRequest, "movie id required")
		return
	}

	entry, err := h.Service.Add(r.Context(), request.ID)
	if err != nil {
		switch {
		case errors.Is(err, watchlistsvc.ErrDuplicate):
			writeJSONError(w, http.StatusConflict, "movie already in watchlist")
		case errors.Is(err, records.ErrNotFound):
			writeJSONError(w, http.StatusNotFound, "movie not found")
		default:
			writeJSONError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// Remove deletes the entry for the key in the path. Absent keys still
// respond 204; removal is idempotent.
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if err := h.Service.Remove(key); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleWatched flips the watched flag for the key in the path.
func (h *WatchlistHandler) ToggleWatched(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	entry, err := h.Service.ToggleWatched(key)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		writeJSONError(w, http.StatusNotFound, "movie not in watchlist")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

// UpdateDetails sets the rating and notes for the key in the path.
func (h *WatchlistHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var request models.DetailsUpdate
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.UpdateDetails(key, request.Rating, request.Notes)
	if err != nil {
		if errors.Is(err, watchlistsvc.ErrInvalidRating) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		writeJSONError(w, http.StatusNotFound, "movie not in watchlist")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}
