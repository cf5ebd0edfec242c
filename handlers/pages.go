package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"filmera/config"
	"filmera/models"
	"filmera/services/records"
	watchlistsvc "filmera/services/watchlist"
	"filmera/view"
)

type discoverService interface {
	Banners(ctx context.Context) ([]models.CatalogMovie, error)
	Popular(ctx context.Context) ([]models.CatalogMovie, error)
	Search(ctx context.Context, query string) ([]models.RecordMovie, error)
}

type recordLookup interface {
	ByID(ctx context.Context, key string) (*models.RecordMovie, error)
}

// PagesHandler renders the application pages. It owns the presentation
// state object and the request token source; no other component keeps
// view state.
type PagesHandler struct {
	Discover  discoverService
	Watchlist watchlistService
	Records   recordLookup
	Renderer  *view.Renderer

	imageBaseURL string
	viewSettings config.ViewSettings

	mu     sync.Mutex
	state  view.AppState
	tokens view.TokenSource
}

func NewPagesHandler(discover discoverService, watchlist watchlistService, lookup recordLookup, imageBaseURL string, settings config.ViewSettings) *PagesHandler {
	return &PagesHandler{
		Discover:     discover,
		Watchlist:    watchlist,
		Records:      lookup,
		Renderer:     view.NewRenderer(),
		imageBaseURL: imageBaseURL,
		viewSettings: settings,
		state:        view.NewAppState(),
	}
}

// Home renders the search or watchlist view depending on the requested
// navigation target. The two views form a toggle, so a request for the
// other view is a Navigate transition; a request for the current view
// re-renders it in place.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	requested := view.ViewSearch
	if r.URL.Query().Get("view") == view.ViewWatchlist {
		requested = view.ViewWatchlist
	}

	h.mu.Lock()
	var directive view.RenderDirective
	if requested != h.state.CurrentView {
		h.state, directive = view.Navigate(h.state)
	} else {
		directive = view.DirectiveFor(requested)
	}
	h.mu.Unlock()

	data := view.PageData{
		Directive:      directive,
		BannerInterval: h.viewSettings.BannerIntervalSeconds,
		Toast:          h.flashToast(r),
	}

	if directive.ShowWatchlist {
		h.renderWatchlist(w, data)
		return
	}
	h.renderSearchHome(w, r, data)
}

func (h *PagesHandler) renderWatchlist(w http.ResponseWriter, data view.PageData) {
	entries := h.Watchlist.List()
	if len(entries) == 0 {
		placeholder := view.PlaceholderFor(view.PlaceholderEmptyWatchlist)
		data.Placeholder = &placeholder
	} else {
		cards := make([]view.MovieCard, len(entries))
		for i, entry := range entries {
			cards[i] = view.CardFromEntry(entry)
		}
		data.Cards = cards
	}
	h.writePage(w, data)
}

func (h *PagesHandler) renderSearchHome(w http.ResponseWriter, r *http.Request, data view.PageData) {
	token := h.tokens.Begin()

	banners, err := h.Discover.Banners(r.Context())
	if err != nil {
		// The carousel simply stays empty; the grid below still loads.
		log.Printf("[pages] fetch banners: %v", err)
	}

	popular, err := h.Discover.Popular(r.Context())

	h.mu.Lock()
	h.state.Carousel = view.NewCarousel(view.BannerURLs(banners, h.imageBaseURL))
	data.Carousel = h.state.Carousel
	h.mu.Unlock()

	if !h.tokens.Apply(token) {
		// A newer fetch superseded this one; show the skeleton and let
		// the newer response paint the real content.
		data.SkeletonCards = h.viewSettings.SkeletonCards
		h.writePage(w, data)
		return
	}

	if err != nil {
		log.Printf("[pages] fetch popular: %v", err)
		placeholder := view.PlaceholderFor(view.PlaceholderError)
		data.Placeholder = &placeholder
		h.writePage(w, data)
		return
	}

	cards := make([]view.MovieCard, len(popular))
	for i, movie := range popular {
		cards[i] = view.CardFromCatalog(movie, h.imageBaseURL, h.Watchlist.Contains)
	}
	data.Cards = cards
	h.writePage(w, data)
}

// Search renders record-provider search results.
func (h *PagesHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := view.PageData{
		Directive:      view.DirectiveFor(view.ViewSearch),
		BannerInterval: h.viewSettings.BannerIntervalSeconds,
		Query:          query,
	}

	token := h.tokens.Begin()
	results, err := h.Discover.Search(r.Context(), query)

	if !h.tokens.Apply(token) {
		data.SkeletonCards = h.viewSettings.SkeletonCards
		h.writePage(w, data)
		return
	}

	switch {
	case errors.Is(err, records.ErrNoResults):
		placeholder := view.PlaceholderFor(view.PlaceholderNoResults)
		data.Placeholder = &placeholder
	case err != nil:
		log.Printf("[pages] search %q: %v", query, err)
		placeholder := view.PlaceholderFor(view.PlaceholderError)
		data.Placeholder = &placeholder
	default:
		cards := make([]view.MovieCard, len(results))
		for i, movie := range results {
			cards[i] = view.CardFromRecord(movie, h.Watchlist.Contains)
		}
		data.Cards = cards
	}
	h.writePage(w, data)
}

// Movie renders the detail modal fragment for one record key.
func (h *PagesHandler) Movie(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	movie, err := h.Records.ByID(r.Context(), key)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, records.ErrNotFound) {
			status = http.StatusNotFound
		}
		w.WriteHeader(status)
		h.renderFragment(w, view.PlaceholderFor(view.PlaceholderError))
		return
	}

	data := view.ModalData{
		Card:        view.CardFromRecord(*movie, h.Watchlist.Contains),
		Movie:       *movie,
		InWatchlist: h.Watchlist.Contains(key),
	}
	for _, entry := range h.Watchlist.List() {
		if entry.Key() == key {
			data.Rating = entry.Rating
			data.Notes = entry.Notes
			break
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Renderer.Modal(w, data); err != nil {
		log.Printf("[pages] render modal: %v", err)
	}
}

// The four mutation forms all funnel through the same path: the raw
// control event becomes a typed Intent, dispatchIntent applies it and
// picks the redirect target.

// AddForm handles the grid form post.
func (h *PagesHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	intent := view.MapEvent("add-button", map[string]string{"key": r.PostFormValue("key")})
	http.Redirect(w, r, h.dispatchIntent(r.Context(), intent), http.StatusSeeOther)
}

// RemoveForm handles the watchlist remove form post.
func (h *PagesHandler) RemoveForm(w http.ResponseWriter, r *http.Request) {
	intent := view.MapEvent("remove-button", map[string]string{"key": mux.Vars(r)["key"]})
	http.Redirect(w, r, h.dispatchIntent(r.Context(), intent), http.StatusSeeOther)
}

// WatchedForm toggles the watched flag from the watchlist view.
func (h *PagesHandler) WatchedForm(w http.ResponseWriter, r *http.Request) {
	intent := view.MapEvent("watched-toggle", map[string]string{"key": mux.Vars(r)["key"]})
	http.Redirect(w, r, h.dispatchIntent(r.Context(), intent), http.StatusSeeOther)
}

// DetailsForm saves the rating and notes from the modal.
func (h *PagesHandler) DetailsForm(w http.ResponseWriter, r *http.Request) {
	intent := view.MapEvent("save-details", map[string]string{
		"key":    mux.Vars(r)["key"],
		"rating": r.PostFormValue("rating"),
		"notes":  r.PostFormValue("notes"),
	})
	http.Redirect(w, r, h.dispatchIntent(r.Context(), intent), http.StatusSeeOther)
}

// dispatchIntent performs the mutation an intent asks for and returns
// where to send the browser next.
func (h *PagesHandler) dispatchIntent(ctx context.Context, intent view.Intent) string {
	if intent.Key == "" {
		return "/?toast=error"
	}

	switch intent.Kind {
	case view.IntentAdd:
		_, err := h.Watchlist.Add(ctx, intent.Key)
		switch {
		case errors.Is(err, watchlistsvc.ErrDuplicate):
			return "/?toast=duplicate"
		case errors.Is(err, records.ErrNotFound):
			return "/?toast=notfound"
		case err != nil:
			log.Printf("[pages] add %q: %v", intent.Key, err)
			return "/?toast=error"
		}
		return "/?toast=added"

	case view.IntentRemove:
		if err := h.Watchlist.Remove(intent.Key); err != nil {
			log.Printf("[pages] remove %q: %v", intent.Key, err)
			return "/?view=watchlist&toast=error"
		}
		return "/?view=watchlist&toast=removed"

	case view.IntentToggle:
		if _, err := h.Watchlist.ToggleWatched(intent.Key); err != nil {
			log.Printf("[pages] toggle %q: %v", intent.Key, err)
			return "/?view=watchlist&toast=error"
		}
		return "/?view=watchlist"

	case view.IntentSaveDetails:
		if _, err := h.Watchlist.UpdateDetails(intent.Key, intent.Rating, intent.Notes); err != nil {
			log.Printf("[pages] update details %q: %v", intent.Key, err)
			return "/movie/" + intent.Key + "?toast=error"
		}
		return "/?view=watchlist&toast=saved"
	}

	return "/?toast=error"
}

func (h *PagesHandler) flashToast(r *http.Request) *view.Toast {
	var message, severity string
	switch r.URL.Query().Get("toast") {
	case "added":
		message, severity = "Added to your watchlist", view.ToastSuccess
	case "removed":
		message, severity = "Removed from your watchlist", view.ToastInfo
	case "saved":
		message, severity = "Details saved", view.ToastSuccess
	case "duplicate":
		message, severity = "Already in your watchlist", view.ToastInfo
	case "notfound":
		message, severity = "Movie not found", view.ToastError
	case "error":
		message, severity = "Something went wrong", view.ToastError
	default:
		return nil
	}
	return &view.Toast{
		Message:         message,
		Severity:        severity,
		DurationSeconds: h.viewSettings.ToastDurationSeconds,
	}
}

func (h *PagesHandler) writePage(w http.ResponseWriter, data view.PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Renderer.Page(w, data); err != nil {
		log.Printf("[pages] render page: %v", err)
	}
}

func (h *PagesHandler) renderFragment(w http.ResponseWriter, p view.Placeholder) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Renderer.Placeholder(w, p); err != nil {
		log.Printf("[pages] render placeholder: %v", err)
	}
}
