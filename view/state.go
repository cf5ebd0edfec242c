// Package view holds the presentation state machine and rendering for
// the browse and watchlist pages. State transitions are pure functions
// over an explicit AppState; nothing in this package reaches out to the
// network or mutates shared globals.
package view

import "sync"

// View names for the two-state navigation toggle.
const (
	ViewSearch    = "search"
	ViewWatchlist = "watchlist"
)

// AppState is the explicit presentation state: the current view, the
// banner carousel position and the latest content request token.
type AppState struct {
	CurrentView string
	Carousel    Carousel
	LatestToken uint64
}

// RenderDirective describes what a transition asks the caller to
// render next.
type RenderDirective struct {
	PageTitle string
	NavLabel  string
	NavTarget string
	// FetchPopular is set when entering the search view, which always
	// re-fetches the popular collection.
	FetchPopular bool
	// ShowWatchlist is set when entering the watchlist view.
	ShowWatchlist bool
	// SearchVisible controls the search form.
	SearchVisible bool
}

// NewAppState returns the initial state: search view, no banners yet.
func NewAppState() AppState {
	return AppState{CurrentView: ViewSearch}
}

// Navigate flips the two-state view toggle and returns the next state
// plus what to render. It is a pure function of the current state.
func Navigate(state AppState) (AppState, RenderDirective) {
	next := state
	if state.CurrentView == ViewSearch {
		next.CurrentView = ViewWatchlist
		return next, directiveFor(ViewWatchlist)
	}
	next.CurrentView = ViewSearch
	return next, directiveFor(ViewSearch)
}

// DirectiveFor returns the render directive for an explicitly requested
// view, used when the target view arrives in the request rather than
// from a toggle.
func DirectiveFor(viewName string) RenderDirective {
	if viewName != ViewWatchlist {
		viewName = ViewSearch
	}
	return directiveFor(viewName)
}

func directiveFor(viewName string) RenderDirective {
	if viewName == ViewWatchlist {
		return RenderDirective{
			PageTitle:     "My Watchlist",
			NavLabel:      "Search Movies",
			NavTarget:     ViewSearch,
			ShowWatchlist: true,
		}
	}
	return RenderDirective{
		PageTitle:     "Filmera",
		NavLabel:      "My Watchlist",
		NavTarget:     ViewWatchlist,
		FetchPopular:  true,
		SearchVisible: true,
	}
}

// TokenSource issues monotonically increasing request tokens so a
// superseded in-flight fetch can never overwrite a newer one's result.
type TokenSource struct {
	mu     sync.Mutex
	latest uint64
}

// Begin issues the next token; the result it tags becomes the only one
// eligible to render.
func (t *TokenSource) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest++
	return t.latest
}

// Apply reports whether a completed fetch tagged with token may still
// render, i.e. no newer fetch has started since.
func (t *TokenSource) Apply(token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return token == t.latest
}
