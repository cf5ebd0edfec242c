package view

// Toast severities.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// Toast is a transient notification. It renders in two phases: shown
// immediately, then hidden after DurationSeconds.
type Toast struct {
	Message         string
	Severity        string
	DurationSeconds int
}

// Placeholder kinds for an empty content area.
const (
	PlaceholderNoResults      = "no-results"
	PlaceholderEmptyWatchlist = "empty-watchlist"
	PlaceholderError          = "error"
)

// Placeholder is the typed empty/error state rendered instead of a
// grid: an icon, a title and a subtitle per kind.
type Placeholder struct {
	Kind     string
	Icon     string
	Title    string
	Subtitle string
}

// PlaceholderFor returns the placeholder content for a kind. Unknown
// kinds fall back to the error placeholder so a fetch outcome always
// resolves to something visible.
func PlaceholderFor(kind string) Placeholder {
	switch kind {
	case PlaceholderNoResults:
		return Placeholder{
			Kind:     kind,
			Icon:     "icon-search",
			Title:    "No movies found",
			Subtitle: "Try a different title or check the spelling.",
		}
	case PlaceholderEmptyWatchlist:
		return Placeholder{
			Kind:     kind,
			Icon:     "icon-bookmark",
			Title:    "Your watchlist is empty",
			Subtitle: "Search for a movie and add it to get started.",
		}
	default:
		return Placeholder{
			Kind:     PlaceholderError,
			Icon:     "icon-alert",
			Title:    "Something went wrong",
			Subtitle: "Could not load movies. Please try again.",
		}
	}
}
