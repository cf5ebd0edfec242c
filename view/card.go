package view

import (
	"fmt"
	"strings"

	"filmera/models"
)

// PlaceholderPoster is served when a provider has no poster for a movie.
const PlaceholderPoster = "/static/placeholder.svg"

const (
	catalogPlotLimit = 100
	recordPlotLimit  = 150
)

// MovieCard is the unified display model both provider shapes normalize
// into before rendering, so the grid template never branches on where a
// movie came from.
type MovieCard struct {
	Key         string
	Title       string
	Year        string
	PosterURL   string
	Rating      string
	Runtime     string
	Genres      string
	Plot        string
	InWatchlist bool
	// Watched and Managed only matter on the watchlist view, where the
	// card carries its own remove and watched-toggle controls instead of
	// the add button.
	Watched bool
	Managed bool
}

// CardFromCatalog normalizes a catalog-provider movie. The watchlist
// cross reference is the record key, so a catalog movie without one can
// never show as added.
func CardFromCatalog(movie models.CatalogMovie, imageBaseURL string, inWatchlist func(string) bool) MovieCard {
	card := MovieCard{
		Key:       movie.IMDBID,
		Title:     movie.Title,
		Year:      "N/A",
		PosterURL: PlaceholderPoster,
		Rating:    "N/A",
		Runtime:   "N/A",
		Genres:    "N/A",
		Plot:      truncatePlot(movie.Overview, catalogPlotLimit),
	}
	if len(movie.ReleaseDate) >= 4 {
		card.Year = movie.ReleaseDate[:4]
	}
	if movie.PosterPath != "" {
		card.PosterURL = imageBaseURL + "w200" + movie.PosterPath
	}
	if movie.VoteAverage > 0 {
		card.Rating = fmt.Sprintf("%.1f", movie.VoteAverage)
	}
	if movie.Runtime > 0 {
		card.Runtime = fmt.Sprintf("%d min", movie.Runtime)
	}
	if len(movie.Genres) > 0 {
		names := make([]string, len(movie.Genres))
		for i, g := range movie.Genres {
			names[i] = g.Name
		}
		card.Genres = strings.Join(names, ", ")
	}
	if card.Key != "" && inWatchlist != nil {
		card.InWatchlist = inWatchlist(card.Key)
	}
	return card
}

// CardFromRecord normalizes a record-provider movie.
func CardFromRecord(movie models.RecordMovie, inWatchlist func(string) bool) MovieCard {
	card := MovieCard{
		Key:       movie.ImdbID,
		Title:     movie.Title,
		Year:      movie.Year,
		PosterURL: movie.Poster,
		Rating:    movie.ImdbRating,
		Runtime:   movie.Runtime,
		Genres:    movie.Genre,
		Plot:      truncatePlot(movie.Plot, recordPlotLimit),
	}
	if card.PosterURL == "" || card.PosterURL == models.PosterNotAvailable {
		card.PosterURL = PlaceholderPoster
	}
	if card.Rating == "" || card.Rating == models.PosterNotAvailable {
		card.Rating = "N/A"
	}
	if card.Key != "" && inWatchlist != nil {
		card.InWatchlist = inWatchlist(card.Key)
	}
	return card
}

// CardFromEntry normalizes a watchlist entry for the watchlist view,
// where every card is a member and exposes its management controls.
func CardFromEntry(entry models.WatchlistEntry) MovieCard {
	card := CardFromRecord(entry.RecordMovie, func(string) bool { return true })
	card.Watched = entry.IsWatched
	card.Managed = true
	return card
}

// BannerURLs maps eligible banner movies to full-size backdrop URLs.
func BannerURLs(movies []models.CatalogMovie, imageBaseURL string) []string {
	urls := make([]string, 0, len(movies))
	for _, movie := range movies {
		if movie.BackdropPath == "" {
			continue
		}
		urls = append(urls, imageBaseURL+"original"+movie.BackdropPath)
	}
	return urls
}

func truncatePlot(plot string, limit int) string {
	if plot == "" || plot == models.PosterNotAvailable {
		return ""
	}
	runes := []rune(plot)
	if len(runes) <= limit {
		return plot
	}
	return string(runes[:limit]) + "..."
}
