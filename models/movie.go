package models

// Genre is a named genre from the catalog provider.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CatalogMovie represents a movie as returned by the catalog provider.
// It is immutable once fetched and never persisted directly.
type CatalogMovie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	ReleaseDate  string  `json:"release_date"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	Runtime      int     `json:"runtime"`
	Genres       []Genre `json:"genres,omitempty"`
	IMDBID       string  `json:"imdb_id,omitempty"`
}

// CatalogListing is a paginated listing response from the catalog provider.
type CatalogListing struct {
	Page         int            `json:"page"`
	Results      []CatalogMovie `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// PosterNotAvailable is the sentinel the record provider uses for a
// missing poster (and for any other missing field).
const PosterNotAvailable = "N/A"

// RecordMovie represents a movie record from the record provider, keyed by
// a string identifier. Field casing follows the provider's wire format.
type RecordMovie struct {
	ImdbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Plot       string `json:"Plot"`
	Genre      string `json:"Genre"`
	Runtime    string `json:"Runtime"`
	ImdbRating string `json:"imdbRating"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Response   string `json:"Response,omitempty"`
	Error      string `json:"Error,omitempty"`
}

// Found reports whether the provider marked the lookup as successful.
func (m RecordMovie) Found() bool {
	return m.Response != "False"
}

// RecordSearchResult is the record provider's search-by-title response.
type RecordSearchResult struct {
	Search   []RecordMovie `json:"Search"`
	Total    string        `json:"totalResults"`
	Response string        `json:"Response"`
	Error    string        `json:"Error,omitempty"`
}
