package view

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"filmera/models"
)

// PageData is everything the full page template needs for one render.
type PageData struct {
	Directive      RenderDirective
	Carousel       Carousel
	BannerInterval int
	Cards          []MovieCard
	Placeholder    *Placeholder
	SkeletonCards  int
	Toast          *Toast
	Query          string
}

// ModalData feeds the movie detail modal. The rating control and notes
// field render only for watchlist members; everyone else gets the
// informational notice.
type ModalData struct {
	Card        MovieCard
	Movie       models.RecordMovie
	InWatchlist bool
	Rating      int
	Notes       string
}

// Renderer executes the page and fragment templates. Re-rendering a
// region always replaces prior content; templates never append.
type Renderer struct {
	tpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() *Renderer {
	tpl := template.Must(template.New("page").Funcs(template.FuncMap{
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i
			}
			return out
		},
		"stars": func() []int { return []int{1, 2, 3, 4, 5} },
		"json": func(v any) string {
			b, _ := json.Marshal(v)
			return string(b)
		},
	}).Parse(pageTpl))
	template.Must(tpl.New("grid").Parse(gridTpl))
	template.Must(tpl.New("skeleton").Parse(skeletonTpl))
	template.Must(tpl.New("placeholder").Parse(placeholderTpl))
	template.Must(tpl.New("modal").Parse(modalTpl))
	template.Must(tpl.New("toast").Parse(toastTpl))
	return &Renderer{tpl: tpl}
}

// Page renders the full document.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	if err := r.tpl.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// Grid renders only the populated movie grid fragment.
func (r *Renderer) Grid(w io.Writer, cards []MovieCard) error {
	if err := r.tpl.ExecuteTemplate(w, "grid", cards); err != nil {
		return fmt.Errorf("render grid: %w", err)
	}
	return nil
}

// Skeleton renders the in-flight placeholder grid of n cards.
func (r *Renderer) Skeleton(w io.Writer, n int) error {
	if err := r.tpl.ExecuteTemplate(w, "skeleton", n); err != nil {
		return fmt.Errorf("render skeleton: %w", err)
	}
	return nil
}

// Placeholder renders the typed empty/error state fragment.
func (r *Renderer) Placeholder(w io.Writer, p Placeholder) error {
	if err := r.tpl.ExecuteTemplate(w, "placeholder", p); err != nil {
		return fmt.Errorf("render placeholder: %w", err)
	}
	return nil
}

// Modal renders the movie detail modal fragment.
func (r *Renderer) Modal(w io.Writer, data ModalData) error {
	if err := r.tpl.ExecuteTemplate(w, "modal", data); err != nil {
		return fmt.Errorf("render modal: %w", err)
	}
	return nil
}

const pageTpl = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Directive.PageTitle}}</title>
<link rel="stylesheet" href="/static/style.css">
<script src="/static/app.js" defer></script>
</head>
<body>
<header class="site-header">
  <h1 id="page-title">{{.Directive.PageTitle}}</h1>
  <a id="nav-link" href="/?view={{.Directive.NavTarget}}" data-view="{{.Directive.NavTarget}}">{{.Directive.NavLabel}}</a>
  {{if .Directive.SearchVisible}}
  <form id="search-form" action="/search" method="get">
    <input id="search-input" name="query" type="search" value="{{.Query}}" placeholder="Search movies...">
  </form>
  {{end}}
</header>
{{if .Carousel.Images}}
<section class="banner-carousel"{{if .Carousel.Enabled}} data-interval-seconds="{{.BannerInterval}}" data-images="{{json .Carousel.Images}}"{{end}}>
  <div class="carousel-slide{{if eq .Carousel.ActiveSlide 0}} active{{end}}"{{if eq .Carousel.ActiveSlide 0}} style="background-image: url({{.Carousel.Current}})"{{end}}></div>
  <div class="carousel-slide{{if eq .Carousel.ActiveSlide 1}} active{{end}}"{{if eq .Carousel.ActiveSlide 1}} style="background-image: url({{.Carousel.Current}})"{{end}}></div>
</section>
{{end}}
<main id="content-area">
{{if .Placeholder}}{{template "placeholder" .Placeholder}}{{else if gt .SkeletonCards 0}}{{template "skeleton" .SkeletonCards}}{{else}}{{template "grid" .Cards}}{{end}}
</main>
{{if .Toast}}{{template "toast" .Toast}}{{end}}
</body>
</html>`

const gridTpl = `<div class="movie-grid">
{{range .}}
  <div class="movie-card">
    <a class="movie-poster-wrapper" href="/movie/{{.Key}}">
      <img src="{{.PosterURL}}" alt="{{.Title}} poster" class="movie-poster">
    </a>
    <div class="movie-details">
      <div class="movie-title-rating">
        <h3 class="movie-title"><a href="/movie/{{.Key}}">{{.Title}}</a> <span class="movie-year">({{.Year}})</span></h3>
        <div class="movie-rating"><span>{{.Rating}}</span></div>
      </div>
      <div class="movie-meta">
        <span>{{.Runtime}}</span>
        <span>{{.Genres}}</span>
      </div>
      <p class="movie-plot">{{.Plot}}</p>
      <div class="movie-actions">
        {{if .Managed}}
        <form method="post" action="/watchlist/{{.Key}}/watched">
          <button class="action-btn watched-toggle{{if .Watched}} watched{{end}}" type="submit">{{if .Watched}}Watched ✓{{else}}Mark Watched{{end}}</button>
        </form>
        <form method="post" action="/watchlist/{{.Key}}/remove">
          <button class="action-btn remove" type="submit">Remove</button>
        </form>
        {{else if .InWatchlist}}
        <button class="action-btn added" disabled>Added</button>
        {{else if .Key}}
        <form method="post" action="/watchlist/add">
          <input type="hidden" name="key" value="{{.Key}}">
          <button class="action-btn" type="submit">Add to Watchlist</button>
        </form>
        {{end}}
      </div>
    </div>
  </div>
{{end}}
</div>`

const skeletonTpl = `<div class="movie-grid">
{{range seq .}}
  <div class="movie-card">
    <div class="skeleton skeleton-poster"></div>
    <div class="skeleton-details">
      <div class="skeleton skeleton-title"></div>
      <div class="skeleton skeleton-meta"></div>
      <div class="skeleton skeleton-plot"></div>
      <div class="skeleton skeleton-button"></div>
    </div>
  </div>
{{end}}
</div>`

const placeholderTpl = `<div class="placeholder placeholder-{{.Kind}}">
  <svg class="placeholder-icon"><use href="#{{.Icon}}"></use></svg>
  <h2 class="placeholder-title">{{.Title}}</h2>
  <p class="placeholder-subtitle">{{.Subtitle}}</p>
</div>`

const modalTpl = `<div class="modal-overlay">
  <div class="modal">
    <img src="{{.Card.PosterURL}}" alt="{{.Card.Title}} poster" class="modal-poster">
    <div class="modal-body">
      <h2>{{.Card.Title}} <span class="movie-year">({{.Card.Year}})</span></h2>
      <div class="movie-meta">
        <span>{{.Card.Runtime}}</span>
        <span>{{.Card.Genres}}</span>
        <span>{{.Card.Rating}}</span>
      </div>
      <p class="modal-plot">{{.Movie.Plot}}</p>
      <p class="modal-credits">Director: {{.Movie.Director}}</p>
      <p class="modal-credits">Cast: {{.Movie.Actors}}</p>
      {{if .InWatchlist}}
      <form method="post" action="/watchlist/{{.Card.Key}}/details" class="modal-user-fields">
        <div class="star-rating">
          {{$rating := .Rating}}
          {{range stars}}
          <label class="star{{if le . $rating}} filled{{end}}">
            <input type="radio" name="rating" value="{{.}}"{{if eq . $rating}} checked{{end}}>&#9733;
          </label>
          {{end}}
        </div>
        <textarea name="notes" placeholder="Your notes...">{{.Notes}}</textarea>
        <button type="submit" class="action-btn">Save</button>
      </form>
      {{else}}
      <p class="modal-notice">Add this movie to your watchlist to rate it and keep notes.</p>
      {{end}}
    </div>
  </div>
</div>`

const toastTpl = `<div class="toast toast-{{.Severity}} show" data-duration-seconds="{{.DurationSeconds}}">{{.Message}}</div>`
