package view

// Carousel is the two-slide crossfade banner state. Exactly two slide
// slots exist; Advance moves the image cursor and toggles which slot is
// active.
type Carousel struct {
	Images      []string
	Index       int
	ActiveSlide int // 0 or 1
}

// NewCarousel builds carousel state from the eligible banner image
// URLs. With zero images nothing is ever rendered; with one image the
// first slide is set but the carousel must never be started.
func NewCarousel(images []string) Carousel {
	return Carousel{Images: images}
}

// Enabled reports whether the carousel should tick at all. Fewer than
// two eligible banners disable it entirely.
func (c Carousel) Enabled() bool {
	return len(c.Images) >= 2
}

// Current returns the image shown on the active slide, empty when there
// are no eligible banners.
func (c Carousel) Current() string {
	if len(c.Images) == 0 {
		return ""
	}
	return c.Images[c.Index]
}

// Advance moves exactly one slide forward, wrapping the last index back
// to zero, and flips the active slot. A disabled carousel is returned
// unchanged.
func (c Carousel) Advance() Carousel {
	if !c.Enabled() {
		return c
	}
	next := c
	next.Index++
	if next.Index >= len(next.Images) {
		next.Index = 0
	}
	next.ActiveSlide = 1 - next.ActiveSlide
	return next
}
