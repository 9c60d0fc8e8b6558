package domain

import (
	"fmt"
	"strings"
	"time"
)

// MediaRef points at a playable stream
type MediaRef struct {
	URL string `yaml:"url"`
}

// ContentItem represents a single watchable title in the catalog
type ContentItem struct {
	ID          string        // Unique within the catalog
	Title       string        // Display title
	Description string        // Plot synopsis
	PosterURL   string        // Poster image reference
	BackdropURL string        // Backdrop image reference
	Year        int           // Release year
	Genres      []string      // Ordered genre tags
	Rating      float64       // 0-10 audience rating
	Duration    time.Duration // Total runtime
	VideoURL    string        // Playable media reference

	// Optional trailer; nil when the title has none
	Trailer *MediaRef

	Cast      []string
	Director  string
	Language  string
	Subtitles []string // Available subtitle tracks
	Qualities []string // Available quality tiers, best first

	Trending bool
	New      bool

	// Optional resume marker; nil when the title was never started
	ContinueWatching *Progress
}

// HasTrailer reports whether a trailer reference is present
func (c ContentItem) HasTrailer() bool {
	return c.Trailer != nil && c.Trailer.URL != ""
}

// ResumeOffset returns the playback offset implied by the continue-watching
// marker, or zero when there is none
func (c ContentItem) ResumeOffset() time.Duration {
	if c.ContinueWatching == nil {
		return 0
	}
	return c.ContinueWatching.Offset(c.Duration)
}

// HasGenre reports whether the item is tagged with genre (exact match)
func (c ContentItem) HasGenre(genre string) bool {
	for _, g := range c.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// FormattedDuration returns the runtime in a human-readable format
func (c ContentItem) FormattedDuration() string {
	h := int(c.Duration.Hours())
	mins := int(c.Duration.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// GenreLine joins the genre tags for display
func (c ContentItem) GenreLine() string {
	return strings.Join(c.Genres, " • ")
}

// Subtitle returns the secondary info line: year, runtime and rating
func (c ContentItem) Subtitle() string {
	parts := make([]string, 0, 3)
	if c.Year > 0 {
		parts = append(parts, fmt.Sprintf("%d", c.Year))
	}
	if c.Duration > 0 {
		parts = append(parts, c.FormattedDuration())
	}
	if c.Rating > 0 {
		parts = append(parts, fmt.Sprintf("★ %.1f", c.Rating))
	}
	return strings.Join(parts, " · ")
}

// DefaultQuality returns the first available quality tier, or the fallback
func (c ContentItem) DefaultQuality() string {
	if len(c.Qualities) > 0 {
		return c.Qualities[0]
	}
	return FallbackQuality
}

// FallbackQuality is used when a title advertises no quality tiers
const FallbackQuality = "720p"

// ListItem interface implementation for ContentItem

func (c *ContentItem) GetID() string          { return c.ID }
func (c *ContentItem) GetTitle() string       { return c.Title }
func (c *ContentItem) GetYear() int           { return c.Year }
func (c *ContentItem) GetDescription() string { return c.Subtitle() }
func (c *ContentItem) GetProgress() float64 {
	if c.ContinueWatching == nil {
		return 0
	}
	return c.ContinueWatching.Fraction
}
