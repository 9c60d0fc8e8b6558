package domain

// ListItem is the interface rows and lists render.
// ContentItem implements it directly.
type ListItem interface {
	// GetID returns the unique identifier for this item
	GetID() string

	// GetTitle returns the display title
	GetTitle() string

	// GetYear returns the release year (0 if unknown)
	GetYear() int

	// GetDescription returns secondary info for display (e.g., "2024 · 2h 1m")
	GetDescription() string

	// GetProgress returns the continue-watching fraction, 0 when unstarted
	GetProgress() float64
}

// Catalog is the read-only content source screens consume
type Catalog interface {
	All() []ContentItem
	Get(id string) (ContentItem, error)
	Featured() (ContentItem, bool)
	Trending() []ContentItem
	NewReleases() []ContentItem
	ContinueWatching() []ContentItem
	Genres() []string
	Slice(n int) []ContentItem
}
