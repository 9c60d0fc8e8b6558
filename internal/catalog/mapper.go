package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// mapItems converts decoded entries to domain items, validating as it goes
func mapItems(dtos []itemDTO) ([]domain.ContentItem, error) {
	if len(dtos) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(dtos))
	items := make([]domain.ContentItem, 0, len(dtos))
	for i, d := range dtos {
		id := strings.TrimSpace(d.ID)
		switch {
		case id == "":
			return nil, fmt.Errorf("entry %d: missing id: %w", i, domain.ErrInvalidItem)
		case strings.TrimSpace(d.Title) == "":
			return nil, fmt.Errorf("entry %q: missing title: %w", id, domain.ErrInvalidItem)
		case strings.TrimSpace(d.Video) == "":
			return nil, fmt.Errorf("entry %q: missing video: %w", id, domain.ErrInvalidItem)
		case seen[id]:
			return nil, fmt.Errorf("entry %q: %w", id, domain.ErrDuplicateID)
		}
		seen[id] = true
		items = append(items, mapItem(id, d))
	}
	return items, nil
}

func mapItem(id string, d itemDTO) domain.ContentItem {
	item := domain.ContentItem{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		PosterURL:   d.Poster,
		BackdropURL: d.Backdrop,
		Year:        d.Year,
		Genres:      cloneStrings(d.Genres),
		Rating:      d.Rating,
		Duration:    time.Duration(d.DurationMinutes) * time.Minute,
		VideoURL:    d.Video,
		Cast:        cloneStrings(d.Cast),
		Director:    d.Director,
		Language:    d.Language,
		Subtitles:   cloneStrings(d.Subtitles),
		Qualities:   cloneStrings(d.Quality),
		Trending:    d.Trending,
		New:         d.New,
	}

	if d.Trailer != "" {
		item.Trailer = &domain.MediaRef{URL: d.Trailer}
	}
	if d.Continue != nil {
		item.ContinueWatching = &domain.Progress{
			Fraction:  d.Continue.Progress,
			UpdatedAt: d.Continue.Timestamp,
		}
	}

	return item
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
