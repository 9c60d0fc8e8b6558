// Package search filters the catalog for the search screen.
//
// Filtering is a linear, case-insensitive substring scan recomputed on every
// query or genre change. There is no index and no ranking: results keep
// catalog order. Fuzzy matching is only used for suggestions and highlighting.
package search

import (
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// AllGenres is the genre sentinel that disables genre filtering
const AllGenres = "All"

// Filter returns the items matching query and genre, in input order.
// A blank query matches everything; genre "All" (or "") matches everything.
// A non-blank query is matched as typed, surrounding spaces included.
func Filter(items []domain.ContentItem, query, genre string) []domain.ContentItem {
	needle := ""
	if strings.TrimSpace(query) != "" {
		needle = strings.ToLower(query)
	}

	results := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		if !MatchesGenre(item, genre) {
			continue
		}
		if needle != "" && !MatchesQuery(item, needle) {
			continue
		}
		results = append(results, item)
	}
	return results
}

// MatchesGenre reports whether item passes the genre filter
func MatchesGenre(item domain.ContentItem, genre string) bool {
	if genre == "" || genre == AllGenres {
		return true
	}
	return item.HasGenre(genre)
}

// MatchesQuery reports whether the lowercase needle occurs in the title,
// description, any genre tag or any cast member
func MatchesQuery(item domain.ContentItem, needle string) bool {
	if containsFold(item.Title, needle) || containsFold(item.Description, needle) {
		return true
	}
	for _, g := range item.Genres {
		if containsFold(g, needle) {
			return true
		}
	}
	for _, name := range item.Cast {
		if containsFold(name, needle) {
			return true
		}
	}
	return false
}

// GenreOptions returns the selectable genre chips: "All" then the catalog genres
func GenreOptions(genres []string) []string {
	opts := make([]string, 0, len(genres)+1)
	opts = append(opts, AllGenres)
	for _, g := range genres {
		if g != AllGenres {
			opts = append(opts, g)
		}
	}
	return opts
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
