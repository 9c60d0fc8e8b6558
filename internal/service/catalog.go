package service

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
)

// Home row titles
const (
	RowContinueWatching = "Continue Watching"
	RowTrending         = "Trending Now"
	RowNewReleases      = "New Releases"
	RowPopular          = "Popular Movies"
)

// DefaultHomeGenres are the genres given their own home row
var DefaultHomeGenres = []string{"Action", "Drama"}

const suggestionLimit = 5

// Row is one titled strip of items on the home screen
type Row struct {
	Title string
	Items []domain.ContentItem
}

// SearchResult holds filtered items, plus fuzzy suggestions when nothing matched
type SearchResult struct {
	Query       string
	Genre       string
	Items       []domain.ContentItem
	Suggestions []domain.ContentItem
}

// CatalogService answers every read the browse screens make
type CatalogService struct {
	catalog    domain.Catalog
	logger     *slog.Logger
	homeGenres []string
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog domain.Catalog, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		catalog:    catalog,
		logger:     logger,
		homeGenres: DefaultHomeGenres,
	}
}

// SetHomeGenres replaces the genres shown as home rows, in order
func (s *CatalogService) SetHomeGenres(genres []string) {
	s.homeGenres = append([]string(nil), genres...)
}

// GenreRowTitle names the home row for genre
func GenreRowTitle(genre string) string {
	return genre + " Movies"
}

// HomeRows returns the home screen rows in display order. Empty rows are omitted.
func (s *CatalogService) HomeRows() []Row {
	candidates := []Row{
		{Title: RowContinueWatching, Items: s.catalog.ContinueWatching()},
		{Title: RowTrending, Items: s.catalog.Trending()},
		{Title: RowNewReleases, Items: s.catalog.NewReleases()},
		{Title: RowPopular, Items: s.catalog.All()},
	}
	for _, g := range s.homeGenres {
		if g == "" || g == search.AllGenres {
			continue
		}
		candidates = append(candidates, Row{Title: GenreRowTitle(g), Items: s.byGenre(g)})
	}

	rows := make([]Row, 0, len(candidates))
	for _, r := range candidates {
		if len(r.Items) > 0 {
			rows = append(rows, r)
		}
	}
	return rows
}

// byGenre returns the items tagged genre, in catalog order
func (s *CatalogService) byGenre(genre string) []domain.ContentItem {
	var out []domain.ContentItem
	for _, item := range s.catalog.All() {
		if search.MatchesGenre(item, genre) {
			out = append(out, item)
		}
	}
	return out
}

// Featured returns the hero item
func (s *CatalogService) Featured() (domain.ContentItem, bool) {
	return s.catalog.Featured()
}

// Detail looks up one item by ID
func (s *CatalogService) Detail(id string) (domain.ContentItem, error) {
	item, err := s.catalog.Get(id)
	if err != nil {
		s.logger.Debug("detail lookup failed", "id", id, "error", err)
		return domain.ContentItem{}, fmt.Errorf("detail %q: %w", id, err)
	}
	return item, nil
}

// Items resolves IDs in order, skipping any the catalog does not know
func (s *CatalogService) Items(ids []string) []domain.ContentItem {
	out := make([]domain.ContentItem, 0, len(ids))
	for _, id := range ids {
		if item, err := s.catalog.Get(id); err == nil {
			out = append(out, item)
		}
	}
	return out
}

// Search filters the catalog by query and genre. When a non-empty query
// matches nothing, close titles are offered as suggestions.
func (s *CatalogService) Search(query, genre string) SearchResult {
	all := s.catalog.All()
	res := SearchResult{
		Query: query,
		Genre: genre,
		Items: search.Filter(all, query, genre),
	}
	if len(res.Items) == 0 && query != "" {
		res.Suggestions = search.Suggest(query, all, suggestionLimit)
	}
	s.logger.Debug("search", "query", query, "genre", genre,
		"results", len(res.Items), "suggestions", len(res.Suggestions))
	return res
}

// Genres returns the genre chips, "All" first
func (s *CatalogService) Genres() []string {
	return search.GenreOptions(s.catalog.Genres())
}

// InitialWatchlist returns the IDs My List starts with
func (s *CatalogService) InitialWatchlist(n int) []string {
	items := s.catalog.Slice(n)
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
