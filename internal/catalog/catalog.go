// Package catalog provides the fixed, read-only content catalog.
//
// The catalog is decoded once from YAML (the bundled catalog.yaml or a user
// supplied file) and never mutated afterwards. Every accessor hands out
// copies so callers cannot alter what other screens see.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mmcdole/marquee/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var bundled []byte

// Catalog implements domain.Catalog over an in-memory item list
type Catalog struct {
	items []domain.ContentItem
	index map[string]int
}

var _ domain.Catalog = (*Catalog)(nil)

// Default returns the bundled mock catalog
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(bundled))
}

// LoadFile reads a catalog from a YAML file on disk
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a YAML catalog
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrEmptyCatalog
		}
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	items, err := mapItems(doc.Items)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return New(items), nil
}

// New builds a catalog from already validated items. Callers must ensure
// identifiers are unique; later duplicates shadow nothing and are unreachable by Get.
func New(items []domain.ContentItem) *Catalog {
	c := &Catalog{
		items: make([]domain.ContentItem, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, item := range items {
		c.items[i] = cloneItem(item)
		if _, exists := c.index[item.ID]; !exists {
			c.index[item.ID] = i
		}
	}
	return c
}

// All returns every item in catalog order
func (c *Catalog) All() []domain.ContentItem {
	return c.collect(func(domain.ContentItem) bool { return true })
}

// Get looks up a single item by identifier
func (c *Catalog) Get(id string) (domain.ContentItem, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.ContentItem{}, fmt.Errorf("id %q: %w", id, domain.ErrItemNotFound)
	}
	return cloneItem(c.items[i]), nil
}

// Featured returns the hero item: the first trending title, else the first title
func (c *Catalog) Featured() (domain.ContentItem, bool) {
	if len(c.items) == 0 {
		return domain.ContentItem{}, false
	}
	for _, item := range c.items {
		if item.Trending {
			return cloneItem(item), true
		}
	}
	return cloneItem(c.items[0]), true
}

// Trending returns titles flagged as trending
func (c *Catalog) Trending() []domain.ContentItem {
	return c.collect(func(it domain.ContentItem) bool { return it.Trending })
}

// NewReleases returns titles flagged as new
func (c *Catalog) NewReleases() []domain.ContentItem {
	return c.collect(func(it domain.ContentItem) bool { return it.New })
}

// ContinueWatching returns titles carrying a resume marker
func (c *Catalog) ContinueWatching() []domain.ContentItem {
	return c.collect(func(it domain.ContentItem) bool { return it.ContinueWatching != nil })
}

// Genres returns the distinct genre tags in first-seen order
func (c *Catalog) Genres() []string {
	seen := make(map[string]bool)
	var genres []string
	for _, item := range c.items {
		for _, g := range item.Genres {
			if !seen[g] {
				seen[g] = true
				genres = append(genres, g)
			}
		}
	}
	return genres
}

// Slice returns the first n items (fewer if the catalog is smaller)
func (c *Catalog) Slice(n int) []domain.ContentItem {
	if n < 0 {
		n = 0
	}
	if n > len(c.items) {
		n = len(c.items)
	}
	out := make([]domain.ContentItem, n)
	for i := 0; i < n; i++ {
		out[i] = cloneItem(c.items[i])
	}
	return out
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}

func (c *Catalog) collect(keep func(domain.ContentItem) bool) []domain.ContentItem {
	out := make([]domain.ContentItem, 0, len(c.items))
	for _, item := range c.items {
		if keep(item) {
			out = append(out, cloneItem(item))
		}
	}
	return out
}

// cloneItem deep-copies the mutable parts of an item
func cloneItem(item domain.ContentItem) domain.ContentItem {
	item.Genres = cloneStrings(item.Genres)
	item.Cast = cloneStrings(item.Cast)
	item.Subtitles = cloneStrings(item.Subtitles)
	item.Qualities = cloneStrings(item.Qualities)
	if item.Trailer != nil {
		t := *item.Trailer
		item.Trailer = &t
	}
	if item.ContinueWatching != nil {
		p := *item.ContinueWatching
		item.ContinueWatching = &p
	}
	return item
}
