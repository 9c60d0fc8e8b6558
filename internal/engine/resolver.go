package engine

import (
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// CatalogResolver resolves stream runtimes from catalog metadata. Both the
// main video and the trailer of each item are openable; trailers get a fixed
// runtime since the catalog does not carry one.
func CatalogResolver(c domain.Catalog) DurationResolver {
	runtimes := make(map[string]time.Duration)
	for _, item := range c.All() {
		if item.VideoURL != "" && item.Duration > 0 {
			runtimes[item.VideoURL] = item.Duration
		}
		if item.HasTrailer() {
			if _, ok := runtimes[item.Trailer.URL]; !ok {
				runtimes[item.Trailer.URL] = TrailerRuntime
			}
		}
	}
	return func(uri string) (time.Duration, bool) {
		d, ok := runtimes[uri]
		return d, ok
	}
}

// TrailerRuntime is the simulated length of every trailer
const TrailerRuntime = 2 * time.Minute
