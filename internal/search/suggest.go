package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
	sfuzzy "github.com/sahilm/fuzzy"
)

// Suggest returns up to limit "did you mean" titles for a query that matched
// nothing. Titles are ranked by edit distance; ties keep catalog order.
func Suggest(query string, items []domain.ContentItem, limit int) []domain.ContentItem {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 || len(items) == 0 {
		return nil
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}

	ranks := fuzzy.RankFindFold(query, titles)
	if len(ranks) == 0 {
		// Typos break subsequence matching; fall back to per-word distance
		ranks = rankByWords(query, titles)
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	out := make([]domain.ContentItem, len(ranks))
	for i, r := range ranks {
		out[i] = items[r.OriginalIndex]
	}
	return out
}

// rankByWords keeps titles with a word within a small edit distance of the query
func rankByWords(query string, titles []string) fuzzy.Ranks {
	q := strings.ToLower(query)
	maxDist := allowedTypos(len([]rune(q)))
	if maxDist == 0 {
		return nil
	}

	var ranks fuzzy.Ranks
	for i, title := range titles {
		best := -1
		for _, word := range strings.Fields(strings.ToLower(title)) {
			d := fuzzy.LevenshteinDistance(q, word)
			if best < 0 || d < best {
				best = d
			}
		}
		if best >= 0 && best <= maxDist {
			ranks = append(ranks, fuzzy.Rank{Source: query, Target: title, Distance: best, OriginalIndex: i})
		}
	}
	return ranks
}

// allowedTypos returns the edit budget for a word of the given length:
// 1-3 chars = 0, 4-6 chars = 1, 7+ chars = 2
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

// Highlight returns the rune positions in title that match query, for
// rendering. Positions come from fuzzy subsequence matching so they also
// cover substring hits.
func Highlight(query, title string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	lower := strings.ToLower(title)
	if idx := strings.Index(lower, strings.ToLower(query)); idx >= 0 {
		start := len([]rune(lower[:idx]))
		n := len([]rune(query))
		out := make([]int, n)
		for i := range out {
			out[i] = start + i
		}
		return out
	}
	matches := sfuzzy.Find(strings.ToLower(query), []string{lower})
	if len(matches) == 0 {
		return nil
	}
	return byteToRuneIndexes(lower, matches[0].MatchedIndexes)
}

// byteToRuneIndexes converts byte offsets reported by sahilm/fuzzy into rune positions
func byteToRuneIndexes(s string, byteIdx []int) []int {
	runeAt := make(map[int]int, len(s))
	r := 0
	for b := range s {
		runeAt[b] = r
		r++
	}
	out := make([]int, 0, len(byteIdx))
	for _, b := range byteIdx {
		if ri, ok := runeAt[b]; ok {
			out = append(out, ri)
		}
	}
	return out
}
