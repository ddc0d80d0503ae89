package service

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/slide/internal/domain"
)

// SearchService ranks images in a loaded listing by author
type SearchService struct {
	titles []string // Searchable title per image, same order as the listing
}

// NewSearchService indexes images by display title
func NewSearchService(images []domain.Image) *SearchService {
	titles := make([]string, len(images))
	for i, img := range images {
		titles[i] = img.GetTitle()
	}
	return &SearchService{titles: titles}
}

// Rank returns listing indices whose title fuzzily contains query, best first.
// Ties keep listing order.
func (s *SearchService) Rank(query string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(query, s.titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]int, len(ranks))
	for i, r := range ranks {
		out[i] = r.OriginalIndex
	}
	return out
}

// Best returns the top-ranked index for query
func (s *SearchService) Best(query string) (int, bool) {
	ranked := s.Rank(query)
	if len(ranked) == 0 {
		return 0, false
	}
	return ranked[0], true
}
