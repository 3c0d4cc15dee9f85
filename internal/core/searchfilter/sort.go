package searchfilter

import (
	"sort"

	"listing-service/internal/core/domain"
)

type lessFunc func(a, b *domain.Listing) int

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func badgeRank(l *domain.Listing) int {
	if l.Badge != "" {
		return 0
	}
	return 1
}

var comparators = map[domain.SortKey]lessFunc{
	domain.SortPriceAsc:  func(a, b *domain.Listing) int { return compareFloat(a.Price, b.Price) },
	domain.SortPriceDesc: func(a, b *domain.Listing) int { return compareFloat(b.Price, a.Price) },
	domain.SortAgeAsc:    func(a, b *domain.Listing) int { return a.AgeYears - b.AgeYears },
	domain.SortAreaDesc:  func(a, b *domain.Listing) int { return compareFloat(b.Area, a.Area) },
	domain.SortRecommended: func(a, b *domain.Listing) int {
		return badgeRank(a) - badgeRank(b)
	},
}

// SortProperties возвращает отсортированную копию. При равенстве ключа порядок по ID.
// Неизвестный ключ сортирует как recommended: сначала объявления с бейджем.
func SortProperties(listings []domain.Listing, key domain.SortKey) []domain.Listing {
	cmp, ok := comparators[key]
	if !ok {
		cmp = comparators[domain.SortRecommended]
	}

	sorted := make([]domain.Listing, len(listings))
	copy(sorted, listings)

	sort.Slice(sorted, func(i, j int) bool {
		if c := cmp(&sorted[i], &sorted[j]); c != 0 {
			return c < 0
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
