package factory

import (
	"math"
	"sort"

	"listing-service/internal/core/domain"
)

const (
	maxSimilar         = 3
	maxSimilarSameArea = 2
)

// AssignSimilarIDs заполняет SimilarIDs у объявлений, где список пуст:
// до двух ближайших по цене из той же префектуры, затем ближайшие по цене
// из всех. Срез должен быть упорядочен по ID, это задает порядок при равной разнице.
func AssignSimilarIDs(listings []domain.Listing) {
	for i := range listings {
		p := &listings[i]
		if len(p.SimilarIDs) > 0 {
			continue
		}

		candidates := make([]int, 0, len(listings)-1)
		for j := range listings {
			if j != i {
				candidates = append(candidates, j)
			}
		}
		diff := func(j int) float64 { return math.Abs(listings[j].Price - p.Price) }
		sort.SliceStable(candidates, func(a, b int) bool {
			return diff(candidates[a]) < diff(candidates[b])
		})

		chosen := make([]int, 0, maxSimilar)
		seen := make(map[int]struct{}, maxSimilar)
		add := func(j int) {
			if _, ok := seen[j]; ok {
				return
			}
			seen[j] = struct{}{}
			chosen = append(chosen, listings[j].ID)
		}

		for _, j := range candidates {
			if len(chosen) >= maxSimilarSameArea {
				break
			}
			if listings[j].AreaKey == p.AreaKey {
				add(j)
			}
		}
		for _, j := range candidates {
			if len(chosen) >= maxSimilar {
				break
			}
			add(j)
		}
		p.SimilarIDs = chosen
	}
}
