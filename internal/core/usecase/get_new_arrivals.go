package usecase

import (
	"context"
	"sort"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/factory"
	"listing-service/internal/core/port"
)

const (
	DefaultNewArrivals = 6
	newBadge           = "NEW"
)

type GetNewArrivalsUseCase struct {
	catalog port.ListingCatalogPort
}

func NewGetNewArrivalsUseCase(catalog port.ListingCatalogPort) *GetNewArrivalsUseCase {
	return &GetNewArrivalsUseCase{catalog: catalog}
}

// Execute: сначала бейдж NEW, затем более поздний год постройки, затем ID.
func (uc *GetNewArrivalsUseCase) Execute(ctx context.Context, limit int) ([]domain.Listing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetNewArrivals",
		"limit":    limit,
	})

	ucLogger.Info("Use case started", nil)

	if limit <= 0 {
		limit = DefaultNewArrivals
	}

	all := uc.catalog.All(ctx)
	ranked := make([]domain.Listing, len(all))
	copy(ranked, all)

	years := make(map[int]int, len(ranked))
	for _, l := range ranked {
		years[l.ID] = factory.ExtractYear(l.BuildDate)
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		aNew, bNew := a.Badge == newBadge, b.Badge == newBadge
		if aNew != bNew {
			return aNew
		}
		if years[a.ID] != years[b.ID] {
			return years[a.ID] > years[b.ID]
		}
		return a.ID < b.ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(ranked)})
	return ranked, nil
}
