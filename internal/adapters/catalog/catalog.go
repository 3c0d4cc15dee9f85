package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/factory"
	"listing-service/internal/core/port"
	"listing-service/internal/core/stationmatch"
)

// Catalog - неизменяемый набор объявлений в памяти.
// После New только читается, поэтому безопасен для конкурентных запросов.
type Catalog struct {
	listings []domain.Listing
	byID     map[int]int
	matcher  *stationmatch.Matcher
}

var _ port.ListingCatalogPort = (*Catalog)(nil)

// New читает датасет, разворачивает сиды и готовит поля для поиска.
func New(ctx context.Context, fsys fs.FS, propertyFactory *factory.PropertyFactory, startID int) (*Catalog, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "Catalog",
		"method":    "New",
	})

	stations, err := LoadStationData(fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to load station data: %w", err)
	}
	matcher := stationmatch.NewMatcher(stations)

	seeds, err := LoadSeeds(ctx, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to load seeds: %w", err)
	}

	listings := propertyFactory.ExpandSeeds(ctx, seeds, startID)
	c := NewFromListings(listings, matcher)

	logger.Info("Catalog built", port.Fields{
		"listings":     len(c.listings),
		"prefectures":  len(stations.Prefectures),
		"current_year": propertyFactory.CurrentYear(),
	})
	return c, nil
}

// NewFromListings строит каталог из готовых объявлений: сортирует по ID,
// вычисляет станцию и линии, заполняет похожие объявления.
func NewFromListings(listings []domain.Listing, matcher *stationmatch.Matcher) *Catalog {
	sorted := make([]domain.Listing, len(listings))
	copy(sorted, listings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for i := range sorted {
		l := &sorted[i]
		l.StationName = stationmatch.ExtractStationName(l.Station)
		l.LineKeys = matcher.ResolveLineKeys(l.StationName)
	}
	factory.AssignSimilarIDs(sorted)

	byID := make(map[int]int, len(sorted))
	for i, l := range sorted {
		byID[l.ID] = i
	}

	return &Catalog{listings: sorted, byID: byID, matcher: matcher}
}

func (c *Catalog) Matcher() *stationmatch.Matcher { return c.matcher }

// All отдает внутренний слайс каталога без копирования, только для чтения.
// Фильтрация и сортировка работают с копиями.
func (c *Catalog) All(ctx context.Context) []domain.Listing {
	return c.listings
}

// ByID и ByIDs возвращают копии, их можно менять.
func (c *Catalog) ByID(ctx context.Context, id int) (domain.Listing, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Listing{}, domain.ErrListingNotFound
	}
	return c.listings[i].Clone(), nil
}

func (c *Catalog) ByIDs(ctx context.Context, ids []int) []domain.Listing {
	result := make([]domain.Listing, 0, len(ids))
	for _, id := range ids {
		if i, ok := c.byID[id]; ok {
			result = append(result, c.listings[i].Clone())
		}
	}
	return result
}

func (c *Catalog) Exists(ctx context.Context, id int) bool {
	_, ok := c.byID[id]
	return ok
}

func (c *Catalog) Len() int { return len(c.listings) }
