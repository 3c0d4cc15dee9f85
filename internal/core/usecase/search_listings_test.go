package usecase

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-service/internal/core/domain"
)

func searchFixture() []domain.Listing {
	m := testMatcher()
	return listingsFor(m,
		domain.Listing{ID: 1, AreaKey: "tokyo", Prefecture: "東京都", Station: "新宿駅まで徒歩5分", Price: 12.5, Layout: "1LDK", Type: "マンション", Area: 40, AgeYears: 3},
		domain.Listing{ID: 2, AreaKey: "tokyo", Prefecture: "東京都", Station: "渋谷駅まで徒歩7分", Price: 8, Layout: "1K", Type: "アパート", Area: 22, AgeYears: 15},
		domain.Listing{ID: 3, AreaKey: "tokyo", Prefecture: "東京都", Station: "中野駅まで徒歩3分", Price: 20, Layout: "4LDK", Type: "一戸建て", Area: 95, AgeYears: 99},
		domain.Listing{ID: 4, AreaKey: "osaka", Prefecture: "大阪府", Station: "梅田駅まで徒歩4分", Price: 9.5, Layout: "2LDK", Type: "マンション", Area: 55, AgeYears: 8},
	)
}

func TestSearchListings_AreaAndSort(t *testing.T) {
	uc := NewSearchListingsUseCase(newFakeCatalog(searchFixture()...), testMatcher(), 10)

	res, err := uc.Execute(context.Background(), url.Values{"area": {"tokyo"}, "sort": {"price-asc"}})
	require.NoError(t, err)

	require.Equal(t, 3, res.Total)
	ids := []int{res.Listings[0].ID, res.Listings[1].ID, res.Listings[2].ID}
	assert.Equal(t, []int{2, 1, 3}, ids)
	assert.Equal(t, "東京都", res.Heading)
	assert.Equal(t, "東京都の賃貸物件 3件", res.CountLabel)
	assert.Equal(t, "東京都の賃貸物件一覧｜ホームナビ", res.MetaTitle)
	assert.Equal(t, domain.SortPriceAsc, res.Sort)
	assert.Equal(t, 1, res.TotalPages)
}

func TestSearchListings_ClampsPage(t *testing.T) {
	uc := NewSearchListingsUseCase(newFakeCatalog(searchFixture()...), testMatcher(), 3)

	res, err := uc.Execute(context.Background(), url.Values{"page": {"99"}})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 2, res.Page)
	assert.Len(t, res.Listings, 1)
	assert.True(t, res.HasPrev())
	assert.False(t, res.HasNext())
	assert.Equal(t, "page=2", res.Query)
}

func TestSearchListings_EmptyResult(t *testing.T) {
	uc := NewSearchListingsUseCase(newFakeCatalog(searchFixture()...), testMatcher(), 10)

	res, err := uc.Execute(context.Background(), url.Values{"rent_max": {"1"}})
	require.NoError(t, err)

	assert.True(t, res.Empty())
	assert.Empty(t, res.Listings)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, "全国", res.Heading)
	assert.Equal(t, "賃貸物件一覧｜ホームナビ", res.MetaTitle)
}

func TestSearchListings_CountLabelGroupsThousands(t *testing.T) {
	listings := make([]domain.Listing, 0, 1234)
	for i := 1; i <= 1234; i++ {
		listings = append(listings, domain.Listing{ID: i, Price: 5, AgeYears: 1})
	}
	uc := NewSearchListingsUseCase(newFakeCatalog(listings...), testMatcher(), 0)

	res, err := uc.Execute(context.Background(), url.Values{})
	require.NoError(t, err)

	assert.Equal(t, DefaultPerPage, res.PerPage)
	assert.Equal(t, "全国の賃貸物件 1,234件", res.CountLabel)
	assert.Equal(t, 124, res.TotalPages)
}

func TestSearchListings_LineWithoutStationsFallsBackToPrefecture(t *testing.T) {
	uc := NewSearchListingsUseCase(newFakeCatalog(searchFixture()...), testMatcher(), 10)

	res, err := uc.Execute(context.Background(), url.Values{"lines": {"yamanote"}})
	require.NoError(t, err)

	assert.Equal(t, "JR山手線", res.Heading)
	// без выбранных станций линия совпадает со всей своей префектурой
	require.Equal(t, 3, res.Total)
	for _, l := range res.Listings {
		assert.Equal(t, "tokyo", l.AreaKey, fmt.Sprintf("listing %d", l.ID))
	}
}

func TestSearchListings_SelectedStation(t *testing.T) {
	uc := NewSearchListingsUseCase(newFakeCatalog(searchFixture()...), testMatcher(), 10)

	res, err := uc.Execute(context.Background(), url.Values{"lines": {"yamanote"}, "stations": {"yamanote:渋谷"}})
	require.NoError(t, err)

	require.Equal(t, 1, res.Total)
	assert.Equal(t, 2, res.Listings[0].ID)
}
