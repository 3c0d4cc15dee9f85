package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/stationmatch"
)

var errStorage = errors.New("storage unavailable")

func testMatcher() *stationmatch.Matcher {
	return stationmatch.NewMatcher(domain.StationData{
		Prefectures: []domain.Prefecture{
			{Key: "tokyo", Name: "東京都", Region: "関東", Railways: []domain.Railway{
				{Company: "JR東日本", Lines: []domain.Line{
					{Key: "yamanote", Name: "JR山手線", Count: 30},
					{Key: "chuo", Name: "JR中央線（快速）", Count: 24},
				}},
			}},
			{Key: "osaka", Name: "大阪府", Region: "近畿", Railways: []domain.Railway{
				{Company: "大阪メトロ", Lines: []domain.Line{{Key: "midosuji", Name: "御堂筋線", Count: 12}}},
			}},
		},
		Lines: []domain.LineStops{
			{Line: "yamanote", Stops: []domain.Stop{{Name: "新宿", Count: 120}, {Name: "渋谷", Count: 98}}},
			{Line: "chuo", Stops: []domain.Stop{{Name: "新宿", Count: 120}, {Name: "中野", Count: 40}}},
		},
	})
}

// fakeCatalog - каталог поверх среза, ID по возрастанию.
type fakeCatalog struct {
	listings []domain.Listing
}

func newFakeCatalog(listings ...domain.Listing) *fakeCatalog {
	sorted := append([]domain.Listing(nil), listings...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &fakeCatalog{listings: sorted}
}

func (c *fakeCatalog) All(ctx context.Context) []domain.Listing { return c.listings }

func (c *fakeCatalog) ByID(ctx context.Context, id int) (domain.Listing, error) {
	for _, l := range c.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Listing{}, domain.ErrListingNotFound
}

func (c *fakeCatalog) ByIDs(ctx context.Context, ids []int) []domain.Listing {
	var out []domain.Listing
	for _, id := range ids {
		if l, err := c.ByID(ctx, id); err == nil {
			out = append(out, l)
		}
	}
	return out
}

func (c *fakeCatalog) Exists(ctx context.Context, id int) bool {
	_, err := c.ByID(ctx, id)
	return err == nil
}

// listingsFor готовит объявления с вычисленной станцией и линиями.
func listingsFor(m *stationmatch.Matcher, listings ...domain.Listing) []domain.Listing {
	for i := range listings {
		listings[i].StationName = stationmatch.ExtractStationName(listings[i].Station)
		listings[i].LineKeys = m.ResolveLineKeys(listings[i].StationName)
	}
	return listings
}

type favoritesRepoStub struct {
	ids     []int
	err     error
	removed []int
	added   []int
}

func (r *favoritesRepoStub) Add(ctx context.Context, visitorID uuid.UUID, listingID int) error {
	if r.err != nil {
		return r.err
	}
	r.added = append(r.added, listingID)
	r.ids = append([]int{listingID}, r.ids...)
	return nil
}

func (r *favoritesRepoStub) Remove(ctx context.Context, visitorID uuid.UUID, listingID int) error {
	if r.err != nil {
		return r.err
	}
	r.removed = append(r.removed, listingID)
	for i, id := range r.ids {
		if id == listingID {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (r *favoritesRepoStub) Exists(ctx context.Context, visitorID uuid.UUID, listingID int) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, id := range r.ids {
		if id == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *favoritesRepoStub) FindPaginatedByVisitor(ctx context.Context, visitorID uuid.UUID, limit, offset int) (*domain.PaginatedFavoriteIDs, error) {
	if r.err != nil {
		return nil, r.err
	}
	end := min(offset+limit, len(r.ids))
	page := []int{}
	if offset < len(r.ids) {
		page = r.ids[offset:end]
	}
	return &domain.PaginatedFavoriteIDs{
		ListingIDs:   page,
		TotalCount:   int64(len(r.ids)),
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}, nil
}

func (r *favoritesRepoStub) FindIDsByVisitor(ctx context.Context, visitorID uuid.UUID) ([]int, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.ids, nil
}

type recentlyViewedRepoStub struct {
	items  []domain.RecentlyViewedItem
	maxArg int
	err    error
}

func (r *recentlyViewedRepoStub) Touch(ctx context.Context, visitorID uuid.UUID, listingID int, viewedAt time.Time, max int) error {
	if r.err != nil {
		return r.err
	}
	r.maxArg = max
	r.items = append([]domain.RecentlyViewedItem{{VisitorID: visitorID, ListingID: listingID, ViewedAt: viewedAt}}, r.items...)
	return nil
}

func (r *recentlyViewedRepoStub) List(ctx context.Context, visitorID uuid.UUID, limit int) ([]domain.RecentlyViewedItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.items[:min(limit, len(r.items))], nil
}

type searchHistoryRepoStub struct {
	saved   []domain.SearchHistoryEntry
	maxArg  int
	removed []string
	cleared bool
	err     error
}

func (r *searchHistoryRepoStub) Save(ctx context.Context, visitorID uuid.UUID, entry domain.SearchHistoryEntry, max int) error {
	if r.err != nil {
		return r.err
	}
	r.maxArg = max
	r.saved = append(r.saved, entry)
	return nil
}

func (r *searchHistoryRepoStub) List(ctx context.Context, visitorID uuid.UUID) ([]domain.SearchHistoryEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.saved, nil
}

func (r *searchHistoryRepoStub) Remove(ctx context.Context, visitorID uuid.UUID, query string) error {
	if r.err != nil {
		return r.err
	}
	r.removed = append(r.removed, query)
	return nil
}

func (r *searchHistoryRepoStub) Clear(ctx context.Context, visitorID uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.cleared = true
	return nil
}

type publisherStub struct {
	events []domain.SearchPerformedEvent
	err    error
}

func (p *publisherStub) PublishSearchPerformed(ctx context.Context, event domain.SearchPerformedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

type tokenServiceStub struct {
	issued    uuid.UUID
	expiresAt time.Time
	claims    *domain.VisitorClaims
	err       error
}

func (s *tokenServiceStub) GenerateToken(ctx context.Context, visitorID uuid.UUID) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	s.issued = visitorID
	return "token-" + visitorID.String(), s.expiresAt, nil
}

func (s *tokenServiceStub) ValidateToken(ctx context.Context, token string) (*domain.VisitorClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

type recordViewStub struct {
	calls int
	err   error
}

func (s *recordViewStub) Execute(ctx context.Context, visitorID uuid.UUID, listingID int) error {
	s.calls++
	return s.err
}
