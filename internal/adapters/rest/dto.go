package rest

import (
	"time"

	"listing-service/internal/core/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ListingCardResponse - карточка объявления в списках.
type ListingCardResponse struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Prefecture     string   `json:"prefecture"`
	City           string   `json:"city"`
	Address        string   `json:"address"`
	Station        string   `json:"station"`
	Type           string   `json:"type"`
	Layout         string   `json:"layout"`
	Area           float64  `json:"area"`
	Floor          int      `json:"floor"`
	TotalFloors    int      `json:"total_floors"`
	Age            string   `json:"age"`
	Price          float64  `json:"price"`
	ManagementFee  int      `json:"management_fee"`
	DepositMonths  float64  `json:"deposit_months"`
	KeyMoneyMonths float64  `json:"key_money_months"`
	Badge          string   `json:"badge,omitempty"`
	Gradient       string   `json:"gradient"`
	Features       []string `json:"features"`
}

// ListingDetailResponse - полная карточка для страницы объявления.
type ListingDetailResponse struct {
	ListingCardResponse
	BuildDate    string              `json:"build_date"`
	Structure    string              `json:"structure"`
	Direction    string              `json:"direction"`
	Parking      string              `json:"parking"`
	MoveIn       string              `json:"move_in"`
	Contract     string              `json:"contract"`
	Guarantor    string              `json:"guarantor"`
	Transaction  string              `json:"transaction"`
	InitialCosts domain.InitialCosts `json:"initial_costs"`
	Floorplan    domain.Floorplan    `json:"floorplan"`
	Nearby       domain.Nearby       `json:"nearby"`
	Company      domain.Company      `json:"company"`
	SimilarIDs   []int               `json:"similar_ids"`
}

type PageMarkerResponse struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

type SearchResponse struct {
	Heading    string                `json:"heading"`
	CountLabel string                `json:"count_label"`
	MetaTitle  string                `json:"meta_title"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PerPage    int                   `json:"per_page"`
	TotalPages int                   `json:"total_pages"`
	HasPrev    bool                  `json:"has_prev"`
	HasNext    bool                  `json:"has_next"`
	PageRange  []PageMarkerResponse  `json:"page_range"`
	Sort       string                `json:"sort"`
	Query      string                `json:"query"`
	Empty      bool                  `json:"empty"`
	Listings   []ListingCardResponse `json:"listings"`
}

type DictionaryItemResponse struct {
	SystemName  string `json:"system_name"`
	DisplayName string `json:"display_name"`
	Group       string `json:"group,omitempty"`
	Count       int    `json:"count,omitempty"`
}

type LineStopsResponse struct {
	Key        string        `json:"key"`
	Name       string        `json:"name"`
	Prefecture string        `json:"prefecture"`
	Stops      []domain.Stop `json:"stops"`
}

type VisitorSessionResponse struct {
	VisitorID string    `json:"visitor_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ListingIDRequest struct {
	ListingID int `json:"listing_id"`
}

type ToggleFavoriteResponse struct {
	ListingID  int  `json:"listing_id"`
	IsFavorite bool `json:"is_favorite"`
}

type FavoriteIDsResponse struct {
	IDs   []int `json:"ids"`
	Count int   `json:"count"`
}

type PaginatedListingsResponse struct {
	Data    []ListingCardResponse `json:"data"`
	Total   int64                 `json:"total"`
	Page    int                   `json:"page"`
	PerPage int                   `json:"per_page"`
}

type SaveSearchRequest struct {
	Query string `json:"query"`
}

type SearchHistoryEntryResponse struct {
	Query   string    `json:"query"`
	Label   string    `json:"label"`
	SavedAt time.Time `json:"saved_at"`
}

func toListingCard(l domain.Listing) ListingCardResponse {
	features := l.Features
	if features == nil {
		features = []string{}
	}
	return ListingCardResponse{
		ID:             l.ID,
		Name:           l.Name,
		Prefecture:     l.Prefecture,
		City:           l.City,
		Address:        l.Address,
		Station:        l.Station,
		Type:           l.Type,
		Layout:         l.Layout,
		Area:           l.Area,
		Floor:          l.Floor,
		TotalFloors:    l.TotalFloors,
		Age:            l.Age,
		Price:          l.Price,
		ManagementFee:  l.ManagementFee,
		DepositMonths:  l.DepositMonths,
		KeyMoneyMonths: l.KeyMoneyMonths,
		Badge:          l.Badge,
		Gradient:       l.Gradient,
		Features:       features,
	}
}

func toListingCards(listings []domain.Listing) []ListingCardResponse {
	cards := make([]ListingCardResponse, 0, len(listings))
	for _, l := range listings {
		cards = append(cards, toListingCard(l))
	}
	return cards
}

func toListingDetail(l *domain.Listing) ListingDetailResponse {
	similar := l.SimilarIDs
	if similar == nil {
		similar = []int{}
	}
	return ListingDetailResponse{
		ListingCardResponse: toListingCard(*l),
		BuildDate:           l.BuildDate,
		Structure:           l.Structure,
		Direction:           l.Direction,
		Parking:             l.Parking,
		MoveIn:              l.MoveIn,
		Contract:            l.Contract,
		Guarantor:           l.Guarantor,
		Transaction:         l.Transaction,
		InitialCosts:        l.InitialCosts,
		Floorplan:           l.Floorplan,
		Nearby:              l.Nearby,
		Company:             l.Company,
		SimilarIDs:          similar,
	}
}

func toSearchResponse(res *domain.SearchResult) SearchResponse {
	pageRange := make([]PageMarkerResponse, 0, len(res.PageRange))
	for _, m := range res.PageRange {
		pageRange = append(pageRange, PageMarkerResponse{Page: m.Page, Ellipsis: m.Ellipsis})
	}
	return SearchResponse{
		Heading:    res.Heading,
		CountLabel: res.CountLabel,
		MetaTitle:  res.MetaTitle,
		Total:      res.Total,
		Page:       res.Page,
		PerPage:    res.PerPage,
		TotalPages: res.TotalPages,
		HasPrev:    res.HasPrev(),
		HasNext:    res.HasNext(),
		PageRange:  pageRange,
		Sort:       string(res.Sort),
		Query:      res.Query,
		Empty:      res.Empty(),
		Listings:   toListingCards(res.Listings),
	}
}

func toDictionaryResponse(dicts map[string][]domain.DictionaryItem) map[string][]DictionaryItemResponse {
	out := make(map[string][]DictionaryItemResponse, len(dicts))
	for name, items := range dicts {
		resp := make([]DictionaryItemResponse, 0, len(items))
		for _, it := range items {
			resp = append(resp, DictionaryItemResponse{
				SystemName:  it.SystemName,
				DisplayName: it.DisplayName,
				Group:       it.Group,
				Count:       it.Count,
			})
		}
		out[name] = resp
	}
	return out
}

func toSearchHistoryResponse(entries []domain.SearchHistoryEntry) []SearchHistoryEntryResponse {
	out := make([]SearchHistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, SearchHistoryEntryResponse{Query: e.Query, Label: e.Label, SavedAt: e.SavedAt})
	}
	return out
}
