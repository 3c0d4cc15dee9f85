package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RecentlyViewedMax = 20
	SearchHistoryMax  = 10
)

type FavoriteItem struct {
	VisitorID uuid.UUID
	ListingID int
	CreatedAt time.Time
}

type RecentlyViewedItem struct {
	VisitorID uuid.UUID
	ListingID int
	ViewedAt  time.Time
}

type SearchHistoryEntry struct {
	Query   string
	Label   string
	SavedAt time.Time
}

// PaginatedListings - страница карточек избранного.
type PaginatedListings struct {
	Listings     []Listing
	TotalCount   int64
	CurrentPage  int
	ItemsPerPage int
}

// VisitorClaims - полезная нагрузка токена посетителя.
type VisitorClaims struct {
	VisitorID uuid.UUID
	ExpiresAt time.Time
}

// VisitorSession - выданный анонимному посетителю токен.
type VisitorSession struct {
	VisitorID uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// SearchPerformedEvent - событие о выполненном пользователем поиске.
type SearchPerformedEvent struct {
	VisitorID  uuid.UUID
	Query      string
	Label      string
	OccurredAt time.Time
}

// PaginatedFavoriteIDs - ответ репозитория избранного с пагинацией.
type PaginatedFavoriteIDs struct {
	ListingIDs   []int
	TotalCount   int64
	CurrentPage  int
	ItemsPerPage int
}
