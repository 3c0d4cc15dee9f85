package rabbitmq

import (
	"time"

	"github.com/google/uuid"

	"listing-service/internal/core/domain"
)

// SearchPerformedEventDTO - тело события SearchPerformedEvent/1.0.0.
type SearchPerformedEventDTO struct {
	VisitorID  uuid.UUID `json:"visitor_id"`
	Query      string    `json:"query"`
	Label      string    `json:"label"`
	OccurredAt time.Time `json:"occurred_at"`
}

func toSearchPerformedDTO(e domain.SearchPerformedEvent) SearchPerformedEventDTO {
	return SearchPerformedEventDTO{
		VisitorID:  e.VisitorID,
		Query:      e.Query,
		Label:      e.Label,
		OccurredAt: e.OccurredAt.UTC(),
	}
}

func (d SearchPerformedEventDTO) toDomain() domain.SearchPerformedEvent {
	return domain.SearchPerformedEvent{
		VisitorID:  d.VisitorID,
		Query:      d.Query,
		Label:      d.Label,
		OccurredAt: d.OccurredAt,
	}
}
