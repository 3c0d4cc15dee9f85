package port

import (
	"context"

	"listing-service/internal/core/domain"
)

// SearchEventPublisherPort отправляет событие о выполненном поиске.
type SearchEventPublisherPort interface {
	PublishSearchPerformed(ctx context.Context, event domain.SearchPerformedEvent) error
}

// EventListenerPort - входящий адаптер, слушающий события из брокера.
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
