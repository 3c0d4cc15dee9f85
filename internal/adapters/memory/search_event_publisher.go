package memory

import (
	"context"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

// DirectSearchEventPublisher передает событие поиска сразу в обработчик,
// без брокера. Используется, когда RabbitMQ выключен.
type DirectSearchEventPublisher struct {
	handler usecases_port.SaveSearchHistoryUseCasePort
}

var _ port.SearchEventPublisherPort = (*DirectSearchEventPublisher)(nil)

func NewDirectSearchEventPublisher(handler usecases_port.SaveSearchHistoryUseCasePort) *DirectSearchEventPublisher {
	return &DirectSearchEventPublisher{handler: handler}
}

func (p *DirectSearchEventPublisher) PublishSearchPerformed(ctx context.Context, event domain.SearchPerformedEvent) error {
	return p.handler.Execute(ctx, event)
}
