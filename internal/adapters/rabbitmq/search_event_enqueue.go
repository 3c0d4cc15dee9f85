package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// messagePublisher - часть rabbitmq_producer.Publisher, нужная адаптеру.
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// SearchEventQueueAdapter публикует SearchPerformedEvent в listing_exchange.
type SearchEventQueueAdapter struct {
	producer   messagePublisher
	routingKey string
	timeout    time.Duration
}

func NewSearchEventQueueAdapter(producer messagePublisher, routingKey string) (*SearchEventQueueAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("routingKey cannot be empty")
	}
	return &SearchEventQueueAdapter{
		producer:   producer,
		routingKey: routingKey,
		timeout:    10 * time.Second,
	}, nil
}

func (a *SearchEventQueueAdapter) PublishSearchPerformed(ctx context.Context, event domain.SearchPerformedEvent) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "SearchEventQueueAdapter",
		"routing_key": a.routingKey,
		"visitor_id":  event.VisitorID,
	})

	body, err := json.Marshal(toSearchPerformedDTO(event))
	if err != nil {
		adapterLogger.Error("Failed to marshal search event", err, nil)
		return fmt.Errorf("failed to marshal search event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    contracts.SearchPerformedEventType,
			"event-version": contracts.SearchPerformedEventVersion,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish search event", err, nil)
		return err
	}

	adapterLogger.Debug("Search event published", nil)
	return nil
}
