package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
	"listing-service/pkg/rabbitmq/rabbitmq_common"
	"listing-service/pkg/rabbitmq/rabbitmq_consumer"
)

// SearchHistoryConsumerAdapter слушает search.performed и сохраняет историю поиска.
type SearchHistoryConsumerAdapter struct {
	consumer *rabbitmq_consumer.DistributingConsumer
	useCase  usecases_port.SaveSearchHistoryUseCasePort
	logger   port.LoggerPort
}

func NewSearchHistoryConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase usecases_port.SaveSearchHistoryUseCasePort,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*SearchHistoryConsumerAdapter, error) {
	adapter := &SearchHistoryConsumerAdapter{
		useCase: useCase,
		logger:  logger,
	}

	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_consumer", "consumer_tag": consumerCfg.ConsumerTag})
	consumerCfg.Logger = NewPkgLoggerBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewDistributingConsumer(consumerCfg, adapter.handleMessage, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for search history: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

func (a *SearchHistoryConsumerAdapter) handleMessage(d amqp.Delivery) error {
	traceID, _ := d.Headers["x-trace-id"].(string)
	if traceID == "" {
		traceID = uuid.New().String()
	}

	ctx, msgLogger := contextkeys.ContextWithTrace(context.Background(), a.logger.WithFields(port.Fields{
		"message_id":   d.MessageId,
		"adapter_name": "SearchHistoryConsumerAdapter",
	}), traceID)

	eventType, _ := d.Headers["event-type"].(string)
	eventVersion, _ := d.Headers["event-version"].(string)
	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		msgLogger.Error("Message failed schema validation. Rejecting.", err, nil)
		return err
	}

	var dto SearchPerformedEventDTO
	if err := json.Unmarshal(d.Body, &dto); err != nil {
		return fmt.Errorf("failed to unmarshal search event: %w", err)
	}

	err := a.useCase.Execute(ctx, dto.toDomain())
	if errors.Is(err, domain.ErrEmptyQuery) {
		// Повтор не поможет.
		msgLogger.Warn("Empty query in search event, dropping", nil)
		return nil
	}
	if err != nil {
		msgLogger.Error("Failed to save search history", err, nil)
		return err
	}
	return nil
}

// Start реализует EventListenerPort.
func (a *SearchHistoryConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

func (a *SearchHistoryConsumerAdapter) Close() error {
	return a.consumer.Close()
}
