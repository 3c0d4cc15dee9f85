package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type capturedPublish struct {
	routingKey string
	msg        amqp.Publishing
	deadline   bool
}

type fakeProducer struct {
	published []capturedPublish
	err       error
}

func (f *fakeProducer) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	_, hasDeadline := ctx.Deadline()
	f.published = append(f.published, capturedPublish{routingKey: routingKey, msg: msg, deadline: hasDeadline})
	return f.err
}

type fakeSaveHistory struct {
	events []domain.SearchPerformedEvent
	err    error
}

func (f *fakeSaveHistory) Execute(ctx context.Context, event domain.SearchPerformedEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func newNoopLogger() port.LoggerPort {
	return contextkeys.LoggerFromContext(context.Background())
}

var testEvent = domain.SearchPerformedEvent{
	VisitorID:  uuid.MustParse("4d1c2a52-6f0e-4f51-9a3c-0f6f2d3a9b10"),
	Query:      "area=tokyo&rent_max=10",
	Label:      "東京都 / 〜10万円",
	OccurredAt: time.Date(2026, 5, 3, 10, 0, 0, 0, time.UTC),
}

func TestSearchEventQueueAdapter_Publish(t *testing.T) {
	producer := &fakeProducer{}
	adapter, err := NewSearchEventQueueAdapter(producer, "search.performed")
	require.NoError(t, err)

	ctx, _ := contextkeys.ContextWithTrace(context.Background(), contextkeys.LoggerFromContext(context.Background()), "trace-42")
	require.NoError(t, adapter.PublishSearchPerformed(ctx, testEvent))

	require.Len(t, producer.published, 1)
	got := producer.published[0]
	assert.Equal(t, "search.performed", got.routingKey)
	assert.True(t, got.deadline)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, contracts.SearchPerformedEventType, got.msg.Headers["event-type"])
	assert.Equal(t, contracts.SearchPerformedEventVersion, got.msg.Headers["event-version"])
	assert.Equal(t, "trace-42", got.msg.Headers["x-trace-id"])

	// Тело проходит ту же схему, что проверяет получатель.
	require.NoError(t, contracts.ValidateEvent(contracts.SearchPerformedEventType, contracts.SearchPerformedEventVersion, got.msg.Body))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, "area=tokyo&rent_max=10", body["query"])
	assert.Equal(t, "2026-05-03T10:00:00Z", body["occurred_at"])
}

func TestSearchEventQueueAdapter_Errors(t *testing.T) {
	_, err := NewSearchEventQueueAdapter(nil, "search.performed")
	assert.Error(t, err)
	_, err = NewSearchEventQueueAdapter(&fakeProducer{}, "")
	assert.Error(t, err)

	producer := &fakeProducer{err: errors.New("channel closed")}
	adapter, err := NewSearchEventQueueAdapter(producer, "search.performed")
	require.NoError(t, err)
	assert.Error(t, adapter.PublishSearchPerformed(context.Background(), testEvent))
}

func delivery(t *testing.T, event domain.SearchPerformedEvent, headers amqp.Table) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(toSearchPerformedDTO(event))
	require.NoError(t, err)
	return amqp.Delivery{Body: body, Headers: headers}
}

func validHeaders() amqp.Table {
	return amqp.Table{
		"event-type":    contracts.SearchPerformedEventType,
		"event-version": contracts.SearchPerformedEventVersion,
		"x-trace-id":    "trace-7",
	}
}

func TestSearchHistoryConsumer_HandleMessage(t *testing.T) {
	uc := &fakeSaveHistory{}
	adapter := &SearchHistoryConsumerAdapter{useCase: uc, logger: newNoopLogger()}

	require.NoError(t, adapter.handleMessage(delivery(t, testEvent, validHeaders())))
	require.Len(t, uc.events, 1)
	assert.Equal(t, testEvent.VisitorID, uc.events[0].VisitorID)
	assert.Equal(t, testEvent.Query, uc.events[0].Query)
	assert.True(t, testEvent.OccurredAt.Equal(uc.events[0].OccurredAt))
}

func TestSearchHistoryConsumer_RejectsInvalidMessages(t *testing.T) {
	uc := &fakeSaveHistory{}
	adapter := &SearchHistoryConsumerAdapter{useCase: uc, logger: newNoopLogger()}

	unknownType := validHeaders()
	unknownType["event-type"] = "SomethingElse"
	assert.Error(t, adapter.handleMessage(delivery(t, testEvent, unknownType)))

	noQuery := testEvent
	noQuery.Query = ""
	assert.Error(t, adapter.handleMessage(delivery(t, noQuery, validHeaders())))

	assert.Error(t, adapter.handleMessage(amqp.Delivery{Body: []byte("{"), Headers: validHeaders()}))
	assert.Empty(t, uc.events)
}

func TestSearchHistoryConsumer_UseCaseErrors(t *testing.T) {
	failing := &fakeSaveHistory{err: errors.New("db down")}
	adapter := &SearchHistoryConsumerAdapter{useCase: failing, logger: newNoopLogger()}
	assert.Error(t, adapter.handleMessage(delivery(t, testEvent, validHeaders())))

	empty := &fakeSaveHistory{err: domain.ErrEmptyQuery}
	adapter = &SearchHistoryConsumerAdapter{useCase: empty, logger: newNoopLogger()}
	assert.NoError(t, adapter.handleMessage(delivery(t, testEvent, validHeaders())))
}

func TestPkgLoggerBridge_ToFields(t *testing.T) {
	fields := toFields("queue", "search_history_queue", 42, "skipped", "dangling")
	assert.Equal(t, port.Fields{"queue": "search_history_queue"}, fields)
}
