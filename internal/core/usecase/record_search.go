package usecase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/searchfilter"
	"listing-service/internal/core/stationmatch"
)

// RecordSearchUseCase превращает выполненный пользователем поиск в событие.
// Сохранением в историю занимается получатель события.
type RecordSearchUseCase struct {
	publisher port.SearchEventPublisherPort
	matcher   *stationmatch.Matcher
	now       func() time.Time
}

func NewRecordSearchUseCase(publisher port.SearchEventPublisherPort, matcher *stationmatch.Matcher) *RecordSearchUseCase {
	return &RecordSearchUseCase{
		publisher: publisher,
		matcher:   matcher,
		now:       time.Now,
	}
}

// Execute приводит запрос к каноническому виду (без страницы) и публикует событие.
// Пустой запрос не сохраняется.
func (uc *RecordSearchUseCase) Execute(ctx context.Context, visitorID uuid.UUID, rawQuery string) (*domain.SearchHistoryEntry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "RecordSearch",
		"visitor_id": visitorID,
	})

	ucLogger.Info("Use case started", nil)

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		ucLogger.Warn("Malformed search query", port.Fields{"error": err.Error()})
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err)
	}

	d := searchfilter.ParseFilterParams(values)
	d.Page = 1
	canonical := searchfilter.Serialize(d)
	if len(canonical) == 0 {
		ucLogger.Info("Search query has no conditions, nothing to record", nil)
		return nil, domain.ErrEmptyQuery
	}

	entry := domain.SearchHistoryEntry{
		Query:   canonical.Encode(),
		Label:   searchfilter.BuildLabel(canonical, uc.matcher),
		SavedAt: uc.now().UTC(),
	}

	event := domain.SearchPerformedEvent{
		VisitorID:  visitorID,
		Query:      entry.Query,
		Label:      entry.Label,
		OccurredAt: entry.SavedAt,
	}
	if err := uc.publisher.PublishSearchPerformed(ctx, event); err != nil {
		ucLogger.Error("Failed to publish search event", err, nil)
		return nil, fmt.Errorf("failed to publish search event: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"label": entry.Label})
	return &entry, nil
}
