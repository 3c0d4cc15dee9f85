package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type GetLineStopsUseCase struct {
	directory port.StationDirectoryPort
}

func NewGetLineStopsUseCase(directory port.StationDirectoryPort) *GetLineStopsUseCase {
	return &GetLineStopsUseCase{directory: directory}
}

func (uc *GetLineStopsUseCase) Execute(ctx context.Context, lineKey string) (*domain.LineDetails, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetLineStops",
		"line_key": lineKey,
	})

	ucLogger.Info("Use case started", nil)

	name, ok := uc.directory.LineName(lineKey)
	if !ok {
		ucLogger.Warn("Unknown line requested", nil)
		return nil, domain.ErrLineNotFound
	}
	stops, _ := uc.directory.Stops(lineKey)
	prefKey, _ := uc.directory.LinePrefecture(lineKey)

	details := &domain.LineDetails{
		Key:           lineKey,
		Name:          name,
		PrefectureKey: prefKey,
		Stops:         stops,
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"stops": len(stops)})
	return details, nil
}
