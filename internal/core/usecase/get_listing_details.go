package usecase

import (
	"context"

	"github.com/google/uuid"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type GetListingDetailsUseCase struct {
	catalog    port.ListingCatalogPort
	recordView usecases_port.RecordViewUseCasePort
}

func NewGetListingDetailsUseCase(catalog port.ListingCatalogPort, recordView usecases_port.RecordViewUseCasePort) *GetListingDetailsUseCase {
	return &GetListingDetailsUseCase{catalog: catalog, recordView: recordView}
}

// Execute возвращает объявление. Если посетитель известен, просмотр попадает в историю;
// ошибка записи истории не мешает ответу.
func (uc *GetListingDetailsUseCase) Execute(ctx context.Context, id int, visitorID *uuid.UUID) (*domain.Listing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetListingDetails",
		"listing_id": id,
	})

	ucLogger.Info("Use case started", nil)

	listing, err := uc.catalog.ByID(ctx, id)
	if err != nil {
		ucLogger.Warn("Listing not found", nil)
		return nil, err
	}

	if visitorID != nil && uc.recordView != nil {
		if err := uc.recordView.Execute(ctx, *visitorID, id); err != nil {
			ucLogger.Warn("Failed to record view", port.Fields{"error": err.Error()})
		}
	}

	ucLogger.Info("Use case finished successfully", nil)
	return &listing, nil
}
