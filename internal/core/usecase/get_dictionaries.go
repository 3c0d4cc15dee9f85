package usecase

import (
	"context"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/searchfilter"
)

const (
	DictFeatures    = "features"
	DictTypes       = "types"
	DictPrefectures = "prefectures"
	DictLines       = "lines"
)

type GetDictionariesUseCase struct {
	directory port.StationDirectoryPort
}

func NewGetDictionariesUseCase(directory port.StationDirectoryPort) *GetDictionariesUseCase {
	return &GetDictionariesUseCase{directory: directory}
}

// Execute получает список имен справочников и возвращает их содержимое.
// Пустой список означает все справочники, неизвестные имена пропускаются.
func (uc *GetDictionariesUseCase) Execute(ctx context.Context, names []string) (map[string][]domain.DictionaryItem, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetDictionaries",
	})

	ucLogger.Info("Use case started", nil)

	namesMap := make(map[string]bool)
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			namesMap[name] = true
		}
	}
	all := len(namesMap) == 0

	result := make(map[string][]domain.DictionaryItem)
	if all || namesMap[DictFeatures] {
		result[DictFeatures] = searchfilter.FeatureDictionary()
	}
	if all || namesMap[DictTypes] {
		result[DictTypes] = searchfilter.TypeDictionary()
	}
	if all || namesMap[DictPrefectures] {
		result[DictPrefectures] = uc.prefectures()
	}
	if all || namesMap[DictLines] {
		result[DictLines] = uc.lines()
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"dictionaries": len(result)})
	return result, nil
}

// Для префектуры Count - сумма объявлений по ее линиям.
func (uc *GetDictionariesUseCase) prefectures() []domain.DictionaryItem {
	prefs := uc.directory.Prefectures()
	items := make([]domain.DictionaryItem, 0, len(prefs))
	for _, p := range prefs {
		count := 0
		for _, line := range uc.directory.Lines(p.Key) {
			count += line.Count
		}
		items = append(items, domain.DictionaryItem{
			SystemName:  p.Key,
			DisplayName: p.Name,
			Group:       p.Region,
			Count:       count,
		})
	}
	return items
}

func (uc *GetDictionariesUseCase) lines() []domain.DictionaryItem {
	var items []domain.DictionaryItem
	for _, p := range uc.directory.Prefectures() {
		for _, line := range uc.directory.Lines(p.Key) {
			items = append(items, domain.DictionaryItem{
				SystemName:  line.Key,
				DisplayName: line.Name,
				Group:       p.Key,
				Count:       line.Count,
			})
		}
	}
	return items
}
