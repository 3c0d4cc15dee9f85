package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"listing-service/dataset"
	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type seedFile struct {
	Seeds []json.RawMessage `json:"seeds"`
}

// LoadStationData читает справочник префектур и список станций по линиям.
func LoadStationData(fsys fs.FS) (domain.StationData, error) {
	var data domain.StationData

	raw, err := fs.ReadFile(fsys, dataset.StationsFile)
	if err != nil {
		return data, fmt.Errorf("failed to read %s: %w", dataset.StationsFile, err)
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("failed to decode %s: %w", dataset.StationsFile, err)
	}

	raw, err = fs.ReadFile(fsys, dataset.StationStopsFile)
	if err != nil {
		return data, fmt.Errorf("failed to read %s: %w", dataset.StationStopsFile, err)
	}
	var stops domain.StationData
	if err := json.Unmarshal(raw, &stops); err != nil {
		return data, fmt.Errorf("failed to decode %s: %w", dataset.StationStopsFile, err)
	}
	data.Lines = stops.Lines

	return data, nil
}

// LoadSeeds читает сиды. Запись, не прошедшая схему, только логируется:
// недостающие поля заполнит фабрика.
func LoadSeeds(ctx context.Context, fsys fs.FS) ([]domain.Seed, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CatalogLoader",
		"method":    "LoadSeeds",
	})

	raw, err := fs.ReadFile(fsys, dataset.SeedsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dataset.SeedsFile, err)
	}

	var file seedFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", dataset.SeedsFile, err)
	}

	seeds := make([]domain.Seed, 0, len(file.Seeds))
	for i, rawSeed := range file.Seeds {
		if err := contracts.ValidateSeed(rawSeed); err != nil {
			logger.Warn("Seed does not match schema", port.Fields{
				"seed_index": i,
				"error":      err.Error(),
			})
		}

		// слот сохраняется всегда, иначе ID следующих объявлений сдвинутся
		seed, dropped := decodeSeed(rawSeed)
		if len(dropped) > 0 {
			logger.Warn("Seed fields could not be decoded, ignoring them", port.Fields{
				"seed_index": i,
				"fields":     strings.Join(dropped, ", "),
			})
		}
		seeds = append(seeds, seed)
	}

	logger.Info("Seeds loaded", port.Fields{"count": len(seeds)})
	return seeds, nil
}

// decodeSeed разбирает сид по полям: поле с неверным типом отбрасывается,
// остальные сохраняются. Запись, не являющаяся объектом, дает пустой сид.
func decodeSeed(raw json.RawMessage) (domain.Seed, []string) {
	var seed domain.Seed
	if err := json.Unmarshal(raw, &seed); err == nil {
		return seed, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.Seed{}, []string{"*"}
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seed = domain.Seed{}
	var dropped []string
	for _, key := range keys {
		single, err := json.Marshal(map[string]json.RawMessage{key: fields[key]})
		if err != nil {
			dropped = append(dropped, key)
			continue
		}
		var partial domain.Seed
		if err := json.Unmarshal(single, &partial); err != nil {
			dropped = append(dropped, key)
			continue
		}
		// повторный разбор в общий сид, поле уже проверено
		_ = json.Unmarshal(single, &seed)
	}
	return seed, dropped
}
