package factory

import (
	"context"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// PropertyFactory разворачивает компактные сиды в полные объявления.
type PropertyFactory struct {
	currentYear int
}

func NewPropertyFactory(currentYear int) *PropertyFactory {
	return &PropertyFactory{currentYear: currentYear}
}

func (f *PropertyFactory) CurrentYear() int { return f.currentYear }

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func integer(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// CreateProperty строит объявление из сида. Явно заданные в сиде
// значения имеют приоритет над вычисленными и значениями по умолчанию.
func (f *PropertyFactory) CreateProperty(id int, seed domain.Seed) domain.Listing {
	propertyType := str(seed.Type)
	buildDate := str(seed.BuildDate)
	prefecture := str(seed.Prefecture)
	city := str(seed.City)
	price := num(seed.Price)
	area := num(seed.Area)

	structure := seed.Structure
	if structure == "" {
		structure = firstNonEmpty(structureByType[propertyType], defaultStructure)
	}

	similar := make([]int, 0, 3)
	similar = append(similar, seed.SimilarIDs...)

	features := make([]string, len(seed.Features))
	copy(features, seed.Features)

	return domain.Listing{
		ID:          id,
		Name:        str(seed.Name),
		AreaKey:     str(seed.AreaKey),
		Prefecture:  prefecture,
		City:        city,
		Address:     str(seed.Address),
		Station:     str(seed.Station),
		TotalFloors: integer(seed.TotalFloors),
		Floor:       integer(seed.Floor),
		Direction:   str(seed.Direction),
		Type:        propertyType,
		Layout:      str(seed.Layout),
		Area:        area,
		BuildDate:   buildDate,
		Age:         firstNonEmpty(seed.Age, BuildAge(buildDate, f.currentYear)),
		Structure:   structure,

		Price:          price,
		ManagementFee:  integer(seed.ManagementFee),
		DepositMonths:  num(seed.DepositMonths),
		KeyMoneyMonths: num(seed.KeyMoneyMonths),
		InitialCosts:   BuildInitialCosts(price, integer(seed.ManagementFee), num(seed.DepositMonths), num(seed.KeyMoneyMonths)),

		Badge:    seed.Badge,
		Gradient: firstNonEmpty(seed.Gradient, gradients[id%len(gradients)]),
		Features: features,

		Parking:     firstNonEmpty(seed.Parking, defaultParking),
		MoveIn:      firstNonEmpty(seed.MoveIn, defaultMoveIn),
		Contract:    firstNonEmpty(seed.Contract, defaultContract),
		Guarantor:   firstNonEmpty(seed.Guarantor, defaultGuarantor),
		Transaction: firstNonEmpty(seed.Transaction, defaultTransaction),

		Floorplan:  BuildFloorplan(str(seed.Layout), area, propertyType),
		Nearby:     BuildNearby(prefecture, city),
		Company:    BuildCompany(prefecture, city),
		SimilarIDs: similar,

		AgeYears: CalcAgeYears(buildDate, f.currentYear),
	}
}

// ExpandSeeds присваивает сидам последовательные ID начиная со startID.
// Сид без обязательных полей не отбрасывается, а только логируется.
func (f *PropertyFactory) ExpandSeeds(ctx context.Context, seeds []domain.Seed, startID int) []domain.Listing {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyFactory",
		"method":    "ExpandSeeds",
	})

	listings := make([]domain.Listing, 0, len(seeds))
	for i, seed := range seeds {
		if missing := seed.MissingFields(); len(missing) > 0 {
			logger.Warn("Seed is missing required fields", port.Fields{
				"seed_index": i,
				"seed_name":  firstNonEmpty(str(seed.Name), "名称不明"),
				"missing":    strings.Join(missing, ", "),
			})
		}
		listings = append(listings, f.CreateProperty(startID+i, seed))
	}

	logger.Debug("Seeds expanded", port.Fields{"count": len(listings), "start_id": startID})
	return listings
}
