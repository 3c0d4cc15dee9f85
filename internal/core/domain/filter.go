package domain

import "math"

type SortKey string

const (
	SortRecommended SortKey = "recommended"
	SortPriceAsc    SortKey = "price-asc"
	SortPriceDesc   SortKey = "price-desc"
	SortAgeAsc      SortKey = "age-asc"
	SortAreaDesc    SortKey = "area-desc"
)

// Range - числовой диапазон, Max может быть +Inf.
type Range struct {
	Min float64
	Max float64
}

func UnboundedRange() Range {
	return Range{Min: 0, Max: math.Inf(1)}
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Bounded() bool {
	return !math.IsInf(r.Max, 1)
}

// FilterDescriptor - разобранные условия поиска одного запроса.
type FilterDescriptor struct {
	Area    string
	Rent    Range
	Size    Range
	Layouts []string

	Types      []string
	TypeLabels []string

	Features      []string
	FeatureLabels []string

	Ages         []string
	AgeThreshold float64

	LineKeys          []string
	StationRaws       []string
	TargetStations    map[string]struct{}
	LinesWithStations map[string]struct{}

	Sort SortKey
	Page int
}
