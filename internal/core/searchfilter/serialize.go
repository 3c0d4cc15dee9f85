package searchfilter

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"listing-service/internal/core/domain"
)

func formatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Serialize строит параметры запроса по дескриптору, опуская значения по умолчанию
// (sort=recommended, page=1, пустые диапазоны).
// ParseFilterParams(Serialize(d)) дает исходный дескриптор.
func Serialize(d domain.FilterDescriptor) url.Values {
	values := url.Values{}

	if d.Area != "" {
		values.Set(ParamArea, d.Area)
	}
	setRange(values, d.Rent, ParamRentMin, ParamRentMax)
	setRange(values, d.Size, ParamSizeMin, ParamSizeMax)

	for _, v := range d.Layouts {
		values.Add(ParamLayout, v)
	}
	for _, v := range d.Types {
		values.Add(ParamType, v)
	}
	for _, v := range d.Ages {
		values.Add(ParamAge, v)
	}
	for _, v := range d.Features {
		values.Add(ParamFeature, v)
	}

	if len(d.LineKeys) > 0 {
		values.Set(ParamLines, strings.Join(d.LineKeys, ","))
	}
	if len(d.StationRaws) > 0 {
		values.Set(ParamStations, strings.Join(d.StationRaws, ","))
	}

	if d.Sort != "" && d.Sort != domain.SortRecommended {
		values.Set(ParamSort, string(d.Sort))
	}
	if d.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(d.Page))
	}
	return values
}

func setRange(values url.Values, r domain.Range, minKey, maxKey string) {
	// {отрицательный min, 0} получается только перестановкой границ,
	// поэтому записывается как один max: разбор снова переставит их
	if r.Bounded() && r.Max == 0 && r.Min != 0 && !math.IsNaN(r.Min) {
		values.Set(maxKey, formatFloat(r.Min))
		return
	}
	if r.Min != 0 && !math.IsNaN(r.Min) {
		values.Set(minKey, formatFloat(r.Min))
	}
	if r.Bounded() {
		values.Set(maxKey, formatFloat(r.Max))
	}
}
