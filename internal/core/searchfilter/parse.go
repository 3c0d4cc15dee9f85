package searchfilter

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/stationmatch"
)

// Имена параметров запроса.
const (
	ParamArea     = "area"
	ParamRentMin  = "rent_min"
	ParamRentMax  = "rent_max"
	ParamLayout   = "layout"
	ParamType     = "type"
	ParamSizeMin  = "area_min"
	ParamSizeMax  = "area_max"
	ParamAge      = "age"
	ParamFeature  = "feature"
	ParamLines    = "lines"
	ParamStations = "stations"
	ParamSort     = "sort"
	ParamPage     = "page"
)

const ageAny = "any"

// Ведущий числовой префикс строки, как его понимает браузерный parseFloat.
var floatPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// parseLooseFloat разбирает числовой префикс строки. Для строки без числа возвращает NaN.
func parseLooseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	m := floatPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	switch m {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	// при переполнении ParseFloat возвращает ±Inf вместе с ошибкой
	v, _ := strconv.ParseFloat(m, 64)
	return v
}

func orDefault(v, fallback float64) float64 {
	if v == 0 || math.IsNaN(v) {
		return fallback
	}
	return v
}

// fold переводит полноширинные цифры и латиницу в ASCII.
func fold(s string) string {
	return width.Fold.String(s)
}

func first(values url.Values, key string) string {
	return fold(values.Get(key))
}

// getAll возвращает все непустые значения параметра.
func getAll(values url.Values, key string) []string {
	raw := values[key]
	result := make([]string, 0, len(raw))
	for _, v := range raw {
		if v == "" {
			continue
		}
		result = append(result, fold(v))
	}
	return result
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// ParseRange читает пару границ. Отсутствующий минимум равен 0,
// отсутствующий или нулевой максимум означает "без ограничения".
// Перепутанные границы меняются местами, если максимум задан.
func ParseRange(values url.Values, minKey, maxKey string) domain.Range {
	lo := orDefault(parseLooseFloat(first(values, minKey)), 0)
	hi := orDefault(parseLooseFloat(first(values, maxKey)), math.Inf(1))

	if lo > hi && !math.IsInf(hi, 1) {
		lo, hi = hi, lo
	}
	return domain.Range{Min: lo, Max: hi}
}

// CalcAgeThreshold возвращает максимальный допустимый возраст здания.
// Пустой выбор или "any" снимают ограничение; нечисловые значения игнорируются.
func CalcAgeThreshold(ages []string) float64 {
	threshold := math.Inf(-1)
	for _, a := range ages {
		if a == ageAny {
			return math.Inf(1)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil || math.IsNaN(v) {
			continue
		}
		threshold = math.Max(threshold, v)
	}
	if math.IsInf(threshold, -1) {
		return math.Inf(1)
	}
	return threshold
}

// ParseSort возвращает известный ключ сортировки или recommended.
func ParseSort(raw string) domain.SortKey {
	switch key := domain.SortKey(raw); key {
	case domain.SortPriceAsc, domain.SortPriceDesc, domain.SortAgeAsc, domain.SortAreaDesc:
		return key
	default:
		return domain.SortRecommended
	}
}

// ParsePage возвращает номер страницы не меньше 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParseFilterParams разбирает параметры запроса в дескриптор фильтра.
// Никогда не возвращает ошибку: некорректные значения заменяются значениями по умолчанию.
func ParseFilterParams(values url.Values) domain.FilterDescriptor {
	d := domain.FilterDescriptor{
		Area:     first(values, ParamArea),
		Rent:     ParseRange(values, ParamRentMin, ParamRentMax),
		Size:     ParseRange(values, ParamSizeMin, ParamSizeMax),
		Layouts:  getAll(values, ParamLayout),
		Types:    getAll(values, ParamType),
		Ages:     getAll(values, ParamAge),
		Features: getAll(values, ParamFeature),
		Sort:     ParseSort(first(values, ParamSort)),
		Page:     ParsePage(first(values, ParamPage)),
	}

	d.LineKeys = splitCSV(first(values, ParamLines))
	d.StationRaws = splitCSV(values.Get(ParamStations))
	d.TargetStations, d.LinesWithStations = stationmatch.BuildTargetStations(d.StationRaws)

	d.TypeLabels = make([]string, 0, len(d.Types))
	for _, t := range d.Types {
		if label, ok := TypeLabel(t); ok {
			d.TypeLabels = append(d.TypeLabels, label)
		}
	}
	d.FeatureLabels = make([]string, 0, len(d.Features))
	for _, f := range d.Features {
		if label, ok := FeatureLabel(f); ok {
			d.FeatureLabels = append(d.FeatureLabels, label)
		}
	}
	d.AgeThreshold = CalcAgeThreshold(d.Ages)

	return d
}
