package searchfilter

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/stationmatch"
)

const layoutThreePlus = "3LDK+"

var leadingDigits = regexp.MustCompile(`^(\d+)`)

// MatchLayout проверяет планировку. "3LDK+" покрывает все LDK с тремя и более комнатами.
func MatchLayout(selected []string, layout string) bool {
	if len(selected) == 0 {
		return true
	}
	if slices.Contains(selected, layout) {
		return true
	}
	if slices.Contains(selected, layoutThreePlus) {
		m := leadingDigits.FindStringSubmatch(layout)
		if m != nil && strings.Contains(layout, "LDK") {
			if n, err := strconv.Atoi(m[1]); err == nil && n >= 3 {
				return true
			}
		}
	}
	return false
}

// MatchFeatures требует, чтобы каждая метка входила подстрокой хотя бы в одну особенность.
func MatchFeatures(labels []string, features []string) bool {
	for _, label := range labels {
		found := false
		for _, f := range features {
			if strings.Contains(f, label) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FilterProperties оставляет объявления, прошедшие все условия. Порядок входа сохраняется.
func FilterProperties(listings []domain.Listing, d domain.FilterDescriptor, matcher *stationmatch.Matcher) []domain.Listing {
	result := make([]domain.Listing, 0, len(listings))
	for i := range listings {
		if Matches(&listings[i], d, matcher) {
			result = append(result, listings[i])
		}
	}
	return result
}

// Matches проверяет одно объявление по всем условиям дескриптора.
func Matches(l *domain.Listing, d domain.FilterDescriptor, matcher *stationmatch.Matcher) bool {
	if d.Area != "" && l.AreaKey != d.Area {
		return false
	}
	if !matcher.MatchStationLine(l, d.TargetStations, d.LineKeys, d.LinesWithStations) {
		return false
	}
	if !d.Rent.Contains(l.Price) {
		return false
	}
	if !MatchLayout(d.Layouts, l.Layout) {
		return false
	}
	if len(d.TypeLabels) > 0 && !slices.Contains(d.TypeLabels, l.Type) {
		return false
	}
	if !d.Size.Contains(l.Area) {
		return false
	}
	if float64(l.AgeYears) > d.AgeThreshold {
		return false
	}
	if len(d.FeatureLabels) > 0 && !MatchFeatures(d.FeatureLabels, l.Features) {
		return false
	}
	return true
}
