package searchfilter

import (
	"fmt"
	"net/url"
	"strings"

	"listing-service/internal/core/stationmatch"
)

const (
	nationwideLabel = "全国"
	emptyQueryLabel = "条件指定なし（全件）"

	labelMaxLayouts = 3
	labelMaxTypes   = 2
)

// AreaHeading возвращает название области поиска для заголовка:
// подпись линий, иначе название префектуры, иначе "全国".
func AreaHeading(values url.Values, matcher *stationmatch.Matcher) string {
	if label := matcher.LineLabel(values.Get(ParamLines)); label != "" {
		return label
	}
	if pref, ok := matcher.Prefecture(values.Get(ParamArea)); ok {
		return pref.Name
	}
	return nationwideLabel
}

// BuildLabel собирает читаемую подпись сохраненного поиска.
func BuildLabel(values url.Values, matcher *stationmatch.Matcher) string {
	var parts []string

	if lineLabel := matcher.LineLabel(values.Get(ParamLines)); lineLabel != "" {
		parts = append(parts, lineLabel)
	} else if pref, ok := matcher.Prefecture(values.Get(ParamArea)); ok {
		parts = append(parts, pref.Name)
	}

	rentMin, rentMax := values.Get(ParamRentMin), values.Get(ParamRentMax)
	switch {
	case rentMin != "" && rentMax != "":
		parts = append(parts, fmt.Sprintf("%s〜%s万円", rentMin, rentMax))
	case rentMin != "":
		parts = append(parts, rentMin+"万円以上")
	case rentMax != "":
		parts = append(parts, rentMax+"万円以下")
	}

	if layouts := values[ParamLayout]; len(layouts) > 0 {
		shown := layouts[:min(len(layouts), labelMaxLayouts)]
		part := strings.Join(shown, "・")
		if len(layouts) > labelMaxLayouts {
			part += "他"
		}
		parts = append(parts, part)
	}

	if types := values[ParamType]; len(types) > 0 {
		labels := make([]string, 0, labelMaxTypes)
		for _, t := range types[:min(len(types), labelMaxTypes)] {
			if label, ok := TypeLabel(t); ok {
				labels = append(labels, label)
			} else {
				labels = append(labels, t)
			}
		}
		parts = append(parts, strings.Join(labels, "・"))
	}

	if len(parts) == 0 {
		return emptyQueryLabel
	}
	return strings.Join(parts, " / ")
}
