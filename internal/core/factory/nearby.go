package factory

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"listing-service/internal/core/domain"
)

var (
	wardInCityRe = regexp.MustCompile(`市(.+?)区$`)
	wardRe       = regexp.MustCompile(`^(.+?)区$`)
)

// CityLabel сокращает название города для имен объектов:
// "大阪市中央区" -> "中央", "渋谷区" -> "渋谷", "四日市市" -> "四日市".
func CityLabel(city string) string {
	if m := wardInCityRe.FindStringSubmatch(city); m != nil {
		return m[1]
	}
	if m := wardRe.FindStringSubmatch(city); m != nil {
		return m[1]
	}
	return strings.TrimSuffix(city, "市")
}

// prefectureShort убирает 都/府/県, 北海道 остается как есть.
func prefectureShort(prefecture string) string {
	if prefecture == "北海道" {
		return prefecture
	}
	for _, suffix := range []string{"都", "府", "県"} {
		if strings.HasSuffix(prefecture, suffix) {
			return strings.TrimSuffix(prefecture, suffix)
		}
	}
	return prefecture
}

func brandIndex(label string) int {
	r, _ := utf8.DecodeRuneInString(label)
	if r == utf8.RuneError {
		return 0
	}
	return int(r) % 3
}

// BuildNearby генерирует окружение объекта по префектуре и городу.
func BuildNearby(prefecture, city string) domain.Nearby {
	label := CityLabel(city)
	idx := brandIndex(label)
	short := prefectureShort(prefecture)

	return domain.Nearby{
		Shopping: []domain.Facility{
			{Name: fmt.Sprintf("%s%s駅前店", convenienceStores[idx], label), Distance: "徒歩2分（約160m）"},
			{Name: fmt.Sprintf("%s%s店", supermarkets[idx], label), Distance: "徒歩5分（約400m）"},
			{Name: fmt.Sprintf("ドラッグストア%s店", label), Distance: "徒歩4分（約320m）"},
		},
		Medical: []domain.Facility{
			{Name: fmt.Sprintf("%s駅前クリニック", label), Distance: "徒歩3分（約240m）"},
			{Name: fmt.Sprintf("%s中央病院", short), Distance: "車で10分"},
		},
		Education: []domain.Facility{
			{Name: fmt.Sprintf("%s小学校", label), Distance: "徒歩7分（約560m）"},
			{Name: fmt.Sprintf("%s中学校", label), Distance: "徒歩10分（約800m）"},
		},
		Finance: []domain.Facility{
			{Name: fmt.Sprintf("ゆうちょ銀行%s支店", label), Distance: "徒歩5分（約400m）"},
			{Name: fmt.Sprintf("%s郵便局", label), Distance: "徒歩6分（約480m）"},
		},
	}
}

// BuildCompany возвращает данные агентства, обслуживающего город.
func BuildCompany(prefecture, city string) domain.Company {
	return domain.Company{
		Name:    fmt.Sprintf("ホームナビ%s店", CityLabel(city)),
		Address: fmt.Sprintf("%s%s1-1-1", prefecture, city),
		Hours:   "10:00〜19:00",
		Holiday: "水曜日",
	}
}
