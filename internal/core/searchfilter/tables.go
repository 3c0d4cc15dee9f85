package searchfilter

import "listing-service/internal/core/domain"

type codeLabel struct {
	code  string
	label string
}

// Порядок совпадает с порядком чекбоксов в форме поиска.
var featureTable = []codeLabel{
	{"parking", "駐車場"},
	{"pet", "ペット可"},
	{"autolock", "オートロック"},
	{"bath_toilet", "バス・トイレ別"},
	{"aircon", "エアコン"},
	{"2f_above", "2階以上"},
	{"corner", "角部屋"},
	{"flooring", "フローリング"},
	{"delivery_box", "宅配ボックス"},
	{"internet", "インターネット"},
}

var typeTable = []codeLabel{
	{"mansion", "マンション"},
	{"apartment", "アパート"},
	{"house", "一戸建て"},
	{"maisonette", "メゾネット"},
}

var (
	featureMap = indexTable(featureTable)
	typeMap    = indexTable(typeTable)
)

func indexTable(table []codeLabel) map[string]string {
	m := make(map[string]string, len(table))
	for _, row := range table {
		m[row.code] = row.label
	}
	return m
}

// FeatureLabel возвращает строку, по которой ищется особенность в Features.
func FeatureLabel(code string) (string, bool) {
	label, ok := featureMap[code]
	return label, ok
}

// TypeLabel возвращает название типа объекта по коду.
func TypeLabel(code string) (string, bool) {
	label, ok := typeMap[code]
	return label, ok
}

func FeatureDictionary() []domain.DictionaryItem {
	return toDictionary(featureTable, "feature")
}

func TypeDictionary() []domain.DictionaryItem {
	return toDictionary(typeTable, "type")
}

func toDictionary(table []codeLabel, group string) []domain.DictionaryItem {
	items := make([]domain.DictionaryItem, 0, len(table))
	for _, row := range table {
		items = append(items, domain.DictionaryItem{
			SystemName:  row.code,
			DisplayName: row.label,
			Group:       group,
		})
	}
	return items
}
