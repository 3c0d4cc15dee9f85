package domain

// DictionaryItem - элемент справочника: системный код и отображаемое имя.
type DictionaryItem struct {
	SystemName  string
	DisplayName string
	Group       string
	Count       int
}
