package port

import "listing-service/internal/core/domain"

// StationDirectoryPort - справочник линий и станций для словарей и подписей.
type StationDirectoryPort interface {
	Prefectures() []domain.Prefecture
	Prefecture(key string) (domain.Prefecture, bool)
	Lines(prefKey string) []domain.Line
	Stops(lineKey string) ([]domain.Stop, bool)
	LineName(lineKey string) (string, bool)
	LinePrefecture(lineKey string) (string, bool)
	LineLabel(linesRaw string) string
}
