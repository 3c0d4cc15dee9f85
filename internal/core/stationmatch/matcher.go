package stationmatch

import (
	"fmt"
	"strings"

	"listing-service/internal/core/domain"
)

// Matcher - справочник линий и станций с индексами для поиска.
// Строится один раз при старте и дальше только читается.
type Matcher struct {
	stationToLines map[string]map[string]struct{}
	lineNames      map[string]string
	lineToPref     map[string]string
	prefectures    []domain.Prefecture
	prefByKey      map[string]int
	stops          map[string][]domain.Stop
}

// NewMatcher строит все индексы по справочнику.
func NewMatcher(data domain.StationData) *Matcher {
	m := &Matcher{
		stationToLines: make(map[string]map[string]struct{}),
		lineNames:      make(map[string]string),
		lineToPref:     make(map[string]string),
		prefectures:    data.Prefectures,
		prefByKey:      make(map[string]int, len(data.Prefectures)),
		stops:          make(map[string][]domain.Stop, len(data.Lines)),
	}

	for i, pref := range data.Prefectures {
		m.prefByKey[pref.Key] = i
		for _, railway := range pref.Railways {
			for _, line := range railway.Lines {
				m.lineNames[line.Key] = line.Name
				m.lineToPref[line.Key] = pref.Key
			}
		}
	}

	for _, ls := range data.Lines {
		m.stops[ls.Line] = ls.Stops
		for _, stop := range ls.Stops {
			lines, ok := m.stationToLines[stop.Name]
			if !ok {
				lines = make(map[string]struct{})
				m.stationToLines[stop.Name] = lines
			}
			lines[ls.Line] = struct{}{}
		}
	}

	return m
}

// ResolveLineKeys возвращает копию множества линий станции, с учетом алиаса.
func (m *Matcher) ResolveLineKeys(stationName string) map[string]struct{} {
	result := make(map[string]struct{})
	if stationName == "" {
		return result
	}
	keys, ok := m.stationToLines[stationName]
	if !ok {
		alias, hasAlias := stationAlias[stationName]
		if !hasAlias {
			return result
		}
		keys = m.stationToLines[alias]
	}
	for k := range keys {
		result[k] = struct{}{}
	}
	return result
}

// MatchStationLine проверяет объявление на соответствие выбранным линиям и станциям:
//  1. станция объявления (или ее алиас) явно выбрана;
//  2. для линий без выбранных станций - станция объявления лежит на линии;
//  3. для тех же линий - префектура линии совпадает с префектурой объявления.
//
// Линии с явно выбранными станциями проверяются только первым шагом.
func (m *Matcher) MatchStationLine(l *domain.Listing, targets map[string]struct{}, lineKeys []string, linesWithStations map[string]struct{}) bool {
	if len(lineKeys) == 0 {
		return true
	}

	station := l.StationName
	if len(targets) > 0 && station != "" {
		if _, ok := targets[station]; ok {
			return true
		}
		if alias, ok := stationAlias[station]; ok {
			if _, ok := targets[alias]; ok {
				return true
			}
		}
	}

	withoutStations := make([]string, 0, len(lineKeys))
	for _, lk := range lineKeys {
		if _, ok := linesWithStations[lk]; !ok {
			withoutStations = append(withoutStations, lk)
		}
	}

	if station != "" && len(l.LineKeys) > 0 {
		for _, lk := range withoutStations {
			if l.HasLine(lk) {
				return true
			}
		}
	}

	for _, lk := range withoutStations {
		if prefKey, ok := m.lineToPref[lk]; ok && prefKey == l.AreaKey {
			return true
		}
	}

	return false
}

// LineLabel собирает подпись по списку ключей через запятую:
// "A・B" или "A・B他N路線". Неизвестные ключи пропускаются.
func (m *Matcher) LineLabel(linesRaw string) string {
	if linesRaw == "" {
		return ""
	}
	var names []string
	for _, key := range strings.Split(linesRaw, ",") {
		if key == "" {
			continue
		}
		if name, ok := m.lineNames[key]; ok && name != "" {
			names = append(names, name)
		}
	}
	switch {
	case len(names) == 0:
		return ""
	case len(names) <= 2:
		return strings.Join(names, "・")
	default:
		return fmt.Sprintf("%s・%s他%d路線", names[0], names[1], len(names)-2)
	}
}

func (m *Matcher) LineName(lineKey string) (string, bool) {
	name, ok := m.lineNames[lineKey]
	return name, ok
}

func (m *Matcher) LinePrefecture(lineKey string) (string, bool) {
	pref, ok := m.lineToPref[lineKey]
	return pref, ok
}

func (m *Matcher) Prefectures() []domain.Prefecture {
	return m.prefectures
}

func (m *Matcher) Prefecture(key string) (domain.Prefecture, bool) {
	i, ok := m.prefByKey[key]
	if !ok {
		return domain.Prefecture{}, false
	}
	return m.prefectures[i], true
}

// Stops возвращает станции линии. Второе значение false для неизвестной линии;
// у известной линии без данных о станциях список пуст.
func (m *Matcher) Stops(lineKey string) ([]domain.Stop, bool) {
	stops, hasStops := m.stops[lineKey]
	_, known := m.lineNames[lineKey]
	if !known && !hasStops {
		return nil, false
	}
	return stops, true
}

// Lines возвращает все линии префектуры в порядке справочника.
func (m *Matcher) Lines(prefKey string) []domain.Line {
	pref, ok := m.Prefecture(prefKey)
	if !ok {
		return nil
	}
	var lines []domain.Line
	for _, railway := range pref.Railways {
		lines = append(lines, railway.Lines...)
	}
	return lines
}
