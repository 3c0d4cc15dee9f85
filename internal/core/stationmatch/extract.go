package stationmatch

import (
	"regexp"
	"strings"
)

// Шаблоны извлечения станции, порядок важен.
var stationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^バス停(.+?)まで`),          // バス停楚辺まで徒歩3分
	regexp.MustCompile(`^(.+?)電停まで`),           // 花畑町電停まで徒歩3分
	regexp.MustCompile(`^(?:ゆいレール|リニモ)(.+?)駅`), // ゆいレール経塚駅まで徒歩5分
	regexp.MustCompile(`^(.+?)駅`),              // 新宿駅まで徒歩5分
}

// Разные написания одной станции.
var stationAlias = map[string]string{
	"三ノ宮": "三宮",
	"三宮":  "三ノ宮",
}

// ExtractStationName достает имя станции из текста вида "新宿駅まで徒歩5分".
// Возвращает пустую строку, если ни один шаблон не подошел.
func ExtractStationName(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range stationPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// BuildTargetStations разбирает пары "lineKey:stationName".
// Записи без двоеточия пропускаются.
func BuildTargetStations(stationRaws []string) (targets map[string]struct{}, linesWithStations map[string]struct{}) {
	targets = make(map[string]struct{})
	linesWithStations = make(map[string]struct{})
	for _, raw := range stationRaws {
		lineKey, name, ok := strings.Cut(raw, ":")
		if !ok {
			continue
		}
		targets[name] = struct{}{}
		linesWithStations[lineKey] = struct{}{}
	}
	return targets, linesWithStations
}
