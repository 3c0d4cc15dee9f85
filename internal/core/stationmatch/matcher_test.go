package stationmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-service/internal/core/domain"
)

func testStationData() domain.StationData {
	return domain.StationData{
		Prefectures: []domain.Prefecture{
			{
				Key: "tokyo", Name: "東京都", Region: "関東",
				Railways: []domain.Railway{
					{Company: "JR東日本", Lines: []domain.Line{
						{Key: "yamanote", Name: "JR山手線", Count: 30},
						{Key: "chuo", Name: "JR中央線（快速）", Count: 24},
					}},
					{Company: "東京都交通局", Lines: []domain.Line{
						{Key: "oedo", Name: "都営大江戸線", Count: 38},
						{Key: "arakawa", Name: "都電荒川線", Count: 30},
					}},
				},
			},
			{
				Key: "hyogo", Name: "兵庫県", Region: "近畿",
				Railways: []domain.Railway{
					{Company: "神戸市交通局", Lines: []domain.Line{
						{Key: "seishin-yamate", Name: "神戸市営西神・山手線", Count: 16},
					}},
				},
			},
		},
		Lines: []domain.LineStops{
			{Line: "yamanote", Stops: []domain.Stop{{Name: "新宿", Count: 120}, {Name: "渋谷", Count: 98}}},
			{Line: "chuo", Stops: []domain.Stop{{Name: "新宿", Count: 120}, {Name: "中野", Count: 40}}},
			{Line: "oedo", Stops: []domain.Stop{{Name: "新宿", Count: 120}, {Name: "六本木", Count: 33}}},
			{Line: "seishin-yamate", Stops: []domain.Stop{{Name: "三宮", Count: 51}}},
		},
	}
}

func listingAt(station, areaKey string, m *Matcher) *domain.Listing {
	l := &domain.Listing{AreaKey: areaKey, Station: station}
	l.StationName = ExtractStationName(station)
	l.LineKeys = m.ResolveLineKeys(l.StationName)
	return l
}

func TestExtractStationName(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"新宿駅まで徒歩5分", "新宿"},
		{"花畑町電停まで徒歩3分", "花畑町"},
		{"バス停楚辺まで徒歩3分", "楚辺"},
		{"ゆいレール経塚駅まで徒歩5分", "経塚"},
		{"リニモ長久手古戦場駅まで徒歩10分", "長久手古戦場"},
		{"", ""},
		{"徒歩圏内に駅なし", "徒歩圏内に"},
		{"最寄りはバス", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractStationName(tc.in))
		})
	}
}

func TestBuildTargetStations(t *testing.T) {
	targets, lines := BuildTargetStations([]string{"yamanote:新宿", "chuo:中野", "broken", "oedo:"})

	assert.Equal(t, map[string]struct{}{"新宿": {}, "中野": {}, "": {}}, targets)
	assert.Equal(t, map[string]struct{}{"yamanote": {}, "chuo": {}, "oedo": {}}, lines)
}

func TestResolveLineKeys(t *testing.T) {
	m := NewMatcher(testStationData())

	t.Run("known station", func(t *testing.T) {
		keys := m.ResolveLineKeys("新宿")
		assert.Len(t, keys, 3)
		assert.Contains(t, keys, "yamanote")
		assert.Contains(t, keys, "oedo")
	})

	t.Run("alias", func(t *testing.T) {
		keys := m.ResolveLineKeys("三ノ宮")
		assert.Equal(t, map[string]struct{}{"seishin-yamate": {}}, keys)
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Empty(t, m.ResolveLineKeys("不明"))
		assert.Empty(t, m.ResolveLineKeys(""))
	})

	t.Run("result is a copy", func(t *testing.T) {
		keys := m.ResolveLineKeys("新宿")
		delete(keys, "yamanote")
		keys["extra"] = struct{}{}

		again := m.ResolveLineKeys("新宿")
		assert.Contains(t, again, "yamanote")
		assert.NotContains(t, again, "extra")
	})
}

func TestMatchStationLine(t *testing.T) {
	m := NewMatcher(testStationData())

	shinjuku := listingAt("新宿駅まで徒歩5分", "tokyo", m)
	shibuya := listingAt("渋谷駅まで徒歩7分", "tokyo", m)
	nakano := listingAt("中野駅まで徒歩3分", "tokyo", m)
	sannomiya := listingAt("三ノ宮駅まで徒歩4分", "hyogo", m)
	unknownTokyo := listingAt("バス停王子まで徒歩2分", "tokyo", m)
	osaka := listingAt("梅田駅まで徒歩5分", "osaka", m)

	t.Run("no line filter passes everything", func(t *testing.T) {
		assert.True(t, m.MatchStationLine(osaka, nil, nil, nil))
	})

	t.Run("explicit station", func(t *testing.T) {
		targets, withStations := BuildTargetStations([]string{"yamanote:新宿"})
		lines := []string{"yamanote"}

		assert.True(t, m.MatchStationLine(shinjuku, targets, lines, withStations))
		// Остальные станции линии исключены явным выбором.
		assert.False(t, m.MatchStationLine(shibuya, targets, lines, withStations))
		assert.False(t, m.MatchStationLine(unknownTokyo, targets, lines, withStations))
	})

	t.Run("explicit station through alias", func(t *testing.T) {
		targets, withStations := BuildTargetStations([]string{"seishin-yamate:三宮"})
		assert.True(t, m.MatchStationLine(sannomiya, targets, []string{"seishin-yamate"}, withStations))
	})

	t.Run("line membership", func(t *testing.T) {
		lines := []string{"chuo"}
		empty := map[string]struct{}{}
		assert.True(t, m.MatchStationLine(nakano, empty, lines, empty))
		assert.True(t, m.MatchStationLine(shinjuku, empty, lines, empty))
	})

	t.Run("prefecture fallback", func(t *testing.T) {
		lines := []string{"arakawa"}
		empty := map[string]struct{}{}
		assert.True(t, m.MatchStationLine(unknownTokyo, empty, lines, empty))
		assert.True(t, m.MatchStationLine(shibuya, empty, lines, empty))
		assert.False(t, m.MatchStationLine(osaka, empty, lines, empty))
		assert.False(t, m.MatchStationLine(sannomiya, empty, lines, empty))
	})

	t.Run("mixed lines", func(t *testing.T) {
		targets, withStations := BuildTargetStations([]string{"yamanote:渋谷"})
		lines := []string{"yamanote", "seishin-yamate"}

		assert.True(t, m.MatchStationLine(shibuya, targets, lines, withStations))
		assert.True(t, m.MatchStationLine(sannomiya, targets, lines, withStations))
		assert.False(t, m.MatchStationLine(osaka, targets, lines, withStations))
	})
}

func TestLineLabel(t *testing.T) {
	m := NewMatcher(testStationData())

	assert.Equal(t, "", m.LineLabel(""))
	assert.Equal(t, "", m.LineLabel("unknown"))
	assert.Equal(t, "JR山手線", m.LineLabel("yamanote"))
	assert.Equal(t, "JR山手線・都営大江戸線", m.LineLabel("yamanote,unknown,oedo"))
	assert.Equal(t, "JR山手線・JR中央線（快速）他2路線", m.LineLabel("yamanote,chuo,oedo,arakawa"))
}

func TestLookups(t *testing.T) {
	m := NewMatcher(testStationData())

	pref, ok := m.LinePrefecture("seishin-yamate")
	require.True(t, ok)
	assert.Equal(t, "hyogo", pref)

	name, ok := m.LineName("oedo")
	require.True(t, ok)
	assert.Equal(t, "都営大江戸線", name)

	p, ok := m.Prefecture("tokyo")
	require.True(t, ok)
	assert.Equal(t, "東京都", p.Name)
	_, ok = m.Prefecture("atlantis")
	assert.False(t, ok)
	assert.Len(t, m.Prefectures(), 2)

	stops, ok := m.Stops("yamanote")
	require.True(t, ok)
	assert.Len(t, stops, 2)

	stops, ok = m.Stops("arakawa")
	assert.True(t, ok)
	assert.Empty(t, stops)

	_, ok = m.Stops("nope")
	assert.False(t, ok)
}

func TestLines(t *testing.T) {
	m := NewMatcher(testStationData())

	lines := m.Lines("tokyo")
	require.Len(t, lines, 4)
	assert.Equal(t, "yamanote", lines[0].Key)
	assert.Equal(t, "arakawa", lines[3].Key)
	assert.Nil(t, m.Lines("atlantis"))
}
