package factory

import (
	"context"
	"testing"

	"listing-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sp(s string) *string   { return &s }
func fp(f float64) *float64 { return &f }
func ip(i int) *int         { return &i }

func fullSeed() domain.Seed {
	return domain.Seed{
		Name:           sp("アーバンコート旭川"),
		AreaKey:        sp("hokkaido"),
		Prefecture:     sp("北海道"),
		City:           sp("旭川市"),
		Address:        sp("北海道旭川市宮下通"),
		Station:        sp("旭川駅まで徒歩7分"),
		TotalFloors:    ip(8),
		Floor:          ip(4),
		Direction:      sp("南西"),
		Price:          fp(4.2),
		ManagementFee:  ip(3500),
		DepositMonths:  fp(0),
		KeyMoneyMonths: fp(0),
		Type:           sp("マンション"),
		Layout:         sp("1LDK"),
		Area:           fp(38.5),
		BuildDate:      sp("2021年3月"),
		Features:       []string{"バス・トイレ別", "エアコン"},
	}
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2023年6月", 2023},
		{"1975年1月", 1975},
		{"令和3年", 0},
		{"", 0},
		{"築2019年", 2019},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractYear(tt.in), tt.in)
	}
}

func TestBuildAge(t *testing.T) {
	assert.Equal(t, "不明", BuildAge("", 2025))
	assert.Equal(t, "不明", BuildAge("昭和", 2025))
	assert.Equal(t, "新築", BuildAge("2025年4月", 2025))
	assert.Equal(t, "新築", BuildAge("2026年1月", 2025))
	assert.Equal(t, "築4年", BuildAge("2021年3月", 2025))
}

func TestCalcAgeYears_UnknownIs99(t *testing.T) {
	assert.Equal(t, 99, CalcAgeYears("不明", 2025))
	assert.Equal(t, 10, CalcAgeYears("2015年2月", 2025))
}

func roomNames(fp domain.Floorplan) []string {
	names := make([]string, 0, len(fp.Rooms))
	for _, r := range fp.Rooms {
		names = append(names, r.Name+r.Size)
	}
	return names
}

func TestBuildFloorplan(t *testing.T) {
	t.Run("2LDK", func(t *testing.T) {
		fp := BuildFloorplan("2LDK", 55, "マンション")
		assert.Equal(t, "2LDK ／ 55㎡", fp.Label)
		assert.Equal(t, []string{"LDK11.5帖", "洋室7帖", "洋室7帖", "浴室", "WC", "玄関", "バルコニー"}, roomNames(fp))
	})

	t.Run("1R house gets garden", func(t *testing.T) {
		fp := BuildFloorplan("1R", 20, "一戸建て")
		assert.Equal(t, []string{"居室9.5帖", "浴室", "WC", "玄関", "庭"}, roomNames(fp))
	})

	t.Run("SLDK adds service room", func(t *testing.T) {
		fp := BuildFloorplan("3SLDK", 80, "マンション")
		assert.Equal(t, []string{
			"LDK16.5帖", "洋室5帖", "洋室5帖", "洋室5帖", "S（納戸）3.5帖",
			"浴室", "WC", "玄関", "バルコニー",
		}, roomNames(fp))
	})

	t.Run("unrecognized layout falls back", func(t *testing.T) {
		fp := BuildFloorplan("ワンルーム", 30, "アパート")
		assert.Equal(t, []string{"LDK8.5帖", "洋室5.5帖", "浴室", "WC", "玄関", "バルコニー"}, roomNames(fp))
	})

	t.Run("minimum three jo", func(t *testing.T) {
		fp := BuildFloorplan("1K", 12, "アパート")
		assert.Equal(t, "K", fp.Rooms[0].Name)
		assert.Equal(t, "3帖", fp.Rooms[0].Size)
		assert.Equal(t, "4.5帖", fp.Rooms[1].Size)
	})
}

func TestBuildInitialCosts(t *testing.T) {
	t.Run("high tier", func(t *testing.T) {
		c := BuildInitialCosts(8, 5000, 1, 1)
		assert.Equal(t, int64(80000), c.Deposit.Amount)
		assert.Equal(t, "1ヶ月", c.Deposit.Note)
		assert.Equal(t, int64(88000), c.Brokerage.Amount)
		assert.Equal(t, int64(20000), c.Insurance.Amount)
		assert.Equal(t, int64(40000), c.GuarantorFee.Amount)
		assert.Equal(t, int64(22000), c.KeyExchange.Amount)
		assert.Equal(t, int64(415000), c.Total)
	})

	t.Run("low tier without deposit", func(t *testing.T) {
		c := BuildInitialCosts(7.5, 3000, 0, 0)
		assert.Equal(t, "なし", c.Deposit.Note)
		assert.Equal(t, "なし", c.KeyMoney.Note)
		assert.Equal(t, int64(82500), c.Brokerage.Amount)
		assert.Equal(t, int64(15000), c.Insurance.Amount)
		assert.Equal(t, int64(16500), c.KeyExchange.Amount)
		assert.Equal(t, int64(229500), c.Total)
	})

	t.Run("total equals sum of items", func(t *testing.T) {
		c := BuildInitialCosts(4.2, 3500, 2, 1)
		var sum int64
		for _, item := range c.Items() {
			sum += item.Amount
		}
		assert.Equal(t, sum, c.Total)
		assert.Equal(t, int64(42000), c.Rent.Amount)
	})
}

func TestCityLabel(t *testing.T) {
	assert.Equal(t, "中央", CityLabel("大阪市中央区"))
	assert.Equal(t, "渋谷", CityLabel("渋谷区"))
	assert.Equal(t, "四日市", CityLabel("四日市市"))
	assert.Equal(t, "青森", CityLabel("青森市"))
	assert.Equal(t, "", CityLabel(""))
}

func TestBuildNearby(t *testing.T) {
	n := BuildNearby("大阪府", "大阪市中央区")
	assert.Equal(t, "セブンイレブン中央駅前店", n.Shopping[0].Name)
	assert.Equal(t, "マックスバリュ中央店", n.Shopping[1].Name)
	assert.Equal(t, "大阪中央病院", n.Medical[1].Name)

	n = BuildNearby("東京都", "渋谷区")
	assert.Equal(t, "ローソン渋谷駅前店", n.Shopping[0].Name)
	assert.Equal(t, "イオン渋谷店", n.Shopping[1].Name)
	assert.Equal(t, "東京中央病院", n.Medical[1].Name)

	n = BuildNearby("北海道", "旭川市")
	assert.Equal(t, "ファミリーマート旭川駅前店", n.Shopping[0].Name)
	assert.Equal(t, "北海道中央病院", n.Medical[1].Name)
	assert.Equal(t, "旭川郵便局", n.Finance[1].Name)
}

func TestBuildCompany(t *testing.T) {
	c := BuildCompany("愛知県", "名古屋市中区")
	assert.Equal(t, "ホームナビ中店", c.Name)
	assert.Equal(t, "愛知県名古屋市中区1-1-1", c.Address)
	assert.Equal(t, "水曜日", c.Holiday)
}

func TestCreateProperty_DefaultsAndOverrides(t *testing.T) {
	f := NewPropertyFactory(2025)

	p := f.CreateProperty(13, fullSeed())
	assert.Equal(t, 13, p.ID)
	assert.Equal(t, "なし（近隣月極駐車場あり）", p.Parking)
	assert.Equal(t, "即入居可", p.MoveIn)
	assert.Equal(t, "仲介", p.Transaction)
	assert.Equal(t, "", p.Badge)
	assert.Equal(t, "RC造（鉄筋コンクリート）", p.Structure)
	assert.Equal(t, gradients[1], p.Gradient)
	assert.Equal(t, "築4年", p.Age)
	assert.Equal(t, 4, p.AgeYears)
	assert.Empty(t, p.SimilarIDs)

	seed := fullSeed()
	seed.Parking = "あり（月額8,000円）"
	seed.Badge = "NEW"
	seed.Type = sp("アパート")
	p = f.CreateProperty(1, seed)
	assert.Equal(t, "あり（月額8,000円）", p.Parking)
	assert.Equal(t, "NEW", p.Badge)
	assert.Equal(t, "軽量鉄骨造", p.Structure)
}

func TestExpandSeeds_KeepsIncompleteSeeds(t *testing.T) {
	f := NewPropertyFactory(2025)
	broken := domain.Seed{Name: sp("壊れた物件")}

	listings := f.ExpandSeeds(context.Background(), []domain.Seed{fullSeed(), broken}, 24)
	require.Len(t, listings, 2)
	assert.Equal(t, 24, listings[0].ID)
	assert.Equal(t, 25, listings[1].ID)
	assert.Equal(t, "不明", listings[1].Age)
	assert.Equal(t, 99, listings[1].AgeYears)
	assert.Equal(t, "LDK", listings[1].Floorplan.Rooms[0].Name)
}

func TestAssignSimilarIDs(t *testing.T) {
	listings := []domain.Listing{
		{ID: 1, AreaKey: "tokyo", Price: 10},
		{ID: 2, AreaKey: "tokyo", Price: 12},
		{ID: 3, AreaKey: "osaka", Price: 10.5},
		{ID: 4, AreaKey: "tokyo", Price: 20},
		{ID: 5, AreaKey: "osaka", Price: 9.8},
		{ID: 6, AreaKey: "kyoto", Price: 7, SimilarIDs: []int{1}},
	}
	AssignSimilarIDs(listings)

	// две из той же префектуры, затем ближайшая по цене
	assert.Equal(t, []int{2, 4, 5}, listings[0].SimilarIDs)
	assert.Equal(t, []int{5, 1, 2}, listings[2].SimilarIDs)
	assert.Equal(t, []int{1}, listings[5].SimilarIDs)

	for _, l := range listings {
		assert.LessOrEqual(t, len(l.SimilarIDs), 3)
		assert.NotContains(t, l.SimilarIDs, l.ID)
	}

	before := append([]int(nil), listings[0].SimilarIDs...)
	AssignSimilarIDs(listings)
	assert.Equal(t, before, listings[0].SimilarIDs)
}
