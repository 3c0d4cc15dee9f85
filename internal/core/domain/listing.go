package domain

import (
	"maps"
	"slices"
)

// Listing - полностью развернутое объявление об аренде.
// После построения каталога не изменяется.
type Listing struct {
	ID int

	Name       string
	AreaKey    string
	Prefecture string
	City       string
	Address    string
	Station    string

	TotalFloors int
	Floor       int
	Direction   string
	Type        string
	Layout      string
	Area        float64 // м², "㎡"
	BuildDate   string  // "2023年6月"
	Age         string  // "築3年" / "新築" / "不明"
	Structure   string

	Price          float64 // 万円 в месяц
	ManagementFee  int     // 円
	DepositMonths  float64
	KeyMoneyMonths float64
	InitialCosts   InitialCosts

	Badge    string
	Gradient string
	Features []string

	Parking     string
	MoveIn      string
	Contract    string
	Guarantor   string
	Transaction string

	Floorplan  Floorplan
	Nearby     Nearby
	Company    Company
	SimilarIDs []int

	// Предвычисленные при построении каталога поля для поиска
	AgeYears    int
	StationName string
	LineKeys    map[string]struct{}
}

// Clone возвращает копию без общих с оригиналом слайсов и карт.
func (l Listing) Clone() Listing {
	c := l
	c.Features = slices.Clone(l.Features)
	c.SimilarIDs = slices.Clone(l.SimilarIDs)
	c.Floorplan.Rooms = slices.Clone(l.Floorplan.Rooms)
	c.Nearby = Nearby{
		Shopping:  slices.Clone(l.Nearby.Shopping),
		Medical:   slices.Clone(l.Nearby.Medical),
		Education: slices.Clone(l.Nearby.Education),
		Finance:   slices.Clone(l.Nearby.Finance),
	}
	c.LineKeys = maps.Clone(l.LineKeys)
	return c
}

// HasLine сообщает, входит ли линия в множество линий ближайшей станции.
func (l *Listing) HasLine(lineKey string) bool {
	_, ok := l.LineKeys[lineKey]
	return ok
}

type Room struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Size string `json:"size,omitempty"`
}

type Floorplan struct {
	Label string `json:"label"`
	Rooms []Room `json:"rooms"`
}

type CostItem struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
	Note   string `json:"note,omitempty"`
}

// InitialCosts - восемь статей начальных расходов и их сумма.
type InitialCosts struct {
	Deposit      CostItem `json:"deposit"`
	KeyMoney     CostItem `json:"keyMoney"`
	Rent         CostItem `json:"rent"`
	Management   CostItem `json:"management"`
	Brokerage    CostItem `json:"brokerage"`
	Insurance    CostItem `json:"insurance"`
	GuarantorFee CostItem `json:"guarantorFee"`
	KeyExchange  CostItem `json:"keyExchange"`
	Total        int64    `json:"total"`
}

// Items возвращает статьи в фиксированном порядке.
func (c *InitialCosts) Items() []CostItem {
	return []CostItem{
		c.Deposit, c.KeyMoney, c.Rent, c.Management,
		c.Brokerage, c.Insurance, c.GuarantorFee, c.KeyExchange,
	}
}

// Sum пересчитывает Total как сумму всех статей.
func (c *InitialCosts) Sum() {
	var total int64
	for _, item := range c.Items() {
		total += item.Amount
	}
	c.Total = total
}

type Facility struct {
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

type Nearby struct {
	Shopping  []Facility `json:"shopping"`
	Medical   []Facility `json:"medical"`
	Education []Facility `json:"education"`
	Finance   []Facility `json:"finance"`
}

type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Hours   string `json:"hours"`
	Holiday string `json:"holiday"`
}
