package domain

// Seed - компактная запись объявления. Указатели отличают
// отсутствующее поле от нулевого значения.
type Seed struct {
	Name           *string  `json:"name"`
	AreaKey        *string  `json:"areaKey"`
	Prefecture     *string  `json:"prefecture"`
	City           *string  `json:"city"`
	Address        *string  `json:"address"`
	Station        *string  `json:"station"`
	TotalFloors    *int     `json:"totalFloors"`
	Floor          *int     `json:"floor"`
	Direction      *string  `json:"direction"`
	Price          *float64 `json:"price"`
	ManagementFee  *int     `json:"managementFee"`
	DepositMonths  *float64 `json:"depositMonths"`
	KeyMoneyMonths *float64 `json:"keyMoneyMonths"`
	Type           *string  `json:"type"`
	Layout         *string  `json:"layout"`
	Area           *float64 `json:"area"`
	BuildDate      *string  `json:"buildDate"`
	Features       []string `json:"features"`

	// Необязательные поля, при отсутствии вычисляются или берутся по умолчанию
	Badge       string `json:"badge,omitempty"`
	Parking     string `json:"parking,omitempty"`
	Gradient    string `json:"gradient,omitempty"`
	Structure   string `json:"structure,omitempty"`
	Age         string `json:"age,omitempty"`
	MoveIn      string `json:"moveIn,omitempty"`
	Contract    string `json:"contract,omitempty"`
	Guarantor   string `json:"guarantor,omitempty"`
	Transaction string `json:"transaction,omitempty"`
	SimilarIDs  []int  `json:"similarIds,omitempty"`
}

// MissingFields возвращает имена обязательных полей, которых нет в сиде.
func (s *Seed) MissingFields() []string {
	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("name", s.Name != nil)
	check("areaKey", s.AreaKey != nil)
	check("prefecture", s.Prefecture != nil)
	check("city", s.City != nil)
	check("address", s.Address != nil)
	check("station", s.Station != nil)
	check("totalFloors", s.TotalFloors != nil)
	check("floor", s.Floor != nil)
	check("direction", s.Direction != nil)
	check("price", s.Price != nil)
	check("managementFee", s.ManagementFee != nil)
	check("depositMonths", s.DepositMonths != nil)
	check("keyMoneyMonths", s.KeyMoneyMonths != nil)
	check("type", s.Type != nil)
	check("layout", s.Layout != nil)
	check("area", s.Area != nil)
	check("buildDate", s.BuildDate != nil)
	check("features", s.Features != nil)
	return missing
}
