package domain

type Line struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Railway struct {
	Company string `json:"company"`
	Lines   []Line `json:"lines"`
}

type Prefecture struct {
	Key      string    `json:"key"`
	Name     string    `json:"name"`
	Region   string    `json:"region"`
	Railways []Railway `json:"railways"`
}

type Stop struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type LineStops struct {
	Line  string `json:"line"`
	Stops []Stop `json:"stops"`
}

// StationData - справочник префектур, линий и станций.
type StationData struct {
	Prefectures []Prefecture `json:"prefectures"`
	Lines       []LineStops  `json:"lines"`
}

// LineDetails - линия вместе со списком станций.
// Пустой Stops означает, что поиск идет по всем станциям линии.
type LineDetails struct {
	Key           string
	Name          string
	PrefectureKey string
	Stops         []Stop
}
