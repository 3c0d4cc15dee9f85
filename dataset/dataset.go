package dataset

import "embed"

// FS содержит справочник станций и сиды объявлений.
//
//go:embed stations.json station_stops.json seeds.json
var FS embed.FS

const (
	StationsFile     = "stations.json"
	StationStopsFile = "station_stops.json"
	SeedsFile        = "seeds.json"
)
