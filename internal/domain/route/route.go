package route

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Endpoint is a resolved place: the name the caller asked for plus the
// coordinate the geocoder picked for it.
type Endpoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Segment is one edge of a route's geometry. Coords holds the two endpoints
// as [lat, lon] pairs. Congestion, SpeedKmh and DurationS are null when the
// provider did not annotate this edge.
type Segment struct {
	Coords     [2][2]float64 `json:"coords"`
	Congestion *string       `json:"congestion"`
	Color      string        `json:"color"`
	SpeedKmh   *float64      `json:"speed_kmh"`
	DurationS  *float64      `json:"duration_s"`
}

// Durations compares the baseline estimate against the live-traffic estimate.
// DelayS is clamped at zero.
type Durations struct {
	BaseS    int `json:"base_s"`
	TrafficS int `json:"traffic_s"`
	DelayS   int `json:"delay_s"`
}

// Route is one candidate path, ready for the frontend. ID is the route's
// position among the live-traffic alternatives.
type Route struct {
	ID        int       `json:"id"`
	DistanceM float64   `json:"distance_m"`
	Durations Durations `json:"durations"`
	Segments  []Segment `json:"segments"`
}

// Plan is the full response for one route query.
type Plan struct {
	Start  Endpoint `json:"start"`
	End    Endpoint `json:"end"`
	Routes []Route  `json:"routes"`
}
