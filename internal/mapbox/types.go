package mapbox

// Profile selects the routing mode for a directions request.
type Profile string

const (
	// ProfileDriving is the baseline car profile without live traffic.
	ProfileDriving Profile = "driving"
	// ProfileDrivingTraffic is the traffic-aware car profile. Only this
	// profile returns congestion and speed annotations.
	ProfileDrivingTraffic Profile = "driving-traffic"
)

// geocodeResponse is the subset of the Geocoding v5 payload we read.
type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			// GeoJSON order: [lon, lat].
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Annotation holds the per-edge arrays of a leg. Index i describes the edge
// between geometry vertex i and i+1. The arrays may be shorter than the edge
// count; missing entries mean "not annotated". Speed and Duration entries can
// be null in the provider payload, hence the pointers.
type Annotation struct {
	Congestion []string   `json:"congestion"`
	Speed      []*float64 `json:"speed"`
	Duration   []*float64 `json:"duration"`
}

// Leg is a route subdivision between waypoints. With only two endpoints
// requested there is always exactly one leg.
type Leg struct {
	Annotation Annotation `json:"annotation"`
}

// Geometry is the route shape as a GeoJSON LineString.
type Geometry struct {
	// GeoJSON order: each vertex is [lon, lat].
	Coordinates [][]float64 `json:"coordinates"`
}

// Route is one candidate route from the Directions v5 API.
type Route struct {
	Distance float64  `json:"distance"` // meters
	Duration float64  `json:"duration"` // seconds
	Geometry Geometry `json:"geometry"`
	Legs     []Leg    `json:"legs"`
}

// DirectionsResponse is the raw route collection for one directions query.
type DirectionsResponse struct {
	Code   string  `json:"code"`
	Routes []Route `json:"routes"`
}
