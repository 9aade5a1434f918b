package application

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/routepulse/service-routes/internal/domain/route"
	"github.com/routepulse/service-routes/internal/mapbox"
	"go.uber.org/zap"
)

// Sentinel errors for the route query pipeline. Handlers map these onto HTTP
// statuses; anything else is treated as an upstream failure.
var (
	// ErrPlaceNotResolved means geocoding returned no match for at least
	// one of the two places.
	ErrPlaceNotResolved = errors.New("could not geocode one or both places")
	// ErrNoBaseRoutes means the baseline directions query returned an
	// empty route set.
	ErrNoBaseRoutes = errors.New("no base routes found")
	// ErrNoLiveRoutes means the traffic-aware directions query returned an
	// empty route set.
	ErrNoLiveRoutes = errors.New("no live traffic routes found")
)

// liveAnnotations is the per-edge annotation set requested on the
// traffic-aware query. Only that profile returns congestion and speed.
const liveAnnotations = "congestion,congestion_numeric,speed,duration,distance"

// Geocoder resolves free-text place names to coordinates.
type Geocoder interface {
	ForwardGeocode(ctx context.Context, place string) (route.Coordinate, bool, error)
}

// DirectionsProvider fetches candidate routes between two coordinates.
type DirectionsProvider interface {
	Directions(ctx context.Context, from, to route.Coordinate, profile mapbox.Profile, opts mapbox.DirectionsOptions) (*mapbox.DirectionsResponse, error)
}

// RouteService is the application service orchestrating a route query:
// geocode both endpoints, fetch baseline and live-traffic routes, and
// assemble the per-segment payload. It holds no state between requests.
type RouteService struct {
	geocoder   Geocoder
	directions DirectionsProvider
	logger     *zap.Logger
}

// NewRouteService creates a new RouteService.
func NewRouteService(geocoder Geocoder, directions DirectionsProvider, logger *zap.Logger) *RouteService {
	return &RouteService{
		geocoder:   geocoder,
		directions: directions,
		logger:     logger,
	}
}

// PlanRoutes runs the full pipeline for one query. Both place names must be
// non-empty; the handler validates that before calling. There are no retries
// and no partial results: the first failure fails the whole request.
func (s *RouteService) PlanRoutes(ctx context.Context, start, end string) (*route.Plan, error) {
	startCoord, startFound, err := s.geocoder.ForwardGeocode(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("geocode start: %w", err)
	}
	endCoord, endFound, err := s.geocoder.ForwardGeocode(ctx, end)
	if err != nil {
		return nil, fmt.Errorf("geocode end: %w", err)
	}
	if !startFound || !endFound {
		return nil, ErrPlaceNotResolved
	}

	s.logger.Debug("geocoded endpoints",
		zap.String("start", start),
		zap.Float64("start_lat", startCoord.Lat),
		zap.Float64("start_lon", startCoord.Lon),
		zap.String("end", end),
		zap.Float64("end_lat", endCoord.Lat),
		zap.Float64("end_lon", endCoord.Lon),
	)

	base, err := s.directions.Directions(ctx, startCoord, endCoord, mapbox.ProfileDriving, mapbox.DirectionsOptions{
		Alternatives: true,
	})
	if err != nil {
		return nil, fmt.Errorf("base directions: %w", err)
	}
	if len(base.Routes) == 0 {
		return nil, ErrNoBaseRoutes
	}

	live, err := s.directions.Directions(ctx, startCoord, endCoord, mapbox.ProfileDrivingTraffic, mapbox.DirectionsOptions{
		Alternatives: true,
		Annotations:  liveAnnotations,
	})
	if err != nil {
		return nil, fmt.Errorf("live directions: %w", err)
	}
	if len(live.Routes) == 0 {
		return nil, ErrNoLiveRoutes
	}

	routes := make([]route.Route, len(live.Routes))
	for i, liveRoute := range live.Routes {
		// Live alternatives are paired with baseline alternatives by
		// position. When the baseline set is shorter the live route's
		// own duration stands in, which makes the delay zero.
		baseDuration := liveRoute.Duration
		if i < len(base.Routes) {
			baseDuration = base.Routes[i].Duration
		}
		routes[i] = assembleRoute(i, liveRoute, baseDuration)
	}

	return &route.Plan{
		Start:  route.Endpoint{Name: start, Lat: startCoord.Lat, Lon: startCoord.Lon},
		End:    route.Endpoint{Name: end, Lat: endCoord.Lat, Lon: endCoord.Lon},
		Routes: routes,
	}, nil
}

// assembleRoute zips one live route's geometry with its annotation arrays
// into per-segment records and computes the delay against the baseline.
func assembleRoute(id int, liveRoute mapbox.Route, baseDuration float64) route.Route {
	// Only the first leg matters: with two endpoints there is exactly one.
	var ann mapbox.Annotation
	if len(liveRoute.Legs) > 0 {
		ann = liveRoute.Legs[0].Annotation
	}

	coords := liveRoute.Geometry.Coordinates
	segments := make([]route.Segment, 0, max(len(coords)-1, 0))
	for i := 0; i+1 < len(coords); i++ {
		// A well-formed geometry only has [lon, lat] pairs; drop any
		// edge touching a short vertex instead of indexing past it.
		if len(coords[i]) < 2 || len(coords[i+1]) < 2 {
			continue
		}
		segments = append(segments, buildSegment(coords[i], coords[i+1], ann, i))
	}

	delay := int(math.Max(0, math.Round(liveRoute.Duration-baseDuration)))

	return route.Route{
		ID:        id,
		DistanceM: liveRoute.Distance,
		Durations: route.Durations{
			BaseS:    int(math.Round(baseDuration)),
			TrafficS: int(math.Round(liveRoute.Duration)),
			DelayS:   delay,
		},
		Segments: segments,
	}
}

// buildSegment describes the edge between geometry vertices i and i+1.
// Annotation arrays shorter than the edge count are not an error: entries
// past the end are simply absent.
func buildSegment(from, to []float64, ann mapbox.Annotation, i int) route.Segment {
	seg := route.Segment{
		// Geometry vertices are GeoJSON [lon, lat]; the frontend wants
		// [lat, lon].
		Coords: [2][2]float64{
			{from[1], from[0]},
			{to[1], to[0]},
		},
	}

	if i < len(ann.Congestion) {
		congestion := ann.Congestion[i]
		seg.Congestion = &congestion
		seg.Color = route.CongestionColor(congestion)
	} else {
		seg.Color = route.CongestionColor("")
	}

	if i < len(ann.Speed) && ann.Speed[i] != nil {
		kmh := math.Round(*ann.Speed[i]*3.6*10) / 10
		seg.SpeedKmh = &kmh
	}

	if i < len(ann.Duration) {
		seg.DurationS = ann.Duration[i]
	}

	return seg
}
