package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/routepulse/service-routes/internal/domain/route"
)

const (
	defaultGeocodingBaseURL  = "https://api.mapbox.com/geocoding/v5/mapbox.places"
	defaultDirectionsBaseURL = "https://api.mapbox.com/directions/v5/mapbox"
)

// ClientConfig holds the settings for a Mapbox API client.
type ClientConfig struct {
	AccessToken string
	// CountryCode restricts geocoding matches to one ISO 3166-1 country.
	CountryCode string
	Timeout     time.Duration
	// GeocodingBaseURL and DirectionsBaseURL override the production
	// endpoints, mainly for tests.
	GeocodingBaseURL  string
	DirectionsBaseURL string
}

// Client calls the Mapbox Geocoding and Directions APIs.
type Client struct {
	token          string
	country        string
	geocodingBase  string
	directionsBase string
	httpClient     *http.Client
}

// NewClient creates a Mapbox client with a bounded request timeout.
func NewClient(cfg ClientConfig) *Client {
	geocodingBase := cfg.GeocodingBaseURL
	if geocodingBase == "" {
		geocodingBase = defaultGeocodingBaseURL
	}
	directionsBase := cfg.DirectionsBaseURL
	if directionsBase == "" {
		directionsBase = defaultDirectionsBaseURL
	}

	return &Client{
		token:          cfg.AccessToken,
		country:        cfg.CountryCode,
		geocodingBase:  geocodingBase,
		directionsBase: directionsBase,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
	}
}

// ForwardGeocode resolves a free-text place name to a coordinate, restricted
// to the configured country. It returns found=false when the provider has no
// match; transport failures and non-2xx statuses are errors, never a miss.
func (c *Client) ForwardGeocode(ctx context.Context, place string) (route.Coordinate, bool, error) {
	params := url.Values{}
	params.Set("access_token", c.token)
	params.Set("limit", "1")
	params.Set("country", c.country)

	endpoint := fmt.Sprintf("%s/%s.json?%s", c.geocodingBase, url.PathEscape(place), params.Encode())

	var decoded geocodeResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return route.Coordinate{}, false, fmt.Errorf("geocode %q: %w", place, err)
	}

	if len(decoded.Features) == 0 {
		return route.Coordinate{}, false, nil
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return route.Coordinate{}, false, fmt.Errorf("geocode %q: malformed feature geometry", place)
	}

	// GeoJSON is [lon, lat].
	return route.Coordinate{Lat: coords[1], Lon: coords[0]}, true, nil
}

// DirectionsOptions tunes one directions query.
type DirectionsOptions struct {
	Alternatives bool
	// Annotations is the comma-separated per-edge annotation list to
	// request, e.g. "congestion,speed,duration". Empty means none.
	Annotations string
}

// Directions fetches candidate routes between two coordinates for the given
// profile. Geometry comes back as full-overview GeoJSON.
func (c *Client) Directions(ctx context.Context, from, to route.Coordinate, profile Profile, opts DirectionsOptions) (*DirectionsResponse, error) {
	params := url.Values{}
	params.Set("access_token", c.token)
	params.Set("geometries", "geojson")
	params.Set("overview", "full")
	params.Set("alternatives", fmt.Sprintf("%t", opts.Alternatives))
	if opts.Annotations != "" {
		params.Set("annotations", opts.Annotations)
	}

	endpoint := fmt.Sprintf("%s/%s/%f,%f;%f,%f?%s",
		c.directionsBase, profile, from.Lon, from.Lat, to.Lon, to.Lat, params.Encode())

	var decoded DirectionsResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, fmt.Errorf("directions %s: %w", profile, err)
	}

	return &decoded, nil
}

// getJSON performs a GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
