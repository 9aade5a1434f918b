package mapbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/routepulse/service-routes/internal/domain/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(geocodeURL, directionsURL string) *Client {
	return NewClient(ClientConfig{
		AccessToken:       "test-token",
		CountryCode:       "IN",
		Timeout:           2 * time.Second,
		GeocodingBaseURL:  geocodeURL,
		DirectionsBaseURL: directionsURL,
	})
}

func TestForwardGeocode(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		// GeoJSON order: [lon, lat]
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[77.209,28.6139]}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	coord, found, err := c.ForwardGeocode(context.Background(), "New Delhi")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, route.Coordinate{Lat: 28.6139, Lon: 77.209}, coord)
	assert.Equal(t, "/New%20Delhi.json", gotPath)
	assert.Equal(t, []string{"test-token"}, gotQuery["access_token"])
	assert.Equal(t, []string{"1"}, gotQuery["limit"])
	assert.Equal(t, []string{"IN"}, gotQuery["country"])
}

func TestForwardGeocodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	_, found, err := c.ForwardGeocode(context.Background(), "Zzzzqxnotaplace123")
	require.NoError(t, err, "an empty result set is a miss, not an error")
	assert.False(t, found)
}

func TestForwardGeocodeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Authorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	_, found, err := c.ForwardGeocode(context.Background(), "Delhi")
	require.Error(t, err, "a non-2xx status must not look like a miss")
	assert.False(t, found)
	assert.Contains(t, err.Error(), "status 401")
}

func TestForwardGeocodeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(srv.URL, "")
	_, found, err := c.ForwardGeocode(context.Background(), "Delhi")
	require.Error(t, err)
	assert.False(t, found)
}

func TestDirections(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"distance": 233000.5,
				"duration": 10450.2,
				"geometry": {"coordinates": [[77.209,28.6139],[78.0081,27.1767]]},
				"legs": [{"annotation": {
					"congestion": ["low"],
					"speed": [16.67, null],
					"duration": [120.5]
				}}]
			}]
		}`))
	}))
	defer srv.Close()

	c := newTestClient("", srv.URL)
	from := route.Coordinate{Lat: 28.6139, Lon: 77.209}
	to := route.Coordinate{Lat: 27.1767, Lon: 78.0081}

	resp, err := c.Directions(context.Background(), from, to, ProfileDrivingTraffic, DirectionsOptions{
		Alternatives: true,
		Annotations:  "congestion,speed,duration",
	})
	require.NoError(t, err)

	// Coordinates go on the path as lon,lat;lon,lat under the profile.
	assert.Contains(t, gotPath, "/driving-traffic/")
	assert.Contains(t, gotPath, "77.209000,28.613900;78.008100,27.176700")
	assert.Equal(t, []string{"geojson"}, gotQuery["geometries"])
	assert.Equal(t, []string{"full"}, gotQuery["overview"])
	assert.Equal(t, []string{"true"}, gotQuery["alternatives"])
	assert.Equal(t, []string{"congestion,speed,duration"}, gotQuery["annotations"])

	require.Len(t, resp.Routes, 1)
	r := resp.Routes[0]
	assert.Equal(t, 233000.5, r.Distance)
	assert.Equal(t, 10450.2, r.Duration)
	require.Len(t, r.Geometry.Coordinates, 2)

	require.Len(t, r.Legs, 1)
	ann := r.Legs[0].Annotation
	assert.Equal(t, []string{"low"}, ann.Congestion)
	require.Len(t, ann.Speed, 2)
	require.NotNil(t, ann.Speed[0])
	assert.Equal(t, 16.67, *ann.Speed[0])
	assert.Nil(t, ann.Speed[1], "null speed entries decode as absent")
}

func TestDirectionsOmitsEmptyAnnotations(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[]}`))
	}))
	defer srv.Close()

	c := newTestClient("", srv.URL)
	resp, err := c.Directions(context.Background(), route.Coordinate{}, route.Coordinate{}, ProfileDriving, DirectionsOptions{})
	require.NoError(t, err)

	assert.Empty(t, resp.Routes)
	_, present := gotQuery["annotations"]
	assert.False(t, present)
	assert.Equal(t, []string{"false"}, gotQuery["alternatives"])
}

func TestDirectionsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient("", srv.URL)
	_, err := c.Directions(context.Background(), route.Coordinate{}, route.Coordinate{}, ProfileDriving, DirectionsOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
