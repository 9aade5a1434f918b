package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServiceConfig holds all configuration for the routes service. It is built
// once at startup and passed into the components that need it.
type ServiceConfig struct {
	Port   string
	AppEnv string

	// MapboxToken is the provider access token. Required: there is no
	// fallback value, and startup fails without it.
	MapboxToken string
	// CountryCode restricts geocoding to one country.
	CountryCode string
	// UpstreamTimeout bounds every outbound provider call.
	UpstreamTimeout time.Duration
	// RefreshSeconds is the polling interval handed to the frontend.
	RefreshSeconds int

	// GeocodingBaseURL and DirectionsBaseURL override the provider
	// endpoints; empty means production Mapbox.
	GeocodingBaseURL  string
	DirectionsBaseURL string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables, with ROUTES_ as the
// prefix for service-level settings. A .env file is honored when present.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ROUTES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The token keeps the provider's conventional variable name.
	_ = v.BindEnv("mapbox_token", "MAPBOX_TOKEN")

	v.SetDefault("service_port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("country_code", "IN")
	v.SetDefault("upstream_timeout", "12s")
	v.SetDefault("refresh_seconds", 30)
	v.SetDefault("rate_limit_rps", 5.0)
	v.SetDefault("rate_limit_burst", 10)

	token := strings.TrimSpace(v.GetString("mapbox_token"))
	if token == "" {
		return nil, fmt.Errorf("MAPBOX_TOKEN is required")
	}

	port := v.GetString("service_port")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	timeout := v.GetDuration("upstream_timeout")
	if timeout <= 0 {
		return nil, fmt.Errorf("upstream timeout must be positive, got %q", v.GetString("upstream_timeout"))
	}

	refresh := v.GetInt("refresh_seconds")
	if refresh <= 0 {
		return nil, fmt.Errorf("refresh seconds must be positive, got %d", refresh)
	}

	return &ServiceConfig{
		Port:              port,
		AppEnv:            v.GetString("app_env"),
		MapboxToken:       token,
		CountryCode:       v.GetString("country_code"),
		UpstreamTimeout:   timeout,
		RefreshSeconds:    refresh,
		GeocodingBaseURL:  v.GetString("geocoding_base_url"),
		DirectionsBaseURL: v.GetString("directions_base_url"),
		RateLimitRPS:      v.GetFloat64("rate_limit_rps"),
		RateLimitBurst:    v.GetInt("rate_limit_burst"),
	}, nil
}
