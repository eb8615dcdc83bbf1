// Package weather looks up daily forecasts from Open-Meteo.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/wanderlist/internal/domain/trip"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
	DefaultTimeout      = 10 * time.Second
)

// Client queries the Open-Meteo geocoding and forecast APIs.
type Client struct {
	httpClient   *http.Client
	geocodingURL string
	forecastURL  string
	language     string
	logger       *slog.Logger

	mu     sync.Mutex
	coords map[string]trip.LatLng // found locations only
}

// Config configures a Client. Zero values use the public endpoints.
type Config struct {
	GeocodingURL string
	ForecastURL  string
	Language     string
	Timeout      time.Duration
}

// NewClient creates an Open-Meteo client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.GeocodingURL == "" {
		cfg.GeocodingURL = DefaultGeocodingURL
	}
	if cfg.ForecastURL == "" {
		cfg.ForecastURL = DefaultForecastURL
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		geocodingURL: cfg.GeocodingURL,
		forecastURL:  cfg.ForecastURL,
		language:     cfg.Language,
		logger:       logger,
		coords:       make(map[string]trip.LatLng),
	}
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Daily struct {
		Time                        []string   `json:"time"`
		WeatherCode                 []*int     `json:"weather_code"`
		Temperature2mMax            []*float64 `json:"temperature_2m_max"`
		PrecipitationProbabilityMax []*int     `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// Lookup returns the forecast for location on date. A nil result with a nil
// error means the place is unknown or the date has no forecast.
func (c *Client) Lookup(ctx context.Context, location string, date trip.Date) (*trip.Weather, error) {
	location = strings.TrimSpace(location)
	if location == "" || date.IsZero() {
		return nil, nil
	}

	lat, lng, found, err := c.geocode(ctx, location)
	if err != nil || !found {
		return nil, err
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", lat))
	q.Set("longitude", fmt.Sprintf("%f", lng))
	q.Set("daily", "weather_code,temperature_2m_max,precipitation_probability_max")
	q.Set("timezone", "auto")
	q.Set("start_date", date.String())
	q.Set("end_date", date.String())

	var forecast forecastResponse
	ok, err := c.getJSON(ctx, c.forecastURL+"?"+q.Encode(), &forecast)
	if err != nil || !ok {
		return nil, err
	}

	daily := forecast.Daily
	if len(daily.Time) == 0 || len(daily.WeatherCode) == 0 || len(daily.Temperature2mMax) == 0 ||
		daily.WeatherCode[0] == nil || daily.Temperature2mMax[0] == nil {
		c.logger.Debug("no forecast for date", "location", location, "date", date.String())
		return nil, nil
	}

	condition, icon := Classify(*daily.WeatherCode[0])
	w := &trip.Weather{
		Temperature: int(math.Round(*daily.Temperature2mMax[0])),
		Condition:   condition,
		Icon:        icon,
	}
	if len(daily.PrecipitationProbabilityMax) > 0 && daily.PrecipitationProbabilityMax[0] != nil {
		w.PrecipitationChance = *daily.PrecipitationProbabilityMax[0]
	}
	return w, nil
}

// geocode resolves a location once per client. Unknown places are asked again
// on the next call.
func (c *Client) geocode(ctx context.Context, location string) (float64, float64, bool, error) {
	key := strings.ToLower(location)
	c.mu.Lock()
	p, cached := c.coords[key]
	c.mu.Unlock()
	if cached {
		return p.Lat, p.Lng, true, nil
	}

	q := url.Values{}
	q.Set("name", location)
	q.Set("count", "1")
	q.Set("language", c.language)
	q.Set("format", "json")

	var geo geocodingResponse
	ok, err := c.getJSON(ctx, c.geocodingURL+"?"+q.Encode(), &geo)
	if err != nil || !ok {
		return 0, 0, false, err
	}
	if len(geo.Results) == 0 {
		c.logger.Debug("location not found", "location", location)
		return 0, 0, false, nil
	}
	p = trip.LatLng{Lat: geo.Results[0].Latitude, Lng: geo.Results[0].Longitude}
	c.mu.Lock()
	c.coords[key] = p
	c.mu.Unlock()
	return p.Lat, p.Lng, true, nil
}

// getJSON decodes a 200 response into out. Open-Meteo answers 400 for dates
// outside its range; that reports ok=false without an error.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, fmt.Errorf("building request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("open-meteo request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return false, nil
	case resp.StatusCode != http.StatusOK:
		return false, fmt.Errorf("open-meteo returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decoding open-meteo response: %w", err)
	}
	return true, nil
}
