package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tgavazzi/hydromate/internal/config"
)

// Client fetches the current temperature for a coordinate from the
// OpenWeatherMap current-weather endpoint. The API reports Kelvin.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Weather.BaseURL,
		apiKey:  cfg.Weather.APIKey,
		http:    &http.Client{Timeout: cfg.Weather.FetchTimeout},
	}
}

type response struct {
	Main struct {
		Temp float64 `json:"temp"` // Kelvin
	} `json:"main"`
}

// TemperatureC returns the current temperature in Celsius.
func (c *Client) TemperatureC(ctx context.Context, lat, lon float64) (float64, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	if c.apiKey != "" {
		q.Set("appid", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("weather lookup failed: %s", resp.Status)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	return body.Main.Temp - 273.15, nil
}

// HotWeather reports whether the temperature warrants a drink reminder.
func HotWeather(tempC, maxC float64) bool {
	return tempC > maxC
}
