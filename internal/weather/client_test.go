package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgavazzi/hydromate/internal/config"
	"github.com/tgavazzi/hydromate/internal/weather"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *weather.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.New()
	cfg.Weather.BaseURL = srv.URL
	cfg.Weather.APIKey = "test-key"
	cfg.Weather.FetchTimeout = time.Second
	return weather.NewClient(cfg)
}

func TestTemperatureC(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "41.9", r.URL.Query().Get("lat"))
		assert.Equal(t, "12.5", r.URL.Query().Get("lon"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Write([]byte(`{"main":{"temp":298.15}}`))
	})

	temp, err := client.TemperatureC(context.Background(), 41.9, 12.5)
	require.NoError(t, err)
	assert.InDelta(t, 25, temp, 0.01) // Kelvin → Celsius
}

func TestTemperatureCUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.TemperatureC(context.Background(), 41.9, 12.5)
	assert.Error(t, err)
}

func TestTemperatureCBadBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.TemperatureC(context.Background(), 41.9, 12.5)
	assert.Error(t, err)
}

func TestHotWeather(t *testing.T) {
	assert.True(t, weather.HotWeather(26, 25))
	assert.False(t, weather.HotWeather(25, 25)) // threshold is exclusive
	assert.False(t, weather.HotWeather(17, 25))
}
