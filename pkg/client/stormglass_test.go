package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/giuliopb/surf-bot-whatsapp/internal/models"
)

var testSpot = models.Spot{Key: "floripa", Name: "Florianópolis", Lat: -27.5954, Lon: -48.5480}

func testClientConfig() ClientConfig {
	return ClientConfig{Timeout: 2 * time.Second, BreakerTimeout: time.Second}
}

func testWindow() (time.Time, time.Time) {
	start := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func TestStormglassFetch(t *testing.T) {
	var gotAuth string
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/weather/point" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"hours": [
				{
					"time": "2026-08-27T12:00:00+00:00",
					"waveHeight": {"noaa": null, "sg": 1.3},
					"wavePeriod": {"noaa": 8.2},
					"windSpeed": {"noaa": 4.1},
					"windDirection": {"noaa": 190.0}
				},
				{
					"time": "2026-08-27T13:00:00+00:00",
					"waveHeight": {"noaa": 1.5},
					"wavePeriod": {"noaa": 8.4},
					"windSpeed": {"noaa": 4.3},
					"windDirection": {"noaa": 200.0}
				}
			]
		}`))
	}))
	defer srv.Close()

	c := NewStormglassClient(srv.URL, "test-key", testClientConfig(), zap.NewNop())

	start, end := testWindow()
	records, err := c.Fetch(context.Background(), testSpot, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "test-key" {
		t.Errorf("Authorization header %q, want test-key", gotAuth)
	}
	if got := gotQuery["lat"]; len(got) != 1 || got[0] != "-27.5954" {
		t.Errorf("lat query %v", got)
	}
	if got := gotQuery["params"]; len(got) != 1 || got[0] != "waveHeight,wavePeriod,windSpeed,windDirection" {
		t.Errorf("params query %v", got)
	}
	if got := gotQuery["start"]; len(got) != 1 || got[0] != "2026-08-27T12:00:00Z" {
		t.Errorf("start query %v", got)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	// Null readings are treated as absent, not zero.
	first := records[0].Fields[models.ParamWaveHeight]
	if _, ok := first["noaa"]; ok {
		t.Error("null noaa reading should be dropped")
	}
	if first["sg"] != 1.3 {
		t.Errorf("sg wave height %v, want 1.3", first["sg"])
	}
	if !records[0].Time.Equal(time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("record time %v", records[0].Time)
	}
}

func TestStormglassQuotaStatuses(t *testing.T) {
	for _, status := range []int{http.StatusPaymentRequired, http.StatusTooManyRequests} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := NewStormglassClient(srv.URL, "test-key", testClientConfig(), zap.NewNop())
		start, end := testWindow()
		_, err := c.Fetch(context.Background(), testSpot, start, end)

		if !errors.Is(err, ErrQuotaExceeded) {
			t.Errorf("status %d: expected ErrQuotaExceeded, got %v", status, err)
		}
		srv.Close()
	}
}

func TestStormglassGenericStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewStormglassClient(srv.URL, "test-key", testClientConfig(), zap.NewNop())
	start, end := testWindow()
	_, err := c.Fetch(context.Background(), testSpot, start, end)

	if !errors.Is(err, ErrUpstreamStatus) {
		t.Errorf("expected ErrUpstreamStatus, got %v", err)
	}
	if errors.Is(err, ErrQuotaExceeded) {
		t.Error("500 must not be classified as quota exhaustion")
	}
}

func TestStormglassEmptyHours(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hours": []}`))
	}))
	defer srv.Close()

	c := NewStormglassClient(srv.URL, "test-key", testClientConfig(), zap.NewNop())
	start, end := testWindow()
	_, err := c.Fetch(context.Background(), testSpot, start, end)

	if !errors.Is(err, ErrEmptyForecast) {
		t.Errorf("expected ErrEmptyForecast, got %v", err)
	}
}

func TestStormglassNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewStormglassClient(srv.URL, "test-key", testClientConfig(), zap.NewNop())
	start, end := testWindow()
	_, err := c.Fetch(context.Background(), testSpot, start, end)

	if err == nil {
		t.Fatal("expected error for unreachable upstream")
	}
	if errors.Is(err, ErrUpstreamStatus) || errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("transport failure misclassified: %v", err)
	}
}
