package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/giuliopb/surf-bot-whatsapp/internal/models"
	"go.uber.org/zap"
)

// OpenMeteoClient is the fallback provider: a free, unauthenticated
// marine forecast coarser than the primary. It returns a single
// 24-hour aggregate with no wave period and no wind direction.
type OpenMeteoClient struct {
	*BaseClient
	baseURL string
}

func NewOpenMeteoClient(baseURL string, cfg ClientConfig, logger *zap.Logger) *OpenMeteoClient {
	return &OpenMeteoClient{
		BaseClient: NewBaseClient("openmeteo", cfg, logger),
		baseURL:    baseURL,
	}
}

type openMeteoResponse struct {
	Hourly struct {
		WaveHeight []float64 `json:"wave_height"`
		WindSpeed  []float64 `json:"wind_speed_10m"`
	} `json:"hourly"`
}

func (c *OpenMeteoClient) Fetch(ctx context.Context, spot models.Spot) (models.FallbackSummary, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", spot.Lat))
	q.Set("longitude", fmt.Sprintf("%.4f", spot.Lon))
	q.Set("hourly", "wave_height,wind_speed_10m")
	q.Set("forecast_days", "1")
	q.Set("timezone", "UTC")

	u := fmt.Sprintf("%s/v1/marine?%s", c.baseURL, q.Encode())

	body, err := c.Get(ctx, u, nil)
	if err != nil {
		return models.FallbackSummary{}, err
	}

	var payload openMeteoResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.FallbackSummary{}, fmt.Errorf("parsing open-meteo response: %w", err)
	}
	if len(payload.Hourly.WaveHeight) == 0 || len(payload.Hourly.WindSpeed) == 0 {
		return models.FallbackSummary{}, ErrEmptyForecast
	}

	return models.FallbackSummary{
		AvgWaveHeight: mean(payload.Hourly.WaveHeight),
		AvgWindSpeed:  mean(payload.Hourly.WindSpeed),
	}, nil
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
