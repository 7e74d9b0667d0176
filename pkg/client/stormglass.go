package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/giuliopb/surf-bot-whatsapp/internal/models"
	"go.uber.org/zap"
)

// StormglassClient is the primary marine provider. It issues a point
// forecast request for the fixed parameter set over a UTC window and
// returns the raw multi-source hourly records.
type StormglassClient struct {
	*BaseClient
	apiKey  string
	baseURL string
}

func NewStormglassClient(baseURL, apiKey string, cfg ClientConfig, logger *zap.Logger) *StormglassClient {
	return &StormglassClient{
		BaseClient: NewBaseClient("stormglass", cfg, logger),
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

type stormglassHour struct {
	Time          string              `json:"time"`
	WaveHeight    map[string]*float64 `json:"waveHeight"`
	WavePeriod    map[string]*float64 `json:"wavePeriod"`
	WindSpeed     map[string]*float64 `json:"windSpeed"`
	WindDirection map[string]*float64 `json:"windDirection"`
}

type stormglassResponse struct {
	Hours []stormglassHour `json:"hours"`
}

func (c *StormglassClient) Fetch(ctx context.Context, spot models.Spot, start, end time.Time) ([]models.HourlyRecord, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.4f", spot.Lat))
	q.Set("lng", fmt.Sprintf("%.4f", spot.Lon))
	q.Set("params", strings.Join(models.Params, ","))
	q.Set("start", start.UTC().Format(time.RFC3339))
	q.Set("end", end.UTC().Format(time.RFC3339))

	u := fmt.Sprintf("%s/v2/weather/point?%s", c.baseURL, q.Encode())

	body, err := c.Get(ctx, u, map[string]string{"Authorization": c.apiKey})
	if err != nil {
		return nil, err
	}

	var payload stormglassResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parsing stormglass response: %w", err)
	}
	if len(payload.Hours) == 0 {
		return nil, ErrEmptyForecast
	}

	records := make([]models.HourlyRecord, 0, len(payload.Hours))
	for _, h := range payload.Hours {
		ts, err := time.Parse(time.RFC3339, h.Time)
		if err != nil {
			continue
		}
		records = append(records, models.HourlyRecord{
			Time: ts.UTC(),
			Fields: map[string]map[string]float64{
				models.ParamWaveHeight:    sourceValues(h.WaveHeight),
				models.ParamWavePeriod:    sourceValues(h.WavePeriod),
				models.ParamWindSpeed:     sourceValues(h.WindSpeed),
				models.ParamWindDirection: sourceValues(h.WindDirection),
			},
		})
	}
	if len(records) == 0 {
		return nil, ErrEmptyForecast
	}

	return records, nil
}

// sourceValues drops null readings so that a source reporting null is
// treated as absent during field resolution.
func sourceValues(m map[string]*float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for src, v := range m {
		if v != nil {
			out[src] = *v
		}
	}
	return out
}
