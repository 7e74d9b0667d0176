package forecast

import (
	"time"

	"github.com/giuliopb/surf-bot-whatsapp/internal/models"
)

const dayLayout = "2006-01-02"

// DefaultSourcePriority is the fixed order in which originating
// sources are consulted when resolving a parameter for an hour.
var DefaultSourcePriority = []string{"noaa", "sg", "meteo", "dwd", "icon"}

// ResolveField returns the first value present for param in source
// priority order. The second return is false when no listed source
// reported the parameter for this hour.
func ResolveField(rec models.HourlyRecord, param string, priority []string) (float64, bool) {
	sources := rec.Fields[param]
	if len(sources) == 0 {
		return 0, false
	}
	for _, src := range priority {
		if v, ok := sources[src]; ok {
			return v, true
		}
	}
	return 0, false
}

// GroupByDay resolves every hour against the source priority and
// buckets the results by UTC calendar date. An hour missing any of
// the four parameters is dropped entirely, never partially kept.
func GroupByDay(records []models.HourlyRecord, priority []string) map[string][]models.HourlyMeasure {
	byDay := make(map[string][]models.HourlyMeasure)

	for _, rec := range records {
		waveHeight, ok := ResolveField(rec, models.ParamWaveHeight, priority)
		if !ok {
			continue
		}
		wavePeriod, ok := ResolveField(rec, models.ParamWavePeriod, priority)
		if !ok {
			continue
		}
		windSpeed, ok := ResolveField(rec, models.ParamWindSpeed, priority)
		if !ok {
			continue
		}
		windDeg, ok := ResolveField(rec, models.ParamWindDirection, priority)
		if !ok {
			continue
		}

		day := rec.Time.UTC().Format(dayLayout)
		byDay[day] = append(byDay[day], models.HourlyMeasure{
			Day:        day,
			WaveHeight: waveHeight,
			WavePeriod: wavePeriod,
			WindSpeed:  windSpeed,
			WindDeg:    windDeg,
		})
	}

	return byDay
}

// Average reduces the measures of one calendar day to a DailySummary.
// Wind bearings are averaged numerically and the mean is mapped to a
// compass label once. measures must not be empty; callers guard with
// the fallback path instead.
func Average(day string, measures []models.HourlyMeasure) models.DailySummary {
	var sumHeight, sumPeriod, sumSpeed, sumDeg float64
	for _, m := range measures {
		sumHeight += m.WaveHeight
		sumPeriod += m.WavePeriod
		sumSpeed += m.WindSpeed
		sumDeg += m.WindDeg
	}

	n := float64(len(measures))
	date, _ := time.Parse(dayLayout, day)

	return models.DailySummary{
		Date:          date,
		AvgWaveHeight: sumHeight / n,
		AvgWavePeriod: sumPeriod / n,
		AvgWindSpeed:  sumSpeed / n,
		WindLabel:     CompassLabel(sumDeg / n),
		Hours:         len(measures),
	}
}
