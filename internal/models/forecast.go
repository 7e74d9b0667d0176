package models

import (
	"time"
)

// Spot is one of the fixed supported surf spots.
type Spot struct {
	Key  string  `json:"key"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Parameter names as the marine provider reports them.
const (
	ParamWaveHeight    = "waveHeight"
	ParamWavePeriod    = "wavePeriod"
	ParamWindSpeed     = "windSpeed"
	ParamWindDirection = "windDirection"
)

// Params is the fixed parameter set requested from the primary provider.
var Params = []string{ParamWaveHeight, ParamWavePeriod, ParamWindSpeed, ParamWindDirection}

// HourlyRecord is one raw forecast hour. Each parameter carries the
// values reported by every originating source for that hour.
type HourlyRecord struct {
	Time   time.Time
	Fields map[string]map[string]float64 // param -> source -> value
}

// HourlyMeasure is a fully resolved hour: every parameter reduced to a
// single value by source priority.
type HourlyMeasure struct {
	Day        string // UTC calendar day, 2006-01-02
	WaveHeight float64
	WavePeriod float64
	WindSpeed  float64
	WindDeg    float64
}

// DailySummary is the per-day aggregate of all resolved hours sharing
// a calendar date. WindLabel is the compass label of the numeric mean
// of the wind bearings, mapped once after averaging.
type DailySummary struct {
	Date          time.Time
	AvgWaveHeight float64
	AvgWavePeriod float64
	AvgWindSpeed  float64
	WindLabel     string
	Hours         int
}

// FallbackSummary is the coarse 24-hour aggregate from the secondary
// source: no wave period, no wind direction, no per-day breakdown.
type FallbackSummary struct {
	AvgWaveHeight float64
	AvgWindSpeed  float64
}
