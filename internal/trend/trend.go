// Package trend summarizes the direction, growth and spread of a series.
package trend

import "github.com/stockwise/stockwise/internal/stats"

// NoDataMessage explains an empty report.
const NoDataMessage = "No data provided"

// Report describes one series.
type Report struct {
	Trend      stats.Trend `json:"trend"`
	Average    float64     `json:"average"`
	GrowthRate float64     `json:"growth_rate"`
	LastValue  float64     `json:"last_value"`
	Peak       float64     `json:"peak"`
	Trough     float64     `json:"trough"`
	Message    string      `json:"message,omitempty"`
}

// Analyze classifies the series direction and reports its average, overall
// growth rate and extremes. An empty series yields a stable report with an
// explanatory message.
func Analyze(values []float64) Report {
	if len(values) == 0 {
		return Report{Trend: stats.TrendStable, Message: NoDataMessage}
	}

	minVal, maxVal := stats.MinMax(values)
	return Report{
		Trend:      stats.ClassifyTrend(values),
		Average:    stats.Round2(stats.Mean(values)),
		GrowthRate: stats.Round2(stats.GrowthRate(values)),
		LastValue:  stats.Round2(values[len(values)-1]),
		Peak:       stats.Round2(maxVal),
		Trough:     stats.Round2(minVal),
	}
}
