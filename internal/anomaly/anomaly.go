// Package anomaly reports observations that sit unusually far from the
// rest of their series.
package anomaly

import (
	"math"

	"github.com/stockwise/stockwise/internal/stats"
)

// InsufficientDataMessage explains an empty report on short input. Short
// series are a soft condition, not an error.
const InsufficientDataMessage = "Need at least 3 data points for anomaly detection"

// Anomaly is a single flagged observation.
type Anomaly struct {
	Index     int     `json:"index"`
	Value     float64 `json:"value"`
	Deviation float64 `json:"deviation"`
}

// Report summarizes detection over one series.
type Report struct {
	TotalPoints  int       `json:"total_points"`
	AnomalyCount int       `json:"anomaly_count"`
	Anomalies    []Anomaly `json:"anomalies"`
	AnomalyRate  float64   `json:"anomaly_rate"`
	Message      string    `json:"message,omitempty"`
}

// Analyze flags values sitting more than stats.OutlierThreshold population
// standard deviations from the series mean, reporting each with its
// absolute deviation. Series shorter than stats.MinOutlierPoints come back
// empty with an explanatory message.
func Analyze(values []float64) Report {
	if len(values) < stats.MinOutlierPoints {
		return Report{
			TotalPoints: len(values),
			Anomalies:   []Anomaly{},
			Message:     InsufficientDataMessage,
		}
	}

	mean, _ := stats.MeanStdDev(values)

	indices := stats.DetectOutliers(values)
	anomalies := make([]Anomaly, 0, len(indices))
	for _, idx := range indices {
		anomalies = append(anomalies, Anomaly{
			Index:     idx,
			Value:     values[idx],
			Deviation: math.Abs(values[idx] - mean),
		})
	}

	return Report{
		TotalPoints:  len(values),
		AnomalyCount: len(anomalies),
		Anomalies:    anomalies,
		AnomalyRate:  float64(len(anomalies)) / float64(len(values)),
	}
}
