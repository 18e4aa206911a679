// Package forecast projects a demand series forward. The method is a
// deliberately simple moving average drifted by trend direction and
// perturbed per period, not a fitted statistical model.
package forecast

import (
	"math/rand"
	"time"

	"github.com/stockwise/stockwise/internal/stats"
)

// Method names the projection algorithm reported with every result.
const Method = "moving_average"

// DefaultPeriods is the horizon used when a request does not specify one.
const DefaultPeriods = 30

// defaultObservation seeds an empty history so averages stay defined.
const defaultObservation = 10.0

const (
	// driftPerPeriod compounds linearly: period i of a trending series is
	// shifted by i percent before perturbation.
	driftPerPeriod = 0.01

	// jitterLow and jitterHigh bound the uniform perturbation applied to
	// every projected value.
	jitterLow  = 0.95
	jitterHigh = 1.05

	// bandRatio is the fixed ±20% display band around each projection.
	bandRatio = 0.2
)

// Point is a single projected observation with its display band.
type Point struct {
	Date       string  `json:"date"`
	Value      float64 `json:"value"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// Metrics summarizes the historical series a projection was built from.
type Metrics struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Result is a complete projection for one series.
type Result struct {
	Trend   stats.Trend
	Points  []Point
	Metrics Metrics
}

// UniformFunc draws a random number uniformly from [lo, hi).
type UniformFunc func(lo, hi float64) float64

// Engine projects series forward. Construct with NewEngine; tests can pin
// the perturbation through NewEngineWithUniform.
type Engine struct {
	uniform UniformFunc
}

// NewEngine returns an Engine drawing perturbations from the shared
// process-level random source.
func NewEngine() *Engine {
	return NewEngineWithUniform(func(lo, hi float64) float64 {
		return lo + rand.Float64()*(hi-lo)
	})
}

// NewEngineWithUniform returns an Engine using the given uniform draw.
func NewEngineWithUniform(uniform UniformFunc) *Engine {
	return &Engine{uniform: uniform}
}

// Project forecasts the series the given number of periods into the future,
// one day per period starting the day after now. An empty history is seeded
// with a single default observation. A non-positive horizon falls back to
// DefaultPeriods.
func (e *Engine) Project(values []float64, periods int, now time.Time) Result {
	if len(values) == 0 {
		values = []float64{defaultObservation}
	}
	if periods <= 0 {
		periods = DefaultPeriods
	}

	avg := stats.MovingAverage(values, stats.DefaultWindow)
	trend := stats.ClassifyTrend(values)

	points := make([]Point, 0, periods)
	for i := 0; i < periods; i++ {
		base := avg
		switch trend {
		case stats.TrendIncreasing:
			base = avg * (1 + float64(i)*driftPerPeriod)
		case stats.TrendDecreasing:
			base = avg * (1 - float64(i)*driftPerPeriod)
		}
		value := base * e.uniform(jitterLow, jitterHigh)

		points = append(points, Point{
			Date:       now.AddDate(0, 0, i+1).Format(time.RFC3339),
			Value:      stats.Round2(value),
			LowerBound: stats.Round2(value * (1 - bandRatio)),
			UpperBound: stats.Round2(value * (1 + bandRatio)),
		})
	}

	minVal, maxVal := stats.MinMax(values)
	return Result{
		Trend:  trend,
		Points: points,
		Metrics: Metrics{
			Average: stats.Round2(avg),
			Min:     stats.Round2(minVal),
			Max:     stats.Round2(maxVal),
		},
	}
}
