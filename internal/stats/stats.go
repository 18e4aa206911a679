// Package stats provides the numeric primitives shared by the analytics
// engines: moving averages, trend classification and outlier detection.
package stats

import "math"

// DefaultWindow is the lookback used for moving averages when the caller
// does not pick one.
const DefaultWindow = 7

// Trend classifies the direction of a series.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// trendTolerance is the band around the older average inside which a series
// still counts as stable. Recent values must move more than 10% before the
// classification leaves stable.
const trendTolerance = 0.1

// recentSpan is how many trailing observations form the "recent" average
// when classifying a trend.
const recentSpan = 3

// OutlierThreshold is the number of population standard deviations a value
// must sit from the mean before DetectOutliers flags it.
const OutlierThreshold = 2.5

// MinOutlierPoints is the smallest series DetectOutliers will consider.
const MinOutlierPoints = 3

// MovingAverage returns the mean of the last min(window, len(values))
// observations. An empty series yields 0; a non-positive window falls back
// to DefaultWindow.
func MovingAverage(values []float64, window int) float64 {
	if len(values) == 0 {
		return 0
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if window > len(values) {
		window = len(values)
	}

	sum := 0.0
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return sum / float64(window)
}

// ClassifyTrend labels a series by comparing the average of its last three
// observations against the average of everything before them. Series with
// fewer than two points cannot establish a direction and come back stable.
//
// For series of two or three points there is nothing before the recent
// span, so the older average is 0 and any positive recent average reads as
// increasing.
func ClassifyTrend(values []float64) Trend {
	if len(values) < 2 {
		return TrendStable
	}

	span := recentSpan
	if len(values) < span {
		span = len(values)
	}
	recent := 0.0
	for _, v := range values[len(values)-span:] {
		recent += v
	}
	recent /= float64(span)

	olderCount := len(values) - recentSpan
	older := 0.0
	for i := 0; i < olderCount; i++ {
		older += values[i]
	}
	if olderCount < 1 {
		olderCount = 1
	}
	older /= float64(olderCount)

	switch {
	case recent > older*(1+trendTolerance):
		return TrendIncreasing
	case recent < older*(1-trendTolerance):
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// DetectOutliers returns the indices of values sitting more than
// OutlierThreshold population standard deviations from the series mean.
// Fewer than MinOutlierPoints observations is not enough signal and yields
// no outliers.
func DetectOutliers(values []float64) []int {
	if len(values) < MinOutlierPoints {
		return nil
	}

	mean, stdDev := MeanStdDev(values)

	var outliers []int
	for i, v := range values {
		if math.Abs(v-mean) > OutlierThreshold*stdDev {
			outliers = append(outliers, i)
		}
	}
	return outliers
}

// Mean returns the arithmetic mean, or 0 for an empty series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// MeanStdDev returns the mean and the population standard deviation
// (dividing by N, not N-1) of a series.
func MeanStdDev(values []float64) (mean, stdDev float64) {
	if len(values) == 0 {
		return 0, 0
	}

	mean = Mean(values)

	varianceSum := 0.0
	for _, v := range values {
		diff := v - mean
		varianceSum += diff * diff
	}
	stdDev = math.Sqrt(varianceSum / float64(len(values)))
	return mean, stdDev
}

// MinMax returns the smallest and largest values in the series, or zeros
// for an empty series.
func MinMax(values []float64) (minVal, maxVal float64) {
	if len(values) == 0 {
		return 0, 0
	}
	minVal, maxVal = values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// GrowthRate returns the percentage change from the first observation to
// the last. Series shorter than two points, or starting at zero, have no
// meaningful rate and yield 0.
func GrowthRate(values []float64) float64 {
	if len(values) < 2 || values[0] == 0 {
		return 0
	}
	first := values[0]
	last := values[len(values)-1]
	return (last - first) / first * 100
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
