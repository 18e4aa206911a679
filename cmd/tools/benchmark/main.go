package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// BenchmarkConfig holds benchmark configuration
type BenchmarkConfig struct {
	BaseURL         string
	Duration        time.Duration
	ForecastWorkers int
	AlertWorkers    int
	HistoryPoints   int
	InventoryItems  int
	ForecastPeriods int
	AlertInterval   time.Duration
	HTTPClient      *http.Client // Shared HTTP client for connection pooling
}

// Metrics holds benchmark metrics
type Metrics struct {
	ForecastLatencies  []float64
	AlertLatencies     []float64
	ForecastErrors     int64
	AlertErrors        int64
	ForecastSuccess    int64
	AlertSuccess       int64
	FirstForecastError string
	FirstAlertError    string
	mu                 sync.Mutex
}

// Result represents benchmark results
type Result struct {
	Operation  string
	TotalOps   int64
	SuccessOps int64
	ErrorOps   int64
	Duration   time.Duration
	Throughput float64 // ops/sec
	AvgLatency float64 // ms
	MinLatency float64 // ms
	MaxLatency float64 // ms
	P50Latency float64 // ms
	P95Latency float64 // ms
	P99Latency float64 // ms
	ErrorMsg   string  // First error message
}

func main() {
	// Parse flags
	config := BenchmarkConfig{}
	flag.StringVar(&config.BaseURL, "url", "http://127.0.0.1:8000", "Base URL of the API")
	flag.DurationVar(&config.Duration, "duration", 60*time.Second, "Benchmark duration")
	flag.IntVar(&config.ForecastWorkers, "forecast-workers", 10, "Number of concurrent forecast workers")
	flag.IntVar(&config.AlertWorkers, "alert-workers", 5, "Number of concurrent alert workers")
	flag.IntVar(&config.HistoryPoints, "history-points", 90, "Historical points per forecast request")
	flag.IntVar(&config.InventoryItems, "inventory-items", 50, "Inventory items per alert request")
	flag.IntVar(&config.ForecastPeriods, "periods", 14, "Forecast horizon in periods")
	flag.DurationVar(&config.AlertInterval, "alert-interval", 10*time.Millisecond, "Interval between alert requests per worker")
	flag.Parse()

	// Create shared HTTP client with connection pooling
	config.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	fmt.Printf("=== Stockwise Benchmark Tool ===\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  URL: %s\n", config.BaseURL)
	fmt.Printf("  Duration: %s\n", config.Duration)
	fmt.Printf("  Forecast Workers: %d\n", config.ForecastWorkers)
	fmt.Printf("  Alert Workers: %d\n", config.AlertWorkers)
	fmt.Printf("  History Points: %d\n", config.HistoryPoints)
	fmt.Printf("  Inventory Items: %d\n", config.InventoryItems)
	fmt.Printf("  Forecast Periods: %d\n", config.ForecastPeriods)
	fmt.Printf("  Alert Interval: %s\n", config.AlertInterval)
	fmt.Printf("\n")

	// Run benchmark
	metrics := runBenchmark(config)

	// Calculate and display results
	forecastResult := calculateResult("Forecast", metrics.ForecastLatencies, metrics.ForecastSuccess, metrics.ForecastErrors, config.Duration, metrics.FirstForecastError)
	alertResult := calculateResult("Alert", metrics.AlertLatencies, metrics.AlertSuccess, metrics.AlertErrors, config.Duration, metrics.FirstAlertError)

	fmt.Printf("\n=== Benchmark Results ===\n\n")
	displayResult(forecastResult)
	fmt.Println()
	displayResult(alertResult)

	// Save results to file
	saveResults(config, forecastResult, alertResult)
}

func runBenchmark(config BenchmarkConfig) *Metrics {
	metrics := &Metrics{
		ForecastLatencies: make([]float64, 0, 10000),
		AlertLatencies:    make([]float64, 0, 10000),
	}

	var wg sync.WaitGroup
	stopCh := make(chan struct{})
	startTime := time.Now()

	// Start forecast workers
	for i := 0; i < config.ForecastWorkers; i++ {
		wg.Add(1)
		go forecastWorker(i, config, metrics, stopCh, &wg)
	}

	// Start alert workers
	for i := 0; i < config.AlertWorkers; i++ {
		wg.Add(1)
		go alertWorker(i, config, metrics, stopCh, &wg)
	}

	// Progress reporter
	go progressReporter(metrics, config.Duration, startTime)

	// Wait for duration
	time.Sleep(config.Duration)
	close(stopCh)
	wg.Wait()

	return metrics
}

func forecastWorker(id int, config BenchmarkConfig, metrics *Metrics, stopCh chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	url := fmt.Sprintf("%s/analytics/forecast", config.BaseURL)
	counter := 0

	for {
		select {
		case <-stopCh:
			return
		default:
			payload := map[string]interface{}{
				"product_id":      fmt.Sprintf("BENCH-%03d-%06d", id, counter),
				"historical_data": generateHistory(config.HistoryPoints),
				"periods":         config.ForecastPeriods,
			}
			counter++

			start := time.Now()
			err := makeRequest(config, "POST", url, payload)
			latency := time.Since(start).Seconds() * 1000 // ms

			metrics.mu.Lock()
			metrics.ForecastLatencies = append(metrics.ForecastLatencies, latency)
			metrics.mu.Unlock()

			if err != nil {
				atomic.AddInt64(&metrics.ForecastErrors, 1)
				metrics.mu.Lock()
				if metrics.FirstForecastError == "" {
					metrics.FirstForecastError = err.Error()
				}
				metrics.mu.Unlock()
			} else {
				atomic.AddInt64(&metrics.ForecastSuccess, 1)
			}
		}
	}
}

func alertWorker(id int, config BenchmarkConfig, metrics *Metrics, stopCh chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	url := fmt.Sprintf("%s/alerts/generate", config.BaseURL)
	ticker := time.NewTicker(config.AlertInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			payload := map[string]interface{}{
				"inventory": generateInventory(config.InventoryItems),
			}

			start := time.Now()
			err := makeRequest(config, "POST", url, payload)
			latency := time.Since(start).Seconds() * 1000 // ms

			metrics.mu.Lock()
			metrics.AlertLatencies = append(metrics.AlertLatencies, latency)
			metrics.mu.Unlock()

			if err != nil {
				atomic.AddInt64(&metrics.AlertErrors, 1)
				metrics.mu.Lock()
				if metrics.FirstAlertError == "" {
					metrics.FirstAlertError = err.Error()
				}
				metrics.mu.Unlock()
			} else {
				atomic.AddInt64(&metrics.AlertSuccess, 1)
			}
		}
	}
}

func progressReporter(metrics *Metrics, duration time.Duration, startTime time.Time) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		<-ticker.C
		elapsed := time.Since(startTime)
		if elapsed >= duration {
			return
		}

		forecasts := atomic.LoadInt64(&metrics.ForecastSuccess)
		alerts := atomic.LoadInt64(&metrics.AlertSuccess)
		forecastErrors := atomic.LoadInt64(&metrics.ForecastErrors)
		alertErrors := atomic.LoadInt64(&metrics.AlertErrors)

		forecastThroughput := float64(forecasts) / elapsed.Seconds()
		alertThroughput := float64(alerts) / elapsed.Seconds()

		remaining := duration - elapsed
		fmt.Printf("[%s remaining] Forecasts: %d (%.0f/s, %d errors) | Alerts: %d (%.0f/s, %d errors)\n",
			remaining.Round(time.Second), forecasts, forecastThroughput, forecastErrors,
			alerts, alertThroughput, alertErrors)
	}
}

// generateHistory builds a noisy demand series with a mild random drift so
// forecasts exercise every trend branch.
func generateHistory(points int) []interface{} {
	base := 50 + rand.Float64()*50
	slope := (rand.Float64() - 0.5) * 0.8

	history := make([]interface{}, 0, points)
	for i := 0; i < points; i++ {
		noise := rand.Float64()*10 - 5
		v := base + slope*float64(i) + noise
		if v < 0 {
			v = 0
		}
		history = append(history, math.Round(v*100)/100)
	}
	return history
}

// generateInventory builds inventory positions spanning stockout, low stock,
// overstock and healthy levels.
func generateInventory(items int) []map[string]interface{} {
	inventory := make([]map[string]interface{}, 0, items)
	for i := 0; i < items; i++ {
		available := rand.Intn(200)
		if rand.Intn(10) == 0 {
			available = 0
		}
		inventory = append(inventory, map[string]interface{}{
			"sku":            fmt.Sprintf("BENCH-SKU-%04d", i),
			"product_name":   fmt.Sprintf("Benchmark Product %d", i),
			"available":      available,
			"reorder_point":  5 + rand.Intn(20),
			"location":       fmt.Sprintf("warehouse-%d", i%3),
			"monthly_demand": 10 + rand.Float64()*90,
		})
	}
	return inventory
}

func makeRequest(config BenchmarkConfig, method, url string, data interface{}) error {
	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Connection", "keep-alive")

	resp, err := config.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	// Read and discard body to reuse connection
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return nil
}

func calculateResult(operation string, latencies []float64, success, errors int64, duration time.Duration, errorMsg string) Result {
	if len(latencies) == 0 {
		return Result{
			Operation: operation,
			TotalOps:  success + errors,
			ErrorMsg:  errorMsg,
		}
	}

	// Sort for percentiles
	sort.Float64s(latencies)

	result := Result{
		Operation:  operation,
		TotalOps:   success + errors,
		SuccessOps: success,
		ErrorOps:   errors,
		Duration:   duration,
		Throughput: float64(success) / duration.Seconds(),
		MinLatency: latencies[0],
		MaxLatency: latencies[len(latencies)-1],
		P50Latency: percentile(latencies, 50),
		P95Latency: percentile(latencies, 95),
		P99Latency: percentile(latencies, 99),
		ErrorMsg:   errorMsg,
	}

	// Calculate average
	var sum float64
	for _, lat := range latencies {
		sum += lat
	}
	result.AvgLatency = sum / float64(len(latencies))

	return result
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(math.Ceil(float64(len(sorted)) * p / 100.0))
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

func displayResult(r Result) {
	fmt.Printf("=== %s Operations ===\n", r.Operation)
	fmt.Printf("Total Operations: %d\n", r.TotalOps)
	if r.TotalOps > 0 {
		fmt.Printf("Success:          %d (%.2f%%)\n", r.SuccessOps, float64(r.SuccessOps)/float64(r.TotalOps)*100)
		fmt.Printf("Errors:           %d (%.2f%%)\n", r.ErrorOps, float64(r.ErrorOps)/float64(r.TotalOps)*100)
	}
	fmt.Printf("Duration:         %s\n", r.Duration)
	fmt.Printf("Throughput:       %.2f ops/sec\n", r.Throughput)
	if r.ErrorOps > 0 && len(r.ErrorMsg) > 0 {
		fmt.Printf("First Error:      %s\n", r.ErrorMsg)
	}
	fmt.Printf("\nLatency (ms):\n")
	fmt.Printf("  Min:  %.2f\n", r.MinLatency)
	fmt.Printf("  Avg:  %.2f\n", r.AvgLatency)
	fmt.Printf("  P50:  %.2f\n", r.P50Latency)
	fmt.Printf("  P95:  %.2f\n", r.P95Latency)
	fmt.Printf("  P99:  %.2f\n", r.P99Latency)
	fmt.Printf("  Max:  %.2f\n", r.MaxLatency)
}

func saveResults(config BenchmarkConfig, forecastResult, alertResult Result) {
	if err := os.MkdirAll("benchmark_results", 0o755); err != nil {
		fmt.Printf("Failed to create result directory: %v\n", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("benchmark_results/api_benchmark_%s.txt", timestamp)

	f, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Failed to create result file: %v\n", err)
		return
	}
	defer func() { _ = f.Close() }()

	_, _ = fmt.Fprintf(f, "=== Stockwise API Benchmark Results ===\n")
	_, _ = fmt.Fprintf(f, "Date: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(f, "Configuration:\n")
	_, _ = fmt.Fprintf(f, "  URL: %s\n", config.BaseURL)
	_, _ = fmt.Fprintf(f, "  Duration: %s\n", config.Duration)
	_, _ = fmt.Fprintf(f, "  Forecast Workers: %d\n", config.ForecastWorkers)
	_, _ = fmt.Fprintf(f, "  Alert Workers: %d\n", config.AlertWorkers)
	_, _ = fmt.Fprintf(f, "  History Points: %d\n", config.HistoryPoints)
	_, _ = fmt.Fprintf(f, "  Inventory Items: %d\n", config.InventoryItems)
	_, _ = fmt.Fprintf(f, "\n")

	writeResultToFile(f, "Forecast", forecastResult)
	_, _ = fmt.Fprintf(f, "\n")
	writeResultToFile(f, "Alert", alertResult)

	fmt.Printf("\nResults saved to: %s\n", filename)
}

func writeResultToFile(f *os.File, name string, r Result) {
	_, _ = fmt.Fprintf(f, "=== %s Operations ===\n", name)
	_, _ = fmt.Fprintf(f, "Total Operations: %d\n", r.TotalOps)
	if r.TotalOps > 0 {
		_, _ = fmt.Fprintf(f, "Success:          %d (%.2f%%)\n", r.SuccessOps, float64(r.SuccessOps)/float64(r.TotalOps)*100)
		_, _ = fmt.Fprintf(f, "Errors:           %d (%.2f%%)\n", r.ErrorOps, float64(r.ErrorOps)/float64(r.TotalOps)*100)
	}
	_, _ = fmt.Fprintf(f, "Duration:         %s\n", r.Duration)
	_, _ = fmt.Fprintf(f, "Throughput:       %.2f ops/sec\n", r.Throughput)
	_, _ = fmt.Fprintf(f, "\nLatency (ms):\n")
	_, _ = fmt.Fprintf(f, "  Min:  %.2f\n", r.MinLatency)
	_, _ = fmt.Fprintf(f, "  Avg:  %.2f\n", r.AvgLatency)
	_, _ = fmt.Fprintf(f, "  P50:  %.2f\n", r.P50Latency)
	_, _ = fmt.Fprintf(f, "  P95:  %.2f\n", r.P95Latency)
	_, _ = fmt.Fprintf(f, "  P99:  %.2f\n", r.P99Latency)
	_, _ = fmt.Fprintf(f, "  Max:  %.2f\n", r.MaxLatency)
}
