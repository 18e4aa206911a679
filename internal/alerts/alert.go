// Package alerts evaluates inventory positions against stock-level rules
// and emits prioritized, actionable alerts.
package alerts

// Severity grades how urgently an alert needs attention.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Type names the stock condition an alert reports.
type Type string

const (
	TypeStockout  Type = "stockout"
	TypeLowStock  Type = "low_stock"
	TypeOverstock Type = "overstock"
)

// Defaults applied to inventory fields absent from a request.
const (
	DefaultReorderPoint  = 10
	DefaultLocation      = "default"
	DefaultMonthlyDemand = 30.0
)

// Item is one inventory position to evaluate.
type Item struct {
	SKU           string
	ProductName   string
	Available     int
	ReorderPoint  int
	Location      string
	MonthlyDemand float64
}

// Alert is a single finding for one inventory item.
type Alert struct {
	ID              string   `json:"id"`
	Type            Type     `json:"type"`
	Severity        Severity `json:"severity"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Metric          string   `json:"metric"`
	Threshold       float64  `json:"threshold"`
	CurrentValue    float64  `json:"current_value"`
	Recommendations []string `json:"recommendations"`
	Timestamp       string   `json:"timestamp"`
}

// Summary counts the alerts in a batch by severity.
type Summary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// Batch is the result of evaluating one inventory snapshot.
type Batch struct {
	Alerts      []Alert `json:"alerts"`
	Summary     Summary `json:"summary"`
	GeneratedAt string  `json:"generated_at"`
}
