package alerts

import (
	"fmt"
	"time"
)

// overstockMonths is the months-of-supply ceiling before inventory counts
// as excess.
const overstockMonths = 6

// overstockSentinel stands in for months of supply when demand is zero.
const overstockSentinel = 999.0

// rule pairs a stock-level predicate with the alert it raises.
type rule struct {
	matches func(Item) bool
	build   func(item Item, id string, now time.Time) Alert
}

// stockRules is the fixed evaluation order: stockout before low stock
// before overstock. The first matching rule wins, so an item never raises
// more than one alert.
var stockRules = []rule{
	{matches: isStockout, build: buildStockout},
	{matches: isLowStock, build: buildLowStock},
	{matches: isOverstock, build: buildOverstock},
}

func isStockout(item Item) bool {
	return item.Available == 0
}

// isLowStock only sees items that passed the stockout rule, so zero stock
// never reaches it.
func isLowStock(item Item) bool {
	return item.Available < item.ReorderPoint
}

func isOverstock(item Item) bool {
	return float64(item.Available) > item.MonthlyDemand*overstockMonths
}

func buildStockout(item Item, id string, now time.Time) Alert {
	return Alert{
		ID:           "oos_" + id,
		Type:         TypeStockout,
		Severity:     SeverityCritical,
		Title:        fmt.Sprintf("Out of Stock: %s", item.ProductName),
		Description:  fmt.Sprintf("Product %s is completely out of stock at %s", item.ProductName, item.Location),
		Metric:       "inventory",
		Threshold:    0,
		CurrentValue: 0,
		Recommendations: []string{
			"Create emergency purchase order",
			"Transfer from other locations",
			"Notify customers",
		},
		Timestamp: now.Format(time.RFC3339),
	}
}

func buildLowStock(item Item, id string, now time.Time) Alert {
	return Alert{
		ID:           "low_" + id,
		Type:         TypeLowStock,
		Severity:     SeverityWarning,
		Title:        fmt.Sprintf("Low Stock: %s", item.ProductName),
		Description:  fmt.Sprintf("Only %d units left (below reorder point of %d)", item.Available, item.ReorderPoint),
		Metric:       "inventory",
		Threshold:    float64(item.ReorderPoint),
		CurrentValue: float64(item.Available),
		Recommendations: []string{
			// Suggested order covers two months of demand, truncated to
			// whole units.
			fmt.Sprintf("Order %d units", int(item.MonthlyDemand*2)),
			"Review demand forecast",
			"Check supplier lead times",
		},
		Timestamp: now.Format(time.RFC3339),
	}
}

func buildOverstock(item Item, id string, now time.Time) Alert {
	monthsSupply := overstockSentinel
	if item.MonthlyDemand > 0 {
		monthsSupply = float64(item.Available) / item.MonthlyDemand
	}

	return Alert{
		ID:           "over_" + id,
		Type:         TypeOverstock,
		Severity:     SeverityInfo,
		Title:        fmt.Sprintf("Overstock: %s", item.ProductName),
		Description:  fmt.Sprintf("Excess inventory: %d units (>%d months supply)", item.Available, overstockMonths),
		Metric:       "months_supply",
		Threshold:    overstockMonths,
		CurrentValue: monthsSupply,
		Recommendations: []string{
			"Run promotion",
			"Transfer to other locations",
			"Reduce future orders",
		},
		Timestamp: now.Format(time.RFC3339),
	}
}
