package models

// ForecastRequest represents a demand forecast request.
// Historical entries may be bare numbers or objects carrying a quantity
// field, so they arrive untyped and are coerced by the service layer.
type ForecastRequest struct {
	ProductID      string        `json:"product_id"`
	HistoricalData []interface{} `json:"historical_data"`
	Periods        int           `json:"periods"`
}

// SeriesRequest represents a bare series for trend or anomaly analysis
type SeriesRequest struct {
	Values []interface{} `json:"values"`
}

// InventoryItemPayload represents one inventory position on the wire.
// Optional fields are pointers so absent members pick up defaults without
// clobbering explicit zeros.
type InventoryItemPayload struct {
	SKU           *string  `json:"sku"`
	ProductName   *string  `json:"product_name"`
	Available     *int     `json:"available"`
	ReorderPoint  *int     `json:"reorder_point"`
	Location      *string  `json:"location"`
	MonthlyDemand *float64 `json:"monthly_demand"`
}

// AlertRequest represents an inventory snapshot to evaluate
type AlertRequest struct {
	Inventory []InventoryItemPayload `json:"inventory"`
}

// ReorderRequest represents reorder-point inputs.
// Absent fields fall back to documented defaults.
type ReorderRequest struct {
	DailyDemand  *float64 `json:"daily_demand"`
	LeadTimeDays *float64 `json:"lead_time_days"`
	ServiceLevel *float64 `json:"service_level"`
	DemandStd    *float64 `json:"demand_std"`
	OrderingCost *float64 `json:"ordering_cost"`
	HoldingCost  *float64 `json:"holding_cost"`
}
