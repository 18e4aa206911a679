// Package optimize computes closed-form inventory policy figures: reorder
// point, safety stock and economic order quantity.
package optimize

import (
	"fmt"
	"math"
)

// Defaults applied when a request omits a field.
const (
	DefaultDailyDemand  = 10.0
	DefaultLeadTimeDays = 5.0
	DefaultServiceLevel = 0.95
	DefaultDemandStd    = 3.0
	DefaultOrderingCost = 50.0
	DefaultHoldingCost  = 2.0
)

// fallbackZ is the 95% service-level Z score, used when the requested
// level is not in the table.
const fallbackZ = 1.65

// zScores maps a service level to its normal-distribution Z score.
var zScores = map[float64]float64{
	0.90: 1.28,
	0.95: 1.65,
	0.99: 2.33,
}

// Input carries the demand and cost figures the formulas need.
type Input struct {
	DailyDemand  float64
	LeadTimeDays float64
	ServiceLevel float64
	DemandStd    float64
	OrderingCost float64
	HoldingCost  float64
}

// Plan is a computed inventory policy. Unit fields are rounded to whole
// units for display.
type Plan struct {
	ReorderPoint          float64  `json:"reorder_point"`
	SafetyStock           float64  `json:"safety_stock"`
	EconomicOrderQuantity float64  `json:"economic_order_quantity"`
	AverageDemand         float64  `json:"average_demand"`
	LeadTime              float64  `json:"lead_time"`
	ServiceLevel          float64  `json:"service_level"`
	Recommendations       []string `json:"recommendations"`
}

// CalculateReorderPoint evaluates the reorder-point, safety-stock and EOQ
// formulas for one item. It is a pure function: identical input yields an
// identical plan.
//
// Safety stock is z * demandStd * sqrt(leadTime); the reorder point adds
// the demand expected during lead time. EOQ follows the classic
// sqrt(2 * annualDemand * orderingCost / holdingCost) form.
func CalculateReorderPoint(in Input) Plan {
	z, ok := zScores[in.ServiceLevel]
	if !ok {
		z = fallbackZ
	}

	demandDuringLead := in.DailyDemand * in.LeadTimeDays
	safetyStock := z * in.DemandStd * math.Sqrt(in.LeadTimeDays)
	reorderPoint := demandDuringLead + safetyStock

	var eoq float64
	if in.HoldingCost > 0 {
		annualDemand := in.DailyDemand * 365
		eoq = math.Sqrt(2 * annualDemand * in.OrderingCost / in.HoldingCost)
	} else {
		// The EOQ formula degenerates without a positive holding cost;
		// fall back to a month of demand per order.
		eoq = in.DailyDemand * 30
	}

	rp := math.Round(reorderPoint)
	ss := math.Round(safetyStock)
	orderQty := math.Round(eoq)

	return Plan{
		ReorderPoint:          rp,
		SafetyStock:           ss,
		EconomicOrderQuantity: orderQty,
		AverageDemand:         in.DailyDemand,
		LeadTime:              in.LeadTimeDays,
		ServiceLevel:          in.ServiceLevel,
		Recommendations: []string{
			fmt.Sprintf("Set reorder point to %.0f units", rp),
			fmt.Sprintf("Maintain safety stock of %.0f units", ss),
			fmt.Sprintf("Order %.0f units per order for optimal cost", orderQty),
		},
	}
}
