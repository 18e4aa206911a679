package alerts

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Generate evaluates every item against the rule table in priority order
// and returns the resulting batch. Items matching no rule produce nothing.
//
// Alert IDs embed the SKU for traceability plus a UUID so concurrent
// batches never collide. Apart from IDs, identical input at the same
// instant yields an identical batch.
func Generate(items []Item, now time.Time) Batch {
	generated := make([]Alert, 0)
	for _, item := range items {
		id := fmt.Sprintf("%s_%s", item.SKU, uuid.New().String())
		for _, r := range stockRules {
			if !r.matches(item) {
				continue
			}
			generated = append(generated, r.build(item, id, now))
			break
		}
	}

	summary := Summary{Total: len(generated)}
	for _, a := range generated {
		switch a.Severity {
		case SeverityCritical:
			summary.Critical++
		case SeverityWarning:
			summary.Warning++
		case SeverityInfo:
			summary.Info++
		}
	}

	return Batch{
		Alerts:      generated,
		Summary:     summary,
		GeneratedAt: now.Format(time.RFC3339),
	}
}
