package billing

import "math"

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

type BreakdownEntry struct {
	Type WasteType `json:"type"`
	Fee  float64   `json:"fee"`
}

// PickupCalculation is the result of a special pickup quote.
type PickupCalculation struct {
	Totals
	TaxRate   float64          `json:"tax_rate"`
	Breakdown []BreakdownEntry `json:"breakdown"`
}

type MonthlyBreakdown struct {
	ServiceFee         float64 `json:"service_fee"`
	AdditionalServices float64 `json:"additional_services"`
	Months             int     `json:"months"`
}

// MonthlyCalculation is the result of a monthly bill quote.
type MonthlyCalculation struct {
	Totals
	Breakdown MonthlyBreakdown `json:"breakdown"`
}

// AdditionalService is an add-on to the monthly bill. A nil Fee means the
// fee comes from the additional services table.
type AdditionalService struct {
	Name string   `json:"name"`
	Fee  *float64 `json:"fee,omitempty"`
}

// ComputeSpecialPickupFee prices one entry per known key. Unknown and empty
// keys are dropped; duplicates are charged once per occurrence.
func ComputeSpecialPickupFee(keys []string) PickupCalculation {
	breakdown := make([]BreakdownEntry, 0, len(keys))
	subtotal := 0.0
	for _, key := range keys {
		info, ok := wasteTypes[WasteType(key)]
		if !ok {
			continue
		}
		breakdown = append(breakdown, BreakdownEntry{Type: WasteType(key), Fee: info.Fee})
		subtotal += info.Fee
	}

	return PickupCalculation{
		Totals:    computeTotals(subtotal),
		TaxRate:   TaxRate,
		Breakdown: breakdown,
	}
}

// ComputeMonthlyBill charges BaseMonthlyFee per month plus add-ons.
// Negative month counts are treated as zero.
func ComputeMonthlyBill(months int, services []AdditionalService) MonthlyCalculation {
	if months < 0 {
		months = 0
	}
	serviceFee := BaseMonthlyFee * float64(months)

	additional := 0.0
	for _, svc := range services {
		additional += serviceContribution(svc)
	}

	return MonthlyCalculation{
		Totals: computeTotals(serviceFee + additional),
		Breakdown: MonthlyBreakdown{
			ServiceFee:         round2(serviceFee),
			AdditionalServices: round2(additional),
			Months:             months,
		},
	}
}

func serviceContribution(svc AdditionalService) float64 {
	if svc.Fee != nil && !math.IsNaN(*svc.Fee) && !math.IsInf(*svc.Fee, 0) {
		return *svc.Fee
	}
	if fee, ok := AdditionalServiceFee(svc.Name); ok {
		return fee
	}
	return 0
}

func computeTotals(subtotal float64) Totals {
	subtotal = round2(subtotal)
	tax := round2(subtotal * TaxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    round2(subtotal + tax),
		Currency: Currency,
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
