package booking

import (
	"math"
	"time"
)

// Fee policy. Amounts are in major currency units.
const (
	CleaningFee    = 5000.0
	ServiceFeeRate = 0.10
	TaxRate        = 0.075
	MinorPerMajor  = 100
)

// Breakdown is the immutable price snapshot stored with a booking. It is
// computed once at creation and never recomputed from live rates.
type Breakdown struct {
	Nights     int     `json:"nights"`
	Base       float64 `json:"base"`
	Cleaning   float64 `json:"cleaning_fee"`
	Service    float64 `json:"service_fee"`
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	TotalMinor int64   `json:"total_minor"`
}

func (b Breakdown) IsZero() bool {
	return b == Breakdown{}
}

// ComputeBreakdown prices a stay. Rounding is applied independently at each
// stage (service fee, tax, minor-unit conversion) with math.Round, which is
// half-away-from-zero: half-up for the positive amounts money takes here.
// A non-positive number of nights yields the all-zero breakdown; that is a
// defined policy, not an error. Pure and deterministic.
func ComputeBreakdown(nightlyRate float64, checkIn, checkOut time.Time) Breakdown {
	nights := int(math.Round(checkOut.Sub(checkIn).Hours() / 24))
	if nights <= 0 {
		return Breakdown{}
	}

	base := nightlyRate * float64(nights)
	service := math.Round(base * ServiceFeeRate)
	subtotal := base + CleaningFee + service
	tax := math.Round(subtotal * TaxRate)
	total := subtotal + tax

	return Breakdown{
		Nights:     nights,
		Base:       base,
		Cleaning:   CleaningFee,
		Service:    service,
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      total,
		TotalMinor: int64(math.Round(total * MinorPerMajor)),
	}
}
