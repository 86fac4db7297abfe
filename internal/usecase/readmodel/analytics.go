package readmodel

// SummaryRM aggregates stored bookings for dashboards. RevenueMinor sums
// total_minor over the declared revenue status set only.
type SummaryRM struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"by_status"`
	RevenueMinor int64            `json:"revenue_minor"`
}
