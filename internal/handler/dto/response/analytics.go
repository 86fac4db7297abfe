package response

import "stayhub/internal/usecase/readmodel"

type AnalyticsSummaryResponse struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"byStatus"`
	RevenueMinor int64            `json:"revenueMinor"`
}

func FromSummaryRM(rm *readmodel.SummaryRM) *AnalyticsSummaryResponse {
	return &AnalyticsSummaryResponse{
		Total:        rm.Total,
		ByStatus:     rm.ByStatus,
		RevenueMinor: rm.RevenueMinor,
	}
}
