package api

import (
	"net/http"

	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnalyticsHandler struct {
	analyticsUseCase usecase.AnalyticsUseCase
}

func NewAnalyticsHandler(analyticsUseCase usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUseCase: analyticsUseCase,
	}
}

// @Summary Booking analytics summary
// @Description Counts per status and recognized revenue, optionally scoped to one property
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param property_id query string false "Property ID filter"
// @Success 200 {object} resdto.AnalyticsSummaryResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /bookings/analytics [get]
func (h *AnalyticsHandler) Summarize(c *gin.Context) {
	var propertyID *uuid.UUID
	if idStr := c.Query("property_id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid property ID format", nil)
			return
		}
		propertyID = &id
	}

	summaryRM, err := h.analyticsUseCase.Summarize(c.Request.Context(), propertyID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSummaryRM(summaryRM))
}
