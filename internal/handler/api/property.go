package api

import (
	"errors"
	"net/http"

	"stayhub/internal/domain/booking"
	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PropertyHandler struct {
	propertyUseCase usecase.PropertyUseCase
}

func NewPropertyHandler(propertyUseCase usecase.PropertyUseCase) *PropertyHandler {
	return &PropertyHandler{
		propertyUseCase: propertyUseCase,
	}
}

// @Summary List active properties
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.PropertyResponse
// @Router /properties [get]
func (h *PropertyHandler) GetActiveProperties(c *gin.Context) {
	propertiesRM, err := h.propertyUseCase.GetActiveProperties(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.PropertyResponse, len(propertiesRM))
	for i, rm := range propertiesRM {
		response[i] = resdto.FromPropertyRM(rm)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Create availability block
// @Description Block a date range on a property (host or admin)
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBlockRequest true "Block request"
// @Success 201 {object} resdto.AvailabilityBlockResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /properties/blocks [post]
func (h *PropertyHandler) CreateBlock(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUserContext, "Internal server error", nil)
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUserContext, "Internal server error", nil)
		return
	}

	var req reqdto.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	start, end, err := req.ParseDates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	params := usecase.CreateBlockParams{
		PropertyID: req.PropertyID,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.GetReason(),
	}

	blockRM, err := h.propertyUseCase.CreateBlock(c.Request.Context(), params, booking.Actor{ID: userID, Role: role})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPropertyNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Property not found", nil)
		case errors.Is(err, usecase.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed to block this property", nil)
		case errors.Is(err, usecase.ErrInvalidStayRange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAvailabilityBlockRM(blockRM))
}

// @Summary List availability blocks
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Success 200 {array} resdto.AvailabilityBlockResponse
// @Failure 400 {object} httperr.Response
// @Router /properties/{id}/blocks [get]
func (h *PropertyHandler) GetBlocks(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid property ID format", nil)
		return
	}

	blocksRM, err := h.propertyUseCase.GetBlocks(c.Request.Context(), propertyID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.AvailabilityBlockResponse, len(blocksRM))
	for i, rm := range blocksRM {
		response[i] = resdto.FromAvailabilityBlockRM(rm)
	}

	c.JSON(http.StatusOK, response)
}
