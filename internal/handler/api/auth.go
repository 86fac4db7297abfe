package api

import (
	"errors"
	"net/http"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
}

func NewAuthHandler(authUseCase usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

// @Summary Login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	pair, userRM, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: pair.AccessToken,
		ExpiresIn:   int64(pair.ExpiresIn.Seconds()),
		User:        userRM,
	})
}

// @Summary Request login code
// @Description Send a one-time login code to the given email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginCodeRequest true "Login code request"
// @Success 202 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Router /auth/login-code [post]
func (h *AuthHandler) RequestLoginCode(c *gin.Context) {
	var req reqdto.LoginCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.authUseCase.RequestLoginCode(c.Request.Context(), req.Email); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	// Always accepted so the endpoint cannot confirm whether an account exists.
	c.JSON(http.StatusAccepted, gin.H{
		"message": "If the account exists, a login code has been sent",
	})
}

// @Summary Verify login code
// @Description Exchange a one-time login code for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.VerifyLoginCodeRequest true "Verification request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login-code/verify [post]
func (h *AuthHandler) VerifyLoginCode(c *gin.Context) {
	var req reqdto.VerifyLoginCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	pair, userRM, err := h.authUseCase.VerifyLoginCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: pair.AccessToken,
		ExpiresIn:   int64(pair.ExpiresIn.Seconds()),
		User:        userRM,
	})
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrUserInactive),
		errors.Is(err, usecase.ErrInvalidLoginCode):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid credentials", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
