//go:build unit

package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stayhub/internal/handler/httperr"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performGET(t *testing.T, engine *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("aborted handler error reaches the client with the public shape", func(t *testing.T) {
		engine := gin.New()
		engine.Use(middleware.ErrorHandler())
		engine.GET("/boom", func(c *gin.Context) {
			httperr.AbortWithError(c, http.StatusConflict, errs.New("overlap detected"), "Range conflicts with an existing reservation", nil)
		})

		rec := performGET(t, engine, "/boom")

		assert.Equal(t, http.StatusConflict, rec.Code)
		var resp httperr.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Range conflicts with an existing reservation", resp.Error.Message)
	})

	t.Run("recorded public error is replayed when nothing was written", func(t *testing.T) {
		engine := gin.New()
		engine.Use(middleware.ErrorHandler())
		engine.GET("/deferred", func(c *gin.Context) {
			resp := httperr.Response{Status: http.StatusNotFound}
			resp.Error.Message = "Booking not found"
			_ = c.Error(gin.Error{
				Err:  errs.New("no rows"),
				Type: gin.ErrorTypePublic,
				Meta: resp,
			})
		})

		rec := performGET(t, engine, "/deferred")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var resp httperr.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Booking not found", resp.Error.Message)
	})

	t.Run("unwritten response without public errors falls back to 500", func(t *testing.T) {
		engine := gin.New()
		engine.Use(middleware.ErrorHandler())
		engine.GET("/silent", func(c *gin.Context) {
			_ = c.Error(errs.New("internal detail that must not leak"))
		})

		rec := performGET(t, engine, "/silent")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "must not leak")
	})
}

func TestCustomRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(middleware.CustomRecovery())
	engine.GET("/panic", func(c *gin.Context) {
		panic("unexpected state")
	})

	rec := performGET(t, engine, "/panic")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp httperr.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Error.Message)
}
