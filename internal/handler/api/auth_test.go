//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stayhub/internal/handler/api"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/readmodel"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type fakeAuthUseCase struct {
	loginFn       func(ctx context.Context, email, password string) (*usecase.TokenPair, *readmodel.AuthorizedUserRM, error)
	requestCodeFn func(ctx context.Context, email string) error
	verifyCodeFn  func(ctx context.Context, email, code string) (*usecase.TokenPair, *readmodel.AuthorizedUserRM, error)
}

func (f *fakeAuthUseCase) Login(ctx context.Context, email, password string) (*usecase.TokenPair, *readmodel.AuthorizedUserRM, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthUseCase) RequestLoginCode(ctx context.Context, email string) error {
	return f.requestCodeFn(ctx, email)
}

func (f *fakeAuthUseCase) VerifyLoginCode(ctx context.Context, email, code string) (*usecase.TokenPair, *readmodel.AuthorizedUserRM, error) {
	return f.verifyCodeFn(ctx, email, code)
}

type AuthHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	fake   *fakeAuthUseCase
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.fake = &fakeAuthUseCase{}

	handler := api.NewAuthHandler(s.fake)
	s.router.POST("/auth/login", handler.Login)
	s.router.POST("/auth/login-code", handler.RequestLoginCode)
	s.router.POST("/auth/login-code/verify", handler.VerifyLoginCode)
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) postJSON(url string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AuthHandlerTestSuite) TestLogin() {
	userRM := &readmodel.AuthorizedUserRM{
		ID:       uuid.New(),
		Email:    "guest@example.com",
		Role:     "guest",
		IsActive: true,
	}

	s.Run("success: returns token and user", func() {
		s.fake.loginFn = func(_ context.Context, email, password string) (*usecase.TokenPair, *readmodel.AuthorizedUserRM, error) {
			s.Equal("guest@example.com", email)
			return &usecase.TokenPair{AccessToken: "test-jwt-token", ExpiresIn: time.Hour}, userRM, nil
		}

		rec := s.postJSON("/auth/login", map[string]any{
			"email":    "guest@example.com",
			"password": "password123",
		})

		s.Equal(http.StatusOK, rec.Code)
		var resp resdto.LoginResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("test-jwt-token", resp.AccessToken)
		s.Equal(int64(3600), resp.ExpiresIn)
		s.Equal(userRM.Email, resp.User.Email)
	})

	s.Run("error: 401 on bad credentials", func() {
		s.fake.loginFn = func(context.Context, string, string) (*usecase.TokenPair, *readmodel.AuthorizedUserRM, error) {
			return nil, nil, usecase.ErrInvalidCredentials
		}
		rec := s.postJSON("/auth/login", map[string]any{
			"email":    "guest@example.com",
			"password": "wrongpassword",
		})
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 400 on short password", func() {
		rec := s.postJSON("/auth/login", map[string]any{
			"email":    "guest@example.com",
			"password": "short",
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AuthHandlerTestSuite) TestRequestLoginCode() {
	s.Run("accepted regardless of account existence", func() {
		s.fake.requestCodeFn = func(context.Context, string) error { return nil }
		rec := s.postJSON("/auth/login-code", map[string]any{"email": "anyone@example.com"})
		s.Equal(http.StatusAccepted, rec.Code)
	})
}

func (s *AuthHandlerTestSuite) TestVerifyLoginCode() {
	s.Run("error: 401 on wrong code", func() {
		s.fake.verifyCodeFn = func(context.Context, string, string) (*usecase.TokenPair, *readmodel.AuthorizedUserRM, error) {
			return nil, nil, usecase.ErrInvalidLoginCode
		}
		rec := s.postJSON("/auth/login-code/verify", map[string]any{
			"email": "guest@example.com",
			"code":  "123456",
		})
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 400 on malformed code", func() {
		rec := s.postJSON("/auth/login-code/verify", map[string]any{
			"email": "guest@example.com",
			"code":  "12",
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
