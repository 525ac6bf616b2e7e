package confirmemail

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	services "github.com/andrusoleg/contacts-api/internal/services/auth"
)

// MockService реализует интерфейс confirmemail.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ConfirmEmail(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func TestConfirmEmailHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное подтверждение",
			url:  "/auth/confirmed_email/valid-token",
			setupMock: func(m *MockService) {
				m.On("ConfirmEmail", mock.Anything, "valid-token").Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `Email confirmed`,
		},
		{
			name: "почта уже подтверждена",
			url:  "/auth/confirmed_email/valid-token",
			setupMock: func(m *MockService) {
				m.On("ConfirmEmail", mock.Anything, "valid-token").Return(true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `Your email is already confirmed`,
		},
		{
			name: "недействительный токен",
			url:  "/auth/confirmed_email/bad-token",
			setupMock: func(m *MockService) {
				m.On("ConfirmEmail", mock.Anything, "bad-token").
					Return(false, services.ErrInvalidToken)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"invalid token for email verification"}`,
		},
		{
			name: "пользователь не существует",
			url:  "/auth/confirmed_email/orphan-token",
			setupMock: func(m *MockService) {
				m.On("ConfirmEmail", mock.Anything, "orphan-token").
					Return(false, services.ErrVerification)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"verification error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("token", strings.TrimPrefix(tt.url, "/auth/confirmed_email/"))
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
