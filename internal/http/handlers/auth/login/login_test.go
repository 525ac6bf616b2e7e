package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andrusoleg/contacts-api/internal/models"
	services "github.com/andrusoleg/contacts-api/internal/services/auth"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный вход",
			requestBody: models.DummyLogin{
				Email:    "test@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "test@example.com", "password123").
					Return("jwt-token-123", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"access_token":"jwt-token-123"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "неверные учётные данные",
			requestBody: models.DummyLogin{
				Email:    "test@example.com",
				Password: "wrongpassword",
			},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "test@example.com", "wrongpassword").
					Return("", services.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid credentials"}`,
		},
		{
			name: "почта не подтверждена",
			requestBody: models.DummyLogin{
				Email:    "pending@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "pending@example.com", "password123").
					Return("", services.ErrEmailNotConfirmed)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"email is not verified"}`,
		},
		{
			name: "ошибка сервиса",
			requestBody: models.DummyLogin{
				Email:    "test@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "test@example.com", "password123").
					Return("", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to login"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
