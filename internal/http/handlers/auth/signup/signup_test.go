package signup

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

// MockService реализует интерфейс signup.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req models.DummyUser) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockMailer реализует интерфейс signup.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationEmail(email, username, host string) error {
	args := m.Called(email, username, host)
	return args.Error(0)
}

func TestSignupHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			requestBody: models.DummyUser{
				Username: "testuser",
				Email:    "test@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.AnythingOfType("models.DummyUser")).
					Return(&models.User{ID: 1, Username: "testuser", Email: "test@example.com"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `Check your email for confirmation.`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "ошибка валидации",
			requestBody: models.DummyUser{
				Username: "ab",
				Email:    "not-an-email",
				Password: "123",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Username is too short`,
		},
		{
			name: "email уже занят",
			requestBody: models.DummyUser{
				Username: "testuser",
				Email:    "taken@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.AnythingOfType("models.DummyUser")).
					Return(nil, services.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"account already exists"}`,
		},
		{
			name: "ошибка сервиса",
			requestBody: models.DummyUser{
				Username: "testuser",
				Email:    "test@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.AnythingOfType("models.DummyUser")).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to register user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			mockMailer := new(MockMailer)
			// Письмо уходит в отдельной горутине, вызов может не успеть до конца теста
			mockMailer.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything).
				Return(nil).Maybe()

			handler := New(logger, mockService, mockMailer)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
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
