package search

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andrusoleg/contacts-api/internal/http/middlewarectx"
	"github.com/andrusoleg/contacts-api/internal/models"
)

// MockService реализует интерфейс search.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Search(ctx context.Context, userID int, filters map[string]string) ([]*models.Contact, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contact), args.Error(1)
}

func TestSearchHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешный поиск",
			requestBody: map[string]string{"first_name": "iva"},
			user:        &models.User{ID: 7},
			setupMock: func(m *MockService) {
				m.On("Search", mock.Anything, 7, map[string]string{"first_name": "iva"}).
					Return([]*models.Contact{{ID: 1, FirstName: "Ivan", UserID: 7}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"list_count":1`,
		},
		{
			name:        "пустой результат для нераспознанных фильтров",
			requestBody: map[string]string{"unknown_field": "value"},
			user:        &models.User{ID: 7},
			setupMock: func(m *MockService) {
				m.On("Search", mock.Anything, 7, map[string]string{"unknown_field": "value"}).
					Return([]*models.Contact{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"list_count":0`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			user:           &models.User{ID: 7},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    map[string]string{"first_name": "iva"},
			user:           nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
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

			req := httptest.NewRequest(http.MethodPost, "/contacts/search", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.user != nil {
				ctx = context.WithValue(ctx, middlewarectx.UserKey, tt.user)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
