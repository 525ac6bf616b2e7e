package remove

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andrusoleg/contacts-api/internal/http/middlewarectx"
	"github.com/andrusoleg/contacts-api/internal/models"
	"github.com/andrusoleg/contacts-api/internal/storage"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, id, userID int) (*models.Contact, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное удаление возвращает удалённую запись",
			url:  "/contacts/123",
			user: &models.User{ID: 7},
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, 123, 7).
					Return(&models.Contact{
						ID:        123,
						FirstName: "Ivan",
						Birthday:  time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
						UserID:    7,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"first_name":"Ivan"`,
		},
		{
			name:           "некорректный id в url",
			url:            "/contacts/abc",
			user:           &models.User{ID: 7},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode id from url"}`,
		},
		{
			name: "контакт не найден",
			url:  "/contacts/999",
			user: &models.User{ID: 7},
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, 999, 7).Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"contact not found"}`,
		},
		{
			name:           "отсутствует авторизация",
			url:            "/contacts/123",
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

			req := httptest.NewRequest(http.MethodDelete, tt.url, nil)

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.user != nil {
				ctx = context.WithValue(ctx, middlewarectx.UserKey, tt.user)
			}
			req = req.WithContext(ctx)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strings.TrimPrefix(tt.url, "/contacts/"))
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
