package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andrusoleg/contacts-api/internal/models"
)

// MockAuthService реализует интерфейс AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockAuthService)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:       "валидный токен пропускает запрос",
			authHeader: "Bearer valid-token",
			setupMock: func(m *MockAuthService) {
				m.On("CurrentUser", mock.Anything, "valid-token").
					Return(&models.User{ID: 1, Email: "test@example.com"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "отсутствует заголовок Authorization",
			authHeader:     "",
			setupMock:      func(_ *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "заголовок без префикса Bearer",
			authHeader:     "Basic abc123",
			setupMock:      func(_ *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "недействительный токен",
			authHeader: "Bearer bad-token",
			setupMock: func(m *MockAuthService) {
				m.On("CurrentUser", mock.Anything, "bad-token").
					Return(nil, errors.New("token is expired"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.setupMock(mockService)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				user, ok := CurrentUser(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "test@example.com", user.Email)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/contacts", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			AuthMiddleware(mockService, logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)

			mockService.AssertExpectations(t)
		})
	}
}

func TestCurrentUserMissing(t *testing.T) {
	user, ok := CurrentUser(context.Background())
	assert.False(t, ok)
	assert.Nil(t, user)
}
