package liabilityremove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fambudgeteer/family-budget/internal/http/middlewarectx"
)

// MockService реализует интерфейс liabilityremove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, userUID, id string) (int, error) {
	args := m.Called(ctx, userUID, id)
	return args.Int(0), args.Error(1)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешное удаление",
			id:      "11111111-1111-1111-1111-111111111111",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, "uid-1", "11111111-1111-1111-1111-111111111111").
					Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"deleted_count":1`,
		},
		{
			name:    "чужая запись не удаляется",
			id:      "22222222-2222-2222-2222-222222222222",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, "uid-1", "22222222-2222-2222-2222-222222222222").
					Return(0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"deleted_count":0`,
		},
		{
			name:           "нет пользователя в контексте",
			id:             "11111111-1111-1111-1111-111111111111",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:    "ошибка сервиса",
			id:      "11111111-1111-1111-1111-111111111111",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, "uid-1", "11111111-1111-1111-1111-111111111111").
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to delete liability"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/liabilities/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
