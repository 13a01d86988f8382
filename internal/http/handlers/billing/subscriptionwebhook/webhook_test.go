package subscriptionwebhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fambudgeteer/family-budget/internal/models"
)

// MockService реализует интерфейс subscriptionwebhook.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ProcessSubscriptionEvent(ctx context.Context, event models.DummySubscriptionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

const testSecret = "webhook_secret"

func sign(body string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestWebhookHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := `{"user_uid":"11111111-1111-1111-1111-111111111111","plan":"premium","status":"active"}`

	tests := []struct {
		name           string
		body           string
		signature      string
		setupMock      func(*MockService)
		expectedStatus int
	}{
		{
			name:      "успешное применение события",
			body:      validBody,
			signature: sign(validBody),
			setupMock: func(m *MockService) {
				m.On("ProcessSubscriptionEvent", mock.Anything, models.DummySubscriptionEvent{
					UserUID: "11111111-1111-1111-1111-111111111111",
					Plan:    "premium",
					Status:  "active",
				}).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "отсутствует подпись",
			body:           validBody,
			signature:      "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "неверная подпись",
			body:           validBody,
			signature:      sign(validBody + "tampered"),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "неизвестный план отклоняется валидацией",
			body:           `{"user_uid":"11111111-1111-1111-1111-111111111111","plan":"platinum","status":"active"}`,
			signature:      sign(`{"user_uid":"11111111-1111-1111-1111-111111111111","plan":"platinum","status":"active"}`),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:      "ошибка сервиса",
			body:      validBody,
			signature: sign(validBody),
			setupMock: func(m *MockService) {
				m.On("ProcessSubscriptionEvent", mock.Anything, mock.Anything).
					Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, testSecret)

			req := httptest.NewRequest(http.MethodPost, "/subscriptions/webhook", strings.NewReader(tt.body))
			if tt.signature != "" {
				req.Header.Set("X-Api-Signature", tt.signature)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
