package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fambudgeteer/family-budget/internal/entitlement"
	"github.com/fambudgeteer/family-budget/internal/http/middlewarectx"
	"github.com/fambudgeteer/family-budget/internal/services/access"
)

type validatorMock struct {
	decision entitlement.Decision
	err      error
	called   bool
}

func (m *validatorMock) ValidateAccess(_ context.Context, _, _, _, _ string) (entitlement.Decision, error) {
	m.called = true
	return m.decision, m.err
}

func newNoopLoggerPlan() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRequirePlan(t *testing.T) {
	tests := []struct {
		name           string
		userUID        string
		decision       entitlement.Decision
		validateErr    error
		wantStatusCode int
		wantBody       string
		wantCalled     bool
		wantValidated  bool
	}{
		{
			name:           "missing user uid denies before validation",
			userUID:        "",
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "user identification missing",
			wantCalled:     false,
			wantValidated:  false,
		},
		{
			name:           "no user error",
			userUID:        "uid-1",
			validateErr:    access.ErrNoUser,
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "user identification missing",
			wantCalled:     false,
			wantValidated:  true,
		},
		{
			name:           "subscription fetch error fails closed with generic message",
			userUID:        "uid-1",
			validateErr:    access.ErrSubscriptionFetch,
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       "failed to validate access",
			wantCalled:     false,
			wantValidated:  true,
		},
		{
			name:           "expired subscription",
			userUID:        "uid-1",
			decision:       entitlement.Decision{Allowed: false, Reason: entitlement.ReasonExpired},
			wantStatusCode: http.StatusForbidden,
			wantBody:       "subscription expired, access denied",
			wantCalled:     false,
			wantValidated:  true,
		},
		{
			name:           "insufficient plan names the required plan",
			userUID:        "uid-1",
			decision:       entitlement.Decision{Allowed: false, Reason: entitlement.ReasonInsufficientPlan},
			wantStatusCode: http.StatusForbidden,
			wantBody:       "plan too low, requires premium",
			wantCalled:     false,
			wantValidated:  true,
		},
		{
			name:           "allowed",
			userUID:        "uid-1",
			decision:       entitlement.Decision{Allowed: true},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
			wantValidated:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := &validatorMock{decision: tt.decision, err: tt.validateErr}
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})
			middleware := middlewarectx.RequirePlan(entitlement.PlanPremium, validator, newNoopLoggerPlan())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/liabilities", nil)
			if tt.userUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			middleware.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			assert.Equal(t, tt.wantValidated, validator.called)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRequirePlanUnknownValidatorError(t *testing.T) {
	validator := &validatorMock{err: errors.New("boom")}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler should not be called")
	})
	middleware := middlewarectx.RequirePlan(entitlement.PlanFamily, validator, newNoopLoggerPlan())(next)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/members", nil)
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
	rec := httptest.NewRecorder()

	middleware.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name           string
		role           any
		wantStatusCode int
		wantCalled     bool
	}{
		{name: "admin allowed", role: "admin", wantStatusCode: http.StatusOK, wantCalled: true},
		{name: "user forbidden", role: "user", wantStatusCode: http.StatusForbidden, wantCalled: false},
		{name: "missing role forbidden", role: nil, wantStatusCode: http.StatusForbidden, wantCalled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})
			middleware := middlewarectx.AdminOnly(newNoopLoggerPlan())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
			if tt.role != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Role, tt.role))
			}
			rec := httptest.NewRecorder()

			middleware.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}
