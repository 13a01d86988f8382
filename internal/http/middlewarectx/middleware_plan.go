package middlewarectx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/fambudgeteer/family-budget/internal/entitlement"
	"github.com/fambudgeteer/family-budget/internal/http/response"
	"github.com/fambudgeteer/family-budget/internal/lib/sl"
	"github.com/fambudgeteer/family-budget/internal/services/access"
)

// AccessValidator определяет интерфейс проверки доступа по подписке.
type AccessValidator interface {
	ValidateAccess(ctx context.Context, userUID, requiredPlan, action, resource string) (entitlement.Decision, error)
}

// RequirePlan создает middleware-охрану маршрута: пропускает запрос только
// если подписка пользователя действует и план достаточен.
//
// Отсутствие пользователя в контексте — 401. Ошибка загрузки подписки — 500
// с общим сообщением, отличным от сообщения о недостаточном плане.
// Отказ по правилам — 403 с конкретной причиной.
func RequirePlan(requiredPlan string, validator AccessValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			decision, err := validator.ValidateAccess(r.Context(), userUID, requiredPlan, r.Method, r.URL.Path)
			if err != nil {
				if errors.Is(err, access.ErrNoUser) {
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error("user identification missing"))
					return
				}
				log.Error("failed to validate access", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to validate access"))
				return
			}

			if !decision.Allowed {
				switch decision.Reason {
				case entitlement.ReasonExpired:
					render.Status(r, http.StatusForbidden)
					render.JSON(w, r, response.Error("subscription expired, access denied"))
				default:
					render.Status(r, http.StatusForbidden)
					render.JSON(w, r, response.Error(fmt.Sprintf("plan too low, requires %s", requiredPlan)))
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly пропускает запрос только для пользователей с ролью admin.
func AdminOnly(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role != "admin" {
				log.Error("admin access denied", slog.String("role", role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
