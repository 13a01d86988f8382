// Package networthget реализует HTTP-обработчик получения чистого капитала.
//
// Агрегация выполняется хранимой функцией базы данных; маршрут защищён
// охраной тарифа premium.
package networthget

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fambudgeteer/family-budget/internal/http/middlewarectx"
	"github.com/fambudgeteer/family-budget/internal/http/response"
	"github.com/fambudgeteer/family-budget/internal/lib/sl"
	"github.com/fambudgeteer/family-budget/internal/models"
)

// Service описывает интерфейс бизнес-логики расчёта чистого капитала.
type Service interface {
	Get(ctx context.Context, userUID string) (*models.NetWorth, error)
}

// Handler обрабатывает HTTP-запросы на получение чистого капитала.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Чистый капитал пользователя
// @Description Возвращает сумму активов, обязательств и чистый капитал. Требует тариф premium.
// @Tags NetWorth
// @Produce  json
// @Success 200 {object} response.Response "Агрегат чистого капитала"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 403 {object} response.Response "Недостаточный тариф или истекшая подписка"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /networth [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.networth.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Get(r.Context(), userUID)
	if err != nil {
		log.Error("failed to calculate net worth", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to calculate net worth"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(res))
}
