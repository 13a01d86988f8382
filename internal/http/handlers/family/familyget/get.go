package familyget

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fambudgeteer/family-budget/internal/http/middlewarectx"
	"github.com/fambudgeteer/family-budget/internal/http/response"
	"github.com/fambudgeteer/family-budget/internal/lib/sl"
	"github.com/fambudgeteer/family-budget/internal/models"
	"github.com/fambudgeteer/family-budget/internal/services/family"
)

// Service описывает интерфейс бизнес-логики получения семьи.
type Service interface {
	GetMyFamily(ctx context.Context, userUID string) (*models.Family, error)
}

// Handler обрабатывает HTTP-запросы на получение семьи пользователя.
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.family.get"

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

	res, err := h.service.GetMyFamily(r.Context(), userUID)
	if err != nil {
		if errors.Is(err, family.ErrNoFamily) {
			log.Info("user has no family")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("family not found"))
			return
		}
		log.Error("failed to get family", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get family"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"family": res,
	}))
}
