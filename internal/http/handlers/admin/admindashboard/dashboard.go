package admindashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fambudgeteer/family-budget/internal/http/response"
	"github.com/fambudgeteer/family-budget/internal/lib/sl"
	"github.com/fambudgeteer/family-budget/internal/services/admin"
)

// Service описывает интерфейс бизнес-логики сводки административной панели.
type Service interface {
	GetDashboard(ctx context.Context) (*admin.Dashboard, error)
}

// Handler обрабатывает HTTP-запросы сводки административной панели.
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
	const op = "handlers.admin.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.GetDashboard(r.Context())
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build dashboard"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(res))
}
