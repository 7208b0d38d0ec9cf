package dashboard

import (
	"net/http"

	"afristay/infras/otel"
	"afristay/internal/domains/dashboard/service"
	"afristay/shared/constant"
	"afristay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/dashboard/counts", handler.GetCounts)
}

// GetCounts
// @Summary Dashboard counters
// @Description Admins get global counts, owners counts over their listings, users their booking count.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.CountsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/counts [get]
// @Security BearerAuth
func (handler *Handler) GetCounts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCounts")
	defer scope.End()

	res, err := handler.service.Counts(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard counts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
