package location

import (
	"net/http"
	"strconv"

	"afristay/infras/otel"
	"afristay/internal/domains/location/service"
	"afristay/shared/constant"
	"afristay/shared/failure"
	"afristay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Location
	otel    otel.Otel
}

func New(service service.Location, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/locations", func(routerGroup chi.Router) {
		routerGroup.Get("/provinces", handler.GetProvinces)
		routerGroup.Get("/provinces/{id}/districts", handler.GetDistricts)
		routerGroup.Get("/districts/{id}/sectors", handler.GetSectors)
	})
}

// GetProvinces
// @Summary List provinces
// @Tags Location
// @Produce json
// @Success 200 {object} response.Data[[]dto.LocationResponse]
// @Failure 500 {object} response.Error
// @Router /v1/locations/provinces [get]
func (handler *Handler) GetProvinces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProvinces")
	defer scope.End()

	res, err := handler.service.GetProvinces(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get provinces")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetDistricts
// @Summary List the districts of a province
// @Tags Location
// @Produce json
// @Param id path integer true "Province ID"
// @Success 200 {object} response.Data[[]dto.LocationResponse]
// @Failure 400 {object} response.Error
// @Router /v1/locations/provinces/{id}/districts [get]
func (handler *Handler) GetDistricts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDistricts")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetDistricts(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get districts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetSectors
// @Summary List the sectors of a district
// @Tags Location
// @Produce json
// @Param id path integer true "District ID"
// @Success 200 {object} response.Data[[]dto.LocationResponse]
// @Failure 400 {object} response.Error
// @Router /v1/locations/districts/{id}/sectors [get]
func (handler *Handler) GetSectors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSectors")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetSectors(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sectors")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil {
		return 0, failure.BadRequestFromString("id must be a number") // nolint:wrapcheck
	}

	return id, nil
}
