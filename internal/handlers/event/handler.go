package event

import (
	"net/http"

	"afristay/infras/otel"
	"afristay/internal/domains/event/model"
	"afristay/internal/domains/event/model/dto"
	"afristay/internal/domains/event/service"
	"afristay/shared"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	"afristay/shared/timezone"
	"afristay/shared/validator"
	"afristay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formBanner    = "banner"
	queryUpcoming = "upcoming"
)

type Handler struct {
	service service.Event
	otel    otel.Otel
}

func New(service service.Event, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/events", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEvent)
		routerGroup.Get("/", handler.GetEvents)
		routerGroup.Delete("/{id}", handler.DeleteEvent)
	})
}

// CreateEvent
// @Summary Create an event
// @Tags Event
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param event_date formData string true "YYYY-MM-DD"
// @Param province_id formData integer false "Province"
// @Param district_id formData integer false "District"
// @Param sector_id formData integer false "Sector"
// @Param banner formData file false "Banner image"
// @Success 201 {object} response.Data[dto.EventResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/events [post]
// @Security BearerAuth
func (handler *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEvent")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.CreateEventRequest{
		Title:      r.FormValue(model.FieldTitle),
		EventDate:  r.FormValue(model.FieldEventDate),
		ProvinceID: shared.ConvertStringToInt64(r.FormValue(model.FieldProvinceID)),
		DistrictID: shared.ConvertStringToInt64(r.FormValue(model.FieldDistrictID)),
		SectorID:   shared.ConvertStringToInt64(r.FormValue(model.FieldSectorID)),
	}

	if description := r.FormValue(model.FieldDescription); description != constant.Empty {
		req.Description = &description
	}

	if banners := r.MultipartForm.File[formBanner]; len(banners) > 0 {
		req.Banner = banners[0]
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create event")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Event created " + res.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetEvents
// @Summary List events
// @Tags Event
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param upcoming query bool false "Hide past events"
// @Param province_id query integer false "Province"
// @Success 200 {object} response.Data[dto.GetEventsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/events [get]
func (handler *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEvents")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := dto.EventQuery{
		ProvinceID: shared.ConvertStringToInt64(r.URL.Query().Get(model.FieldProvinceID)),
	}

	if upcoming := shared.ConvertStringToBool(r.URL.Query().Get(queryUpcoming)); upcoming != nil && *upcoming {
		today := timezone.Today()
		query.From = &today
	}

	res, err := handler.service.GetAll(ctx, queryParams, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get events")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteEvent
// @Summary Delete an event
// @Tags Event
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/events/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEvent")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete event")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Event deleted")
}
