package listing

import (
	"net/http"
	"strconv"

	"afristay/infras/otel"
	"afristay/internal/domains/listing/model"
	"afristay/internal/domains/listing/model/dto"
	"afristay/internal/domains/listing/service"
	"afristay/shared"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	"afristay/shared/validator"
	"afristay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formImages = "images"
	formVideos = "videos"

	queryProvinceID = "province_id"
	queryDistrictID = "district_id"
	querySectorID   = "sector_id"
	querySearch     = "search"
)

type Handler struct {
	service service.Listing
	otel    otel.Otel
}

func New(service service.Listing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/listings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateListing)
		routerGroup.Get("/", handler.GetListings)
		routerGroup.Get("/mine", handler.GetMyListings)
		routerGroup.Get("/{id}", handler.GetListingByID)
		routerGroup.Patch("/{id}", handler.UpdateListing)
		routerGroup.Delete("/{id}", handler.DeleteListing)
		routerGroup.Post("/{id}/approve", handler.ApproveListing)
		routerGroup.Post("/{id}/reject", handler.RejectListing)
		routerGroup.Post("/{id}/availability", handler.ToggleAvailability)
	})
}

// CreateListing handles the creation of a new listing request.
// @Summary Create a listing
// @Description Submit a listing for admin approval with optional images and videos.
// @Tags Listing
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param price formData number true "Nightly price"
// @Param currency formData string false "ISO currency, defaults to RWF"
// @Param category formData string true "real_estate or vehicle"
// @Param address formData string false "Street address"
// @Param province_id formData integer false "Province"
// @Param district_id formData integer false "District"
// @Param sector_id formData integer false "Sector"
// @Param images formData file false "Images"
// @Param videos formData file false "Videos"
// @Success 201 {object} response.Data[dto.ListingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings [post]
// @Security BearerAuth
func (handler *Handler) CreateListing(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateListing")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.CreateListingRequest{
		Title:       request.FormValue(model.FieldTitle),
		Description: request.FormValue(model.FieldDescription),
		Currency:    request.FormValue(model.FieldCurrency),
		Category:    request.FormValue(model.FieldCategory),
		Address:     request.FormValue(model.FieldAddress),
		ProvinceID:  shared.ConvertStringToInt64(request.FormValue(model.FieldProvinceID)),
		DistrictID:  shared.ConvertStringToInt64(request.FormValue(model.FieldDistrictID)),
		SectorID:    shared.ConvertStringToInt64(request.FormValue(model.FieldSectorID)),
		Images:      request.MultipartForm.File[formImages],
		Videos:      request.MultipartForm.File[formVideos],
	}

	if price, err := strconv.ParseFloat(request.FormValue(model.FieldPrice), 64); err == nil {
		req.Price = price
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create listing")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Listing created " + res.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetListings returns approved listings, or every listing for admins.
// @Summary Get listings
// @Tags Listing
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param category query string false "real_estate or vehicle"
// @Param status query string false "Admin only: pending or approved"
// @Param availability_status query string false "available, unavailable or booked"
// @Param search query string false "Title search"
// @Param owner_id query string false "Owner"
// @Param province_id query integer false "Province"
// @Param district_id query integer false "District"
// @Param sector_id query integer false "Sector"
// @Success 200 {object} response.Data[dto.GetListingsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/listings [get]
func (handler *Handler) GetListings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetListings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetAll(ctx, queryParams, listingQuery(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get listings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyListings returns the caller's own listings in every status.
// @Summary Get my listings
// @Tags Listing
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "pending or approved"
// @Success 200 {object} response.Data[dto.GetListingsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyListings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyListings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetMine(ctx, queryParams, listingQuery(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own listings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetListingByID returns one listing with its media.
// @Summary Get a listing
// @Tags Listing
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Data[dto.ListingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id} [get]
func (handler *Handler) GetListingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetListingByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get listing")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateListing updates the descriptive fields of a listing.
// @Summary Update a listing
// @Tags Listing
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body dto.UpdateListingRequest true "Fields to change"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/listings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateListing")
	defer scope.End()

	var req dto.UpdateListingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update listing")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Listing updated successfully")
}

// DeleteListing deletes a listing that has no active booking.
// @Summary Delete a listing
// @Tags Listing
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/listings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteListing")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete listing")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Listing deleted successfully")
}

// ApproveListing publishes a pending listing.
// @Summary Approve a listing request
// @Tags Listing
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/listings/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveListing")
	defer scope.End()

	if err := handler.service.Approve(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve listing")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Listing approved")
}

// RejectListing discards a pending listing request.
// @Summary Reject a listing request
// @Tags Listing
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/listings/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectListing")
	defer scope.End()

	if err := handler.service.Reject(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject listing")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Listing request rejected")
}

// ToggleAvailability flips a listing between available and unavailable.
// @Summary Toggle listing availability
// @Tags Listing
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/listings/{id}/availability [post]
// @Security BearerAuth
func (handler *Handler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleAvailability")
	defer scope.End()

	res, err := handler.service.ToggleAvailability(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle listing availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func listingQuery(r *http.Request) dto.ListingQuery {
	query := r.URL.Query()

	return dto.ListingQuery{
		Category:     query.Get(model.FieldCategory),
		Status:       query.Get(model.FieldStatus),
		Availability: query.Get(model.FieldAvailability),
		Search:       query.Get(querySearch),
		OwnerID:      query.Get(model.FieldOwnerID),
		ProvinceID:   shared.ConvertStringToInt64(query.Get(queryProvinceID)),
		DistrictID:   shared.ConvertStringToInt64(query.Get(queryDistrictID)),
		SectorID:     shared.ConvertStringToInt64(query.Get(querySectorID)),
	}
}
