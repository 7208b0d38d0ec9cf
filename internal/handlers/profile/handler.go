package profile

import (
	"net/http"

	"afristay/infras/otel"
	"afristay/internal/domains/profile/model"
	"afristay/internal/domains/profile/model/dto"
	"afristay/internal/domains/profile/service"
	"afristay/shared"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/validator"
	"afristay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const querySearch = "search"

type Handler struct {
	service service.Profile
	otel    otel.Otel
}

func New(service service.Profile, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/profiles", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetProfiles)
		routerGroup.Get("/{id}", handler.GetProfileByID)
		routerGroup.Patch("/{id}/role", handler.UpdateRole)
		routerGroup.Patch("/{id}/ban", handler.SetBanned)
		routerGroup.Delete("/{id}", handler.DeleteProfile)
	})
}

// GetProfiles retrieves accounts for the admin console.
// @Summary Get all profiles
// @Description Search by email or name, filter by role and ban flag.
// @Tags Profile
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Email or name contains"
// @Param role query string false "user, owner or admin"
// @Param banned query bool false "Ban flag"
// @Success 200 {object} response.Data[dto.GetProfilesResponse] "List of profiles"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profiles [get]
// @Security BearerAuth
func (handler *Handler) GetProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfiles")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	profiles, err := handler.service.GetAll(ctx, queryParams, dto.ProfileQuery{
		Search: query.Get(querySearch),
		Role:   query.Get(model.FieldRole),
		Banned: shared.ConvertStringToBool(query.Get(model.FieldBanned)),
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get profiles")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, profiles)
}

// GetProfileByID
// @Summary Get a profile by ID
// @Tags Profile
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} response.Data[dto.ProfileResponse] "Profile details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profiles/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetProfileByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfileByID")
	defer scope.End()

	profile, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get profile by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, profile)
}

// UpdateRole
// @Summary Change a profile's role
// @Tags Profile
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/profiles/{id}/role [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRole")
	defer scope.End()

	req := dto.UpdateRoleRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateRole(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update role")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Profile role updated to " + req.Role)

	response.WithMessage(w, http.StatusOK, "Role updated")
}

// SetBanned
// @Summary Ban or unban a profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body dto.SetBannedRequest true "Ban flag"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/profiles/{id}/ban [patch]
// @Security BearerAuth
func (handler *Handler) SetBanned(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetBanned")
	defer scope.End()

	req := dto.SetBannedRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetBanned(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set ban flag")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Ban flag updated")
}

// DeleteProfile
// @Summary Delete a profile
// @Tags Profile
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/profiles/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProfile")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Profile deleted")

	response.WithMessage(w, http.StatusOK, "Profile deleted")
}
