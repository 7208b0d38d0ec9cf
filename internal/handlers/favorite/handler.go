package favorite

import (
	"net/http"
	"strings"

	"afristay/infras/otel"
	"afristay/internal/domains/favorite/model/dto"
	"afristay/internal/domains/favorite/service"
	"afristay/shared/constant"
	"afristay/shared/session"
	"afristay/shared/validator"
	"afristay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryIDs = "ids"

type Handler struct {
	service service.Favorite
	otel    otel.Otel
}

func New(service service.Favorite, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/favorites", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetFavorites)
		routerGroup.Post("/sync", handler.SyncFavorites)
		routerGroup.Post("/{listing_id}/toggle", handler.ToggleFavorite)
	})
}

// GetFavorites
// @Summary List favorite listing ids
// @Tags Favorite
// @Produce json
// @Param ids query string false "Comma separated listing ids to check"
// @Success 200 {object} response.Data[dto.FavoritesResponse]
// @Failure 401 {object} response.Error
// @Router /v1/favorites [get]
// @Security BearerAuth
func (handler *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFavorites")
	defer scope.End()

	var ids []string
	if raw := r.URL.Query().Get(queryIDs); raw != constant.Empty {
		ids = strings.Split(raw, ",")
	}

	res, err := handler.service.List(ctx, ids)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get favorites")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ToggleFavorite saves the listing, or removes it when already saved.
// @Summary Toggle a favorite
// @Tags Favorite
// @Produce json
// @Param listing_id path string true "Listing ID"
// @Success 200 {object} response.Data[dto.ToggleResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/favorites/{listing_id}/toggle [post]
// @Security BearerAuth
func (handler *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleFavorite")
	defer scope.End()

	res, err := handler.service.Toggle(ctx, chi.URLParam(r, constant.RequestParamListingID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle favorite")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SyncFavorites
// @Summary Merge favorites saved while signed out
// @Tags Favorite
// @Accept json
// @Produce json
// @Param request body dto.SyncRequest true "Pending listing ids"
// @Success 200 {object} response.Data[dto.SyncResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/favorites/sync [post]
// @Security BearerAuth
func (handler *Handler) SyncFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SyncFavorites")
	defer scope.End()

	var req dto.SyncRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Sync(ctx, session.FromContext(ctx).UserID, req.ListingIDs)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sync favorites")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
