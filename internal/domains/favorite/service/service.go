package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Favorite=MockFavoriteService

import (
	"context"
	"fmt"
	"slices"

	"afristay/infras/otel"
	"afristay/internal/domains/favorite/model"
	"afristay/internal/domains/favorite/model/dto"
	"afristay/internal/domains/favorite/repository"
	listingModel "afristay/internal/domains/listing/model"
	listingRepo "afristay/internal/domains/listing/repository"
	"afristay/shared"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	"afristay/shared/session"

	"github.com/rs/zerolog/log"
)

type Favorite interface {
	Toggle(ctx context.Context, listingID string) (dto.ToggleResponse, error)
	// List returns the caller's favorites, restricted to listingIDs when any are given.
	List(ctx context.Context, listingIDs []string) (dto.FavoritesResponse, error)
	// Sync merges listing ids saved while signed out into the user's favorites.
	Sync(ctx context.Context, userID string, listingIDs []string) (dto.SyncResponse, error)
}

type serviceImpl struct {
	repo     repository.Favorite
	listings listingRepo.Listing
	otel     otel.Otel
}

func New(repo repository.Favorite, listings listingRepo.Listing, otel otel.Otel) Favorite {
	return &serviceImpl{
		repo:     repo,
		listings: listings,
		otel:     otel,
	}
}

func (s *serviceImpl) Toggle(ctx context.Context, listingID string) (res dto.ToggleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Toggle")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)
	if caller.UserID == constant.Empty {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	filter := pair(caller.UserID, listingID)
	res.ListingID = listingID

	saved, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check favorite")

		return res, fmt.Errorf("failed to check favorite: %w", err)
	}

	if saved {
		if err = s.repo.Delete(ctx, filter); err != nil {
			log.Error().Err(err).Msg("failed to remove favorite")

			return res, fmt.Errorf("failed to remove favorite: %w", err)
		}

		return res, nil
	}

	exists, err := s.listings.Exist(ctx, shared.FilterByID(listingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check listing")

		return res, fmt.Errorf("failed to check listing: %w", err)
	}

	if !exists {
		return res, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	if _, err = s.repo.InsertIgnoreConflict(ctx, dto.NewFavorite(caller.UserID, listingID), model.FieldUserID, model.FieldListingID); err != nil {
		log.Error().Err(err).Msg("failed to save favorite")

		return res, fmt.Errorf("failed to save favorite: %w", err)
	}

	res.Saved = true

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, listingIDs []string) (res dto.FavoritesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)
	if caller.UserID == constant.Empty {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	models, err := s.list(ctx, caller.UserID, listingIDs)
	if err != nil {
		return res, err
	}

	res.FromModels(models)

	return res, nil
}

// Sync inserts each pending id with ON CONFLICT DO NOTHING, so the result is the union of both
// sets without duplicates. Ids of listings that no longer exist are dropped.
func (s *serviceImpl) Sync(ctx context.Context, userID string, listingIDs []string) (res dto.SyncResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sync")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if userID == constant.Empty {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	pending := unique(listingIDs)

	if len(pending) > 0 {
		existing, err := s.listings.GetAll(ctx, gDto.QueryParams{}, shared.FilterAnd(gDto.Filter{
			Field:    listingModel.FieldID,
			Value:    pending,
			Operator: gDto.FilterOperatorIn,
			Table:    listingModel.TableName,
		}), listingModel.FieldID)
		if err != nil {
			log.Error().Err(err).Msg("failed to get pending favorite listings")

			return res, fmt.Errorf("failed to get pending favorite listings: %w", err)
		}

		for _, listing := range existing {
			if _, err := s.repo.InsertIgnoreConflict(ctx, dto.NewFavorite(userID, listing.ID), model.FieldUserID, model.FieldListingID); err != nil {
				log.Error().Err(err).Str("listingID", listing.ID).Msg("failed to sync favorite")

				return res, fmt.Errorf("failed to sync favorite: %w", err)
			}
		}
	}

	models, err := s.list(ctx, userID, nil)
	if err != nil {
		return res, err
	}

	var favorites dto.FavoritesResponse
	favorites.FromModels(models)

	res.ListingIDs = favorites.ListingIDs
	res.ClearPending = true

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, userID string, listingIDs []string) ([]model.Favorite, error) {
	filter := shared.FilterAnd(shared.FilterEq(model.FieldUserID, model.TableName, userID))

	if len(listingIDs) > 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldListingID,
			Value:    unique(listingIDs),
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		})
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{
		SortBy:  model.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get favorites")

		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	return models, nil
}

func pair(userID, listingID string) gDto.FilterGroup {
	return shared.FilterAnd(
		shared.FilterEq(model.FieldUserID, model.TableName, userID),
		shared.FilterEq(model.FieldListingID, model.TableName, listingID),
	)
}

func unique(ids []string) []string {
	res := make([]string, 0, len(ids))

	for _, id := range ids {
		if id != constant.Empty && !slices.Contains(res, id) {
			res = append(res, id)
		}
	}

	return res
}
