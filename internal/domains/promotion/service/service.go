package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Promotion=MockPromotionService

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"afristay/config"
	"afristay/infras/otel"
	"afristay/infras/s3"
	listingModel "afristay/internal/domains/listing/model"
	listingRepo "afristay/internal/domains/listing/repository"
	"afristay/internal/domains/promotion/model"
	"afristay/internal/domains/promotion/model/dto"
	"afristay/internal/domains/promotion/repository"
	"afristay/shared"
	"afristay/shared/cache"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	"afristay/shared/session"
	"afristay/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const cacheGetAllPromotion = "promotion:gets"

type Promotion interface {
	Create(ctx context.Context, req dto.CreatePromotionRequest) (dto.PromotionResponse, error)
	// GetAll lists promotions running now.
	GetAll(ctx context.Context, req gDto.QueryParams, listingID string) (dto.GetPromotionsResponse, error)
	Update(ctx context.Context, id string, req dto.UpdatePromotionRequest) (dto.PromotionResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Promotion
	listings listingRepo.Listing
	s3       s3.S3
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Promotion, listings listingRepo.Listing, s3 s3.S3, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Promotion {
	return &serviceImpl{
		repo:     repo,
		listings: listings,
		s3:       s3,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePromotionRequest) (res dto.PromotionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	listing, err := s.listings.Get(ctx, shared.FilterByID(req.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return res, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	if !caller.IsAdmin() && !(caller.IsOwner() && listing.OwnerID == caller.UserID) {
		return res, failure.ResourceRestrictedError
	}

	startsAt, endsAt, err := req.Period()
	if err != nil {
		return res, err
	}

	var bannerURL *string

	if req.Banner != nil {
		url, err := s.upload(ctx, req.ListingID, req.Banner)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload promotion banner")

			return res, fmt.Errorf("failed to upload promotion banner: %w", err)
		}

		bannerURL = &url
	}

	promotion := req.ToModel(caller.Actor(), startsAt, endsAt, bannerURL)
	promotion.ListingTitle = listing.Title

	if err = s.repo.Insert(ctx, promotion); err != nil {
		log.Error().Err(err).Msg("failed to create promotion")

		s.removeBanner(ctx, bannerURL)

		return res, fmt.Errorf("failed to create promotion: %w", err)
	}

	res.FromModel(promotion)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, listingID string) (res dto.GetPromotionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	// day granularity keeps the cache key stable within a day
	now := timezone.Today()

	req.RestrictSort(model.TableName, constant.FieldCreatedAt, model.FieldStartsAt, model.FieldDiscountPercent)

	filter := dto.PromotionQuery{ListingID: listingID, Now: now}.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPromotion, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for promotions")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count promotions")

		return res, fmt.Errorf("failed to count promotions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotions")

		return res, fmt.Errorf("failed to get promotions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save promotions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdatePromotionRequest) (res dto.PromotionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	promotion, err := s.findManaged(ctx, id)
	if err != nil {
		return res, err
	}

	fields, err := req.ToFields(promotion, session.FromContext(ctx).Actor())
	if err != nil {
		return res, err
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update promotion")

		return res, fmt.Errorf("failed to update promotion: %w", err)
	}

	s.invalidate(ctx)

	updated, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	promotion, err := s.findManaged(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete promotion")

		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	s.removeBanner(ctx, promotion.BannerURL)
	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Promotion, error) {
	promotion, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotion")

		return promotion, fmt.Errorf("failed to get promotion: %w", err)
	}

	if promotion.ID == constant.Empty {
		return promotion, failure.NotFound("promotion not found") // nolint:wrapcheck
	}

	return promotion, nil
}

// findManaged loads the promotion for an admin or the owner of its listing.
func (s *serviceImpl) findManaged(ctx context.Context, id string) (model.Promotion, error) {
	promotion, err := s.find(ctx, id)
	if err != nil {
		return promotion, err
	}

	caller := session.FromContext(ctx)
	if !caller.IsAdmin() && promotion.OwnerID != caller.UserID {
		return promotion, failure.ResourceRestrictedError
	}

	return promotion, nil
}

func (s *serviceImpl) upload(ctx context.Context, directory string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to open %s: %w", header.Filename, err)
	}
	defer file.Close()

	return s.s3.UploadFile(ctx, s.cfg.Storage.PromotionImagesBucket, directory, file, header, uuid.NewString()+filepath.Ext(header.Filename)) //nolint:wrapcheck
}

func (s *serviceImpl) removeBanner(ctx context.Context, url *string) {
	if url == nil {
		return
	}

	bucket := s.cfg.Storage.PromotionImagesBucket

	objectName := s.s3.GetObjectNameFromURL(bucket, *url)
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, bucket, constant.Empty, objectName); err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("failed to delete promotion banner")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllPromotion)
	}()
}
