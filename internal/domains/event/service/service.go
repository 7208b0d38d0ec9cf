package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Event=MockEventService

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"afristay/config"
	"afristay/infras/otel"
	"afristay/infras/s3"
	"afristay/internal/domains/event/model"
	"afristay/internal/domains/event/model/dto"
	"afristay/internal/domains/event/repository"
	locationService "afristay/internal/domains/location/service"
	"afristay/shared"
	"afristay/shared/cache"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	gRepo "afristay/shared/repository"
	"afristay/shared/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const cacheGetAllEvent = "event:gets"

type Event interface {
	Create(ctx context.Context, req dto.CreateEventRequest) (dto.EventResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, query dto.EventQuery) (dto.GetEventsResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Event
	location locationService.Location
	s3       s3.S3
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Event, location locationService.Location, s3 s3.S3, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Event {
	return &serviceImpl{
		repo:     repo,
		location: location,
		s3:       s3,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEventRequest) (res dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)
	if !caller.IsAdmin() {
		return res, failure.ForbiddenError
	}

	date, err := req.Date()
	if err != nil {
		return res, err
	}

	if (req.SectorID != nil && req.DistrictID == nil) || (req.DistrictID != nil && req.ProvinceID == nil) {
		return res, failure.BadRequestFromString("location must include every parent level") // nolint:wrapcheck
	}

	if err = locationService.ValidateHierarchy(ctx, s.location, req.ProvinceID, req.DistrictID, req.SectorID); err != nil {
		return res, err //nolint:wrapcheck
	}

	location, err := s.location.ResolveName(ctx, req.ProvinceID, req.DistrictID, req.SectorID)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve event location")

		return res, fmt.Errorf("failed to resolve event location: %w", err)
	}

	var bannerURL *string

	if req.Banner != nil {
		url, err := s.upload(ctx, req.Banner)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload event banner")

			return res, fmt.Errorf("failed to upload event banner: %w", err)
		}

		bannerURL = &url
	}

	event := req.ToModel(caller.Actor(), location, date, bannerURL)

	if err = s.repo.Insert(ctx, event); err != nil {
		log.Error().Err(err).Msg("failed to create event")

		s.removeBanner(ctx, bannerURL)

		if gRepo.IsForeignKeyViolation(err) {
			return res, failure.BadRequestFromString("unknown province, district or sector") // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to create event: %w", err)
	}

	res.FromModel(event)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, query dto.EventQuery) (res dto.GetEventsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.SortBy == constant.Empty {
		req.SortBy = model.FieldEventDate
		req.SortDir = gDto.SortDirAsc
	}

	req.RestrictSort(model.TableName, model.FieldEventDate, constant.FieldCreatedAt, model.FieldTitle)

	filter := query.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEvent, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for events")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count events")

		return res, fmt.Errorf("failed to count events: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get events")

		return res, fmt.Errorf("failed to get events: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save events to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !session.FromContext(ctx).IsAdmin() {
		return failure.ForbiddenError
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	event, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get event")

		return fmt.Errorf("failed to get event: %w", err)
	}

	if event.ID == constant.Empty {
		return failure.NotFound("event not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete event")

		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.removeBanner(ctx, event.BannerURL)
	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) upload(ctx context.Context, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to open %s: %w", header.Filename, err)
	}
	defer file.Close()

	return s.s3.UploadFile(ctx, s.cfg.Storage.EventImagesBucket, constant.Empty, file, header, uuid.NewString()+filepath.Ext(header.Filename)) //nolint:wrapcheck
}

func (s *serviceImpl) removeBanner(ctx context.Context, url *string) {
	if url == nil {
		return
	}

	bucket := s.cfg.Storage.EventImagesBucket

	objectName := s.s3.GetObjectNameFromURL(bucket, *url)
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, bucket, constant.Empty, objectName); err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("failed to delete event banner")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllEvent)
	}()
}
