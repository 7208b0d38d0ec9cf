package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"afristay/config"
	"afristay/infras/otel"
	"afristay/infras/s3"
	"afristay/internal/domains/listing/model"
	"afristay/internal/domains/listing/model/dto"
	"afristay/internal/domains/listing/repository"
	"afristay/shared"
	"afristay/shared/cache"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	gRepo "afristay/shared/repository"
	"afristay/shared/session"
	"afristay/shared/timezone"
	"afristay/shared/transaction"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetListing    = model.CachePrefix + ":get"
	cacheGetAllListing = model.CachePrefix + ":gets"

	argExpectedStatus       = "expected_status"
	argExpectedAvailability = "expected_availability"
)

type Listing interface {
	Create(ctx context.Context, req dto.CreateListingRequest) (dto.ListingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, query dto.ListingQuery) (dto.GetListingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams, query dto.ListingQuery) (dto.GetListingsResponse, error)
	Get(ctx context.Context, id string) (dto.ListingResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateListingRequest) error
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	ToggleAvailability(ctx context.Context, id string) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo   repository.Listing
	images repository.Images
	videos repository.Videos
	tx     transaction.Transactor
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
	s3     s3.S3
}

func New(
	repo repository.Listing,
	images repository.Images,
	videos repository.Videos,
	tx transaction.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Listing {
	return &serviceImpl{
		repo:   repo,
		images: images,
		videos: videos,
		tx:     tx,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
		s3:     s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateListingRequest) (res dto.ListingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)
	if !caller.IsOwner() && !caller.IsAdmin() {
		return res, failure.Forbidden("only owners can publish listings") // nolint:wrapcheck
	}

	listing := req.ToModel(caller.UserID, s.cfg.Booking.DefaultCurrency)

	imageURLs, err := s.upload(ctx, s.cfg.Storage.ListingImagesBucket, listing.ID, req.Images)
	if err != nil {
		return res, err
	}

	videoURLs, err := s.upload(ctx, s.cfg.Storage.ListingVideosBucket, listing.ID, req.Videos)
	if err != nil {
		s.removeObjects(ctx, s.cfg.Storage.ListingImagesBucket, imageURLs)

		return res, err
	}

	images := dto.NewMedia(listing.ID, caller.UserID, imageURLs)
	videos := dto.NewMedia(listing.ID, caller.UserID, videoURLs)

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, listing); err != nil {
			return fmt.Errorf("failed to insert listing: %w", err)
		}

		if len(images) > 0 {
			if err := s.images.InsertBulkTx(ctx, tx, images); err != nil {
				return fmt.Errorf("failed to insert listing images: %w", err)
			}
		}

		if len(videos) > 0 {
			if err := s.videos.InsertBulkTx(ctx, tx, videos); err != nil {
				return fmt.Errorf("failed to insert listing videos: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create listing")

		s.removeObjects(ctx, s.cfg.Storage.ListingImagesBucket, imageURLs)
		s.removeObjects(ctx, s.cfg.Storage.ListingVideosBucket, videoURLs)

		if gRepo.IsForeignKeyViolation(err) {
			return res, failure.BadRequestFromString("unknown province, district or sector") // nolint:wrapcheck
		}

		return res, err
	}

	res.FromModel(listing)
	res.WithMedia(images, videos)

	s.invalidate(ctx, constant.Empty)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, query dto.ListingQuery) (res dto.GetListingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !session.FromContext(ctx).IsAdmin() {
		query.Status = string(model.StatusApproved)
	}

	return s.list(ctx, req, query)
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams, query dto.ListingQuery) (res dto.GetListingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)
	if caller.UserID == constant.Empty {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	query.OwnerID = caller.UserID

	return s.list(ctx, req, query)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, query dto.ListingQuery) (res dto.GetListingsResponse, err error) {
	req.RestrictSort(model.TableName, constant.FieldCreatedAt, model.FieldPrice, model.FieldTitle)

	filter := query.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllListing, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for listings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count listings")

		return res, fmt.Errorf("failed to count listings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get listings")

		return res, fmt.Errorf("failed to get listings: %w", err)
	}

	var images []model.Media

	if len(models) > 0 {
		ids := make([]string, len(models))
		for i, listing := range models {
			ids[i] = listing.ID
		}

		images, err = s.images.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
			Filters: []any{gDto.Filter{Field: model.FieldListingID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.ImageTableName}},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to get listing images")

			return res, fmt.Errorf("failed to get listing images: %w", err)
		}
	}

	res.FromModels(models, images, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save listings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ListingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)
	cacheKey := shared.BuildCacheKey(cacheGetListing, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for listing")
	} else {
		res, err = s.load(ctx, id)
		if err != nil {
			return res, err
		}

		go func(res dto.ListingResponse) {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save listing to cache")
			}
		}(res)
	}

	if res.Status != string(model.StatusApproved) && !caller.IsAdmin() && res.OwnerID != caller.UserID {
		return dto.ListingResponse{}, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (res dto.ListingResponse, err error) {
	listing, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	images, err := s.media(ctx, s.images, model.ImageTableName, id)
	if err != nil {
		return res, err
	}

	videos, err := s.media(ctx, s.videos, model.VideoTableName, id)
	if err != nil {
		return res, err
	}

	res.FromModel(listing)
	res.WithMedia(images, videos)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateListingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	listing, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !caller.IsAdmin() && !listing.OwnedBy(caller.UserID) {
		return failure.ResourceRestrictedError
	}

	updatedFields := shared.TransformFields(req.Normalize(), caller.Actor())

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update listing")

		return fmt.Errorf("failed to update listing: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	listing, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !caller.IsAdmin() && !listing.OwnedBy(caller.UserID) {
		return failure.ResourceRestrictedError
	}

	if listing.Availability == model.AvailabilityBooked {
		return failure.Conflict("listing has an active booking") // nolint:wrapcheck
	}

	return s.remove(ctx, id, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)
	if !caller.IsAdmin() {
		return failure.ForbiddenError
	}

	swapped, err := s.repo.CompareAndSwap(ctx, map[string]any{
		model.FieldStatus:        model.StatusApproved,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: caller.Actor(),
	}, shared.FilterAnd(
		shared.FilterEq(model.FieldID, model.TableName, id),
		gDto.Filter{ArgName: argExpectedStatus, Field: model.FieldStatus, Value: model.StatusPending, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to approve listing")

		return fmt.Errorf("failed to approve listing: %w", err)
	}

	if !swapped {
		if _, err = s.find(ctx, id); err != nil {
			return err
		}

		return failure.Conflict("listing is already approved") // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

// Reject discards a pending listing request together with its media.
func (s *serviceImpl) Reject(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !session.FromContext(ctx).IsAdmin() {
		return failure.ForbiddenError
	}

	listing, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if listing.Status != model.StatusPending {
		return failure.Conflict("only pending listings can be rejected") // nolint:wrapcheck
	}

	return s.remove(ctx, id, shared.FilterAnd(
		shared.FilterEq(model.FieldID, model.TableName, id),
		shared.FilterEq(model.FieldStatus, model.TableName, model.StatusPending),
	))
}

func (s *serviceImpl) ToggleAvailability(ctx context.Context, id string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleAvailability")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	listing, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !caller.IsAdmin() && !listing.OwnedBy(caller.UserID) {
		return res, failure.ResourceRestrictedError
	}

	next, ok := listing.Availability.Toggle()
	if !ok {
		return res, failure.Conflict("listing is booked and cannot be toggled") // nolint:wrapcheck
	}

	swapped, err := s.repo.CompareAndSwap(ctx, map[string]any{
		model.FieldAvailability:  next,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: caller.Actor(),
	}, shared.FilterAnd(
		shared.FilterEq(model.FieldID, model.TableName, id),
		gDto.Filter{ArgName: argExpectedAvailability, Field: model.FieldAvailability, Value: listing.Availability, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to toggle listing availability")

		return res, fmt.Errorf("failed to toggle listing availability: %w", err)
	}

	if !swapped {
		return res, failure.Conflict("listing availability changed, reload and retry") // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return dto.AvailabilityResponse{ID: id, Availability: string(next)}, nil
}

func (s *serviceImpl) remove(ctx context.Context, id string, filter gDto.FilterGroup) error {
	images, err := s.media(ctx, s.images, model.ImageTableName, id)
	if err != nil {
		return err
	}

	videos, err := s.media(ctx, s.videos, model.VideoTableName, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete listing")

		return fmt.Errorf("failed to delete listing: %w", err)
	}

	s.removeObjects(ctx, s.cfg.Storage.ListingImagesBucket, urls(images))
	s.removeObjects(ctx, s.cfg.Storage.ListingVideosBucket, urls(videos))

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Listing, error) {
	listing, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return listing, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return listing, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	return listing, nil
}

func (s *serviceImpl) media(ctx context.Context, repo repository.Media, table, id string) ([]model.Media, error) {
	media, err := repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(id, model.FieldListingID, table))
	if err != nil {
		log.Error().Err(err).Str("table", table).Msg("failed to get listing media")

		return nil, fmt.Errorf("failed to get listing media: %w", err)
	}

	return media, nil
}

// upload stores files under the listing directory and returns their public urls. On failure the
// files uploaded so far are removed again.
func (s *serviceImpl) upload(ctx context.Context, bucket, directory string, files []*multipart.FileHeader) ([]string, error) {
	uploaded := make([]string, 0, len(files))

	for _, header := range files {
		url, err := s.uploadOne(ctx, bucket, directory, header)
		if err != nil {
			log.Error().Err(err).Str("bucket", bucket).Msg("failed to upload listing media")

			s.removeObjects(ctx, bucket, uploaded)

			return nil, fmt.Errorf("failed to upload listing media: %w", err)
		}

		uploaded = append(uploaded, url)
	}

	return uploaded, nil
}

func (s *serviceImpl) uploadOne(ctx context.Context, bucket, directory string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to open %s: %w", header.Filename, err)
	}
	defer file.Close()

	return s.s3.UploadFile(ctx, bucket, directory, file, header, uuid.NewString()+filepath.Ext(header.Filename)) //nolint:wrapcheck
}

func (s *serviceImpl) removeObjects(ctx context.Context, bucket string, objectURLs []string) {
	for _, url := range objectURLs {
		objectName := s.s3.GetObjectNameFromURL(bucket, url)
		if objectName == constant.Empty {
			continue
		}

		if err := s.s3.DeleteFile(ctx, bucket, constant.Empty, objectName); err != nil {
			log.Error().Err(err).Str("bucket", bucket).Str("object", objectName).Msg("failed to delete listing media")
		}
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetListing, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete listing cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllListing)
	}()
}

func urls(media []model.Media) []string {
	res := make([]string, len(media))
	for i, m := range media {
		res[i] = m.URL
	}

	return res
}
