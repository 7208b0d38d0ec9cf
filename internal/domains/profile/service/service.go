package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Profile=MockProfileService

import (
	"context"
	"fmt"

	"afristay/config"
	"afristay/infras/otel"
	"afristay/internal/domains/profile/model"
	"afristay/internal/domains/profile/model/dto"
	"afristay/internal/domains/profile/repository"
	"afristay/shared"
	"afristay/shared/cache"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	"afristay/shared/session"
	"afristay/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetProfile    = "profile:get"
	cacheGetAllProfile = "profile:gets"
	cacheCountProfile  = "profile:count"
)

// Profile is the admin view over accounts.
type Profile interface {
	GetAll(ctx context.Context, req gDto.QueryParams, query dto.ProfileQuery) (dto.GetProfilesResponse, error)
	Get(ctx context.Context, id string) (dto.ProfileResponse, error)
	UpdateRole(ctx context.Context, id string, req dto.UpdateRoleRequest) error
	SetBanned(ctx context.Context, id string, req dto.SetBannedRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Profile
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Profile, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Profile {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, query dto.ProfileQuery) (res dto.GetProfilesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req.RestrictSort(model.TableName, constant.FieldCreatedAt, model.FieldEmail, model.FieldFullName, model.FieldLastLogin)

	filter := query.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProfile, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for profiles")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count profiles")

		return res, fmt.Errorf("failed to count profiles: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get profiles")

		return res, fmt.Errorf("failed to get profiles: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profiles to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetProfile, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for profile")

		return res, nil
	}

	profile, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(profile)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profile to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateRole(ctx context.Context, id string, req dto.UpdateRoleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRole")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	if caller.UserID == id {
		return failure.BadRequestFromString("you cannot change your own role") // nolint:wrapcheck
	}

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(dto.UpdateRoleModel{Role: req.ToRole()}, caller.Actor())

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update profile role")

		return fmt.Errorf("failed to update profile role: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) SetBanned(ctx context.Context, id string, req dto.SetBannedRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetBanned")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	if caller.UserID == id {
		return failure.BadRequestFromString("you cannot ban yourself") // nolint:wrapcheck
	}

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	updatedFields := map[string]any{
		model.FieldBanned:        *req.Banned,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: caller.Actor(),
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update profile ban flag")

		return fmt.Errorf("failed to update profile ban flag: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if session.FromContext(ctx).UserID == id {
		return failure.BadRequestFromString("you cannot delete your own account here") // nolint:wrapcheck
	}

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete profile")

		return fmt.Errorf("failed to delete profile: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Profile, error) {
	profile, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return profile, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == "" {
		return profile, failure.NotFound("profile not found") // nolint:wrapcheck
	}

	return profile, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProfile, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete profile cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProfile)
		shared.InvalidateCaches(c, s.cache, cacheCountProfile)
	}()
}
