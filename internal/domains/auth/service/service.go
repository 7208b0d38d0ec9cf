package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"

	"afristay/config"
	"afristay/infras/jwt"
	"afristay/infras/otel"
	"afristay/internal/domains/auth/model/dto"
	favoriteService "afristay/internal/domains/favorite/service"
	profileModel "afristay/internal/domains/profile/model"
	profileDto "afristay/internal/domains/profile/model/dto"
	profileRepo "afristay/internal/domains/profile/repository"
	"afristay/shared"
	"afristay/shared/cache"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	"afristay/shared/password"
	gRepo "afristay/shared/repository"
	"afristay/shared/session"
	"afristay/shared/timezone"

	"github.com/rs/zerolog/log"
)

const invalidCredentials = "invalid email or password"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	// Logout revokes the caller's access token until it would have expired anyway.
	Logout(ctx context.Context) error
	Me(ctx context.Context) (profileDto.ProfileResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
	UpdateEmail(ctx context.Context, req dto.UpdateEmailRequest) error
}

type serviceImpl struct {
	profiles   profileRepo.Profile
	favorites  favoriteService.Favorite
	jwtService jwt.JWT
	cache      cache.RedisCache
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	profiles profileRepo.Profile,
	favorites favoriteService.Favorite,
	jwt jwt.JWT,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) Auth {
	return &serviceImpl{
		profiles:   profiles,
		favorites:  favorites,
		jwtService: jwt,
		cache:      cache,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exists, err := s.profiles.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if profile exists")

		return fmt.Errorf("failed to check if profile exists: %w", err)
	}

	if exists {
		return failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.profiles.Insert(ctx, req.ToModel(hashedPassword)); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return failure.Conflict("email already registered") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create profile")

		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := emailFilter(req.Email)

	profile, err := s.profiles.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized(invalidCredentials) // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, profile.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(invalidCredentials) // nolint:wrapcheck
	}

	if profile.Banned {
		log.Warn().Str("userID", profile.ID).Msg("login attempt on banned account")

		return res, failure.Forbidden("account is banned") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, profile.ID, profile.Email, profile.Role.String())
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}, profile.ID)

	if err := s.profiles.Update(ctx, updatedFields, filter); err != nil {
		log.Warn().Err(err).Str("userID", profile.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)
	res.FromProfile(profile)

	if len(req.PendingFavorites) > 0 {
		synced, err := s.favorites.Sync(ctx, profile.ID, req.PendingFavorites)
		if err != nil {
			log.Error().Err(err).Str("userID", profile.ID).Msg("failed to sync pending favorites")

			return res, nil
		}

		res.Favorites = synced.ListingIDs
		res.ClearPending = synced.ClearPending
	}

	return res, nil
}

// RefreshToken reissues the pair from the current profile, so role changes and bans take effect on refresh.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	profile, err := s.find(ctx, claims.UserID)
	if err != nil {
		if failure.HasCode(err, http.StatusNotFound) {
			return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
		}

		return res, err
	}

	if profile.Banned {
		return res, failure.Forbidden("account is banned") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, profile.ID, profile.Email, profile.Role.String())
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)
	if caller.TokenID == constant.Empty {
		return failure.Unauthorized("login required") // nolint:wrapcheck
	}

	key := shared.BuildCacheKey(constant.CacheKeyRevokedToken, caller.TokenID)

	if err = s.cache.Save(ctx, key, caller.UserID, s.cfg.JWT.AccessExpireMin*60); err != nil {
		log.Error().Err(err).Msg("failed to revoke access token")

		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	return nil
}

func (s *serviceImpl) Me(ctx context.Context) (res profileDto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)
	if caller.UserID == constant.Empty {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	profile, err := s.find(ctx, caller.UserID)
	if err != nil {
		return res, err
	}

	res.FromModel(profile)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	profile, err := s.find(ctx, caller.UserID)
	if err != nil {
		return err
	}

	if err := password.Verify(req.CurrentPassword, profile.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, caller.Actor())

	if err = s.profiles.Update(ctx, updatedFields, shared.FilterByID(profile.ID, profileModel.FieldID, profileModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) UpdateEmail(ctx context.Context, req dto.UpdateEmailRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateEmail")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	profile, err := s.find(ctx, caller.UserID)
	if err != nil {
		return err
	}

	if err := password.Verify(req.Password, profile.Password); err != nil {
		return failure.BadRequestFromString("password is incorrect") // nolint:wrapcheck
	}

	if profile.Email == req.Email {
		return nil
	}

	taken, err := s.profiles.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check email")

		return fmt.Errorf("failed to check email: %w", err)
	}

	if taken {
		return failure.Conflict("email already registered") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(dto.UpdateEmailModel{Email: req.Email}, caller.Actor())

	if err = s.profiles.Update(ctx, updatedFields, shared.FilterByID(profile.ID, profileModel.FieldID, profileModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update email")

		return fmt.Errorf("failed to update email: %w", err)
	}

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (profileModel.Profile, error) {
	if id == constant.Empty {
		return profileModel.Profile{}, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	profile, err := s.profiles.Get(ctx, shared.FilterByID(id, profileModel.FieldID, profileModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return profile, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return profile, failure.NotFound("profile not found") // nolint:wrapcheck
	}

	return profile, nil
}

func emailFilter(email string) gDto.FilterGroup {
	return shared.FilterAnd(shared.FilterEq(profileModel.FieldEmail, profileModel.TableName, email))
}
