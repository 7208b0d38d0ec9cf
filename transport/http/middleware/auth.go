package middleware

import (
	"context"
	"errors"
	"net/http"

	"afristay/config"
	"afristay/infras/jwt"
	"afristay/infras/otel"
	"afristay/permissions"
	"afristay/shared"
	"afristay/shared/cache"
	"afristay/shared/constant"
	"afristay/shared/failure"
	"afristay/shared/session"
	"afristay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	cache      cache.RedisCache
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, cache cache.RedisCache, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		cache:      cache,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// Auth validates the bearer token and places the caller session on the context.
// On endpoints marked skip the token is optional: a valid one is still honoured, a missing or bad one leaves the caller anonymous.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		if session.FromContext(ctx).Internal {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path, permission := m.lookup(request)

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		caller, err := m.authenticate(ctx, request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			if permission.Skip || m.permission == nil || m.permission.Skip {
				scope.End()
				next.ServeHTTP(writer, request)

				return
			}

			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		scope.SetAttribute("user_role", caller.Role.String())
		scope.End()

		next.ServeHTTP(writer, request.WithContext(session.WithSession(ctx, caller)))
	})
}

// RBAC checks if user has required role
// Requires prior authentication via Auth middleware
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		caller := session.FromContext(ctx)
		if caller.Internal {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		_, permission := m.lookup(request)

		if !permission.Allows(caller.Role.String()) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     caller.Role.String(),
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey for internal service-to-service authentication using API key
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == constant.Empty {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == constant.Empty || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = session.WithSession(ctx, session.Session{Internal: true})

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *authRoleImpl) lookup(request *http.Request) (string, permissions.Permission) {
	path := request.URL.Path

	rctx := chi.RouteContext(request.Context())
	if rctx != nil && rctx.Routes != nil {
		if pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path); pattern != constant.Empty {
			path = pattern
		}
	}

	if m.permission == nil {
		return path, permissions.Permission{}
	}

	return path, m.permission.FindPermissions(path, request.Method)
}

func (m *authRoleImpl) authenticate(ctx context.Context, authHeader string) (session.Session, error) {
	if authHeader == constant.Empty {
		return session.Session{}, failure.Unauthorized("Missing authorization header")
	}

	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return session.Session{}, failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(ctx, tokenString, jwt.AccessToken)
	if err != nil {
		var message string

		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			message = "Token has expired"
		case errors.Is(err, jwt.ErrInvalidToken):
			message = "Invalid token"
		case errors.Is(err, jwt.ErrInvalidClaim):
			message = "Invalid token claims"
		default:
			message = "Token validation failed"
		}

		return session.Session{}, failure.Unauthorized(message)
	}

	if claims.UserID == constant.Empty || claims.Email == constant.Empty {
		log.Error().Msg("JWT claims: UserID or Email is empty")

		return session.Session{}, failure.Unauthorized("Invalid token claims")
	}

	role, ok := session.ParseRole(claims.Role)
	if !ok {
		return session.Session{}, failure.Unauthorized("Invalid token claims")
	}

	revoked, err := m.cache.Exists(ctx, shared.BuildCacheKey(constant.CacheKeyRevokedToken, claims.TokenID))
	if err != nil {
		// revocation is best effort while the cache is unavailable
		log.Warn().Err(err).Msg("failed to check token revocation")
	} else if revoked {
		return session.Session{}, failure.Unauthorized("Token has been revoked")
	}

	return session.Session{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    role,
		TokenID: claims.TokenID,
	}, nil
}
