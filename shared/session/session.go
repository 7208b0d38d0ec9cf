// Package session resolves the authenticated caller from a request context.
package session

import (
	"context"

	"afristay/shared/constant"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleUser, RoleOwner, RoleAdmin:
		return Role(value), true
	default:
		return "", false
	}
}

func (r Role) String() string {
	return string(r)
}

// Session is the caller identity placed on the context by the auth middleware.
// Internal reports a caller authenticated by API key rather than a user token.
type Session struct {
	UserID   string
	Email    string
	Role     Role
	TokenID  string
	Internal bool
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

func (s Session) IsOwner() bool {
	return s.Role == RoleOwner
}

func (s Session) Authenticated() bool {
	return s.UserID != "" || s.Internal
}

// Actor is the value written to created_by/modified_by.
func (s Session) Actor() string {
	if s.UserID != "" {
		return s.UserID
	}

	if s.Internal {
		return constant.ContextInternal
	}

	return constant.ContextGuest
}

func FromContext(ctx context.Context) Session {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	internal, _ := ctx.Value(constant.ContextKeyInternal).(bool)

	parsed, _ := ParseRole(role)

	return Session{
		UserID:   userID,
		Email:    email,
		Role:     parsed,
		TokenID:  tokenID,
		Internal: internal,
	}
}

func WithSession(ctx context.Context, s Session) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, s.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, s.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, string(s.Role))
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, s.TokenID)

	return context.WithValue(ctx, constant.ContextKeyInternal, s.Internal)
}
