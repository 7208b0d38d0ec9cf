package session_test

import (
	"context"
	"testing"

	"afristay/shared/session"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		caller := session.FromContext(context.Background())
		assert.False(t, caller.Authenticated())
		assert.Equal(t, "guest", caller.Actor())
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		ctx := session.WithSession(context.Background(), session.Session{
			UserID: "u1", Email: "u1@example.com", Role: session.RoleOwner, TokenID: "tok",
		})

		caller := session.FromContext(ctx)
		assert.True(t, caller.Authenticated())
		assert.True(t, caller.IsOwner())
		assert.False(t, caller.IsAdmin())
		assert.Equal(t, "u1", caller.Actor())
		assert.Equal(t, "tok", caller.TokenID)
	})

	t.Run("internal caller", func(t *testing.T) {
		t.Parallel()

		caller := session.FromContext(session.WithSession(context.Background(), session.Session{Internal: true}))
		assert.True(t, caller.Authenticated())
		assert.Equal(t, "internal", caller.Actor())
	})
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"user", "owner", "admin"} {
		role, ok := session.ParseRole(value)
		assert.True(t, ok)
		assert.Equal(t, value, role.String())
	}

	_, ok := session.ParseRole("root")
	assert.False(t, ok)
}
