package permissions_test

import (
	"net/http"
	"testing"

	"afristay/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_LoadsEmbeddedPermissions(t *testing.T) {
	t.Parallel()

	data := permissions.Get()
	require.NotNil(t, data)
	assert.NotEmpty(t, data.Endpoints)
	assert.False(t, data.Skip)
}

func TestFindPermissions(t *testing.T) {
	t.Parallel()

	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		wantRoles []string
	}{
		{
			name:     "public listing browse with subrouter slash",
			path:     "/v1/listings/",
			method:   http.MethodGet,
			wantSkip: true,
		},
		{
			name:      "listing creation needs owner or admin",
			path:      "/v1/listings",
			method:    http.MethodPost,
			wantRoles: []string{"owner", "admin"},
		},
		{
			name:      "profiles are admin only",
			path:      "/v1/profiles/{id}/ban",
			method:    http.MethodPatch,
			wantRoles: []string{"admin"},
		},
		{
			name:      "hosts complete their own stays",
			path:      "/v1/bookings/{id}/complete",
			method:    http.MethodPost,
			wantRoles: []string{"owner", "admin"},
		},
		{
			name:   "bookings need any signed-in caller",
			path:   "/v1/bookings/{id}/cancel",
			method: http.MethodPost,
		},
		{
			name:   "unknown endpoint requires auth",
			path:   "/v1/nowhere",
			method: http.MethodGet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := data.FindPermissions(tt.path, tt.method)
			assert.Equal(t, tt.wantSkip, got.Skip)
			assert.Equal(t, tt.wantRoles, got.Permissions)
		})
	}
}

func TestPermission_Allows(t *testing.T) {
	t.Parallel()

	ownerOnly := permissions.Permission{Permissions: []string{"owner", "admin"}}

	assert.True(t, ownerOnly.Allows("owner"))
	assert.False(t, ownerOnly.Allows("user"))
	assert.True(t, permissions.Permission{}.Allows("user"))
	assert.True(t, permissions.Permission{Skip: true, Permissions: []string{"admin"}}.Allows(""))
}

func TestParse(t *testing.T) {
	t.Parallel()

	data, err := permissions.Parse([]byte(`{"endpoints":[
		{"path":"/v1/events","method":"GET","skip":true},
		{"path":"/v1/events/","method":"GET","permissions":["admin"]},
		{"path":"/v1/events","method":"post","permissions":["admin"]}
	]}`))
	require.NoError(t, err)

	assert.True(t, data.FindPermissions("/v1/events/", http.MethodGet).Skip)
	assert.Equal(t, []string{"admin"}, data.FindPermissions("/v1/events", http.MethodPost).Permissions)

	_, err = permissions.Parse([]byte(`{"endpoints":`))
	assert.Error(t, err)
}
