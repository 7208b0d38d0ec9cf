// Package permissions holds the embedded route table the auth middleware checks every request against.
package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission describes one endpoint. Permissions lists the roles allowed to call it; empty means any
// signed-in caller. Skip makes authentication optional.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the endpoint once authenticated.
func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

// PermissionData is the whole table. Skip turns authorization off for every route. Tables built
// with Parse are indexed, literal ones are scanned.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

// FindPermissions matches a chi route pattern. Trailing slashes are ignored since subrouter roots
// resolve to "/prefix/". Unknown routes get the zero Permission, which requires a signed-in caller.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	k := key(method, path)

	if r.index != nil {
		return r.index[k]
	}

	for _, endpoint := range r.Endpoints {
		if key(endpoint.Method, endpoint.Path) == k {
			return endpoint
		}
	}

	return Permission{}
}

func (r *PermissionData) buildIndex() {
	r.index = make(map[string]Permission, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		k := key(endpoint.Method, endpoint.Path)
		if _, dup := r.index[k]; dup {
			log.Warn().Str("method", endpoint.Method).Str("path", endpoint.Path).Msg("Duplicate permission entry, keeping the first")

			continue
		}

		r.index[k] = endpoint
	}
}

// Parse decodes a permission table.
func Parse(raw []byte) (*PermissionData, error) {
	var permissions PermissionData
	if err := json.Unmarshal(raw, &permissions); err != nil {
		return nil, err //nolint:wrapcheck
	}

	permissions.buildIndex()

	return &permissions, nil
}

// Get loads the embedded table, returning nil when it cannot be decoded. The middleware then denies every request.
func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}

func key(method, path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return strings.ToUpper(method) + " " + path
}
