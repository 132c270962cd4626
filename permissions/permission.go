// Package permissions loads the route to role table embedded from
// permissions.json. Paths are chi route patterns, so "/v1/rooms/{code}"
// matches every room code.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"campusroom/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var knownRoles = []string{constant.RoleStudent, constant.RoleLecturer, constant.RoleStaff}

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the endpoint.
func (p Permission) Allows(role string) bool {
	return p.Skip || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Lookup returns the entry for the route pattern and method.
func (r *PermissionData) Lookup(path, method string) (Permission, bool) {
	if r.index == nil {
		for _, endpoint := range r.Endpoints {
			if endpoint.Path == path && strings.EqualFold(endpoint.Method, method) {
				return endpoint, true
			}
		}

		return Permission{}, false
	}

	p, ok := r.index[routeKey(method, path)]

	return p, ok
}

// FindPermissions is Lookup without the presence flag.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	p, _ := r.Lookup(path, method)

	return p
}

// Parse decodes a permission table and checks that every role is known and
// every route appears once.
func Parse(raw []byte) (*PermissionData, error) {
	var data PermissionData

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	data.index = make(map[string]Permission, len(data.Endpoints))

	for _, endpoint := range data.Endpoints {
		key := routeKey(endpoint.Method, endpoint.Path)
		if _, dup := data.index[key]; dup {
			return nil, fmt.Errorf("duplicate permission for %s", key)
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				return nil, fmt.Errorf("unknown role %q on %s", role, key)
			}
		}

		data.index[key] = endpoint
	}

	return &data, nil
}

func Get() *PermissionData {
	data, err := Parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Successfully loaded embedded permissions")

	return data
}
