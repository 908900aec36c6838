// Package policy evaluates authorization decisions in isolation from HTTP.
package policy

import (
	"melodix/database/model"
	"melodix/util/apperr"
)

// Identity is the authenticated caller, derived from a verified token.
type Identity struct {
	UserId string
	Role   model.UserRole
}

func (id Identity) IsAdmin() bool {
	return id.Role == model.RoleAdmin
}

// Action names an operation subject to an authorization decision.
type Action string

const (
	// ManageCatalog covers song create/update/delete.
	ManageCatalog Action = "catalog:manage"
	// ManageUsers covers listing and deleting arbitrary users.
	ManageUsers Action = "users:manage"
	// UpdateUser covers mutating a user record.
	UpdateUser Action = "users:update"
	// MutatePlaylist covers metadata edits, membership changes and deletion.
	MutatePlaylist Action = "playlists:mutate"
)

// Allow decides whether id may perform action on resource. It returns nil on
// allow and a typed error on deny. Ownership is evaluated against the resource
// passed in, never against cached state.
func Allow(id Identity, action Action, resource any) error {
	if id.UserId == "" {
		return apperr.ErrUnauthorized
	}

	switch action {
	case ManageCatalog, ManageUsers:
		if id.IsAdmin() {
			return nil
		}
	case UpdateUser:
		if id.IsAdmin() {
			return nil
		}
		if u, ok := resource.(*model.User); ok && u.Id == id.UserId {
			return nil
		}
	case MutatePlaylist:
		// Playlists are mutable by their owner only; admins get no shortcut.
		if p, ok := resource.(*model.Playlist); ok && p.OwnerId == id.UserId {
			return nil
		}
	}

	return apperr.ErrForbidden
}
