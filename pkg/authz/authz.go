// Package authz decides what a verified caller may do. It is pure: handlers
// decode identity from the request, build a requirement, and check it before
// touching the store. A failed check never leaves a partial mutation behind.
package authz

import "inkwell/pkg/models"

// Identity is a verified caller decoded from a session token. A nil
// *Identity means the request carried no usable token.
type Identity struct {
	ID       string
	Email    string
	Username string
	Role     models.UserRole
}

// Requirement is a capability check against an identity.
type Requirement struct {
	ownerID    string
	roles      []models.UserRole
	allowOwner bool
}

// Authenticated requires any identity, regardless of role.
func Authenticated() Requirement {
	return Requirement{}
}

// AnyRole requires an identity holding one of the given roles.
func AnyRole(roles ...models.UserRole) Requirement {
	return Requirement{roles: roles}
}

// OwnerOrRole requires the identity to be the owner of the record or to hold
// one of the given roles. With no roles it is an owner-only check.
func OwnerOrRole(ownerID string, roles ...models.UserRole) Requirement {
	return Requirement{ownerID: ownerID, roles: roles, allowOwner: true}
}

// Authorize reports whether the identity satisfies the requirement.
func Authorize(identity *Identity, req Requirement) bool {
	if identity == nil {
		return false
	}
	if req.allowOwner && identity.ID == req.ownerID {
		return true
	}
	if len(req.roles) == 0 && !req.allowOwner {
		// Authenticated: presence is enough
		return true
	}
	for _, role := range req.roles {
		if identity.Role == role {
			return true
		}
	}
	return false
}
