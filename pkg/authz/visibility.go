package authz

import "inkwell/pkg/models"

// WorkListStatus computes the implicit status filter for a work listing.
// requested is the caller-supplied status filter ("" for none); authorID is
// the caller-supplied author filter ("" for none). The returned string is the
// status the query must be narrowed to, or "" for no narrowing.
//
// Anonymous callers and creators browsing anyone else's works only ever see
// published. A creator filtering on their own authorID gets their full status
// range, optionally narrowed by the explicit filter. Editors and admins get
// the explicit filter verbatim, defaulting to published when absent.
func WorkListStatus(identity *Identity, requested string, authorID string) string {
	if identity == nil {
		return string(models.WorkPublished)
	}
	switch identity.Role {
	case models.RoleEditor, models.RoleAdmin:
		if requested != "" {
			return requested
		}
		return string(models.WorkPublished)
	default:
		if authorID != "" && authorID == identity.ID {
			return requested
		}
		return string(models.WorkPublished)
	}
}

// CanViewWork reports whether the identity may fetch the work's detail.
// Published works are public; anything else requires the author, an editor,
// or an admin.
func CanViewWork(identity *Identity, work *models.Work) bool {
	if work.Status == models.WorkPublished {
		return true
	}
	return Authorize(identity, OwnerOrRole(work.AuthorID, models.RoleEditor, models.RoleAdmin))
}
