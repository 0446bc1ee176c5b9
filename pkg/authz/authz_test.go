package authz

import (
	"testing"

	"inkwell/pkg/models"

	"github.com/stretchr/testify/assert"
)

func identityWith(id string, role models.UserRole) *Identity {
	return &Identity{ID: id, Email: id + "@example.com", Username: id, Role: role}
}

func TestAuthorize_Authenticated(t *testing.T) {
	assert.False(t, Authorize(nil, Authenticated()))
	assert.True(t, Authorize(identityWith("u1", models.RoleCreator), Authenticated()))
	assert.True(t, Authorize(identityWith("u1", models.RoleAdmin), Authenticated()))
}

func TestAuthorize_AnyRole(t *testing.T) {
	req := AnyRole(models.RoleEditor, models.RoleAdmin)

	assert.False(t, Authorize(nil, req))
	assert.False(t, Authorize(identityWith("u1", models.RoleCreator), req))
	assert.True(t, Authorize(identityWith("u1", models.RoleEditor), req))
	assert.True(t, Authorize(identityWith("u1", models.RoleAdmin), req))
}

func TestAuthorize_OwnerOrRole(t *testing.T) {
	req := OwnerOrRole("owner-1", models.RoleAdmin)

	assert.False(t, Authorize(nil, req))
	assert.True(t, Authorize(identityWith("owner-1", models.RoleCreator), req))
	assert.True(t, Authorize(identityWith("someone-else", models.RoleAdmin), req))
	assert.False(t, Authorize(identityWith("someone-else", models.RoleEditor), req))
}

func TestAuthorize_OwnerOnly(t *testing.T) {
	// Draft mutations: no admin override
	req := OwnerOrRole("owner-1")

	assert.True(t, Authorize(identityWith("owner-1", models.RoleCreator), req))
	assert.False(t, Authorize(identityWith("admin-1", models.RoleAdmin), req))
}

func TestWorkListStatus(t *testing.T) {
	creator := identityWith("creator-1", models.RoleCreator)
	editor := identityWith("editor-1", models.RoleEditor)
	admin := identityWith("admin-1", models.RoleAdmin)

	tests := []struct {
		name      string
		identity  *Identity
		requested string
		authorID  string
		want      string
	}{
		{"anonymous", nil, "", "", "published"},
		{"anonymous ignores explicit filter", nil, "draft", "", "published"},
		{"creator no author filter", creator, "", "", "published"},
		{"creator with own id, no status", creator, "", "creator-1", ""},
		{"creator with own id, narrowed", creator, "submitted", "creator-1", "submitted"},
		{"creator targeting someone else", creator, "draft", "other-1", "published"},
		{"editor default", editor, "", "", "published"},
		{"editor explicit", editor, "submitted", "", "submitted"},
		{"admin explicit", admin, "hidden", "", "hidden"},
		{"admin explicit with author filter", admin, "rejected", "creator-1", "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorkListStatus(tt.identity, tt.requested, tt.authorID))
		})
	}
}

func TestCanViewWork(t *testing.T) {
	published := &models.Work{AuthorID: "author-1", Status: models.WorkPublished}
	submitted := &models.Work{AuthorID: "author-1", Status: models.WorkSubmitted}

	assert.True(t, CanViewWork(nil, published))
	assert.False(t, CanViewWork(nil, submitted))

	assert.True(t, CanViewWork(identityWith("author-1", models.RoleCreator), submitted))
	assert.False(t, CanViewWork(identityWith("reader-1", models.RoleCreator), submitted))
	assert.True(t, CanViewWork(identityWith("editor-1", models.RoleEditor), submitted))
	assert.True(t, CanViewWork(identityWith("admin-1", models.RoleAdmin), submitted))
}
