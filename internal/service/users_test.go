package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/domain/model"
)

func TestUserRowPermissions(t *testing.T) {
	t.Parallel()
	admin := domainauth.Identity{ID: "a1", Role: domainauth.RoleAdmin}
	user := domainauth.Identity{ID: "u1", Role: domainauth.RoleUser}
	anon := domainauth.Identity{ID: "x1"}

	adminRow := model.User{ID: "a2", Role: domainauth.RoleAdmin}
	userRow := model.User{ID: "u2", Role: domainauth.RoleUser}
	selfRow := model.User{ID: "a1", Role: domainauth.RoleAdmin}

	tests := []struct {
		name       string
		viewer     domainauth.Identity
		row        model.User
		wantEdit   bool
		wantDelete bool
	}{
		{name: "admin on admin", viewer: admin, row: adminRow, wantEdit: true, wantDelete: true},
		{name: "admin on user", viewer: admin, row: userRow, wantEdit: true, wantDelete: true},
		{name: "admin on self", viewer: admin, row: selfRow, wantEdit: true, wantDelete: false},
		{name: "user on user", viewer: user, row: userRow, wantEdit: true, wantDelete: false},
		{name: "user on admin", viewer: user, row: adminRow, wantEdit: false, wantDelete: false},
		{name: "unknown role", viewer: anon, row: userRow, wantEdit: false, wantDelete: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantEdit, CanEditUser(tt.viewer, tt.row))
			assert.Equal(t, tt.wantDelete, CanDeleteUser(tt.viewer, tt.row))
		})
	}
}
