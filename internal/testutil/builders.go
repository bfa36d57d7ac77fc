package testutil

import (
	"fmt"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/domain/model"
)

// UserBuilder provides a fluent interface for building model.User fixtures.
type UserBuilder struct {
	u model.User
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser(id string) *UserBuilder {
	return &UserBuilder{u: model.User{
		ID:        id,
		FirstName: "Test",
		LastName:  "Person",
		Email:     fmt.Sprintf("%s@example.com", id),
		Role:      domainauth.RoleUser,
	}}
}

// Admin marks the user as an admin.
func (b *UserBuilder) Admin() *UserBuilder {
	b.u.Role = domainauth.RoleAdmin
	return b
}

// WithName sets first and last name.
func (b *UserBuilder) WithName(first, last string) *UserBuilder {
	b.u.FirstName, b.u.LastName = first, last
	return b
}

// Build returns the user.
func (b *UserBuilder) Build() model.User { return b.u }

// Identity returns the user as the identity the "who am I" endpoint would return.
func (b *UserBuilder) Identity() *domainauth.Identity {
	return &domainauth.Identity{
		ID:        b.u.ID,
		FirstName: b.u.FirstName,
		LastName:  b.u.LastName,
		Email:     b.u.Email,
		Role:      b.u.Role,
	}
}

// Users builds n sequential users ("u1".."un").
func Users(n int) []model.User {
	out := make([]model.User, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, NewUser(fmt.Sprintf("u%d", i)).Build())
	}
	return out
}

// Categories builds n sequential categories ("c1".."cn").
func Categories(n int) []model.Category {
	out := make([]model.Category, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.Category{
			ID:          fmt.Sprintf("c%d", i),
			Name:        fmt.Sprintf("Category %d", i),
			Description: fmt.Sprintf("Description for category %d", i),
		})
	}
	return out
}
