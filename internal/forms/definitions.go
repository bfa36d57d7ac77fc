package forms

import (
	"github.com/Rushil0704/auth-client-1/internal/domain/model"
)

// Login is the sign-in form. The full strength rules apply so a weak password
// never reaches the API.
type Login struct {
	Email    string `form:"email,trim" label:"Email" validate:"required,email_format"`
	Password string `form:"password" label:"Password" validate:"required,min=8,pw_upper,pw_lower,pw_digit,pw_special"`
}

// Signup is the registration form.
type Signup struct {
	FirstName       string `form:"firstName,trim" label:"First name" validate:"required,min=3,max=50"`
	LastName        string `form:"lastName,trim" label:"Last name" validate:"required,min=3,max=50"`
	Email           string `form:"email,trim" label:"Email" validate:"required,email_format"`
	Password        string `form:"password" label:"Password" validate:"required,min=8,pw_upper,pw_lower,pw_digit,pw_special"`
	ConfirmPassword string `form:"confirmPassword" label:"Confirm password" validate:"required,eqfield=Password"`
}

// Request converts the form to the register payload.
func (f Signup) Request() model.RegisterRequest {
	return model.RegisterRequest{FirstName: f.FirstName, LastName: f.LastName, Email: f.Email, Password: f.Password}
}

// Account is the signed-in user's own profile form.
type Account struct {
	FirstName string `form:"firstName,trim" label:"First name" validate:"required,min=3,max=50"`
	LastName  string `form:"lastName,trim" label:"Last name" validate:"required,min=3,max=50"`
	Email     string `form:"email,trim" label:"Email" validate:"required,email_format"`
}

// Request converts the form to the profile payload.
func (f Account) Request() model.UpdateProfileRequest {
	return model.UpdateProfileRequest{FirstName: f.FirstName, LastName: f.LastName, Email: f.Email}
}

// AccountFromUser pre-fills the form.
func AccountFromUser(u model.User) Account {
	return Account{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

// UserEdit is the admin form for editing another user. The last name is
// held to a longer minimum than on the self-service form.
type UserEdit struct {
	FirstName string `form:"firstName,trim" label:"First name" validate:"required,min=3,max=50"`
	LastName  string `form:"lastName,trim" label:"Last name" validate:"required,min=5,max=50"`
	Email     string `form:"email,trim" label:"Email" validate:"required,email_format"`
}

// Request converts the form to the profile payload.
func (f UserEdit) Request() model.UpdateProfileRequest {
	return model.UpdateProfileRequest{FirstName: f.FirstName, LastName: f.LastName, Email: f.Email}
}

// UserEditFromUser pre-fills the form.
func UserEditFromUser(u model.User) UserEdit {
	return UserEdit{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

// ChangePassword checks the current password against the pattern rules only.
type ChangePassword struct {
	CurrentPassword string `form:"currentPassword" label:"Current password" validate:"required,pw_upper,pw_lower,pw_digit,pw_special"`
	NewPassword     string `form:"newPassword" label:"Password" validate:"required,min=8,pw_upper,pw_lower,pw_digit,pw_special"`
	ConfirmPassword string `form:"confirmPassword" label:"Confirm password" validate:"required,eqfield=NewPassword"`
}

// Request converts the form to the password payload.
func (f ChangePassword) Request() model.ChangePasswordRequest {
	return model.ChangePasswordRequest{OldPassword: f.CurrentPassword, NewPassword: f.NewPassword}
}

// Category is the create and edit form for categories.
type Category struct {
	Name        string `form:"name,trim" label:"Name" validate:"required,min=5,max=50"`
	Description string `form:"description,trim" label:"Description" validate:"required,min=10,max=100"`
}

// Request converts the form to the category payload.
func (f Category) Request() model.CategoryRequest {
	return model.CategoryRequest{Name: f.Name, Description: f.Description}
}

// CategoryFromModel pre-fills the form.
func CategoryFromModel(c model.Category) Category {
	return Category{Name: c.Name, Description: c.Description}
}

// NewByName returns an empty form by name, for per-field validation requests.
func NewByName(name string) (any, bool) {
	switch name {
	case "login":
		return &Login{}, true
	case "signup":
		return &Signup{}, true
	case "account":
		return &Account{}, true
	case "user":
		return &UserEdit{}, true
	case "password":
		return &ChangePassword{}, true
	case "category":
		return &Category{}, true
	default:
		return nil, false
	}
}
