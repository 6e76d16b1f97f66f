package auth

import (
	"strings"

	errors "github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/validation"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterDTO creates a new admin account.
type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks required fields and email format.
func (d LoginDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required()
	return v.Validate()
}

// Validate checks the registration payload. Passwords must be at least
// 6 characters, names between 2 and 100.
func (d RegisterDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(6)
	return v.Validate()
}

// NormalizedEmail lowercases and trims the email so lookups and the
// unique index agree on one canonical form.
func (d LoginDTO) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(d.Email))
}

func (d RegisterDTO) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(d.Email))
}
