package department

import (
	"strings"

	errors "github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/validation"
)

type CreateDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d CreateDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("description", d.Description).MaxLength(500)
	return v.Validate()
}

func (d UpdateDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("description", d.Description).MaxLength(500)
	return v.Validate()
}

func (d CreateDTO) NormalizedName() string {
	return strings.TrimSpace(d.Name)
}

func (d UpdateDTO) NormalizedName() string {
	return strings.TrimSpace(d.Name)
}
