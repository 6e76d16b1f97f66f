package employee

import (
	"strings"

	errors "github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/validation"
)

type LocationDTO struct {
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
}

// CreateDTO creates an employee. Supervisors are assigned later through
// update, so no supervisor field is accepted here.
type CreateDTO struct {
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	DepartmentID int64       `json:"departmentId"`
	JobTitle     string      `json:"jobTitle"`
	Location     LocationDTO `json:"location"`
}

// UpdateDTO patches an employee. Nil fields are left unchanged.
type UpdateDTO struct {
	Name         *string      `json:"name"`
	Email        *string      `json:"email"`
	DepartmentID *int64       `json:"departmentId"`
	SupervisorID *int64       `json:"supervisorId"`
	JobTitle     *string      `json:"jobTitle"`
	Location     *LocationDTO `json:"location"`
}

func (d LocationDTO) validate(v *validation.ValidationBuilder) {
	v.Field("location.country", d.Country).Required()
	v.Field("location.state", d.State).Required()
	v.Field("location.city", d.City).Required()
}

func (d CreateDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("email", d.Email).Required().Email()
	v.Field("departmentId", d.DepartmentID).Required()
	v.Field("jobTitle", d.JobTitle).Required().MinLength(2).MaxLength(100)
	d.Location.validate(v)
	return v.Validate()
}

func (d UpdateDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MinLength(2).MaxLength(100)
	}
	if d.Email != nil {
		v.Field("email", *d.Email).Required().Email()
	}
	if d.JobTitle != nil {
		v.Field("jobTitle", *d.JobTitle).Required().MinLength(2).MaxLength(100)
	}
	if d.Location != nil {
		d.Location.validate(v)
	}
	return v.Validate()
}

func (d CreateDTO) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(d.Email))
}

func (d LocationDTO) toLocation() Location {
	return Location{
		Country: strings.TrimSpace(d.Country),
		State:   strings.TrimSpace(d.State),
		City:    strings.TrimSpace(d.City),
	}
}
