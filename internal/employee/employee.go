package employee

import (
	"context"
	"time"
)

// Location is where an employee works. Values come from the geography
// catalog and are stored as plain text.
type Location struct {
	Country string `json:"country" gorm:"column:location_country;size:100;not null"`
	State   string `json:"state" gorm:"column:location_state;size:100;not null"`
	City    string `json:"city" gorm:"column:location_city;size:100;not null"`
}

// Employee is a member of staff. DepartmentID and SupervisorID are plain
// references without foreign key constraints so deleting a department or
// supervisor never blocks; reads resolve dangling references to null.
type Employee struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	DepartmentID int64     `json:"departmentId" gorm:"index;not null"`
	SupervisorID *int64    `json:"supervisorId,omitempty" gorm:"index"`
	JobTitle     string    `json:"jobTitle" gorm:"size:100;index;not null"`
	Location     Location  `json:"location" gorm:"embedded"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Employee) TableName() string {
	return "employees"
}

// DepartmentRef is the department summary embedded in employee reads.
type DepartmentRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SupervisorRef is the supervisor summary embedded in employee reads.
type SupervisorRef struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	JobTitle string `json:"jobTitle"`
}

// EmployeeResponse is the read shape: the employee row with its
// department and supervisor references resolved.
type EmployeeResponse struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Department *DepartmentRef `json:"department"`
	Supervisor *SupervisorRef `json:"supervisor"`
	JobTitle   string         `json:"jobTitle"`
	Location   Location       `json:"location"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// ListFilter narrows and pages the employee listing.
type ListFilter struct {
	Page         int
	Limit        int
	DepartmentID int64
	JobTitle     string
	Search       string
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalize clamps paging values into their allowed ranges.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type RepositoryAPI interface {
	List(filter ListFilter) ([]Employee, int64, error)
	GetByID(id int64) (*Employee, error)
	GetByIDs(ids []int64) ([]Employee, error)
	Create(emp *Employee) error
	Update(emp *Employee) error
	Delete(id int64) error
	ExistsByEmail(email string, excludeID int64) (bool, error)
	Exists(id int64) (bool, error)
	ClearSupervisor(supervisorID int64) error
}

// DepartmentDirectory resolves department references during reads and
// existence checks during writes.
type DepartmentDirectory interface {
	Exists(id int64) (bool, error)
	RefsByID(ids []int64) (map[int64]DepartmentRef, error)
}

// LocationValidator checks a location against the geography catalog.
type LocationValidator interface {
	ValidateLocation(ctx context.Context, country, state, city string) bool
}

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]EmployeeResponse, int64, error)
	Get(ctx context.Context, id int64) (*EmployeeResponse, error)
	Create(ctx context.Context, dto CreateDTO) (*EmployeeResponse, error)
	Update(ctx context.Context, id int64, dto UpdateDTO) (*EmployeeResponse, error)
	Delete(ctx context.Context, id int64) error
}
