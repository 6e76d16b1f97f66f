package department

import (
	"time"
)

// Department groups employees. Names are unique across the company.
type Department struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string    `json:"description,omitempty" gorm:"size:500"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Department) TableName() string {
	return "departments"
}

type RepositoryAPI interface {
	List() ([]Department, error)
	GetByID(id int64) (*Department, error)
	Create(dept *Department) error
	Update(dept *Department) error
	Delete(id int64) error
	ExistsByName(name string, excludeID int64) (bool, error)
	Exists(id int64) (bool, error)
}

type ServiceAPI interface {
	List() ([]Department, error)
	Get(id int64) (*Department, error)
	Create(dto CreateDTO) (*Department, error)
	Update(id int64, dto UpdateDTO) (*Department, error)
	Delete(id int64) error
	Exists(id int64) (bool, error)
}
