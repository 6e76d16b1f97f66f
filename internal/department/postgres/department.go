package postgres

import (
	stderrors "errors"

	errors "github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/department"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) List() ([]department.Department, error) {
	var departments []department.Department
	if err := r.db.Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *Repository) GetByID(id int64) (*department.Department, error) {
	var dept department.Department
	if err := r.db.First(&dept, id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *Repository) Create(dept *department.Department) error {
	if err := r.db.Create(dept).Error; err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *Repository) Update(dept *department.Department) error {
	if err := r.db.Save(dept).Error; err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *Repository) Delete(id int64) error {
	return r.db.Delete(&department.Department{}, id).Error
}

// ExistsByName reports whether another department already uses the name.
// Pass excludeID 0 for creates.
func (r *Repository) ExistsByName(name string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.Model(&department.Department{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Exists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&department.Department{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return errors.NewConflictError("Department with this name already exists", errors.ErrCodeDepartmentExists)
	}
	return err
}
