package postgres

import (
	stderrors "errors"
	"strings"

	errors "github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/department"
	"github.com/frahmantamala/office-management/internal/employee"
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

// applyFilter builds the WHERE clause shared by the page query and the
// count query. Substring matches go through LOWER so behavior is the
// same on postgres and the sqlite used in tests.
func applyFilter(query *gorm.DB, filter employee.ListFilter) *gorm.DB {
	if filter.DepartmentID > 0 {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.JobTitle != "" {
		query = query.Where("LOWER(job_title) LIKE ?", "%"+strings.ToLower(filter.JobTitle)+"%")
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	return query
}

func (r *Repository) List(filter employee.ListFilter) ([]employee.Employee, int64, error) {
	var total int64
	countQuery := applyFilter(r.db.Model(&employee.Employee{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []employee.Employee
	pageQuery := applyFilter(r.db.Model(&employee.Employee{}), filter).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit)
	if err := pageQuery.Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *Repository) GetByID(id int64) (*employee.Employee, error) {
	var emp employee.Employee
	if err := r.db.First(&emp, id).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *Repository) GetByIDs(ids []int64) ([]employee.Employee, error) {
	var employees []employee.Employee
	if err := r.db.Where("id IN ?", ids).Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *Repository) Create(emp *employee.Employee) error {
	if err := r.db.Create(emp).Error; err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *Repository) Update(emp *employee.Employee) error {
	if err := r.db.Save(emp).Error; err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *Repository) Delete(id int64) error {
	return r.db.Delete(&employee.Employee{}, id).Error
}

func (r *Repository) ExistsByEmail(email string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.Model(&employee.Employee{}).Where("email = ?", email)
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
	if err := r.db.Model(&employee.Employee{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ClearSupervisor nulls the supervisor reference of every direct report.
func (r *Repository) ClearSupervisor(supervisorID int64) error {
	return r.db.Model(&employee.Employee{}).
		Where("supervisor_id = ?", supervisorID).
		Update("supervisor_id", nil).Error
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return errors.NewConflictError("Employee with this email already exists", errors.ErrCodeEmailExists)
	}
	return err
}

// DepartmentDirectory resolves department references for employee reads
// and writes against the departments table.
type DepartmentDirectory struct {
	db *gorm.DB
}

func NewDepartmentDirectory(db *gorm.DB) *DepartmentDirectory {
	return &DepartmentDirectory{
		db: db,
	}
}

func (d *DepartmentDirectory) Exists(id int64) (bool, error) {
	var count int64
	if err := d.db.Model(&department.Department{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *DepartmentDirectory) RefsByID(ids []int64) (map[int64]employee.DepartmentRef, error) {
	var departments []department.Department
	if err := d.db.Where("id IN ?", ids).Find(&departments).Error; err != nil {
		return nil, err
	}

	refs := make(map[int64]employee.DepartmentRef, len(departments))
	for _, dept := range departments {
		refs[dept.ID] = employee.DepartmentRef{ID: dept.ID, Name: dept.Name}
	}
	return refs, nil
}
