package postgres

import (
	stderrors "errors"

	errors "github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/auth"
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

func (r *Repository) GetByEmail(email string) (*auth.Admin, error) {
	var admin auth.Admin
	if err := r.db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *Repository) GetByID(adminID int64) (*auth.Admin, error) {
	var admin auth.Admin
	if err := r.db.First(&admin, adminID).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *Repository) Create(admin *auth.Admin) error {
	if err := r.db.Create(admin).Error; err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errors.NewConflictError("Admin with this email already exists", errors.ErrCodeAdminExists)
		}
		return err
	}
	return nil
}

func (r *Repository) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&auth.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
