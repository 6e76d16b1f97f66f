package department

import (
	stderrors "errors"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/office-management/internal"
	"gorm.io/gorm"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns all departments ordered by name.
func (s *Service) List() ([]Department, error) {
	departments, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, errors.NewInternalError("failed to list departments", err)
	}
	return departments, nil
}

func (s *Service) Get(id int64) (*Department, error) {
	dept, err := s.repo.GetByID(id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrDepartmentNotFound
		}
		s.logger.Error("failed to get department", "id", id, "error", err)
		return nil, errors.NewInternalError("failed to get department", err)
	}
	return dept, nil
}

func (s *Service) Create(dto CreateDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByName(dto.NormalizedName(), 0)
	if err != nil {
		return nil, errors.NewInternalError("failed to check department name", err)
	}
	if taken {
		return nil, errors.NewConflictError("Department with this name already exists", errors.ErrCodeDepartmentExists)
	}

	dept := &Department{
		Name:        dto.NormalizedName(),
		Description: strings.TrimSpace(dto.Description),
	}

	if err := s.repo.Create(dept); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create department", "name", dept.Name, "error", err)
		return nil, errors.NewInternalError("failed to create department", err)
	}

	return dept, nil
}

func (s *Service) Update(id int64, dto UpdateDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dept, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByName(dto.NormalizedName(), id)
	if err != nil {
		return nil, errors.NewInternalError("failed to check department name", err)
	}
	if taken {
		return nil, errors.NewConflictError("Department with this name already exists", errors.ErrCodeDepartmentExists)
	}

	dept.Name = dto.NormalizedName()
	dept.Description = strings.TrimSpace(dto.Description)

	if err := s.repo.Update(dept); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to update department", "id", id, "error", err)
		return nil, errors.NewInternalError("failed to update department", err)
	}

	return dept, nil
}

// Delete removes a department. Employees that reference it keep their
// department id; reads resolve the dangling reference to null.
func (s *Service) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete department", "id", id, "error", err)
		return errors.NewInternalError("failed to delete department", err)
	}

	return nil
}

func (s *Service) Exists(id int64) (bool, error) {
	return s.repo.Exists(id)
}
