package employee

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/office-management/internal"
	"gorm.io/gorm"
)

type Service struct {
	repo        RepositoryAPI
	departments DepartmentDirectory
	locations   LocationValidator
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, departments DepartmentDirectory, locations LocationValidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		locations:   locations,
		logger:      logger,
	}
}

// List returns a page of employees, newest first, with department and
// supervisor references resolved.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]EmployeeResponse, int64, error) {
	filter.Normalize()

	employees, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, 0, errors.NewInternalError("failed to list employees", err)
	}

	responses, err := s.expand(employees)
	if err != nil {
		return nil, 0, err
	}

	return responses, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*EmployeeResponse, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrEmployeeNotFound
		}
		s.logger.Error("failed to get employee", "id", id, "error", err)
		return nil, errors.NewInternalError("failed to get employee", err)
	}

	responses, err := s.expand([]Employee{*emp})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// Create hires an employee into an existing department. Supervisors are
// assigned afterwards through Update.
func (s *Service) Create(ctx context.Context, dto CreateDTO) (*EmployeeResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.departments.Exists(dto.DepartmentID)
	if err != nil {
		return nil, errors.NewInternalError("failed to check department", err)
	}
	if !exists {
		return nil, errors.NewValidationError("Department not found", errors.ErrCodeDepartmentNotFound)
	}

	email := dto.NormalizedEmail()
	taken, err := s.repo.ExistsByEmail(email, 0)
	if err != nil {
		return nil, errors.NewInternalError("failed to check employee email", err)
	}
	if taken {
		return nil, errors.NewConflictError("Employee with this email already exists", errors.ErrCodeEmailExists)
	}

	loc := dto.Location.toLocation()
	if !s.locations.ValidateLocation(ctx, loc.Country, loc.State, loc.City) {
		return nil, errors.NewValidationError("Invalid location provided", errors.ErrCodeInvalidLocation)
	}

	emp := &Employee{
		Name:         strings.TrimSpace(dto.Name),
		Email:        email,
		DepartmentID: dto.DepartmentID,
		JobTitle:     strings.TrimSpace(dto.JobTitle),
		Location:     loc,
	}

	if err := s.repo.Create(emp); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create employee", "email", email, "error", err)
		return nil, errors.NewInternalError("failed to create employee", err)
	}

	responses, err := s.expand([]Employee{*emp})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateDTO) (*EmployeeResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrEmployeeNotFound
		}
		return nil, errors.NewInternalError("failed to get employee", err)
	}

	if dto.DepartmentID != nil {
		exists, err := s.departments.Exists(*dto.DepartmentID)
		if err != nil {
			return nil, errors.NewInternalError("failed to check department", err)
		}
		if !exists {
			return nil, errors.NewValidationError("Department not found", errors.ErrCodeDepartmentNotFound)
		}
	}

	if dto.SupervisorID != nil {
		exists, err := s.repo.Exists(*dto.SupervisorID)
		if err != nil {
			return nil, errors.NewInternalError("failed to check supervisor", err)
		}
		if !exists {
			return nil, errors.NewValidationError("Supervisor not found", errors.ErrCodeSupervisorNotFound)
		}
		if *dto.SupervisorID == id {
			return nil, errors.NewValidationError("Employee cannot be their own supervisor", errors.ErrCodeSelfSupervision)
		}
	}

	if dto.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*dto.Email))
		taken, err := s.repo.ExistsByEmail(email, id)
		if err != nil {
			return nil, errors.NewInternalError("failed to check employee email", err)
		}
		if taken {
			return nil, errors.NewConflictError("Employee with this email already exists", errors.ErrCodeEmailExists)
		}
		emp.Email = email
	}

	if dto.Location != nil {
		loc := dto.Location.toLocation()
		if !s.locations.ValidateLocation(ctx, loc.Country, loc.State, loc.City) {
			return nil, errors.NewValidationError("Invalid location provided", errors.ErrCodeInvalidLocation)
		}
		emp.Location = loc
	}

	if dto.Name != nil {
		emp.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.DepartmentID != nil {
		emp.DepartmentID = *dto.DepartmentID
	}
	if dto.SupervisorID != nil {
		emp.SupervisorID = dto.SupervisorID
	}
	if dto.JobTitle != nil {
		emp.JobTitle = strings.TrimSpace(*dto.JobTitle)
	}

	if err := s.repo.Update(emp); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to update employee", "id", id, "error", err)
		return nil, errors.NewInternalError("failed to update employee", err)
	}

	responses, err := s.expand([]Employee{*emp})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// Delete removes an employee and clears the supervisor reference of
// their direct reports. Reports keep their own reports untouched.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrEmployeeNotFound
		}
		return errors.NewInternalError("failed to get employee", err)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "id", id, "error", err)
		return errors.NewInternalError("failed to delete employee", err)
	}

	if err := s.repo.ClearSupervisor(id); err != nil {
		s.logger.Error("failed to clear supervisor references", "supervisor_id", id, "error", err)
		return errors.NewInternalError("failed to clear supervisor references", err)
	}

	return nil
}

// expand resolves department and supervisor references for a batch of
// employees. Dangling references resolve to null rather than failing
// the read.
func (s *Service) expand(employees []Employee) ([]EmployeeResponse, error) {
	deptIDs := make([]int64, 0, len(employees))
	supervisorIDs := make([]int64, 0, len(employees))
	seenDept := make(map[int64]bool)
	seenSup := make(map[int64]bool)

	for _, emp := range employees {
		if !seenDept[emp.DepartmentID] {
			seenDept[emp.DepartmentID] = true
			deptIDs = append(deptIDs, emp.DepartmentID)
		}
		if emp.SupervisorID != nil && !seenSup[*emp.SupervisorID] {
			seenSup[*emp.SupervisorID] = true
			supervisorIDs = append(supervisorIDs, *emp.SupervisorID)
		}
	}

	deptRefs := map[int64]DepartmentRef{}
	if len(deptIDs) > 0 {
		refs, err := s.departments.RefsByID(deptIDs)
		if err != nil {
			s.logger.Error("failed to resolve department references", "error", err)
			return nil, errors.NewInternalError("failed to resolve department references", err)
		}
		deptRefs = refs
	}

	supervisorRefs := map[int64]SupervisorRef{}
	if len(supervisorIDs) > 0 {
		supervisors, err := s.repo.GetByIDs(supervisorIDs)
		if err != nil {
			s.logger.Error("failed to resolve supervisor references", "error", err)
			return nil, errors.NewInternalError("failed to resolve supervisor references", err)
		}
		for _, sup := range supervisors {
			supervisorRefs[sup.ID] = SupervisorRef{
				ID:       sup.ID,
				Name:     sup.Name,
				Email:    sup.Email,
				JobTitle: sup.JobTitle,
			}
		}
	}

	responses := make([]EmployeeResponse, len(employees))
	for i, emp := range employees {
		resp := EmployeeResponse{
			ID:        emp.ID,
			Name:      emp.Name,
			Email:     emp.Email,
			JobTitle:  emp.JobTitle,
			Location:  emp.Location,
			CreatedAt: emp.CreatedAt,
			UpdatedAt: emp.UpdatedAt,
		}
		if ref, ok := deptRefs[emp.DepartmentID]; ok {
			refCopy := ref
			resp.Department = &refCopy
		}
		if emp.SupervisorID != nil {
			if ref, ok := supervisorRefs[*emp.SupervisorID]; ok {
				refCopy := ref
				resp.Supervisor = &refCopy
			}
		}
		responses[i] = resp
	}

	return responses, nil
}
