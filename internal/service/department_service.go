package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/repository"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

type departmentRepository interface {
	List(ctx context.Context) ([]models.Department, error)
	Create(ctx context.Context, department *models.Department) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// DepartmentService manages departments.
type DepartmentService struct {
	repo      departmentRepository
	validator *validator.Validate
	rt        Runtime
}

// NewDepartmentService constructs DepartmentService.
func NewDepartmentService(repo departmentRepository, validate *validator.Validate, rt Runtime) *DepartmentService {
	if validate == nil {
		validate = validator.New()
	}
	return &DepartmentService{repo: repo, validator: validate, rt: rt.normalise()}
}

// List returns every department by name.
func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	err := s.rt.query(ctx, "list_departments", func(ctx context.Context) error {
		var err error
		departments, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list departments")
	}
	return departments, nil
}

// Create adds a department.
func (s *DepartmentService) Create(ctx context.Context, req models.CreateDepartmentRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}

	department := &models.Department{Code: req.Code, Name: req.Name, Description: req.Description}
	var id int64
	err := s.rt.query(ctx, "create_department", func(ctx context.Context) error {
		var err error
		id, err = s.repo.Create(ctx, department)
		return err
	})
	if err != nil {
		if repository.IsUniqueViolation(err, repository.ConstraintDepartmentCode) {
			return 0, appErrors.Clone(appErrors.ErrConflict, "department code already exists")
		}
		return 0, appErrors.Internal(err, "failed to create department")
	}

	s.rt.Logger.Info("department created", zap.Int64("department_id", id), zap.String("code", req.Code))
	return id, nil
}

// Delete removes a department that no subject references.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	var deleted bool
	err := s.rt.query(ctx, "delete_department", func(ctx context.Context) error {
		var err error
		deleted, err = s.repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return appErrors.Clone(appErrors.ErrRestricted, "department still has subjects")
		}
		return appErrors.Internal(err, "failed to delete department")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "department not found")
	}
	return nil
}
