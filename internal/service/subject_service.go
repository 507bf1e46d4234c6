package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/repository"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.SubjectListItem, int, error)
	Create(ctx context.Context, subject *models.Subject) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// SubjectService manages subjects.
type SubjectService struct {
	repo      subjectRepository
	validator *validator.Validate
	rt        Runtime
}

// NewSubjectService constructs SubjectService.
func NewSubjectService(repo subjectRepository, validate *validator.Validate, rt Runtime) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	return &SubjectService{repo: repo, validator: validate, rt: rt.normalise()}
}

// List returns a page of subjects with their departments.
func (s *SubjectService) List(ctx context.Context, filter models.SubjectFilter) ([]models.SubjectListItem, models.Pagination, error) {
	var (
		subjects []models.SubjectListItem
		total    int
	)
	err := s.rt.query(ctx, "list_subjects", func(ctx context.Context) error {
		var err error
		subjects, total, err = s.repo.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, models.Pagination{}, appErrors.Internal(err, "failed to list subjects")
	}
	return subjects, models.NewPagination(filter.PageRequest, total), nil
}

// Create adds a subject under an existing department.
func (s *SubjectService) Create(ctx context.Context, req models.CreateSubjectRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	subject := &models.Subject{DepartmentID: req.DepartmentID, Code: req.Code, Name: req.Name, Description: req.Description}
	var id int64
	err := s.rt.query(ctx, "create_subject", func(ctx context.Context) error {
		var err error
		id, err = s.repo.Create(ctx, subject)
		return err
	})
	switch {
	case err == nil:
	case repository.IsForeignKeyViolation(err):
		return 0, appErrors.Validation("departmentId does not reference a department")
	case repository.IsUniqueViolation(err, repository.ConstraintSubjectCode):
		return 0, appErrors.Clone(appErrors.ErrConflict, "subject code already exists")
	default:
		return 0, appErrors.Internal(err, "failed to create subject")
	}

	s.rt.Logger.Info("subject created", zap.Int64("subject_id", id), zap.String("code", req.Code))
	return id, nil
}

// Delete removes a subject together with its classes and their enrollments.
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	var deleted bool
	err := s.rt.query(ctx, "delete_subject", func(ctx context.Context) error {
		var err error
		deleted, err = s.repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return appErrors.Internal(err, "failed to delete subject")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return nil
}
