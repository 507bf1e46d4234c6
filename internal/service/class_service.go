package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/query"
	"github.com/noah-isme/classroom-api/internal/repository"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/export"
	"github.com/noah-isme/classroom-api/pkg/middleware/requestid"
	"github.com/noah-isme/classroom-api/pkg/retry"
)

const defaultInviteCodeAttempts = 3

type classRepository interface {
	List(ctx context.Context, filter models.ClassFilter) ([]models.ClassListItem, int, error)
	FindDetail(ctx context.Context, id int64) (*models.ClassDetail, error)
	FindByID(ctx context.Context, id int64) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) (int64, error)
	Update(ctx context.Context, id int64, changes models.UpdateClassRequest) error
}

type memberRepository interface {
	List(ctx context.Context, m query.Membership, page models.PageRequest) ([]models.User, int, error)
	All(ctx context.Context, m query.Membership) ([]models.User, error)
}

type teacherLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ClassOptions tunes class creation.
type ClassOptions struct {
	InviteCodeAttempts int
	InviteCodes        InviteCodeGenerator
}

// ExportFile is a rendered roster ready to be served.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ClassService coordinates class operations.
type ClassService struct {
	repo      classRepository
	members   memberRepository
	users     teacherLookup
	validator *validator.Validate
	rt        Runtime
	opts      ClassOptions
}

// NewClassService constructs ClassService.
func NewClassService(repo classRepository, members memberRepository, users teacherLookup, validate *validator.Validate, rt Runtime, opts ClassOptions) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if opts.InviteCodeAttempts <= 0 {
		opts.InviteCodeAttempts = defaultInviteCodeAttempts
	}
	if opts.InviteCodes == nil {
		opts.InviteCodes = RandomInviteCode
	}
	return &ClassService{repo: repo, members: members, users: users, validator: validate, rt: rt.normalise(), opts: opts}
}

// List returns a page of classes with subject and teacher.
func (s *ClassService) List(ctx context.Context, filter models.ClassFilter) ([]models.ClassListItem, models.Pagination, error) {
	var (
		classes []models.ClassListItem
		total   int
	)
	err := s.rt.query(ctx, "list_classes", func(ctx context.Context) error {
		var err error
		classes, total, err = s.repo.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, models.Pagination{}, appErrors.Internal(err, "failed to list classes")
	}
	return classes, models.NewPagination(filter.PageRequest, total), nil
}

// Get returns a class with subject, department and teacher.
func (s *ClassService) Get(ctx context.Context, id int64) (*models.ClassDetail, error) {
	var detail *models.ClassDetail
	err := s.rt.query(ctx, "get_class", func(ctx context.Context) error {
		var err error
		detail, err = s.repo.FindDetail(ctx, id)
		return err
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, classNotFound()
		}
		return nil, appErrors.Internal(err, "failed to load class")
	}
	return detail, nil
}

// Create inserts a class under a freshly generated invite code, retrying when the code is taken.
func (s *ClassService) Create(ctx context.Context, caller models.Identity, req models.CreateClassRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	if req.Schedules != nil && !req.Schedules.IsArray() {
		return 0, appErrors.Validation("schedules must be an array")
	}

	teacherID, err := s.resolveTeacher(caller, req.TeacherID)
	if err != nil {
		return 0, err
	}
	if err := s.ensureTeacher(ctx, teacherID); err != nil {
		return 0, err
	}

	class := &models.Class{
		SubjectID:      req.SubjectID,
		TeacherID:      teacherID,
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		BannerURL:      req.BannerURL,
		BannerCldPubID: req.BannerCldPubID,
		Capacity:       models.DefaultClassCapacity,
		Status:         models.ClassStatusActive,
		Schedules:      req.Schedules,
	}
	if req.Capacity != nil {
		class.Capacity = *req.Capacity
	}
	if req.Status != "" {
		class.Status = req.Status
	}

	var id int64
	err = s.rt.query(ctx, "create_class", func(ctx context.Context) error {
		var err error
		id, err = retry.OnConflict[string, int64](ctx, s.opts.InviteCodeAttempts,
			s.opts.InviteCodes,
			func(ctx context.Context, code string) (int64, error) {
				class.InviteCode = code
				return s.repo.Create(ctx, class)
			},
			repository.IsInviteCodeConflict,
			func(attempt int, code string, _ error) {
				s.rt.Metrics.RecordInviteCodeCollision()
				s.rt.Logger.Warn("invite code collision",
					zap.Int("attempt", attempt),
					zap.String("invite_code", code),
					zap.String("request_id", requestid.FromContext(ctx)),
				)
			},
		)
		return err
	})
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			s.rt.Metrics.RecordInviteCodeExhausted()
			return 0, appErrors.Wrap(err, appErrors.ErrInviteCodeExhausted.Code, appErrors.ErrInviteCodeExhausted.Status, appErrors.ErrInviteCodeExhausted.Message)
		}
		return 0, s.mapWriteError(err, "failed to create class")
	}

	s.rt.Logger.Info("class created", zap.Int64("class_id", id), zap.String("teacher_id", teacherID))
	return id, nil
}

// Update applies a partial update. Only the owning teacher or an admin may change a class.
func (s *ClassService) Update(ctx context.Context, caller models.Identity, id int64, req models.UpdateClassRequest) (*models.ClassDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	if req.Empty() {
		return nil, appErrors.Validation("no fields to update")
	}
	if req.Schedules != nil && !req.Schedules.IsArray() {
		return nil, appErrors.Validation("schedules must be an array")
	}

	class, err := s.loadOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	changes := req
	if req.TeacherID != nil {
		if *req.TeacherID == class.TeacherID {
			changes.TeacherID = nil
		} else {
			if !caller.IsAdmin() {
				return nil, appErrors.Clone(appErrors.ErrForbidden, "only an admin can reassign a class")
			}
			if err := s.ensureTeacher(ctx, *req.TeacherID); err != nil {
				return nil, err
			}
		}
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		changes.Name = &name
	}

	err = s.rt.query(ctx, "update_class", func(ctx context.Context) error {
		return s.repo.Update(ctx, id, changes)
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, classNotFound()
		}
		return nil, s.mapWriteError(err, "failed to update class")
	}

	return s.Get(ctx, id)
}

// ListMembers returns a page of the class's teacher or students.
func (s *ClassService) ListMembers(ctx context.Context, classID int64, role string, page models.PageRequest) ([]models.User, models.Pagination, error) {
	membership, err := query.NewMembership(classID, role)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	var (
		users []models.User
		total int
	)
	err = s.rt.query(ctx, "list_class_members", func(ctx context.Context) error {
		var err error
		users, total, err = s.members.List(ctx, membership, page)
		return err
	})
	if err != nil {
		return nil, models.Pagination{}, appErrors.Internal(err, "failed to fetch class users")
	}
	return users, models.NewPagination(page, total), nil
}

// ExportMembers renders the full roster for one role as CSV or PDF.
func (s *ClassService) ExportMembers(ctx context.Context, caller models.Identity, classID int64, role string, format export.Format) (*ExportFile, error) {
	membership, err := query.NewMembership(classID, role)
	if err != nil {
		return nil, err
	}
	class, err := s.loadOwned(ctx, caller, classID)
	if err != nil {
		return nil, err
	}

	var users []models.User
	err = s.rt.query(ctx, "export_class_members", func(ctx context.Context) error {
		var err error
		users, err = s.members.All(ctx, membership)
		return err
	})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to fetch class users")
	}

	table := export.Table{
		Title:   fmt.Sprintf("%s - %ss", class.Name, membership.Role()),
		Columns: []string{"Name", "Email", "Email Verified", "Joined"},
		Rows:    make([][]string, 0, len(users)),
	}
	for _, u := range users {
		verified := "no"
		if u.EmailVerified {
			verified = "yes"
		}
		table.Rows = append(table.Rows, []string{u.Name, u.Email, verified, u.CreatedAt.UTC().Format(time.DateOnly)})
	}

	data, err := export.RendererFor(format).Render(table)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render roster")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("class-%d-%ss.%s", classID, membership.Role(), format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

func (s *ClassService) loadOwned(ctx context.Context, caller models.Identity, id int64) (*models.Class, error) {
	var class *models.Class
	err := s.rt.query(ctx, "find_class", func(ctx context.Context) error {
		var err error
		class, err = s.repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, classNotFound()
		}
		return nil, appErrors.Internal(err, "failed to load class")
	}
	if !caller.IsAdmin() && class.TeacherID != caller.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the class teacher can manage this class")
	}
	return class, nil
}

func (s *ClassService) resolveTeacher(caller models.Identity, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	switch caller.Role {
	case models.RoleAdmin:
		if requested == "" {
			return "", appErrors.Validation("teacherId is required")
		}
		return requested, nil
	case models.RoleTeacher:
		if requested != "" && requested != caller.UserID {
			return "", appErrors.Clone(appErrors.ErrForbidden, "teachers can only create their own classes")
		}
		return caller.UserID, nil
	default:
		return "", appErrors.ErrForbidden
	}
}

func (s *ClassService) ensureTeacher(ctx context.Context, userID string) error {
	var user *models.User
	err := s.rt.query(ctx, "find_teacher", func(ctx context.Context) error {
		var err error
		user, err = s.users.FindByID(ctx, userID)
		return err
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return appErrors.Validation("teacherId does not reference a user")
		}
		return appErrors.Internal(err, "failed to load teacher")
	}
	if user.Role != models.RoleTeacher {
		return appErrors.Validation("teacherId must reference a teacher")
	}
	return nil
}

func (s *ClassService) mapWriteError(err error, message string) error {
	switch {
	case repository.IsForeignKeyViolation(err):
		return appErrors.Validation("subjectId does not reference a subject")
	case repository.IsCheckViolation(err):
		return appErrors.Validation("capacity must be greater than zero")
	case repository.IsInvalidText(err):
		return appErrors.Validation("invalid class status")
	default:
		return appErrors.Internal(err, message)
	}
}

func classNotFound() error {
	return appErrors.Clone(appErrors.ErrNotFound, "No Class found")
}
