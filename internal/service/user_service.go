package service

import (
	"context"

	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
}

// UserService exposes the user directory.
type UserService struct {
	repo userRepository
	rt   Runtime
}

// NewUserService constructs UserService.
func NewUserService(repo userRepository, rt Runtime) *UserService {
	return &UserService{repo: repo, rt: rt.normalise()}
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, models.Pagination, error) {
	var (
		users []models.User
		total int
	)
	err := s.rt.query(ctx, "list_users", func(ctx context.Context) error {
		var err error
		users, total, err = s.repo.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, models.Pagination{}, appErrors.Internal(err, "failed to list users")
	}
	return users, models.NewPagination(filter.PageRequest, total), nil
}
