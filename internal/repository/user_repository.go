package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/query"
)

const userColumns = `id, name, email, email_verified, image, image_cld_pub_id, role, created_at, updated_at`

// UserRepository reads users provisioned by the auth provider.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new repository instance.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE id = $1", id); err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// List returns one page of users matching filter and the total match count.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	var b query.Builder
	if filter.Search != "" {
		b.ILike(filter.Search, "name", "email")
	}
	if filter.Role != nil {
		b.Eq("role", string(*filter.Role))
	}
	where := b.Where()

	var total int
	users := make([]models.User, 0)
	err := readSnapshot(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &total, "SELECT COUNT(*) FROM users "+where, b.Args()...); err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		listQuery := fmt.Sprintf("SELECT %s FROM users %s ORDER BY created_at DESC LIMIT %d OFFSET %d", userColumns, where, filter.Limit, filter.Offset())
		if err := tx.SelectContext(ctx, &users, listQuery, b.Args()...); err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
