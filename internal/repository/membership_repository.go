package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/query"
)

const memberColumns = `u.id, u.name, u.email, u.email_verified, u.image, u.image_cld_pub_id, u.role, u.created_at, u.updated_at`

// MembershipRepository lists the users on one side of a class roster.
type MembershipRepository struct {
	db *sqlx.DB
}

// NewMembershipRepository creates a new repository instance.
func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// List returns one page of distinct members and the distinct member count.
func (r *MembershipRepository) List(ctx context.Context, m query.Membership, page models.PageRequest) ([]models.User, int, error) {
	var b query.Builder
	m.Apply(&b)
	where := b.Where()

	var total int
	users := make([]models.User, 0)
	err := readSnapshot(ctx, r.db, func(tx *sqlx.Tx) error {
		countQuery := fmt.Sprintf("SELECT COUNT(DISTINCT u.id) FROM %s %s", m.From(), where)
		if err := tx.GetContext(ctx, &total, countQuery, b.Args()...); err != nil {
			return fmt.Errorf("count %s members: %w", m.Role(), err)
		}
		listQuery := fmt.Sprintf("SELECT %s FROM %s %s GROUP BY u.id ORDER BY u.created_at DESC LIMIT %d OFFSET %d",
			memberColumns, m.From(), where, page.Limit, page.Offset())
		if err := tx.SelectContext(ctx, &users, listQuery, b.Args()...); err != nil {
			return fmt.Errorf("list %s members: %w", m.Role(), err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// All returns every distinct member, newest first.
func (r *MembershipRepository) All(ctx context.Context, m query.Membership) ([]models.User, error) {
	var b query.Builder
	m.Apply(&b)

	users := make([]models.User, 0)
	listQuery := fmt.Sprintf("SELECT %s FROM %s %s GROUP BY u.id ORDER BY u.created_at DESC", memberColumns, m.From(), b.Where())
	if err := r.db.SelectContext(ctx, &users, listQuery, b.Args()...); err != nil {
		return nil, fmt.Errorf("export %s members: %w", m.Role(), err)
	}
	return users, nil
}
