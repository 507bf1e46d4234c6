package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/query"
)

const subjectSelect = `SELECT s.id, s.department_id, s.code, s.name, s.description, s.created_at, s.updated_at,
 d.id AS "department.id", d.code AS "department.code", d.name AS "department.name",
 d.description AS "department.description", d.created_at AS "department.created_at", d.updated_at AS "department.updated_at"`

const subjectFrom = `FROM subjects s LEFT JOIN departments d ON d.id = s.department_id`

type subjectRow struct {
	models.Subject
	Department nullDepartment `db:"department"`
}

// SubjectRepository handles persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns one page of subjects with their department and the total match count.
func (r *SubjectRepository) List(ctx context.Context, filter models.SubjectFilter) ([]models.SubjectListItem, int, error) {
	var b query.Builder
	if filter.Search != "" {
		b.ILike(filter.Search, "s.name", "s.code")
	}
	if filter.Department != "" {
		b.ILike(filter.Department, "d.name")
	}
	where := b.Where()

	var total int
	var rows []subjectRow
	err := readSnapshot(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s %s", subjectFrom, where), b.Args()...); err != nil {
			return fmt.Errorf("count subjects: %w", err)
		}
		listQuery := fmt.Sprintf("%s %s %s ORDER BY s.created_at DESC LIMIT %d OFFSET %d", subjectSelect, subjectFrom, where, filter.Limit, filter.Offset())
		if err := tx.SelectContext(ctx, &rows, listQuery, b.Args()...); err != nil {
			return fmt.Errorf("list subjects: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	items := make([]models.SubjectListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.SubjectListItem{Subject: row.Subject, Department: row.Department.model()})
	}
	return items, total, nil
}

// Create inserts a subject and returns its id.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) (int64, error) {
	const q = `INSERT INTO subjects (department_id, code, name, description) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int64
	if err := r.db.QueryRowxContext(ctx, q, subject.DepartmentID, subject.Code, subject.Name, subject.Description).Scan(&id); err != nil {
		return 0, fmt.Errorf("create subject: %w", err)
	}
	subject.ID = id
	return id, nil
}

// Delete removes a subject; its classes and their enrollments go with it.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete subject: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete subject: %w", err)
	}
	return affected > 0, nil
}
