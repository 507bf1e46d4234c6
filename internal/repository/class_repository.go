package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/query"
)

const classColumns = `c.id, c.subject_id, c.teacher_id, c.invite_code, c.name, c.banner_cld_pub_id, c.banner_url,
 c.description, c.capacity, c.status, c.schedules, c.created_at, c.updated_at`

const classRelations = `,
 s.id AS "subject.id", s.department_id AS "subject.department_id", s.code AS "subject.code", s.name AS "subject.name",
 s.description AS "subject.description", s.created_at AS "subject.created_at", s.updated_at AS "subject.updated_at",
 u.id AS "teacher.id", u.name AS "teacher.name", u.email AS "teacher.email", u.email_verified AS "teacher.email_verified",
 u.image AS "teacher.image", u.image_cld_pub_id AS "teacher.image_cld_pub_id", u.role AS "teacher.role",
 u.created_at AS "teacher.created_at", u.updated_at AS "teacher.updated_at"`

const classDepartment = `,
 d.id AS "department.id", d.code AS "department.code", d.name AS "department.name",
 d.description AS "department.description", d.created_at AS "department.created_at", d.updated_at AS "department.updated_at"`

const classFrom = `FROM classes c LEFT JOIN subjects s ON s.id = c.subject_id LEFT JOIN users u ON u.id = c.teacher_id`

type classRow struct {
	models.Class
	Subject nullSubject `db:"subject"`
	Teacher nullUser    `db:"teacher"`
}

func (r classRow) item() models.ClassListItem {
	return models.ClassListItem{Class: r.Class, Subject: r.Subject.model(), Teacher: r.Teacher.model()}
}

type classDetailRow struct {
	classRow
	Department nullDepartment `db:"department"`
}

// ClassRepository handles persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository creates a new repository instance.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns one page of classes with subject and teacher, and the total match count.
func (r *ClassRepository) List(ctx context.Context, filter models.ClassFilter) ([]models.ClassListItem, int, error) {
	var b query.Builder
	if filter.Search != "" {
		b.ILike(filter.Search, "c.name")
	}
	if filter.SubjectID != nil {
		b.Eq("c.subject_id", *filter.SubjectID)
	}
	if filter.TeacherID != "" {
		b.Eq("c.teacher_id", filter.TeacherID)
	}
	where := b.Where()

	var total int
	var rows []classRow
	err := readSnapshot(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &total, "SELECT COUNT(*) FROM classes c "+where, b.Args()...); err != nil {
			return fmt.Errorf("count classes: %w", err)
		}
		listQuery := fmt.Sprintf("SELECT %s%s %s %s ORDER BY c.created_at DESC LIMIT %d OFFSET %d",
			classColumns, classRelations, classFrom, where, filter.Limit, filter.Offset())
		if err := tx.SelectContext(ctx, &rows, listQuery, b.Args()...); err != nil {
			return fmt.Errorf("list classes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	items := make([]models.ClassListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.item())
	}
	return items, total, nil
}

// FindDetail returns a class with subject, department and teacher. Missing ids yield sql.ErrNoRows.
func (r *ClassRepository) FindDetail(ctx context.Context, id int64) (*models.ClassDetail, error) {
	q := fmt.Sprintf("SELECT %s%s%s %s LEFT JOIN departments d ON d.id = s.department_id WHERE c.id = $1",
		classColumns, classRelations, classDepartment, classFrom)
	var row classDetailRow
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, fmt.Errorf("find class detail: %w", err)
	}
	return &models.ClassDetail{ClassListItem: row.item(), Department: row.Department.model()}, nil
}

// FindByID returns the bare class row.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	var class models.Class
	if err := r.db.GetContext(ctx, &class, "SELECT "+classColumns+" FROM classes c WHERE c.id = $1", id); err != nil {
		return nil, fmt.Errorf("find class: %w", err)
	}
	return &class, nil
}

// Create inserts a class using class.InviteCode and returns the new id.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) (int64, error) {
	const q = `INSERT INTO classes (subject_id, teacher_id, invite_code, name, banner_cld_pub_id, banner_url, description, capacity, status, schedules)
VALUES (:subject_id, :teacher_id, :invite_code, :name, :banner_cld_pub_id, :banner_url, :description, :capacity, :status, :schedules)
RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, q, class)
	if err != nil {
		return 0, fmt.Errorf("create class: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("create class: %w", err)
		}
		return 0, fmt.Errorf("create class: %w", sql.ErrNoRows)
	}
	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, fmt.Errorf("create class: %w", err)
	}
	class.ID = id
	return id, nil
}

// Update writes only the columns present in changes.
func (r *ClassRepository) Update(ctx context.Context, id int64, changes models.UpdateClassRequest) error {
	var b query.Builder
	if changes.SubjectID != nil {
		b.Set("subject_id", *changes.SubjectID)
	}
	if changes.TeacherID != nil {
		b.Set("teacher_id", *changes.TeacherID)
	}
	if changes.Name != nil {
		b.Set("name", *changes.Name)
	}
	if changes.BannerCldPubID != nil {
		b.Set("banner_cld_pub_id", *changes.BannerCldPubID)
	}
	if changes.BannerURL != nil {
		b.Set("banner_url", *changes.BannerURL)
	}
	if changes.Description != nil {
		b.Set("description", *changes.Description)
	}
	if changes.Capacity != nil {
		b.Set("capacity", *changes.Capacity)
	}
	if changes.Status != nil {
		b.Set("status", *changes.Status)
	}
	if changes.Schedules != nil {
		b.Set("schedules", changes.Schedules)
	}
	b.SetExpr("updated_at = NOW()")
	b.Eq("id", id)

	q := fmt.Sprintf("UPDATE classes SET %s %s", b.Assignments(), b.Where())
	res, err := r.db.ExecContext(ctx, q, b.Args()...)
	if err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update class: %w", sql.ErrNoRows)
	}
	return nil
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
