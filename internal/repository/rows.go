package repository

import (
	"database/sql"

	"github.com/noah-isme/classroom-api/internal/models"
)

// The null* types receive LEFT JOIN columns aliased as "<prefix>.<column>".

type nullDepartment struct {
	ID          sql.NullInt64  `db:"id"`
	Code        sql.NullString `db:"code"`
	Name        sql.NullString `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   sql.NullTime   `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
}

func (n nullDepartment) model() *models.Department {
	if !n.ID.Valid {
		return nil
	}
	return &models.Department{
		ID:          n.ID.Int64,
		Code:        n.Code.String,
		Name:        n.Name.String,
		Description: n.Description.String,
		CreatedAt:   n.CreatedAt.Time,
		UpdatedAt:   n.UpdatedAt.Time,
	}
}

type nullSubject struct {
	ID           sql.NullInt64  `db:"id"`
	DepartmentID sql.NullInt64  `db:"department_id"`
	Code         sql.NullString `db:"code"`
	Name         sql.NullString `db:"name"`
	Description  sql.NullString `db:"description"`
	CreatedAt    sql.NullTime   `db:"created_at"`
	UpdatedAt    sql.NullTime   `db:"updated_at"`
}

func (n nullSubject) model() *models.Subject {
	if !n.ID.Valid {
		return nil
	}
	return &models.Subject{
		ID:           n.ID.Int64,
		DepartmentID: n.DepartmentID.Int64,
		Code:         n.Code.String,
		Name:         n.Name.String,
		Description:  n.Description.String,
		CreatedAt:    n.CreatedAt.Time,
		UpdatedAt:    n.UpdatedAt.Time,
	}
}

type nullUser struct {
	ID            sql.NullString `db:"id"`
	Name          sql.NullString `db:"name"`
	Email         sql.NullString `db:"email"`
	EmailVerified sql.NullBool   `db:"email_verified"`
	Image         sql.NullString `db:"image"`
	ImageCldPubID sql.NullString `db:"image_cld_pub_id"`
	Role          sql.NullString `db:"role"`
	CreatedAt     sql.NullTime   `db:"created_at"`
	UpdatedAt     sql.NullTime   `db:"updated_at"`
}

func (n nullUser) model() *models.User {
	if !n.ID.Valid {
		return nil
	}
	return &models.User{
		ID:            n.ID.String,
		Name:          n.Name.String,
		Email:         n.Email.String,
		EmailVerified: n.EmailVerified.Bool,
		Image:         nullableString(n.Image),
		ImageCldPubID: nullableString(n.ImageCldPubID),
		Role:          models.UserRole(n.Role.String),
		CreatedAt:     n.CreatedAt.Time,
		UpdatedAt:     n.UpdatedAt.Time,
	}
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
