package models

import "time"

// Subject is a course offered by a department.
type Subject struct {
	ID           int64     `db:"id" json:"id"`
	DepartmentID int64     `db:"department_id" json:"departmentId"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// SubjectListItem is a subject with its department; Department is nil when the join finds nothing.
type SubjectListItem struct {
	Subject
	Department *Department `json:"department"`
}

// SubjectFilter captures the validated filters for listing subjects.
type SubjectFilter struct {
	Search     string
	Department string
	PageRequest
}

// CreateSubjectRequest is the payload for creating a subject.
type CreateSubjectRequest struct {
	DepartmentID int64  `json:"departmentId" validate:"required,gt=0"`
	Code         string `json:"code" validate:"required,max=50"`
	Name         string `json:"name" validate:"required,max=255"`
	Description  string `json:"description" validate:"required,max=500"`
}
