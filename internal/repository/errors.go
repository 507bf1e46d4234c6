package repository

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes the services react to.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateCheckViolation      = "23514"
	sqlStateInvalidText         = "22P02"
)

// Constraint names declared in the schema.
const (
	ConstraintInviteCode     = "classes_invite_code_key"
	ConstraintDepartmentCode = "departments_code_key"
	ConstraintSubjectCode    = "subjects_code_key"
)

func sqlState(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil, false
	}
	return pqErr, true
}

// IsUniqueViolation reports a unique constraint failure; an empty constraint matches any.
func IsUniqueViolation(err error, constraint string) bool {
	pqErr, ok := sqlState(err)
	if !ok || string(pqErr.Code) != sqlStateUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// IsInviteCodeConflict reports a duplicate class invite code.
func IsInviteCodeConflict(err error) bool {
	return IsUniqueViolation(err, ConstraintInviteCode)
}

// IsForeignKeyViolation reports a missing referenced row or a restricted delete.
func IsForeignKeyViolation(err error) bool {
	pqErr, ok := sqlState(err)
	return ok && string(pqErr.Code) == sqlStateForeignKeyViolation
}

// IsCheckViolation reports a failed CHECK constraint.
func IsCheckViolation(err error) bool {
	pqErr, ok := sqlState(err)
	return ok && string(pqErr.Code) == sqlStateCheckViolation
}

// IsInvalidText reports a value the column type could not parse, such as an unknown enum label.
func IsInvalidText(err error) bool {
	pqErr, ok := sqlState(err)
	return ok && string(pqErr.Code) == sqlStateInvalidText
}
