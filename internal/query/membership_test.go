package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

func TestNewMembershipTeacher(t *testing.T) {
	m, err := NewMembership(7, "teacher")
	require.NoError(t, err)
	assert.Equal(t, TeacherMembership{ClassID: 7}, m)
	assert.Equal(t, models.RoleTeacher, m.Role())

	var b Builder
	m.Apply(&b)
	assert.Contains(t, m.From(), "JOIN classes c ON c.teacher_id = u.id")
	assert.Equal(t, "WHERE 1=1 AND u.role = $1 AND c.id = $2", b.Where())
	assert.Equal(t, []interface{}{"teacher", int64(7)}, b.Args())
}

func TestNewMembershipStudent(t *testing.T) {
	m, err := NewMembership(7, "student")
	require.NoError(t, err)
	assert.Equal(t, StudentMembership{ClassID: 7}, m)

	var b Builder
	m.Apply(&b)
	assert.Contains(t, m.From(), "JOIN enrollments e ON e.student_id = u.id")
	assert.Equal(t, "WHERE 1=1 AND u.role = $1 AND e.class_id = $2", b.Where())
}

func TestNewMembershipRejectsUnknownRole(t *testing.T) {
	for _, role := range []string{"", "parent", "admin", "Teacher"} {
		_, err := NewMembership(7, role)
		require.Error(t, err, role)
		assert.ErrorIs(t, err, appErrors.ErrValidation)
		assert.Equal(t, "Invalid role", appErrors.FromError(err).Message)
	}
}
