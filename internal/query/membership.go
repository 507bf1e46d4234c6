package query

import (
	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

// Membership selects one side of a class roster. Implementations are TeacherMembership
// and StudentMembership; each knows how users relate to the class on its side.
type Membership interface {
	Role() models.UserRole
	// From is the users-rooted join reaching the class on this side.
	From() string
	// Apply adds the role and class conditions.
	Apply(b *Builder)
	membership()
}

// TeacherMembership resolves the owner of a class.
type TeacherMembership struct {
	ClassID int64
}

func (TeacherMembership) Role() models.UserRole { return models.RoleTeacher }

func (TeacherMembership) From() string {
	return "users u INNER JOIN classes c ON c.teacher_id = u.id"
}

func (m TeacherMembership) Apply(b *Builder) {
	b.Eq("u.role", string(models.RoleTeacher))
	b.Eq("c.id", m.ClassID)
}

func (TeacherMembership) membership() {}

// StudentMembership resolves the students enrolled in a class.
type StudentMembership struct {
	ClassID int64
}

func (StudentMembership) Role() models.UserRole { return models.RoleStudent }

func (StudentMembership) From() string {
	return "users u INNER JOIN enrollments e ON e.student_id = u.id"
}

func (m StudentMembership) Apply(b *Builder) {
	b.Eq("u.role", string(models.RoleStudent))
	b.Eq("e.class_id", m.ClassID)
}

func (StudentMembership) membership() {}

// NewMembership validates the requested roster role.
func NewMembership(classID int64, role string) (Membership, error) {
	switch models.UserRole(role) {
	case models.RoleTeacher:
		return TeacherMembership{ClassID: classID}, nil
	case models.RoleStudent:
		return StudentMembership{ClassID: classID}, nil
	default:
		return nil, appErrors.Validation("Invalid role")
	}
}
