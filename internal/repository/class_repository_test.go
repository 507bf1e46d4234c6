package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-api/internal/models"
)

var classRowColumns = []string{
	"id", "subject_id", "teacher_id", "invite_code", "name", "banner_cld_pub_id", "banner_url",
	"description", "capacity", "status", "schedules", "created_at", "updated_at",
	"subject.id", "subject.department_id", "subject.code", "subject.name", "subject.description", "subject.created_at", "subject.updated_at",
	"teacher.id", "teacher.name", "teacher.email", "teacher.email_verified", "teacher.image", "teacher.image_cld_pub_id", "teacher.role",
	"teacher.created_at", "teacher.updated_at",
}

func classValues(now time.Time) []driver.Value {
	return []driver.Value{
		5, 3, "user_t", "a1b2c3d4", "Algebra A", nil, nil,
		nil, 30, "active", []byte(`[{"day":"mon"}]`), now, now,
		3, 2, "MTH101", "Algebra", "Intro", now, now,
		"user_t", "Grace", "grace@example.com", true, nil, nil, "teacher", now, now,
	}
}

func TestListClassesOffsetPastTotal(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM classes c WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY c.created_at DESC LIMIT 10 OFFSET 20")).
		WillReturnRows(sqlmock.NewRows(classRowColumns))
	mock.ExpectCommit()

	filter := models.ClassFilter{PageRequest: models.PageRequest{Page: 3, Limit: 10}}
	classes, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.NotNil(t, classes)
	assert.Empty(t, classes)
	assert.Equal(t, 4, total)
	assert.Equal(t, models.Pagination{Page: 3, Limit: 10, Total: 4, TotalPages: 1}, models.NewPagination(filter.PageRequest, total))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListClassesFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	now := time.Now()
	subjectID := int64(3)
	where := `WHERE 1=1 AND c.name ILIKE $1 ESCAPE '\' AND c.subject_id = $2 AND c.teacher_id = $3`

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM classes c " + where)).
		WithArgs("%alg%", subjectID, "user_t").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(classFrom + " " + where + " ORDER BY c.created_at DESC LIMIT 10 OFFSET 0")).
		WithArgs("%alg%", subjectID, "user_t").
		WillReturnRows(sqlmock.NewRows(classRowColumns).AddRow(classValues(now)...))
	mock.ExpectCommit()

	filter := models.ClassFilter{Search: "alg", SubjectID: &subjectID, TeacherID: "user_t", PageRequest: models.PageRequest{Page: 1, Limit: 10}}
	classes, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, classes, 1)
	assert.Equal(t, "a1b2c3d4", classes[0].InviteCode)
	require.NotNil(t, classes[0].Subject)
	assert.Equal(t, "MTH101", classes[0].Subject.Code)
	require.NotNil(t, classes[0].Teacher)
	assert.Equal(t, "Grace", classes[0].Teacher.Name)
	assert.JSONEq(t, `[{"day":"mon"}]`, string(classes[0].Schedules))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListClassesRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, _, err := repo.List(context.Background(), models.ClassFilter{PageRequest: models.PageRequest{Page: 1, Limit: 10}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindClassDetailNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN departments d ON d.id = s.department_id WHERE c.id = $1")).
		WithArgs(int64(77)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindDetail(context.Background(), 77)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestFindClassDetailIncludesDepartment(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	now := time.Now()
	columns := append(append([]string{}, classRowColumns...),
		"department.id", "department.code", "department.name", "department.description", "department.created_at", "department.updated_at")
	values := append(classValues(now), 2, "SCI", "Science", "Natural sciences", now, now)

	mock.ExpectQuery("WHERE c.id = ").WithArgs(int64(5)).WillReturnRows(sqlmock.NewRows(columns).AddRow(values...))

	detail, err := repo.FindDetail(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), detail.ID)
	require.NotNil(t, detail.Department)
	assert.Equal(t, "Science", detail.Department.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClassReturnsID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery("INSERT INTO classes").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	class := &models.Class{SubjectID: 3, TeacherID: "user_t", InviteCode: "deadbeef", Name: "Algebra A", Capacity: 50, Status: models.ClassStatusActive}
	id, err := repo.Create(context.Background(), class)
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
	assert.Equal(t, int64(12), class.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClassInviteCodeConflict(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery("INSERT INTO classes").
		WillReturnError(&pq.Error{Code: "23505", Constraint: ConstraintInviteCode})

	_, err := repo.Create(context.Background(), &models.Class{InviteCode: "deadbeef"})
	require.Error(t, err)
	assert.True(t, IsInviteCodeConflict(err))
	assert.False(t, IsForeignKeyViolation(err))
}

func TestUpdateClassMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec("UPDATE classes SET").WillReturnResult(sqlmock.NewResult(0, 0))

	name := "x"
	err := repo.Update(context.Background(), 404, models.UpdateClassRequest{Name: &name})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestUpdateClassWritesOnlyChangedColumns(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	name := "Algebra B"
	status := models.ClassStatusArchived
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE classes SET name = $1, status = $2, updated_at = NOW() WHERE 1=1 AND id = $3`)).
		WithArgs("Algebra B", models.ClassStatusArchived, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 5, models.UpdateClassRequest{Name: &name, Status: &status})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateClassSchedulesAndTeacher(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	teacher := "user_t2"
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE classes SET teacher_id = $1, schedules = $2, updated_at = NOW() WHERE 1=1 AND id = $3`)).
		WithArgs("user_t2", `[{"day":"tue"}]`, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 5, models.UpdateClassRequest{TeacherID: &teacher, Schedules: models.Schedules(`[{"day":"tue"}]`)})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestErrorClassification(t *testing.T) {
	otherUnique := &pq.Error{Code: "23505", Constraint: ConstraintSubjectCode}
	assert.False(t, IsInviteCodeConflict(otherUnique))
	assert.True(t, IsUniqueViolation(otherUnique, ""))
	assert.True(t, IsCheckViolation(&pq.Error{Code: "23514"}))
	assert.True(t, IsInvalidText(&pq.Error{Code: "22P02"}))
	assert.False(t, IsUniqueViolation(sql.ErrNoRows, ""))
}
