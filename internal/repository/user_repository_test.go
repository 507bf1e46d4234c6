package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

var userRowColumns = []string{"id", "name", "email", "email_verified", "image", "image_cld_pub_id", "role", "created_at", "updated_at"}

func TestFindUserByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(userRowColumns).AddRow("user_1", "Ada", "ada@example.com", true, nil, nil, "teacher", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE id = $1")).
		WithArgs("user_1").
		WillReturnRows(rows)

	user, err := repo.FindByID(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.Nil(t, user.Image)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsersWithFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	role := models.RoleStudent
	filter := models.UserFilter{Search: "ada", Role: &role, PageRequest: models.PageRequest{Page: 2, Limit: 5}}
	where := `WHERE 1=1 AND (name ILIKE $1 ESCAPE '\' OR email ILIKE $1 ESCAPE '\') AND role = $2`

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users " + where)).
		WithArgs("%ada%", "student").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users " + where + " ORDER BY created_at DESC LIMIT 5 OFFSET 5")).
		WithArgs("%ada%", "student").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow("user_6", "Ada", "ada6@example.com", false, nil, nil, "student", now, now))
	mock.ExpectCommit()

	users, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 6, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
