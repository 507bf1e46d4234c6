package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

func TestParseClassFilter(t *testing.T) {
	filter, err := ParseClassFilter(url.Values{"search": {"  algebra "}, "subject": {"3"}, "teacher": {"user_abc"}, "limit": {"5"}})
	require.NoError(t, err)
	assert.Equal(t, "algebra", filter.Search)
	require.NotNil(t, filter.SubjectID)
	assert.Equal(t, int64(3), *filter.SubjectID)
	assert.Equal(t, "user_abc", filter.TeacherID)
	assert.Equal(t, 5, filter.Limit)
}

func TestParseClassFilterRejectsBadSubject(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-2", "1.5"} {
		_, err := ParseClassFilter(url.Values{"subject": {raw}})
		require.Error(t, err, raw)
		appErr := appErrors.FromError(err)
		assert.Equal(t, 400, appErr.Status)
		assert.Equal(t, "Invalid subject filter", appErr.Message)
	}
}

func TestParseClassFilterEmpty(t *testing.T) {
	filter, err := ParseClassFilter(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, filter.SubjectID)
	assert.Equal(t, models.PageRequest{Page: 1, Limit: 10}, filter.PageRequest)
}

func TestParseSubjectFilter(t *testing.T) {
	filter, err := ParseSubjectFilter(url.Values{"department": {"50% off"}})
	require.NoError(t, err)
	assert.Equal(t, "50% off", filter.Department)
}

func TestParseUserFilter(t *testing.T) {
	filter, err := ParseUserFilter(url.Values{"role": {"teacher"}})
	require.NoError(t, err)
	require.NotNil(t, filter.Role)
	assert.Equal(t, models.RoleTeacher, *filter.Role)

	_, err = ParseUserFilter(url.Values{"role": {"parent"}})
	require.Error(t, err)
	assert.Equal(t, "Invalid role filter", appErrors.FromError(err).Message)
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-1", "9223372036854775808"} {
		_, ok := ParseID(raw)
		assert.False(t, ok, raw)
	}
}

func TestParseIDBeyondInt32(t *testing.T) {
	id, ok := ParseID("9999999999")
	assert.True(t, ok)
	assert.Equal(t, int64(9999999999), id)

	filter, err := ParseClassFilter(url.Values{"subject": {"9999999999"}})
	require.NoError(t, err)
	require.NotNil(t, filter.SubjectID)
	assert.Equal(t, int64(9999999999), *filter.SubjectID)
}
