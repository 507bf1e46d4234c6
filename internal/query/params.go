package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

func pageFrom(values url.Values) models.PageRequest {
	return ParsePage(values.Get("page"), values.Get("limit"))
}

// ParseClassFilter validates class list parameters.
func ParseClassFilter(values url.Values) (models.ClassFilter, error) {
	filter := models.ClassFilter{
		Search:      strings.TrimSpace(values.Get("search")),
		TeacherID:   strings.TrimSpace(values.Get("teacher")),
		PageRequest: pageFrom(values),
	}
	if raw := strings.TrimSpace(values.Get("subject")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return models.ClassFilter{}, appErrors.Validation("Invalid subject filter")
		}
		filter.SubjectID = &id
	}
	return filter, nil
}

// ParseSubjectFilter validates subject list parameters.
func ParseSubjectFilter(values url.Values) (models.SubjectFilter, error) {
	return models.SubjectFilter{
		Search:      strings.TrimSpace(values.Get("search")),
		Department:  strings.TrimSpace(values.Get("department")),
		PageRequest: pageFrom(values),
	}, nil
}

// ParseUserFilter validates user list parameters.
func ParseUserFilter(values url.Values) (models.UserFilter, error) {
	filter := models.UserFilter{
		Search:      strings.TrimSpace(values.Get("search")),
		PageRequest: pageFrom(values),
	}
	if raw := strings.TrimSpace(values.Get("role")); raw != "" {
		role := models.UserRole(raw)
		if !role.Valid() {
			return models.UserFilter{}, appErrors.Validation("Invalid role filter")
		}
		filter.Role = &role
	}
	return filter, nil
}

// ParseID parses a positive integer path identifier.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
