package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/classroom-api/internal/models"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		page, limit string
		want        models.PageRequest
	}{
		{"", "", models.PageRequest{Page: 1, Limit: 10}},
		{"3", "25", models.PageRequest{Page: 3, Limit: 25}},
		{"abc", "xyz", models.PageRequest{Page: 1, Limit: 10}},
		{"0", "0", models.PageRequest{Page: 1, Limit: 10}},
		{"-4", "-5", models.PageRequest{Page: 1, Limit: 1}},
		{"2", "1000", models.PageRequest{Page: 2, Limit: 100}},
		{" 2 ", " 5 ", models.PageRequest{Page: 2, Limit: 5}},
		{"9223372036854775807", "100", models.PageRequest{Page: models.MaxPage, Limit: 100}},
		{"99999999999999999999", "99999999999999999999", models.PageRequest{Page: models.MaxPage, Limit: 100}},
		{"-99999999999999999999", "10", models.PageRequest{Page: 1, Limit: 10}},
	}
	for _, tc := range cases {
		got := ParsePage(tc.page, tc.limit)
		assert.Equal(t, tc.want, got, "page=%q limit=%q", tc.page, tc.limit)
		assert.LessOrEqual(t, got.Limit, models.MaxLimit)
		assert.GreaterOrEqual(t, got.Offset(), 0)
	}
}

func TestParsePageOffset(t *testing.T) {
	assert.Equal(t, 20, ParsePage("3", "10").Offset())
}

func TestParsePageHugePageKeepsOffsetPositive(t *testing.T) {
	got := ParsePage("9223372036854775807", "100")
	assert.Equal(t, (models.MaxPage-1)*100, got.Offset())
	assert.Positive(t, got.Offset())
}
