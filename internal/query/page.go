package query

import (
	"errors"
	"strconv"
	"strings"

	"github.com/noah-isme/classroom-api/internal/models"
)

// ParsePage normalises raw page and limit parameters. Missing, non-numeric or zero values
// fall back to the defaults; the result is clamped to 1 <= page <= MaxPage and
// 1 <= limit <= MaxLimit.
func ParsePage(page, limit string) models.PageRequest {
	p := atoiOr(page, models.DefaultPage)
	if p < 1 {
		p = 1
	}
	if p > models.MaxPage {
		p = models.MaxPage
	}
	l := atoiOr(limit, models.DefaultLimit)
	if l < 1 {
		l = 1
	}
	if l > models.MaxLimit {
		l = models.MaxLimit
	}
	return models.PageRequest{Page: p, Limit: l}
}

// atoiOr keeps out-of-range numbers at the int bound so they are clamped rather than reset.
func atoiOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) {
		return n
	}
	if err != nil || n == 0 {
		return fallback
	}
	return n
}
