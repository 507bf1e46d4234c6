package models

import "math"

// Default and maximum page sizes for list endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (MaxPage-1)*MaxLimit within int.
	MaxPage = math.MaxInt / MaxLimit
)

// PageRequest is a normalised page window.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of rows skipped before the window.
// The result saturates at math.MaxInt and is never negative.
func (p PageRequest) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Pagination is the metadata block returned next to list data.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes the envelope for a window and a total row count.
func NewPagination(req PageRequest, total int) Pagination {
	totalPages := 0
	if req.Limit > 0 && total > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return Pagination{Page: req.Page, Limit: req.Limit, Total: total, TotalPages: totalPages}
}
