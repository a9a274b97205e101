package dto

import (
	"math"
	"strings"

	"anoa.com/storerating/pkg/apperror"
)

// ListQuery is the shared query-string shape of every list endpoint.
type ListQuery struct {
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps Offset within int32 at any limit.
	MaxPage = math.MaxInt32 / MaxLimit
)

// Normalize clamps page and limit into their valid ranges.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return PaginationMeta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Descending parses SortOrder, returning def when it is empty.
func (q ListQuery) Descending(def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(q.SortOrder)) {
	case "":
		return def, nil
	case "asc":
		return false, nil
	case "desc":
		return true, nil
	default:
		return false, apperror.BadRequest(`Sort order must be either "asc" or "desc"`)
	}
}
