package utils

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	MaxSearchLen = 255
)

// PageParams are the list parameters shared by every list endpoint.
type PageParams struct {
	Page   int
	Limit  int
	Search string
}

func (p PageParams) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Pagination is the metadata block of the list envelope.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Paginated is the {data, pagination} envelope.
type Paginated[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination computes page metadata. limit must be positive; callers validate it
// through ParsePageParams, and a non-positive limit yields zero pages.
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 && total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

func NewPaginated[T any](data []T, total int64, page, limit int) Paginated[T] {
	if data == nil {
		data = []T{}
	}
	return Paginated[T]{Data: data, Pagination: NewPagination(total, page, limit)}
}

// ParsePageParams reads page, limit and search from the query string.
// Out of range values are rejected instead of clamped.
func ParsePageParams(c *gin.Context) (PageParams, error) {
	params := PageParams{Page: DefaultPage, Limit: DefaultLimit}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return params, &ApiError{
				StatusCode: http.StatusBadRequest,
				Message:    "Validation failed",
				ErrorCode:  "VALIDATION_ERROR",
				Fields:     []FieldError{{Field: "page", Rule: "min", Message: "must be an integer >= 1"}},
			}
		}
		params.Page = page
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxLimit {
			return params, &ApiError{
				StatusCode: http.StatusBadRequest,
				Message:    "Validation failed",
				ErrorCode:  "VALIDATION_ERROR",
				Fields:     []FieldError{{Field: "limit", Rule: "range", Message: "must be an integer between 1 and 100"}},
			}
		}
		params.Limit = limit
	}

	// the offset must stay representable for Mongo skip and slice bounds
	if params.Page-1 > math.MaxInt/params.Limit {
		return params, &ApiError{
			StatusCode: http.StatusBadRequest,
			Message:    "Validation failed",
			ErrorCode:  "VALIDATION_ERROR",
			Fields:     []FieldError{{Field: "page", Rule: "max", Message: "is too large"}},
		}
	}

	params.Search = strings.TrimSpace(c.Query("search"))
	if len(params.Search) > MaxSearchLen {
		return params, &ApiError{
			StatusCode: http.StatusBadRequest,
			Message:    "Validation failed",
			ErrorCode:  "VALIDATION_ERROR",
			Fields:     []FieldError{{Field: "search", Rule: "max", Message: "must be at most 255 characters"}},
		}
	}
	return params, nil
}

// PaginatedResponse writes {success, data, pagination}.
func PaginatedResponse[T any](c *gin.Context, result Paginated[T]) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       result.Data,
		"pagination": result.Pagination,
	})
}
