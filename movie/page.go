package movie

import "math"

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// OrderBy selects the single ascending sort key for browsing. The integer
// values are part of the wire contract.
type OrderBy int

const (
	OrderByID    OrderBy = 0
	OrderByTitle OrderBy = 1
	OrderByGenre OrderBy = 2
)

func (o OrderBy) Valid() bool {
	switch o {
	case OrderByID, OrderByTitle, OrderByGenre:
		return true
	default:
		return false
	}
}

func (o OrderBy) String() string {
	switch o {
	case OrderByTitle:
		return "title"
	case OrderByGenre:
		return "genre"
	default:
		return "id"
	}
}

type PageRequest struct {
	Page     int
	PageSize int
	OrderBy  OrderBy
}

// Normalize clamps the request into range instead of rejecting it: page
// below 1 becomes 1, pageSize is kept within [1, MaxPageSize] and an
// unknown OrderBy falls back to OrderByID.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	if r.PageSize < 1 {
		r.PageSize = 1
	}
	if !r.OrderBy.Valid() {
		r.OrderBy = OrderByID
	}
	return r
}

// Offset assumes a normalized request. Pages too far out to address
// saturate at math.MaxInt, which every store treats as past the end.
func (r PageRequest) Offset() int {
	if r.Page-1 > math.MaxInt/r.PageSize {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PageSize
}

func (r PageRequest) Limit() int {
	return r.PageSize
}

type PagedResult[T any] struct {
	Items           []T  `json:"items"`
	TotalCount      int  `json:"totalCount"`
	Page            int  `json:"page"`
	PageSize        int  `json:"pageSize"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// NewPagedResult derives the page metadata from a normalized request and the
// unfiltered catalog size.
func NewPagedResult[T any](items []T, totalCount int, r PageRequest) PagedResult[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := totalCount / r.PageSize
	if totalCount%r.PageSize > 0 {
		totalPages++
	}

	return PagedResult[T]{
		Items:           items,
		TotalCount:      totalCount,
		Page:            r.Page,
		PageSize:        r.PageSize,
		TotalPages:      totalPages,
		HasPreviousPage: r.Page > 1,
		HasNextPage:     r.Page < totalPages,
	}
}
