package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// QueryParams carries list pagination and search parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// NewQueryParams reads page, limit and search from the query string, applying
// defaults and caps.
func NewQueryParams(c echo.Context) QueryParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.QueryParam("limit"))
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return QueryParams{
		PageNumber: page,
		PageSize:   size,
		Search:     c.QueryParam("search"),
	}
}

// Offset returns the SQL offset for the current page.
func (q QueryParams) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}

// Pages returns the total page count for a result set of total rows.
func (q QueryParams) Pages(total int) int {
	if q.PageSize == 0 {
		return 0
	}
	pages := total / q.PageSize
	if total%q.PageSize != 0 {
		pages++
	}
	return pages
}
