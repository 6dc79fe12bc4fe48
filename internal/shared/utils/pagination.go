package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"crmdesk/internal/shared/query"
)

// ParsePagination reads page and page_size from the query string.
// Invalid values fall back to defaults; page_size is capped.
func ParsePagination(c *gin.Context) query.PageFilter {
	return query.PageFilter{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", query.DefaultPageSize),
	}.Normalize()
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
	}
	return defaultVal
}

// ParseListFilter reads paging, sorting and predicate filters for one entity.
func ParseListFilter(c *gin.Context, fields query.Fields) (query.ListFilter, error) {
	preds, err := query.Parse(c.Request.URL.Query(), fields)
	if err != nil {
		return query.ListFilter{}, err
	}
	page := ParsePagination(c)
	return query.NewListFilter(
		query.WithPage(page.Page, page.PageSize),
		query.WithSort(c.Query("sort_by"), c.DefaultQuery("sort_order", "desc")),
		query.WithPredicates(preds...),
	), nil
}

// TotalPages returns at least 1 so empty lists still report a page.
func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
