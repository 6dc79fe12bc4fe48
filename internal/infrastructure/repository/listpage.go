package repository

import (
	"gorm.io/gorm"

	"crmdesk/internal/shared/db"
	"crmdesk/internal/shared/query"
)

// findPage applies the filter's predicates, counts the matches and loads one sorted page.
func findPage[M any](q *gorm.DB, filter query.ListFilter, sortable map[string]bool, fallbackOrder string) ([]M, int64, error) {
	q = q.Scopes(filter.Predicates.Scope())

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []M
	err := q.Scopes(
		db.OrderBy(filter.SortBy, filter.Direction(), sortable, fallbackOrder),
		db.Paginate(filter.Page, filter.PageSize),
	).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
