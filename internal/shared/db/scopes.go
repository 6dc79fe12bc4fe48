package db

import (
	"gorm.io/gorm"
)

// Paginate limits a query to one page. page starts at 1; non-positive
// values fall back to the first page and pageSize to 20.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = 20
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// OrderBy sorts by column when it is in allowed, otherwise by fallback.
// Column names never come straight from user input.
func OrderBy(column, order string, allowed map[string]bool, fallback string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !allowed[column] {
			return db.Order(fallback)
		}
		if order != "asc" {
			order = "desc"
		}
		return db.Order(column + " " + order)
	}
}
