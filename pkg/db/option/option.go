// Package option provides composable gorm query options.
package option

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement before execution.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type optionFunc func(*gorm.DB) *gorm.DB

func (f optionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// WithSortBy orders results by the given clause when non-empty.
func WithSortBy(clause string) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if strings.TrimSpace(clause) == "" {
			return db
		}
		return db.Order(clause)
	})
}

// WithLimit caps the number of returned rows.
func WithLimit(limit int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

// WithQuerySortBy builds a safe ORDER BY clause from request parameters,
// restricted to the allowed column set.
func WithQuerySortBy(sortBy, orderBy string, allowed map[string]bool) string {
	column := strings.TrimSpace(sortBy)
	if column == "" || !allowed[column] {
		return ""
	}
	direction := strings.ToUpper(strings.TrimSpace(orderBy))
	if direction != "ASC" && direction != "DESC" {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}
