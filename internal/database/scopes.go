package database

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Paginate applies offset/limit pagination to a GORM query
func Paginate(skip, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(skip).Limit(limit)
	}
}

// Search matches term case-insensitively as a substring of any of columns.
// An empty term leaves the query unchanged.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	term = strings.TrimSpace(term)
	pattern := "%" + strings.ToLower(term) + "%"

	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}

		exprs := make([]clause.Expression, len(columns))
		for i, column := range columns {
			exprs[i] = clause.Expr{
				SQL:  "LOWER(?) LIKE ?",
				Vars: []any{clause.Column{Table: clause.CurrentTable, Name: column}, pattern},
			}
		}
		return db.Where(clause.Or(exprs...))
	}
}
