package database

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SortColumns maps the sort keys a caller may send to the column expression
// used in ORDER BY. Caller input never reaches the query text.
type SortColumns map[string]string

// OrderBy resolves key against the allow-list, falling back to fallback for
// unknown or empty keys.
func (s SortColumns) OrderBy(key, fallback string, desc bool) clause.OrderByColumn {
	column, ok := s[key]
	if !ok {
		column = s[fallback]
	}
	return clause.OrderByColumn{
		Column: clause.Column{Name: column, Raw: true},
		Desc:   desc,
	}
}

// ILike adds a case-insensitive substring match on column when term is not blank.
func ILike(column, term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}
		return db.Where(column+" ILIKE ?", "%"+escapeLike(term)+"%")
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
