package repositories

import (
	"fmt"
	"strings"
	"time"

	"crm/internal/apperrors"
	"crm/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type scope = func(*gorm.DB) *gorm.DB

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsScope matches column case-insensitively against a substring.
func containsScope(column, value string) scope {
	pattern := "%" + strings.ToLower(likeEscaper.Replace(value)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column), pattern)
	}
}

// prefixScope matches column against a literal prefix.
func prefixScope(column, value string) scope {
	pattern := likeEscaper.Replace(value) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, column), pattern)
	}
}

func compareScope(column, op string, value interface{}) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf("%s %s ?", column, op), value)
	}
}

func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(models.TimestampLayout, value)
	if err != nil {
		return time.Time{}, apperrors.Validation(fmt.Sprintf("Field '%s' must be an RFC 3339 timestamp.", field))
	}
	return t.UTC(), nil
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, apperrors.Validation(fmt.Sprintf("Field '%s' must be a number.", field))
	}
	return d, nil
}

// timeRange appends >= / <= scopes for the non-empty bounds.
func timeRange(scopes []scope, column, gteField, gte, lteField, lte string) ([]scope, error) {
	if gte != "" {
		t, err := parseTimestamp(gteField, gte)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, compareScope(column, ">=", t))
	}
	if lte != "" {
		t, err := parseTimestamp(lteField, lte)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, compareScope(column, "<=", t))
	}
	return scopes, nil
}

// amountRange appends >= / <= scopes for the non-empty decimal bounds.
func amountRange(scopes []scope, column, gteField, gte, lteField, lte string) ([]scope, error) {
	if gte != "" {
		d, err := parseAmount(gteField, gte)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, compareScope(column, ">=", d))
	}
	if lte != "" {
		d, err := parseAmount(lteField, lte)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, compareScope(column, "<=", d))
	}
	return scopes, nil
}

// orderByScope resolves a caller-supplied field ("name", "-name") against
// the columns allowed for an entity. An empty field sorts by id.
func orderByScope(field string, allowed map[string]string) (scope, error) {
	desc := strings.HasPrefix(field, "-")
	name := strings.TrimPrefix(field, "-")
	if name == "" {
		name = "id"
	}
	column, ok := allowed[name]
	if !ok {
		return nil, apperrors.Validation(fmt.Sprintf("Cannot order by '%s'.", name))
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: column},
			Desc:   desc,
		})
	}, nil
}
