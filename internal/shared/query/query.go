package query

import (
	"strings"
	"time"

	"go-ems/internal/shared/ref"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildTextSearchWhere ORs a case-insensitive "contains" predicate over each
// field. A field may be "column" or "Relation.column" (one level, using the
// gorm join alias). A blank term yields an empty clause.
func BuildTextSearchWhere(term string, fields ...string) (string, []any) {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return "", nil
	}

	pattern := "%" + likeEscaper.Replace(term) + "%"
	parts := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		col := columnRef(f)
		if col == "" {
			continue
		}
		parts = append(parts, col+" ILIKE ?")
		args = append(args, pattern)
	}
	if len(parts) == 0 {
		return "", nil
	}

	return "(" + strings.Join(parts, " OR ") + ")", args
}

// BuildDateRangeWhere returns an inclusive range on field covering the whole
// end day. Both bounds are required; otherwise the clause is empty.
func BuildDateRangeWhere(field, start, end string) (string, []any) {
	from, ok := ParseDate(start)
	if !ok {
		return "", nil
	}
	to, ok := ParseDate(end)
	if !ok {
		return "", nil
	}
	if to.Before(from) {
		from, to = to, from
	}

	return columnRef(field) + " BETWEEN ? AND ?", []any{StartOfDay(from), EndOfDay(to)}
}

// BuildRefWhere matches idColumn for an id ref and a case-insensitive
// nameColumn for a name ref. A nil or empty ref yields an empty clause.
func BuildRefWhere(r *ref.Ref, idColumn, nameColumn string) (string, []any) {
	if r.IsZero() {
		return "", nil
	}
	if r.Kind == ref.KindID {
		return idColumn + " = ?", []any{r.Value}
	}
	return "LOWER(" + nameColumn + ") = ?", []any{strings.ToLower(r.Value)}
}

func TextSearch(term string, fields ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		clause, args := BuildTextSearchWhere(term, fields...)
		if clause == "" {
			return db
		}
		return db.Where(clause, args...)
	}
}

func DateRange(field, start, end string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		clause, args := BuildDateRangeWhere(field, start, end)
		if clause == "" {
			return db
		}
		return db.Where(clause, args...)
	}
}

func MatchRef(r *ref.Ref, idColumn, nameColumn string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		clause, args := BuildRefWhere(r, idColumn, nameColumn)
		if clause == "" {
			return db
		}
		return db.Where(clause, args...)
	}
}

func Paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			return db
		}
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}

// Sort orders by a whitelisted column. sortBy keys map to real columns so
// user input never reaches the ORDER BY clause verbatim.
func Sort(sortBy, order string, allowed map[string]string, fallback string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		col, ok := allowed[sortBy]
		if !ok {
			col = fallback
		}
		if col == "" {
			return db
		}
		dir := "DESC"
		if strings.EqualFold(order, "asc") {
			dir = "ASC"
		}
		return db.Order(col + " " + dir)
	}
}

// ParseDate accepts YYYY-MM-DD or a full RFC3339 timestamp.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

func columnRef(field string) string {
	field = strings.TrimSpace(field)
	if field == "" {
		return ""
	}
	relation, column, found := strings.Cut(field, ".")
	if !found {
		return field
	}
	if strings.Contains(column, ".") {
		// only one level of nesting is resolved
		return ""
	}
	return `"` + relation + `"."` + column + `"`
}
