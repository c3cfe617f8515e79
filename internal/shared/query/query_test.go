package query_test

import (
	"strings"
	"testing"
	"time"

	"go-ems/internal/shared/query"
	"go-ems/internal/shared/ref"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTextSearchWhere(t *testing.T) {
	t.Run("empty term yields no clause", func(t *testing.T) {
		clause, args := query.BuildTextSearchWhere("   ", "name")
		assert.Empty(t, clause)
		assert.Nil(t, args)
	})

	t.Run("ors every field", func(t *testing.T) {
		clause, args := query.BuildTextSearchWhere("ann", "position", "User.name", "User.email")
		assert.Equal(t, `(position ILIKE ? OR "User"."name" ILIKE ? OR "User"."email" ILIKE ?)`, clause)
		assert.Equal(t, []any{"%ann%", "%ann%", "%ann%"}, args)
	})

	t.Run("escapes wildcards", func(t *testing.T) {
		_, args := query.BuildTextSearchWhere("50%_off", "title")
		assert.Equal(t, []any{`%50\%\_off%`}, args)
	})

	t.Run("deep paths are dropped", func(t *testing.T) {
		clause, _ := query.BuildTextSearchWhere("x", "Manager.User.name")
		assert.Empty(t, clause)
	})
}

func TestBuildDateRangeWhere(t *testing.T) {
	t.Run("inclusive of the end day", func(t *testing.T) {
		clause, args := query.BuildDateRangeWhere("date", "2025-01-01", "2025-01-31")
		assert.Equal(t, "date BETWEEN ? AND ?", clause)
		require.Len(t, args, 2)

		start := args[0].(time.Time)
		end := args[1].(time.Time)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, 31, end.Day())
		assert.Equal(t, 23, end.Hour())
	})

	t.Run("missing bound yields no clause", func(t *testing.T) {
		clause, args := query.BuildDateRangeWhere("date", "2025-01-01", "")
		assert.Empty(t, clause)
		assert.Nil(t, args)
	})

	t.Run("garbage yields no clause", func(t *testing.T) {
		clause, _ := query.BuildDateRangeWhere("date", "yesterday", "2025-01-01")
		assert.Empty(t, clause)
	})

	t.Run("swapped bounds are normalised", func(t *testing.T) {
		_, args := query.BuildDateRangeWhere("date", "2025-02-10", "2025-02-01")
		assert.Equal(t, 1, args[0].(time.Time).Day())
		assert.Equal(t, 10, args[1].(time.Time).Day())
	})
}

func TestBuildRefWhere(t *testing.T) {
	id := "3b241101-e2bb-4255-8caf-4136c566a962"

	t.Run("id ref matches the key column", func(t *testing.T) {
		clause, args := query.BuildRefWhere(ref.ByID(id), "employees.department_id", "departments.name")
		assert.Equal(t, "employees.department_id = ?", clause)
		assert.Equal(t, []any{id}, args)
	})

	t.Run("uuid-shaped name stays a name", func(t *testing.T) {
		clause, args := query.BuildRefWhere(ref.ByName(strings.ToUpper(id)), "employees.department_id", "departments.name")
		assert.Equal(t, "LOWER(departments.name) = ?", clause)
		assert.Equal(t, []any{id}, args)
	})

	t.Run("nil ref adds nothing", func(t *testing.T) {
		clause, args := query.BuildRefWhere(nil, "a", "b")
		assert.Empty(t, clause)
		assert.Nil(t, args)
	})
}
