package schedule

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
)

// execRecorder captures the SQL handed to ExecContext so tests can check
// the statements against the migration schema without a live database.
type execRecorder struct {
	queries []string
}

func (e *execRecorder) ExecContext(_ context.Context, query string, _ ...interface{}) (sql.Result, error) {
	e.queries = append(e.queries, query)
	return driver.RowsAffected(1), nil
}

func (e *execRecorder) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("unexpected QueryContext")
}

func (e *execRecorder) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func loadSchema(t *testing.T) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	return string(raw)
}

func tableDDL(t *testing.T, schema, table string) string {
	t.Helper()
	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(schema, marker)
	require.NotEqual(t, -1, start, "table %s not found in migration", table)
	end := strings.Index(schema[start:], "\n);")
	require.NotEqual(t, -1, end, "unterminated DDL for table %s", table)
	return schema[start : start+end]
}

func declaresColumn(ddl, column string) bool {
	return regexp.MustCompile(`(?m)^\s*` + column + `\s`).MatchString(ddl)
}

func TestUpsertOperatingHours_OnlyTouchesMigratedColumns(t *testing.T) {
	rec := &execRecorder{}
	repo := NewRepository(rec)

	err := repo.UpsertOperatingHours(context.Background(), []domain.OperatingHoursRule{
		{DayOfWeek: 1, IsOpen: false},
	})
	require.NoError(t, err)
	require.Len(t, rec.queries, 1)
	query := rec.queries[0]

	ddl := tableDDL(t, loadSchema(t), "operating_hours")

	for _, column := range []string{"day_of_week", "is_open", "open_time", "close_time"} {
		assert.Contains(t, query, column)
		assert.True(t, declaresColumn(ddl, column), "column %s missing from operating_hours", column)
	}

	// the conflict branch stamps updated_at, so the column must exist
	assert.Contains(t, query, "updated_at = NOW()")
	assert.True(t, declaresColumn(ddl, "updated_at"), "column updated_at missing from operating_hours")
}

func TestSelectColumns_MatchMigration(t *testing.T) {
	schema := loadSchema(t)

	hoursDDL := tableDDL(t, schema, "operating_hours")
	for _, column := range operatingHoursColumns {
		assert.True(t, declaresColumn(hoursDDL, column), "column %s missing from operating_hours", column)
	}

	blocksDDL := tableDDL(t, schema, "date_blocks")
	for _, column := range dateBlockColumns {
		assert.True(t, declaresColumn(blocksDDL, column), "column %s missing from date_blocks", column)
	}
}

func TestDefaultWeekSeed(t *testing.T) {
	schema := loadSchema(t)

	// closed Sunday, Monday to Friday until 18:00, Saturday mornings only
	assert.Contains(t, schema, "(0, FALSE, NULL, NULL)")
	for _, line := range []string{
		"(1, TRUE, '08:00', '18:00')",
		"(2, TRUE, '08:00', '18:00')",
		"(3, TRUE, '08:00', '18:00')",
		"(4, TRUE, '08:00', '18:00')",
		"(5, TRUE, '08:00', '18:00')",
		"(6, TRUE, '08:00', '12:00')",
	} {
		assert.Contains(t, schema, line)
	}
	assert.NotContains(t, schema, "'20:00'")
}
