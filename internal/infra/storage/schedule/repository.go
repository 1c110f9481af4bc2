package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	"github.com/touchedelumiere/TDL-BookingService/pkg/dbmetrics"
	"github.com/touchedelumiere/TDL-BookingService/pkg/psqlbuilder"
)

var (
	operatingHoursColumns = []string{
		"id",
		"day_of_week",
		"is_open",
		"open_time",
		"close_time",
		"created_at",
		"updated_at",
	}

	dateBlockColumns = []string{
		"id",
		"title",
		"description",
		"block_type",
		"start_date",
		"end_date",
		"start_time",
		"end_time",
		"created_by",
		"created_at",
	}
)

// Repository persists operating hours and date blocks
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a schedule repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOperatingHours returns all weekly rules ordered by weekday
func (r *Repository) GetOperatingHours(ctx context.Context) ([]domain.OperatingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(operatingHoursColumns...).
		From("operating_hours").
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.OperatingHoursRule, 0, 7)
	for rows.Next() {
		var rule domain.OperatingHoursRule
		var createdAt, updatedAt sql.NullTime
		err = rows.Scan(
			&rule.ID,
			&rule.DayOfWeek,
			&rule.IsOpen,
			&rule.OpenTime,
			&rule.CloseTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOperatingHours - scan row: %v", ErrScanRow, err)
		}
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHours - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// UpsertOperatingHours writes the full weekly ruleset in one statement per
// rule, keyed on the unique day_of_week
func (r *Repository) UpsertOperatingHours(ctx context.Context, rules []domain.OperatingHoursRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, rule := range rules {
		query, args, err := psqlbuilder.Insert("operating_hours").
			Columns("day_of_week", "is_open", "open_time", "close_time").
			Values(rule.DayOfWeek, rule.IsOpen, rule.OpenTime, rule.CloseTime).
			Suffix(`ON CONFLICT (day_of_week) DO UPDATE
				SET is_open = EXCLUDED.is_open,
				    open_time = EXCLUDED.open_time,
				    close_time = EXCLUDED.close_time,
				    updated_at = NOW()`).
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: UpsertOperatingHours - build upsert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: UpsertOperatingHours - execute upsert for day %d: %v", ErrExecQuery, rule.DayOfWeek, err)
		}
	}

	return nil
}

// CreateDateBlock inserts a new block
func (r *Repository) CreateDateBlock(ctx context.Context, block *domain.DateBlock) (*domain.DateBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("date_blocks").
		Columns(
			"title",
			"description",
			"block_type",
			"start_date",
			"end_date",
			"start_time",
			"end_time",
			"created_by",
		).
		Values(
			block.Title,
			block.Description,
			block.BlockType,
			block.StartDate,
			block.EndDate,
			block.StartTime,
			block.EndTime,
			block.CreatedBy,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateDateBlock - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateDateBlock - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// ListDateBlocks returns blocks whose range has not fully passed the given
// date, ordered by start date. A zero `from` returns every block.
func (r *Repository) ListDateBlocks(ctx context.Context, from time.Time) ([]domain.DateBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(dateBlockColumns...).
		From("date_blocks").
		OrderBy("start_date ASC")

	if !from.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": domain.DateOnly(from)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDateBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDateBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]domain.DateBlock, 0)
	for rows.Next() {
		var block domain.DateBlock
		var createdAt sql.NullTime
		err = rows.Scan(
			&block.ID,
			&block.Title,
			&block.Description,
			&block.BlockType,
			&block.StartDate,
			&block.EndDate,
			&block.StartTime,
			&block.EndTime,
			&block.CreatedBy,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDateBlocks - scan row: %v", ErrScanRow, err)
		}
		block.CreatedAt = createdAt.Time
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDateBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// DeleteDateBlock removes a block
func (r *Repository) DeleteDateBlock(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("date_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteDateBlock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteDateBlock - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteDateBlock - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}
