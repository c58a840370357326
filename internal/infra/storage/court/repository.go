package court

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	"github.com/kovaldn/ArenaBookingService/pkg/dbmetrics"
	"github.com/kovaldn/ArenaBookingService/pkg/psqlbuilder"
	"github.com/kovaldn/ArenaBookingService/pkg/txmanager"
)

// Repository репозиторий для работы с площадками и блокировками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"site_id",
		"name",
		"sport_type",
		"price_per_hour",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var court domain.Court
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&court.ID,
		&court.SiteID,
		&court.Name,
		&court.SportType,
		&court.PricePerHour,
		&court.IsActive,
		&court.CreatedAt,
		&court.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan court: %v", ErrScanRow, err)
	}

	return &court, nil
}

// ListBySite получает все площадки комплекса
func (r *Repository) ListBySite(ctx context.Context, siteID int64) ([]*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"site_id",
		"name",
		"sport_type",
		"price_per_hour",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("courts").
		Where(squirrel.Eq{"site_id": siteID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySite - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySite - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	courts := make([]*domain.Court, 0)
	for rows.Next() {
		var court domain.Court
		err := rows.Scan(
			&court.ID,
			&court.SiteID,
			&court.Name,
			&court.SportType,
			&court.PricePerHour,
			&court.IsActive,
			&court.CreatedAt,
			&court.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySite - scan row: %v", ErrScanRow, err)
		}
		courts = append(courts, &court)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySite - rows error: %v", ErrScanRow, err)
	}

	return courts, nil
}

// GetBlockedPeriods получает блокировки площадки, пересекающиеся с интервалом.
// Пересечение полуоткрытое: блокировка, заканчивающаяся ровно в начале
// интервала, не попадает в выборку.
func (r *Repository) GetBlockedPeriods(ctx context.Context, courtID int64, interval domain.Interval) ([]*domain.BlockedPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"court_id",
		"start_at",
		"end_at",
		"reason",
		"created_at",
	).
		From("blocked_periods").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Lt{"start_at": interval.End}).
		Where(squirrel.Gt{"end_at": interval.Start}).
		OrderBy("start_at ASC, end_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedPeriods - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		// Конфликт сериализации отдается без обертки, чтобы transaction manager
		// распознал 40001 и повторил транзакцию.
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetBlockedPeriods - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	periods := make([]*domain.BlockedPeriod, 0)
	for rows.Next() {
		var p domain.BlockedPeriod
		if err := rows.Scan(&p.ID, &p.CourtID, &p.StartAt, &p.EndAt, &p.Reason, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetBlockedPeriods - scan row: %v", ErrScanRow, err)
		}
		periods = append(periods, &p)
	}

	if err := rows.Err(); err != nil {
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetBlockedPeriods - rows error: %v", ErrScanRow, err)
	}

	return periods, nil
}

// CreateBlockedPeriod создает блокировку площадки
func (r *Repository) CreateBlockedPeriod(ctx context.Context, period *domain.BlockedPeriod) (*domain.BlockedPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_periods").
		Columns("court_id", "start_at", "end_at", "reason").
		Values(period.CourtID, period.StartAt, period.EndAt, period.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedPeriod - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&period.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedPeriod - execute insert: %v", ErrExecQuery, err)
	}

	period.CreatedAt = createdAt
	return period, nil
}

// DeleteBlockedPeriod удаляет блокировку площадки
func (r *Repository) DeleteBlockedPeriod(ctx context.Context, courtID, periodID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_periods").
		Where(squirrel.Eq{"id": periodID, "court_id": courtID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedPeriod - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedPeriod - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedPeriod - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedPeriodNotFound
	}

	return nil
}
