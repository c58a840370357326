package site

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	"github.com/kovaldn/ArenaBookingService/pkg/dbmetrics"
	"github.com/kovaldn/ArenaBookingService/pkg/psqlbuilder"
	"github.com/kovaldn/ArenaBookingService/pkg/txmanager"
)

// Repository репозиторий для работы с комплексами и их расписанием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комплексов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает комплекс по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Site, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"city",
		"address",
		"manager_id",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("sites").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var site domain.Site
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&site.ID,
		&site.Name,
		&site.City,
		&site.Address,
		&site.ManagerID,
		&site.IsActive,
		&site.CreatedAt,
		&site.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSiteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan site: %v", ErrScanRow, err)
	}

	return &site, nil
}

// GetOpeningHours получает недельное расписание комплекса,
// отсортированное по дню недели
func (r *Repository) GetOpeningHours(ctx context.Context, siteID int64) (domain.WeeklyHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"site_id",
		"day_of_week",
		"open_time",
		"close_time",
	).
		From("opening_hours").
		Where(squirrel.Eq{"site_id": siteID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOpeningHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		// Конфликт сериализации отдается без обертки, чтобы transaction manager
		// распознал 40001 и повторил транзакцию.
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetOpeningHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make(domain.WeeklyHours, 0, domain.DaysPerWeek)
	for rows.Next() {
		var h domain.OpeningHours
		if err := rows.Scan(&h.ID, &h.SiteID, &h.DayOfWeek, &h.OpenTime, &h.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: GetOpeningHours - scan row: %v", ErrScanRow, err)
		}
		hours = append(hours, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOpeningHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// ReplaceOpeningHours заменяет недельное расписание комплекса.
// Вызывается внутри транзакции (upsert по (site_id, day_of_week) +
// удаление дней, отсутствующих в новом расписании).
func (r *Repository) ReplaceOpeningHours(ctx context.Context, siteID int64, hours domain.WeeklyHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	days := make([]int, 0, len(hours))
	for _, h := range hours {
		days = append(days, h.DayOfWeek)

		query, args, err := psqlbuilder.Insert("opening_hours").
			Columns("site_id", "day_of_week", "open_time", "close_time").
			Values(siteID, h.DayOfWeek, h.OpenTime, h.CloseTime).
			Suffix("ON CONFLICT (site_id, day_of_week) DO UPDATE SET open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceOpeningHours - build upsert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			return fmt.Errorf("%w: ReplaceOpeningHours - execute upsert: %v", ErrExecQuery, err)
		}
	}

	// Дни, не вошедшие в новое расписание, считаются закрытыми
	deleteBuilder := psqlbuilder.Delete("opening_hours").
		Where(squirrel.Eq{"site_id": siteID})
	if len(days) > 0 {
		deleteBuilder = deleteBuilder.Where(squirrel.NotEq{"day_of_week": days})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOpeningHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if txmanager.IsSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: ReplaceOpeningHours - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
