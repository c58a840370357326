package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	"github.com/kovaldn/ArenaBookingService/pkg/dbmetrics"
	"github.com/kovaldn/ArenaBookingService/pkg/psqlbuilder"
	"github.com/kovaldn/ArenaBookingService/pkg/txmanager"
)

// pgExclusionViolation код ошибки PostgreSQL "exclusion_violation" -
// нарушение reservations_no_overlap гонкой, дошедшей до коммита
const pgExclusionViolation = "23P01"

var reservationColumns = []string{
	"id",
	"court_id",
	"user_id",
	"start_at",
	"end_at",
	"price_per_hour",
	"total_amount",
	"status",
	"notes",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вызывается внутри сериализуемой транзакции вместе с проверкой конфликтов;
// executor транзакции передается через контекст. Нарушение exclusion
// constraint (конкурирующая вставка, прошедшая мимо FOR UPDATE чтения)
// транслируется в ErrSlotTaken, а не отдается как сырая ошибка драйвера.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"court_id",
			"user_id",
			"start_at",
			"end_at",
			"price_per_hour",
			"total_amount",
			"status",
			"notes",
		).
		Values(
			reservation.CourtID,
			reservation.UserID,
			reservation.StartAt,
			reservation.EndAt,
			reservation.PricePerHour,
			reservation.TotalAmount,
			reservation.Status,
			reservation.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotTaken
		}
		// Конфликт сериализации отдается без обертки, чтобы transaction
		// manager распознал 40001 и повторил транзакцию
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	reservation, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// GetByUserID получает историю бронирований пользователя,
// опционально фильтруя по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetOccupied получает активные бронирования площадки, пересекающиеся с
// интервалом (полуоткрытая семантика: касание границами не считается
// пересечением). excludeID исключает бронирование при перепроверке
// существующего.
//
// Внутри транзакции выборка выполняется с FOR UPDATE: проверка конфликта и
// вставка образуют одну атомарную единицу, две конкурирующие брони не могут
// обе увидеть "свободно".
func (r *Repository) GetOccupied(ctx context.Context, courtID int64, interval domain.Interval, excludeID *int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		Where(squirrel.Lt{"start_at": interval.End}).
		Where(squirrel.Gt{"end_at": interval.Start}).
		OrderBy("start_at ASC, end_at ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupied - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetOccupied - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetBySiteWithFilter получает бронирования по всем площадкам комплекса
// с фильтрацией по периоду и статусу
func (r *Repository) GetBySiteWithFilter(ctx context.Context, siteID int64, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cols := make([]string, len(reservationColumns))
	for i, c := range reservationColumns {
		cols[i] = "r." + c
	}

	selectBuilder := psqlbuilder.Select(cols...).
		From("reservations r").
		Join("courts c ON c.id = r.court_id").
		Where(squirrel.Eq{"c.site_id": siteID}).
		OrderBy("r.start_at DESC")

	if filter.CourtID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.court_id": *filter.CourtID})
	}
	if filter.OverlapWith != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Lt{"r.start_at": filter.OverlapWith.End}).
			Where(squirrel.Gt{"r.end_at": filter.OverlapWith.Start})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": *filter.Status})
	} else if filter.ActiveOnly {
		activeStatuses := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": activeStatuses})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySiteWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySiteWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus обновляет статус бронирования с проверкой допустимого
// исходного состояния. Guard в WHERE делает переход атомарным на уровне
// строки: конкурирующие confirm/cancel не могут примениться оба.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, allowedFrom []domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	from := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		from[i] = string(s)
	}

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from})

	if status == domain.StatusCancelled {
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо бронирования нет, либо оно уже не в допустимом статусе
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrInvalidTransition
	}

	return nil
}

// isExclusionViolation проверяет нарушение exclusion constraint (23P01)
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgExclusionViolation
	}
	return false
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку в бронирование
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.CourtID,
		&reservation.UserID,
		&reservation.StartAt,
		&reservation.EndAt,
		&reservation.PricePerHour,
		&reservation.TotalAmount,
		&reservation.Status,
		&reservation.Notes,
		&reservation.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time
	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
