package payment

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

var paymentColumns = []string{
	"id",
	"reservation_id",
	"amount",
	"currency",
	"method",
	"status",
	"gateway_intent_id",
	"transaction_ref",
	"paid_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с платежами и счетами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платеж для бронирования
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("reservation_id", "amount", "currency", "method", "status", "gateway_intent_id", "transaction_ref").
		Values(
			payment.ReservationID,
			payment.Amount,
			payment.Currency,
			payment.Method,
			payment.Status,
			payment.GatewayIntentID,
			payment.TransactionRef,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &createdAt, &updatedAt)
	if err != nil {
		// Конфликт сериализации отдается без обертки, чтобы transaction
		// manager распознал 40001 и повторил транзакцию
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return payment, nil
}

// GetByReservationID получает платеж по ID бронирования
func (r *Repository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{"reservation_id": reservationID}, "GetByReservationID")
}

// GetByIntentID получает платеж по идентификатору intent платежного шлюза
func (r *Repository) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{"gateway_intent_id": intentID}, "GetByIntentID")
}

func (r *Repository) getOne(ctx context.Context, cond squirrel.Eq, op string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(cond)

	// Внутри транзакции платеж блокируется: обработка одного webhook
	// не должна пересекаться с конкурирующим confirm/refund
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var p domain.Payment
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.ReservationID,
		&p.Amount,
		&p.Currency,
		&p.Method,
		&p.Status,
		&p.GatewayIntentID,
		&p.TransactionRef,
		&p.PaidAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s - scan payment: %v", ErrScanRow, op, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

// SetGatewayIntent сохраняет идентификатор intent, выданный платежным шлюзом
func (r *Repository) SetGatewayIntent(ctx context.Context, id int64, intentID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("gateway_intent_id", intentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetGatewayIntent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetGatewayIntent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetGatewayIntent - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// UpdateStatus обновляет статус платежа; для SUCCESS проставляет paid_at
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status == domain.PaymentSuccess {
		updateBuilder = updateBuilder.Set("paid_at", squirrel.Expr("NOW()"))
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
		return ErrPaymentNotFound
	}

	return nil
}

// CreateInvoice создает счет к платежу. Номер счета формируется по количеству
// счетов текущего месяца; вызывается внутри транзакции подтверждения платежа,
// чтобы номер получился уникальным.
func (r *Repository) CreateInvoice(ctx context.Context, paymentID int64, now time.Time) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("invoices").
		Where(squirrel.Expr("date_trunc('month', created_at) = date_trunc('month', ?::timestamptz)", now)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateInvoice - build count query: %v", ErrBuildQuery, err)
	}

	var monthCount int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&monthCount); err != nil {
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: CreateInvoice - count invoices: %v", ErrScanRow, err)
	}

	invoice := &domain.Invoice{
		PaymentID: paymentID,
		Number:    domain.InvoiceNumber(now.Year(), now.Month(), monthCount+1),
	}

	query, args, err := psqlbuilder.Insert("invoices").
		Columns("payment_id", "number").
		Values(invoice.PaymentID, invoice.Number).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateInvoice - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt time.Time
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&invoice.ID, &createdAt); err != nil {
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: CreateInvoice - execute insert: %v", ErrExecQuery, err)
	}

	invoice.CreatedAt = createdAt
	return invoice, nil
}
