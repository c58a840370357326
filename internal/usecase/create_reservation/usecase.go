package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	courtRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/court"
	reservationRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/reservation"
	"github.com/kovaldn/ArenaBookingService/internal/integrations/paymentgateway"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	courtRepo       CourtRepository
	paymentRepo     PaymentRepository
	gateway         PaymentGatewayClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	courtRepo CourtRepository,
	paymentRepo PaymentRepository,
	gateway PaymentGatewayClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		courtRepo:       courtRepo,
		paymentRepo:     paymentRepo,
		gateway:         gateway,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и вставка выполняются в одной сериализуемой транзакции,
// выборка занятых интервалов блокируется через FOR UPDATE. Exclusion
// constraint в БД служит последним рубежом против двойного бронирования.
// Цена фиксируется в момент создания: последующие изменения тарифа площадки
// на бронирование не влияют.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, court=%d, start=%s, end=%s",
		req.UserID, req.CourtID, req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку и проверяем, что она активна
	crt, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("CreateReservation: court id=%d not found", req.CourtID)
			return nil, fmt.Errorf("%w: court %d", ErrCourtNotFound, req.CourtID)
		}
		uc.logger.Error("CreateReservation: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	if !crt.IsActive {
		uc.logger.Warn("CreateReservation: court id=%d is not active", req.CourtID)
		return nil, fmt.Errorf("%w: court %d", ErrCourtInactive, req.CourtID)
	}

	candidate := domain.Interval{Start: req.StartAt, End: req.EndAt}

	var (
		created *domain.Reservation
		pay     *domain.Payment
	)

	// 3. Проверка конфликтов и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Занятые интервалы площадки с блокировкой (FOR UPDATE)
		reservations, err := uc.reservationRepo.GetOccupied(txCtx, crt.ID, candidate, nil)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get occupied intervals: %v", err)
			return fmt.Errorf("%w: failed to get occupied intervals: %v", ErrInternal, err)
		}

		blocked, err := uc.courtRepo.GetBlockedPeriods(txCtx, crt.ID, candidate)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get blocked periods: %v", err)
			return fmt.Errorf("%w: failed to get blocked periods: %v", ErrInternal, err)
		}

		occupied := make([]domain.OccupiedInterval, 0, len(reservations)+len(blocked))
		for _, r := range reservations {
			occupied = append(occupied, r.Occupied())
		}
		for _, b := range blocked {
			occupied = append(occupied, b.Occupied())
		}

		// 3.2. Первое пересечение; соприкосновение границами конфликтом не считается
		if conflict := domain.FirstConflict(candidate, occupied); conflict != nil {
			uc.logger.Warn("CreateReservation: slot conflicts with %s id=%d", conflict.Kind, conflict.RefID)
			return &ConflictError{Kind: conflict.Kind, RefID: conflict.RefID}
		}

		// 3.3. Фиксируем цену на момент создания
		total := domain.CalculateTotal(crt.PricePerHour, candidate)

		res := &domain.Reservation{
			CourtID:      crt.ID,
			UserID:       req.UserID,
			StartAt:      req.StartAt,
			EndAt:        req.EndAt,
			PricePerHour: crt.PricePerHour,
			TotalAmount:  total,
			Status:       domain.StatusPending,
			Notes:        req.Notes,
		}

		created, err = uc.reservationRepo.Create(txCtx, res)
		if err != nil {
			// Exclusion constraint сработал: конкурирующая транзакция успела
			// занять пересекающийся интервал
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateReservation: slot taken by concurrent reservation")
				return fmt.Errorf("%w: taken by concurrent reservation", ErrSlotConflict)
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 3.4. Платеж создается вместе с бронированием, в том же статусе PENDING
		pay, err = uc.paymentRepo.Create(txCtx, &domain.Payment{
			ReservationID:  created.ID,
			Amount:         created.TotalAmount,
			Currency:       domain.DefaultCurrency,
			Method:         domain.MethodCard,
			Status:         domain.PaymentPending,
			TransactionRef: uuid.NewString(),
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create payment: %v", err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d, total=%.2f %s",
		created.ID, created.TotalAmount, domain.DefaultCurrency)

	// 4. Intent в платежном шлюзе создается после коммита: бронирование уже
	// существует, а недоступность шлюза не должна его откатывать
	resp := &Response{Reservation: created, Payment: pay}

	intent, err := uc.gateway.CreateIntent(ctx, &paymentgateway.IntentRequest{
		Amount:         pay.Amount,
		Currency:       pay.Currency,
		ReservationID:  created.ID,
		TransactionRef: pay.TransactionRef,
	})
	if err != nil {
		uc.logger.Error("CreateReservation: failed to create payment intent for reservation id=%d: %v",
			created.ID, err)
		return resp, nil
	}

	if err := uc.paymentRepo.SetGatewayIntent(ctx, pay.ID, intent.ID); err != nil {
		uc.logger.Error("CreateReservation: failed to store intent id for payment id=%d: %v", pay.ID, err)
		return resp, nil
	}

	pay.GatewayIntentID = &intent.ID
	resp.PaymentClientSecret = intent.ClientSecret
	return resp, nil
}
