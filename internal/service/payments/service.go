package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	paymentRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/payment"
	reservationRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/reservation"
	"github.com/kovaldn/ArenaBookingService/internal/integrations/paymentgateway"
)

// Service обрабатывает нотификации платежного шлюза.
// Каждая нотификация применяется в сериализуемой транзакции: платеж
// читается с блокировкой, так что повторная доставка того же события
// превращается в no-op.
type Service struct {
	paymentRepo     PaymentRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// HandleEvent применяет нормализованную нотификацию шлюза
func (s *Service) HandleEvent(ctx context.Context, event *paymentgateway.WebhookEvent) error {
	switch event.Type {
	case paymentgateway.EventPaymentSucceeded:
		return s.HandlePaymentSucceeded(ctx, event.IntentID)
	case paymentgateway.EventPaymentFailed:
		return s.HandlePaymentFailed(ctx, event.IntentID)
	case paymentgateway.EventRefunded:
		return s.HandleRefund(ctx, event.IntentID)
	default:
		s.logger.Info("HandleEvent: ignoring event type=%s", event.Type)
		return nil
	}
}

// HandlePaymentSucceeded отмечает платеж оплаченным, подтверждает
// бронирование и выставляет счет. Повторная нотификация - no-op.
func (s *Service) HandlePaymentSucceeded(ctx context.Context, intentID string) error {
	s.logger.Info("HandlePaymentSucceeded: intent=%s", intentID)

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		payment, err := s.loadPayment(txCtx, intentID)
		if err != nil {
			return err
		}

		// Идемпотентность: переход решает доменная модель, повторная
		// нотификация по оплаченному или возвращенному платежу - no-op
		if !payment.MarkPaid(s.timeProvider.Now()) {
			s.logger.Info("HandlePaymentSucceeded: payment id=%d already processed, status=%s",
				payment.ID, payment.Status)
			return nil
		}

		if err := s.paymentRepo.UpdateStatus(txCtx, payment.ID, payment.Status); err != nil {
			s.logger.Error("HandlePaymentSucceeded: failed to update payment id=%d: %v", payment.ID, err)
			return fmt.Errorf("%w: failed to update payment: %v", ErrInternal, err)
		}

		// PENDING -> CONFIRMED; бронирование, отмененное до оплаты, не трогаем
		err = s.reservationRepo.UpdateStatus(txCtx, payment.ReservationID, domain.StatusConfirmed,
			[]domain.ReservationStatus{domain.StatusPending})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrInvalidTransition) {
				s.logger.Warn("HandlePaymentSucceeded: reservation id=%d is no longer pending",
					payment.ReservationID)
			} else {
				s.logger.Error("HandlePaymentSucceeded: failed to confirm reservation id=%d: %v",
					payment.ReservationID, err)
				return fmt.Errorf("%w: failed to confirm reservation: %v", ErrInternal, err)
			}
		}

		invoice, err := s.paymentRepo.CreateInvoice(txCtx, payment.ID, s.timeProvider.Now())
		if err != nil {
			s.logger.Error("HandlePaymentSucceeded: failed to create invoice for payment id=%d: %v",
				payment.ID, err)
			return fmt.Errorf("%w: failed to create invoice: %v", ErrInternal, err)
		}

		s.logger.Info("HandlePaymentSucceeded: payment id=%d confirmed, invoice %s issued",
			payment.ID, invoice.Number)
		return nil
	})
}

// HandlePaymentFailed отмечает платеж неуспешным. Бронирование остается
// в PENDING: пользователь может повторить оплату или отменить его.
func (s *Service) HandlePaymentFailed(ctx context.Context, intentID string) error {
	s.logger.Info("HandlePaymentFailed: intent=%s", intentID)

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		payment, err := s.loadPayment(txCtx, intentID)
		if err != nil {
			return err
		}

		// Успешный платеж не может стать неуспешным задним числом
		if payment.Status != domain.PaymentPending {
			s.logger.Info("HandlePaymentFailed: payment id=%d already processed, status=%s",
				payment.ID, payment.Status)
			return nil
		}

		if err := s.paymentRepo.UpdateStatus(txCtx, payment.ID, domain.PaymentFailed); err != nil {
			s.logger.Error("HandlePaymentFailed: failed to update payment id=%d: %v", payment.ID, err)
			return fmt.Errorf("%w: failed to update payment: %v", ErrInternal, err)
		}

		s.logger.Info("HandlePaymentFailed: payment id=%d marked as failed", payment.ID)
		return nil
	})
}

// HandleRefund отмечает платеж возвращенным и отменяет бронирование от
// имени системы, минуя окно отмены.
func (s *Service) HandleRefund(ctx context.Context, intentID string) error {
	s.logger.Info("HandleRefund: intent=%s", intentID)

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		payment, err := s.loadPayment(txCtx, intentID)
		if err != nil {
			return err
		}

		// Возврат возможен только по успешному платежу; повторная
		// нотификация о возврате - no-op
		if !payment.MarkRefunded() {
			s.logger.Warn("HandleRefund: payment id=%d is not refundable, status=%s",
				payment.ID, payment.Status)
			return nil
		}

		if err := s.paymentRepo.UpdateStatus(txCtx, payment.ID, payment.Status); err != nil {
			s.logger.Error("HandleRefund: failed to update payment id=%d: %v", payment.ID, err)
			return fmt.Errorf("%w: failed to update payment: %v", ErrInternal, err)
		}

		// Системная отмена: окна отмены и проверки прав не применяются
		err = s.reservationRepo.UpdateStatus(txCtx, payment.ReservationID, domain.StatusCancelled,
			domain.ActiveStatuses)
		if err != nil && !errors.Is(err, reservationRepo.ErrInvalidTransition) {
			s.logger.Error("HandleRefund: failed to cancel reservation id=%d: %v",
				payment.ReservationID, err)
			return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
		}

		s.logger.Info("HandleRefund: payment id=%d refunded, reservation id=%d cancelled",
			payment.ID, payment.ReservationID)
		return nil
	})
}

func (s *Service) loadPayment(ctx context.Context, intentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("loadPayment: no payment for intent=%s", intentID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("loadPayment: repository error for intent=%s: %v", intentID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return payment, nil
}
