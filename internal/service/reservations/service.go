package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	reservationRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/reservation"
	siteRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/site"
	userClient "github.com/kovaldn/ArenaBookingService/internal/integrations/userservice"
	"github.com/kovaldn/ArenaBookingService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	courtRepo       CourtRepository
	siteRepo        SiteRepository
	paymentRepo     PaymentRepository
	gateway         PaymentGatewayClient
	userClient      UserServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	courtRepo CourtRepository,
	siteRepo SiteRepository,
	paymentRepo PaymentRepository,
	gateway PaymentGatewayClient,
	userClient UserServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		courtRepo:       courtRepo,
		siteRepo:        siteRepo,
		paymentRepo:     paymentRepo,
		gateway:         gateway,
		userClient:      userClient,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно владельцу, менеджеру комплекса и администратору.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, site, err := s.loadReservationWithSite(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.CanViewReservation(reservation, site) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation, s.timeProvider.Now()), nil
}

// GetUserReservations получает историю бронирований пользователя.
// Фильтр по статусу применяется к вычисленному статусу: confirmed с истекшим
// концом считается completed, хранимый статус при этом не важен.
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var wantStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		wantStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, nil)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	if wantStatus != nil {
		filtered := make([]*domain.Reservation, 0, len(reservations))
		for _, r := range reservations {
			if r.EffectiveStatus(now) == *wantStatus {
				filtered = append(filtered, r)
			}
		}
		reservations = filtered
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations, now), nil
}

// GetSiteReservations получает бронирования комплекса с фильтрацией.
// Доступно только менеджеру комплекса и администратору. Вместе со списком
// возвращается сводка: количество и выручка по оплаченным бронированиям.
func (s *Service) GetSiteReservations(ctx context.Context, req *models.GetSiteReservationsRequest) (*models.SiteReservationListResponse, error) {
	s.logger.Info("GetSiteReservations: fetching reservations for site=%d, user=%d", req.SiteID, req.UserID)

	site, err := s.loadSite(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, site, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSiteReservations: invalid filter for site=%d: %v", req.SiteID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetBySiteWithFilter(ctx, req.SiteID, filter)
	if err != nil {
		s.logger.Error("GetSiteReservations: repository error for site=%d: %v", req.SiteID, err)
		return nil, fmt.Errorf("%w: GetSiteReservations - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	list := models.FromDomainReservationList(reservations, now)

	stats := models.SiteReservationStats{TotalCount: len(reservations)}
	for _, r := range reservations {
		// В выручку входят только подтвержденные (оплаченные) бронирования
		if r.Status == domain.StatusConfirmed {
			stats.Revenue += r.TotalAmount
		}
	}
	stats.Revenue = domain.RoundMoney(stats.Revenue)

	s.logger.Info("GetSiteReservations: successfully fetched %d reservations for site=%d", len(reservations), req.SiteID)
	return &models.SiteReservationListResponse{
		Reservations: list.Reservations,
		Stats:        stats,
	}, nil
}

// Cancel отменяет бронирование.
// Владелец может отменить не позднее чем за сутки до начала; менеджер
// комплекса и администратор - в любой момент. Повторная отмена не ошибка:
// возвращается Cancelled=false. Если бронирование уже оплачено, запускается
// возврат средств через платежный шлюз.
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) (*models.CancelReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	reservation, site, err := s.loadReservationWithSite(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()

	// Идемпотентность: повторная отмена не меняет состояние
	if reservation.Status == domain.StatusCancelled {
		s.logger.Info("Cancel: reservation id=%d is already cancelled", reservationID)
		return &models.CancelReservationResponse{
			Cancelled: false,
			Status:    string(domain.StatusCancelled),
		}, nil
	}

	if reservation.UserID == req.UserID {
		// Владелец: действует окно отмены
		if reservation.EffectiveStatus(now) == domain.StatusCompleted {
			s.logger.Warn("Cancel: reservation id=%d has already completed", reservationID)
			return nil, ErrCannotCancel
		}
		if !reservation.CanBeCancelled(now) {
			s.logger.Warn("Cancel: cancellation window closed for reservation id=%d", reservationID)
			return nil, ErrCancellationWindow
		}
	} else {
		// Менеджер комплекса и администратор отменяют без ограничения по времени
		if err := s.checkManagerAccess(ctx, site, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
			return nil, ErrAccessDenied
		}
	}

	if err := s.cancelAndRefund(ctx, reservation); err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return &models.CancelReservationResponse{
		Cancelled: true,
		Status:    string(domain.StatusCancelled),
	}, nil
}

// SystemCancel отменяет бронирование от имени системы, минуя проверки прав
// и окна отмены. Используется обработчиком возвратов платежного шлюза.
// Идемпотентен: уже отмененное бронирование возвращает Cancelled=false.
func (s *Service) SystemCancel(ctx context.Context, reservationID int64) (*models.CancelReservationResponse, error) {
	s.logger.Info("SystemCancel: cancelling reservation id=%d", reservationID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("SystemCancel: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: SystemCancel - repository error: %v", ErrInternal, err)
	}

	if reservation.Status == domain.StatusCancelled {
		return &models.CancelReservationResponse{
			Cancelled: false,
			Status:    string(domain.StatusCancelled),
		}, nil
	}

	if err := s.markCancelled(ctx, reservation.ID); err != nil {
		return nil, err
	}

	s.logger.Info("SystemCancel: successfully cancelled reservation id=%d", reservationID)
	return &models.CancelReservationResponse{
		Cancelled: true,
		Status:    string(domain.StatusCancelled),
	}, nil
}

// Вспомогательные методы

// cancelAndRefund отменяет бронирование; для оплаченного бронирования
// дополнительно запускает возврат средств. Возврат асинхронный: платеж
// перейдет в refunded после нотификации шлюза.
func (s *Service) cancelAndRefund(ctx context.Context, reservation *domain.Reservation) error {
	wasConfirmed := reservation.Status == domain.StatusConfirmed

	if err := s.markCancelled(ctx, reservation.ID); err != nil {
		return err
	}

	if !wasConfirmed {
		return nil
	}

	payment, err := s.paymentRepo.GetByReservationID(ctx, reservation.ID)
	if err != nil {
		s.logger.Error("Cancel: failed to get payment for reservation id=%d: %v", reservation.ID, err)
		return nil
	}

	if payment.Status != domain.PaymentSuccess || payment.GatewayIntentID == nil {
		return nil
	}

	// Ошибка шлюза не откатывает отмену: слот уже освобожден, возврат
	// можно повторить вручную
	if err := s.gateway.CreateRefund(ctx, *payment.GatewayIntentID); err != nil {
		s.logger.Error("Cancel: failed to request refund for reservation id=%d: %v", reservation.ID, err)
	}

	return nil
}

func (s *Service) markCancelled(ctx context.Context, reservationID int64) error {
	err := s.reservationRepo.UpdateStatus(ctx, reservationID, domain.StatusCancelled, domain.ActiveStatuses)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrInvalidTransition) {
			// Конкурирующая отмена успела раньше
			return nil
		}
		s.logger.Error("Cancel: failed to update status for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) loadReservationWithSite(ctx context.Context, id int64) (*domain.Reservation, *domain.Site, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("loadReservationWithSite: reservation id=%d not found", id)
			return nil, nil, ErrReservationNotFound
		}
		s.logger.Error("loadReservationWithSite: repository error for reservation id=%d: %v", id, err)
		return nil, nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	court, err := s.courtRepo.GetByID(ctx, reservation.CourtID)
	if err != nil {
		s.logger.Error("loadReservationWithSite: failed to get court id=%d: %v", reservation.CourtID, err)
		return nil, nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	site, err := s.loadSite(ctx, court.SiteID)
	if err != nil {
		return nil, nil, err
	}

	return reservation, site, nil
}

func (s *Service) loadSite(ctx context.Context, siteID int64) (*domain.Site, error) {
	site, err := s.siteRepo.GetByID(ctx, siteID)
	if err != nil {
		if errors.Is(err, siteRepo.ErrSiteNotFound) {
			s.logger.Warn("loadSite: site id=%d not found", siteID)
			return nil, ErrSiteNotFound
		}
		s.logger.Error("loadSite: failed to get site id=%d: %v", siteID, err)
		return nil, fmt.Errorf("%w: failed to get site: %v", ErrInternal, err)
	}
	return site, nil
}

func (s *Service) resolveUser(ctx context.Context, userID int64) (domain.User, error) {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("resolveUser: user id=%d not found", userID)
			return domain.User{}, ErrUserNotFound
		}
		s.logger.Error("resolveUser: failed to get user id=%d: %v", userID, err)
		return domain.User{}, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	return user.ToDomain(), nil
}

// checkManagerAccess проверяет, что пользователь управляет комплексом
func (s *Service) checkManagerAccess(ctx context.Context, site *domain.Site, userID int64) error {
	user, err := s.resolveUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CanManageSite(site) {
		return ErrAccessDenied
	}
	return nil
}
