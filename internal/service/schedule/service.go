package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	courtRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/court"
	siteRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/site"
	userClient "github.com/kovaldn/ArenaBookingService/internal/integrations/userservice"
	"github.com/kovaldn/ArenaBookingService/internal/service/schedule/models"
)

// Service сервис управления расписанием комплекса: рабочие часы и блокировки
type Service struct {
	siteRepo   SiteRepository
	courtRepo  CourtRepository
	userClient UserServiceClient
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	siteRepo SiteRepository,
	courtRepo CourtRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		siteRepo:   siteRepo,
		courtRepo:  courtRepo,
		userClient: userClient,
		txManager:  txManager,
		logger:     logger,
	}
}

// UpdateOpeningHours заменяет недельное расписание комплекса.
// На каждый день допускается не больше одной записи; день без записи -
// выходной. Существующие бронирования замена расписания не затрагивает.
// Замена выполняется одной сериализуемой транзакцией: конкурирующие чтения
// расписания видят либо старую неделю целиком, либо новую, но не смесь.
// Доступно только менеджеру комплекса и администратору.
func (s *Service) UpdateOpeningHours(ctx context.Context, req *models.UpdateOpeningHoursRequest) (*models.OpeningHoursResponse, error) {
	s.logger.Info("UpdateOpeningHours: site=%d, user=%d, %d entries", req.SiteID, req.UserID, len(req.Hours))

	site, err := s.loadSite(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, site, req.UserID); err != nil {
		s.logger.Warn("UpdateOpeningHours: access denied for user=%d to site=%d", req.UserID, req.SiteID)
		return nil, err
	}

	hours, err := req.ToDomainHours()
	if err != nil {
		s.logger.Warn("UpdateOpeningHours: invalid schedule for site=%d: %v", req.SiteID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updated domain.WeeklyHours
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.siteRepo.ReplaceOpeningHours(txCtx, req.SiteID, hours); err != nil {
			s.logger.Error("UpdateOpeningHours: repository error for site=%d: %v", req.SiteID, err)
			return fmt.Errorf("%w: UpdateOpeningHours - repository error: %v", ErrInternal, err)
		}

		reloaded, err := s.siteRepo.GetOpeningHours(txCtx, req.SiteID)
		if err != nil {
			s.logger.Error("UpdateOpeningHours: failed to reload hours for site=%d: %v", req.SiteID, err)
			return fmt.Errorf("%w: UpdateOpeningHours - repository error: %v", ErrInternal, err)
		}

		updated = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateOpeningHours: successfully updated schedule for site=%d", req.SiteID)
	return models.FromDomainHours(req.SiteID, updated), nil
}

// BlockPeriod блокирует время площадки (ремонт, закрытое мероприятие).
// Блокировка может пересекаться с существующими бронированиями: она не
// отменяет их, а лишь закрывает время для новых.
// Доступно только менеджеру комплекса и администратору.
func (s *Service) BlockPeriod(ctx context.Context, req *models.CreateBlockedPeriodRequest) (*models.BlockedPeriodResponse, error) {
	s.logger.Info("BlockPeriod: court=%d, user=%d", req.CourtID, req.UserID)

	if err := req.Validate(); err != nil {
		s.logger.Warn("BlockPeriod: validation failed for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	site, err := s.loadCourtSite(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, site, req.UserID); err != nil {
		s.logger.Warn("BlockPeriod: access denied for user=%d to court=%d", req.UserID, req.CourtID)
		return nil, err
	}

	created, err := s.courtRepo.CreateBlockedPeriod(ctx, &domain.BlockedPeriod{
		CourtID: req.CourtID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Reason:  req.Reason,
	})
	if err != nil {
		s.logger.Error("BlockPeriod: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: BlockPeriod - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BlockPeriod: created blocked period id=%d for court=%d", created.ID, req.CourtID)
	return models.FromDomainBlockedPeriod(created), nil
}

// RemoveBlockedPeriod снимает блокировку площадки.
// Доступно только менеджеру комплекса и администратору.
func (s *Service) RemoveBlockedPeriod(ctx context.Context, req *models.DeleteBlockedPeriodRequest) error {
	s.logger.Info("RemoveBlockedPeriod: court=%d, period=%d, user=%d", req.CourtID, req.PeriodID, req.UserID)

	site, err := s.loadCourtSite(ctx, req.CourtID)
	if err != nil {
		return err
	}

	if err := s.checkManagerAccess(ctx, site, req.UserID); err != nil {
		s.logger.Warn("RemoveBlockedPeriod: access denied for user=%d to court=%d", req.UserID, req.CourtID)
		return err
	}

	if err := s.courtRepo.DeleteBlockedPeriod(ctx, req.CourtID, req.PeriodID); err != nil {
		if errors.Is(err, courtRepo.ErrBlockedPeriodNotFound) {
			s.logger.Warn("RemoveBlockedPeriod: period id=%d not found for court=%d", req.PeriodID, req.CourtID)
			return ErrPeriodNotFound
		}
		s.logger.Error("RemoveBlockedPeriod: repository error for court=%d: %v", req.CourtID, err)
		return fmt.Errorf("%w: RemoveBlockedPeriod - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveBlockedPeriod: removed period id=%d from court=%d", req.PeriodID, req.CourtID)
	return nil
}

// Вспомогательные методы

func (s *Service) loadSite(ctx context.Context, siteID int64) (*domain.Site, error) {
	site, err := s.siteRepo.GetByID(ctx, siteID)
	if err != nil {
		if errors.Is(err, siteRepo.ErrSiteNotFound) {
			s.logger.Warn("loadSite: site id=%d not found", siteID)
			return nil, ErrSiteNotFound
		}
		s.logger.Error("loadSite: repository error for site id=%d: %v", siteID, err)
		return nil, fmt.Errorf("%w: failed to get site: %v", ErrInternal, err)
	}
	return site, nil
}

func (s *Service) loadCourtSite(ctx context.Context, courtID int64) (*domain.Site, error) {
	court, err := s.courtRepo.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("loadCourtSite: court id=%d not found", courtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("loadCourtSite: repository error for court id=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	return s.loadSite(ctx, court.SiteID)
}

// checkManagerAccess проверяет, что пользователь управляет комплексом
func (s *Service) checkManagerAccess(ctx context.Context, site *domain.Site, userID int64) error {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get user id=%d: %v", userID, err)
		return fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if !user.ToDomain().CanManageSite(site) {
		return ErrAccessDenied
	}
	return nil
}
