package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	"github.com/kovaldn/ArenaBookingService/internal/infra/storage/court"
)

// Usecase сценарий получения доступности площадки
type Usecase struct {
	reservationRepo ReservationRepository
	courtRepo       CourtRepository
	siteRepo        SiteRepository
	logger          Logger
}

// New создает новый usecase доступности
func New(
	reservationRepo ReservationRepository,
	courtRepo CourtRepository,
	siteRepo SiteRepository,
	logger Logger,
) *Usecase {
	return &Usecase{
		reservationRepo: reservationRepo,
		courtRepo:       courtRepo,
		siteRepo:        siteRepo,
		logger:          logger,
	}
}

// Execute возвращает свободные интервалы площадки внутри [from, to).
// Свободное время вычисляется как интервалы работы комплекса за вычетом
// активных бронирований и блокировок.
func (u *Usecase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	crt, err := u.loadActiveCourt(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}

	hours, err := u.siteRepo.GetOpeningHours(ctx, crt.SiteID)
	if err != nil {
		u.logger.Error("get_availability: failed to get opening hours for site %d: %v", crt.SiteID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get opening hours: %v", ErrInternal, err)
	}

	queried := domain.Interval{Start: req.From, End: req.To}
	occupied, err := u.loadOccupied(ctx, crt.ID, queried)
	if err != nil {
		return nil, err
	}

	free := make([]domain.Interval, 0)
	for _, open := range resolveOpenIntervals(hours, req.From, req.To) {
		free = append(free, freeWithinOpen(open, occupied)...)
	}

	return &Response{
		CourtID:      crt.ID,
		PricePerHour: crt.PricePerHour,
		Free:         free,
	}, nil
}

// CheckSlot проверяет доступность конкретного слота [start, end).
// Слот свободен, когда ни одно активное бронирование и ни одна блокировка
// с ним не пересекаются; соприкосновение границами пересечением не считается.
func (u *Usecase) CheckSlot(ctx context.Context, req CheckRequest) (*CheckResponse, error) {
	if err := validateCheckRequest(req); err != nil {
		return nil, err
	}

	crt, err := u.loadActiveCourt(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}

	candidate := domain.Interval{Start: req.Start, End: req.End}
	occupied, err := u.loadOccupied(ctx, crt.ID, candidate)
	if err != nil {
		return nil, err
	}

	resp := &CheckResponse{
		CourtID:      crt.ID,
		PricePerHour: crt.PricePerHour,
	}

	if conflict := domain.FirstConflict(candidate, occupied); conflict != nil {
		resp.Conflict = conflict
		return resp, nil
	}

	resp.Available = true
	resp.EstimatedTotal = domain.CalculateTotal(crt.PricePerHour, candidate)
	return resp, nil
}

func (u *Usecase) loadActiveCourt(ctx context.Context, courtID int64) (*domain.Court, error) {
	crt, err := u.courtRepo.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, court.ErrCourtNotFound) {
			return nil, fmt.Errorf("%w: court %d", ErrCourtNotFound, courtID)
		}
		u.logger.Error("get_availability: failed to get court %d: %v", courtID, err)
		return nil, fmt.Errorf("%w: loadActiveCourt - failed to get court: %v", ErrInternal, err)
	}
	if !crt.IsActive {
		return nil, fmt.Errorf("%w: court %d", ErrCourtInactive, courtID)
	}
	return crt, nil
}

func (u *Usecase) loadOccupied(ctx context.Context, courtID int64, interval domain.Interval) ([]domain.OccupiedInterval, error) {
	reservations, err := u.reservationRepo.GetOccupied(ctx, courtID, interval, nil)
	if err != nil {
		u.logger.Error("get_availability: failed to get reservations for court %d: %v", courtID, err)
		return nil, fmt.Errorf("%w: loadOccupied - failed to get reservations: %v", ErrInternal, err)
	}

	blocked, err := u.courtRepo.GetBlockedPeriods(ctx, courtID, interval)
	if err != nil {
		u.logger.Error("get_availability: failed to get blocked periods for court %d: %v", courtID, err)
		return nil, fmt.Errorf("%w: loadOccupied - failed to get blocked periods: %v", ErrInternal, err)
	}

	return buildOccupied(reservations, blocked), nil
}
