package get_availability

import (
	"github.com/kovaldn/ArenaBookingService/internal/domain"
)

// buildOccupied сливает активные бронирования и блокировки площадки в один
// список занятых интервалов. Порядок здесь не важен: сортировку выполняет
// domain.FreeIntervals перед разверткой.
func buildOccupied(reservations []*domain.Reservation, blocked []*domain.BlockedPeriod) []domain.OccupiedInterval {
	occupied := make([]domain.OccupiedInterval, 0, len(reservations)+len(blocked))

	for _, r := range reservations {
		// Репозиторий отдает только активные, но фильтр дешев и защищает
		// от расширения выборки в будущем
		if !r.IsActive() {
			continue
		}
		occupied = append(occupied, r.Occupied())
	}

	for _, b := range blocked {
		occupied = append(occupied, b.Occupied())
	}

	return occupied
}

// freeWithinOpen вычисляет свободные интервалы внутри одного интервала
// работы. Занятые интервалы могут пересекаться между собой (блокировка
// поверх брони) - развертка в domain.FreeIntervals сливает их неявно.
func freeWithinOpen(open domain.Interval, occupied []domain.OccupiedInterval) []domain.Interval {
	relevant := make([]domain.OccupiedInterval, 0, len(occupied))
	for _, occ := range occupied {
		if occ.Overlaps(open) {
			relevant = append(relevant, occ)
		}
	}
	return domain.FreeIntervals(open, relevant)
}
