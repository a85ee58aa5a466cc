package schedule

import (
	"fmt"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

// GenerateSlots перечисляет допустимые времена начала новой сессии
// длительностью durationMinutes внутри окна w при уже занятых интервалах.
// Возвращает возрастающий список минут с начала суток без дубликатов.
// Если w == nil (студия закрыта), возвращает пустой список.
//
// Каждый занятый интервал расширяется буфером только вперед:
// новая сессия может начаться сразу после того, как истек буфер
// предыдущей, но не может закончиться ближе чем за буфер до начала
// следующей - буфер следующей сессии уже включен в ее расширенный
// интервал. Касание границ пересечением не считается.
func GenerateSlots(w *Window, durationMinutes int, occupied []domain.OccupiedInterval) ([]int, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}

	slots := make([]int, 0)
	if w == nil {
		return slots, nil
	}

	// Расширяем занятые интервалы буфером (только конец)
	blocked := make([]domain.OccupiedInterval, len(occupied))
	for i, occ := range occupied {
		blocked[i] = domain.OccupiedInterval{
			StartMinute: occ.StartMinute,
			EndMinute:   occ.EndMinute + w.BufferMinutes,
		}
	}

	// Перебираем кандидатов с фиксированным шагом от начала окна.
	// Сессия должна целиком помещаться до закрытия.
	for cand := w.StartMinute; cand+durationMinutes <= w.EndMinute; cand += domain.SlotStepMinutes {
		if !overlapsAny(cand, cand+durationMinutes, blocked) {
			slots = append(slots, cand)
		}
	}

	return slots, nil
}

// overlapsAny проверяет, пересекается ли интервал [start, end)
// хотя бы с одним из занятых интервалов.
// Интервалы пересекаются, только если start СТРОГО раньше конца занятого
// И end СТРОГО позже его начала - сессии впритык (с учетом буфера,
// уже включенного в занятый интервал) разрешены.
func overlapsAny(start, end int, blocked []domain.OccupiedInterval) bool {
	for _, b := range blocked {
		if start < b.EndMinute && end > b.StartMinute {
			return true
		}
	}
	return false
}

// ComputeAvailableSlots вычисляет доступные времена начала сессии на дату:
// определяет окно работы, генерирует слоты и форматирует их в "HH:MM".
// Для закрытого дня возвращает пустой список (не ошибку).
func ComputeAvailableSlots(
	dateStr string,
	durationMinutes int,
	occupied []domain.OccupiedInterval,
	cfg *domain.ScheduleConfig,
) ([]string, error) {
	window, err := ResolveWindow(dateStr, cfg)
	if err != nil {
		return nil, err
	}

	slots, err := GenerateSlots(window, durationMinutes, occupied)
	if err != nil {
		return nil, err
	}

	result := make([]string, len(slots))
	for i, minute := range slots {
		result[i] = FormatMinutes(minute)
	}

	return result, nil
}
