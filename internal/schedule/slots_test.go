package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

func window9to18(buffer int) *Window {
	return &Window{StartMinute: 540, EndMinute: 1080, BufferMinutes: buffer}
}

func TestGenerateSlots_EmptyDay(t *testing.T) {
	// Окно 09:00-18:00 (540 минут), сессия 90 минут, шаг 30:
	// первый слот 09:00, последний 16:30 (заканчивается ровно в 18:00), всего 16
	slots, err := GenerateSlots(window9to18(15), 90, nil)
	require.NoError(t, err)

	require.Len(t, slots, 16)
	assert.Equal(t, 540, slots[0])
	assert.Equal(t, 990, slots[len(slots)-1])
}

func TestGenerateSlots_AroundOccupiedInterval(t *testing.T) {
	// Занято 10:00-11:00, буфер 15 -> блокируется [10:00, 11:15).
	// Сессия 60 минут:
	//   09:00 заканчивается ровно в 10:00 - касание границы разрешено
	//   09:30-11:00 пересекаются с блоком
	//   11:30 начинается после 11:15 - разрешено
	occupied := []domain.OccupiedInterval{{StartMinute: 600, EndMinute: 660}}

	slots, err := GenerateSlots(window9to18(15), 60, occupied)
	require.NoError(t, err)

	got := make([]string, len(slots))
	for i, m := range slots {
		got[i] = FormatMinutes(m)
	}

	assert.Contains(t, got, "09:00")
	assert.Contains(t, got, "11:30")
	assert.Contains(t, got, "12:00")
	assert.Contains(t, got, "17:00")

	assert.NotContains(t, got, "09:30")
	assert.NotContains(t, got, "10:00")
	assert.NotContains(t, got, "10:30")
	assert.NotContains(t, got, "11:00")
}

func TestGenerateSlots_BufferExtendsOnlyForward(t *testing.T) {
	// Буфер защищает промежуток ПОСЛЕ сессии, но не сдвигает ее начало назад:
	// сессия может закончиться ровно к началу занятого интервала
	occupied := []domain.OccupiedInterval{{StartMinute: 720, EndMinute: 780}} // 12:00-13:00

	slots, err := GenerateSlots(window9to18(30), 60, occupied)
	require.NoError(t, err)

	// 11:00 заканчивается в 12:00 - впритык к началу, разрешено
	assert.Contains(t, slots, 660)
	// 13:00 попадает в буфер (блок до 13:30), 13:30 - первый после
	assert.NotContains(t, slots, 780)
	assert.Contains(t, slots, 810)
}

func TestGenerateSlots_NoBuffer(t *testing.T) {
	occupied := []domain.OccupiedInterval{{StartMinute: 600, EndMinute: 660}}

	slots, err := GenerateSlots(window9to18(0), 60, occupied)
	require.NoError(t, err)

	// Без буфера сессия может начаться сразу в 11:00
	assert.Contains(t, slots, 660)
	assert.NotContains(t, slots, 630)
}

func TestGenerateSlots_ClosedWindow(t *testing.T) {
	occupied := []domain.OccupiedInterval{{StartMinute: 600, EndMinute: 660}}

	slots, err := GenerateSlots(nil, 60, occupied)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_InvalidDuration(t *testing.T) {
	_, err := GenerateSlots(window9to18(15), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = GenerateSlots(window9to18(15), -30, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestGenerateSlots_SessionLongerThanWindow(t *testing.T) {
	slots, err := GenerateSlots(&Window{StartMinute: 540, EndMinute: 600, BufferMinutes: 15}, 90, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_LongerSessionsFitInFewerPlaces(t *testing.T) {
	// Чем длиннее сессия, тем меньше (или столько же) мест для нее
	occupied := []domain.OccupiedInterval{
		{StartMinute: 600, EndMinute: 660},
		{StartMinute: 840, EndMinute: 930},
	}

	durations := []int{30, 60, 90, 120}
	prevCount := -1
	for i := len(durations) - 1; i >= 0; i-- {
		slots, err := GenerateSlots(window9to18(15), durations[i], occupied)
		require.NoError(t, err)
		if prevCount >= 0 {
			assert.GreaterOrEqual(t, len(slots), prevCount,
				"duration %d must offer at least as many slots as a longer one", durations[i])
		}
		prevCount = len(slots)
	}
}

func TestGenerateSlots_AcceptedSlotsRespectBuffer(t *testing.T) {
	// Любой принятый слот либо заканчивается до начала занятого интервала,
	// либо начинается после его конца с учетом буфера
	const (
		duration = 60
		buffer   = 15
	)
	occupied := []domain.OccupiedInterval{
		{StartMinute: 570, EndMinute: 630},
		{StartMinute: 780, EndMinute: 855},
		{StartMinute: 960, EndMinute: 1020},
	}

	slots, err := GenerateSlots(window9to18(buffer), duration, occupied)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		for _, occ := range occupied {
			ok := s+duration <= occ.StartMinute || s >= occ.EndMinute+buffer
			assert.True(t, ok, "slot %s violates buffer around [%s, %s)",
				FormatMinutes(s), FormatMinutes(occ.StartMinute), FormatMinutes(occ.EndMinute))
		}
	}
}

func TestComputeAvailableSlots_FormatsTimes(t *testing.T) {
	cfg := testConfig()
	occupied := []domain.OccupiedInterval{{StartMinute: 600, EndMinute: 660}}

	slots, err := ComputeAvailableSlots(mondayDate, 60, occupied, cfg)
	require.NoError(t, err)

	assert.Equal(t, "09:00", slots[0])
	assert.Contains(t, slots, "11:30")
	assert.NotContains(t, slots, "10:00")
}

func TestComputeAvailableSlots_ClosedDayIsEmpty(t *testing.T) {
	// Для закрытого дня всегда пустой список, какой бы ни была
	// длительность и занятость
	cfg := testConfig()
	cfg.WeekdayRules[0].Closed = true

	for _, duration := range []int{30, 60, 90} {
		slots, err := ComputeAvailableSlots(sundayDate, duration, nil, cfg)
		require.NoError(t, err)
		assert.Empty(t, slots)
	}
}

func TestComputeAvailableSlots_Deterministic(t *testing.T) {
	cfg := testConfig()
	occupied := []domain.OccupiedInterval{
		{StartMinute: 600, EndMinute: 675},
		{StartMinute: 900, EndMinute: 960},
	}

	first, err := ComputeAvailableSlots(mondayDate, 75, occupied, cfg)
	require.NoError(t, err)
	second, err := ComputeAvailableSlots(mondayDate, 75, occupied, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeAvailableSlots_FullyBookedDay(t *testing.T) {
	cfg := testConfig()
	occupied := []domain.OccupiedInterval{{StartMinute: 540, EndMinute: 1080}}

	slots, err := ComputeAvailableSlots(mondayDate, 60, occupied, cfg)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
