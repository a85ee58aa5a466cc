package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/ptr"
)

// 2025-10-12 - воскресенье, 2025-10-13 - понедельник
const (
	sundayDate = "2025-10-12"
	mondayDate = "2025-10-13"
)

func testConfig() *domain.ScheduleConfig {
	cfg := domain.DefaultScheduleConfig()
	cfg.BufferMinutes = 15
	return cfg
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "morning", input: "09:00", want: 540},
		{name: "evening", input: "18:30", want: 1110},
		{name: "midnight", input: "00:00", want: 0},
		{name: "end of day", input: "24:00", want: 1440},
		{name: "no colon", input: "0900", wantErr: true},
		{name: "not a number", input: "ab:cd", wantErr: true},
		{name: "minutes out of range", input: "10:75", wantErr: true},
		{name: "hours out of range", input: "25:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeToMinutes(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "09:00", FormatMinutes(540))
	assert.Equal(t, "16:30", FormatMinutes(990))
	assert.Equal(t, "00:05", FormatMinutes(5))
}

func TestWeekdayOf(t *testing.T) {
	wd, err := WeekdayOf(sundayDate)
	require.NoError(t, err)
	assert.Equal(t, 0, wd)

	wd, err = WeekdayOf(mondayDate)
	require.NoError(t, err)
	assert.Equal(t, 1, wd)

	_, err = WeekdayOf("12.10.2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestResolveWindow_WeekdayRule(t *testing.T) {
	cfg := testConfig()

	window, err := ResolveWindow(mondayDate, cfg)
	require.NoError(t, err)
	require.NotNil(t, window)
	assert.Equal(t, 540, window.StartMinute)
	assert.Equal(t, 1080, window.EndMinute)
	assert.Equal(t, 15, window.BufferMinutes)
}

func TestResolveWindow_WeekdayClosed(t *testing.T) {
	cfg := testConfig()
	cfg.WeekdayRules[0].Closed = true // воскресенье

	window, err := ResolveWindow(sundayDate, cfg)
	require.NoError(t, err)
	assert.Nil(t, window)
}

func TestResolveWindow_ExceptionClosed(t *testing.T) {
	cfg := testConfig()
	cfg.DateExceptions[mondayDate] = domain.DateException{
		Date:   mondayDate,
		Closed: true,
	}

	window, err := ResolveWindow(mondayDate, cfg)
	require.NoError(t, err)
	assert.Nil(t, window)
}

func TestResolveWindow_ExceptionOverridesWeekdayRule(t *testing.T) {
	// Правило дня недели говорит 09:00-18:00, исключение - 10:00-14:00
	cfg := testConfig()
	cfg.DateExceptions[mondayDate] = domain.DateException{
		Date:      mondayDate,
		Closed:    false,
		OpenTime:  ptr.Ptr("10:00"),
		CloseTime: ptr.Ptr("14:00"),
	}

	window, err := ResolveWindow(mondayDate, cfg)
	require.NoError(t, err)
	require.NotNil(t, window)
	assert.Equal(t, 600, window.StartMinute)
	assert.Equal(t, 840, window.EndMinute)
}

func TestResolveWindow_ExceptionOverridesClosedWeekday(t *testing.T) {
	// День недели закрыт, но исключение открывает дату
	cfg := testConfig()
	cfg.WeekdayRules[0].Closed = true
	cfg.DateExceptions[sundayDate] = domain.DateException{
		Date:      sundayDate,
		Closed:    false,
		OpenTime:  ptr.Ptr("11:00"),
		CloseTime: ptr.Ptr("15:00"),
	}

	window, err := ResolveWindow(sundayDate, cfg)
	require.NoError(t, err)
	require.NotNil(t, window)
	assert.Equal(t, 660, window.StartMinute)
	assert.Equal(t, 900, window.EndMinute)
}

func TestResolveWindow_OpenExceptionWithoutTimes(t *testing.T) {
	cfg := testConfig()
	cfg.DateExceptions[mondayDate] = domain.DateException{
		Date:     mondayDate,
		Closed:   false,
		OpenTime: ptr.Ptr("10:00"),
		// CloseTime отсутствует
	}

	_, err := ResolveWindow(mondayDate, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestResolveWindow_MissingWeekdayRuleMeansClosed(t *testing.T) {
	// Правила настроены, но для воскресенья правила нет -
	// день закрыт, без молчаливого fallback
	cfg := testConfig()
	cfg.WeekdayRules = cfg.WeekdayRules[1:] // убираем воскресенье

	window, err := ResolveWindow(sundayDate, cfg)
	require.NoError(t, err)
	assert.Nil(t, window)

	// Остальные дни при этом работают как прежде
	window, err = ResolveWindow(mondayDate, cfg)
	require.NoError(t, err)
	assert.NotNil(t, window)
}

func TestResolveWindow_FallbackWhenNoWeekdayRules(t *testing.T) {
	cfg := &domain.ScheduleConfig{
		BufferMinutes:       10,
		FallbackStartMinute: 600,
		FallbackEndMinute:   1200,
	}

	window, err := ResolveWindow(mondayDate, cfg)
	require.NoError(t, err)
	require.NotNil(t, window)
	assert.Equal(t, 600, window.StartMinute)
	assert.Equal(t, 1200, window.EndMinute)
	assert.Equal(t, 10, window.BufferMinutes)
}

func TestResolveWindow_FallbackDefaults(t *testing.T) {
	// Пустая конфигурация: fallback-окно по умолчанию 09:00-18:00
	cfg := &domain.ScheduleConfig{BufferMinutes: 15}

	window, err := ResolveWindow(mondayDate, cfg)
	require.NoError(t, err)
	require.NotNil(t, window)
	assert.Equal(t, domain.DefaultOpenMinute, window.StartMinute)
	assert.Equal(t, domain.DefaultCloseMinute, window.EndMinute)
}

func TestResolveWindow_MalformedRuleTime(t *testing.T) {
	cfg := testConfig()
	cfg.WeekdayRules[1].OpenTime = "nine o'clock"

	_, err := ResolveWindow(mondayDate, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestResolveWindow_InvalidDate(t *testing.T) {
	_, err := ResolveWindow("not-a-date", testConfig())
	assert.ErrorIs(t, err, ErrInvalidDate)
}
