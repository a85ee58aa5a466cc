package settings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/dbmetrics"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/psqlbuilder"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/ptr"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/types"
)

// Repository репозиторий настроек студии: расписание работы
// (schedule_settings + business_hours + date_exceptions) и общие
// настройки сайта (site_settings)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetScheduleConfig собирает конфигурацию расписания из трех таблиц.
// Если строка schedule_settings еще не создана, возвращает конфигурацию
// по умолчанию - сервис работает и до первой настройки админом.
func (r *Repository) GetScheduleConfig(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cfg := domain.DefaultScheduleConfig()

	query, args, err := psqlbuilder.Select("buffer_minutes", "fallback_start_minute", "fallback_end_minute").
		From("schedule_settings").
		Where(squirrel.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleConfig - build settings query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.BufferMinutes,
		&cfg.FallbackStartMinute,
		&cfg.FallbackEndMinute,
	)
	if err == sql.ErrNoRows {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleConfig - scan settings: %v", ErrScanRow, err)
	}

	rules, err := r.getWeekdayRules(ctx, executor)
	if err != nil {
		return nil, err
	}
	if len(rules) > 0 {
		cfg.WeekdayRules = rules
	}

	exceptions, err := r.getDateExceptions(ctx, executor)
	if err != nil {
		return nil, err
	}
	cfg.DateExceptions = exceptions

	return cfg, nil
}

func (r *Repository) getWeekdayRules(ctx context.Context, executor DBExecutor) ([]domain.WeekdayRule, error) {
	query, args, err := psqlbuilder.Select("weekday", "open_time", "close_time", "closed").
		From("business_hours").
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getWeekdayRules - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWeekdayRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.WeekdayRule, 0, 7)
	for rows.Next() {
		var rule domain.WeekdayRule
		var openTime, closeTime types.TimeString
		if err := rows.Scan(&rule.Weekday, &openTime, &closeTime, &rule.Closed); err != nil {
			return nil, fmt.Errorf("%w: getWeekdayRules - scan row: %v", ErrScanRow, err)
		}
		rule.OpenTime = openTime.String()
		rule.CloseTime = closeTime.String()
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWeekdayRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

func (r *Repository) getDateExceptions(ctx context.Context, executor DBExecutor) (map[string]domain.DateException, error) {
	query, args, err := psqlbuilder.Select("exception_date", "closed", "open_time", "close_time").
		From("date_exceptions").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getDateExceptions - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getDateExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make(map[string]domain.DateException)
	for rows.Next() {
		var exc domain.DateException
		var date time.Time
		var openTime, closeTime *types.TimeString
		if err := rows.Scan(&date, &exc.Closed, &openTime, &closeTime); err != nil {
			return nil, fmt.Errorf("%w: getDateExceptions - scan row: %v", ErrScanRow, err)
		}
		exc.Date = date.Format(domain.DateFormat)
		if openTime != nil {
			exc.OpenTime = ptr.Ptr(openTime.String())
		}
		if closeTime != nil {
			exc.CloseTime = ptr.Ptr(closeTime.String())
		}
		exceptions[exc.Date] = exc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getDateExceptions - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// UpdateScheduleConfig сохраняет конфигурацию расписания целиком.
// Правила дней недели и исключения перезаписываются полностью -
// вызывающая сторона оборачивает вызов в транзакцию.
func (r *Repository) UpdateScheduleConfig(ctx context.Context, cfg *domain.ScheduleConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_settings").
		Columns("id", "buffer_minutes", "fallback_start_minute", "fallback_end_minute").
		Values(1, cfg.BufferMinutes, cfg.FallbackStartMinute, cfg.FallbackEndMinute).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"buffer_minutes = EXCLUDED.buffer_minutes, " +
			"fallback_start_minute = EXCLUDED.fallback_start_minute, " +
			"fallback_end_minute = EXCLUDED.fallback_end_minute, " +
			"updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateScheduleConfig - build settings query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateScheduleConfig - upsert settings: %v", ErrExecQuery, err)
	}

	if err := r.replaceWeekdayRules(ctx, executor, cfg.WeekdayRules); err != nil {
		return err
	}

	return r.replaceDateExceptions(ctx, executor, cfg.DateExceptions)
}

func (r *Repository) replaceWeekdayRules(ctx context.Context, executor DBExecutor, rules []domain.WeekdayRule) error {
	if _, err := executor.ExecContext(ctx, "DELETE FROM business_hours"); err != nil {
		return fmt.Errorf("%w: replaceWeekdayRules - clear table: %v", ErrExecQuery, err)
	}

	if len(rules) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("business_hours").
		Columns("weekday", "open_time", "close_time", "closed")
	for _, rule := range rules {
		insertBuilder = insertBuilder.Values(rule.Weekday, rule.OpenTime, rule.CloseTime, rule.Closed)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceWeekdayRules - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceWeekdayRules - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) replaceDateExceptions(ctx context.Context, executor DBExecutor, exceptions map[string]domain.DateException) error {
	if _, err := executor.ExecContext(ctx, "DELETE FROM date_exceptions"); err != nil {
		return fmt.Errorf("%w: replaceDateExceptions - clear table: %v", ErrExecQuery, err)
	}

	if len(exceptions) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("date_exceptions").
		Columns("exception_date", "closed", "open_time", "close_time")
	for _, exc := range exceptions {
		insertBuilder = insertBuilder.Values(exc.Date, exc.Closed, exc.OpenTime, exc.CloseTime)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceDateExceptions - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceDateExceptions - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetSiteConfig получает общие настройки сайта.
// При отсутствии строки возвращает пустую конфигурацию.
func (r *Repository) GetSiteConfig(ctx context.Context) (*domain.SiteConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("studio_name", "email", "phone").
		From("site_settings").
		Where(squirrel.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSiteConfig - build query: %v", ErrBuildQuery, err)
	}

	var cfg domain.SiteConfig
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.StudioName, &cfg.Email, &cfg.Phone)
	if err == sql.ErrNoRows {
		return &domain.SiteConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSiteConfig - scan row: %v", ErrScanRow, err)
	}

	return &cfg, nil
}

// UpdateSiteConfig сохраняет общие настройки сайта
func (r *Repository) UpdateSiteConfig(ctx context.Context, cfg *domain.SiteConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("site_settings").
		Columns("id", "studio_name", "email", "phone").
		Values(1, cfg.StudioName, cfg.Email, cfg.Phone).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"studio_name = EXCLUDED.studio_name, " +
			"email = EXCLUDED.email, " +
			"phone = EXCLUDED.phone, " +
			"updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSiteConfig - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateSiteConfig - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
