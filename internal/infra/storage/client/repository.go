package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/dbmetrics"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/psqlbuilder"
)

var clientColumns = []string{
	"id",
	"email",
	"name",
	"phone",
	"preferences",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий клиентской базы (CRM)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает клиента или обновляет имя и телефон существующего.
// Вызывается при каждом бронировании - клиентская база пополняется
// автоматически, без отдельной регистрации.
func (r *Repository) Upsert(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("email", "name", "phone").
		Values(client.Email, client.Name, client.Phone).
		Suffix("ON CONFLICT (email) DO UPDATE SET " +
			"name = EXCLUDED.name, " +
			"phone = COALESCE(EXCLUDED.phone, clients.phone), " +
			"updated_at = NOW() " +
			"RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&client.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	client.CreatedAt = createdAt.Time
	client.UpdatedAt = updatedAt.Time

	return client, nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build query: %v", ErrBuildQuery, err)
	}

	client, err := r.scanClient(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan client: %v", ErrScanRow, err)
	}

	return client, nil
}

// List получает всех клиентов студии, новые сверху
func (r *Repository) List(ctx context.Context) ([]*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := r.scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return clients, nil
}

// UpdateCRM обновляет CRM-поля клиента: предпочтения и заметки администратора
func (r *Repository) UpdateCRM(ctx context.Context, id int64, preferences, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("clients").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if preferences != nil {
		updateBuilder = updateBuilder.Set("preferences", *preferences)
	}
	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateCRM - build query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCRM - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCRM - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrClientNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanClient(row rowScanner) (*domain.Client, error) {
	var client domain.Client
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&client.ID,
		&client.Email,
		&client.Name,
		&client.Phone,
		&client.Preferences,
		&client.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	client.CreatedAt = createdAt.Time
	client.UpdatedAt = updatedAt.Time

	return &client, nil
}
