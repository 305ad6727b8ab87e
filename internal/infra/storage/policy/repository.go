package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с политиками горизонта бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStoreAndService получает политику для точного сочетания магазина и услуги
// serviceID = nil означает политику уровня магазина
func (r *Repository) GetByStoreAndService(ctx context.Context, storeID int64, serviceID *int64) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"store_id",
		"service_id",
		"min_advance_minutes",
		"max_advance_days",
		"created_at",
		"updated_at",
	).
		From("booking_policies").
		Where(squirrel.Eq{"store_id": storeID})

	if serviceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStoreAndService - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.BookingPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ID,
		&policy.StoreID,
		&policy.ServiceID,
		&policy.MinAdvanceMinutes,
		&policy.MaxAdvanceDays,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStoreAndService - scan policy: %v", ErrScanRow, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// GetPolicyWithHierarchy получает политику с учетом иерархии приоритетов:
// 1. Политика для конкретной услуги магазина (storeID, serviceID)
// 2. Политика уровня магазина (storeID, NULL)
// Если политика не найдена ни на одном уровне, возвращает ErrPolicyNotFound -
// вызывающий код подставляет дефолты сервиса
func (r *Repository) GetPolicyWithHierarchy(ctx context.Context, storeID int64, serviceID *int64) (*domain.BookingPolicy, error) {
	if serviceID != nil {
		policy, err := r.GetByStoreAndService(ctx, storeID, serviceID)
		if err == nil {
			return policy, nil
		}
		if err != ErrPolicyNotFound {
			return nil, fmt.Errorf("%w: GetPolicyWithHierarchy - service level: %v", ErrExecQuery, err)
		}
	}

	policy, err := r.GetByStoreAndService(ctx, storeID, nil)
	if err == nil {
		return policy, nil
	}
	if err != ErrPolicyNotFound {
		return nil, fmt.Errorf("%w: GetPolicyWithHierarchy - store level: %v", ErrExecQuery, err)
	}

	return nil, ErrPolicyNotFound
}

// Upsert создает или обновляет политику для сочетания магазина и услуги
func (r *Repository) Upsert(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_policies").
		Columns(
			"store_id",
			"service_id",
			"min_advance_minutes",
			"max_advance_days",
		).
		Values(
			policy.StoreID,
			policy.ServiceID,
			policy.MinAdvanceMinutes,
			policy.MaxAdvanceDays,
		).
		Suffix(`ON CONFLICT (store_id, COALESCE(service_id, 0)) DO UPDATE SET
			min_advance_minutes = EXCLUDED.min_advance_minutes,
			max_advance_days = EXCLUDED.max_advance_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return policy, nil
}

// Delete удаляет политику по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_policies").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPolicyNotFound
	}

	return nil
}
