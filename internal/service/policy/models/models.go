package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модели

// UpsertPolicyRequest запрос на создание или обновление политики
type UpsertPolicyRequest struct {
	StoreID           int64  `json:"storeId"`
	ServiceID         *int64 `json:"serviceId,omitempty"` // null = политика всего магазина
	MinAdvanceMinutes int    `json:"minAdvanceMinutes"`
	MaxAdvanceDays    int    `json:"maxAdvanceDays"`
}

// ToDomainPolicy конвертирует request в domain модель
func (r *UpsertPolicyRequest) ToDomainPolicy() *domain.BookingPolicy {
	return &domain.BookingPolicy{
		StoreID:           r.StoreID,
		ServiceID:         r.ServiceID,
		MinAdvanceMinutes: r.MinAdvanceMinutes,
		MaxAdvanceDays:    r.MaxAdvanceDays,
	}
}

// GetPolicyRequest запрос на получение действующей политики
type GetPolicyRequest struct {
	StoreID   int64  `json:"storeId"`
	ServiceID *int64 `json:"serviceId,omitempty"`
}

// Response модели

// PolicyResponse ответ с данными политики
type PolicyResponse struct {
	ID                int64     `json:"id"`
	StoreID           int64     `json:"storeId"`
	ServiceID         *int64    `json:"serviceId,omitempty"`
	MinAdvanceMinutes int       `json:"minAdvanceMinutes"`
	MaxAdvanceDays    int       `json:"maxAdvanceDays"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.BookingPolicy) *PolicyResponse {
	if p == nil {
		return nil
	}
	return &PolicyResponse{
		ID:                p.ID,
		StoreID:           p.StoreID,
		ServiceID:         p.ServiceID,
		MinAdvanceMinutes: p.MinAdvanceMinutes,
		MaxAdvanceDays:    p.MaxAdvanceDays,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
