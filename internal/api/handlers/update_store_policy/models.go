package update_store_policy

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/service/policy/models"
)

// UpdatePolicyRequest HTTP request model
type UpdatePolicyRequest struct {
	ServiceID         *int64 `json:"serviceId,omitempty"` // null = политика всего магазина
	MinAdvanceMinutes int    `json:"minAdvanceMinutes"`
	MaxAdvanceDays    int    `json:"maxAdvanceDays"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdatePolicyRequest) ToServiceRequest(storeID int64) *models.UpsertPolicyRequest {
	return &models.UpsertPolicyRequest{
		StoreID:           storeID,
		ServiceID:         r.ServiceID,
		MinAdvanceMinutes: r.MinAdvanceMinutes,
		MaxAdvanceDays:    r.MaxAdvanceDays,
	}
}
