package update_store_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/policy"
)

const (
	msgInvalidStoreID       = "некорректный ID магазина"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgServiceNotFound      = "услуга не найдена"
	msgServiceStoreMismatch = "услуга не принадлежит магазину"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/stores/{storeId}/booking-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	storeID, err := strconv.ParseInt(vars["storeId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /stores/{id}/booking-policy - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	var req UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /stores/{id}/booking-policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(storeID))
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrServiceNotFound):
			h.logger.Warn("PUT /stores/{id}/booking-policy - Service not found: store_id=%d, service_id=%v",
				storeID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, policy.ErrServiceStoreMismatch):
			h.logger.Warn("PUT /stores/{id}/booking-policy - Service store mismatch: store_id=%d, service_id=%v",
				storeID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceStoreMismatch)

		case errors.Is(err, policy.ErrInvalidInput):
			h.logger.Warn("PUT /stores/{id}/booking-policy - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /stores/{id}/booking-policy - Failed to save policy: store_id=%d, error=%v",
				storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /stores/{id}/booking-policy - Policy saved: store_id=%d, policy_id=%d",
		storeID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
