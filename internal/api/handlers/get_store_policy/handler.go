package get_store_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/policy"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/policy/models"
)

const (
	msgInvalidStoreID   = "некорректный ID магазина"
	msgInvalidServiceID = "некорректный ID услуги"
	msgNotFound         = "политика бронирования не найдена"
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

// Handle GET /api/v1/stores/{storeId}/booking-policy
// Query params: serviceId (optional; возвращает действующую политику услуги)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	storeID, err := strconv.ParseInt(vars["storeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stores/{id}/booking-policy - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	req := &models.GetPolicyRequest{StoreID: storeID}
	if raw := r.URL.Query().Get("serviceId"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || serviceID <= 0 {
			h.logger.Warn("GET /stores/{id}/booking-policy - Invalid service ID: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		req.ServiceID = &serviceID
	}

	result, err := h.service.Get(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrPolicyNotFound):
			h.logger.Warn("GET /stores/{id}/booking-policy - Policy not found: store_id=%d", storeID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /stores/{id}/booking-policy - Failed to get policy: store_id=%d, error=%v",
				storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stores/{id}/booking-policy - Policy retrieved: store_id=%d, policy_id=%d",
		storeID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
