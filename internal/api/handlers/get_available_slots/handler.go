package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	generateAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/generate_available_slots"
)

const (
	msgInvalidEntityType = "некорректный тип сущности, ожидается services или offers"
	msgInvalidEntityID   = "некорректный ID сущности"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound   = "услуга не найдена"
	msgOfferNotFound     = "оффер не найден"
)

type Handler struct {
	useCase GenerateAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/{entityType}/{entityId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	entityType, err := ParsePathEntityType(vars["entityType"])
	if err != nil {
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Invalid entity type: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntityType)
		return
	}

	entityID, err := strconv.ParseInt(vars["entityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Invalid entity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntityID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(entityType, entityID, dateStr)
	if err != nil {
		h.logger.Warn("GET /{entityType}/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /{entityType}/{id}/available-slots - Service not found: entity_id=%d", entityID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, generateAvailableSlots.ErrOfferNotFound):
			h.logger.Warn("GET /{entityType}/{id}/available-slots - Offer not found: entity_id=%d", entityID)
			handlers.RespondNotFound(w, msgOfferNotFound)

		case errors.Is(err, generateAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /{entityType}/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /{entityType}/{id}/available-slots - Failed to get slots: entity=%s/%d, error=%v",
				entityType, entityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /{entityType}/{id}/available-slots - Slots retrieved: entity=%s/%d, date=%s, available=%d/%d",
		entityType, entityID, dateStr, len(response.AvailableSlots), len(response.AllSlots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
