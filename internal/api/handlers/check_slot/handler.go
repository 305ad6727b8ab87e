package check_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	checkSlotAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_slot_availability"
	generateAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/generate_available_slots"
)

const (
	msgInvalidEntityType = "некорректный тип сущности, ожидается services или offers"
	msgInvalidEntityID   = "некорректный ID сущности"
	msgMissingDate       = "дата обязательна"
	msgMissingTime       = "время обязательно"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidExcludeID  = "некорректный ID исключаемого бронирования"
	msgServiceNotFound   = "услуга не найдена"
	msgOfferNotFound     = "оффер не найден"
)

type Handler struct {
	useCase CheckSlotAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/{entityType}/{entityId}/slot-availability
// Query params: date (required), time (required), excludeBookingId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	entityType, err := getAvailableSlotsHandler.ParsePathEntityType(vars["entityType"])
	if err != nil {
		h.logger.Warn("GET /{entityType}/{id}/slot-availability - Invalid entity type: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntityType)
		return
	}

	entityID, err := strconv.ParseInt(vars["entityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /{entityType}/{id}/slot-availability - Invalid entity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntityID)
		return
	}

	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /{entityType}/{id}/slot-availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	timeStr := query.Get("time")
	if timeStr == "" {
		h.logger.Warn("GET /{entityType}/{id}/slot-availability - Missing time")
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}

	var excludeBookingID *int64
	if raw := query.Get("excludeBookingId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /{entityType}/{id}/slot-availability - Invalid excludeBookingId: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		excludeBookingID = &id
	}

	useCaseReq, err := ToUseCaseRequest(entityType, entityID, dateStr, timeStr, excludeBookingID)
	if err != nil {
		h.logger.Warn("GET /{entityType}/{id}/slot-availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /{entityType}/{id}/slot-availability - Service not found: entity_id=%d", entityID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, generateAvailableSlots.ErrOfferNotFound):
			h.logger.Warn("GET /{entityType}/{id}/slot-availability - Offer not found: entity_id=%d", entityID)
			handlers.RespondNotFound(w, msgOfferNotFound)

		case errors.Is(err, checkSlotAvailability.ErrInvalidInput),
			errors.Is(err, generateAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /{entityType}/{id}/slot-availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /{entityType}/{id}/slot-availability - Check failed: entity=%s/%d, error=%v",
				entityType, entityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /{entityType}/{id}/slot-availability - Checked: entity=%s/%d, date=%s, time=%s, available=%t",
		entityType, entityID, dateStr, timeStr, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
