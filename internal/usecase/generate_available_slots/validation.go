package generate_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EntityID <= 0 {
		return fmt.Errorf("%w: entityID must be positive", ErrInvalidInput)
	}

	if req.EntityType != domain.EntityTypeService && req.EntityType != domain.EntityTypeOffer {
		return fmt.Errorf("%w: entityType must be %q or %q", ErrInvalidInput,
			domain.EntityTypeService, domain.EntityTypeOffer)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
