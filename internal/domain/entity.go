package domain

import "fmt"

// EntityType тип сущности, для которой запрашивается доступность
// Оффер - это скидочный вариант бронирования услуги; ёмкость у них общая
type EntityType string

const (
	EntityTypeService EntityType = "service"
	EntityTypeOffer   EntityType = "offer"
)

// ParseEntityType разбирает тип сущности из строки запроса
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(s) {
	case EntityTypeService:
		return EntityTypeService, nil
	case EntityTypeOffer:
		return EntityTypeOffer, nil
	default:
		return "", fmt.Errorf("unknown entity type %q, expected %q or %q", s, EntityTypeService, EntityTypeOffer)
	}
}
