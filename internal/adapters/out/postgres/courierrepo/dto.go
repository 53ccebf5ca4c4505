// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
package courierrepo

import (
	"mekina/internal/core/domain/model/courier"
	"mekina/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for registered couriers.
// The location columns stay NULL until the courier reports a position.
type CourierDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"type:varchar(255);not null;index"`
	Vehicle string    `gorm:"type:varchar(16);not null"`
	Lat     *float64
	Lng     *float64
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:      aggregate.ID().Bytes(),
		Name:    aggregate.Name(),
		Vehicle: aggregate.Vehicle().String(),
	}

	if loc, ok := aggregate.Location(); ok {
		lat, lng := loc.Lat(), loc.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}

	return dto
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	vehicle, err := kernel.ParseDeliveryOption(dto.Vehicle)
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Lat != nil && dto.Lng != nil {
		loc, locErr := kernel.NewLocation(*dto.Lat, *dto.Lng)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return courier.RestoreCourier(id, dto.Name, vehicle, location)
}
