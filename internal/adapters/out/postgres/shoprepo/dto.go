// Package shoprepo persists shops, the pickup points orders are placed against.
package shoprepo

import (
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/shop"

	"github.com/google/uuid"
)

type ShopDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Lat         *float64
	Lng         *float64
	AddressText string `gorm:"type:text"`
}

func (ShopDTO) TableName() string {
	return "shops"
}

func fromDomain(aggregate *shop.Shop) ShopDTO {
	dto := ShopDTO{
		ID:          aggregate.ID().Bytes(),
		SellerID:    aggregate.SellerID().Bytes(),
		Name:        aggregate.Name(),
		AddressText: aggregate.Address().Text(),
	}

	if loc, ok := aggregate.Location(); ok {
		lat, lng := loc.Lat(), loc.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}

	return dto
}

func toDomain(dto ShopDTO) (*shop.Shop, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromGoogle(dto.SellerID)
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

	address, err := kernel.NewAddress(location, dto.AddressText)
	if err != nil {
		return nil, err
	}

	return shop.RestoreShop(id, sellerID, dto.Name, address)
}
