// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status column stores the canonical status name so the table stays
// readable in ad hoc queries; the version column carries the optimistic
// concurrency stamp.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClinicID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Category   string    `gorm:"type:varchar(255);not null"`
	ToothCount int       `gorm:"type:int;not null"`
	Status     string    `gorm:"type:varchar(32);not null;index"`
	Version    int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		ClinicID:   aggregate.ClinicID().Bytes(),
		Category:   aggregate.Category(),
		ToothCount: aggregate.ToothCount(),
		Status:     aggregate.Status().String(),
		Version:    aggregate.Version(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder so corrupt rows
// are rejected instead of entering the domain.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clinicID, err := kernel.UUIDFromBytes(dto.ClinicID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromName(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, clinicID, dto.Category, dto.ToothCount, status, dto.Version)
}
