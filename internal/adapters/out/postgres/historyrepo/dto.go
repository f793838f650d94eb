// Package historyrepo provides data transfer objects and mapping functions for
// the order history ledger. The ledger is append-only: rows are inserted when
// transitions happen and never updated or deleted afterwards.
package historyrepo

import (
	"time"

	"dentallab/internal/core/domain/model/actor"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// HistoryEntryDTO represents the database structure for one ledger row.
// from_status is NULL only for the seed row written at order registration.
// Statuses are stored by canonical name so the ledger reads as an audit
// trail without joins.
type HistoryEntryDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus      *string   `gorm:"type:varchar(32)"`
	ToStatus        string    `gorm:"type:varchar(32);not null"`
	PerformedBy     string    `gorm:"type:varchar(255);not null"`
	PerformedByRole string    `gorm:"type:varchar(32);not null"`
	OccurredAt      time.Time `gorm:"not null;index"`
	Reason          string    `gorm:"type:text"`
}

// TableName specifies the database table name for ledger entries.
// Overrides GORM's default naming convention to use "order_history".
func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts a ledger entry to its database representation.
// The row ID is minted here; the domain entry is identified by its content,
// the surrogate key only fixes ordering among same-timestamp rows.
func fromDomain(entry order.HistoryEntry) HistoryEntryDTO {
	var fromStatus *string
	if from := entry.FromStatus(); from != nil {
		name := from.String()
		fromStatus = &name
	}

	return HistoryEntryDTO{
		ID:              uuid.New(),
		OrderID:         entry.OrderID().Bytes(),
		FromStatus:      fromStatus,
		ToStatus:        entry.ToStatus().String(),
		PerformedBy:     entry.PerformedBy().ID(),
		PerformedByRole: entry.PerformedBy().Role().String(),
		OccurredAt:      entry.OccurredAt(),
		Reason:          entry.Reason(),
	}
}

// toDomain converts a database row to a ledger entry.
// Reconstructs the entry via RestoreHistoryEntry so corrupt rows are
// rejected instead of entering the domain.
func toDomain(dto HistoryEntryDTO) (order.HistoryEntry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}

	var fromStatus *order.Status
	if dto.FromStatus != nil {
		from, fromErr := order.StatusFromName(*dto.FromStatus)
		if fromErr != nil {
			return order.HistoryEntry{}, fromErr
		}
		fromStatus = &from
	}

	toStatus, err := order.StatusFromName(dto.ToStatus)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	role, err := actor.RoleFromName(dto.PerformedByRole)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	performedBy, err := actor.RestoreActor(dto.PerformedBy, role)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	return order.RestoreHistoryEntry(orderID, fromStatus, toStatus, performedBy, dto.OccurredAt, dto.Reason)
}
