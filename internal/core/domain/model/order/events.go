package order

import (
	"time"

	"dentallab/internal/core/domain/model/actor"
	"dentallab/internal/core/domain/model/kernel"
)

// StatusChanged is the domain event raised for every applied transition.
// External consumers (notification, chat) subscribe to it; delivery is
// best-effort and never part of the transactional guarantee, so the event
// carries everything a consumer needs without a read-back.
type StatusChanged struct {
	OrderID     kernel.UUID
	From        *Status
	To          Status
	PerformedBy actor.Actor
	OccurredAt  time.Time
}

// newStatusChanged builds the event from the ledger entry it mirrors.
func newStatusChanged(entry HistoryEntry) StatusChanged {
	return StatusChanged{
		OrderID:     entry.OrderID(),
		From:        entry.FromStatus(),
		To:          entry.ToStatus(),
		PerformedBy: entry.PerformedBy(),
		OccurredAt:  entry.OccurredAt(),
	}
}
