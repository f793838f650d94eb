package order

import (
	"errors"
	"time"

	"dentallab/internal/core/domain/model/actor"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/errs"
)

var (
	// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry was not
	// created through the aggregate or RestoreHistoryEntry.
	ErrHistoryEntryIsNotConstructed = errors.New(
		"HistoryEntry must be created via Order transitions or RestoreHistoryEntry",
	)
)

// HistoryEntry is one immutable record of a lifecycle transition.
// Entries for an order form a strictly time-ordered, append-only ledger:
// the toStatus of entry n equals the order's status right after entry n was
// applied, and equals the fromStatus of entry n+1. The ledger, not the
// cached status on the order row, is the source of truth.
//
// The seed entry written at order creation has no fromStatus (FromStatus
// returns nil) and pending as its toStatus.
//
// HistoryEntry is a value object; it is produced by Order.TransitionTo and
// Order.SeedHistoryEntry and reconstructed from persistence via
// RestoreHistoryEntry. It is never mutated or deleted.
type HistoryEntry struct {
	orderID    kernel.UUID
	fromStatus *Status
	toStatus   Status
	performedBy actor.Actor
	occurredAt time.Time
	reason     string

	isConstructed bool
}

// newHistoryEntry creates a ledger record for a transition.
// Only the Order aggregate calls this, which keeps every entry tied to a
// validated status change.
func newHistoryEntry(
	orderID kernel.UUID,
	fromStatus *Status,
	toStatus Status,
	performedBy actor.Actor,
	occurredAt time.Time,
	reason string,
) HistoryEntry {
	return HistoryEntry{
		orderID:       orderID,
		fromStatus:    fromStatus,
		toStatus:      toStatus,
		performedBy:   performedBy,
		occurredAt:    occurredAt,
		reason:        reason,
		isConstructed: true,
	}
}

// RestoreHistoryEntry reconstructs a ledger record from persisted values.
// fromStatus must be nil for the seed entry and non-nil otherwise; every
// status involved must be valid.
func RestoreHistoryEntry(
	orderID kernel.UUID,
	fromStatus *Status,
	toStatus Status,
	performedBy actor.Actor,
	occurredAt time.Time,
	reason string,
) (HistoryEntry, error) {
	if err := errors.Join(
		orderID.Validate(),
		toStatus.Validate(),
		performedBy.Validate(),
	); err != nil {
		return HistoryEntry{}, err
	}
	if fromStatus != nil {
		if err := fromStatus.Validate(); err != nil {
			return HistoryEntry{}, err
		}
	}
	if occurredAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("occurredAt")
	}

	return newHistoryEntry(orderID, fromStatus, toStatus, performedBy, occurredAt, reason), nil
}

// Validate ensures the entry was produced by the aggregate or restored from
// persistence, never assembled ad hoc.
func (h HistoryEntry) Validate() error {
	if !h.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// OrderID returns the identifier of the order this entry belongs to.
func (h HistoryEntry) OrderID() kernel.UUID {
	return h.orderID
}

// FromStatus returns the status the order left, or nil for the seed entry.
// The returned pointer refers to a copy; mutating it cannot change the entry.
func (h HistoryEntry) FromStatus() *Status {
	if h.fromStatus == nil {
		return nil
	}
	from := *h.fromStatus
	return &from
}

// ToStatus returns the status the order entered.
func (h HistoryEntry) ToStatus() Status {
	return h.toStatus
}

// PerformedBy returns the actor who requested the transition.
func (h HistoryEntry) PerformedBy() actor.Actor {
	return h.performedBy
}

// OccurredAt returns when the transition was applied.
func (h HistoryEntry) OccurredAt() time.Time {
	return h.occurredAt
}

// Reason returns the transition reason. Empty unless one was provided;
// always non-empty for transitions into rejected.
func (h HistoryEntry) Reason() string {
	return h.reason
}
