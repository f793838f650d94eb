package order

import (
	"errors"
	"strings"
	"time"

	"dentallab/internal/core/domain/model/actor"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/errs"
)

// toothCount bounds for a single order: at least one tooth, at most a full
// arch pair.
const (
	minToothCount = 1
	maxToothCount = 32
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrReasonIsRequired is returned when a transition into rejected is
	// requested without a reason.
	ErrReasonIsRequired = errs.NewValueIsRequiredError("reason is required when rejecting an order")
)

// Order represents one prosthetic work item submitted by a clinic. It is
// the aggregate root owning the order lifecycle: every status change goes
// through TransitionTo, which validates the move against the adjacency
// table, stamps a new version, and produces the ledger entry and domain
// event for it. No other code path may write status.
//
// Order follows these invariants:
//   - Must have valid order and clinic identifiers
//   - toothCount must be within [1, 32]
//   - status only changes along the adjacency table
//   - version increases by exactly one per applied transition
//   - Can only be created through NewOrder or RestoreOrder
//
// category and toothCount are descriptive; they never affect transitions.
// Orders are never deleted: they end in delivered or cancelled, or loop
// through rejected back into the active flow.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// clinicID identifies the submitting clinic
	clinicID kernel.UUID

	// category describes the prosthetic work (crown, bridge, denture, ...)
	category string

	// toothCount is the number of teeth the work covers
	toothCount int

	// status is the current state in the order lifecycle
	status Status

	// version is the optimistic concurrency stamp, starting at 1
	version int

	// events collects StatusChanged events until the caller drains them
	events []StatusChanged

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in pending status with version 1.
// This is the only way to create a valid new Order; all business invariants
// are checked here.
//
// Parameters:
//   - id: unique identifier for the order (must be a valid UUID)
//   - clinicID: the submitting clinic (must be a valid UUID)
//   - category: free-text work description (must be non-empty)
//   - toothCount: number of teeth covered (must be within [1, 32])
//
// The caller is expected to persist the seed ledger entry returned by
// SeedHistoryEntry together with the order itself.
func NewOrder(id kernel.UUID, clinicID kernel.UUID, category string, toothCount int) (*Order, error) {
	order := &Order{
		status:        Pending,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setClinicID(clinicID),
		order.setCategory(category),
		order.setToothCount(toothCount),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persisted values.
// Used by repositories when reading an order back; all invariants are
// re-checked so corrupt rows cannot enter the domain.
func RestoreOrder(
	id kernel.UUID,
	clinicID kernel.UUID,
	category string,
	toothCount int,
	status Status,
	version int,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setClinicID(clinicID),
		order.setCategory(category),
		order.setToothCount(toothCount),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("version")
	}

	order.status = status
	order.version = version
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClinicID returns the identifier of the submitting clinic.
func (o *Order) ClinicID() kernel.UUID {
	return o.clinicID
}

// Category returns the prosthetic work description.
func (o *Order) Category() string {
	return o.category
}

// ToothCount returns the number of teeth the work covers.
func (o *Order) ToothCount() int {
	return o.toothCount
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the optimistic concurrency stamp.
// Repositories condition their writes on it: a write with a stale version
// affects zero rows and surfaces as a ConcurrentModificationError.
func (o *Order) Version() int {
	return o.version
}

// SeedHistoryEntry produces the ledger record for the order's creation:
// no fromStatus, pending as toStatus. It must be persisted atomically with
// the order itself so the ledger is never empty for an existing order.
func (o *Order) SeedHistoryEntry(createdBy actor.Actor, at time.Time) HistoryEntry {
	return newHistoryEntry(o.id, nil, o.status, createdBy, at, "")
}

// TransitionTo applies a validated lifecycle transition.
//
// This method enforces the following business rules:
//   - target must be a valid status and reachable from the current status
//     per the adjacency table
//   - performedBy must be a valid actor
//   - a non-blank reason is mandatory when target is rejected
//
// On success the order's status becomes target, its version is bumped by
// one, a StatusChanged event is recorded on the aggregate, and the created
// ledger entry is returned for the caller to append atomically with the
// order update.
//
// Returns:
//   - the HistoryEntry for the applied transition
//   - errs.InvalidTransitionError if the adjacency table forbids the move,
//     carrying the current state and the attempted target
//   - ErrReasonIsRequired when rejecting without a reason
func (o *Order) TransitionTo(
	target Status,
	performedBy actor.Actor,
	reason string,
	at time.Time,
) (HistoryEntry, error) {
	if err := performedBy.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	if target == Rejected && strings.TrimSpace(reason) == "" {
		return HistoryEntry{}, ErrReasonIsRequired
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return HistoryEntry{}, err
	}

	from := o.status
	o.status = newStatus
	o.version++

	entry := newHistoryEntry(o.id, &from, newStatus, performedBy, at, strings.TrimSpace(reason))
	o.events = append(o.events, newStatusChanged(entry))
	return entry, nil
}

// DomainEvents returns the StatusChanged events recorded since the last
// drain, oldest first.
func (o *Order) DomainEvents() []StatusChanged {
	return o.events
}

// ClearDomainEvents drops recorded events. Callers drain events after a
// successful commit and clear them so republishing cannot happen on reuse.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setClinicID validates and sets the submitting clinic's identifier.
// This is a private method used only during construction.
func (o *Order) setClinicID(clinicID kernel.UUID) error {
	if err := clinicID.Validate(); err != nil {
		return err
	}
	o.clinicID = clinicID
	return nil
}

// setCategory validates and sets the work description.
// This is a private method used only during construction.
func (o *Order) setCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return errs.NewValueIsRequiredError("category")
	}
	o.category = category
	return nil
}

// setToothCount validates and sets the tooth count.
// This is a private method used only during construction.
func (o *Order) setToothCount(toothCount int) error {
	if toothCount < minToothCount || toothCount > maxToothCount {
		return errs.NewValueIsOutOfRangeError("toothCount", toothCount, minToothCount, maxToothCount)
	}
	o.toothCount = toothCount
	return nil
}
