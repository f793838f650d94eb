package order

import (
	"fmt"

	"dentallab/internal/pkg/errs"
)

// Status represents the lifecycle state of a lab order.
// It implements a state machine with an explicit adjacency table so orders
// follow the lab's processing workflow.
//
// State transitions:
//
//	pending ──> in_progress ──> trial_ready ──> completed ──> delivered
//	   │             │               │              │
//	   │             │               └──> rejected <┘   (reason required)
//	   ├──> rejected ┘                       │
//	   │                                     └──> pending   (resubmission)
//	   └──> cancelled <── in_progress
//
// delivered and cancelled are terminal; no transition leaves them.
// Status is a value object with one canonical snake_case name per state.
// Display labels are a UI concern and never appear here.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a clinic submits an order.
	// Rejected orders re-enter this status on resubmission.
	Pending

	// InProgress indicates lab technicians are producing the work.
	InProgress

	// TrialReady indicates the trial work is ready for clinic review.
	TrialReady

	// Completed indicates the final work passed review and is finished.
	Completed

	// Delivered indicates the finished work reached the clinic.
	// This is a terminal state.
	Delivered

	// Rejected indicates the work was sent back with a reason.
	// Reachable from any non-terminal state; may resubmit into Pending.
	Rejected

	// Cancelled indicates the clinic withdrew the order before the lab
	// produced anything. Only Pending and InProgress orders can be
	// cancelled. This is a terminal state.
	Cancelled
)

// getStatusNames returns a map of Status values to their canonical names.
// All statuses are included for string conversion.
func getStatusNames() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		InProgress: "in_progress",
		TrialReady: "trial_ready",
		Completed:  "completed",
		Delivered:  "delivered",
		Rejected:   "rejected",
		Cancelled:  "cancelled",
	}
}

// getValidStatusNames returns a map of only valid Status values.
// Unknown is intentionally excluded to support validation.
func getValidStatusNames() map[Status]string {
	return map[Status]string{
		Pending:    "pending",
		InProgress: "in_progress",
		TrialReady: "trial_ready",
		Completed:  "completed",
		Delivered:  "delivered",
		Rejected:   "rejected",
		Cancelled:  "cancelled",
	}
}

// getAdjacencyTable returns the complete set of allowed transitions.
// This table is the single authority on which status changes are legal;
// no other layer may invent transitions.
//
// Decisions recorded here:
//   - rejected resubmits into pending, so the full intake flow re-runs
//   - cancellation is only possible before any work is produced
//     (pending, in_progress), never from trial_ready or completed
func getAdjacencyTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {InProgress, Rejected, Cancelled},
		InProgress: {TrialReady, Rejected, Cancelled},
		TrialReady: {Completed, Rejected},
		Completed:  {Delivered, Rejected},
		Rejected:   {Pending},
		Delivered:  {},
		Cancelled:  {},
	}
}

// StatusFromName parses a canonical status name back into a Status.
// Returns an error for names outside the canonical set, including display
// labels such as "Trial Ready".
func StatusFromName(name string) (Status, error) {
	for status, statusName := range getValidStatusNames() {
		if statusName == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status name", name),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: pending, in_progress, trial_ready, completed,
// delivered, rejected, cancelled. Unknown (0) and any other values are
// invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the canonical name of the status.
//
// Returns "unknown" for invalid status values. This method implements the
// fmt.Stringer interface and is safe to call on any Status value. The
// canonical name is also the persistence and wire representation.
func (s Status) String() string {
	if name, ok := getStatusNames()[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no transition may leave this status.
// delivered and cancelled are the terminal states.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// AllowedTargets returns the statuses reachable from s, per the adjacency
// table. Returns an empty slice for terminal or invalid statuses.
func (s Status) AllowedTargets() []Status {
	return getAdjacencyTable()[s]
}

// CanTransitionTo reports whether the adjacency table allows moving from s
// to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getAdjacencyTable()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the transition from s to target against the
// adjacency table.
//
// Returns:
//   - (target, nil) on a valid transition
//   - (0, error) if target is not a valid status
//   - (0, error) if the adjacency table does not allow the move; the error
//     carries both canonical state names so callers can explain the
//     rejection
//
// This method is used by Order.TransitionTo to enforce state transitions.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(target) {
		return 0, errs.NewInvalidTransitionError(s.String(), target.String())
	}

	return target, nil
}
