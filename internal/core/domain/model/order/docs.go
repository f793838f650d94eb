// Package order provides domain entities and business logic for the lab
// order lifecycle. It implements the Order aggregate root together with the
// status state machine and the append-only history ledger that records
// every transition.
//
// The package includes:
//   - Order: The aggregate root owning identity, descriptive attributes,
//     the current status, and the optimistic concurrency version
//   - Status: A state machine with an explicit adjacency table over the
//     canonical states pending, in_progress, trial_ready, completed,
//     delivered, rejected, and cancelled
//   - HistoryEntry: One immutable ledger record per applied transition
//   - StatusChanged: The domain event raised for every applied transition
//
// Key business rules:
//   - Status only changes through Order.TransitionTo, which consults the
//     adjacency table; delivered and cancelled are terminal
//   - Rejection requires a reason; rejected orders resubmit into pending
//   - Every transition produces exactly one history entry, and the ledger
//     is the source of truth for the current status
//   - The version stamp increases by one per transition, enabling
//     optimistic concurrency control in the persistence layer
//
// The package follows Domain-Driven Design principles, providing rich
// domain behavior, encapsulation, and validation to ensure business rules
// are enforced.
package order
