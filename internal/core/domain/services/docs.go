// Package services provides domain services for the lab order lifecycle
// that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - StatusReconciler: A domain service that repairs an order's cached
//     status from its history ledger when the two disagree
//
// Domain services coordinate between the aggregate and its ledger,
// implementing business logic that spans both following Domain-Driven
// Design principles.
package services
