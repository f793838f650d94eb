package services

import (
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/errs"
)

// StatusReconciler is a domain service that detects and repairs disagreement
// between an order's cached status and its history ledger.
//
// The cached status column on the order row is a read optimization; the
// ledger is the source of truth. The two can only diverge through outside
// interference (manual fixes, partial restores), but when they do, every
// reader relying on the cache sees a wrong state. Reconciliation rewrites
// the cache from the latest ledger entry — the ledger always wins.
//
// Example usage:
//
//	reconciler := services.NewStatusReconciler()
//	restored, err := reconciler.Reconcile(o, latestEntry)
//	if err != nil {
//	    // ledger entry does not belong to this order
//	    return err
//	}
//	if restored != nil {
//	    // cached status was stale; persist the restored aggregate
//	}
type StatusReconciler struct{}

// NewStatusReconciler creates a new StatusReconciler instance.
func NewStatusReconciler() StatusReconciler {
	return StatusReconciler{}
}

// Reconcile compares the order's cached status with the latest ledger entry.
//
// Returns:
//   - (nil, nil) when cache and ledger agree; nothing to do
//   - (restored order, nil) when they disagree; the restored aggregate
//     carries the ledger's toStatus and must be persisted by the caller
//   - (nil, error) when the entry fails validation or belongs to a
//     different order
//
// The order's version is kept as-is: reconciliation repairs the cache, it
// is not a lifecycle transition and must not appear in the ledger.
func (r StatusReconciler) Reconcile(o *order.Order, latest order.HistoryEntry) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := latest.Validate(); err != nil {
		return nil, err
	}

	if !latest.OrderID().IsEqual(o.ID()) {
		return nil, errs.NewValueIsInvalidError("history entry belongs to a different order")
	}

	if o.Status() == latest.ToStatus() {
		return nil, nil
	}

	return order.RestoreOrder(
		o.ID(),
		o.ClinicID(),
		o.Category(),
		o.ToothCount(),
		latest.ToStatus(),
		o.Version(),
	)
}
