package historyrepo

import (
	"context"
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM.
// Only inserts and reads; the ledger has no update path.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history ledger repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append inserts one ledger entry. Callers run this in the same transaction
// as the corresponding order update.
func (r *GormHistoryRepository) Append(ctx context.Context, entry order.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByOrderID retrieves the full ledger of one order, oldest first.
// Returns an empty slice for an order with no entries.
func (r *GormHistoryRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryEntryDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetLatest retrieves the most recent ledger entry for an order.
func (r *GormHistoryRepository) GetLatest(ctx context.Context, orderID kernel.UUID) (order.HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return order.HistoryEntry{}, err
	}

	var dto HistoryEntryDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at DESC, id DESC").
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order.HistoryEntry{}, errs.NewObjectNotFoundError("order_history", orderID.String())
		}
		return order.HistoryEntry{}, err
	}

	return toDomain(dto)
}
