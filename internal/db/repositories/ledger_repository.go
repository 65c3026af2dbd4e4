package repositories

import (
	"context"
	"fmt"

	gormModels "mitche/backend/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append writes a new ledger entry. There is deliberately no update or delete
// method on this repository.
func (r *LedgerRepository) Append(ctx context.Context, entry *gormModels.HopeLedgerEntry) error {
	if entry.Amount < 0 {
		return fmt.Errorf("ledger amounts must be non-negative, got %d", entry.Amount)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// Page returns one batch of entries ordered by timestamp then id, for the
// aggregator's sequential scan.
func (r *LedgerRepository) Page(ctx context.Context, offset, limit int) ([]gormModels.HopeLedgerEntry, error) {
	var entries []gormModels.HopeLedgerEntry

	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error

	if err != nil {
		return nil, fmt.Errorf("failed to page ledger: %w", err)
	}
	return entries, nil
}

// TotalForReceiver sums amounts for a single receiver, used by
// reconciliation checks.
func (r *LedgerRepository) TotalForReceiver(ctx context.Context, receiverID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.HopeLedgerEntry{}).
		Where("receiver_id = ?", receiverID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum ledger for receiver: %w", err)
	}
	return total, nil
}
