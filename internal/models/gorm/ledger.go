package gorm

import (
	"time"
)

// HopeLedgerEntry is an append-only record of a point grant. Rows are never
// updated or deleted; per-user totals are running sums over this table and
// the aggregator reconciles any drift.
type HopeLedgerEntry struct {
	ID         string    `gorm:"column:id;primaryKey;type:uuid"`
	ActorID    string    `gorm:"column:actor_id;type:uuid;index"`
	ReceiverID string    `gorm:"column:receiver_id;type:uuid;index"`
	Category   string    `gorm:"column:category"`
	Amount     int64     `gorm:"column:amount"`
	Reason     string    `gorm:"column:reason"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index"`
}

// TableName specifies the table name for GORM
func (HopeLedgerEntry) TableName() string {
	return "hope_ledger"
}
