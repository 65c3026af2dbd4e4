package repositories

import (
	"context"
	"fmt"

	gormModels "mitche/backend/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Replace upserts a full set of leaderboard rows. Snapshots are derived data;
// overwriting is safe.
func (r *SnapshotRepository) Replace(ctx context.Context, rows []gormModels.LeaderboardSnapshot) error {
	if len(rows) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to write leaderboard snapshot: %w", err)
	}
	return nil
}

// Top returns the highest-ranked rows.
func (r *SnapshotRepository) Top(ctx context.Context, limit int) ([]gormModels.LeaderboardSnapshot, error) {
	var rows []gormModels.LeaderboardSnapshot

	err := r.db.WithContext(ctx).
		Order("rank").
		Limit(limit).
		Find(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	return rows, nil
}
