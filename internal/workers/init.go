package workers

import (
	"context"
	"time"

	"mitche/backend/internal/db/repositories"
	"mitche/backend/internal/metrics"

	"gorm.io/gorm"
)

type WorkersContainer struct {
	Leaderboard *LeaderboardWorker
}

func InitWorkers(
	ctx context.Context,
	db *gorm.DB,
	reg *metrics.MetricsRegistry,
	snapshotRepo *repositories.SnapshotRepository,
) *WorkersContainer {
	lw := NewLeaderboardWorker(db, snapshotRepo, reg)

	// Start the leaderboard worker to keep ranks fresh between ledger runs
	go lw.RunScheduled(ctx, 5*time.Minute)

	return &WorkersContainer{
		Leaderboard: lw,
	}
}
