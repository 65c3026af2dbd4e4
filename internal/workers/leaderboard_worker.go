package workers

import (
	"context"
	"log"
	"sort"
	"time"

	"mitche/backend/internal/db/repositories"
	"mitche/backend/internal/metrics"
	gormModels "mitche/backend/internal/models/gorm"

	"gorm.io/gorm"
)

// LeaderboardWorker periodically rebuilds leaderboard snapshots from the
// denormalized user totals, so reads never rank the users table directly.
// The nightly aggregator remains the authoritative recomputation; this
// worker just keeps the board fresh between runs.
type LeaderboardWorker struct {
	DB      *gorm.DB
	Repo    *repositories.SnapshotRepository
	Metrics *metrics.MetricsRegistry
}

func NewLeaderboardWorker(db *gorm.DB, repo *repositories.SnapshotRepository, reg *metrics.MetricsRegistry) *LeaderboardWorker {
	return &LeaderboardWorker{
		DB:      db,
		Repo:    repo,
		Metrics: reg,
	}
}

// RunScheduled runs the refresh job on a schedule
func (w *LeaderboardWorker) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Leaderboard refresh scheduler stopped")
			return
		case <-ticker.C:
			if err := w.Refresh(ctx); err != nil {
				log.Printf("Leaderboard refresh error: %v", err)
			}
		}
	}
}

// Refresh recomputes every snapshot row from the users table. Cached top
// lists are not invalidated here; they expire on their own short TTL.
func (w *LeaderboardWorker) Refresh(ctx context.Context) error {
	queryStart := time.Now()
	var users []gormModels.User
	err := w.DB.WithContext(ctx).
		Order("hope_points DESC, id").
		Find(&users).Error
	if w.Metrics != nil {
		w.Metrics.DBQueriesTotal.WithLabelValues("select", "users").Inc()
		w.Metrics.DBQueryDuration.WithLabelValues("select", "users").Observe(time.Since(queryStart).Seconds())
	}
	if err != nil {
		log.Printf("Leaderboard refresh query error: %v", err)
		return err
	}

	rows := make([]gormModels.LeaderboardSnapshot, 0, len(users))
	for i := range users {
		u := &users[i]
		breakdown := u.HopePointsBreakdown
		if breakdown == nil {
			breakdown = gormModels.IntMap{}
		}
		rows = append(rows, gormModels.LeaderboardSnapshot{
			UserID:       u.ID,
			SymbolicName: u.SymbolicName,
			SymbolicIcon: u.SymbolicIcon,
			TotalPoints:  u.HopePoints,
			Breakdown:    breakdown,
			Badges:       u.Badges,
			ComputedAt:   time.Now(),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		return rows[i].UserID < rows[j].UserID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	if err := w.Repo.Replace(ctx, rows); err != nil {
		return err
	}

	if w.Metrics != nil {
		w.Metrics.LeaderboardRefreshTotal.Inc()
	}

	log.Printf("Leaderboard refresh completed: %d rows ranked", len(rows))
	return nil
}
