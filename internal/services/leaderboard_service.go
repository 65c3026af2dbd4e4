package services

import (
	"context"
	"fmt"
	"time"

	"mitche/backend/internal/common"
	"mitche/backend/internal/constants"
	"mitche/backend/internal/db/repositories"
	"mitche/backend/internal/metrics"
	"mitche/backend/internal/models/dtos"
)

const leaderboardCacheTTL = 60 * time.Second

// LeaderboardService serves read-optimized snapshot rows, cached briefly to
// keep the dashboard cheap. Snapshots are derived; the ledger stays
// authoritative.
type LeaderboardService struct {
	snapshotRepo *repositories.SnapshotRepository
	cache        common.CacheInterface
	metricsReg   *metrics.MetricsRegistry
}

func NewLeaderboardService(snapshotRepo *repositories.SnapshotRepository, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) *LeaderboardService {
	return &LeaderboardService{
		snapshotRepo: snapshotRepo,
		cache:        cache,
		metricsReg:   metricsReg,
	}
}

// Top returns the highest-ranked snapshot rows.
func (s *LeaderboardService) Top(ctx context.Context, limit int) (*dtos.LeaderboardResponse, error) {
	cacheKey := fmt.Sprintf("%s%d", constants.CachePrefixLeaderboard, limit)

	if cached, found := s.cache.Get(cacheKey); found {
		if resp, ok := cached.(*dtos.LeaderboardResponse); ok {
			if s.metricsReg != nil {
				s.metricsReg.CacheHitsTotal.WithLabelValues("leaderboard").Inc()
			}
			out := *resp
			out.Cached = true
			return &out, nil
		}
	}
	if s.metricsReg != nil {
		s.metricsReg.CacheMissesTotal.WithLabelValues("leaderboard").Inc()
	}

	rows, err := s.snapshotRepo.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}

	resp := &dtos.LeaderboardResponse{
		Entries: make([]dtos.LeaderboardEntry, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Entries = append(resp.Entries, dtos.LeaderboardEntry{
			Rank:         row.Rank,
			UserID:       row.UserID,
			SymbolicName: row.SymbolicName,
			SymbolicIcon: row.SymbolicIcon,
			TotalPoints:  row.TotalPoints,
			Breakdown:    row.Breakdown,
			Badges:       row.Badges,
		})
		resp.ComputedAt = row.ComputedAt
	}

	s.cache.Set(cacheKey, resp, leaderboardCacheTTL)
	return resp, nil
}
