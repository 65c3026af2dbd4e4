package aggregator

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"time"

	"gorm.io/gorm"

	"mitche/backend/internal/common"
	"mitche/backend/internal/constants"
	"mitche/backend/internal/db/repositories"
	"mitche/backend/internal/metrics"
	gormModels "mitche/backend/internal/models/gorm"
)

const (
	// DefaultPageSize is the ledger/user scan page size.
	DefaultPageSize = 500

	// MaxWriteBatch matches the underlying store's batched-write ceiling.
	MaxWriteBatch = 400

	exampleDiffLimit = 10
)

// Options controls a reconciliation run.
type Options struct {
	Apply    bool
	PageSize int
	Metrics  *metrics.MetricsRegistry
}

// Aggregator reconciles the append-only hope ledger against the denormalized
// per-user aggregates, leaderboard snapshots, and achievement awards. Runs
// are idempotent: with no new ledger entries, a second apply run produces
// zero additional writes.
type Aggregator struct {
	db           *gorm.DB
	ledger       *repositories.LedgerRepository
	achievements *repositories.AchievementRepository
	opts         Options
}

func New(db *gorm.DB, opts Options) *Aggregator {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	return &Aggregator{
		db:           db,
		ledger:       repositories.NewLedgerRepository(db),
		achievements: repositories.NewAchievementRepository(db),
		opts:         opts,
	}
}

// ledgerAccumulator holds the totals computed from one full ledger scan.
type ledgerAccumulator struct {
	totals        map[string]int64            // receiver → total points
	breakdown     map[string]map[string]int64 // receiver → category → amount
	commendations map[string]map[string]int64 // receiver → category → entry count
	echoCounts    map[string]int64            // receiver → allowlisted entry count
	tapestry      map[string]int64            // actor → woven thread entries
	entries       int
}

func newLedgerAccumulator() *ledgerAccumulator {
	return &ledgerAccumulator{
		totals:        make(map[string]int64),
		breakdown:     make(map[string]map[string]int64),
		commendations: make(map[string]map[string]int64),
		echoCounts:    make(map[string]int64),
		tapestry:      make(map[string]int64),
	}
}

// userDelta is one user's pending update, containing only changed fields.
type userDelta struct {
	userID  string
	updates map[string]interface{}
}

// Run executes the full reconciliation pass. Any error is fatal for the run;
// batches already committed stay committed.
func (a *Aggregator) Run(ctx context.Context) error {
	start := time.Now()
	if a.opts.Metrics != nil {
		defer func() {
			a.opts.Metrics.AggregatorRunDuration.Observe(time.Since(start).Seconds())
		}()
	}
	mode := "DRY RUN"
	if a.opts.Apply {
		mode = "APPLY"
	}
	log.Printf("[Aggregator] Starting ledger reconciliation (%s, page size %d)", mode, a.opts.PageSize)

	acc, err := a.scanLedger(ctx)
	if err != nil {
		return fmt.Errorf("ledger scan failed: %w", err)
	}
	log.Printf("[Aggregator] Scanned %d ledger entries covering %d receivers", acc.entries, len(acc.totals))

	deltas, snapshots, err := a.computeDeltas(ctx, acc)
	if err != nil {
		return fmt.Errorf("delta computation failed: %w", err)
	}

	log.Printf("[Aggregator] %d of the scanned users need updates", len(deltas))
	for i, d := range deltas {
		if i >= exampleDiffLimit {
			break
		}
		log.Printf("[Aggregator] example diff %d: user=%s fields=%v", i+1, d.userID, fieldNames(d.updates))
	}

	if !a.opts.Apply {
		log.Printf("[Aggregator] Dry run complete in %s; re-run with --apply to write %d user updates and %d snapshot rows",
			time.Since(start).Round(time.Millisecond), len(deltas), len(snapshots))
		return a.evaluateAchievements(ctx, acc, false)
	}

	if err := a.applyDeltas(ctx, deltas); err != nil {
		return fmt.Errorf("delta write failed: %w", err)
	}
	if err := a.writeSnapshots(ctx, snapshots); err != nil {
		return fmt.Errorf("snapshot write failed: %w", err)
	}
	if err := a.seedAchievements(ctx); err != nil {
		return fmt.Errorf("achievement seed failed: %w", err)
	}
	if err := a.evaluateAchievements(ctx, acc, true); err != nil {
		return fmt.Errorf("achievement evaluation failed: %w", err)
	}

	log.Printf("[Aggregator] Reconciliation complete in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

// scanLedger pages through the ledger ordered by timestamp, sequentially,
// one page at a time.
func (a *Aggregator) scanLedger(ctx context.Context) (*ledgerAccumulator, error) {
	acc := newLedgerAccumulator()

	echoCategories := make(map[string]struct{}, len(constants.EchoCategoryAllowlist))
	for _, c := range constants.EchoCategoryAllowlist {
		echoCategories[c] = struct{}{}
	}
	commendationCategories := make(map[string]struct{}, len(constants.CommendationCategories))
	for _, c := range constants.CommendationCategories {
		commendationCategories[c] = struct{}{}
	}

	log.Printf("[Aggregator] commendation categories: %v", common.GetKeysStructMap(commendationCategories))

	for offset := 0; ; offset += a.opts.PageSize {
		page, err := a.ledger.Page(ctx, offset, a.opts.PageSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for _, entry := range page {
			acc.entries++

			// Zero-amount marker entries (tapestry weaves) must not surface
			// as breakdown categories the grant path never wrote.
			if entry.Amount != 0 {
				acc.totals[entry.ReceiverID] += entry.Amount
				if acc.breakdown[entry.ReceiverID] == nil {
					acc.breakdown[entry.ReceiverID] = make(map[string]int64)
				}
				acc.breakdown[entry.ReceiverID][entry.Category] += entry.Amount
			}

			if _, ok := commendationCategories[entry.Category]; ok {
				if acc.commendations[entry.ReceiverID] == nil {
					acc.commendations[entry.ReceiverID] = make(map[string]int64)
				}
				acc.commendations[entry.ReceiverID][entry.Category]++
			}

			if _, ok := echoCategories[entry.Category]; ok {
				acc.echoCounts[entry.ReceiverID]++
			}

			if entry.Category == string(constants.CategoryTapestryWeaver) {
				acc.tapestry[entry.ActorID]++
			}
		}

		if len(page) < a.opts.PageSize {
			break
		}
	}

	return acc, nil
}

// computeDeltas pages through users and builds per-user update maps holding
// only the fields that actually changed, plus the recomputed leaderboard
// snapshot rows.
func (a *Aggregator) computeDeltas(ctx context.Context, acc *ledgerAccumulator) ([]userDelta, []gormModels.LeaderboardSnapshot, error) {
	var deltas []userDelta
	var ranked []gormModels.LeaderboardSnapshot

	for offset := 0; ; offset += a.opts.PageSize {
		var users []gormModels.User
		err := a.db.WithContext(ctx).
			Order("id").
			Offset(offset).
			Limit(a.opts.PageSize).
			Find(&users).Error
		if err != nil {
			return nil, nil, err
		}
		if len(users) == 0 {
			break
		}

		for i := range users {
			user := &users[i]

			total := acc.totals[user.ID]
			breakdown := gormModels.IntMap(acc.breakdown[user.ID])
			if breakdown == nil {
				breakdown = gormModels.IntMap{}
			}
			commendations := gormModels.IntMap(acc.commendations[user.ID])
			if commendations == nil {
				commendations = gormModels.IntMap{}
			}
			echoCount := acc.echoCounts[user.ID]
			tapestryCount := acc.tapestry[user.ID]
			pillars := computePillars(total, commendations, tapestryCount, echoCount, breakdown)

			// echo_count and tapestry_count stay owned by the request path:
			// they count authored echoes and woven threads, which the ledger
			// only mirrors, so reconciliation never rewrites them.
			updates := map[string]interface{}{}
			if user.HopePoints != total {
				updates["hope_points"] = total
			}
			if !sameIntMap(user.HopePointsBreakdown, breakdown) {
				updates["hope_points_breakdown"] = breakdown
			}
			if !sameIntMap(user.Commendations, commendations) {
				updates["commendations"] = commendations
			}
			if !sameIntMap(user.Pillars, pillars) {
				updates["pillars"] = pillars
			}

			if len(updates) > 0 {
				deltas = append(deltas, userDelta{userID: user.ID, updates: updates})
			}

			ranked = append(ranked, gormModels.LeaderboardSnapshot{
				UserID:       user.ID,
				SymbolicName: user.SymbolicName,
				SymbolicIcon: user.SymbolicIcon,
				TotalPoints:  total,
				Breakdown:    breakdown,
				Badges:       user.Badges,
				ComputedAt:   time.Now(),
			})
		}

		if len(users) < a.opts.PageSize {
			break
		}
	}

	rankSnapshots(ranked)
	return deltas, ranked, nil
}

// applyDeltas commits updates in batches of at most MaxWriteBatch operations.
// Each batch is one transaction; a mid-run failure leaves earlier batches
// committed.
func (a *Aggregator) applyDeltas(ctx context.Context, deltas []userDelta) error {
	for start := 0; start < len(deltas); start += MaxWriteBatch {
		end := start + MaxWriteBatch
		if end > len(deltas) {
			end = len(deltas)
		}

		batch := deltas[start:end]
		err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, d := range batch {
				if err := tx.Model(&gormModels.User{}).
					Where("id = ?", d.userID).
					Updates(d.updates).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Printf("[Aggregator] committed user update batch %d-%d", start, end)
	}
	return nil
}

func (a *Aggregator) writeSnapshots(ctx context.Context, snapshots []gormModels.LeaderboardSnapshot) error {
	for start := 0; start < len(snapshots); start += MaxWriteBatch {
		end := start + MaxWriteBatch
		if end > len(snapshots) {
			end = len(snapshots)
		}
		batch := snapshots[start:end]
		if err := replaceSnapshots(ctx, a.db, batch); err != nil {
			return err
		}
	}
	return nil
}

func fieldNames(updates map[string]interface{}) []string {
	names := make([]string, 0, len(updates))
	for k := range updates {
		names = append(names, k)
	}
	return names
}

func sameIntMap(a, b gormModels.IntMap) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(map[string]int64(a), map[string]int64(b))
}
