package api

import (
	"os"

	"mitche/backend/internal/common"
	"mitche/backend/internal/db"
	"mitche/backend/internal/db/repositories"
	"mitche/backend/internal/logging"
	"mitche/backend/internal/metrics"
	"mitche/backend/internal/permissions"
	"mitche/backend/internal/services"

	"github.com/redis/go-redis/v9"
)

type Repositories struct {
	User        *repositories.UserRepository
	Ledger      *repositories.LedgerRepository
	Echo        *repositories.EchoRepository
	Snapshot    *repositories.SnapshotRepository
	Achievement *repositories.AchievementRepository
	Keys        *repositories.KeysRepo
}

type Services struct {
	Cache       common.CacheInterface
	Session     *common.SessionService
	LinkSigner  *common.LinkSignerService
	Ledger      *services.LedgerService
	Echo        *services.EchoService
	User        *services.UserService
	Identity    *services.IdentityService
	Leaderboard *services.LeaderboardService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Manager  *permissions.Manager
	Redis    *redis.Client
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		User:        repositories.NewUserRepository(db.PgDB),
		Ledger:      repositories.NewLedgerRepository(db.PgDB),
		Echo:        repositories.NewEchoRepository(db.PgDB),
		Snapshot:    repositories.NewSnapshotRepository(db.PgDB),
		Achievement: repositories.NewAchievementRepository(db.PgDB),
		Keys:        repositories.NewApiKeysRepo(db.DB),
	}

	manager := permissions.NewManager(nil)

	// Redis backs sessions, single-use links, and the hot cache. An
	// unreachable Redis falls back to the in-process cache.
	redisClient := common.NewRedisClient()

	var cache common.CacheInterface
	if redisCache, err := common.NewRedisCacheService(redisClient); err == nil {
		cache = redisCache
	} else {
		logging.Warn("Redis unavailable, using in-memory cache", "error", err)
		cache = common.NewCacheService(60, 600)
	}

	sessionSvc := common.NewSessionService(redisClient)
	linkSigner := common.NewLinkSignerService([]byte(os.Getenv("LINK_SIGNING_SECRET")), redisClient)

	svcs := &Services{
		Cache:       cache,
		Session:     sessionSvc,
		LinkSigner:  linkSigner,
		Ledger:      services.NewLedgerService(repos.Ledger, repos.User, manager, metricsReg),
		Echo:        services.NewEchoService(repos.Echo, repos.User, repos.Ledger, manager, metricsReg),
		User:        services.NewUserService(repos.User, manager, linkSigner),
		Identity:    services.NewIdentityService(repos.User),
		Leaderboard: services.NewLeaderboardService(repos.Snapshot, cache, metricsReg),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Manager:  manager,
		Redis:    redisClient,
		Metrics:  metricsReg,
	}, nil
}
