package gorm

import (
	"time"
)

// Achievement criteria types evaluated by the ledger aggregator.
const (
	CriteriaHopePoints    = "hopePoints"
	CriteriaCommendations = "commendations"
	CriteriaTapestry      = "tapestry"
	CriteriaEchoes        = "echoes"
	CriteriaCombo         = "combo"
)

type Achievement struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Description  string    `gorm:"column:description"`
	Icon         string    `gorm:"column:icon"`
	CriteriaType string    `gorm:"column:criteria_type"`
	Threshold    int64     `gorm:"column:threshold"`
	// ComboThresholds applies when CriteriaType is combo: every named
	// aggregate must reach its own threshold.
	ComboThresholds IntMap    `gorm:"column:combo_thresholds;type:jsonb"`
	Rarity          string    `gorm:"column:rarity"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement is an award record. The primary key is the deterministic
// composite `${userId}_${achievementId}` so repeated aggregator runs cannot
// double-award.
type UserAchievement struct {
	ID            string    `gorm:"column:id;primaryKey"`
	UserID        string    `gorm:"column:user_id;type:uuid;index"`
	AchievementID string    `gorm:"column:achievement_id;index"`
	AwardedAt     time.Time `gorm:"column:awarded_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (UserAchievement) TableName() string {
	return "user_achievements"
}

// LeaderboardSnapshot is a denormalized, read-optimized row recomputed from
// the ledger. Never authoritative.
type LeaderboardSnapshot struct {
	UserID       string     `gorm:"column:user_id;primaryKey;type:uuid"`
	SymbolicName string     `gorm:"column:symbolic_name"`
	SymbolicIcon string     `gorm:"column:symbolic_icon"`
	Rank         int        `gorm:"column:rank"`
	TotalPoints  int64      `gorm:"column:total_points"`
	Breakdown    IntMap     `gorm:"column:breakdown;type:jsonb"`
	Badges       StringList `gorm:"column:badges;type:jsonb"`
	ComputedAt   time.Time  `gorm:"column:computed_at"`
}

// TableName specifies the table name for GORM
func (LeaderboardSnapshot) TableName() string {
	return "leaderboard_snapshots"
}
