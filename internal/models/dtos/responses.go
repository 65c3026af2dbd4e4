package dtos

import (
	"time"

	"mitche/backend/internal/constants"
	"mitche/backend/internal/permissions"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// ---- ECHOES ----

type EchoResponse struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Offerings   int       `json:"offerings"`
	CreatedAt   time.Time `json:"created_at"`
}

type OfferingResponse struct {
	ID        string    `json:"id"`
	EchoID    string    `json:"echo_id"`
	HelperID  string    `json:"helper_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ---- HOPE POINTS ----

type GrantResponse struct {
	LedgerEntryID string  `json:"ledger_entry_id"`
	ReceiverID    string  `json:"receiver_id"`
	Category      string  `json:"category"`
	BaseAmount    int64   `json:"base_amount"`
	Multiplier    float64 `json:"multiplier"`
	Granted       int64   `json:"granted"`
}

// ---- DASHBOARD ----

type DashboardResponse struct {
	UserID            string                    `json:"user_id"`
	SymbolicName      string                    `json:"symbolic_name"`
	Role              string                    `json:"role"`
	Features          []string                  `json:"features"`
	AnalyticsLevel    constants.AnalyticsLevel  `json:"analytics_level"`
	TrustScore        permissions.TrustScore    `json:"trust_score"`
	HopeMultiplier    float64                   `json:"hope_multiplier"`
	NeedsVerification bool                      `json:"needs_verification"`
	HopePoints        int64                     `json:"hope_points"`
	Breakdown         map[string]int64          `json:"hope_points_breakdown"`
	Pillars           map[string]int64          `json:"pillars"`
	Badges            []string                  `json:"badges"`
}

// ---- LEADERBOARD ----

type LeaderboardEntry struct {
	Rank         int              `json:"rank"`
	UserID       string           `json:"user_id"`
	SymbolicName string           `json:"symbolic_name"`
	SymbolicIcon string           `json:"symbolic_icon,omitempty"`
	TotalPoints  int64            `json:"total_points"`
	Breakdown    map[string]int64 `json:"breakdown,omitempty"`
	Badges       []string         `json:"badges,omitempty"`
}

type LeaderboardResponse struct {
	Entries    []LeaderboardEntry `json:"entries"`
	ComputedAt time.Time          `json:"computed_at"`
	Cached     bool               `json:"cached"`
}

// ---- PROFILE ----

type UserProfileResponse struct {
	UserID        string           `json:"user_id"`
	SymbolicName  string           `json:"symbolic_name"`
	SymbolicIcon  string           `json:"symbolic_icon,omitempty"`
	Role          string           `json:"role"`
	IsVerified    bool             `json:"is_verified"`
	HopePoints    int64            `json:"hope_points"`
	Badges        []string         `json:"badges,omitempty"`
	Pillars       map[string]int64 `json:"pillars,omitempty"`
	EchoCount     int64            `json:"echo_count"`
	TapestryCount int64            `json:"tapestry_count"`
}

// ---- ADMIN ----

// ReconciliationRow reports one receiver whose denormalized total has
// drifted from the ledger sum.
type ReconciliationRow struct {
	ReceiverID  string `json:"receiver_id"`
	LedgerTotal int64  `json:"ledger_total"`
	Recorded    int64  `json:"recorded"`
	Drift       int64  `json:"drift"`
}

// ---- IDENTITY ----

// IdentityValidationResult mirrors the inline-form contract: invalid names
// are a value, not an error.
type IdentityValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
