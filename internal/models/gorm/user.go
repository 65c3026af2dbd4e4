package gorm

import (
	"time"

	"mitche/backend/internal/constants"
)

type User struct {
	// Ids and enum defaults are assigned in the repository layer so the
	// emitted DDL stays portable across Postgres and the sqlite test store.
	ID                 string                       `gorm:"column:id;primaryKey;type:uuid"`
	SymbolicName       string                       `gorm:"column:symbolic_name;uniqueIndex"`
	SymbolicIcon       string                       `gorm:"column:symbolic_icon"`
	UserRole           constants.Role               `gorm:"column:role"`
	Verification       constants.VerificationStatus `gorm:"column:verification_status"`
	IsVerified         bool                         `gorm:"column:is_verified;default:false"`
	OrgName            string                       `gorm:"column:org_name"`
	VerificationDocURL string                       `gorm:"column:verification_doc_url"`
	SpecialPerms       StringList                   `gorm:"column:special_permissions;type:jsonb"`

	HopePoints          int64      `gorm:"column:hope_points;default:0"`
	HopePointsBreakdown IntMap     `gorm:"column:hope_points_breakdown;type:jsonb"`
	Commendations       IntMap     `gorm:"column:commendations;type:jsonb"`
	Badges              StringList `gorm:"column:badges;type:jsonb"`
	TapestryCount       int64      `gorm:"column:tapestry_count;default:0"`
	EchoCount           int64      `gorm:"column:echo_count;default:0"`
	Pillars             IntMap     `gorm:"column:pillars;type:jsonb"`

	CommunityRating float64   `gorm:"column:community_rating;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

/* ---------- permissions.AuthSubject ---------- */

func (u *User) Role() constants.Role { return u.UserRole }

func (u *User) Verified() bool { return u.IsVerified }

func (u *User) VerificationStatus() constants.VerificationStatus { return u.Verification }

func (u *User) SpecialPermissions() []constants.Permission {
	perms := make([]constants.Permission, 0, len(u.SpecialPerms))
	for _, p := range u.SpecialPerms {
		perms = append(perms, constants.Permission(p))
	}
	return perms
}
