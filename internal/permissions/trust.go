package permissions

import (
	"mitche/backend/internal/constants"
)

// DefaultBaseScore is the trust score every account starts from.
const DefaultBaseScore = 50

// MaxTrustScore is the hard ceiling on the combined score.
const MaxTrustScore = 1000

// TrustScore is the breakdown of a user's computed trust standing.
type TrustScore struct {
	Base              int     `json:"base"`
	RoleBonus         int     `json:"roleBonus"`
	VerificationBonus int     `json:"verificationBonus"`
	RatingBonus       float64 `json:"ratingBonus"`
	Total             int     `json:"total"`
}

// CalculateTrustScore combines role standing, verification level (0–4, values
// outside are clamped) and community rating into a bounded score. The result
// is capped at MaxTrustScore and floored at 0 so a hostile rating cannot push
// the score negative. Deterministic, no side effects.
func (m *Manager) CalculateTrustScore(role constants.Role, verificationLevel int, communityRating float64) TrustScore {
	return m.CalculateTrustScoreWithBase(role, verificationLevel, communityRating, DefaultBaseScore)
}

// CalculateTrustScoreWithBase is CalculateTrustScore with an explicit base
// score, used by admin tooling that re-anchors imported accounts.
func (m *Manager) CalculateTrustScoreWithBase(role constants.Role, verificationLevel int, communityRating float64, baseScore int) TrustScore {
	if verificationLevel < 0 {
		verificationLevel = 0
	}
	if verificationLevel > 4 {
		verificationLevel = 4
	}

	roleBonus := m.RoleHierarchy(role) * 25
	verificationBonus := verificationLevel * 50
	ratingBonus := communityRating * 20

	total := float64(baseScore) + float64(roleBonus) + float64(verificationBonus) + ratingBonus
	if total > MaxTrustScore {
		total = MaxTrustScore
	}
	if total < 0 {
		total = 0
	}

	return TrustScore{
		Base:              baseScore,
		RoleBonus:         roleBonus,
		VerificationBonus: verificationBonus,
		RatingBonus:       ratingBonus,
		Total:             int(total),
	}
}

// VerificationLevelFor maps a verification status to the 0–4 level used by
// trust scoring.
func VerificationLevelFor(status constants.VerificationStatus) int {
	switch status {
	case constants.VerificationApproved:
		return 3
	case constants.VerificationPending:
		return 1
	default:
		return 0
	}
}
