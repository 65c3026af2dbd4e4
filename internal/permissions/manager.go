package permissions

import (
	"sort"

	"mitche/backend/internal/constants"
)

// AuthSubject is the minimal view of a user the authorization logic needs.
// Handlers pass the full user model; tests can pass a Subject literal.
type AuthSubject interface {
	Role() constants.Role
	Verified() bool
	VerificationStatus() constants.VerificationStatus
	SpecialPermissions() []constants.Permission
}

// Subject is a plain-value AuthSubject.
type Subject struct {
	SubjectRole   constants.Role
	IsVerified    bool
	Verification  constants.VerificationStatus
	ExtraGrants   []constants.Permission
}

func (s Subject) Role() constants.Role                            { return s.SubjectRole }
func (s Subject) Verified() bool                                  { return s.IsVerified }
func (s Subject) VerificationStatus() constants.VerificationStatus { return s.Verification }
func (s Subject) SpecialPermissions() []constants.Permission       { return s.ExtraGrants }

// Manager answers authorization questions from a user-shaped subject and the
// injected rule set. Every method is a pure function of its inputs: denial is
// expressed as false or a zero value, never as an error, and a nil subject
// degrades to the least-privileged answer.
type Manager struct {
	rules *RuleSet
}

func NewManager(rules *RuleSet) *Manager {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	return &Manager{rules: rules}
}

// HasPermission reports whether the subject holds the given capability.
// Admins hold the full permission universe regardless of the table; special
// per-user grants union with the role's base set.
func (m *Manager) HasPermission(subject AuthSubject, perm constants.Permission) bool {
	if subject == nil {
		return false
	}
	if subject.Role() == constants.RoleAdmin {
		return true
	}
	for _, p := range m.rules.RolePermissions[subject.Role()] {
		if p == perm {
			return true
		}
	}
	for _, p := range subject.SpecialPermissions() {
		if p == perm {
			return true
		}
	}
	return false
}

// CanInteractWith checks the cross-role interaction table. No matching rule
// means deny.
func (m *Manager) CanInteractWith(from, to AuthSubject, action constants.InteractionAction) bool {
	if from == nil || to == nil {
		return false
	}
	if from.Role() == constants.RoleAdmin {
		return true
	}
	rule, ok := m.rules.Interactions[RolePair{From: from.Role(), To: to.Role()}]
	if !ok {
		return false
	}
	if !rule.allows(action) {
		return false
	}
	if rule.RequiresVerification && !from.Verified() {
		return false
	}
	return true
}

// CanModerate reports whether moderator may take moderation action against
// target. Same-role or upward moderation is always denied outside Admin.
func (m *Manager) CanModerate(moderator, target AuthSubject) bool {
	if moderator == nil || target == nil {
		return false
	}
	switch moderator.Role() {
	case constants.RoleAdmin:
		return true
	case constants.RolePublicWorker:
		return target.Role() == constants.RoleCitizen || target.Role() == constants.RoleNGO
	default:
		return false
	}
}

// RoleHierarchy returns the fixed hierarchy level of a role, 0 for unknown.
func (m *Manager) RoleHierarchy(role constants.Role) int {
	return m.rules.Hierarchy[role]
}

// EffectiveHopeMultiplier returns the point multiplier applied when the
// subject grants hope points. A verified NGO is bumped to 2.0 outright, not
// additively.
func (m *Manager) EffectiveHopeMultiplier(subject AuthSubject) float64 {
	if subject == nil {
		return 0
	}
	if subject.Role() == constants.RoleNGO && subject.Verified() {
		return 2.0
	}
	return m.rules.Multipliers[subject.Role()]
}

// NeedsVerification reports whether the subject's role requires a completed
// verification it does not yet have. Citizens and Admins never do.
func (m *Manager) NeedsVerification(subject AuthSubject) bool {
	if subject == nil {
		return false
	}
	role := subject.Role()
	if role != constants.RoleNGO && role != constants.RolePublicWorker {
		return false
	}
	return subject.VerificationStatus() != constants.VerificationApproved
}

// DashboardFeatures returns the deduplicated, sorted feature set for the
// subject's dashboard: the base set plus the role's list, plus verified-only
// extras when applicable.
func (m *Manager) DashboardFeatures(subject AuthSubject) []string {
	if subject == nil {
		return nil
	}

	set := make(map[string]struct{})
	for _, f := range m.rules.BaseFeatures {
		set[f] = struct{}{}
	}

	rf := m.rules.Features[subject.Role()]
	for _, f := range rf.Always {
		set[f] = struct{}{}
	}
	if subject.Verified() {
		for _, f := range rf.Verified {
			set[f] = struct{}{}
		}
	}

	features := make([]string, 0, len(set))
	for f := range set {
		features = append(features, f)
	}
	sort.Strings(features)
	return features
}

// AnalyticsLevel resolves the subject's analytics tier, most powerful first.
func (m *Manager) AnalyticsLevel(subject AuthSubject) constants.AnalyticsLevel {
	switch {
	case m.HasPermission(subject, constants.PermViewFullAnalytics):
		return constants.AnalyticsFull
	case m.HasPermission(subject, constants.PermViewRegionAnalytics):
		return constants.AnalyticsRegional
	case m.HasPermission(subject, constants.PermViewOrgAnalytics):
		return constants.AnalyticsProgram
	case m.HasPermission(subject, constants.PermViewBasicAnalytics):
		return constants.AnalyticsBasic
	default:
		return constants.AnalyticsNone
	}
}
