package permissions

import (
	"reflect"
	"testing"

	"mitche/backend/internal/constants"
)

func citizen() Subject {
	return Subject{SubjectRole: constants.RoleCitizen, Verification: constants.VerificationNotRequested}
}

func ngo(verified bool) Subject {
	status := constants.VerificationPending
	if verified {
		status = constants.VerificationApproved
	}
	return Subject{SubjectRole: constants.RoleNGO, IsVerified: verified, Verification: status}
}

func publicWorker(verified bool) Subject {
	status := constants.VerificationPending
	if verified {
		status = constants.VerificationApproved
	}
	return Subject{SubjectRole: constants.RolePublicWorker, IsVerified: verified, Verification: status}
}

func admin() Subject {
	return Subject{SubjectRole: constants.RoleAdmin, IsVerified: true, Verification: constants.VerificationApproved}
}

func TestRoleHierarchy_StrictlyIncreasing(t *testing.T) {
	m := NewManager(nil)

	order := []constants.Role{
		constants.RoleCitizen,
		constants.RoleNGO,
		constants.RolePublicWorker,
		constants.RoleAdmin,
	}

	prev := 0
	for _, role := range order {
		level := m.RoleHierarchy(role)
		if level <= prev {
			t.Errorf("hierarchy not strictly increasing at %s: got %d after %d", role, level, prev)
		}
		prev = level
	}

	if got := m.RoleHierarchy(constants.Role("Alien")); got != 0 {
		t.Errorf("unknown role hierarchy = %d, want 0", got)
	}
}

func TestHasPermission(t *testing.T) {
	m := NewManager(nil)

	tests := []struct {
		name    string
		subject AuthSubject
		perm    constants.Permission
		want    bool
	}{
		{"citizen can create request", citizen(), constants.PermCreateRequest, true},
		{"citizen cannot moderate", citizen(), constants.PermModerateContent, false},
		{"ngo can weave tapestry", ngo(false), constants.PermWeaveTapestry, true},
		{"ngo cannot manage roles", ngo(true), constants.PermManageRoles, false},
		{"public worker can moderate", publicWorker(true), constants.PermModerateContent, true},
		{"admin has everything in table", admin(), constants.PermManagePlatform, true},
		{"admin has permissions outside every table", admin(), constants.Permission("NOT_A_REAL_PERMISSION"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.HasPermission(tt.subject, tt.perm); got != tt.want {
				t.Errorf("HasPermission(%v, %s) = %v, want %v", tt.subject, tt.perm, got, tt.want)
			}
		})
	}

	if m.HasPermission(nil, constants.PermCreateRequest) {
		t.Error("nil subject must never hold a permission")
	}
}

func TestHasPermission_SpecialGrantsUnion(t *testing.T) {
	m := NewManager(nil)

	s := citizen()
	if m.HasPermission(s, constants.PermCreateEvent) {
		t.Fatal("citizen should not create events without a grant")
	}

	s.ExtraGrants = []constants.Permission{constants.PermCreateEvent}
	if !m.HasPermission(s, constants.PermCreateEvent) {
		t.Error("special permission grant was not honored")
	}
	// The grant unions with, not replaces, the role set.
	if !m.HasPermission(s, constants.PermCreateRequest) {
		t.Error("role base permission lost after special grant")
	}
}

func TestCanInteractWith_DefaultDeny(t *testing.T) {
	// Custom table with a single rule: removing it must restore denial.
	rule := InteractionRule{Actions: []constants.InteractionAction{constants.ActionMessage}}
	rules := DefaultRuleSet()
	rules.Interactions = map[RolePair]InteractionRule{
		{constants.RoleCitizen, constants.RoleNGO}: rule,
	}
	m := NewManager(rules)

	if !m.CanInteractWith(citizen(), ngo(true), constants.ActionMessage) {
		t.Fatal("explicit rule should allow the interaction")
	}
	if m.CanInteractWith(ngo(true), citizen(), constants.ActionMessage) {
		t.Error("pair without a rule must be denied")
	}

	rules.Interactions = map[RolePair]InteractionRule{}
	if m.CanInteractWith(citizen(), ngo(true), constants.ActionMessage) {
		t.Error("denial not restored after rule removal")
	}
}

func TestCanInteractWith(t *testing.T) {
	m := NewManager(nil)

	tests := []struct {
		name   string
		from   AuthSubject
		to     AuthSubject
		action constants.InteractionAction
		want   bool
	}{
		{"citizen messages ngo", citizen(), ngo(true), constants.ActionMessage, true},
		{"citizen cannot moderate ngo", citizen(), ngo(true), constants.ActionModerate, false},
		{"unverified ngo cannot offer help to citizen", ngo(false), citizen(), constants.ActionOfferHelp, false},
		{"verified ngo offers help to citizen", ngo(true), citizen(), constants.ActionOfferHelp, true},
		{"verified public worker moderates ngo", publicWorker(true), ngo(false), constants.ActionModerate, true},
		{"unverified public worker blocked", publicWorker(false), citizen(), constants.ActionModerate, false},
		{"admin bypasses table entirely", admin(), citizen(), constants.ActionVerify, true},
		{"no rule towards admin", citizen(), admin(), constants.ActionMessage, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.CanInteractWith(tt.from, tt.to, tt.action); got != tt.want {
				t.Errorf("CanInteractWith = %v, want %v", got, tt.want)
			}
		})
	}

	if m.CanInteractWith(nil, citizen(), constants.ActionMessage) {
		t.Error("nil from-subject must be denied")
	}
	if m.CanInteractWith(citizen(), nil, constants.ActionMessage) {
		t.Error("nil to-subject must be denied")
	}
}

func TestCanModerate(t *testing.T) {
	m := NewManager(nil)

	tests := []struct {
		name      string
		moderator AuthSubject
		target    AuthSubject
		want      bool
	}{
		{"admin moderates admin", admin(), admin(), true},
		{"admin moderates citizen", admin(), citizen(), true},
		{"public worker moderates citizen", publicWorker(true), citizen(), true},
		{"public worker moderates ngo", publicWorker(false), ngo(true), true},
		{"public worker cannot moderate peer", publicWorker(true), publicWorker(true), false},
		{"public worker cannot moderate admin", publicWorker(true), admin(), false},
		{"ngo cannot moderate", ngo(true), citizen(), false},
		{"citizen cannot moderate", citizen(), citizen(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.CanModerate(tt.moderator, tt.target); got != tt.want {
				t.Errorf("CanModerate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectiveHopeMultiplier(t *testing.T) {
	m := NewManager(nil)

	tests := []struct {
		name    string
		subject AuthSubject
		want    float64
	}{
		{"citizen", citizen(), 1.0},
		{"unverified ngo", ngo(false), 1.5},
		{"verified ngo override", ngo(true), 2.0},
		{"public worker", publicWorker(false), 2.0},
		{"admin", admin(), 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.EffectiveHopeMultiplier(tt.subject); got != tt.want {
				t.Errorf("EffectiveHopeMultiplier = %v, want %v", got, tt.want)
			}
		})
	}

	if got := m.EffectiveHopeMultiplier(ngo(true)); got <= m.EffectiveHopeMultiplier(ngo(false)) {
		t.Errorf("verified NGO multiplier %v should exceed unverified %v", got, m.EffectiveHopeMultiplier(ngo(false)))
	}
}

func TestNeedsVerification(t *testing.T) {
	m := NewManager(nil)

	if m.NeedsVerification(citizen()) {
		t.Error("citizens never require verification")
	}
	if !m.NeedsVerification(ngo(false)) {
		t.Error("pending NGO should need verification")
	}
	if m.NeedsVerification(ngo(true)) {
		t.Error("approved NGO should not need verification")
	}
	if !m.NeedsVerification(Subject{SubjectRole: constants.RolePublicWorker, Verification: constants.VerificationRejected}) {
		t.Error("rejected public worker should need verification")
	}
	if m.NeedsVerification(admin()) {
		t.Error("admins never require verification")
	}
}

func TestDashboardFeatures(t *testing.T) {
	m := NewManager(nil)

	base := m.DashboardFeatures(citizen())
	for _, want := range []string{"basic_stats", "personal_activity", "echo_feed"} {
		found := false
		for _, f := range base {
			if f == want {
				found = true
			}
		}
		if !found {
			t.Errorf("citizen dashboard missing %q, got %v", want, base)
		}
	}

	unverified := m.DashboardFeatures(ngo(false))
	verified := m.DashboardFeatures(ngo(true))
	if len(verified) <= len(unverified) {
		t.Errorf("verified NGO features %v should extend unverified %v", verified, unverified)
	}
	for _, f := range unverified {
		if f == "event_management" {
			t.Error("unverified NGO must not see event_management")
		}
	}

	// Output is sorted so the union is order-independent.
	again := m.DashboardFeatures(ngo(true))
	if !reflect.DeepEqual(verified, again) {
		t.Errorf("feature set not deterministic: %v vs %v", verified, again)
	}
}

func TestAnalyticsLevel(t *testing.T) {
	m := NewManager(nil)

	tests := []struct {
		name    string
		subject AuthSubject
		want    constants.AnalyticsLevel
	}{
		{"citizen gets basic", citizen(), constants.AnalyticsBasic},
		{"ngo gets program", ngo(true), constants.AnalyticsProgram},
		{"public worker gets regional", publicWorker(true), constants.AnalyticsRegional},
		{"admin gets full", admin(), constants.AnalyticsFull},
		{"nil subject gets none", nil, constants.AnalyticsNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.AnalyticsLevel(tt.subject); got != tt.want {
				t.Errorf("AnalyticsLevel = %s, want %s", got, tt.want)
			}
		})
	}
}
