package permissions

import (
	"mitche/backend/internal/constants"
)

// RolePair keys the interaction rule table.
type RolePair struct {
	From constants.Role
	To   constants.Role
}

// InteractionRule lists the actions one role may take against another.
// Absence of a rule for a (from, to) pair means the interaction is denied.
type InteractionRule struct {
	Actions              []constants.InteractionAction
	RequiresVerification bool
}

func (r InteractionRule) allows(action constants.InteractionAction) bool {
	for _, a := range r.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// RoleFeatures describes what a role contributes to the dashboard feature
// set. Verified features apply only while the subject is verified.
type RoleFeatures struct {
	Always   []string
	Verified []string
}

// RuleSet is the immutable authorization configuration consumed by Manager.
// It is constructed explicitly and injected rather than read from module
// state, so tests can run against alternate tables.
type RuleSet struct {
	RolePermissions map[constants.Role][]constants.Permission
	Hierarchy       map[constants.Role]int
	Interactions    map[RolePair]InteractionRule
	Multipliers     map[constants.Role]float64
	Features        map[constants.Role]RoleFeatures

	// BaseFeatures are granted to every authenticated user.
	BaseFeatures []string
}

// DefaultRuleSet returns the production Mitché authorization tables.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		RolePermissions: map[constants.Role][]constants.Permission{
			constants.RoleCitizen: {
				constants.PermCreateRequest,
				constants.PermRespondToRequest,
				constants.PermOfferEncouragement,
				constants.PermViewBasicAnalytics,
			},
			constants.RoleNGO: {
				constants.PermRespondToRequest,
				constants.PermOfferEncouragement,
				constants.PermCreateEvent,
				constants.PermCreateResource,
				constants.PermWeaveTapestry,
				constants.PermViewBasicAnalytics,
				constants.PermViewOrgAnalytics,
			},
			constants.RolePublicWorker: {
				constants.PermRespondToRequest,
				constants.PermOfferEncouragement,
				constants.PermCreateEvent,
				constants.PermCreateResource,
				constants.PermWeaveTapestry,
				constants.PermModerateContent,
				constants.PermViewBasicAnalytics,
				constants.PermViewOrgAnalytics,
				constants.PermViewRegionAnalytics,
			},
			// Admin is resolved by the explicit override in HasPermission;
			// the row exists so the table reads complete.
			constants.RoleAdmin: {
				constants.PermManagePlatform,
				constants.PermManageRoles,
				constants.PermVerifyUsers,
				constants.PermModerateContent,
				constants.PermViewFullAnalytics,
			},
		},

		Hierarchy: map[constants.Role]int{
			constants.RoleCitizen:      1,
			constants.RoleNGO:          2,
			constants.RolePublicWorker: 3,
			constants.RoleAdmin:        4,
		},

		Interactions: map[RolePair]InteractionRule{
			{constants.RoleCitizen, constants.RoleCitizen}: {
				Actions: []constants.InteractionAction{
					constants.ActionMessage,
					constants.ActionOfferHelp,
					constants.ActionRequestHelp,
					constants.ActionCommend,
				},
			},
			{constants.RoleCitizen, constants.RoleNGO}: {
				Actions: []constants.InteractionAction{constants.ActionMessage},
			},
			{constants.RoleCitizen, constants.RolePublicWorker}: {
				Actions: []constants.InteractionAction{
					constants.ActionMessage,
					constants.ActionRequestHelp,
				},
			},
			{constants.RoleNGO, constants.RoleCitizen}: {
				Actions: []constants.InteractionAction{
					constants.ActionMessage,
					constants.ActionOfferHelp,
					constants.ActionCommend,
					constants.ActionInviteToEvent,
				},
				RequiresVerification: true,
			},
			{constants.RoleNGO, constants.RoleNGO}: {
				Actions: []constants.InteractionAction{
					constants.ActionMessage,
					constants.ActionInviteToEvent,
				},
			},
			{constants.RoleNGO, constants.RolePublicWorker}: {
				Actions: []constants.InteractionAction{constants.ActionMessage},
			},
			{constants.RolePublicWorker, constants.RoleCitizen}: {
				Actions: []constants.InteractionAction{
					constants.ActionMessage,
					constants.ActionOfferHelp,
					constants.ActionCommend,
					constants.ActionModerate,
					constants.ActionInviteToEvent,
				},
				RequiresVerification: true,
			},
			{constants.RolePublicWorker, constants.RoleNGO}: {
				Actions: []constants.InteractionAction{
					constants.ActionMessage,
					constants.ActionModerate,
					constants.ActionInviteToEvent,
				},
				RequiresVerification: true,
			},
			{constants.RolePublicWorker, constants.RolePublicWorker}: {
				Actions: []constants.InteractionAction{constants.ActionMessage},
			},
		},

		Multipliers: map[constants.Role]float64{
			constants.RoleCitizen:      1.0,
			constants.RoleNGO:          1.5,
			constants.RolePublicWorker: 2.0,
			constants.RoleAdmin:        3.0,
		},

		BaseFeatures: []string{"basic_stats", "personal_activity"},

		Features: map[constants.Role]RoleFeatures{
			constants.RoleCitizen: {
				Always: []string{"echo_feed", "hope_points"},
			},
			constants.RoleNGO: {
				Always:   []string{"echo_feed", "hope_points", "org_profile"},
				Verified: []string{"event_management", "resource_publishing", "org_analytics"},
			},
			constants.RolePublicWorker: {
				Always:   []string{"echo_feed", "hope_points", "program_overview"},
				Verified: []string{"moderation_queue", "regional_analytics", "event_management"},
			},
			constants.RoleAdmin: {
				Always: []string{
					"echo_feed", "hope_points", "moderation_queue",
					"user_management", "verification_queue", "full_analytics",
				},
			},
		},
	}
}
