package constants

// Permission is a single capability tag. The role → permission mapping lives
// in the permissions package; this file only defines the universe of tags.
type Permission string

const (
	PermCreateRequest       Permission = "CREATE_REQUEST"
	PermRespondToRequest    Permission = "RESPOND_TO_REQUEST"
	PermOfferEncouragement  Permission = "OFFER_ENCOURAGEMENT"
	PermCreateEvent         Permission = "CREATE_EVENT"
	PermCreateResource      Permission = "CREATE_RESOURCE"
	PermWeaveTapestry       Permission = "WEAVE_TAPESTRY"
	PermModerateContent     Permission = "MODERATE_CONTENT"
	PermVerifyUsers         Permission = "VERIFY_USERS"
	PermManageRoles         Permission = "MANAGE_ROLES"
	PermViewBasicAnalytics  Permission = "VIEW_BASIC_ANALYTICS"
	PermViewOrgAnalytics    Permission = "VIEW_ORG_ANALYTICS"
	PermViewRegionAnalytics Permission = "VIEW_REGION_ANALYTICS"
	PermViewFullAnalytics   Permission = "VIEW_FULL_ANALYTICS"
	PermManagePlatform      Permission = "MANAGE_PLATFORM"
)

func (p Permission) String() string { return string(p) }

// InteractionAction is a cross-role action checked against the interaction
// rule table (e.g. a Citizen may only message an NGO, not moderate it).
type InteractionAction string

const (
	ActionMessage       InteractionAction = "MESSAGE"
	ActionOfferHelp     InteractionAction = "OFFER_HELP"
	ActionRequestHelp   InteractionAction = "REQUEST_HELP"
	ActionCommend       InteractionAction = "COMMEND"
	ActionModerate      InteractionAction = "MODERATE"
	ActionVerify        InteractionAction = "VERIFY"
	ActionInviteToEvent InteractionAction = "INVITE_TO_EVENT"
)

func (a InteractionAction) String() string { return string(a) }

// AnalyticsLevel is the tiered analytics visibility returned to dashboards.
type AnalyticsLevel string

const (
	AnalyticsNone     AnalyticsLevel = "none"
	AnalyticsBasic    AnalyticsLevel = "basic"
	AnalyticsProgram  AnalyticsLevel = "program"
	AnalyticsRegional AnalyticsLevel = "regional"
	AnalyticsFull     AnalyticsLevel = "full"
)
