package constants

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
)

const (
	RequestSourceAPI       RequestSource = "API"
	RequestSourceWebClient RequestSource = "WEB_CLIENT"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixLeaderboard  CachePrefix = "LEADERBOARD_"
	CachePrefixDashboard    CachePrefix = "DASHBOARD_"
	CachePrefixUserProfile  CachePrefix = "USER_PROFILE_"
	CachePrefixEchoListing  CachePrefix = "ECHO_LISTING_"
)

// EchoStatus is the lifecycle state of a help request.
type EchoStatus string

const (
	EchoOpen       EchoStatus = "Open"
	EchoInProgress EchoStatus = "InProgress"
	EchoFulfilled  EchoStatus = "Fulfilled"
	EchoClosed     EchoStatus = "Closed"
)

// OfferingKind distinguishes concrete help from encouragement.
type OfferingKind string

const (
	OfferingHelp          OfferingKind = "Help"
	OfferingEncouragement OfferingKind = "Encouragement"
)
