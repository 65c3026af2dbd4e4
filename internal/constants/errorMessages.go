package constants

const (
	StatusError           = "Error"
	StatusUserNotFound    = "User not found"
	StatusEchoNotFound    = "Echo not found"
	StatusInsertFailed    = "Unable to insert"
	StatusForbidden       = "You do not have permission to do that"
	StatusNotVerified     = "This action requires a verified account"
	StatusEchoCreated     = "Echo has been posted"
	StatusOfferingCreated = "Offering has been recorded"
	StatusPointsGranted   = "Hope points granted"
)

const (
	MsgSelfGrant          = "Hope points cannot be granted to yourself"
	MsgEchoClosed         = "This echo is no longer accepting offerings"
	MsgVerificationOpen   = "A verification request is already pending"
	MsgCitizenNoVerify    = "Citizens do not require verification"
	MsgInvalidCategory    = "Unknown hope point category"
	MsgInvalidAmount      = "Hope point amounts must be positive"
)
