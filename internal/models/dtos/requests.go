package dtos

type CreateEchoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
}

type CreateOfferingRequest struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type GrantHopePointsRequest struct {
	ReceiverID string `json:"receiver_id"`
	Category   string `json:"category"`
	Amount     int64  `json:"amount"`
	Reason     string `json:"reason"`
}

type WeaveTapestryRequest struct {
	HonoreeID string `json:"honoree_id"`
	Title     string `json:"title"`
	Story     string `json:"story"`
	Color     string `json:"color"`
}

type ValidateIdentityRequest struct {
	SymbolicName string `json:"symbolic_name"`
}

type VerificationRequest struct {
	OrganizationName string `json:"organization_name"`
	DocumentURL      string `json:"document_url"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

type SetVerificationRequest struct {
	Status string `json:"status"`
}

type ReviewVerificationRequest struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}
