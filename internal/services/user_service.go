package services

import (
	"context"
	"fmt"
	"time"

	"mitche/backend/internal/common"
	"mitche/backend/internal/constants"
	"mitche/backend/internal/db/repositories"
	"mitche/backend/internal/models/dtos"
	gormModels "mitche/backend/internal/models/gorm"
	"mitche/backend/internal/permissions"
)

// UserError is a business rejection, mapped to a 4xx by handlers.
type UserError struct {
	Message string
	Code    int
}

func (e *UserError) Error() string { return e.Message }

type UserService struct {
	userRepo   *repositories.UserRepository
	manager    *permissions.Manager
	linkSigner *common.LinkSignerService
}

func NewUserService(
	userRepo *repositories.UserRepository,
	manager *permissions.Manager,
	linkSigner *common.LinkSignerService,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		manager:    manager,
		linkSigner: linkSigner,
	}
}

// RequestVerification moves an NGO or PublicWorker to Pending, records the
// supporting details, and returns a signed review link for the admin queue.
func (s *UserService) RequestVerification(ctx context.Context, user *gormModels.User, orgName, docURL string) (string, error) {
	if user.UserRole != constants.RoleNGO && user.UserRole != constants.RolePublicWorker {
		return "", &UserError{Message: constants.MsgCitizenNoVerify, Code: 400}
	}
	if user.Verification == constants.VerificationPending {
		return "", &UserError{Message: constants.MsgVerificationOpen, Code: 409}
	}
	if user.Verification == constants.VerificationApproved {
		return "", &UserError{Message: "account is already verified", Code: 409}
	}

	if err := s.userRepo.SubmitVerificationRequest(ctx, user.ID, orgName, docURL); err != nil {
		return "", fmt.Errorf("request verification: %w", err)
	}

	link, err := s.linkSigner.GenerateLink(user.ID, verificationReviewPurpose, 72*time.Hour)
	if err != nil {
		return "", fmt.Errorf("request verification: %w", err)
	}
	return link, nil
}

const verificationReviewPurpose = "verification_review"

// ReviewVerification resolves a request through its single-use review link.
// The token is burned on first use, so a link can decide at most one review.
func (s *UserService) ReviewVerification(ctx context.Context, admin *gormModels.User, token string, status constants.VerificationStatus) (string, error) {
	if !s.manager.HasPermission(admin, constants.PermVerifyUsers) {
		return "", &UserError{Message: constants.StatusForbidden, Code: 403}
	}
	if status != constants.VerificationApproved && status != constants.VerificationRejected {
		return "", &UserError{Message: "a review must approve or reject", Code: 400}
	}

	link, err := s.linkSigner.ValidateLink(ctx, token)
	if err != nil {
		return "", &UserError{Message: "invalid or expired review link", Code: 400}
	}
	if link.Purpose != verificationReviewPurpose {
		return "", &UserError{Message: "invalid or expired review link", Code: 400}
	}

	if err := s.userRepo.SetVerification(ctx, link.UserID, status); err != nil {
		return "", fmt.Errorf("review verification: %w", err)
	}
	return link.UserID, nil
}

// SetRole changes a user's role. Callers must already have passed the admin
// gate; the check here is defense in depth for non-HTTP callers.
func (s *UserService) SetRole(ctx context.Context, admin *gormModels.User, targetID string, role constants.Role) error {
	if !s.manager.HasPermission(admin, constants.PermManageRoles) {
		return &UserError{Message: constants.StatusForbidden, Code: 403}
	}
	switch role {
	case constants.RoleCitizen, constants.RoleNGO, constants.RolePublicWorker, constants.RoleAdmin:
	default:
		return &UserError{Message: "unknown role: " + role.String(), Code: 400}
	}
	return s.userRepo.SetRole(ctx, targetID, role)
}

// SetVerification resolves a pending verification request.
func (s *UserService) SetVerification(ctx context.Context, admin *gormModels.User, targetID string, status constants.VerificationStatus) error {
	if !s.manager.HasPermission(admin, constants.PermVerifyUsers) {
		return &UserError{Message: constants.StatusForbidden, Code: 403}
	}
	switch status {
	case constants.VerificationApproved, constants.VerificationRejected, constants.VerificationPending, constants.VerificationNotRequested:
	default:
		return &UserError{Message: "unknown verification status", Code: 400}
	}
	return s.userRepo.SetVerification(ctx, targetID, status)
}

// DashboardFor assembles the per-user dashboard payload: feature set,
// analytics tier, trust score, multiplier, and point aggregates.
func (s *UserService) DashboardFor(user *gormModels.User) dtos.DashboardResponse {
	trust := s.manager.CalculateTrustScore(
		user.UserRole,
		permissions.VerificationLevelFor(user.Verification),
		user.CommunityRating,
	)

	breakdown := map[string]int64(user.HopePointsBreakdown)
	if breakdown == nil {
		breakdown = map[string]int64{}
	}
	pillars := map[string]int64(user.Pillars)
	if pillars == nil {
		pillars = map[string]int64{}
	}

	return dtos.DashboardResponse{
		UserID:            user.ID,
		SymbolicName:      user.SymbolicName,
		Role:              user.UserRole.String(),
		Features:          s.manager.DashboardFeatures(user),
		AnalyticsLevel:    s.manager.AnalyticsLevel(user),
		TrustScore:        trust,
		HopeMultiplier:    s.manager.EffectiveHopeMultiplier(user),
		NeedsVerification: s.manager.NeedsVerification(user),
		HopePoints:        user.HopePoints,
		Breakdown:         breakdown,
		Pillars:           pillars,
		Badges:            user.Badges,
	}
}
