package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"mitche/backend/internal/common"
	"mitche/backend/internal/constants"
	"mitche/backend/internal/db/repositories"
	gormModels "mitche/backend/internal/models/gorm"
	"mitche/backend/internal/permissions"
)

func newUserService(db *gorm.DB) *UserService {
	signer := common.NewLinkSignerService([]byte("test-secret"), nil)
	return NewUserService(
		repositories.NewUserRepository(db),
		permissions.NewManager(nil),
		signer,
	)
}

func TestUserRepository_CreateDefaults(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewUserRepository(db)

	// Ids and enum defaults come from the repository, not column DDL, so
	// the same models migrate cleanly on Postgres and sqlite.
	user := &gormModels.User{SymbolicName: "new-leaf"}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected a generated id")
	}

	var reloaded gormModels.User
	if err := db.Where("symbolic_name = ?", "new-leaf").First(&reloaded).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if reloaded.UserRole != constants.RoleCitizen {
		t.Errorf("role = %s, want Citizen", reloaded.UserRole)
	}
	if reloaded.Verification != constants.VerificationNotRequested {
		t.Errorf("verification = %s, want NotRequested", reloaded.Verification)
	}
}

func TestUserService_RequestVerification(t *testing.T) {
	db := setupTestDB(t)
	citizen := createUser(t, db, "citizen", "quiet-river", constants.RoleCitizen, false)
	ngo := createUser(t, db, "ngo", "hope-org", constants.RoleNGO, false)

	svc := newUserService(db)
	ctx := context.Background()

	// Citizens have nothing to verify
	_, err := svc.RequestVerification(ctx, citizen, "", "")
	var userErr *UserError
	if !errors.As(err, &userErr) || userErr.Code != 400 {
		t.Fatalf("expected a 400 UserError for citizen, got %v", err)
	}

	// NGO request succeeds and returns a signed review link
	link, err := svc.RequestVerification(ctx, ngo, "Hope Org", "https://docs.example/registration.pdf")
	if err != nil {
		t.Fatalf("RequestVerification failed: %v", err)
	}
	if link == "" {
		t.Error("expected a signed review link")
	}

	var reloaded gormModels.User
	if err := db.Where("id = ?", "ngo").First(&reloaded).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if reloaded.Verification != constants.VerificationPending {
		t.Errorf("verification status = %s, want Pending", reloaded.Verification)
	}
	if reloaded.OrgName != "Hope Org" {
		t.Errorf("org name = %q, want Hope Org", reloaded.OrgName)
	}
	if reloaded.VerificationDocURL != "https://docs.example/registration.pdf" {
		t.Errorf("doc url = %q not persisted", reloaded.VerificationDocURL)
	}

	// A second request while pending conflicts
	reloaded2 := reloaded
	_, err = svc.RequestVerification(ctx, &reloaded2, "Hope Org", "")
	if !errors.As(err, &userErr) || userErr.Code != 409 {
		t.Fatalf("expected a 409 UserError while pending, got %v", err)
	}
}

func TestUserService_ReviewVerification_Rejections(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "admin", "the-admin", constants.RoleAdmin, true)
	citizen := createUser(t, db, "citizen", "quiet-river", constants.RoleCitizen, false)

	svc := newUserService(db)
	ctx := context.Background()

	// Only verifiers may resolve reviews
	_, err := svc.ReviewVerification(ctx, citizen, "token", constants.VerificationApproved)
	var userErr *UserError
	if !errors.As(err, &userErr) || userErr.Code != 403 {
		t.Fatalf("expected a 403 UserError, got %v", err)
	}

	// A review must land on Approved or Rejected
	_, err = svc.ReviewVerification(ctx, admin, "token", constants.VerificationPending)
	if !errors.As(err, &userErr) || userErr.Code != 400 {
		t.Fatalf("expected a 400 UserError for a non-decision, got %v", err)
	}
}

func TestUserService_SetRole(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "admin", "the-admin", constants.RoleAdmin, true)
	citizen := createUser(t, db, "citizen", "quiet-river", constants.RoleCitizen, false)
	createUser(t, db, "target", "tall-oak", constants.RoleCitizen, false)

	svc := newUserService(db)
	ctx := context.Background()

	// Non-admins cannot change roles
	err := svc.SetRole(ctx, citizen, "target", constants.RoleNGO)
	var userErr *UserError
	if !errors.As(err, &userErr) || userErr.Code != 403 {
		t.Fatalf("expected a 403 UserError, got %v", err)
	}

	// Unknown role names are rejected
	err = svc.SetRole(ctx, admin, "target", constants.Role("Overlord"))
	if !errors.As(err, &userErr) || userErr.Code != 400 {
		t.Fatalf("expected a 400 UserError for unknown role, got %v", err)
	}

	if err := svc.SetRole(ctx, admin, "target", constants.RoleNGO); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}

	var reloaded gormModels.User
	if err := db.Where("id = ?", "target").First(&reloaded).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if reloaded.UserRole != constants.RoleNGO {
		t.Errorf("role = %s, want NGO", reloaded.UserRole)
	}
}

func TestUserService_SetVerification(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "admin", "the-admin", constants.RoleAdmin, true)
	target := createUser(t, db, "target", "hope-org", constants.RoleNGO, false)
	target.Verification = constants.VerificationPending
	db.Save(target)

	svc := newUserService(db)
	ctx := context.Background()

	if err := svc.SetVerification(ctx, admin, "target", constants.VerificationApproved); err != nil {
		t.Fatalf("SetVerification failed: %v", err)
	}

	var reloaded gormModels.User
	if err := db.Where("id = ?", "target").First(&reloaded).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if reloaded.Verification != constants.VerificationApproved {
		t.Errorf("verification status = %s, want Approved", reloaded.Verification)
	}
	if !reloaded.IsVerified {
		t.Error("is_verified not set on approval")
	}
}

func TestUserService_DashboardFor(t *testing.T) {
	db := setupTestDB(t)
	ngo := createUser(t, db, "ngo", "hope-org", constants.RoleNGO, true)
	ngo.HopePoints = 120
	ngo.HopePointsBreakdown = gormModels.IntMap{"CommunityGift": 120}
	ngo.CommunityRating = 4.0

	svc := newUserService(db)
	resp := svc.DashboardFor(ngo)

	if resp.Role != "NGO" {
		t.Errorf("role = %s, want NGO", resp.Role)
	}
	if resp.HopeMultiplier != 2.0 {
		t.Errorf("verified NGO multiplier = %v, want 2.0", resp.HopeMultiplier)
	}
	if resp.NeedsVerification {
		t.Error("approved NGO should not need verification")
	}
	// base 50 + role 2*25 + verification 3*50 + rating 4*20 = 330
	if resp.TrustScore.Total != 330 {
		t.Errorf("trust score = %d, want 330", resp.TrustScore.Total)
	}
	if resp.AnalyticsLevel != constants.AnalyticsProgram {
		t.Errorf("analytics level = %s, want program", resp.AnalyticsLevel)
	}
	if len(resp.Features) == 0 {
		t.Error("expected a non-empty feature set")
	}
}
