package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mitche/backend/internal/constants"
	"mitche/backend/internal/db/repositories"
	gormModels "mitche/backend/internal/models/gorm"
	"mitche/backend/internal/permissions"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&gormModels.User{},
		&gormModels.HopeLedgerEntry{},
		&gormModels.Echo{},
		&gormModels.Offering{},
		&gormModels.TapestryThread{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, id, name string, role constants.Role, verified bool) *gormModels.User {
	status := constants.VerificationNotRequested
	if verified {
		status = constants.VerificationApproved
	}
	user := &gormModels.User{
		ID:           id,
		SymbolicName: name,
		UserRole:     role,
		Verification: status,
		IsVerified:   verified,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", id, err)
	}
	return user
}

func newLedgerService(db *gorm.DB) *LedgerService {
	return NewLedgerService(
		repositories.NewLedgerRepository(db),
		repositories.NewUserRepository(db),
		permissions.NewManager(nil),
		nil,
	)
}

func TestLedgerService_Grant_CitizenMultiplier(t *testing.T) {
	db := setupTestDB(t)
	actor := createUser(t, db, "actor", "quiet-river", constants.RoleCitizen, false)
	createUser(t, db, "receiver", "tall-oak", constants.RoleCitizen, false)

	svc := newLedgerService(db)

	result, err := svc.Grant(context.Background(), actor, "receiver", "HelpProvided", 10, "carried groceries")
	if err != nil {
		t.Fatalf("Grant failed: %v", err)
	}

	if result.Multiplier != 1.0 {
		t.Errorf("multiplier = %v, want 1.0", result.Multiplier)
	}
	if result.Granted != 10 {
		t.Errorf("granted = %d, want 10", result.Granted)
	}
	if result.EntryID == "" {
		t.Error("expected a ledger entry id")
	}

	var receiver gormModels.User
	if err := db.Where("id = ?", "receiver").First(&receiver).Error; err != nil {
		t.Fatalf("Failed to reload receiver: %v", err)
	}
	if receiver.HopePoints != 10 {
		t.Errorf("receiver hope points = %d, want 10", receiver.HopePoints)
	}
	if receiver.HopePointsBreakdown["HelpProvided"] != 10 {
		t.Errorf("breakdown = %v, want HelpProvided 10", receiver.HopePointsBreakdown)
	}
}

func TestLedgerService_Grant_VerifiedNGOMultiplier(t *testing.T) {
	db := setupTestDB(t)
	actor := createUser(t, db, "actor", "hope-org", constants.RoleNGO, true)
	createUser(t, db, "receiver", "tall-oak", constants.RoleCitizen, false)

	svc := newLedgerService(db)

	result, err := svc.Grant(context.Background(), actor, "receiver", "CommunityGift", 10, "")
	if err != nil {
		t.Fatalf("Grant failed: %v", err)
	}

	if result.Multiplier != 2.0 {
		t.Errorf("verified NGO multiplier = %v, want 2.0", result.Multiplier)
	}
	if result.Granted != 20 {
		t.Errorf("granted = %d, want 20", result.Granted)
	}

	var entries []gormModels.HopeLedgerEntry
	if err := db.Find(&entries).Error; err != nil {
		t.Fatalf("Failed to read ledger: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(entries))
	}
	if entries[0].Amount != 20 {
		t.Errorf("ledger amount = %d, want the multiplied 20", entries[0].Amount)
	}
}

func TestLedgerService_Grant_Rejections(t *testing.T) {
	db := setupTestDB(t)
	actor := createUser(t, db, "actor", "quiet-river", constants.RoleCitizen, false)
	createUser(t, db, "receiver", "tall-oak", constants.RoleCitizen, false)

	svc := newLedgerService(db)
	ctx := context.Background()

	tests := []struct {
		name       string
		receiverID string
		category   string
		amount     int64
	}{
		{"negative amount", "receiver", "General", -5},
		{"zero amount", "receiver", "General", 0},
		{"unknown category", "receiver", "NotACategory", 5},
		{"self grant", "actor", "General", 5},
		{"missing receiver", "nobody", "General", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Grant(ctx, actor, tt.receiverID, tt.category, tt.amount, "")
			var grantErr *GrantError
			if !errors.As(err, &grantErr) {
				t.Fatalf("expected GrantError, got %v", err)
			}
		})
	}

	var count int64
	db.Model(&gormModels.HopeLedgerEntry{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected grants wrote %d ledger entries", count)
	}
}
