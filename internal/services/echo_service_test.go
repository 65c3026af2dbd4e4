package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"mitche/backend/internal/constants"
	"mitche/backend/internal/db/repositories"
	gormModels "mitche/backend/internal/models/gorm"
	"mitche/backend/internal/permissions"
)

func newEchoService(db *gorm.DB) *EchoService {
	return NewEchoService(
		repositories.NewEchoRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewLedgerRepository(db),
		permissions.NewManager(nil),
		nil,
	)
}

func TestEchoService_CreateEcho(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", "quiet-river", constants.RoleCitizen, false)

	svc := newEchoService(db)
	ctx := context.Background()

	echo, err := svc.CreateEcho(ctx, author, "Need a ride to the clinic", "Tuesday morning", "HelpProvided", "Beirut")
	if err != nil {
		t.Fatalf("CreateEcho failed: %v", err)
	}
	if echo.Status != constants.EchoOpen {
		t.Errorf("new echo status = %s, want Open", echo.Status)
	}
	if echo.ID == "" {
		t.Error("expected an echo id")
	}

	var reloaded gormModels.User
	if err := db.Where("id = ?", "author").First(&reloaded).Error; err != nil {
		t.Fatalf("Failed to reload author: %v", err)
	}
	if reloaded.EchoCount != 1 {
		t.Errorf("author echo count = %d, want 1", reloaded.EchoCount)
	}
}

func TestEchoService_CreateEcho_RequiresTitle(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", "quiet-river", constants.RoleCitizen, false)

	svc := newEchoService(db)

	_, err := svc.CreateEcho(context.Background(), author, "   ", "", "General", "")
	var echoErr *EchoError
	if !errors.As(err, &echoErr) || echoErr.Code != 400 {
		t.Fatalf("expected a 400 EchoError, got %v", err)
	}
}

func TestEchoService_AddOffering_MovesEchoInProgress(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", "quiet-river", constants.RoleCitizen, false)
	helper := createUser(t, db, "helper", "tall-oak", constants.RoleCitizen, false)

	svc := newEchoService(db)
	ctx := context.Background()

	echo, err := svc.CreateEcho(ctx, author, "Need groceries", "", "HelpProvided", "")
	if err != nil {
		t.Fatalf("CreateEcho failed: %v", err)
	}

	offering, err := svc.AddOffering(ctx, helper, echo.ID, constants.OfferingHelp, "I can shop on Friday")
	if err != nil {
		t.Fatalf("AddOffering failed: %v", err)
	}
	if offering.HelperID != "helper" {
		t.Errorf("helper id = %s, want helper", offering.HelperID)
	}

	reloaded, err := repositories.NewEchoRepository(db).GetByID(ctx, echo.ID)
	if err != nil {
		t.Fatalf("Failed to reload echo: %v", err)
	}
	if reloaded.Status != constants.EchoInProgress {
		t.Errorf("echo status = %s, want InProgress", reloaded.Status)
	}
	if len(reloaded.Offerings) != 1 {
		t.Errorf("offerings = %d, want 1", len(reloaded.Offerings))
	}
}

func TestEchoService_AddOffering_ClosedEcho(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", "quiet-river", constants.RoleCitizen, false)
	helper := createUser(t, db, "helper", "tall-oak", constants.RoleCitizen, false)

	echoRepo := repositories.NewEchoRepository(db)
	svc := newEchoService(db)
	ctx := context.Background()

	echo, err := svc.CreateEcho(ctx, author, "Need groceries", "", "HelpProvided", "")
	if err != nil {
		t.Fatalf("CreateEcho failed: %v", err)
	}
	if err := echoRepo.SetStatus(ctx, echo.ID, constants.EchoClosed); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	_, err = svc.AddOffering(ctx, helper, echo.ID, constants.OfferingHelp, "")
	var echoErr *EchoError
	if !errors.As(err, &echoErr) || echoErr.Code != 409 {
		t.Fatalf("expected a 409 EchoError, got %v", err)
	}
}

func TestEchoService_AddOffering_UnknownEcho(t *testing.T) {
	db := setupTestDB(t)
	helper := createUser(t, db, "helper", "tall-oak", constants.RoleCitizen, false)

	svc := newEchoService(db)

	_, err := svc.AddOffering(context.Background(), helper, "missing", constants.OfferingHelp, "")
	var echoErr *EchoError
	if !errors.As(err, &echoErr) || echoErr.Code != 404 {
		t.Fatalf("expected a 404 EchoError, got %v", err)
	}
}

func TestEchoService_CloseEcho_ModerationMatrix(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", "quiet-river", constants.RoleCitizen, false)
	peer := createUser(t, db, "peer", "tall-oak", constants.RoleCitizen, false)
	worker := createUser(t, db, "worker", "city-hall", constants.RolePublicWorker, true)

	svc := newEchoService(db)
	ctx := context.Background()

	echo, err := svc.CreateEcho(ctx, author, "Need groceries", "", "HelpProvided", "")
	if err != nil {
		t.Fatalf("CreateEcho failed: %v", err)
	}

	// Citizens cannot moderate each other
	err = svc.CloseEcho(ctx, peer, echo.ID)
	var echoErr *EchoError
	if !errors.As(err, &echoErr) || echoErr.Code != 403 {
		t.Fatalf("expected a 403 EchoError for peer, got %v", err)
	}

	// Public workers can moderate citizens
	if err := svc.CloseEcho(ctx, worker, echo.ID); err != nil {
		t.Fatalf("CloseEcho failed: %v", err)
	}

	reloaded, err := repositories.NewEchoRepository(db).GetByID(ctx, echo.ID)
	if err != nil {
		t.Fatalf("Failed to reload echo: %v", err)
	}
	if reloaded.Status != constants.EchoClosed {
		t.Errorf("echo status = %s, want Closed", reloaded.Status)
	}
}

func TestEchoService_WeaveTapestry_RequiresCapability(t *testing.T) {
	db := setupTestDB(t)
	citizen := createUser(t, db, "citizen", "quiet-river", constants.RoleCitizen, false)
	ngo := createUser(t, db, "ngo", "hope-org", constants.RoleNGO, true)
	createUser(t, db, "honoree", "tall-oak", constants.RoleCitizen, false)

	svc := newEchoService(db)
	ctx := context.Background()

	// Citizens cannot weave
	_, err := svc.WeaveTapestryThread(ctx, citizen, "honoree", "A quiet gift", "They helped without being asked.", "gold")
	var echoErr *EchoError
	if !errors.As(err, &echoErr) || echoErr.Code != 403 {
		t.Fatalf("expected a 403 EchoError for citizen, got %v", err)
	}

	// NGOs can
	thread, err := svc.WeaveTapestryThread(ctx, ngo, "honoree", "A quiet gift", "They helped without being asked.", "gold")
	if err != nil {
		t.Fatalf("WeaveTapestryThread failed: %v", err)
	}
	if thread.HonoreeID != "honoree" {
		t.Errorf("honoree id = %s, want honoree", thread.HonoreeID)
	}

	var reloaded gormModels.User
	if err := db.Where("id = ?", "ngo").First(&reloaded).Error; err != nil {
		t.Fatalf("Failed to reload author: %v", err)
	}
	if reloaded.TapestryCount != 1 {
		t.Errorf("tapestry count = %d, want 1", reloaded.TapestryCount)
	}

	// The weave leaves a zero-amount marker entry so the ledger scan can
	// count threads per author.
	var markers []gormModels.HopeLedgerEntry
	if err := db.Where("actor_id = ?", "ngo").Find(&markers).Error; err != nil {
		t.Fatalf("Failed to load ledger entries: %v", err)
	}
	if len(markers) != 1 {
		t.Fatalf("ledger markers = %d, want 1", len(markers))
	}
	if markers[0].Category != constants.CategoryTapestryWeaver.String() || markers[0].Amount != 0 {
		t.Errorf("marker = %s/%d, want TapestryWeaver/0", markers[0].Category, markers[0].Amount)
	}
}
