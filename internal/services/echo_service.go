package services

import (
	"context"
	"fmt"
	"strings"

	"mitche/backend/internal/constants"
	"mitche/backend/internal/db/repositories"
	"mitche/backend/internal/metrics"
	gormModels "mitche/backend/internal/models/gorm"
	"mitche/backend/internal/permissions"
)

// EchoError is a business rejection, mapped to a 4xx by handlers.
type EchoError struct {
	Message string
	Code    int
}

func (e *EchoError) Error() string { return e.Message }

type EchoService struct {
	echoRepo   *repositories.EchoRepository
	userRepo   *repositories.UserRepository
	ledgerRepo *repositories.LedgerRepository
	manager    *permissions.Manager
	metricsReg *metrics.MetricsRegistry
}

func NewEchoService(
	echoRepo *repositories.EchoRepository,
	userRepo *repositories.UserRepository,
	ledgerRepo *repositories.LedgerRepository,
	manager *permissions.Manager,
	metricsReg *metrics.MetricsRegistry,
) *EchoService {
	return &EchoService{
		echoRepo:   echoRepo,
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		manager:    manager,
		metricsReg: metricsReg,
	}
}

// CreateEcho posts a help request.
func (s *EchoService) CreateEcho(ctx context.Context, author *gormModels.User, title, description, category, location string) (*gormModels.Echo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &EchoError{Message: "echo title is required", Code: 400}
	}

	echo := &gormModels.Echo{
		AuthorID:    author.ID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Category:    category,
		Location:    location,
		Status:      constants.EchoOpen,
	}
	if err := s.echoRepo.Create(ctx, echo); err != nil {
		return nil, fmt.Errorf("create echo: %w", err)
	}

	if err := s.userRepo.IncrementEchoCount(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("create echo: counter update failed: %w", err)
	}

	if s.metricsReg != nil {
		s.metricsReg.EchoesCreatedTotal.Inc()
	}
	return echo, nil
}

// AddOffering responds to an echo with help or encouragement. The cross-role
// interaction table is consulted against the echo's author.
func (s *EchoService) AddOffering(ctx context.Context, helper *gormModels.User, echoID string, kind constants.OfferingKind, message string) (*gormModels.Offering, error) {
	echo, err := s.echoRepo.GetByID(ctx, echoID)
	if err != nil {
		return nil, &EchoError{Message: constants.StatusEchoNotFound, Code: 404}
	}
	if echo.Status != constants.EchoOpen && echo.Status != constants.EchoInProgress {
		return nil, &EchoError{Message: constants.MsgEchoClosed, Code: 409}
	}

	author, err := s.userRepo.GetByID(ctx, echo.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("add offering: %w", err)
	}

	action := constants.ActionOfferHelp
	if kind == constants.OfferingEncouragement {
		action = constants.ActionMessage
	}
	if !s.manager.CanInteractWith(helper, author, action) {
		return nil, &EchoError{Message: constants.StatusForbidden, Code: 403}
	}

	offering := &gormModels.Offering{
		EchoID:   echo.ID,
		HelperID: helper.ID,
		Kind:     kind,
		Message:  strings.TrimSpace(message),
	}
	if err := s.echoRepo.AddOffering(ctx, offering); err != nil {
		return nil, fmt.Errorf("add offering: %w", err)
	}

	if echo.Status == constants.EchoOpen {
		if err := s.echoRepo.SetStatus(ctx, echo.ID, constants.EchoInProgress); err != nil {
			return nil, fmt.Errorf("add offering: status update failed: %w", err)
		}
	}

	if s.metricsReg != nil {
		s.metricsReg.OfferingsCreatedTotal.WithLabelValues(string(kind)).Inc()
	}
	return offering, nil
}

// CloseEcho is a moderation action. The moderator must outrank the echo's
// author per the moderation matrix.
func (s *EchoService) CloseEcho(ctx context.Context, moderator *gormModels.User, echoID string) error {
	echo, err := s.echoRepo.GetByID(ctx, echoID)
	if err != nil {
		return &EchoError{Message: constants.StatusEchoNotFound, Code: 404}
	}

	author, err := s.userRepo.GetByID(ctx, echo.AuthorID)
	if err != nil {
		return fmt.Errorf("close echo: %w", err)
	}

	if !s.manager.CanModerate(moderator, author) {
		return &EchoError{Message: constants.StatusForbidden, Code: 403}
	}

	if err := s.echoRepo.SetStatus(ctx, echo.ID, constants.EchoClosed); err != nil {
		return fmt.Errorf("close echo: %w", err)
	}
	return nil
}

// WeaveTapestryThread records a commemorative story honoring another user.
func (s *EchoService) WeaveTapestryThread(ctx context.Context, author *gormModels.User, honoreeID, title, story, color string) (*gormModels.TapestryThread, error) {
	if !s.manager.HasPermission(author, constants.PermWeaveTapestry) {
		return nil, &EchoError{Message: constants.StatusForbidden, Code: 403}
	}
	if strings.TrimSpace(story) == "" {
		return nil, &EchoError{Message: "tapestry story is required", Code: 400}
	}
	if _, err := s.userRepo.GetByID(ctx, honoreeID); err != nil {
		return nil, &EchoError{Message: constants.StatusUserNotFound, Code: 404}
	}

	thread := &gormModels.TapestryThread{
		AuthorID:  author.ID,
		HonoreeID: honoreeID,
		Title:     strings.TrimSpace(title),
		Story:     story,
		Color:     color,
	}
	if err := s.echoRepo.CreateTapestryThread(ctx, thread); err != nil {
		return nil, fmt.Errorf("weave tapestry: %w", err)
	}

	if err := s.userRepo.IncrementTapestryCount(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("weave tapestry: counter update failed: %w", err)
	}

	// A zero-amount marker entry makes the weave visible to the ledger
	// scan, which counts threads per author for pillars and achievements.
	marker := &gormModels.HopeLedgerEntry{
		ActorID:    author.ID,
		ReceiverID: honoreeID,
		Category:   constants.CategoryTapestryWeaver.String(),
		Amount:     0,
		Reason:     thread.Title,
	}
	if err := s.ledgerRepo.Append(ctx, marker); err != nil {
		return nil, fmt.Errorf("weave tapestry: ledger marker failed: %w", err)
	}
	return thread, nil
}
