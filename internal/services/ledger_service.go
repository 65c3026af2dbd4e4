package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"mitche/backend/internal/constants"
	"mitche/backend/internal/db/repositories"
	"mitche/backend/internal/metrics"
	gormModels "mitche/backend/internal/models/gorm"
	"mitche/backend/internal/permissions"
)

// GrantError is a business rejection of a point grant, distinct from a
// storage failure. Handlers map it to a 400.
type GrantError struct {
	Message string
}

func (e *GrantError) Error() string { return e.Message }

// LedgerService records hope point grants: one append-only ledger entry plus
// an additive increment of the receiver's running totals.
type LedgerService struct {
	ledgerRepo *repositories.LedgerRepository
	userRepo   *repositories.UserRepository
	manager    *permissions.Manager
	metricsReg *metrics.MetricsRegistry
}

func NewLedgerService(
	ledgerRepo *repositories.LedgerRepository,
	userRepo *repositories.UserRepository,
	manager *permissions.Manager,
	metricsReg *metrics.MetricsRegistry,
) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
		manager:    manager,
		metricsReg: metricsReg,
	}
}

// GrantResult describes a recorded grant.
type GrantResult struct {
	EntryID    string
	ReceiverID string
	Category   string
	BaseAmount int64
	Multiplier float64
	Granted    int64
}

// Grant applies the actor's effective multiplier to the base amount, appends
// a ledger entry, and increments the receiver's totals.
func (s *LedgerService) Grant(ctx context.Context, actor *gormModels.User, receiverID, category string, amount int64, reason string) (*GrantResult, error) {
	if amount <= 0 {
		return nil, &GrantError{Message: constants.MsgInvalidAmount}
	}
	if !constants.IsValidCategory(category) {
		return nil, &GrantError{Message: constants.MsgInvalidCategory}
	}
	if actor.ID == receiverID {
		return nil, &GrantError{Message: constants.MsgSelfGrant}
	}

	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, &GrantError{Message: constants.StatusUserNotFound}
		}
		return nil, fmt.Errorf("grant: %w", err)
	}

	multiplier := s.manager.EffectiveHopeMultiplier(actor)
	granted := int64(math.Round(float64(amount) * multiplier))

	entry := &gormModels.HopeLedgerEntry{
		ActorID:    actor.ID,
		ReceiverID: receiver.ID,
		Category:   category,
		Amount:     granted,
		Reason:     reason,
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("grant: %w", err)
	}

	if err := s.userRepo.AddHopePoints(ctx, receiver.ID, category, granted); err != nil {
		// The ledger entry is already committed; totals will be reconciled
		// by the aggregator on its next run.
		return nil, fmt.Errorf("grant: totals update failed (ledger committed): %w", err)
	}

	if s.metricsReg != nil {
		s.metricsReg.HopePointsGrantedTotal.WithLabelValues(category).Add(float64(granted))
	}

	return &GrantResult{
		EntryID:    entry.ID,
		ReceiverID: receiver.ID,
		Category:   category,
		BaseAmount: amount,
		Multiplier: multiplier,
		Granted:    granted,
	}, nil
}
