package repositories

import (
	"context"
	"errors"
	"fmt"

	"mitche/backend/internal/constants"
	gormModels "mitche/backend/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new GORM-based user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// GetBySymbolicName retrieves a user by their pseudonymous display name
func (r *UserRepository) GetBySymbolicName(ctx context.Context, name string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("symbolic_name = ?", name).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user by symbolic name: %w", err)
	}

	return &user, nil
}

// Create inserts a new user. New accounts always start as unverified Citizens.
func (r *UserRepository) Create(ctx context.Context, user *gormModels.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.UserRole == "" {
		user.UserRole = constants.RoleCitizen
	}
	if user.Verification == "" {
		user.Verification = constants.VerificationNotRequested
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// AddHopePoints additively increments a receiver's running totals. Totals are
// never decremented; the ledger stays the source of truth and the aggregator
// reconciles drift.
func (r *UserRepository) AddHopePoints(ctx context.Context, userID, category string, amount int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user gormModels.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to fetch user for point grant: %w", err)
		}

		breakdown := user.HopePointsBreakdown
		if breakdown == nil {
			breakdown = gormModels.IntMap{}
		}
		breakdown[category] += amount

		return tx.Model(&gormModels.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"hope_points":           gorm.Expr("hope_points + ?", amount),
				"hope_points_breakdown": breakdown,
			}).Error
	})
}

// SetRole updates a user's role (Admin action only; enforced above).
func (r *UserRepository) SetRole(ctx context.Context, userID string, role constants.Role) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.User{}).
		Where("id = ?", userID).
		Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("failed to update role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SubmitVerificationRequest moves a user to Pending and records the
// supporting organisation details for the admin review queue.
func (r *UserRepository) SubmitVerificationRequest(ctx context.Context, userID, orgName, docURL string) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"verification_status":  constants.VerificationPending,
			"is_verified":          false,
			"org_name":             orgName,
			"verification_doc_url": docURL,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to submit verification request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetVerification updates verification status and the derived is_verified flag.
func (r *UserRepository) SetVerification(ctx context.Context, userID string, status constants.VerificationStatus) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"verification_status": status,
			"is_verified":         status == constants.VerificationApproved,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update verification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// IncrementTapestryCount bumps the denormalized thread counter.
func (r *UserRepository) IncrementTapestryCount(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&gormModels.User{}).
		Where("id = ?", userID).
		Update("tapestry_count", gorm.Expr("tapestry_count + 1")).Error
}

// IncrementEchoCount bumps the denormalized echo counter.
func (r *UserRepository) IncrementEchoCount(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&gormModels.User{}).
		Where("id = ?", userID).
		Update("echo_count", gorm.Expr("echo_count + 1")).Error
}
