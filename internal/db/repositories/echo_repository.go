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

var ErrEchoNotFound = errors.New("echo not found")

type EchoRepository struct {
	db *gorm.DB
}

func NewEchoRepository(db *gorm.DB) *EchoRepository {
	return &EchoRepository{db: db}
}

func (r *EchoRepository) Create(ctx context.Context, echo *gormModels.Echo) error {
	if echo.ID == "" {
		echo.ID = uuid.NewString()
	}
	if echo.Status == "" {
		echo.Status = constants.EchoOpen
	}
	if err := r.db.WithContext(ctx).Create(echo).Error; err != nil {
		return fmt.Errorf("failed to create echo: %w", err)
	}
	return nil
}

func (r *EchoRepository) GetByID(ctx context.Context, id string) (*gormModels.Echo, error) {
	var echo gormModels.Echo

	err := r.db.WithContext(ctx).
		Preload("Offerings").
		Where("id = ?", id).
		First(&echo).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEchoNotFound
		}
		return nil, fmt.Errorf("failed to fetch echo: %w", err)
	}
	return &echo, nil
}

// ListOpen returns open echoes, newest first.
func (r *EchoRepository) ListOpen(ctx context.Context, limit int) ([]gormModels.Echo, error) {
	var echoes []gormModels.Echo

	err := r.db.WithContext(ctx).
		Where("status = ?", constants.EchoOpen).
		Order("created_at DESC").
		Limit(limit).
		Find(&echoes).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list echoes: %w", err)
	}
	return echoes, nil
}

func (r *EchoRepository) SetStatus(ctx context.Context, id string, status constants.EchoStatus) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Echo{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update echo status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrEchoNotFound
	}
	return nil
}

func (r *EchoRepository) AddOffering(ctx context.Context, offering *gormModels.Offering) error {
	if offering.ID == "" {
		offering.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(offering).Error; err != nil {
		return fmt.Errorf("failed to create offering: %w", err)
	}
	return nil
}

func (r *EchoRepository) CreateTapestryThread(ctx context.Context, thread *gormModels.TapestryThread) error {
	if thread.ID == "" {
		thread.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(thread).Error; err != nil {
		return fmt.Errorf("failed to create tapestry thread: %w", err)
	}
	return nil
}
