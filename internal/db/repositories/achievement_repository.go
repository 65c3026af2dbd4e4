package repositories

import (
	"context"
	"fmt"

	gormModels "mitche/backend/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// Seed merge-writes the achievement catalog. Safe to repeat.
func (r *AchievementRepository) Seed(ctx context.Context, catalog []gormModels.Achievement) error {
	if len(catalog) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&catalog).Error
	if err != nil {
		return fmt.Errorf("failed to seed achievements: %w", err)
	}
	return nil
}

func (r *AchievementRepository) List(ctx context.Context) ([]gormModels.Achievement, error) {
	var catalog []gormModels.Achievement
	if err := r.db.WithContext(ctx).Find(&catalog).Error; err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return catalog, nil
}

// HasAward reports whether the deterministic award id already exists.
func (r *AchievementRepository) HasAward(ctx context.Context, awardID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.UserAchievement{}).
		Where("id = ?", awardID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check award: %w", err)
	}
	return count > 0, nil
}

// Award creates an award record and appends the achievement id to the user's
// badge set. The composite id makes the write idempotent at the storage level.
func (r *AchievementRepository) Award(ctx context.Context, award *gormModels.UserAchievement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(award).Error; err != nil {
			return fmt.Errorf("failed to create award: %w", err)
		}

		var user gormModels.User
		if err := tx.Where("id = ?", award.UserID).First(&user).Error; err != nil {
			return fmt.Errorf("failed to fetch user for badge: %w", err)
		}
		if user.Badges.Contains(award.AchievementID) {
			return nil
		}
		badges := append(user.Badges, award.AchievementID)
		return tx.Model(&gormModels.User{}).
			Where("id = ?", award.UserID).
			Update("badges", badges).Error
	})
}
