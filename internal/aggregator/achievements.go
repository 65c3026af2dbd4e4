package aggregator

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	gormModels "mitche/backend/internal/models/gorm"
)

// Catalog is the fixed achievement catalog seeded on every apply run.
// Seeding is a merge-write and safe to repeat.
func Catalog() []gormModels.Achievement {
	return []gormModels.Achievement{
		{
			ID:           "first_light",
			Name:         "First Light",
			Description:  "Earn your first hope points",
			Icon:         "🕯️",
			CriteriaType: gormModels.CriteriaHopePoints,
			Threshold:    1,
			Rarity:       "common",
		},
		{
			ID:           "beacon",
			Name:         "Beacon",
			Description:  "Reach 500 hope points",
			Icon:         "🔆",
			CriteriaType: gormModels.CriteriaHopePoints,
			Threshold:    500,
			Rarity:       "rare",
		},
		{
			ID:           "lighthouse",
			Name:         "Lighthouse",
			Description:  "Reach 2500 hope points",
			Icon:         "🗼",
			CriteriaType: gormModels.CriteriaHopePoints,
			Threshold:    2500,
			Rarity:       "epic",
		},
		{
			ID:           "silent_hero",
			Name:         "Silent Hero",
			Description:  "Receive 10 commendations",
			Icon:         "🤲",
			CriteriaType: gormModels.CriteriaCommendations,
			Threshold:    10,
			Rarity:       "rare",
		},
		{
			ID:           "weaver",
			Name:         "Weaver",
			Description:  "Weave 5 tapestry threads",
			Icon:         "🧵",
			CriteriaType: gormModels.CriteriaTapestry,
			Threshold:    5,
			Rarity:       "rare",
		},
		{
			ID:           "resonant_voice",
			Name:         "Resonant Voice",
			Description:  "Have 25 echoes answered",
			Icon:         "📣",
			CriteriaType: gormModels.CriteriaEchoes,
			Threshold:    25,
			Rarity:       "epic",
		},
		{
			ID:           "pillar_of_community",
			Name:         "Pillar of the Community",
			Description:  "1000 hope points, 20 commendations and 10 tapestry threads",
			Icon:         "🏛️",
			CriteriaType: gormModels.CriteriaCombo,
			ComboThresholds: gormModels.IntMap{
				gormModels.CriteriaHopePoints:    1000,
				gormModels.CriteriaCommendations: 20,
				gormModels.CriteriaTapestry:      10,
			},
			Rarity: "legendary",
		},
	}
}

func (a *Aggregator) seedAchievements(ctx context.Context) error {
	return a.achievements.Seed(ctx, Catalog())
}

// evaluateAchievements checks every (user, achievement) pair against the
// ledger aggregates. A user qualifies at most once: award records carry the
// deterministic id `${userId}_${achievementId}`, so re-runs award nothing new.
func (a *Aggregator) evaluateAchievements(ctx context.Context, acc *ledgerAccumulator, apply bool) error {
	var catalog []gormModels.Achievement
	if apply {
		var err error
		catalog, err = a.achievements.List(ctx)
		if err != nil {
			return err
		}
	} else {
		catalog = Catalog()
	}

	newAwards := 0
	for offset := 0; ; offset += a.opts.PageSize {
		var users []gormModels.User
		err := a.db.WithContext(ctx).
			Order("id").
			Offset(offset).
			Limit(a.opts.PageSize).
			Find(&users).Error
		if err != nil {
			return err
		}
		if len(users) == 0 {
			break
		}

		for i := range users {
			user := &users[i]
			aggregates := a.aggregatesFor(user, acc)

			for _, achievement := range catalog {
				if !qualifies(achievement, aggregates) {
					continue
				}

				awardID := fmt.Sprintf("%s_%s", user.ID, achievement.ID)

				awarded, err := a.achievements.HasAward(ctx, awardID)
				if err != nil {
					return err
				}
				if awarded {
					continue
				}

				newAwards++
				if !apply {
					continue
				}

				err = a.achievements.Award(ctx, &gormModels.UserAchievement{
					ID:            awardID,
					UserID:        user.ID,
					AchievementID: achievement.ID,
				})
				if err != nil {
					return err
				}
			}
		}

		if len(users) < a.opts.PageSize {
			break
		}
	}

	if apply {
		log.Printf("[Aggregator] awarded %d new achievements", newAwards)
	} else {
		log.Printf("[Aggregator] dry run: %d achievements would be awarded", newAwards)
	}
	return nil
}

// aggregatesFor exposes a user's reconciled numbers keyed by criteria type.
// A user absent from the ledger aggregates to all zeroes.
func (a *Aggregator) aggregatesFor(user *gormModels.User, acc *ledgerAccumulator) map[string]int64 {
	var commendationSum int64
	for _, n := range acc.commendations[user.ID] {
		commendationSum += n
	}

	return map[string]int64{
		gormModels.CriteriaHopePoints:    acc.totals[user.ID],
		gormModels.CriteriaCommendations: commendationSum,
		gormModels.CriteriaTapestry:      acc.tapestry[user.ID],
		gormModels.CriteriaEchoes:        acc.echoCounts[user.ID],
	}
}

func qualifies(achievement gormModels.Achievement, aggregates map[string]int64) bool {
	switch achievement.CriteriaType {
	case gormModels.CriteriaCombo:
		if len(achievement.ComboThresholds) == 0 {
			return false
		}
		for criteria, threshold := range achievement.ComboThresholds {
			if aggregates[criteria] < threshold {
				return false
			}
		}
		return true
	case gormModels.CriteriaHopePoints, gormModels.CriteriaCommendations,
		gormModels.CriteriaTapestry, gormModels.CriteriaEchoes:
		return aggregates[achievement.CriteriaType] >= achievement.Threshold
	default:
		return false
	}
}

func replaceSnapshots(ctx context.Context, db *gorm.DB, rows []gormModels.LeaderboardSnapshot) error {
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&rows).Error
}
