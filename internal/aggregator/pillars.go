package aggregator

import (
	"sort"

	gormModels "mitche/backend/internal/models/gorm"
)

// The five pillar metrics derived from a user's ledger aggregates. They feed
// achievement criteria and the dashboard's engagement view.
const (
	PillarAnchor        = "anchor"        // total hope standing
	PillarBridge        = "bridge"        // commendations received
	PillarSymbol        = "symbol"        // tapestry threads woven
	PillarDialog        = "dialog"        // echo activity
	PillarTranspersonal = "transpersonal" // breadth across categories
)

func computePillars(total int64, commendations gormModels.IntMap, tapestryCount, echoCount int64, breakdown gormModels.IntMap) gormModels.IntMap {
	var commendationSum int64
	for _, n := range commendations {
		commendationSum += n
	}

	return gormModels.IntMap{
		PillarAnchor:        total,
		PillarBridge:        commendationSum,
		PillarSymbol:        tapestryCount,
		PillarDialog:        echoCount,
		PillarTranspersonal: int64(len(breakdown)),
	}
}

// rankSnapshots sorts by total points descending (ties broken by user id for
// stable output) and assigns 1-based ranks.
func rankSnapshots(rows []gormModels.LeaderboardSnapshot) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		return rows[i].UserID < rows[j].UserID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
}
