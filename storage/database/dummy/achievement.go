package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/codewisehub/backend/core/achievement"
)

type achievementRepository struct {
	db *DB
}

var _ achievement.Repository = (*achievementRepository)(nil) // interface compliance check

func NewAchievementRepository(db *DB) achievement.Repository {
	return &achievementRepository{db: db}
}

func (repo *achievementRepository) CreateAchievement(ctx context.Context, ach achievement.Achievement) (achievement.Achievement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	ach.ID = uuid.New().String()
	repo.db.achievements[ach.ID] = &ach
	return ach, nil
}

func (repo *achievementRepository) AwardAchievement(ctx context.Context, userID, achievementID string, earnedAt time.Time) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, row := range repo.db.earned[userID] {
		if row.achievementID == achievementID {
			return nil
		}
	}
	repo.db.earned[userID] = append(repo.db.earned[userID], earnedRow{
		achievementID: achievementID,
		earned:        achievement.Earned{EarnedAt: earnedAt},
	})
	return nil
}

func (repo *achievementRepository) QueryEarnedByUser(ctx context.Context, userID string) ([]achievement.Earned, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	earned := make([]achievement.Earned, 0)
	for _, row := range repo.db.earned[userID] {
		// inner join: skip rows whose catalog entry is gone
		ach, ok := repo.db.achievements[row.achievementID]
		if !ok {
			continue
		}
		earned = append(earned, achievement.Earned{Achievement: *ach, EarnedAt: row.earned.EarnedAt})
	}
	sort.Slice(earned, func(i, j int) bool { return earned[i].EarnedAt.After(earned[j].EarnedAt) })
	return earned, nil
}
