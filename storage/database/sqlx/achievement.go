package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core/achievement"
)

type achievementRepository struct {
	db *sqlx.DB
}

var _ achievement.Repository = (*achievementRepository)(nil) // interface compliance check

func NewAchievementRepository(db *sqlx.DB) *achievementRepository {
	return &achievementRepository{db: db}
}

func (repo achievementRepository) CreateAchievement(ctx context.Context, ach achievement.Achievement) (achievement.Achievement, error) {
	ach.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO achievement (id, title, description, icon, created_at)
		VALUES (:id, :title, :description, :icon, :created_at)`,
		ach,
	)
	if err != nil {
		return achievement.Achievement{}, errors.Wrap(err, "inserting achievement")
	}
	return ach, nil
}

func (repo achievementRepository) AwardAchievement(ctx context.Context, userID, achievementID string, earnedAt time.Time) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO user_achievement (user_id, achievement_id, earned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`,
		userID, achievementID, earnedAt,
	)
	return errors.Wrap(err, "awarding achievement")
}

func (repo achievementRepository) QueryEarnedByUser(ctx context.Context, userID string) ([]achievement.Earned, error) {
	earned := make([]achievement.Earned, 0)
	err := repo.db.SelectContext(ctx, &earned, `
		SELECT a.*, ua.earned_at
		FROM user_achievement ua
		         INNER JOIN achievement a ON a.id = ua.achievement_id
		WHERE ua.user_id = $1
		ORDER BY ua.earned_at DESC`,
		userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying earned achievements")
	}
	return earned, nil
}
