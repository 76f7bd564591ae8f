package achievement

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("achievement not found")

type (
	Repository interface {
		CreateAchievement(ctx context.Context, ach Achievement) (Achievement, error)
		// AwardAchievement records that a user earned an achievement.
		AwardAchievement(ctx context.Context, userID, achievementID string, earnedAt time.Time) error
		// QueryEarnedByUser inner-joins the catalog; join rows without a
		// matching catalog entry are excluded. Ordered by EarnedAt descending.
		QueryEarnedByUser(ctx context.Context, userID string) ([]Earned, error)
	}

	Service interface {
		Create(ctx context.Context, ach Achievement) (Achievement, error)
		Award(ctx context.Context, userID, achievementID string) error
		QueryEarnedByUser(ctx context.Context, userID string) ([]Earned, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, ach Achievement) (Achievement, error) {
	ach.CreatedAt = time.Now().UTC()
	return svc.repo.CreateAchievement(ctx, ach)
}

func (svc *service) Award(ctx context.Context, userID, achievementID string) error {
	return svc.repo.AwardAchievement(ctx, userID, achievementID, time.Now().UTC())
}

func (svc *service) QueryEarnedByUser(ctx context.Context, userID string) ([]Earned, error) {
	return svc.repo.QueryEarnedByUser(ctx, userID)
}
