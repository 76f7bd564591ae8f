package progress

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("progress not found")

type (
	Repository interface {
		// UpsertProgress atomically inserts or, on (user, course, lesson)
		// conflict, overwrites progress/completed and bumps UpdatedAt.
		UpsertProgress(ctx context.Context, prg Progress) (Progress, error)
		// QueryProgressByUser lists a user's progress rows, optionally
		// narrowed to one course, most recently updated first.
		QueryProgressByUser(ctx context.Context, userID, courseID string) ([]Progress, error)
	}

	Service interface {
		Upsert(ctx context.Context, userID string, up UpsertProgress) (Progress, error)
		QueryByUser(ctx context.Context, userID, courseID string) ([]Progress, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Upsert(ctx context.Context, userID string, up UpsertProgress) (Progress, error) {
	now := time.Now().UTC()
	prg := Progress{
		UserID:    userID,
		CourseID:  up.CourseID,
		LessonID:  up.LessonID,
		Progress:  up.Progress,
		Completed: up.Completed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.UpsertProgress(ctx, prg)
}

func (svc *service) QueryByUser(ctx context.Context, userID, courseID string) ([]Progress, error) {
	return svc.repo.QueryProgressByUser(ctx, userID, courseID)
}
