package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/codewisehub/backend/core/progress"
)

type progressRepository struct {
	db *DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) progress.Repository {
	return &progressRepository{db: db}
}

func tripleKey(userID, courseID, lessonID string) string {
	return userID + "|" + courseID + "|" + lessonID
}

// UpsertProgress is keyed on the triple, so repeated submissions converge on
// a single row just like the ON CONFLICT statement does in Postgres.
func (repo *progressRepository) UpsertProgress(ctx context.Context, prg progress.Progress) (progress.Progress, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	key := tripleKey(prg.UserID, prg.CourseID, prg.LessonID)
	if existing, ok := repo.db.progress[key]; ok {
		existing.Progress = prg.Progress
		existing.Completed = prg.Completed
		existing.UpdatedAt = prg.UpdatedAt
		return *existing, nil
	}
	prg.ID = uuid.New().String()
	repo.db.progress[key] = &prg
	return prg, nil
}

func (repo *progressRepository) QueryProgressByUser(ctx context.Context, userID, courseID string) ([]progress.Progress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rows := make([]progress.Progress, 0)
	for _, prg := range repo.db.progress {
		if prg.UserID != userID {
			continue
		}
		if courseID != "" && prg.CourseID != courseID {
			continue
		}
		rows = append(rows, *prg)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UpdatedAt.After(rows[j].UpdatedAt) })
	return rows, nil
}
