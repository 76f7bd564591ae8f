package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core/progress"
)

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

// UpsertProgress relies on the (user_id, course_id, lesson_id) unique
// constraint so that concurrent identical requests cannot produce duplicate
// rows; the loser of the race overwrites instead.
func (repo progressRepository) UpsertProgress(ctx context.Context, prg progress.Progress) (progress.Progress, error) {
	prg.ID = uuid.New().String()
	var saved progress.Progress
	rows, err := repo.db.NamedQueryContext(ctx, `
		INSERT INTO user_progress (id, user_id, course_id, lesson_id, progress, completed, created_at, updated_at)
		VALUES (:id, :user_id, :course_id, :lesson_id, :progress, :completed, :created_at, :updated_at)
		ON CONFLICT (user_id, course_id, lesson_id) DO UPDATE
		SET progress   = EXCLUDED.progress,
		    completed  = EXCLUDED.completed,
		    updated_at = EXCLUDED.updated_at
		RETURNING *`,
		prg,
	)
	if err != nil {
		return progress.Progress{}, errors.Wrap(err, "upserting progress")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.StructScan(&saved); err != nil {
			return progress.Progress{}, errors.Wrap(err, "scanning progress")
		}
	}
	if err = rows.Err(); err != nil {
		return progress.Progress{}, errors.Wrap(err, "upserting progress")
	}
	return saved, nil
}

func (repo progressRepository) QueryProgressByUser(ctx context.Context, userID, courseID string) ([]progress.Progress, error) {
	query := `SELECT * FROM user_progress WHERE user_id = $1`
	args := []interface{}{userID}
	if courseID != "" {
		query += ` AND course_id = $2`
		args = append(args, courseID)
	}
	query += ` ORDER BY updated_at DESC`

	rows := make([]progress.Progress, 0)
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying progress")
	}
	return rows, nil
}
