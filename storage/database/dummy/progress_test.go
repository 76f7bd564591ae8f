package dummydb

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/codewisehub/backend/core/progress"
)

// Concurrent submissions for one (user, course, lesson) triple must converge
// on a single row, mirroring the ON CONFLICT upsert in Postgres.
func TestProgressRepository_UpsertProgress_converges(t *testing.T) {
	repo := NewProgressRepository(NewDB())
	ctx := context.Background()

	const workers = 32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(pct int) {
			defer wg.Done()
			_, err := repo.UpsertProgress(ctx, progress.Progress{
				UserID:    "u1",
				CourseID:  "c1",
				LessonID:  "l1",
				Progress:  pct,
				Completed: pct == 100,
				UpdatedAt: time.Now().UTC(),
			})
			if err != nil {
				t.Errorf("UpsertProgress() failed: %v", err)
			}
		}((i * 100) / (workers - 1))
	}
	wg.Wait()

	rows, err := repo.QueryProgressByUser(ctx, "u1", "")
	if err != nil {
		t.Fatalf("QueryProgressByUser() failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d; want exactly 1", len(rows))
	}

	// a different triple gets its own row
	if _, err = repo.UpsertProgress(ctx, progress.Progress{
		UserID: "u1", CourseID: "c1", LessonID: "l2", Progress: 10,
	}); err != nil {
		t.Fatalf("UpsertProgress() failed: %v", err)
	}
	rows, _ = repo.QueryProgressByUser(ctx, "u1", "")
	if len(rows) != 2 {
		t.Fatalf("rows = %d; want 2", len(rows))
	}
}
