package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	crs.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO course (id, title, description, market, age_group, is_published, created_at, updated_at)
		VALUES (:id, :title, :description, :market, :age_group, :is_published, :created_at, :updated_at)`,
		crs,
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo courseRepository) FilterCourses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	query := `SELECT * FROM course WHERE is_published = TRUE AND market = $1`
	args := []interface{}{filter.Market}
	if filter.AgeGroup != "" {
		query += ` AND age_group = $2`
		args = append(args, filter.AgeGroup)
	}
	query += ` ORDER BY title ASC`

	courses := make([]course.Course, 0)
	if err := repo.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return courses, nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	if _, err := uuid.Parse(id); err != nil {
		return course.Course{}, course.ErrNotFound
	}
	var crs course.Course
	if err := repo.db.GetContext(ctx, &crs, `SELECT * FROM course WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "finding course by ID")
	}
	return crs, nil
}

func (repo courseRepository) QueryLessonsByCourse(ctx context.Context, courseID string) ([]course.Lesson, error) {
	lessons := make([]course.Lesson, 0)
	err := repo.db.SelectContext(ctx, &lessons, `
		SELECT * FROM lesson
		WHERE course_id = $1 AND is_published = TRUE
		ORDER BY order_index ASC`,
		courseID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying lessons")
	}
	return lessons, nil
}

func (repo courseRepository) GetLessonByID(ctx context.Context, id string) (course.Lesson, error) {
	if _, err := uuid.Parse(id); err != nil {
		return course.Lesson{}, course.ErrLessonNotFound
	}
	var lsn course.Lesson
	if err := repo.db.GetContext(ctx, &lsn, `SELECT * FROM lesson WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return course.Lesson{}, course.ErrLessonNotFound
		}
		return course.Lesson{}, errors.Wrap(err, "finding lesson by ID")
	}
	return lsn, nil
}

// CreateLesson is used by seeding and the admin tooling.
func (repo courseRepository) CreateLesson(ctx context.Context, lsn course.Lesson) (course.Lesson, error) {
	lsn.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO lesson (id, course_id, title, content, order_index, is_published, created_at, updated_at)
		VALUES (:id, :course_id, :title, :content, :order_index, :is_published, :created_at, :updated_at)`,
		lsn,
	)
	if err != nil {
		return course.Lesson{}, errors.Wrap(err, "inserting lesson")
	}
	return lsn, nil
}
