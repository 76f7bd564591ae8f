package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/codewisehub/backend/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	crs.ID = uuid.New().String()
	repo.db.courses[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) CreateLesson(ctx context.Context, lsn course.Lesson) (course.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	lsn.ID = uuid.New().String()
	repo.db.lessons[lsn.ID] = &lsn
	return lsn, nil
}

func (repo *courseRepository) FilterCourses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]course.Course, 0)
	for _, crs := range repo.db.courses {
		if !crs.IsPublished || crs.Market != filter.Market {
			continue
		}
		if filter.AgeGroup != "" && crs.AgeGroup.String != filter.AgeGroup {
			continue
		}
		courses = append(courses, *crs)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Title < courses[j].Title })
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if crs, ok := repo.db.courses[id]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) QueryLessonsByCourse(ctx context.Context, courseID string) ([]course.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	lessons := make([]course.Lesson, 0)
	for _, lsn := range repo.db.lessons {
		if lsn.CourseID == courseID && lsn.IsPublished {
			lessons = append(lessons, *lsn)
		}
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].OrderIndex < lessons[j].OrderIndex })
	return lessons, nil
}

func (repo *courseRepository) GetLessonByID(ctx context.Context, id string) (course.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if lsn, ok := repo.db.lessons[id]; ok {
		return *lsn, nil
	}
	return course.Lesson{}, course.ErrLessonNotFound
}
