package course

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var (
	// errors
	ErrNotFound       = errors.New("course not found")
	ErrLessonNotFound = errors.New("lesson not found")
)

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		CreateLesson(ctx context.Context, lsn Lesson) (Lesson, error)
		// FilterCourses returns published courses in the filter market,
		// optionally narrowed by age group, ordered by title ascending.
		FilterCourses(ctx context.Context, filter QueryFilter) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		// QueryLessonsByCourse returns published lessons ordered by order index
		// ascending. Gaps or duplicate indexes are not validated.
		QueryLessonsByCourse(ctx context.Context, courseID string) ([]Lesson, error)
		GetLessonByID(ctx context.Context, id string) (Lesson, error)
	}

	Service interface {
		Create(ctx context.Context, nc NewCourse) (Course, error)
		Filter(ctx context.Context, filter QueryFilter) ([]Course, error)
		GetByID(ctx context.Context, id string) (Course, error)
		LessonsByCourse(ctx context.Context, courseID string) ([]Lesson, error)
		GetLesson(ctx context.Context, id string) (Lesson, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	crs := Course{
		Title:       nc.Title,
		Description: null.NewString(nc.Description, nc.Description != ""),
		Market:      nc.Market,
		AgeGroup:    null.NewString(nc.AgeGroup, nc.AgeGroup != ""),
		IsPublished: nc.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *service) Filter(ctx context.Context, filter QueryFilter) ([]Course, error) {
	return svc.repo.FilterCourses(ctx, filter)
}

func (svc *service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *service) LessonsByCourse(ctx context.Context, courseID string) ([]Lesson, error) {
	return svc.repo.QueryLessonsByCourse(ctx, courseID)
}

func (svc *service) GetLesson(ctx context.Context, id string) (Lesson, error) {
	return svc.repo.GetLessonByID(ctx, id)
}
