// Package dummydb provides in-memory repositories for tests.
package dummydb

import (
	"sync"

	"github.com/codewisehub/backend/core/achievement"
	"github.com/codewisehub/backend/core/course"
	"github.com/codewisehub/backend/core/progress"
	"github.com/codewisehub/backend/core/project"
	"github.com/codewisehub/backend/core/roster"
	"github.com/codewisehub/backend/core/user"
)

type earnedRow struct {
	achievementID string
	earned        achievement.Earned
}

// DB holds every table behind one lock; good enough for tests.
type DB struct {
	sync.RWMutex

	users          map[string]*user.User
	courses        map[string]*course.Course
	lessons        map[string]*course.Lesson
	progress       map[string]*progress.Progress // keyed by user|course|lesson
	projects       map[string]*project.Project
	achievements   map[string]*achievement.Achievement
	earned         map[string][]earnedRow // by user ID
	enrollments    []roster.Enrollment
	parentLinks    []roster.ParentLink
	certifications map[string]*roster.Certification
}

func NewDB() *DB {
	return &DB{
		users:          make(map[string]*user.User),
		courses:        make(map[string]*course.Course),
		lessons:        make(map[string]*course.Lesson),
		progress:       make(map[string]*progress.Progress),
		projects:       make(map[string]*project.Project),
		achievements:   make(map[string]*achievement.Achievement),
		earned:         make(map[string][]earnedRow),
		certifications: make(map[string]*roster.Certification),
	}
}
