package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/codewisehub/backend/core/roster"
	"github.com/codewisehub/backend/core/user"
)

type rosterRepository struct {
	db *DB
}

var _ roster.Repository = (*rosterRepository)(nil) // interface compliance check

func NewRosterRepository(db *DB) roster.Repository {
	return &rosterRepository{db: db}
}

func (repo *rosterRepository) AddEnrollment(ctx context.Context, enr roster.Enrollment) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, e := range repo.db.enrollments {
		if e == enr {
			return nil
		}
	}
	repo.db.enrollments = append(repo.db.enrollments, enr)
	return nil
}

func (repo *rosterRepository) QueryStudentsByTeacher(ctx context.Context, teacherID string) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]user.User, 0)
	for _, enr := range repo.db.enrollments {
		if enr.TeacherID != teacherID {
			continue
		}
		if usr, ok := repo.db.users[enr.StudentID]; ok {
			students = append(students, stripPassword(*usr))
		}
	}
	sortUsers(students)
	return students, nil
}

func (repo *rosterRepository) AddParentLink(ctx context.Context, link roster.ParentLink) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, l := range repo.db.parentLinks {
		if l == link {
			return nil
		}
	}
	repo.db.parentLinks = append(repo.db.parentLinks, link)
	return nil
}

func (repo *rosterRepository) QueryChildrenByParent(ctx context.Context, parentID string) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	children := make([]user.User, 0)
	for _, link := range repo.db.parentLinks {
		if link.ParentID != parentID {
			continue
		}
		if usr, ok := repo.db.users[link.ChildID]; ok {
			children = append(children, stripPassword(*usr))
		}
	}
	sortUsers(children)
	return children, nil
}

func (repo *rosterRepository) CreateCertification(ctx context.Context, cert roster.Certification) (roster.Certification, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cert.ID = uuid.New().String()
	repo.db.certifications[cert.ID] = &cert
	return cert, nil
}

func (repo *rosterRepository) QueryCertificationsByTeacher(ctx context.Context, teacherID string) ([]roster.Certification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	certs := make([]roster.Certification, 0)
	for _, cert := range repo.db.certifications {
		if cert.TeacherID == teacherID {
			certs = append(certs, *cert)
		}
	}
	sort.Slice(certs, func(i, j int) bool { return certs[i].IssuedAt.After(certs[j].IssuedAt) })
	return certs, nil
}

// stripPassword mirrors the explicit column selection of the SQL repository.
func stripPassword(usr user.User) user.User {
	usr.PasswordHash = null.Bytes{}
	return usr
}

func sortUsers(users []user.User) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].FirstName != users[j].FirstName {
			return users[i].FirstName < users[j].FirstName
		}
		return users[i].LastName < users[j].LastName
	})
}
