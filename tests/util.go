package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/codewisehub/backend/core/achievement"
	"github.com/codewisehub/backend/core/course"
	"github.com/codewisehub/backend/core/project"
	"github.com/codewisehub/backend/core/roster"
	"github.com/codewisehub/backend/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	email, first, last, pwd, role, market string,
) user.User {
	t.Helper()
	now := time.Now().UTC()
	usr := user.User{
		Email:     email,
		FirstName: first,
		LastName:  last,
		Role:      role,
		Market:    market,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateCourse(
	t *testing.T,
	repo course.Repository,
	title, market, ageGroup string,
	published bool,
) course.Course {
	t.Helper()
	now := time.Now().UTC()
	crs, err := repo.CreateCourse(context.Background(), course.Course{
		Title:       title,
		Market:      market,
		AgeGroup:    null.NewString(ageGroup, ageGroup != ""),
		IsPublished: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateLesson(
	t *testing.T,
	repo course.Repository,
	courseID, title string,
	orderIndex int,
	published bool,
) course.Lesson {
	t.Helper()
	now := time.Now().UTC()
	lsn, err := repo.CreateLesson(context.Background(), course.Lesson{
		CourseID:    courseID,
		Title:       title,
		OrderIndex:  orderIndex,
		IsPublished: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}
	return lsn
}

func CreateProject(
	t *testing.T,
	repo project.Repository,
	userID, title, code string,
) project.Project {
	t.Helper()
	now := time.Now().UTC()
	prj, err := repo.CreateProject(context.Background(), project.Project{
		UserID:    userID,
		Title:     title,
		Code:      null.NewString(code, code != ""),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateProject() failed: %v", err)
	}
	return prj
}

func CreateAchievement(
	t *testing.T,
	repo achievement.Repository,
	title string,
) achievement.Achievement {
	t.Helper()
	ach, err := repo.CreateAchievement(context.Background(), achievement.Achievement{
		Title:     title,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAchievement() failed: %v", err)
	}
	return ach
}

func Award(
	t *testing.T,
	repo achievement.Repository,
	userID, achievementID string,
	earnedAt time.Time,
) {
	t.Helper()
	if err := repo.AwardAchievement(context.Background(), userID, achievementID, earnedAt); err != nil {
		t.Fatalf("Award() failed: %v", err)
	}
}

func Enroll(t *testing.T, repo roster.Repository, teacherID, studentID string) {
	t.Helper()
	err := repo.AddEnrollment(context.Background(), roster.Enrollment{TeacherID: teacherID, StudentID: studentID})
	if err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}
}

func LinkParent(t *testing.T, repo roster.Repository, parentID, childID string) {
	t.Helper()
	err := repo.AddParentLink(context.Background(), roster.ParentLink{ParentID: parentID, ChildID: childID})
	if err != nil {
		t.Fatalf("LinkParent() failed: %v", err)
	}
}

func CreateCertification(
	t *testing.T,
	repo roster.Repository,
	teacherID, title, issuer string,
	issuedAt time.Time,
) roster.Certification {
	t.Helper()
	cert, err := repo.CreateCertification(context.Background(), roster.Certification{
		TeacherID: teacherID,
		Title:     title,
		Issuer:    null.NewString(issuer, issuer != ""),
		IssuedAt:  issuedAt,
	})
	if err != nil {
		t.Fatalf("CreateCertification() failed: %v", err)
	}
	return cert
}
