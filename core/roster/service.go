package roster

import (
	"context"

	"github.com/codewisehub/backend/core/user"
)

type (
	Repository interface {
		AddEnrollment(ctx context.Context, enr Enrollment) error
		// QueryStudentsByTeacher inner-joins users through enrollments; the
		// selected user columns never include the password hash.
		QueryStudentsByTeacher(ctx context.Context, teacherID string) ([]user.User, error)

		AddParentLink(ctx context.Context, link ParentLink) error
		QueryChildrenByParent(ctx context.Context, parentID string) ([]user.User, error)

		CreateCertification(ctx context.Context, cert Certification) (Certification, error)
		// QueryCertificationsByTeacher lists by issue date descending.
		QueryCertificationsByTeacher(ctx context.Context, teacherID string) ([]Certification, error)
	}

	Service interface {
		Enroll(ctx context.Context, teacherID, studentID string) error
		StudentsByTeacher(ctx context.Context, teacherID string) ([]user.User, error)
		LinkParent(ctx context.Context, parentID, childID string) error
		ChildrenByParent(ctx context.Context, parentID string) ([]user.User, error)
		AddCertification(ctx context.Context, cert Certification) (Certification, error)
		CertificationsByTeacher(ctx context.Context, teacherID string) ([]Certification, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Enroll(ctx context.Context, teacherID, studentID string) error {
	return svc.repo.AddEnrollment(ctx, Enrollment{TeacherID: teacherID, StudentID: studentID})
}

func (svc *service) StudentsByTeacher(ctx context.Context, teacherID string) ([]user.User, error) {
	return svc.repo.QueryStudentsByTeacher(ctx, teacherID)
}

func (svc *service) LinkParent(ctx context.Context, parentID, childID string) error {
	return svc.repo.AddParentLink(ctx, ParentLink{ParentID: parentID, ChildID: childID})
}

func (svc *service) ChildrenByParent(ctx context.Context, parentID string) ([]user.User, error) {
	return svc.repo.QueryChildrenByParent(ctx, parentID)
}

func (svc *service) AddCertification(ctx context.Context, cert Certification) (Certification, error) {
	return svc.repo.CreateCertification(ctx, cert)
}

func (svc *service) CertificationsByTeacher(ctx context.Context, teacherID string) ([]Certification, error) {
	return svc.repo.QueryCertificationsByTeacher(ctx, teacherID)
}
