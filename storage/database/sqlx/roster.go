package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core/roster"
	"github.com/codewisehub/backend/core/user"
)

// userColumns deliberately leaves password_hash out of relationship queries.
const userColumns = `u.id, u.email, u.first_name, u.last_name, u.role, u.market, u.created_at, u.updated_at`

type rosterRepository struct {
	db *sqlx.DB
}

var _ roster.Repository = (*rosterRepository)(nil) // interface compliance check

func NewRosterRepository(db *sqlx.DB) *rosterRepository {
	return &rosterRepository{db: db}
}

func (repo rosterRepository) AddEnrollment(ctx context.Context, enr roster.Enrollment) error {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO class_enrollment (teacher_id, student_id)
		VALUES (:teacher_id, :student_id)
		ON CONFLICT (teacher_id, student_id) DO NOTHING`,
		enr,
	)
	return errors.Wrap(err, "inserting enrollment")
}

func (repo rosterRepository) QueryStudentsByTeacher(ctx context.Context, teacherID string) ([]user.User, error) {
	students := make([]user.User, 0)
	err := repo.db.SelectContext(ctx, &students, `
		SELECT `+userColumns+`
		FROM class_enrollment ce
		         INNER JOIN "user" u ON u.id = ce.student_id
		WHERE ce.teacher_id = $1
		ORDER BY u.first_name, u.last_name`,
		teacherID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying students by teacher")
	}
	return students, nil
}

func (repo rosterRepository) AddParentLink(ctx context.Context, link roster.ParentLink) error {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO parent_child_relationship (parent_id, child_id)
		VALUES (:parent_id, :child_id)
		ON CONFLICT (parent_id, child_id) DO NOTHING`,
		link,
	)
	return errors.Wrap(err, "inserting parent link")
}

func (repo rosterRepository) QueryChildrenByParent(ctx context.Context, parentID string) ([]user.User, error) {
	children := make([]user.User, 0)
	err := repo.db.SelectContext(ctx, &children, `
		SELECT `+userColumns+`
		FROM parent_child_relationship pc
		         INNER JOIN "user" u ON u.id = pc.child_id
		WHERE pc.parent_id = $1
		ORDER BY u.first_name, u.last_name`,
		parentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying children by parent")
	}
	return children, nil
}

func (repo rosterRepository) CreateCertification(ctx context.Context, cert roster.Certification) (roster.Certification, error) {
	cert.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO teacher_certification (id, teacher_id, title, issuer, issued_at)
		VALUES (:id, :teacher_id, :title, :issuer, :issued_at)`,
		cert,
	)
	if err != nil {
		return roster.Certification{}, errors.Wrap(err, "inserting certification")
	}
	return cert, nil
}

func (repo rosterRepository) QueryCertificationsByTeacher(ctx context.Context, teacherID string) ([]roster.Certification, error) {
	certs := make([]roster.Certification, 0)
	err := repo.db.SelectContext(ctx, &certs, `
		SELECT * FROM teacher_certification
		WHERE teacher_id = $1
		ORDER BY issued_at DESC`,
		teacherID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying certifications")
	}
	return certs, nil
}
