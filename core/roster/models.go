package roster

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Enrollment maps a student into a teacher's class. Pure join row, traversed
// teacher → students only.
type Enrollment struct {
	TeacherID string `db:"teacher_id" json:"teacherId"`
	StudentID string `db:"student_id" json:"studentId"`
}

// ParentLink maps a parent to a child account. Traversed parent → children only.
type ParentLink struct {
	ParentID string `db:"parent_id" json:"parentId"`
	ChildID  string `db:"child_id" json:"childId"`
}

// Certification is a credential held by a teacher.
type Certification struct {
	ID        string      `db:"id" json:"id"`
	TeacherID string      `db:"teacher_id" json:"teacherId"`
	Title     string      `db:"title" json:"title"`
	Issuer    null.String `db:"issuer" json:"issuer,omitempty"`
	IssuedAt  time.Time   `db:"issued_at" json:"issuedAt"` // UTC
}
