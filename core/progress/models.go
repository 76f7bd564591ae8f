package progress

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Progress is a user's standing on one lesson. At most one row exists per
// (UserID, CourseID, LessonID) triple.
type Progress struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	CourseID  string    `db:"course_id" json:"courseId"`
	LessonID  string    `db:"lesson_id" json:"lessonId"`
	Progress  int       `db:"progress" json:"progress"` // percent, 0-100
	Completed bool      `db:"completed" json:"completed"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"` // UTC
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"` // UTC
}

// UpsertProgress records a user's standing on a lesson; repeated submissions
// for the same triple converge on the latest values.
type UpsertProgress struct {
	CourseID  string `json:"courseId" validate:"required"`
	LessonID  string `json:"lessonId" validate:"required"`
	Progress  int    `json:"progress" validate:"min=0,max=100"`
	Completed bool   `json:"completed"`
}

func (up *UpsertProgress) Validate(validate *validator.Validate) error {
	return validate.Struct(up)
}
