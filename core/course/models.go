package course

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/codewisehub/backend/core"
)

type Course struct {
	ID          string      `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Description null.String `db:"description" json:"description,omitempty"`
	Market      string      `db:"market" json:"market"`
	AgeGroup    null.String `db:"age_group" json:"ageGroup,omitempty"`
	IsPublished bool        `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"` // UTC
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"` // UTC
}

type Lesson struct {
	ID          string      `db:"id" json:"id"`
	CourseID    string      `db:"course_id" json:"courseId"`
	Title       string      `db:"title" json:"title"`
	Content     null.String `db:"content" json:"content,omitempty"`
	OrderIndex  int         `db:"order_index" json:"orderIndex"`
	IsPublished bool        `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"` // UTC
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Market      string `json:"market" validate:"required"`
	AgeGroup    string `json:"ageGroup"`
	IsPublished bool   `json:"isPublished"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.Market = core.CleanString(nc.Market, true /* lower */)
	nc.AgeGroup = core.CleanString(nc.AgeGroup, true /* lower */)
	return validate.Struct(nc)
}

// QueryFilter narrows a course listing. Market is always required; only
// published courses are ever returned.
type QueryFilter struct {
	Market   string
	AgeGroup string
}
