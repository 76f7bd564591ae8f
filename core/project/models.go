package project

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/codewisehub/backend/core"
)

// Project is a user-owned coding project. Exactly one User owns it.
type Project struct {
	ID          string      `db:"id" json:"id"`
	UserID      string      `db:"user_id" json:"userId"`
	Title       string      `db:"title" json:"title"`
	Description null.String `db:"description" json:"description,omitempty"`
	ProjectType null.String `db:"project_type" json:"projectType,omitempty"`
	Code        null.String `db:"code" json:"code,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"` // UTC
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"` // UTC
}

// NewProject contains information needed to create a new Project.
type NewProject struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ProjectType string `json:"projectType"`
	Code        string `json:"code"`
}

func (np *NewProject) Validate(validate *validator.Validate) error {
	np.Title = core.CleanString(np.Title)
	return validate.Struct(np)
}

// UpdateProject defines a partial update; only non-nil fields are applied.
type UpdateProject struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ProjectType *string `json:"projectType"`
	Code        *string `json:"code"`
}

func (up *UpdateProject) Validate(validate *validator.Validate) error {
	if up.Title != nil {
		title := core.CleanString(*up.Title)
		up.Title = &title
	}
	return validate.Struct(up)
}
