package project

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

// ErrNotFound is also returned on ownership mismatch so that non-owners
// cannot learn whether a project exists.
var ErrNotFound = errors.New("project not found")

type (
	Repository interface {
		CreateProject(ctx context.Context, prj Project) (Project, error)
		GetProjectByID(ctx context.Context, id string) (Project, error)
		// QueryProjectsByOwner lists a user's projects, most recently updated first.
		QueryProjectsByOwner(ctx context.Context, userID string) ([]Project, error)
		UpdateProject(ctx context.Context, prj Project) (Project, error)
	}

	Service interface {
		Create(ctx context.Context, userID string, np NewProject) (Project, error)
		QueryByOwner(ctx context.Context, userID string) ([]Project, error)
		// Update applies a partial update after verifying ownership.
		Update(ctx context.Context, id, userID string, up UpdateProject) (Project, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, userID string, np NewProject) (Project, error) {
	now := time.Now().UTC()
	prj := Project{
		UserID:      userID,
		Title:       np.Title,
		Description: null.NewString(np.Description, np.Description != ""),
		ProjectType: null.NewString(np.ProjectType, np.ProjectType != ""),
		Code:        null.NewString(np.Code, np.Code != ""),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateProject(ctx, prj)
}

func (svc *service) QueryByOwner(ctx context.Context, userID string) ([]Project, error) {
	return svc.repo.QueryProjectsByOwner(ctx, userID)
}

func (svc *service) Update(ctx context.Context, id, userID string, up UpdateProject) (Project, error) {
	prj, err := svc.repo.GetProjectByID(ctx, id)
	if err != nil {
		return Project{}, err
	}
	if prj.UserID != userID {
		return Project{}, ErrNotFound
	}

	// merge only supplied fields
	if up.Title != nil {
		prj.Title = *up.Title
	}
	if up.Description != nil {
		prj.Description = null.NewString(*up.Description, *up.Description != "")
	}
	if up.ProjectType != nil {
		prj.ProjectType = null.NewString(*up.ProjectType, *up.ProjectType != "")
	}
	if up.Code != nil {
		prj.Code = null.NewString(*up.Code, *up.Code != "")
	}
	prj.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateProject(ctx, prj)
}
