package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core/project"
)

type projectRepository struct {
	db *sqlx.DB
}

var _ project.Repository = (*projectRepository)(nil) // interface compliance check

func NewProjectRepository(db *sqlx.DB) *projectRepository {
	return &projectRepository{db: db}
}

func (repo projectRepository) CreateProject(ctx context.Context, prj project.Project) (project.Project, error) {
	prj.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO project (id, user_id, title, description, project_type, code, created_at, updated_at)
		VALUES (:id, :user_id, :title, :description, :project_type, :code, :created_at, :updated_at)`,
		prj,
	)
	if err != nil {
		return project.Project{}, errors.Wrap(err, "inserting project")
	}
	return prj, nil
}

func (repo projectRepository) GetProjectByID(ctx context.Context, id string) (project.Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return project.Project{}, project.ErrNotFound
	}
	var prj project.Project
	if err := repo.db.GetContext(ctx, &prj, `SELECT * FROM project WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, errors.Wrap(err, "finding project by ID")
	}
	return prj, nil
}

func (repo projectRepository) QueryProjectsByOwner(ctx context.Context, userID string) ([]project.Project, error) {
	projects := make([]project.Project, 0)
	err := repo.db.SelectContext(ctx, &projects, `
		SELECT * FROM project WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying projects")
	}
	return projects, nil
}

func (repo projectRepository) UpdateProject(ctx context.Context, prj project.Project) (project.Project, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE project
		SET title        = :title,
		    description  = :description,
		    project_type = :project_type,
		    code         = :code,
		    updated_at   = :updated_at
		WHERE id = :id`,
		prj,
	)
	if err != nil {
		return project.Project{}, errors.Wrap(err, "updating project")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return project.Project{}, project.ErrNotFound
	}
	return prj, nil
}
