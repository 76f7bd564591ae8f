package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/codewisehub/backend/core/project"
)

type projectRepository struct {
	db *DB
}

var _ project.Repository = (*projectRepository)(nil) // interface compliance check

func NewProjectRepository(db *DB) project.Repository {
	return &projectRepository{db: db}
}

func (repo *projectRepository) CreateProject(ctx context.Context, prj project.Project) (project.Project, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	prj.ID = uuid.New().String()
	repo.db.projects[prj.ID] = &prj
	return prj, nil
}

func (repo *projectRepository) GetProjectByID(ctx context.Context, id string) (project.Project, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if prj, ok := repo.db.projects[id]; ok {
		return *prj, nil
	}
	return project.Project{}, project.ErrNotFound
}

func (repo *projectRepository) QueryProjectsByOwner(ctx context.Context, userID string) ([]project.Project, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	projects := make([]project.Project, 0)
	for _, prj := range repo.db.projects {
		if prj.UserID == userID {
			projects = append(projects, *prj)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].UpdatedAt.After(projects[j].UpdatedAt) })
	return projects, nil
}

func (repo *projectRepository) UpdateProject(ctx context.Context, prj project.Project) (project.Project, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.projects[prj.ID]; !ok {
		return project.Project{}, project.ErrNotFound
	}
	repo.db.projects[prj.ID] = &prj
	return prj, nil
}
