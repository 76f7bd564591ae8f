package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core/project"
)

type projectApi struct {
	svc      project.Service
	validate *validator.Validate
}

func registerProjectAPI(g *echo.Group, svc project.Service, validate *validator.Validate) {
	api := projectApi{svc: svc, validate: validate}

	pg := g.Group("/projects", authedMiddleware())
	pg.GET("", api.query)
	pg.POST("", api.create)
	pg.PUT("/:id", api.update)
}

// Handlers

func (api *projectApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	projects, err := api.svc.QueryByOwner(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying projects")
	}
	if projects == nil {
		projects = []project.Project{}
	}
	return ctx.JSON(http.StatusOK, projects)
}

func (api *projectApi) create(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	var data project.NewProject
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProject")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	prj, err := api.svc.Create(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating project")
	}
	return ctx.JSON(http.StatusCreated, prj)
}

// update applies a partial update. A project the caller does not own is
// indistinguishable from one that does not exist.
func (api *projectApi) update(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	var data project.UpdateProject
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProject")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	prj, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), usr.ID, data)
	if err != nil {
		if errors.Cause(err) == project.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating project")
	}
	return ctx.JSON(http.StatusOK, prj)
}
