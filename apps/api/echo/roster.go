package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core/roster"
	"github.com/codewisehub/backend/core/user"
)

type rosterApi struct {
	svc roster.Service
}

func registerRosterAPI(g *echo.Group, svc roster.Service) {
	api := rosterApi{svc: svc}

	tg := g.Group("/teacher", roleMiddleware(user.RoleTeacher))
	tg.GET("/students", api.queryStudents)
	tg.GET("/certifications", api.queryCertifications)

	g.GET("/parent/children", api.queryChildren, roleMiddleware(user.RoleParent))
}

// Handlers

func (api *rosterApi) queryStudents(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	students, err := api.svc.StudentsByTeacher(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []user.User{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *rosterApi) queryCertifications(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	certs, err := api.svc.CertificationsByTeacher(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying certifications")
	}
	if certs == nil {
		certs = []roster.Certification{}
	}
	return ctx.JSON(http.StatusOK, certs)
}

func (api *rosterApi) queryChildren(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	children, err := api.svc.ChildrenByParent(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying children")
	}
	if children == nil {
		children = []user.User{}
	}
	return ctx.JSON(http.StatusOK, children)
}
