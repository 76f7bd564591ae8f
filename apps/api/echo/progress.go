package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core/progress"
)

type progressApi struct {
	svc      progress.Service
	validate *validator.Validate
}

func registerProgressAPI(g *echo.Group, svc progress.Service, validate *validator.Validate) {
	api := progressApi{svc: svc, validate: validate}

	pg := g.Group("/progress", authedMiddleware())
	pg.GET("", api.query)
	pg.POST("", api.upsert)
}

// Handlers

func (api *progressApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	rows, err := api.svc.QueryByUser(ctx.Request().Context(), usr.ID, ctx.QueryParam("courseId"))
	if err != nil {
		return errors.Wrap(err, "querying progress")
	}
	if rows == nil {
		rows = []progress.Progress{}
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *progressApi) upsert(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	var data progress.UpsertProgress
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpsertProgress")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	prg, err := api.svc.Upsert(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "upserting progress")
	}
	return ctx.JSON(http.StatusOK, prg)
}
