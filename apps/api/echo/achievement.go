package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core/achievement"
)

type achievementApi struct {
	svc achievement.Service
}

func registerAchievementAPI(g *echo.Group, svc achievement.Service) {
	api := achievementApi{svc: svc}

	g.GET("/achievements", api.query, authedMiddleware())
}

func (api *achievementApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	earned, err := api.svc.QueryEarnedByUser(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying earned achievements")
	}
	if earned == nil {
		earned = []achievement.Earned{}
	}
	return ctx.JSON(http.StatusOK, earned)
}
