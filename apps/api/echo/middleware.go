package echoapi

import (
	"github.com/labstack/echo/v4"
)

func authedMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if _, err := getContextUser(ctx); err != nil {
				return err
			}
			return next(ctx)
		}
	}
}

func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx)
			if err != nil {
				return err
			}
			for _, role := range roles {
				if usr.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}
