package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core/user"
)

type authApi struct {
	svc      user.Service
	idn      *identity
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, idn *identity, svc user.Service, validate *validator.Validate) {
	api := authApi{svc: svc, idn: idn, validate: validate}

	ag := g.Group("/auth")
	ag.POST("/signup", api.signup)
	ag.POST("/signin", api.signin)
	ag.POST("/logout", api.logout)
	ag.GET("/user", api.authUser)
}

type AuthResponse struct {
	Message string    `json:"message"`
	User    user.User `json:"user"`
}

// Handlers

func (api *authApi) signup(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}

	rctx := ctx.Request().Context()
	if err := data.Validate(rctx, api.validate, api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Register(rctx, data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}
	if err = api.idn.establishSession(ctx, usr); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, AuthResponse{Message: "User created successfully", User: usr})
}

func (api *authApi) signin(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == user.ErrInvalidCredentials {
			return errInvalidCredentials
		}
		return errors.Wrap(err, "authenticating")
	}
	if err = api.idn.establishSession(ctx, usr); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, AuthResponse{Message: "Login successful", User: usr})
}

func (api *authApi) logout(ctx echo.Context) error {
	if err := api.idn.destroySession(ctx); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// authUser returns the resolved user, or JSON null for anonymous callers.
func (api *authApi) authUser(ctx echo.Context) error {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return ctx.JSON(http.StatusOK, usr)
	}
	return ctx.JSON(http.StatusOK, nil)
}
