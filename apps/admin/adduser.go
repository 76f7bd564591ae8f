package main

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/codewisehub/backend/core"
	"github.com/codewisehub/backend/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(email, first, last, pwd string, isAdmin bool) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)
	now := time.Now().UTC()

	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if pkgerrors.Cause(err) != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Email:     email,
			Role:      user.RoleStudent,
			CreatedAt: now,
		}
	}
	usr.FirstName = core.CleanString(first)
	usr.LastName = core.CleanString(last)
	if isAdmin {
		usr.Role = user.RoleAdmin
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.UpdatedAt = now

	if usr.ID == "" {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	}
	return err
}
