package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/skillboost/core/user"
)

// addUser registers a user if needed. The role, when given, is set whether the user is new or not.
func (cli *commandLine) addUser(ctx context.Context, name, email, role string) error {
	nu := user.NewUser{Name: name, Email: email}
	if err := nu.Validate(cli.validate); err != nil {
		return cli.describe(err)
	}
	if role != "" {
		if err := cli.checkInput(roleInput{Email: nu.Email, Role: user.Role(role)}); err != nil {
			return err
		}
	}

	res, err := cli.usrSvc.Register(ctx, nu)
	if err != nil {
		return err
	}
	if res.AlreadyExists() {
		fmt.Fprintf(cli.out, "%s: %s\n", nu.Email, res.Message)
	} else {
		fmt.Fprintf(cli.out, "%s: registered (%s)\n", nu.Email, *res.InsertedID)
	}

	if role == "" {
		return nil
	}
	if _, err = cli.usrSvc.SetRoleByEmail(ctx, nu.Email, user.Role(role)); err != nil {
		return errors.Wrapf(err, "setting role of %s", nu.Email)
	}
	fmt.Fprintf(cli.out, "%s: role %s\n", nu.Email, role)
	return nil
}
