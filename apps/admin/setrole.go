package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/skillboost/core/user"
)

type roleInput struct {
	Email string    `json:"email" validate:"required,email"`
	Role  user.Role `json:"role" validate:"required,role"`
}

// setRole bootstraps roles outside of the API, eg. the first admin.
func (cli *commandLine) setRole(ctx context.Context, email, role string) error {
	in := roleInput{Email: email, Role: user.Role(role)}
	if err := cli.checkInput(in); err != nil {
		return err
	}

	res, err := cli.usrSvc.SetRoleByEmail(ctx, in.Email, in.Role)
	if err != nil {
		return errors.Wrapf(err, "setting role of %s", in.Email)
	}
	fmt.Fprintf(cli.out, "%s: role %s (modified: %d)\n", in.Email, in.Role, res.ModifiedCount)
	return nil
}
