package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/user"
)

var errHelp = errors.New("help provided")

// migrateFunc runs a migration command against the configured store.
type migrateFunc func(ctx context.Context, command string, args ...string) error

type commandLine struct {
	usrSvc     *user.Service // nil for commands that do not need the store
	validate   *validator.Validate
	translator ut.Translator
	migrate    migrateFunc
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                    - run a goose command (up, down, status, ...)")
	fmt.Fprintln(cli.out, "  setrole -email EMAIL -role ROLE           - set the role of an existing user")
	fmt.Fprintln(cli.out, "  adduser -email EMAIL [-name N] [-role R]  - register a user, then set their role")
}

// usesStore reports whether the command in args needs the user service.
func usesStore(args []string) bool {
	return len(args) > 1 && (args[1] == "setrole" || args[1] == "adduser")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	setRoleCmd := cli.newFlagSet("setrole")
	setRoleEmail := setRoleCmd.String("email", "", "The user's email.")
	setRoleRole := setRoleCmd.String("role", "", "One of: student, teacher, admin.")

	addUserCmd := cli.newFlagSet("adduser")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserName := addUserCmd.String("name", "", "The user's display name.")
	addUserRole := addUserCmd.String("role", "", "One of: student, teacher, admin. New users are students.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.runMigration(ctx, args[2:])

	case "setrole":
		if err := parse(setRoleCmd, args[2:]); err != nil {
			return err
		}
		if *setRoleEmail == "" && *setRoleRole == "" {
			setRoleCmd.Usage()
			return errHelp
		}
		return cli.setRole(ctx, *setRoleEmail, *setRoleRole)

	case "adduser":
		if err := parse(addUserCmd, args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(ctx, *addUserName, *addUserEmail, *addUserRole)

	default:
		cli.printUsage()
		return errHelp
	}
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) checkInput(in interface{}) error {
	return cli.describe(cli.validate.Struct(in))
}

// describe flattens validation errors into a single line.
func (cli *commandLine) describe(err error) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}

	flds := core.TranslateErrors(vErrs, cli.translator)
	msgs := make([]string, 0, len(flds))
	for fld, msg := range flds {
		msgs = append(msgs, fld+": "+msg)
	}
	sort.Strings(msgs)
	return errors.New(strings.Join(msgs, "; "))
}
