package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/user"
	inmemdb "github.com/trezcool/skillboost/storage/database/inmem"
	"github.com/trezcool/skillboost/tests"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	// set up DB & repos
	usrRepo = inmemdb.NewUserRepository(inmemdb.Open())

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// start CLI
	return &commandLine{
		usrSvc:     user.NewService(usrRepo),
		validate:   validate,
		translator: translator,
		out:        io.Discard,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func runCLITests(t *testing.T, cli *commandLine, tests []cliTest, check func(t *testing.T, tt cliTest)) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				assert.True(t, errors.Is(err, tt.wantErr), "cli.run() error = %v, wantErr %v", err, tt.wantErr)
			case tt.wantErrStr != "":
				if assert.Error(t, err) {
					assert.Equal(t, tt.wantErrStr, err.Error())
				}
			default:
				require.NoError(t, err)
				if check != nil {
					check(t, tt)
				}
			}
		})
	}
}

func Test_commandLine_help(t *testing.T) {
	cli := setup(t)

	runCLITests(t, cli, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "migrate: no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "setrole: no args", args: []string{"setrole"}, wantErr: errHelp},
		{name: "setrole: -h", args: []string{"setrole", "-h"}, wantErr: errHelp},
		{name: "adduser: no email", args: []string{"adduser", "-name", "Jane"}, wantErr: errHelp},
	}, nil)
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	t.Run("no migrations", func(t *testing.T) {
		assert.Error(t, cli.run([]string{"admin", "migrate", "up"}))
	})

	var gotCmd string
	cli.migrate = func(_ context.Context, command string, args ...string) error {
		gotCmd = command
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}, extra: "up"},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}, extra: "up-to"},
		{name: "down", args: []string{"migrate", "down"}, extra: "down"},
		{name: "reset", args: []string{"migrate", "reset"}, extra: "reset"},
		{name: "status", args: []string{"migrate", "status"}, extra: "status"},
		{name: "create", args: []string{"migrate", "create", "course_tags", "sql"}, extra: "create"},
	}
	runCLITests(t, cli, tests, func(t *testing.T, tt cliTest) {
		assert.Equal(t, tt.extra, gotCmd)
	})
}

func Test_newMigrator(t *testing.T) {
	assert.Nil(t, newMigrator(&core.Config{Database: core.DatabaseConfig{Engine: core.EngineMemory}}))
	assert.NotNil(t, newMigrator(&core.Config{Database: core.DatabaseConfig{Engine: core.EnginePostgres}}))

	mongoMigrate := newMigrator(&core.Config{Database: core.DatabaseConfig{Engine: core.EngineMongo}})
	require.NotNil(t, mongoMigrate)
	assert.EqualError(t, mongoMigrate(context.Background(), "down"), `"down": no such command for the mongo engine`)
}

func Test_commandLine_setRole(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "Jane", "jane@x.com", user.RoleStudent)

	tests := []cliTest{
		{name: "missing email", args: []string{"setrole", "-role", "admin"}, wantErrStr: "email: this field is required"},
		{name: "invalid role", args: []string{"setrole", "-email", usr.Email, "-role", "root"}, wantErrStr: "role: invalid role"},
		{name: "both invalid", args: []string{"setrole", "-email", "jane", "-role", "root"}, wantErrStr: "email: enter a valid email address; role: invalid role"},
		{name: "user not found", args: []string{"setrole", "-email", "ghost@x.com", "-role", "admin"}, wantErr: user.ErrNotFound},
		{name: "to teacher", args: []string{"setrole", "-email", usr.Email, "-role", "teacher"}, extra: user.RoleTeacher},
		{name: "to admin", args: []string{"setrole", "-email", "JANE@x.com", "-role", "admin"}, extra: user.RoleAdmin},
	}
	runCLITests(t, cli, tests, func(t *testing.T, tt cliTest) {
		refreshed, err := usrRepo.GetUserByID(context.Background(), usr.ID)
		require.NoError(t, err)
		assert.Equal(t, tt.extra, refreshed.Role)
	})
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	type extra struct {
		email string
		role  user.Role
	}
	tests := []cliTest{
		{name: "invalid email", args: []string{"adduser", "-email", "jane"}, wantErrStr: "email: enter a valid email address"},
		{name: "invalid role", args: []string{"adduser", "-email", "jane@x.com", "-role", "root"}, wantErrStr: "role: invalid role"},
		{name: "new student", args: []string{"adduser", "-email", "jane@x.com", "-name", "Jane"}, extra: extra{"jane@x.com", user.RoleStudent}},
		{name: "existing user keeps role", args: []string{"adduser", "-email", "jane@x.com"}, extra: extra{"jane@x.com", user.RoleStudent}},
		{name: "existing user to admin", args: []string{"adduser", "-email", "Jane@x.com", "-role", "admin"}, extra: extra{"jane@x.com", user.RoleAdmin}},
		{name: "new teacher", args: []string{"adduser", "-email", "john@x.com", "-role", "teacher"}, extra: extra{"john@x.com", user.RoleTeacher}},
	}
	runCLITests(t, cli, tests, func(t *testing.T, tt cliTest) {
		want := tt.extra.(extra)
		usr, err := usrRepo.GetUserByEmail(ctx, want.email)
		require.NoError(t, err)
		assert.Equal(t, want.role, usr.Role)
	})

	users, err := usrRepo.QueryAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func Test_usesStore(t *testing.T) {
	assert.False(t, usesStore([]string{"admin"}))
	assert.False(t, usesStore([]string{"admin", "migrate", "up"}))
	assert.True(t, usesStore([]string{"admin", "setrole"}))
	assert.True(t, usesStore([]string{"admin", "adduser"}))
}
