package database

import (
	"context"
	"database/sql"
	"net/url"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/skillboost/core"
)

func TestURL(t *testing.T) {
	conf := &core.Config{Database: core.DatabaseConfig{
		Name:     "skillboost",
		User:     "app",
		Password: "p@ss",
		Host:     "localhost",
		Port:     "5432",
	}}

	u, err := url.Parse(URL(conf))
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "localhost:5432", u.Host)
	assert.Equal(t, "/skillboost", u.Path)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
	pwd, _ := u.User.Password()
	assert.Equal(t, "p@ss", pwd)

	conf.Database.DisableTLS = true
	u, err = url.Parse(URL(conf))
	require.NoError(t, err)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}

func TestMigrate(t *testing.T) {
	orig := gooseRunFunc
	defer func() { gooseRunFunc = orig }()

	var gotCmd, gotDir string
	var gotArgs []string
	gooseRunFunc = func(_ context.Context, command string, _ *sql.DB, dir string, args ...string) error {
		gotCmd, gotDir, gotArgs = command, dir, args
		if command == "boom" {
			return errors.New("no such command")
		}
		return nil
	}

	db := sqlx.NewDb(&sql.DB{}, driverName)
	require.NoError(t, Migrate(context.Background(), db, "up-to", "1"))
	assert.Equal(t, "up-to", gotCmd)
	assert.Equal(t, migrationsDir, gotDir)
	assert.Equal(t, []string{"1"}, gotArgs)

	err := Migrate(context.Background(), db, "boom")
	assert.EqualError(t, err, "migrate boom: no such command")
}

func TestMigrations_embedded(t *testing.T) {
	entries, err := migrations.ReadDir(migrationsDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
