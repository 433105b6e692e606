package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/storage/database"
	mongodb "github.com/trezcool/skillboost/storage/mongo"
)

func (cli *commandLine) runMigration(ctx context.Context, args []string) error {
	if cli.migrate == nil {
		return errors.New("no migrations for the configured database engine")
	}
	return cli.migrate(ctx, args[0], args[1:]...)
}

// newMigrator returns the migrations of the configured engine.
// Postgres runs the embedded goose migrations; mongo only knows "up", which creates the indexes.
func newMigrator(conf *core.Config) migrateFunc {
	switch conf.Database.Engine {
	case core.EnginePostgres:
		return func(ctx context.Context, command string, args ...string) error {
			db, err := database.Open(ctx, conf)
			if err != nil {
				return err
			}
			defer db.Close()
			return database.Migrate(ctx, db, command, args...)
		}

	case core.EngineMongo:
		return func(ctx context.Context, command string, _ ...string) error {
			if command != "up" {
				return errors.Errorf("%q: no such command for the mongo engine", command)
			}
			db, err := mongodb.Open(ctx, conf)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(ctx) }()
			return mongodb.EnsureIndexes(ctx, db.Database())
		}
	}
	return nil
}
