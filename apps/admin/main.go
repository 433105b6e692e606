package main

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	dig_container "github.com/trezcool/skillboost/apps/api/di/dig"
	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/user"
	logsvc "github.com/trezcool/skillboost/services/logger"
)

func main() {
	c := dig_container.New()

	var cli commandLine
	var logger *logsvc.RollbarLogger
	must(c.Invoke(func(conf *core.Config, l *logsvc.RollbarLogger, validate *validator.Validate, translator ut.Translator) {
		logger = l
		cli = commandLine{
			validate:   validate,
			translator: translator,
			migrate:    newMigrator(conf),
			out:        os.Stdout,
		}
	}))

	closeStore := dig_container.StoreCloser(func(context.Context) error { return nil })
	if usesStore(os.Args) {
		must(c.Invoke(func(svc *user.Service, closer dig_container.StoreCloser) {
			cli.usrSvc = svc
			closeStore = closer
		}))
	}

	err := cli.run(os.Args)
	if cErr := closeStore(context.Background()); cErr != nil {
		logger.Error(fmt.Sprintf("closing database: %v", cErr), cErr)
	}
	if err != nil && !errors.Is(err, errHelp) {
		logger.Error(fmt.Sprintf("error: %s", err), err)
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
