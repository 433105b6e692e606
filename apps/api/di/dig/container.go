package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	echoapi "github.com/trezcool/skillboost/apps/api/echo"
	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/auth"
	"github.com/trezcool/skillboost/core/course"
	"github.com/trezcool/skillboost/core/payment"
	"github.com/trezcool/skillboost/core/user"
	logsvc "github.com/trezcool/skillboost/services/logger"
	paymentsvc "github.com/trezcool/skillboost/services/payment"
	"github.com/trezcool/skillboost/storage/database"
	inmemdb "github.com/trezcool/skillboost/storage/database/inmem"
	sqlxrepos "github.com/trezcool/skillboost/storage/database/sqlx"
	mongodb "github.com/trezcool/skillboost/storage/mongo"
)

// StoreCloser releases the connections held by the configured store.
type StoreCloser func(ctx context.Context) error

type (
	Store struct {
		dig.Out
		Users    user.Repository
		Courses  course.Repository
		Payments payment.Repository
		Close    StoreCloser
	}

	ServerParams struct {
		dig.In
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		Tokens     *auth.TokenService
		UserSvc    *user.Service
		CourseSvc  *course.Service
		PaymentSvc *payment.Service
	}
)

func newLogger(conf *core.Config, zl *zap.Logger) *logsvc.RollbarLogger {
	logger := logsvc.NewRollbarLogger(zl, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func asCoreLogger(l *logsvc.RollbarLogger) core.Logger {
	return l
}

// newStore opens the configured database engine and builds its repositories.
func newStore(conf *core.Config, logger core.Logger) Store {
	ctx := context.Background()
	fail := func(err error) {
		logger.Fatal(fmt.Sprintf("setting up %s database: %v", conf.Database.Engine, err), err)
	}

	switch conf.Database.Engine {
	case core.EngineMongo:
		db, err := mongodb.Open(ctx, conf)
		if err != nil {
			fail(err)
		}
		if err = mongodb.EnsureIndexes(ctx, db.Database()); err != nil {
			fail(err)
		}
		return Store{
			Users:    mongodb.NewUserRepository(db.Database()),
			Courses:  mongodb.NewCourseRepository(db.Database()),
			Payments: mongodb.NewPaymentRepository(db.Database()),
			Close:    db.Close,
		}

	case core.EnginePostgres:
		db, err := database.Open(ctx, conf)
		if err != nil {
			fail(err)
		}
		if err = database.Migrate(ctx, db, "up"); err != nil {
			fail(err)
		}
		return Store{
			Users:    sqlxrepos.NewUserRepository(db),
			Courses:  sqlxrepos.NewCourseRepository(db),
			Payments: sqlxrepos.NewPaymentRepository(db),
			Close:    func(context.Context) error { return db.Close() },
		}

	case core.EngineMemory:
		db := inmemdb.Open()
		return Store{
			Users:    inmemdb.NewUserRepository(db),
			Courses:  inmemdb.NewCourseRepository(db),
			Payments: inmemdb.NewPaymentRepository(db),
			Close:    func(context.Context) error { return nil },
		}
	}

	fail(errors.Errorf("unknown engine %q", conf.Database.Engine))
	return Store{}
}

func newPaymentProcessor(conf *core.Config, logger core.Logger) payment.Processor {
	if conf.Debug || conf.TestMode {
		return paymentsvc.NewConsoleProcessor(logger)
	}
	return paymentsvc.NewStripeProcessor(conf)
}

func newTokenService(conf *core.Config) *auth.TokenService {
	return auth.NewTokenService(conf.AppName, conf.SecretKey, conf.Server.JWTExpirationDelta)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return validate
}

func newServer(p ServerParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.Deps{
		Conf:       p.Conf,
		Logger:     p.Logger,
		Validate:   p.Validate,
		Translator: p.Translator,
		Tokens:     p.Tokens,
		UserSvc:    p.UserSvc,
		CourseSvc:  p.CourseSvc,
		PaymentSvc: p.PaymentSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(logsvc.NewZap))
	must(c.Provide(newLogger))
	must(c.Provide(asCoreLogger))
	must(c.Provide(newStore))
	must(c.Provide(newPaymentProcessor))
	must(c.Provide(newTokenService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(user.NewService))
	must(c.Provide(course.NewService))
	must(c.Provide(payment.NewService))
	must(c.Provide(newServer))

	if os.Getenv("DIG_VISUALIZE") != "" {
		_ = dig.Visualize(c, os.Stdout)
	}

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
