package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/auth"
	"github.com/trezcool/skillboost/core/course"
	"github.com/trezcool/skillboost/core/payment"
	"github.com/trezcool/skillboost/core/user"
)

type (
	Deps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		Tokens     *auth.TokenService
		UserSvc    *user.Service
		CourseSvc  *course.Service
		PaymentSvc *payment.Service
	}

	Server struct {
		app      *echo.Echo
		addr     string
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps Deps) *Server {
	s := &Server{
		app:      echo.New(),
		addr:     deps.Conf.Server.Addr,
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup(deps)
	return s
}

func (s *Server) setup(deps Deps) {
	conf := deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORS())

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(deps.Logger, deps.Translator)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	authed := authMiddleware(deps.Tokens)
	var adminOnly []echo.MiddlewareFunc
	if conf.Server.GuardAdminRoutes {
		adminOnly = []echo.MiddlewareFunc{authed, adminMiddleware(deps.UserSvc)}
	}

	g := s.app.Group("")
	registerTokenAPI(g, deps.Tokens, deps.Validate)
	registerUserAPI(g, authed, adminOnly, deps.UserSvc, deps.Validate)
	registerTeacherRequestAPI(g, adminOnly, deps.UserSvc, deps.Validate)
	registerCourseAPI(g, deps.CourseSvc, deps.Validate)
	registerRecordAPI(g, deps.CourseSvc, deps.Validate)
	registerPaymentAPI(g, deps.PaymentSvc, deps.Validate)
}

// Start blocks until the server stops. Startup failures are sent to Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "SkillBoost Hub is running")
}
